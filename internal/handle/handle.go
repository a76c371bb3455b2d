// Package handle hands out short-lived ids for feed items passed between
// surfaces, such as a notification tap opening an article view. Expiry math
// uses time.Since on the stored creation time, which carries Go's monotonic
// reading, so wall-clock adjustments cannot skew it.
package handle

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matheuskafuri/newsdeck/internal/feed"
)

const (
	// DefaultTTL is how long a handle stays resolvable.
	DefaultTTL = 5 * time.Minute
	// DefaultCapacity bounds how many live handles exist at once.
	DefaultCapacity = 32
)

type entry struct {
	item    feed.Item
	created time.Time
}

// Cache is a small bounded map of generated ids to items. Expired entries
// are swept on each access; the oldest entry is evicted past capacity.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]entry
	order    []string // insertion order, oldest first
	ttl      time.Duration
	capacity int
}

func New(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries:  make(map[string]entry),
		ttl:      ttl,
		capacity: capacity,
	}
}

// Put stores the item and returns its handle id.
func (c *Cache) Put(item feed.Item) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweepLocked()

	id := uuid.NewString()
	c.entries[id] = entry{item: item, created: time.Now()}
	c.order = append(c.order, id)

	for len(c.entries) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	return id
}

// Get resolves a handle. A handle resolves at most until its TTL elapses.
func (c *Cache) Get(id string) (feed.Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweepLocked()

	e, ok := c.entries[id]
	if !ok {
		return feed.Item{}, false
	}
	return e.item, true
}

func (c *Cache) sweepLocked() {
	kept := c.order[:0]
	for _, id := range c.order {
		e, ok := c.entries[id]
		if !ok {
			continue
		}
		if time.Since(e.created) > c.ttl {
			delete(c.entries, id)
			continue
		}
		kept = append(kept, id)
	}
	c.order = kept
}

// Len reports the number of live handles.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked()
	return len(c.entries)
}
