package cache

import (
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"github.com/matheuskafuri/newsdeck/internal/store"
)

const (
	indexKey      = "extract:index"
	payloadPrefix = "extract:payload:"

	// DefaultMaxEntries bounds how many extracted articles stay cached.
	DefaultMaxEntries = 60
)

// indexEntry tracks freshness for one cached payload. TTL is per entry, so
// payload types with different freshness needs can share the cache.
type indexEntry struct {
	SavedAt time.Time     `json:"savedAt"`
	TTL     time.Duration `json:"ttl"`
}

// ExtractionCache is a TTL+size-bounded cache keyed by URL. Payloads live
// under their own store keys; a shared index carries savedAt and TTL.
type ExtractionCache struct {
	kv         store.KV
	log        *slog.Logger
	maxEntries int
	now        func() time.Time
}

func NewExtractionCache(kv store.KV, maxEntries int, log *slog.Logger) *ExtractionCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if log == nil {
		log = slog.Default()
	}
	return &ExtractionCache{kv: kv, maxEntries: maxEntries, log: log, now: time.Now}
}

func (c *ExtractionCache) loadIndex() map[string]indexEntry {
	index := make(map[string]indexEntry)
	data, err := c.kv.Get(indexKey)
	if err != nil {
		c.log.Warn("reading extraction index", "error", err)
		return index
	}
	if data == nil {
		return index
	}
	if err := json.Unmarshal(data, &index); err != nil {
		c.log.Warn("discarding unreadable extraction index", "error", err)
		return make(map[string]indexEntry)
	}
	return index
}

func (c *ExtractionCache) saveIndex(index map[string]indexEntry) {
	data, err := json.Marshal(index)
	if err != nil {
		c.log.Error("encoding extraction index", "error", err)
		return
	}
	if err := c.kv.Set(indexKey, data); err != nil {
		c.log.Error("persisting extraction index", "error", err)
	}
}

// Put stores payload under key with the given TTL, refreshing any existing
// entry, then evicts the oldest entries once the index exceeds the bound.
func (c *ExtractionCache) Put(key string, payload []byte, ttl time.Duration) error {
	if err := c.kv.Set(payloadPrefix+key, payload); err != nil {
		return err
	}

	index := c.loadIndex()
	index[key] = indexEntry{SavedAt: c.now(), TTL: ttl}

	if excess := len(index) - c.maxEntries; excess > 0 {
		keys := make([]string, 0, len(index))
		for k := range index {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			a, b := index[keys[i]], index[keys[j]]
			if a.SavedAt.Equal(b.SavedAt) {
				return keys[i] < keys[j]
			}
			return a.SavedAt.Before(b.SavedAt)
		})
		for _, k := range keys[:excess] {
			delete(index, k)
			if err := c.kv.Delete(payloadPrefix + k); err != nil {
				c.log.Warn("evicting extraction payload", "key", k, "error", err)
			}
		}
	}

	c.saveIndex(index)
	return nil
}

// Get returns the cached payload, or nil when the key is absent or expired.
// Expired entries are removed from both the payload store and the index.
func (c *ExtractionCache) Get(key string) []byte {
	index := c.loadIndex()
	entry, ok := index[key]
	if !ok {
		return nil
	}

	if c.now().Sub(entry.SavedAt) > entry.TTL {
		delete(index, key)
		if err := c.kv.Delete(payloadPrefix + key); err != nil {
			c.log.Warn("removing expired extraction payload", "key", key, "error", err)
		}
		c.saveIndex(index)
		return nil
	}

	payload, err := c.kv.Get(payloadPrefix + key)
	if err != nil {
		c.log.Warn("reading extraction payload", "key", key, "error", err)
		return nil
	}
	return payload
}

// Len reports how many entries the index currently holds.
func (c *ExtractionCache) Len() int {
	return len(c.loadIndex())
}
