// Package cache persists the last successful aggregation and the extracted
// article payloads, both on top of the durable key-value store.
package cache

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/matheuskafuri/newsdeck/internal/feed"
	"github.com/matheuskafuri/newsdeck/internal/store"
)

const snapshotKey = "feed:snapshot"

// Snapshot is the persisted result of one successful refresh cycle.
type Snapshot struct {
	Timestamp time.Time   `json:"timestamp"`
	Items     []feed.Item `json:"items"`
}

// FeedCache stores the last good feed for cold-start display and as the
// fallback when a refresh cycle fails.
type FeedCache struct {
	kv  store.KV
	log *slog.Logger
	now func() time.Time
}

func NewFeedCache(kv store.KV, log *slog.Logger) *FeedCache {
	if log == nil {
		log = slog.Default()
	}
	return &FeedCache{kv: kv, log: log, now: time.Now}
}

// Load returns the persisted snapshot, or nil when none exists or the
// payload does not deserialize. Corruption is a cache miss, never an error.
func (c *FeedCache) Load() *Snapshot {
	data, err := c.kv.Get(snapshotKey)
	if err != nil {
		c.log.Warn("reading feed snapshot", "error", err)
		return nil
	}
	if data == nil {
		return nil
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		c.log.Warn("discarding unreadable feed snapshot", "error", err)
		return nil
	}
	return &snap
}

// Save replaces the stored feed wholesale with the given items.
func (c *FeedCache) Save(items []feed.Item) error {
	data, err := json.Marshal(Snapshot{Timestamp: c.now(), Items: items})
	if err != nil {
		return err
	}
	return c.kv.Set(snapshotKey, data)
}
