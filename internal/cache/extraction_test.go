package cache

import (
	"fmt"
	"log/slog"
	"testing"
	"time"
)

func testExtractionCache(maxEntries int) (*ExtractionCache, *memKV, *time.Time) {
	kv := newMemKV()
	c := NewExtractionCache(kv, maxEntries, slog.Default())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, kv, &now
}

func TestExtractionPutAndGet(t *testing.T) {
	c, _, _ := testExtractionCache(60)

	if err := c.Put("https://a.com", []byte("extracted text"), time.Hour); err != nil {
		t.Fatalf("put: %v", err)
	}
	got := c.Get("https://a.com")
	if string(got) != "extracted text" {
		t.Errorf("got %q", got)
	}
}

func TestExtractionMissReturnsNil(t *testing.T) {
	c, _, _ := testExtractionCache(60)
	if got := c.Get("https://nope.com"); got != nil {
		t.Errorf("expected nil on miss, got %q", got)
	}
}

func TestExtractionTTLExpiry(t *testing.T) {
	c, kv, now := testExtractionCache(60)

	if err := c.Put("https://a.com", []byte("payload"), 60*time.Second); err != nil {
		t.Fatalf("put: %v", err)
	}

	*now = now.Add(61 * time.Second)
	if got := c.Get("https://a.com"); got != nil {
		t.Fatalf("expected nil after TTL expiry, got %q", got)
	}

	// Expired entry is gone from both the index and the payload store.
	if c.Len() != 0 {
		t.Errorf("expected empty index after expiry, got %d entries", c.Len())
	}
	if kv.data[payloadPrefix+"https://a.com"] != nil {
		t.Error("expected expired payload to be deleted")
	}
}

func TestExtractionTTLBoundaryNotExpired(t *testing.T) {
	c, _, now := testExtractionCache(60)

	if err := c.Put("https://a.com", []byte("payload"), 60*time.Second); err != nil {
		t.Fatalf("put: %v", err)
	}
	*now = now.Add(60 * time.Second) // exactly ttl: still fresh
	if got := c.Get("https://a.com"); got == nil {
		t.Error("entry at exactly its TTL should not be expired")
	}
}

func TestExtractionPerEntryTTL(t *testing.T) {
	c, _, now := testExtractionCache(60)

	c.Put("https://short.com", []byte("s"), time.Minute)
	c.Put("https://long.com", []byte("l"), time.Hour)

	*now = now.Add(2 * time.Minute)
	if got := c.Get("https://short.com"); got != nil {
		t.Error("short-ttl entry should have expired")
	}
	if got := c.Get("https://long.com"); got == nil {
		t.Error("long-ttl entry should still be present")
	}
}

func TestExtractionBoundEviction(t *testing.T) {
	c, kv, now := testExtractionCache(60)

	// 61 distinct keys, strictly increasing savedAt: the first key inserted
	// is the single oldest and must be the one evicted.
	for i := 0; i < 61; i++ {
		key := fmt.Sprintf("https://site%02d.com", i)
		if err := c.Put(key, []byte("payload"), time.Hour); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
		*now = now.Add(time.Second)
	}

	if c.Len() != 60 {
		t.Fatalf("expected exactly 60 entries, got %d", c.Len())
	}
	if got := c.Get("https://site00.com"); got != nil {
		t.Error("oldest key should have been evicted")
	}
	if kv.data[payloadPrefix+"https://site00.com"] != nil {
		t.Error("evicted payload should be deleted from the store")
	}
	if got := c.Get("https://site01.com"); got == nil {
		t.Error("second-oldest key should survive")
	}
}

func TestExtractionRePutRefreshesEntry(t *testing.T) {
	c, _, now := testExtractionCache(60)

	c.Put("https://a.com", []byte("old"), time.Minute)
	*now = now.Add(50 * time.Second)
	c.Put("https://a.com", []byte("new"), time.Minute)

	*now = now.Add(50 * time.Second) // 100s since first put, 50s since re-put
	got := c.Get("https://a.com")
	if string(got) != "new" {
		t.Errorf("expected refreshed payload, got %q", got)
	}
	if c.Len() != 1 {
		t.Errorf("re-put must not duplicate the entry, got %d", c.Len())
	}
}

func TestExtractionCorruptIndexTreatedAsEmpty(t *testing.T) {
	c, kv, _ := testExtractionCache(60)
	kv.data[indexKey] = []byte("not json")

	if got := c.Get("https://a.com"); got != nil {
		t.Errorf("expected nil with corrupt index, got %q", got)
	}
	if err := c.Put("https://a.com", []byte("fresh"), time.Hour); err != nil {
		t.Fatalf("put over corrupt index: %v", err)
	}
	if got := c.Get("https://a.com"); string(got) != "fresh" {
		t.Errorf("expected cache to recover from corrupt index, got %q", got)
	}
}
