// Package topic manages the user's subscribed query topics.
package topic

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/matheuskafuri/newsdeck/internal/store"
)

const storeKey = "topics"

// Type distinguishes free-form topics from industry-sector subscriptions.
type Type string

const (
	TypeCustom Type = "custom"
	TypeSector Type = "sector"
)

// Topic is a subscription: a display label plus the query sent to providers.
type Topic struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Query string `json:"query"`
	Type  Type   `json:"type"`
}

// Slug derives a topic id from its label: lowercase, runs of
// non-alphanumerics collapse to "-", leading/trailing "-" trimmed.
func Slug(label string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(label) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}
	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// deriveID adds the type suffix for sector topics so a sector subscription
// never collides with a custom topic of the same label.
func deriveID(label string, typ Type) string {
	id := Slug(label)
	if typ == TypeSector {
		id += "-" + string(TypeSector)
	}
	return id
}

// Listener is invoked after every successful topic mutation.
type Listener func()

// Store holds the topic set, persists it on each mutation, and notifies
// subscribers in subscription order.
type Store struct {
	mu        sync.Mutex
	kv        store.KV
	log       *slog.Logger
	topics    []Topic
	listeners []*listenerEntry
}

type listenerEntry struct {
	fn Listener // nil once unsubscribed
}

func NewStore(kv store.KV, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{kv: kv, log: log}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := s.kv.Get(storeKey)
	if err != nil {
		s.log.Warn("loading topics", "error", err)
		return
	}
	if data == nil {
		return
	}
	var topics []Topic
	if err := json.Unmarshal(data, &topics); err != nil {
		// Corrupt payload is a cache miss, start empty.
		s.log.Warn("discarding unreadable topic list", "error", err)
		return
	}
	s.topics = topics
}

// Add creates a topic from label. The query defaults to the trimmed label
// unless queryOverride is set. Adding a label whose derived id already
// exists is a no-op and returns false.
func (s *Store) Add(label, queryOverride string, typ Type) (Topic, bool) {
	if typ == "" {
		typ = TypeCustom
	}
	label = strings.TrimSpace(label)
	if Slug(label) == "" {
		return Topic{}, false
	}
	id := deriveID(label, typ)

	s.mu.Lock()
	for _, t := range s.topics {
		if t.ID == id {
			s.mu.Unlock()
			return Topic{}, false
		}
	}

	query := label
	if queryOverride != "" {
		query = queryOverride
	}
	t := Topic{ID: id, Label: label, Query: query, Type: typ}
	s.topics = append(s.topics, t)
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return t, true
}

// Remove deletes the topic with the given id. Removing an absent id is a
// no-op (no error, no notification).
func (s *Store) Remove(id string) {
	s.mu.Lock()
	idx := -1
	for i, t := range s.topics {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.topics = append(s.topics[:idx], s.topics[idx+1:]...)
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
}

// List returns the topics in insertion order.
func (s *Store) List() []Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Topic, len(s.topics))
	copy(out, s.topics)
	return out
}

// persistLocked writes the full topic list. A failed save is logged and
// swallowed: in-memory state may diverge from disk until the next save.
func (s *Store) persistLocked() {
	data, err := json.Marshal(s.topics)
	if err != nil {
		s.log.Error("encoding topics", "error", err)
		return
	}
	if err := s.kv.Set(storeKey, data); err != nil {
		s.log.Error("persisting topics", "error", err)
	}
}

// Subscribe registers a listener called after each mutation. The returned
// function unsubscribes and is safe to call during delivery.
func (s *Store) Subscribe(fn Listener) func() {
	entry := &listenerEntry{fn: fn}
	s.mu.Lock()
	s.listeners = append(s.listeners, entry)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		entry.fn = nil
		for i, e := range s.listeners {
			if e == entry {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	snapshot := make([]*listenerEntry, len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.Unlock()

	for _, e := range snapshot {
		s.mu.Lock()
		fn := e.fn
		s.mu.Unlock()
		if fn != nil {
			fn()
		}
	}
}
