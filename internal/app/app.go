// Package app wires the feed core together: topics, aggregation, throttling,
// diff notifications, and the caches. One App is constructed at startup and
// threaded through explicitly; there is no package-level instance.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/matheuskafuri/newsdeck/internal/cache"
	"github.com/matheuskafuri/newsdeck/internal/extract"
	"github.com/matheuskafuri/newsdeck/internal/feed"
	"github.com/matheuskafuri/newsdeck/internal/handle"
	"github.com/matheuskafuri/newsdeck/internal/notify"
	"github.com/matheuskafuri/newsdeck/internal/store"
	"github.com/matheuskafuri/newsdeck/internal/throttle"
	"github.com/matheuskafuri/newsdeck/internal/topic"
)

// Options carries the collaborators an App is built from.
type Options struct {
	KV            store.KV
	Providers     []feed.Provider
	Classifier    feed.Classifier
	Sink          notify.Sink
	Extractor     extract.Extractor
	Logger        *slog.Logger
	Interval      time.Duration // throttle window
	PerTopicLimit int
	NotifyWindow  time.Duration
	NotifyCap     int
	ExtractTTL    time.Duration
	ExtractMax    int
}

// App is the feed engine behind the client surfaces.
type App struct {
	log          *slog.Logger
	topics       *topic.Store
	agg          *feed.Aggregator
	gate         *throttle.Gate
	notifier     *notify.Notifier
	feedCache    *cache.FeedCache
	extractCache *cache.ExtractionCache
	extractor    extract.Extractor
	handles      *handle.Cache

	perTopicLimit int
	extractTTL    time.Duration

	refreshMu sync.Mutex // serializes refresh cycles

	mu    sync.Mutex
	items []feed.Item
}

func New(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.PerTopicLimit <= 0 {
		opts.PerTopicLimit = 10
	}
	if opts.ExtractTTL <= 0 {
		opts.ExtractTTL = 24 * time.Hour
	}

	a := &App{
		log:           log,
		topics:        topic.NewStore(opts.KV, log),
		agg:           feed.NewAggregator(opts.Providers, opts.Classifier, log),
		gate:          throttle.NewGate(opts.Interval),
		notifier:      notify.NewNotifier(opts.Sink, "Feed Updates", opts.NotifyWindow, opts.NotifyCap),
		feedCache:     cache.NewFeedCache(opts.KV, log),
		extractCache:  cache.NewExtractionCache(opts.KV, opts.ExtractMax, log),
		extractor:     opts.Extractor,
		handles:       handle.New(handle.DefaultCapacity, handle.DefaultTTL),
		perTopicLimit: opts.PerTopicLimit,
		extractTTL:    opts.ExtractTTL,
	}

	// Last-known-good feed for instant display before the first refresh.
	if snap := a.feedCache.Load(); snap != nil {
		a.items = snap.Items
		a.gate.Seed(snap.Timestamp)
	}

	// Topic mutations immediately force a refresh cycle.
	a.topics.Subscribe(func() {
		if err := a.Refresh(context.Background(), true); err != nil {
			log.Warn("refresh after topic change failed", "error", err)
		}
	})

	return a
}

// AddTopic subscribes to a new topic. A label whose derived id already
// exists is a no-op.
func (a *App) AddTopic(label, queryOverride string, typ topic.Type) (topic.Topic, bool) {
	return a.topics.Add(label, queryOverride, typ)
}

// RemoveTopic drops a topic by id, idempotently.
func (a *App) RemoveTopic(id string) {
	a.topics.Remove(id)
}

// Topics returns the subscriptions in insertion order.
func (a *App) Topics() []topic.Topic {
	return a.topics.List()
}

// Refresh runs one aggregation cycle if the gate permits or force is set.
// On failure the cached feed and last-updated time stay untouched so the
// last-known-good feed keeps showing. A trigger arriving while a cycle is
// in flight is skipped, never queued.
func (a *App) Refresh(ctx context.Context, force bool) error {
	if !a.refreshMu.TryLock() {
		return nil
	}
	defer a.refreshMu.Unlock()

	if !a.gate.ShouldRun(force) {
		return nil
	}

	topics := a.topics.List()
	items, err := a.agg.Run(ctx, topics, a.perTopicLimit)
	if err != nil {
		return fmt.Errorf("refreshing feed: %w", err)
	}

	prev := a.Items()
	emitted := a.notifier.Diff(prev, items)
	if emitted > 0 {
		a.log.Debug("emitted notifications", "count", emitted)
	}

	if err := a.feedCache.Save(items); err != nil {
		// Persistence failure degrades to in-memory state, it does not
		// fail the cycle.
		a.log.Error("saving feed snapshot", "error", err)
	}

	a.mu.Lock()
	a.items = items
	a.mu.Unlock()

	a.gate.MarkCompleted()
	return nil
}

// Items returns the current feed, newest first.
func (a *App) Items() []feed.Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]feed.Item, len(a.items))
	copy(out, a.items)
	return out
}

// LastUpdated returns when the last successful cycle completed, or nil.
func (a *App) LastUpdated() *time.Time {
	return a.gate.LastUpdated()
}

// CacheExtractedArticle stores an extraction payload under its url.
func (a *App) CacheExtractedArticle(url string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = a.extractTTL
	}
	return a.extractCache.Put(url, payload, ttl)
}

// CachedExtractedArticle returns the cached payload for url, or nil on miss,
// expiry, or corruption.
func (a *App) CachedExtractedArticle(url string) []byte {
	return a.extractCache.Get(url)
}

// ReadArticle returns readable content for url, preferring the extraction
// cache and falling back to a live extraction that is then cached.
func (a *App) ReadArticle(ctx context.Context, url string) (*extract.Article, error) {
	if payload := a.extractCache.Get(url); payload != nil {
		if article := extract.Decode(payload); article != nil {
			return article, nil
		}
		// Unreadable payload falls through to live extraction.
	}

	article, err := a.extractor.Extract(ctx, url)
	if err != nil {
		return nil, err
	}

	payload, err := extract.Encode(article)
	if err != nil {
		return nil, fmt.Errorf("encoding extracted article: %w", err)
	}
	if err := a.extractCache.Put(url, payload, a.extractTTL); err != nil {
		a.log.Warn("caching extracted article", "url", url, "error", err)
	}
	return article, nil
}

// HandleFor stores the item in the short-lived handle cache, returning an
// id another surface can resolve.
func (a *App) HandleFor(item feed.Item) string {
	return a.handles.Put(item)
}

// ResolveHandle looks up a previously issued handle.
func (a *App) ResolveHandle(id string) (feed.Item, bool) {
	return a.handles.Get(id)
}
