package feed

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/matheuskafuri/newsdeck/internal/topic"
)

// ErrAllProvidersFailed reports a cycle in which every provider call failed,
// so there is no new data to replace the cached feed with.
var ErrAllProvidersFailed = errors.New("all provider fetches failed")

// Classifier tags item text with sector labels. Implementations are
// heuristics; an empty result is valid.
type Classifier interface {
	Classify(text string) []string
}

// DefaultFetchTimeout bounds a single provider call so one slow source
// cannot stall the whole cycle.
const DefaultFetchTimeout = 15 * time.Second

// Aggregator fans a topic's query out to every provider, then merges,
// deduplicates, and sorts the combined results.
type Aggregator struct {
	providers    []Provider
	classifier   Classifier // optional
	log          *slog.Logger
	fetchTimeout time.Duration
}

func NewAggregator(providers []Provider, classifier Classifier, log *slog.Logger) *Aggregator {
	if log == nil {
		log = slog.Default()
	}
	return &Aggregator{
		providers:    providers,
		classifier:   classifier,
		log:          log,
		fetchTimeout: DefaultFetchTimeout,
	}
}

// Run fetches perTopicLimit items per (topic, provider) pair concurrently.
// Individual fetch failures are logged and contribute nothing; the run only
// errors when every fetch failed. With no topics it returns an empty feed
// without touching any provider.
func (a *Aggregator) Run(ctx context.Context, topics []topic.Topic, perTopicLimit int) ([]Item, error) {
	if len(topics) == 0 {
		return []Item{}, nil
	}

	// One result slot per (topic, provider) pair, so the merge order is
	// topic order then provider order no matter which fetch finishes first.
	slots := make([][]Item, len(topics)*len(a.providers))
	var failures int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for ti, t := range topics {
		for pi, p := range a.providers {
			wg.Add(1)
			go func(slot int, t topic.Topic, p Provider) {
				defer wg.Done()
				fetchCtx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
				defer cancel()

				items, err := p.Fetch(fetchCtx, t.Query, perTopicLimit)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					failures++
					a.log.Warn("provider fetch failed",
						"provider", p.Name(), "topic", t.ID, "error", err)
					return
				}
				slots[slot] = items
			}(ti*len(a.providers)+pi, t, p)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		// Torn-down consumer: discard partial work.
		return nil, err
	}
	// The error only fires when fetches were attempted and all of them
	// failed; with zero configured providers there is nothing to report.
	if attempted := len(topics) * len(a.providers); attempted > 0 && failures == attempted {
		return nil, ErrAllProvidersFailed
	}

	var merged []Item
	for _, items := range slots {
		merged = append(merged, items...)
	}

	deduped := dedupeByURL(merged)

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].PublishedAt.After(deduped[j].PublishedAt)
	})

	if a.classifier != nil {
		for i := range deduped {
			deduped[i].Labels = a.classifier.Classify(deduped[i].Title + " " + deduped[i].Summary)
		}
	}
	return deduped, nil
}

// dedupeByURL keeps the first occurrence of each URL, in input order.
// Metadata from later duplicates is discarded, not merged.
func dedupeByURL(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if seen[it.URL] {
			continue
		}
		seen[it.URL] = true
		out = append(out, it)
	}
	return out
}
