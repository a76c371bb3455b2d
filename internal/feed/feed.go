// Package feed defines the content model, the pluggable source providers,
// and the aggregator that merges per-topic results into one feed.
package feed

import "time"

// Item is a single piece of content. URL is the identity used for
// deduplication; PublishedAt is the ordering key.
type Item struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	Summary     string    `json:"summary,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Labels      []string  `json:"labels,omitempty"`
}
