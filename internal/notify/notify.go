// Package notify turns newly-arrived feed items into bounded notifications.
package notify

import (
	"time"

	"github.com/matheuskafuri/newsdeck/internal/feed"
)

// Kind tags what a notification is about.
type Kind string

const KindFeed Kind = "feed"

// Notification is handed to an external sink and never persisted here.
type Notification struct {
	Title      string
	Source     string
	Timestamp  time.Time
	ArticleURL string
	Kind       Kind
}

// Sink receives notifications, fire-and-forget.
type Sink interface {
	Emit(Notification)
}

// discardSink drops notifications; it stands in when no sink is wired.
type discardSink struct{}

func (discardSink) Emit(Notification) {}

const (
	// DefaultWindow is how recent an item must be to notify about it.
	DefaultWindow = 15 * time.Minute
	// DefaultCap bounds notifications per refresh cycle.
	DefaultCap = 3
)

// Notifier compares consecutive aggregation results and emits notifications
// for genuinely new, recent items.
type Notifier struct {
	window time.Duration
	cap    int
	source string
	sink   Sink
	now    func() time.Time
}

// NewNotifier builds a notifier emitting at most cap notifications per cycle
// for items newer than window. source is the fixed label carried on every
// notification.
func NewNotifier(sink Sink, source string, window time.Duration, cap int) *Notifier {
	if window <= 0 {
		window = DefaultWindow
	}
	if cap <= 0 {
		cap = DefaultCap
	}
	if sink == nil {
		sink = discardSink{}
	}
	return &Notifier{window: window, cap: cap, source: source, sink: sink, now: time.Now}
}

// Diff emits notifications for items of next that are absent from prev and
// published within the recency window, in next's order, up to the per-cycle
// cap. Candidates beyond the cap are dropped, not queued. Returns the number
// of notifications emitted.
func (n *Notifier) Diff(prev, next []feed.Item) int {
	previous := make(map[string]bool, len(prev))
	for _, it := range prev {
		previous[it.URL] = true
	}

	now := n.now()
	cutoff := now.Add(-n.window)

	emitted := 0
	for _, it := range next {
		if emitted >= n.cap {
			break
		}
		if previous[it.URL] || it.PublishedAt.Before(cutoff) {
			continue
		}
		n.sink.Emit(Notification{
			Title:      it.Title,
			Source:     n.source,
			Timestamp:  now,
			ArticleURL: it.URL,
			Kind:       KindFeed,
		})
		emitted++
	}
	return emitted
}
