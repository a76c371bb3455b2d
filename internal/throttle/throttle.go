// Package throttle gates how often a full refresh cycle may run.
package throttle

import (
	"sync"
	"time"
)

// DefaultInterval is the minimum spacing between two non-forced cycles.
const DefaultInterval = 10 * time.Minute

// Gate tracks when the last refresh cycle completed successfully. A failed
// cycle never marks the gate, so a timely retry stays possible.
type Gate struct {
	mu          sync.Mutex
	interval    time.Duration
	lastUpdated *time.Time
	now         func() time.Time
}

func NewGate(interval time.Duration) *Gate {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Gate{interval: interval, now: time.Now}
}

// Seed restores the completion time of the last persisted cycle, typically
// the cached feed's snapshot timestamp at startup.
func (g *Gate) Seed(t time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastUpdated = &t
}

// ShouldRun reports whether a refresh cycle may start now.
func (g *Gate) ShouldRun(force bool) bool {
	if force {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.lastUpdated == nil {
		return true
	}
	return g.now().Sub(*g.lastUpdated) >= g.interval
}

// MarkCompleted records a successfully completed cycle. Callers must not
// invoke it on error paths.
func (g *Gate) MarkCompleted() {
	g.mu.Lock()
	defer g.mu.Unlock()
	t := g.now()
	g.lastUpdated = &t
}

// LastUpdated returns the completion time of the last successful cycle, or
// nil if none has completed.
func (g *Gate) LastUpdated() *time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.lastUpdated == nil {
		return nil
	}
	t := *g.lastUpdated
	return &t
}
