package throttle

import (
	"testing"
	"time"
)

func testGate(interval time.Duration) (*Gate, *time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := NewGate(interval)
	g.now = func() time.Time { return now }
	return g, &now
}

func TestFirstRunAlwaysAllowed(t *testing.T) {
	g, _ := testGate(10 * time.Minute)
	if !g.ShouldRun(false) {
		t.Error("expected first run to be allowed")
	}
	if g.LastUpdated() != nil {
		t.Error("expected nil LastUpdated before any cycle")
	}
}

func TestWithinIntervalBlocked(t *testing.T) {
	g, now := testGate(10 * time.Minute)
	g.MarkCompleted()

	*now = now.Add(1 * time.Minute)
	if g.ShouldRun(false) {
		t.Error("expected run to be blocked 1 minute after completion")
	}

	*now = now.Add(9 * time.Minute)
	if !g.ShouldRun(false) {
		t.Error("expected run to be allowed once the interval elapsed")
	}
}

func TestForceBypassesInterval(t *testing.T) {
	g, now := testGate(10 * time.Minute)
	g.MarkCompleted()

	*now = now.Add(1 * time.Second)
	if !g.ShouldRun(true) {
		t.Error("expected forced run to bypass the interval")
	}
}

func TestMarkCompletedUpdatesLastUpdated(t *testing.T) {
	g, now := testGate(10 * time.Minute)
	g.MarkCompleted()

	got := g.LastUpdated()
	if got == nil || !got.Equal(*now) {
		t.Errorf("LastUpdated = %v, want %v", got, *now)
	}
}

func TestSeedRestoresGate(t *testing.T) {
	g, now := testGate(10 * time.Minute)
	g.Seed(now.Add(-5 * time.Minute))

	if g.ShouldRun(false) {
		t.Error("expected seeded gate to block within interval")
	}
	g.Seed(now.Add(-11 * time.Minute))
	if !g.ShouldRun(false) {
		t.Error("expected seeded gate to allow past interval")
	}
}

func TestZeroIntervalFallsBackToDefault(t *testing.T) {
	g := NewGate(0)
	if g.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", g.interval, DefaultInterval)
	}
}
