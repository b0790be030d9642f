package monitor

import (
	"sync"
	"time"

	"print_notifier/internal/models"
)

// Gate combines a per-class debounce with a snooze window.
//
// The debounce runs first: a candidate inside the interval since the last
// accepted one is dropped and does not move the timestamp. An accepted
// candidate records its time even if the snooze then swallows it.
type Gate struct {
	mu          sync.Mutex
	last        time.Time
	snoozeUntil time.Time
}

// NewGate returns a gate that is not snoozed at now.
func NewGate(now time.Time) *Gate {
	return &Gate{snoozeUntil: now}
}

// Allow reports SuppressNone when a candidate may be delivered.
func (g *Gate) Allow(now time.Time, intervalMinutes int) models.SuppressReason {
	if intervalMinutes <= 0 {
		return models.SuppressDisabled
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.last.IsZero() && now.Sub(g.last).Minutes() <= float64(intervalMinutes) {
		return models.SuppressDebounce
	}
	g.last = now
	if now.Before(g.snoozeUntil) {
		return models.SuppressSnoozed
	}
	return models.SuppressNone
}

// Snooze silences the gate for minutes starting at now.
func (g *Gate) Snooze(now time.Time, minutes int) time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.snoozeUntil = now.Add(time.Duration(minutes) * time.Minute)
	return g.snoozeUntil
}

// SnoozedUntil returns the end of the current snooze window.
func (g *Gate) SnoozedUntil() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snoozeUntil
}

// SnoozeUntil restores a window that ends at until.
func (g *Gate) SnoozeUntil(until time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.snoozeUntil = until
}
