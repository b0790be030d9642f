package monitor

import (
	"sync"
	"time"

	"print_notifier/internal/config"
	"print_notifier/internal/models"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type suppression struct {
	code   models.EventCode
	reason models.SuppressReason
}

type recordingReporter struct {
	mu   sync.Mutex
	seen []suppression
}

func (r *recordingReporter) Suppressed(code models.EventCode, reason models.SuppressReason) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, suppression{code, reason})
}

func (r *recordingReporter) reasons() []models.SuppressReason {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.SuppressReason, 0, len(r.seen))
	for _, s := range r.seen {
		out = append(out, s.reason)
	}
	return out
}

// fakeClock is advanced by hand.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func thermalDefaults() config.ThermalConfig {
	return config.Defaults().Thermal
}
