package service

import (
	"context"
	"sync"
	"time"

	"print_notifier/internal/models"
)

// memRecipientRepo is an in-memory repository.RecipientRepo.
type memRecipientRepo struct {
	mu       sync.Mutex
	items    []models.Recipient
	listErr  error
	saves    int
	replaces int
}

func (r *memRecipientRepo) List(ctx context.Context) ([]models.Recipient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]models.Recipient(nil), r.items...), nil
}

func (r *memRecipientRepo) Save(ctx context.Context, rec models.Recipient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	r.upsert(rec)
	return nil
}

func (r *memRecipientRepo) Replace(ctx context.Context, oldToken string, rec models.Recipient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaces++
	r.remove(oldToken, rec.PrinterID)
	r.upsert(rec)
	return nil
}

func (r *memRecipientRepo) Delete(ctx context.Context, token, printerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remove(token, printerID), nil
}

func (r *memRecipientRepo) upsert(rec models.Recipient) {
	for i := range r.items {
		if r.items[i].Token == rec.Token && r.items[i].PrinterID == rec.PrinterID {
			r.items[i] = rec
			return
		}
	}
	r.items = append(r.items, rec)
}

func (r *memRecipientRepo) remove(token, printerID string) bool {
	for i := range r.items {
		if r.items[i].Token == token && r.items[i].PrinterID == printerID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

// memSnoozeRepo is an in-memory repository.SnoozeRepo.
type memSnoozeRepo struct {
	mu    sync.Mutex
	saved map[models.EventCode]time.Time
}

func (r *memSnoozeRepo) Save(ctx context.Context, code models.EventCode, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saved == nil {
		r.saved = map[models.EventCode]time.Time{}
	}
	r.saved[code] = until
	return nil
}

func (r *memSnoozeRepo) LoadAll(ctx context.Context) (map[models.EventCode]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[models.EventCode]time.Time, len(r.saved))
	for k, v := range r.saved {
		out[k] = v
	}
	return out, nil
}

// recordingNotifier captures alerts and returns a canned outcome.
type recordingNotifier struct {
	mu     sync.Mutex
	alerts []models.Alert
	result []models.RecipientResult
}

func (n *recordingNotifier) Notify(ctx context.Context, alert models.Alert) models.DeliveryOutcome {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
	return models.DeliveryOutcome{AlertID: alert.ID, Code: alert.Code, Results: n.result, At: alert.At}
}

func (n *recordingNotifier) codes() []models.EventCode {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]models.EventCode, 0, len(n.alerts))
	for _, a := range n.alerts {
		out = append(out, a.Code)
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

var t0 = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func pct(v float64) *float64 { return &v }
