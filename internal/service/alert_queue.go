package service

import (
	"context"
	"sync"
	"time"

	"print_notifier/internal/logger"
	"print_notifier/internal/metrics"
	"print_notifier/internal/models"
	"print_notifier/internal/repository"
)

// Notifier delivers one alert. *notify.Arbiter satisfies it.
type Notifier interface {
	Notify(ctx context.Context, alert models.Alert) models.DeliveryOutcome
}

// AlertQueue decouples detectors from network delivery. Publish never blocks;
// a single worker drains the queue, dispatches and appends history.
type AlertQueue struct {
	log      *logger.Logger
	notifier Notifier
	history  repository.HistoryRepo
	metrics  *metrics.Metrics
	ch       chan models.Alert

	mu          sync.Mutex
	last        *models.DeliveryOutcome
	subscribers map[chan models.DeliveryOutcome]struct{}
}

func NewAlertQueue(log *logger.Logger, size int, notifier Notifier, history repository.HistoryRepo, m *metrics.Metrics) *AlertQueue {
	if m == nil {
		m = metrics.NewNop()
	}
	return &AlertQueue{
		log:         log,
		notifier:    notifier,
		history:     history,
		metrics:     m,
		ch:          make(chan models.Alert, max(size, 1)),
		subscribers: make(map[chan models.DeliveryOutcome]struct{}),
	}
}

// Publish enqueues alert and reports false when the queue is full.
func (q *AlertQueue) Publish(alert models.Alert) bool {
	select {
	case q.ch <- alert:
		q.metrics.QueueDepth.Set(float64(len(q.ch)))
		return true
	default:
		q.metrics.Suppressed(alert.Code, models.SuppressQueueFull)
		q.log.Warnw("alert_dropped", "alert_id", alert.ID, "event_code", alert.Code, "reason", models.SuppressQueueFull)
		return false
	}
}

// Len is the number of alerts waiting.
func (q *AlertQueue) Len() int { return len(q.ch) }

// Run dispatches queued alerts until ctx is canceled.
func (q *AlertQueue) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case alert := <-q.ch:
			q.metrics.QueueDepth.Set(float64(len(q.ch)))
			q.Deliver(ctx, alert)
		}
	}
}

// Deliver dispatches alert synchronously and records the outcome.
func (q *AlertQueue) Deliver(ctx context.Context, alert models.Alert) models.DeliveryOutcome {
	out := q.notifier.Notify(ctx, alert)
	q.appendHistory(ctx, alert, out)
	q.broadcast(out)
	return out
}

// Subscribe streams every outcome until cancel is called. Slow subscribers
// miss outcomes instead of blocking the worker.
func (q *AlertQueue) Subscribe() (<-chan models.DeliveryOutcome, func()) {
	ch := make(chan models.DeliveryOutcome, 8)
	q.mu.Lock()
	q.subscribers[ch] = struct{}{}
	q.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			q.mu.Lock()
			delete(q.subscribers, ch)
			q.mu.Unlock()
			close(ch)
		})
	}
}

// LastOutcome returns the most recent dispatch result, if any.
func (q *AlertQueue) LastOutcome() *models.DeliveryOutcome {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.last == nil {
		return nil
	}
	out := *q.last
	return &out
}

func (q *AlertQueue) broadcast(out models.DeliveryOutcome) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.last = &out
	for ch := range q.subscribers {
		select {
		case ch <- out:
		default:
		}
	}
}

func (q *AlertQueue) appendHistory(ctx context.Context, alert models.Alert, out models.DeliveryOutcome) {
	if q.history == nil {
		return
	}
	meta := map[string]any{
		"alert_id":  alert.ID,
		"delivered": out.Delivered(),
		"failures":  out.Failures(),
	}
	if len(alert.Params) > 0 {
		meta["params"] = alert.Params
	}
	if out.Suppressed != models.SuppressNone {
		meta["suppressed"] = out.Suppressed
	}
	if alert.Test {
		meta["test"] = true
	}

	rec := models.NotificationRecord{
		OccurredAt: alert.At,
		EventCode:  string(alert.Code),
		Summary:    summarize(alert, out),
		Metadata:   meta,
	}
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = time.Now().UTC()
	}
	if err := q.history.Append(ctx, rec); err != nil {
		q.log.Errorw("history_append_failed", "alert_id", alert.ID, "error", err)
	}
}

func summarize(alert models.Alert, out models.DeliveryOutcome) string {
	switch {
	case out.Suppressed != models.SuppressNone:
		return string(alert.Code) + " suppressed: " + string(out.Suppressed)
	case out.Failures() > 0:
		return string(alert.Code) + " delivered with failures"
	default:
		return string(alert.Code) + " delivered"
	}
}
