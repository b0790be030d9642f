package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"print_notifier/internal/config"
	"print_notifier/internal/logger"
	"print_notifier/internal/metrics"
	"print_notifier/internal/models"
	"print_notifier/internal/notify"
)

func TestAlertQueue_PublishDropsWhenFull(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	q := NewAlertQueue(logger.Nop(), 1, &recordingNotifier{}, nil, m)

	if !q.Publish(models.NewAlert(models.EventMMU, t0, nil)) {
		t.Fatalf("first publish should fit")
	}
	if q.Publish(models.NewAlert(models.EventBedCooled, t0, nil)) {
		t.Fatalf("second publish should be dropped")
	}
	if q.Len() != 1 {
		t.Fatalf("got len %d, want 1", q.Len())
	}
	got := testutil.ToFloat64(m.AlertsSuppressed.WithLabelValues(string(models.EventBedCooled), string(models.SuppressQueueFull)))
	if got != 1 {
		t.Fatalf("queue_full counter: got %v, want 1", got)
	}
}

func TestAlertQueue_DeliverRecordsHistoryAndOutcome(t *testing.T) {
	hist := &fakeHistoryRepo{}
	n := &recordingNotifier{result: []models.RecipientResult{
		{Token: "a", Mode: models.ModeModern, Status: 200},
		{Token: "b", Mode: models.ModeLegacy, Status: models.TransportErrorStatus, Err: "dial"},
	}}
	q := NewAlertQueue(logger.Nop(), 4, n, hist, nil)

	alert := models.NewAlert(models.EventBedCooled, t0, map[string]any{models.ParamThreshold: 30.0})
	out := q.Deliver(context.Background(), alert)

	if out.Delivered() != 1 || out.Failures() != 1 {
		t.Fatalf("outcome: delivered=%d failures=%d", out.Delivered(), out.Failures())
	}
	if len(hist.appended) != 1 {
		t.Fatalf("got %d history rows, want 1", len(hist.appended))
	}
	rec := hist.appended[0]
	if rec.EventCode != "bed-cooled" || rec.Summary != "bed-cooled delivered with failures" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	meta := rec.Metadata.(map[string]any)
	if meta["alert_id"] != alert.ID || meta["failures"] != 1 {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if last := q.LastOutcome(); last == nil || last.AlertID != alert.ID {
		t.Fatalf("last outcome not kept: %+v", last)
	}
}

func TestAlertQueue_RunDrainsUntilCanceled(t *testing.T) {
	n := &recordingNotifier{}
	q := NewAlertQueue(logger.Nop(), 4, n, nil, nil)
	outcomes, cancelSub := q.Subscribe()
	defer cancelSub()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		q.Run(ctx)
		close(done)
	}()

	q.Publish(models.NewAlert(models.EventMMU, t0, nil))
	select {
	case out := <-outcomes:
		if out.Code != models.EventMMU {
			t.Fatalf("got %s, want %s", out.Code, models.EventMMU)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no outcome streamed")
	}

	cancel()
	<-done
	if got := n.codes(); len(got) != 1 {
		t.Fatalf("got %v, want one delivery", got)
	}
}

func TestAlertQueue_SubscribeCancelIsIdempotent(t *testing.T) {
	q := NewAlertQueue(logger.Nop(), 1, &recordingNotifier{}, nil, nil)
	ch, cancel := q.Subscribe()
	cancel()
	cancel()
	if _, open := <-ch; open {
		t.Fatalf("channel should be closed")
	}
	// broadcasting after cancel must not panic
	q.Deliver(context.Background(), models.NewAlert(models.EventMMU, t0, nil))
}

// acceptingPoster answers every push with 200.
type acceptingPoster struct{ posts int }

func (p *acceptingPoster) Post(context.Context, string, any, []byte) (int, error) {
	p.posts++
	return 200, nil
}

func TestAlertQueue_DeliveriesCountedOncePerRecipient(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	catalog, err := notify.NewCatalog(logger.Nop())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	repo := &memRecipientRepo{items: []models.Recipient{
		{Token: "tok-1", PrinterID: "p1", DeviceName: "phone", DisplayName: "Prusa", Language: "en"},
	}}
	poster := &acceptingPoster{}
	arbiter := notify.NewArbiter(notify.ArbiterDeps{
		Log:        logger.Nop(),
		Catalog:    catalog,
		Transport:  poster,
		Recipients: NewRecipientService(logger.Nop(), repo),
		Settings:   config.NewStore(config.Defaults()),
		Metrics:    m,
	})
	q := NewAlertQueue(logger.Nop(), 4, arbiter, nil, m)

	out := q.Deliver(context.Background(), models.NewAlert(models.EventBedCooled, t0, map[string]any{models.ParamThreshold: 30.0}))

	if out.Delivered() != 1 || poster.posts == 0 {
		t.Fatalf("delivered=%d posts=%d", out.Delivered(), poster.posts)
	}
	if got := testutil.ToFloat64(m.Deliveries.WithLabelValues(string(models.ModeModern), "ok")); got != 1 {
		t.Fatalf("deliveries_total{modern,ok} = %v, want 1", got)
	}
}
