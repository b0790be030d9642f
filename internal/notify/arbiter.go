package notify

import (
	"context"
	"errors"
	"strings"
	"time"

	"print_notifier/internal/config"
	"print_notifier/internal/logger"
	"print_notifier/internal/metrics"
	"print_notifier/internal/models"
)

const (
	pushPath     = "/v1/push_printer"
	bedEventPath = "/v1/push_printer/bed_events"
	mmuEventPath = "/v1/push_printer/mmu_events"
)

// RecipientSource returns a snapshot of the registered recipients.
type RecipientSource interface {
	ListRecipients(ctx context.Context) ([]models.Recipient, error)
}

// SettingsSource returns the live settings.
type SettingsSource interface {
	Get() config.Settings
}

// ArbiterDeps bundles the arbiter collaborators. Snapshots, Metrics and
// Channels are optional.
type ArbiterDeps struct {
	Log        *logger.Logger
	Catalog    *Catalog
	Transport  Poster
	Snapshots  Snapshotter
	Recipients RecipientSource
	Settings   SettingsSource
	Metrics    *metrics.Metrics
	Channels   []Channel
}

// Arbiter decides which payloads each recipient gets for an alert and sends them.
type Arbiter struct {
	log        *logger.Logger
	catalog    *Catalog
	transport  Poster
	snapshots  Snapshotter
	recipients RecipientSource
	settings   SettingsSource
	metrics    *metrics.Metrics
	channels   []Channel
}

func NewArbiter(d ArbiterDeps) *Arbiter {
	if d.Metrics == nil {
		d.Metrics = metrics.NewNop()
	}
	return &Arbiter{
		log:        d.Log,
		catalog:    d.Catalog,
		transport:  d.Transport,
		snapshots:  d.Snapshots,
		recipients: d.Recipients,
		settings:   d.Settings,
		metrics:    d.Metrics,
		channels:   d.Channels,
	}
}

// Notify fires the secondary channels, loads the current recipients and
// dispatches the alert to them.
func (a *Arbiter) Notify(ctx context.Context, alert models.Alert) models.DeliveryOutcome {
	a.fireChannels(ctx, alert)

	recipients, err := a.recipients.ListRecipients(ctx)
	if err != nil {
		a.log.Errorw("load_recipients_failed", "event_code", alert.Code, "error", err)
	}
	return a.Dispatch(ctx, alert, recipients)
}

// Dispatch delivers alert to recipients. Each token receives at most one
// delivery; failures are recorded per recipient and never stop the loop.
func (a *Arbiter) Dispatch(ctx context.Context, alert models.Alert, recipients []models.Recipient) models.DeliveryOutcome {
	start := time.Now()
	defer func() { a.metrics.DispatchSeconds.Observe(time.Since(start).Seconds()) }()

	out := models.DeliveryOutcome{AlertID: alert.ID, Code: alert.Code, At: time.Now().UTC()}
	cfg := a.settings.Get()

	server := strings.TrimRight(strings.TrimSpace(cfg.Push.ServerURL), "/")
	if server == "" {
		return a.suppress(out, models.SuppressNoServer)
	}
	if len(recipients) == 0 {
		return a.suppress(out, models.SuppressNoRecipients)
	}

	image := a.snapshot(ctx, alert)

	seen := make(map[string]struct{}, len(recipients))
	for _, r := range recipients {
		var res models.RecipientResult
		if _, dup := seen[r.Token]; dup {
			res = models.RecipientResult{Token: r.Token, PrinterID: r.PrinterID, Mode: models.ModeDuplicate}
		} else {
			seen[r.Token] = struct{}{}
			switch c := r.Capability().(type) {
			case models.Modern:
				res = a.sendModern(ctx, cfg, server, alert, r, c, image)
			case models.Legacy:
				res = a.sendLegacy(ctx, cfg, server, alert, r, image)
			}
		}
		a.metrics.Delivered(res)
		out.Results = append(out.Results, res)
	}

	a.log.Infow("alert_dispatched",
		"alert_id", alert.ID,
		"event_code", alert.Code,
		"delivered", out.Delivered(),
		"failures", out.Failures(),
	)
	return out
}

func (a *Arbiter) suppress(out models.DeliveryOutcome, reason models.SuppressReason) models.DeliveryOutcome {
	out.Suppressed = reason
	a.metrics.Suppressed(out.Code, reason)
	a.log.Infow("alert_suppressed", "alert_id", out.AlertID, "event_code", out.Code, "reason", reason)
	return out
}

// snapshot fetches the camera frame when the alert asks for one. Failures
// only drop the attachment.
func (a *Arbiter) snapshot(ctx context.Context, alert models.Alert) []byte {
	if !alert.WantsImage || a.snapshots == nil {
		return nil
	}
	img, err := a.snapshots.Snapshot(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoSnapshotURL) {
			a.log.Infow("snapshot_failed", "alert_id", alert.ID, "error", err)
		}
		return nil
	}
	return img
}

func (a *Arbiter) sendModern(ctx context.Context, cfg config.Settings, server string, alert models.Alert, r models.Recipient, c models.Modern, image []byte) models.RecipientResult {
	res := models.RecipientResult{Token: r.Token, PrinterID: r.PrinterID, Mode: models.ModeModern}
	url := server + pushPath

	if alert.Kind != models.KindJobStatus {
		payload := alertPayload{
			Tokens:      []string{r.Token},
			Title:       c.DisplayName,
			Message:     a.modernText(alert, c.Locale),
			Sound:       cfg.Push.Sound,
			PrinterName: c.DisplayName,
			UseDev:      cfg.Push.UseDev,
		}
		var img []byte
		if alert.Kind != models.KindJobError {
			img = image
		}
		record(&res, a.post(ctx, url, payload, img))
	}

	switch alert.Kind {
	case models.KindJobError, models.KindJobProgress, models.KindJobStatus:
		var img []byte
		if alert.Kind == models.KindJobStatus {
			img = image
		}
		record(&res, a.post(ctx, url, jobRequest(cfg, alert, r), img))
	}
	return res
}

func (a *Arbiter) sendLegacy(ctx context.Context, cfg config.Settings, server string, alert models.Alert, r models.Recipient, image []byte) models.RecipientResult {
	res := models.RecipientResult{Token: r.Token, PrinterID: r.PrinterID, Mode: models.ModeLegacy}

	switch {
	case alert.Code == models.EventBedCooled || alert.Code == models.EventBedWarmed:
		payload := bedPayload{
			Tokens:      []string{r.Token},
			PrinterID:   r.PrinterID,
			EventCode:   string(alert.Code),
			Temperature: floatParam(alert.Params, models.ParamThreshold),
			Minutes:     int(floatParam(alert.Params, models.ParamDuration)),
			Silent:      true,
			UseDev:      cfg.Push.UseDev,
		}
		record(&res, a.post(ctx, server+bedEventPath, payload, nil))
	case alert.Code == models.EventMMU:
		payload := mmuPayload{
			Tokens:    []string{r.Token},
			PrinterID: r.PrinterID,
			EventCode: string(models.EventMMU),
			Silent:    true,
			UseDev:    cfg.Push.UseDev,
		}
		record(&res, a.post(ctx, server+mmuEventPath, payload, nil))
	case alert.Kind.IsJob() && alert.StateID != models.StateFinishing:
		record(&res, a.post(ctx, server+pushPath, jobRequest(cfg, alert, r), image))
	default:
		res.Mode = models.ModeUnsupported
	}
	return res
}

// modernText is the visible message. Printer errors carry the host's own text.
func (a *Arbiter) modernText(alert models.Alert, locale string) string {
	if alert.Kind == models.KindJobError {
		if msg, ok := alert.Params[models.ParamMessage].(string); ok && msg != "" {
			return msg
		}
	}
	return a.catalog.Message(locale, alert.Code, alert.Params)
}

func jobRequest(cfg config.Settings, alert models.Alert, r models.Recipient) jobPayload {
	p := jobPayload{
		Tokens:       []string{r.Token},
		PrinterID:    r.PrinterID,
		PrinterState: alert.State,
		Silent:       true,
		UseDev:       cfg.Push.UseDev,
		Test:         alert.Test,
	}
	if alert.Completion != nil && *alert.Completion != 0 {
		c := *alert.Completion
		p.Completion = &c
	}
	return p
}

type postResult struct {
	status int
	err    error
}

func (a *Arbiter) post(ctx context.Context, url string, payload any, image []byte) postResult {
	status, err := a.transport.Post(ctx, url, payload, image)
	if err != nil {
		a.log.Warnw("push_delivery_failed", "url", url, "status", status, "error", err)
	}
	return postResult{status: status, err: err}
}

// record keeps the first failure; otherwise the latest status wins.
func record(res *models.RecipientResult, p postResult) {
	if res.Failed() {
		return
	}
	res.Status = p.status
	if p.err != nil {
		res.Err = p.err.Error()
	}
}

func (a *Arbiter) fireChannels(ctx context.Context, alert models.Alert) {
	if len(a.channels) == 0 || alert.Kind == models.KindJobStatus {
		return
	}
	text := a.modernText(alert, fallbackLocale)
	for _, ch := range a.channels {
		if err := ch.Fire(ctx, alert, text); err != nil {
			a.log.Warnw("channel_delivery_failed", "channel", ch.Name(), "event_code", alert.Code, "error", err)
		}
	}
}

func floatParam(params map[string]any, key string) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}
