package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"print_notifier/internal/models"
)

const namespace = "printnotify"

// Metrics holds the counters shared by the monitor, the alert queue and the arbiter.
type Metrics struct {
	AlertsRaised     *prometheus.CounterVec
	AlertsSuppressed *prometheus.CounterVec
	Deliveries       *prometheus.CounterVec
	DispatchSeconds  prometheus.Histogram
	QueueDepth       prometheus.Gauge
	SoCTemperature   prometheus.Gauge
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AlertsRaised: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_raised_total",
			Help:      "Alerts produced by detectors.",
		}, []string{"event_code"}),
		AlertsSuppressed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_suppressed_total",
			Help:      "Alerts swallowed by a gate, by reason.",
		}, []string{"event_code", "reason"}),
		Deliveries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Per-recipient delivery attempts.",
		}, []string{"mode", "result"}),
		DispatchSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent dispatching one alert to all recipients.",
			Buckets:   prometheus.DefBuckets,
		}),
		QueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alert_queue_depth",
			Help:      "Alerts waiting for dispatch.",
		}),
		SoCTemperature: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "soc_temperature_celsius",
			Help:      "Last sampled host board temperature.",
		}),
	}
}

// NewNop returns metrics registered on a private registry.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) Raised(code models.EventCode) {
	m.AlertsRaised.WithLabelValues(string(code)).Inc()
}

func (m *Metrics) Suppressed(code models.EventCode, reason models.SuppressReason) {
	m.AlertsSuppressed.WithLabelValues(string(code), string(reason)).Inc()
}

// Delivered records one recipient result.
func (m *Metrics) Delivered(r models.RecipientResult) {
	result := "ok"
	switch {
	case r.Mode == models.ModeDuplicate || r.Mode == models.ModeUnsupported:
		result = "skipped"
	case r.Failed():
		result = "failed"
	}
	m.Deliveries.WithLabelValues(string(r.Mode), result).Inc()
}
