package monitor

import (
	"math"
	"sync"
	"time"

	"print_notifier/internal/logger"
	"print_notifier/internal/models"
)

// socCooldown is the minimum gap between two SoC alerts.
const socCooldown = 120 // minutes

// SoCSource reads the host board temperature.
type SoCSource interface {
	SoCTemperature() (float64, error)
}

// SoCSample is one point of the recent SoC temperature history.
type SoCSample struct {
	Time int64   `json:"time"`
	Temp float64 `json:"temp"`
}

// SoCDetector samples the board temperature, keeps the last hour of readings
// and alerts when it exceeds the configured high.
type SoCDetector struct {
	log    *logger.Logger
	report Reporter
	source SoCSource
	gate   *Gate

	mu         sync.Mutex
	samples    []SoCSample
	maxSamples int
}

// NewSoCDetector sizes the history for one hour at the given cadence.
func NewSoCDetector(log *logger.Logger, reporter Reporter, source SoCSource, every time.Duration, now time.Time) *SoCDetector {
	maxSamples := 120
	if every > 0 {
		maxSamples = int(time.Hour / every)
	}
	return &SoCDetector{
		log:        log,
		report:     orNop(reporter),
		source:     source,
		gate:       NewGate(now),
		maxSamples: max(maxSamples, 1),
	}
}

// Check reads the source once. A zero high disables alerting but still records history.
func (d *SoCDetector) Check(high float64, now time.Time) (*models.Alert, error) {
	temp, err := d.source.SoCTemperature()
	if err != nil {
		return nil, err
	}
	temp = math.Round(temp*10) / 10

	d.mu.Lock()
	d.samples = append(d.samples, SoCSample{Time: now.Unix(), Temp: temp})
	if over := len(d.samples) - d.maxSamples; over > 0 {
		d.samples = d.samples[over:]
	}
	d.mu.Unlock()

	if high <= 0 || temp <= high {
		return nil, nil
	}
	if reason := d.gate.Allow(now, socCooldown); reason != models.SuppressNone {
		d.report.Suppressed(models.EventSoCTemp, reason)
		return nil, nil
	}

	a := models.NewAlert(models.EventSoCTemp, now, map[string]any{
		models.ParamTemperature: temp,
		models.ParamThreshold:   high,
	})
	d.log.Warnw("soc_temperature_high", "temperature", temp, "high", high)
	return &a, nil
}

// Samples returns a copy of the recorded history, oldest first.
func (d *SoCDetector) Samples() []SoCSample {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]SoCSample(nil), d.samples...)
}
