// Package monitor holds the detectors that turn printer telemetry and console
// output into alerts. Detectors are synchronous and do no I/O; the caller
// feeds them readings and forwards whatever they return.
package monitor

import (
	"errors"
	"sync/atomic"

	"print_notifier/internal/models"
)

// ErrUnknownEventClass is returned when a snooze targets a class without a snooze bucket.
var ErrUnknownEventClass = errors.New("unknown event class")

// Reporter is told about every alert a gate swallowed.
type Reporter interface {
	Suppressed(code models.EventCode, reason models.SuppressReason)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(code models.EventCode, reason models.SuppressReason)

func (f ReporterFunc) Suppressed(code models.EventCode, reason models.SuppressReason) {
	f(code, reason)
}

type nopReporter struct{}

func (nopReporter) Suppressed(models.EventCode, models.SuppressReason) {}

func orNop(r Reporter) Reporter {
	if r == nil {
		return nopReporter{}
	}
	return r
}

// AlertSink receives alerts emitted by event-driven detectors.
type AlertSink func(models.Alert)

// HeaterTimeoutFlag is raised by the console classifier when the firmware
// reports a heater timeout and read by the runaway detector.
type HeaterTimeoutFlag struct {
	v atomic.Bool
}

func (f *HeaterTimeoutFlag) Set()         { f.v.Store(true) }
func (f *HeaterTimeoutFlag) Clear()       { f.v.Store(false) }
func (f *HeaterTimeoutFlag) Active() bool { return f.v.Load() }
