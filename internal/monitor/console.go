package monitor

import (
	"strings"
	"time"

	"print_notifier/internal/config"
	"print_notifier/internal/logger"
	"print_notifier/internal/models"
)

const (
	mmuOpenMarker       = "mmu_get_response - begin move: T-code"
	mmuCloseMarker      = "mmu_get_response() returning: 0"
	pausedMarker        = "echo:busy: paused for user"
	heaterTimeoutMarker = "Heater Timeout"

	// mmuLineBudget is how many lines may pass between the MMU markers.
	mmuLineBudget = 5
)

// ProgressFunc returns the current job completion and whether one is known.
type ProgressFunc func() (float64, bool)

// ConsoleClassifier scans firmware console lines for printer-assistance
// requests. Observe must be called from a single goroutine; Snooze may be
// called concurrently.
type ConsoleClassifier struct {
	log           *logger.Logger
	reporter      Reporter
	emit          AlertSink
	progress      ProgressFunc
	settings      func() config.ConsoleConfig
	heaterTimeout *HeaterTimeoutFlag
	now           func() time.Time

	linesSinceMarker *int
	mmuGate          *Gate
	pauseGate        *Gate
}

// ConsoleDeps bundles the collaborators of a ConsoleClassifier.
type ConsoleDeps struct {
	Log           *logger.Logger
	Reporter      Reporter
	Emit          AlertSink
	Progress      ProgressFunc
	Settings      func() config.ConsoleConfig
	HeaterTimeout *HeaterTimeoutFlag
	Now           func() time.Time
}

func NewConsoleClassifier(deps ConsoleDeps) *ConsoleClassifier {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.HeaterTimeout == nil {
		deps.HeaterTimeout = &HeaterTimeoutFlag{}
	}
	if deps.Progress == nil {
		deps.Progress = func() (float64, bool) { return 0, false }
	}
	if deps.Emit == nil {
		deps.Emit = func(models.Alert) {}
	}
	now := deps.Now()
	return &ConsoleClassifier{
		log:           deps.Log,
		reporter:      orNop(deps.Reporter),
		emit:          deps.Emit,
		progress:      deps.Progress,
		settings:      deps.Settings,
		heaterTimeout: deps.HeaterTimeout,
		now:           deps.Now,
		mmuGate:       NewGate(now),
		pauseGate:     NewGate(now),
	}
}

// Observe classifies one line. The line is returned unchanged so the
// classifier can sit inline in a host's line-processing chain.
func (c *ConsoleClassifier) Observe(line string) string {
	if strings.Contains(line, heaterTimeoutMarker) {
		c.heaterTimeout.Set()
		c.log.Infow("heater_timeout_reported")
	}

	if strings.HasPrefix(line, mmuOpenMarker) {
		zero := 0
		c.linesSinceMarker = &zero
		return line
	}
	if c.linesSinceMarker != nil {
		if strings.HasPrefix(line, mmuCloseMarker) {
			c.linesSinceMarker = nil
			c.fire(models.EventMMU, c.mmuGate, c.settings().MMUIntervalMinutes)
			return line
		}
		*c.linesSinceMarker++
		if *c.linesSinceMarker > mmuLineBudget {
			c.linesSinceMarker = nil
			c.log.Debugw("mmu_sequence_abandoned")
		}
	}

	if strings.HasPrefix(line, pausedMarker) {
		interval := c.settings().PauseIntervalMinutes
		if interval <= 0 {
			c.reporter.Suppressed(models.EventPausedForUser, models.SuppressDisabled)
			return line
		}
		completion, ok := c.progress()
		if !ok || completion <= 0 || completion >= 100 {
			return line
		}
		c.fire(models.EventPausedForUser, c.pauseGate, interval)
	}
	return line
}

// Snooze silences an assistance class for minutes. Accepted classes are
// mmu-event and paused-user-event.
func (c *ConsoleClassifier) Snooze(code models.EventCode, minutes int) (time.Time, error) {
	g, err := c.gateFor(code)
	if err != nil {
		return time.Time{}, err
	}
	until := g.Snooze(c.now(), minutes)
	c.log.Infow("snoozed", "event_code", code, "minutes", minutes, "until", until)
	return until, nil
}

// RestoreSnooze re-applies a persisted window. Expired windows are ignored.
func (c *ConsoleClassifier) RestoreSnooze(code models.EventCode, until time.Time) error {
	g, err := c.gateFor(code)
	if err != nil {
		return err
	}
	if until.After(c.now()) {
		g.SnoozeUntil(until)
	}
	return nil
}

// SnoozedUntil reports the end of the snooze window for an assistance class.
func (c *ConsoleClassifier) SnoozedUntil(code models.EventCode) (time.Time, error) {
	g, err := c.gateFor(code)
	if err != nil {
		return time.Time{}, err
	}
	return g.SnoozedUntil(), nil
}

func (c *ConsoleClassifier) gateFor(code models.EventCode) (*Gate, error) {
	switch code {
	case models.EventMMU:
		return c.mmuGate, nil
	case models.EventPausedForUser:
		return c.pauseGate, nil
	default:
		return nil, ErrUnknownEventClass
	}
}

func (c *ConsoleClassifier) fire(code models.EventCode, g *Gate, interval int) {
	now := c.now()
	if reason := g.Allow(now, interval); reason != models.SuppressNone {
		c.reporter.Suppressed(code, reason)
		return
	}
	c.log.Infow("assistance_detected", "event_code", code)
	c.emit(models.NewAlert(code, now, nil))
}
