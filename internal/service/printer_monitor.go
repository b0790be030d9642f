package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"print_notifier/internal/config"
	"print_notifier/internal/logger"
	"print_notifier/internal/metrics"
	"print_notifier/internal/models"
	"print_notifier/internal/monitor"
	"print_notifier/internal/repository"
)

var ErrInvalidSnooze = errors.New("snooze minutes must be >= 0")

const staleReadingTicks = 3

// MonitorDeps bundles the collaborators of a PrinterMonitor. Snoozes, SoC,
// Metrics and Now are optional.
type MonitorDeps struct {
	Log      *logger.Logger
	Settings *config.Store
	Status   *PrinterStatusStore
	Queue    *AlertQueue
	Snoozes  repository.SnoozeRepo
	SoC      monitor.SoCSource
	Metrics  *metrics.Metrics
	Now      func() time.Time
}

// PrinterMonitor owns the detector bank of one printer. Temperature and SoC
// checks run on the Run goroutine; host events go through a single
// mutex-guarded pipeline in arrival order.
type PrinterMonitor struct {
	log      *logger.Logger
	settings *config.Store
	status   *PrinterStatusStore
	queue    *AlertQueue
	snoozes  repository.SnoozeRepo
	metrics  *metrics.Metrics
	now      func() time.Time
	reporter monitor.Reporter

	heaterTimeout *monitor.HeaterTimeoutFlag
	threshold     *monitor.ThresholdDetector
	runaway       *monitor.RunawayDetector
	console       *monitor.ConsoleClassifier
	progress      *monitor.ProgressGate
	jobs          *monitor.JobStateTracker
	layers        *monitor.LayerWatch
	commands      *monitor.CommandWatch
	soc           *monitor.SoCDetector

	tempMu   sync.Mutex
	eventsMu sync.Mutex

	restart chan struct{}
	running atomic.Bool
}

func NewPrinterMonitor(d MonitorDeps) *PrinterMonitor {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Metrics == nil {
		d.Metrics = metrics.NewNop()
	}
	if d.Status == nil {
		d.Status = NewPrinterStatusStore()
	}

	m := &PrinterMonitor{
		log:           d.Log,
		settings:      d.Settings,
		status:        d.Status,
		queue:         d.Queue,
		snoozes:       d.Snoozes,
		metrics:       d.Metrics,
		now:           d.Now,
		heaterTimeout: &monitor.HeaterTimeoutFlag{},
		restart:       make(chan struct{}, 1),
	}
	m.reporter = monitor.ReporterFunc(m.suppressed)

	now := d.Now()
	m.threshold = monitor.NewThresholdDetector(d.Log)
	m.runaway = monitor.NewRunawayDetector(d.Log, m.reporter, m.heaterTimeout)
	m.progress = monitor.NewProgressGate(d.Log)
	m.layers = monitor.NewLayerWatch(d.Log)
	m.commands = monitor.NewCommandWatch(d.Log)
	m.jobs = monitor.NewJobStateTracker(d.Log, m.resetJob, m.resetJob)
	m.console = monitor.NewConsoleClassifier(monitor.ConsoleDeps{
		Log:           d.Log,
		Reporter:      m.reporter,
		Emit:          m.emit,
		Progress:      m.completion,
		Settings:      func() config.ConsoleConfig { return m.settings.Get().Console },
		HeaterTimeout: m.heaterTimeout,
		Now:           d.Now,
	})
	if d.SoC != nil {
		every := time.Duration(d.Settings.Get().SoC.IntervalSeconds) * time.Second
		m.soc = monitor.NewSoCDetector(d.Log, m.reporter, d.SoC, every, now)
	}

	d.Settings.Subscribe(func(config.Settings) { m.Restart() })
	return m
}

// Run drives the temperature and SoC timers until ctx is canceled.
// An interval of zero stops the corresponding timer.
func (m *PrinterMonitor) Run(ctx context.Context) {
	m.running.Store(true)
	defer m.running.Store(false)

	var (
		tempTicker, socTicker *time.Ticker
		tempEvery, socEvery   time.Duration
	)
	stop := func(t *time.Ticker) {
		if t != nil {
			t.Stop()
		}
	}
	defer func() {
		stop(tempTicker)
		stop(socTicker)
	}()

	reset := func() {
		cfg := m.settings.Get()
		if next := cfg.TemperatureInterval(); next != tempEvery {
			stop(tempTicker)
			tempTicker, tempEvery = newTicker(next), next
			m.log.Infow("temperature_timer_restarted", "interval", next.String())
		}
		next := time.Duration(0)
		if m.soc != nil {
			next = time.Duration(cfg.SoC.IntervalSeconds) * time.Second
		}
		if next != socEvery {
			stop(socTicker)
			socTicker, socEvery = newTicker(next), next
		}
	}
	reset()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.restart:
			reset()
		case now := <-tickC(tempTicker):
			m.CheckTemperatures(now)
		case now := <-tickC(socTicker):
			m.CheckSoC(now)
		}
	}
}

// Restart asks Run to re-read the intervals. Detector state is kept.
func (m *PrinterMonitor) Restart() {
	select {
	case m.restart <- struct{}{}:
	default:
	}
}

func newTicker(every time.Duration) *time.Ticker {
	if every <= 0 {
		return nil
	}
	return time.NewTicker(every)
}

// tickC returns a nil channel for a stopped timer so select never picks it.
func tickC(t *time.Ticker) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// CheckTemperatures runs the threshold and runaway detectors over the latest readings.
// Readings older than staleReadingTicks intervals count as no data.
func (m *PrinterMonitor) CheckTemperatures(now time.Time) {
	cfg := m.settings.Get()
	heaters, printing := m.status.FreshHeaters(now, staleReadingTicks*cfg.TemperatureInterval())
	if len(heaters) == 0 {
		return
	}
	thresholds := monitor.ThresholdConfig{Bed: cfg.Bed, Tool0: cfg.Tool0}

	m.tempMu.Lock()
	defer m.tempMu.Unlock()

	for _, heater := range slices.Sorted(maps.Keys(heaters)) {
		r := heaters[heater]
		for _, a := range m.threshold.Check(heater, r, printing, thresholds, now) {
			m.emit(a)
		}
		if a := m.runaway.Check(heater, r, cfg.Thermal, now); a != nil {
			m.emit(*a)
		}
	}
}

// CheckSoC samples the board temperature once.
func (m *PrinterMonitor) CheckSoC(now time.Time) {
	if m.soc == nil {
		return
	}
	a, err := m.soc.Check(m.settings.Get().SoC.High, now)
	if err != nil {
		m.log.Debugw("soc_read_failed", "error", err)
		return
	}
	if samples := m.soc.Samples(); len(samples) > 0 {
		m.metrics.SoCTemperature.Set(samples[len(samples)-1].Temp)
	}
	if a != nil {
		m.emit(*a)
	}
}

// ReportTemperatures stores heater readings for the next timer tick.
func (m *PrinterMonitor) ReportTemperatures(readings map[string]models.HeaterReading, printing bool) {
	m.status.SetHeaters(readings, printing, m.now())
}

// ReportConsoleLine feeds one firmware line to the console classifier.
func (m *PrinterMonitor) ReportConsoleLine(line string) {
	m.eventsMu.Lock()
	defer m.eventsMu.Unlock()
	m.console.Observe(line)
}

func (m *PrinterMonitor) ReportProgress(percent float64) {
	now := m.now()
	m.status.SetProgress(percent, now)

	cfg := m.settings.Get().Progress
	policy, err := config.ParseProgressPolicy(cfg.Type, cfg.Milestones)
	if err != nil {
		m.log.Warnw("progress_policy_invalid", "error", err)
		return
	}

	m.eventsMu.Lock()
	defer m.eventsMu.Unlock()
	if a := m.progress.OnProgress(percent, policy, now); a != nil {
		m.emit(*a)
	}
}

// ClearProgress marks that the host has no job loaded.
func (m *PrinterMonitor) ClearProgress() {
	m.status.ClearProgress(m.now())
}

// ReportState handles a host state transition. A nil completion falls back
// to the last reported progress.
func (m *PrinterMonitor) ReportState(stateID, stateString string, completion *float64) {
	now := m.now()
	if completion == nil {
		completion = m.status.Status().Progress
	}
	m.status.SetState(stateID, stateString, now)

	m.eventsMu.Lock()
	defer m.eventsMu.Unlock()
	if a := m.jobs.OnStateChange(stateID, stateString, completion, now); a != nil {
		m.emit(*a)
	}
}

func (m *PrinterMonitor) ReportLayer(layer string) {
	now := m.now()
	m.status.SetLayer(layer, now)

	m.eventsMu.Lock()
	defer m.eventsMu.Unlock()
	if a := m.layers.OnLayerChanged(layer, m.settings.Get().Layers.NotifyFirst, now); a != nil {
		m.emit(*a)
	}
}

func (m *PrinterMonitor) ReportCommandSent(cmd string) {
	m.eventsMu.Lock()
	defer m.eventsMu.Unlock()
	if a := m.commands.OnCommandSent(cmd, m.now()); a != nil {
		m.emit(*a)
	}
}

// Snooze silences mmu-event or paused-user-event and persists the window.
func (m *PrinterMonitor) Snooze(ctx context.Context, code models.EventCode, minutes int) (time.Time, error) {
	if minutes < 0 {
		return time.Time{}, ErrInvalidSnooze
	}
	until, err := m.console.Snooze(code, minutes)
	if err != nil {
		return time.Time{}, fmt.Errorf("snooze %s: %w", code, err)
	}
	if m.snoozes != nil {
		if err := m.snoozes.Save(ctx, code, until); err != nil {
			m.log.Warnw("snooze_persist_failed", "event_code", code, "error", err)
		}
	}
	return until, nil
}

// RestoreSnoozes re-applies the windows saved before the last shutdown.
func (m *PrinterMonitor) RestoreSnoozes(ctx context.Context) error {
	if m.snoozes == nil {
		return nil
	}
	saved, err := m.snoozes.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load snoozes: %w", err)
	}
	for code, until := range saved {
		if err := m.console.RestoreSnooze(code, until); err != nil {
			m.log.Warnw("snooze_restore_skipped", "event_code", code, "error", err)
			continue
		}
		if until.After(m.now()) {
			m.log.Infow("snooze_restored", "event_code", code, "until", until)
		}
	}
	return nil
}

func (m *PrinterMonitor) AddLayer(layer string) (bool, error) { return m.layers.Add(layer) }
func (m *PrinterMonitor) RemoveLayer(layer string) bool       { return m.layers.Remove(layer) }
func (m *PrinterMonitor) Layers() []string                    { return m.layers.List() }
func (m *PrinterMonitor) ClearLayers()                        { m.layers.Clear() }

func (m *PrinterMonitor) AddCommand(cmd string) (bool, error) { return m.commands.Add(cmd) }
func (m *PrinterMonitor) RemoveCommand(cmd string) bool       { return m.commands.Remove(cmd) }
func (m *PrinterMonitor) Commands() []string                  { return m.commands.List() }
func (m *PrinterMonitor) ClearCommands()                      { m.commands.Clear() }

// SoCSamples returns the last hour of board temperatures.
func (m *PrinterMonitor) SoCSamples() []monitor.SoCSample {
	if m.soc == nil {
		return []monitor.SoCSample{}
	}
	return m.soc.Samples()
}

// SendTest delivers a completion-style test notification synchronously.
func (m *PrinterMonitor) SendTest(ctx context.Context) models.DeliveryOutcome {
	completion := 100.0
	a := models.NewAlert(models.EventPrintComplete, m.now(), nil)
	a.Kind = models.KindJobComplete
	a.StateID = models.StateOperational
	a.State = "Operational"
	a.Completion = &completion
	a.WantsImage = true
	a.Test = true

	m.log.Infow("test_notification_requested", "alert_id", a.ID)
	return m.queue.Deliver(ctx, a)
}

// Outcomes streams delivery outcomes to live subscribers.
func (m *PrinterMonitor) Outcomes() (<-chan models.DeliveryOutcome, func()) {
	return m.queue.Subscribe()
}

// Status reports the monitor state.
func (m *PrinterMonitor) Status() MonitorStatus {
	cfg := m.settings.Get()
	snoozed := make(map[string]time.Time, 2)
	for _, code := range []models.EventCode{models.EventMMU, models.EventPausedForUser} {
		if until, err := m.console.SnoozedUntil(code); err == nil && until.After(m.now()) {
			snoozed[string(code)] = until
		}
	}
	m.eventsMu.Lock()
	fired := m.progress.LastFired()
	m.eventsMu.Unlock()

	return MonitorStatus{
		Printer:       m.status.Status(),
		Running:       m.running.Load(),
		TempInterval:  cfg.TemperatureInterval().String(),
		HeaterTimeout: m.heaterTimeout.Active(),
		ProgressFired: fired,
		QueueDepth:    m.queue.Len(),
		SnoozedUntil:  snoozed,
		WatchedLayers: m.layers.List(),
		WatchedGcodes: m.commands.List(),
		LastOutcome:   m.queue.LastOutcome(),
		UpdatedAt:     m.status.UpdatedAt(),
	}
}

func (m *PrinterMonitor) emit(a models.Alert) {
	m.metrics.Raised(a.Code)
	m.log.Infow("alert_raised", "alert_id", a.ID, "event_code", a.Code, "part", a.Part)
	m.queue.Publish(a)
}

func (m *PrinterMonitor) suppressed(code models.EventCode, reason models.SuppressReason) {
	m.metrics.Suppressed(code, reason)
	m.log.Infow("alert_suppressed", "event_code", code, "reason", reason)
}

func (m *PrinterMonitor) completion() (float64, bool) {
	p := m.status.Status().Progress
	if p == nil {
		return 0, false
	}
	return *p, true
}

// resetJob runs under eventsMu, called from the job state tracker.
func (m *PrinterMonitor) resetJob() {
	m.progress.Reset()
	m.layers.ResetJob()
}
