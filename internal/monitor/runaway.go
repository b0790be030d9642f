package monitor

import (
	"strings"
	"time"

	"print_notifier/internal/config"
	"print_notifier/internal/logger"
	"print_notifier/internal/models"
)

const (
	// coolingTolerance is the drop per sample still treated as "not cooling" below target.
	coolingTolerance = 1.0
	// reheatTolerance is the upward noise ignored while over target.
	reheatTolerance = 1.0
)

type sample struct {
	temp float64
	at   time.Time
}

type runawayState struct {
	target *sample
	actual *sample
}

// RunawayDetector watches heaters that drift away from their target without
// correcting. It keeps per-heater tracking and a single rate limit shared by
// all heaters.
type RunawayDetector struct {
	log           *logger.Logger
	reporter      Reporter
	heaterTimeout *HeaterTimeoutFlag

	heaters   map[string]*runawayState
	lastAlert time.Time
}

func NewRunawayDetector(log *logger.Logger, reporter Reporter, flag *HeaterTimeoutFlag) *RunawayDetector {
	if flag == nil {
		flag = &HeaterTimeoutFlag{}
	}
	return &RunawayDetector{
		log:           log,
		reporter:      orNop(reporter),
		heaterTimeout: flag,
		heaters:       make(map[string]*runawayState),
	}
}

// Check evaluates one reading and returns an alert when the heater is judged
// to be running away.
func (d *RunawayDetector) Check(heater string, r models.HeaterReading, cfg config.ThermalConfig, now time.Time) *models.Alert {
	if cfg.RunawayThreshold <= 0 {
		return nil
	}
	if r.Target <= 0 {
		delete(d.heaters, heater)
		return nil
	}

	st, ok := d.heaters[heater]
	if !ok {
		st = &runawayState{}
		d.heaters[heater] = st
	}
	if st.target == nil || st.target.temp != r.Target {
		st.target = &sample{temp: r.Target, at: now}
		st.actual = nil
	}

	switch {
	case r.Actual >= r.Target+cfg.RunawayThreshold:
		return d.checkOver(heater, st, r, cfg, now)
	case r.Actual+cfg.BelowTargetThreshold < r.Target:
		return d.checkBelow(heater, st, r, cfg, now)
	default:
		st.actual = nil
		return nil
	}
}

func (d *RunawayDetector) checkOver(heater string, st *runawayState, r models.HeaterReading, cfg config.ThermalConfig, now time.Time) *models.Alert {
	last := st.actual
	if last == nil || last.temp > r.Actual {
		st.actual = &sample{temp: r.Actual, at: now}
		return nil
	}

	grace := time.Duration(cfg.CooldownSeconds) * time.Second
	withinGrace := now.Sub(last.at) < grace
	if withinGrace && r.Actual-last.temp <= reheatTolerance {
		return nil
	}
	return d.fire(heater, st, r, cfg, now)
}

func (d *RunawayDetector) checkBelow(heater string, st *runawayState, r models.HeaterReading, cfg config.ThermalConfig, now time.Time) *models.Alert {
	last := st.actual
	if last == nil {
		st.actual = &sample{temp: r.Actual, at: now}
		return nil
	}

	rising := r.Actual > last.temp
	if d.heaterTimeout.Active() && !rising {
		return nil
	}

	flat := r.Actual == last.temp || (r.Actual < last.temp && last.temp-r.Actual < coolingTolerance)
	if flat && now.Sub(st.target.at) < warmupFor(heater, cfg) {
		return nil
	}
	if rising {
		d.heaterTimeout.Clear()
		st.target.at = now
		st.actual = &sample{temp: r.Actual, at: now}
		return nil
	}
	return d.fire(heater, st, r, cfg, now)
}

func (d *RunawayDetector) fire(heater string, st *runawayState, r models.HeaterReading, cfg config.ThermalConfig, now time.Time) *models.Alert {
	every := time.Duration(cfg.MinutesFrequency) * time.Minute
	if !d.lastAlert.IsZero() && now.Sub(d.lastAlert) <= every {
		d.reporter.Suppressed(models.EventThermalRunaway, models.SuppressCooldown)
		return nil
	}

	d.lastAlert = now
	st.actual = nil
	a := models.NewAlert(models.EventThermalRunaway, now, map[string]any{
		models.ParamHeater: heater,
		models.ParamActual: r.Actual,
		models.ParamTarget: r.Target,
	})
	a.Part = heater
	d.log.Warnw("thermal_runaway_detected", "heater", heater, "actual", r.Actual, "target", r.Target)
	return &a
}

// warmupFor picks the warm-up allowance by heater family. Unknown heaters use the hotend value.
func warmupFor(heater string, cfg config.ThermalConfig) time.Duration {
	secs := cfg.WarmupHotendSeconds
	switch {
	case heater == "bed":
		secs = cfg.WarmupBedSeconds
	case strings.HasPrefix(heater, "chamber"):
		secs = cfg.WarmupChamberSeconds
	}
	return time.Duration(secs) * time.Second
}
