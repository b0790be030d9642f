package monitor

import (
	"time"

	"print_notifier/internal/config"
	"print_notifier/internal/logger"
	"print_notifier/internal/models"
)

const (
	// warmBand is how far below target the bed may sit and still count as held.
	warmBand = 1.0
	// toolWarmWindow is the width of the "reached target" window above the tool target.
	toolWarmWindow = 5.0
)

// ThresholdConfig is the slice of settings the threshold detector reads per call.
type ThresholdConfig struct {
	Bed   config.BedConfig
	Tool0 config.ToolConfig
}

type thresholdState struct {
	wasAboveLow bool

	heldSince    time.Time
	lastTarget   float64
	notifiedOnce bool

	toolNotified bool
}

// ThresholdDetector implements the cooled and warmed rules for the bed and tool0.
type ThresholdDetector struct {
	log     *logger.Logger
	heaters map[string]*thresholdState
}

func NewThresholdDetector(log *logger.Logger) *ThresholdDetector {
	return &ThresholdDetector{log: log, heaters: make(map[string]*thresholdState)}
}

// Check evaluates one reading. Heaters other than bed and tool0 are ignored.
func (d *ThresholdDetector) Check(heater string, r models.HeaterReading, printing bool, cfg ThresholdConfig, now time.Time) []models.Alert {
	var out []models.Alert
	switch heater {
	case "bed":
		st := d.state(heater)
		if a := d.checkCooled(st, heater, cfg.Bed.Low, r, printing, now); a != nil {
			out = append(out, *a)
		}
		if a := d.checkWarmHold(st, heater, cfg.Bed, r, printing, now); a != nil {
			out = append(out, *a)
		}
	case "tool0":
		st := d.state(heater)
		if a := d.checkCooled(st, heater, cfg.Tool0.Low, r, printing, now); a != nil {
			out = append(out, *a)
		}
		if a := d.checkToolWarm(st, heater, cfg.Tool0, r, now); a != nil {
			out = append(out, *a)
		}
	}
	return out
}

func (d *ThresholdDetector) state(heater string) *thresholdState {
	st, ok := d.heaters[heater]
	if !ok {
		st = &thresholdState{}
		d.heaters[heater] = st
	}
	return st
}

// checkCooled arms while printing above low and fires once the printer is
// idle and the part has dropped below low.
func (d *ThresholdDetector) checkCooled(st *thresholdState, part string, low float64, r models.HeaterReading, printing bool, now time.Time) *models.Alert {
	if low <= 0 {
		return nil
	}
	if printing && r.Actual > low {
		if !st.wasAboveLow {
			d.log.Debugw("cooled_armed", "part", part, "actual", r.Actual, "low", low)
		}
		st.wasAboveLow = true
		return nil
	}
	if !st.wasAboveLow || printing || r.Actual >= low {
		return nil
	}

	st.wasAboveLow = false
	a := models.NewAlert(models.CooledEvent(part), now, map[string]any{
		models.ParamThreshold: low,
		models.ParamActual:    r.Actual,
	})
	a.Part = part
	d.log.Infow("cooled_detected", "part", part, "actual", r.Actual, "low", low)
	return &a
}

// checkWarmHold fires when the bed has stayed within warmBand of its target
// for longer than the hold while not printing.
func (d *ThresholdDetector) checkWarmHold(st *thresholdState, part string, cfg config.BedConfig, r models.HeaterReading, printing bool, now time.Time) *models.Alert {
	if r.Target != st.lastTarget {
		st.lastTarget = r.Target
		st.heldSince = time.Time{}
		st.notifiedOnce = false
	}
	if r.Target <= 0 {
		return nil
	}

	inBand := r.Actual > r.Target-warmBand
	switch {
	case printing || !inBand:
		st.heldSince = time.Time{}
		return nil
	case st.heldSince.IsZero():
		st.heldSince = now
		return nil
	}

	if cfg.TargetHoldMinutes <= 0 {
		return nil
	}
	elapsed := now.Sub(st.heldSince).Minutes()
	if elapsed <= float64(cfg.TargetHoldMinutes) {
		return nil
	}
	if cfg.NotifyOnce && st.notifiedOnce {
		return nil
	}

	st.heldSince = now
	st.notifiedOnce = true
	a := models.NewAlert(models.WarmedEvent(part), now, map[string]any{
		models.ParamThreshold: r.Target,
		models.ParamDuration:  int(elapsed),
	})
	a.Part = part
	d.log.Infow("warm_hold_detected", "part", part, "target", r.Target, "minutes", int(elapsed))
	return &a
}

// checkToolWarm fires once per heat-up when tool0 enters [target, target+5).
func (d *ThresholdDetector) checkToolWarm(st *thresholdState, part string, cfg config.ToolConfig, r models.HeaterReading, now time.Time) *models.Alert {
	if !cfg.TargetTemp {
		return nil
	}
	if r.Target <= 0 {
		st.toolNotified = false
		return nil
	}
	if st.toolNotified || r.Actual < r.Target || r.Actual >= r.Target+toolWarmWindow {
		return nil
	}

	st.toolNotified = true
	a := models.NewAlert(models.WarmedEvent(part), now, map[string]any{
		models.ParamThreshold: r.Target,
	})
	a.Part = part
	d.log.Infow("tool_warm_detected", "part", part, "target", r.Target, "actual", r.Actual)
	return &a
}
