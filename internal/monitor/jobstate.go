package monitor

import (
	"strings"
	"time"

	"print_notifier/internal/logger"
	"print_notifier/internal/models"
)

// JobStateTracker maps host state transitions to job alerts and signals job
// start and end so per-job detectors can reset.
type JobStateTracker struct {
	log *logger.Logger

	lastState string
	hasLast   bool
	jobActive bool

	onJobStart func()
	onJobEnd   func()
}

func NewJobStateTracker(log *logger.Logger, onJobStart, onJobEnd func()) *JobStateTracker {
	noop := func() {}
	if onJobStart == nil {
		onJobStart = noop
	}
	if onJobEnd == nil {
		onJobEnd = noop
	}
	return &JobStateTracker{log: log, onJobStart: onJobStart, onJobEnd: onJobEnd}
}

// OnStateChange handles one reported transition. Unknown state ids and a
// repeat of the previous state string produce nothing.
func (j *JobStateTracker) OnStateChange(stateID, stateString string, completion *float64, now time.Time) *models.Alert {
	state := models.ParsePrinterState(stateID)
	if state == models.StateIgnored {
		j.log.Debugw("state_ignored", "state_id", stateID)
		return nil
	}
	if j.hasLast && stateString == j.lastState {
		return nil
	}

	wasPrinting := strings.HasPrefix(j.lastState, "Printing")
	j.lastState = stateString
	j.hasLast = true
	j.trackJob(state)

	var a models.Alert
	switch {
	case state == models.StateFinishing && wasPrinting:
		a = models.NewAlert(models.EventPrintComplete, now, nil)
		a.Kind = models.KindJobComplete
		a.WantsImage = true
	case state == models.StateError:
		a = models.NewAlert(models.EventPrinterError, now, map[string]any{models.ParamMessage: stateString})
		a.Kind = models.KindJobError
	default:
		a = models.NewAlert(models.EventJobState, now, nil)
		a.Kind = models.KindJobStatus
		a.WantsImage = state == models.StateOperational && completion != nil && *completion == 100
	}
	a.StateID = state
	a.State = stateString
	if completion != nil {
		c := *completion
		a.Completion = &c
	}

	j.log.Infow("job_state_changed", "state_id", state.String(), "state", stateString, "event_code", a.Code)
	return &a
}

func (j *JobStateTracker) trackJob(state models.PrinterState) {
	switch state {
	case models.StatePrinting:
		if !j.jobActive {
			j.jobActive = true
			j.onJobStart()
		}
	case models.StatePaused:
	default:
		if j.jobActive {
			j.jobActive = false
			j.onJobEnd()
		}
	}
}
