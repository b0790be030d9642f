package monitor

import (
	"time"

	"print_notifier/internal/config"
	"print_notifier/internal/logger"
	"print_notifier/internal/models"
)

// ProgressGate turns completion updates into milestone alerts. A milestone
// fires when the percentage first reaches or passes it; 0 and 100 never fire.
type ProgressGate struct {
	log       *logger.Logger
	lastFired int
}

func NewProgressGate(log *logger.Logger) *ProgressGate {
	return &ProgressGate{log: log}
}

// OnProgress returns a print-progress alert for the highest newly crossed milestone.
func (g *ProgressGate) OnProgress(percent float64, policy config.ProgressPolicy, now time.Time) *models.Alert {
	var m int
	switch policy.Mode {
	case config.ProgressMilestones:
		for _, candidate := range policy.Milestones {
			if float64(candidate) <= percent && candidate > m {
				m = candidate
			}
		}
	case config.ProgressEveryStep:
		if policy.Step > 0 {
			m = int(percent) / policy.Step * policy.Step
		}
	default:
		return nil
	}

	if m <= 0 || m >= 100 || m <= g.lastFired {
		return nil
	}
	g.lastFired = m

	a := models.NewAlert(models.EventPrintProgress, now, map[string]any{models.ParamProgress: m})
	a.Kind = models.KindJobProgress
	a.StateID = models.StatePrinting
	a.State = "Printing"
	completion := percent
	a.Completion = &completion
	a.WantsImage = true
	g.log.Infow("progress_milestone", "milestone", m, "percent", percent)
	return &a
}

// Reset forgets fired milestones. Called at job boundaries.
func (g *ProgressGate) Reset() {
	g.lastFired = 0
}

// LastFired returns the most recent milestone, 0 when none fired this job.
func (g *ProgressGate) LastFired() int {
	return g.lastFired
}
