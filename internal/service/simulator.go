package service

import (
	"context"
	"strconv"
	"time"

	"print_notifier/internal/models"
)

// ----------- Simulation constants -----------
const (
	AmbientC          = 25.0  // ambient temperature °C
	BedTargetC        = 60.0  // bed preheat target °C
	HotendTargetC     = 210.0 // hotend preheat target °C
	BedRampCPerSec    = 1.5   // °C per second while the bed heats
	HotendRampCPerSec = 6.0   // °C per second while the hotend heats
	CoolCPerSec       = 0.8   // °C per second passive cooling
	SoakToleranceC    = 1.0   // °C band for "at target"
	ProgressPerSec    = 2.0   // job percent per simulated second
	PercentPerLayer   = 5.0   // job percent covered by one layer
	IdleSecondsPerJob = 20    // idle seconds before the next job starts
)

type simPhase int

const (
	phaseIdle simPhase = iota
	phaseHeating
	phasePrinting
	phaseFinishing
	phaseCooling
)

// SimulatorService walks a virtual printer through preheat, print, finish
// and cooldown, feeding the readings through Ingest.
type SimulatorService struct {
	ingest Ingest

	phase    simPhase
	bed      models.HeaterReading
	tool     models.HeaterReading
	progress float64
	layer    int
	idle     float64
	lastStep time.Time
}

// NewSimulatorService returns a simulator with both heaters at ambient.
func NewSimulatorService(ingest Ingest) *SimulatorService {
	return &SimulatorService{
		ingest: ingest,
		bed:    models.HeaterReading{Actual: AmbientC},
		tool:   models.HeaterReading{Actual: AmbientC},
	}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.step(now)
		}
	}
}

// step advances the simulation to now. Less than a second since the last
// step is skipped until more time passes.
func (s *SimulatorService) step(now time.Time) {
	elapsed := 1.0
	if !s.lastStep.IsZero() {
		elapsed = now.Sub(s.lastStep).Seconds()
		if elapsed < 1 {
			return
		}
	}
	s.lastStep = now

	approach(&s.bed, elapsed, BedRampCPerSec)
	approach(&s.tool, elapsed, HotendRampCPerSec)

	switch s.phase {
	case phaseIdle:
		s.idle += elapsed
		if s.idle >= IdleSecondsPerJob {
			s.idle = 0
			s.bed.Target = BedTargetC
			s.tool.Target = HotendTargetC
			s.phase = phaseHeating
		}
	case phaseHeating:
		if atTarget(s.bed) && atTarget(s.tool) {
			s.progress, s.layer = 0, 0
			s.phase = phasePrinting
			s.ingest.ReportState("PRINTING", "Printing", &s.progress)
		}
	case phasePrinting:
		s.handlePrinting(elapsed)
	case phaseFinishing:
		done := 100.0
		s.bed.Target, s.tool.Target = 0, 0
		s.phase = phaseCooling
		s.ingest.ReportState("OPERATIONAL", "Operational", &done)
	case phaseCooling:
		if s.bed.Actual <= AmbientC+SoakToleranceC && s.tool.Actual <= AmbientC+SoakToleranceC {
			s.phase = phaseIdle
		}
	}

	s.ingest.ReportTemperatures(map[string]models.HeaterReading{
		"bed":   s.bed,
		"tool0": s.tool,
	}, s.phase == phasePrinting)
}

// handlePrinting advances job progress and reports layer changes.
func (s *SimulatorService) handlePrinting(elapsed float64) {
	s.progress = minFloat(s.progress+ProgressPerSec*elapsed, 100)
	s.ingest.ReportProgress(s.progress)

	if layer := int(s.progress/PercentPerLayer) + 1; layer != s.layer && s.progress < 100 {
		s.layer = layer
		s.ingest.ReportLayer(strconv.Itoa(layer))
	}
	if s.progress >= 100 {
		done := 100.0
		s.phase = phaseFinishing
		s.ingest.ReportState("FINISHING", "Finishing", &done)
	}
}

// approach heats toward target at rate or cools toward max(target, ambient).
func approach(r *models.HeaterReading, elapsed, rate float64) {
	switch {
	case r.Target > 0 && r.Actual < r.Target:
		r.Actual = minFloat(r.Actual+rate*elapsed, r.Target)
	default:
		floor := maxFloat(r.Target, AmbientC)
		if r.Actual > floor {
			r.Actual = maxFloat(r.Actual-CoolCPerSec*elapsed, floor)
		}
	}
}

func atTarget(r models.HeaterReading) bool {
	return r.Target > 0 && r.Actual >= r.Target-SoakToleranceC
}

// helpers
func maxFloat(a, b float64) float64 {
	if a >= b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a <= b {
		return a
	}
	return b
}
