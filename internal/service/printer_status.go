package service

import (
	"maps"
	"sync"
	"time"

	"print_notifier/internal/models"
)

// PrinterSource yields the latest host telemetry.
type PrinterSource interface {
	Status() models.PrinterStatus
}

// PrinterStatusStore is the in-memory PrinterSource written by the ingest API
// and the simulator.
type PrinterStatusStore struct {
	mu        sync.RWMutex
	status    models.PrinterStatus
	heaterAt  map[string]time.Time
	updatedAt time.Time
}

var _ PrinterSource = (*PrinterStatusStore)(nil)

func NewPrinterStatusStore() *PrinterStatusStore {
	return &PrinterStatusStore{
		status:   models.PrinterStatus{Heaters: map[string]models.HeaterReading{}},
		heaterAt: map[string]time.Time{},
	}
}

// Status returns a copy of the current snapshot.
func (s *PrinterStatusStore) Status() models.PrinterStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.status
	out.Heaters = maps.Clone(s.status.Heaters)
	if s.status.Progress != nil {
		p := *s.status.Progress
		out.Progress = &p
	}
	return out
}

// UpdatedAt is the time of the last write.
func (s *PrinterStatusStore) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// SetHeaters merges readings into the heater map and stamps each with at.
func (s *PrinterStatusStore) SetHeaters(readings map[string]models.HeaterReading, printing bool, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Heaters == nil {
		s.status.Heaters = make(map[string]models.HeaterReading, len(readings))
	}
	if s.heaterAt == nil {
		s.heaterAt = make(map[string]time.Time, len(readings))
	}
	for name, r := range readings {
		s.status.Heaters[name] = r
		s.heaterAt[name] = at
	}
	s.status.Printing = printing
	s.updatedAt = at
}

// FreshHeaters returns the readings stamped within maxAge of now.
// A non-positive maxAge disables aging.
func (s *PrinterStatusStore) FreshHeaters(now time.Time, maxAge time.Duration) (map[string]models.HeaterReading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.HeaterReading, len(s.status.Heaters))
	for name, r := range s.status.Heaters {
		if maxAge > 0 && now.Sub(s.heaterAt[name]) > maxAge {
			continue
		}
		out[name] = r
	}
	return out, s.status.Printing
}

func (s *PrinterStatusStore) SetProgress(percent float64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Progress = &percent
	s.updatedAt = at
}

// ClearProgress records that no job is loaded.
func (s *PrinterStatusStore) ClearProgress(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Progress = nil
	s.updatedAt = at
}

// SetState records a host state. Disconnected states drop the heater
// readings; states without a loaded job drop the progress.
func (s *PrinterStatusStore) SetState(stateID, stateString string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := models.ParsePrinterState(stateID)
	s.status.StateID = stateID
	s.status.StateString = stateString
	s.status.Printing = state == models.StatePrinting
	switch state {
	case models.StateOffline, models.StateClosed, models.StateClosedWithError:
		clear(s.status.Heaters)
		clear(s.heaterAt)
		s.status.Progress = nil
	case models.StateOperational, models.StateError:
		s.status.Progress = nil
	}
	s.updatedAt = at
}

func (s *PrinterStatusStore) SetLayer(layer string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Layer = layer
	s.updatedAt = at
}
