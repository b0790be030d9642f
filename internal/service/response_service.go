package service

import (
	"time"

	"print_notifier/internal/models"
)

// LogFilter supports history filtering by time range and event code.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Code string    // "", "bed-cooled", "mmu-event", ...
}

// TokenUpdate is the registration call a mobile client makes after its push
// token rotates. OldToken equal to NewToken is a plain refresh.
type TokenUpdate struct {
	OldToken    string
	NewToken    string
	DeviceName  string
	PrinterID   string
	DisplayName string // empty keeps the stored name; clients without it are legacy
	Language    string
}

// ThermalParams mirrors the thermal protection admin command.
type ThermalParams struct {
	MaxTempDiff          float64
	BedShouldIncTemp     int
	HotendShouldIncTemp  int
	ChamberShouldIncTemp int
	DelayBetweenNotif    int
}

// MonitorStatus is the read-only view served by /api/v1/monitor/status and /ws.
type MonitorStatus struct {
	Printer       models.PrinterStatus    `json:"printer"`
	Running       bool                    `json:"running"`
	TempInterval  string                  `json:"temperature_interval"`
	HeaterTimeout bool                    `json:"heater_timeout"`
	ProgressFired int                     `json:"progress_fired"`
	QueueDepth    int                     `json:"queue_depth"`
	SnoozedUntil  map[string]time.Time    `json:"snoozed_until"`
	WatchedLayers []string                `json:"watched_layers"`
	WatchedGcodes []string                `json:"watched_gcode_commands"`
	LastOutcome   *models.DeliveryOutcome `json:"last_outcome,omitempty"`
	UpdatedAt     time.Time               `json:"updated_at"`
}
