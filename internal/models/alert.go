package models

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// EventCode classifies an alert. It selects the message template, the
// snooze bucket and the legacy fallback payload.
type EventCode string

const (
	EventBedCooled      EventCode = "bed-cooled"
	EventBedWarmed      EventCode = "bed-warmed"
	EventToolCooled     EventCode = "tool0-cooled"
	EventToolWarmed     EventCode = "tool0-warmed"
	EventThermalRunaway EventCode = "thermal-runaway"
	EventMMU            EventCode = "mmu-event"
	EventPausedForUser  EventCode = "paused-user-event"
	EventPrintProgress  EventCode = "print-progress"
	EventPrintComplete  EventCode = "print-complete"
	EventPrinterError   EventCode = "printer-error"
	EventJobState       EventCode = "job-state"
	EventLayerChanged   EventCode = "layer-changed"
	EventGcodeCommand   EventCode = "gcode-command"
	EventSoCTemp        EventCode = "soc-temp-exceeded"
)

// CooledEvent returns "<part>-cooled".
func CooledEvent(part string) EventCode { return EventCode(part + "-cooled") }

// WarmedEvent returns "<part>-warmed".
func WarmedEvent(part string) EventCode { return EventCode(part + "-warmed") }

// Template parameter names.
const (
	ParamThreshold   = "Threshold"
	ParamDuration    = "Duration"
	ParamProgress    = "Progress"
	ParamLayer       = "Layer"
	ParamCommand     = "Command"
	ParamTemperature = "Temperature"
	ParamMessage     = "Message"
	ParamHeater      = "Heater"
	ParamActual      = "Actual"
	ParamTarget      = "Target"
)

// AlertKind tells the arbiter which payloads a recipient receives.
type AlertKind int

const (
	KindGeneric AlertKind = iota
	// KindJobStatus only refreshes companion devices; nothing is shown.
	KindJobStatus
	KindJobProgress
	KindJobComplete
	KindJobError
)

// IsJob reports whether the alert belongs to the print job path.
func (k AlertKind) IsJob() bool { return k != KindGeneric }

// Alert is produced by a detector and handed to the arbiter. Treat it as
// immutable once constructed.
type Alert struct {
	ID     string         `json:"id"`
	Code   EventCode      `json:"event_code"`
	Params map[string]any `json:"params,omitempty"`
	Part   string         `json:"part,omitempty"`
	Kind   AlertKind      `json:"kind"`
	At     time.Time      `json:"at"`

	// Job path only.
	StateID    PrinterState `json:"-"`
	State      string       `json:"state,omitempty"`
	Completion *float64     `json:"completion,omitempty"`

	// WantsImage asks the arbiter to attach a camera snapshot if one can be fetched.
	WantsImage bool `json:"wants_image,omitempty"`
	// Test marks alerts raised by the test command.
	Test bool `json:"test,omitempty"`
}

// NewAlert builds an alert with a fresh ID and a private copy of params.
func NewAlert(code EventCode, at time.Time, params map[string]any) Alert {
	return Alert{
		ID:     uuid.NewString(),
		Code:   code,
		Params: maps.Clone(params),
		At:     at.UTC(),
	}
}

// SuppressReason names the gate that kept an alert from being delivered.
type SuppressReason string

const (
	SuppressNone         SuppressReason = ""
	SuppressNoServer     SuppressReason = "no_server"
	SuppressNoRecipients SuppressReason = "no_recipients"
	SuppressDisabled     SuppressReason = "disabled"
	SuppressSnoozed      SuppressReason = "snoozed"
	SuppressDebounce     SuppressReason = "debounce"
	SuppressCooldown     SuppressReason = "cooldown"
	SuppressQueueFull    SuppressReason = "queue_full"
)
