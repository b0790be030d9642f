package models

import "strings"

// HeaterReading is one poll of a heater.
type HeaterReading struct {
	Actual float64 `json:"actual"`
	Target float64 `json:"target"`
}

// PrinterState is the closed set of host states the job path reacts to.
type PrinterState int

const (
	StateIgnored PrinterState = iota
	StateOperational
	StatePrinting
	StatePaused
	StateClosed
	StateError
	StateClosedWithError
	StateOffline
	StateFinishing
)

var printerStateNames = map[string]PrinterState{
	"OPERATIONAL":       StateOperational,
	"PRINTING":          StatePrinting,
	"PAUSED":            StatePaused,
	"CLOSED":            StateClosed,
	"ERROR":             StateError,
	"CLOSED_WITH_ERROR": StateClosedWithError,
	"OFFLINE":           StateOffline,
	"FINISHING":         StateFinishing,
}

// ParsePrinterState maps a host state id. Unknown ids map to StateIgnored.
func ParsePrinterState(id string) PrinterState {
	if s, ok := printerStateNames[strings.ToUpper(strings.TrimSpace(id))]; ok {
		return s
	}
	return StateIgnored
}

func (s PrinterState) String() string {
	for name, v := range printerStateNames {
		if v == s {
			return name
		}
	}
	return "IGNORED"
}

// PrinterStatus is the snapshot the host reports through the ingest API.
type PrinterStatus struct {
	Heaters     map[string]HeaterReading `json:"heaters"`
	Printing    bool                     `json:"printing"`
	Progress    *float64                 `json:"progress,omitempty"`
	StateID     string                   `json:"state_id,omitempty"`
	StateString string                   `json:"state_string,omitempty"`
	Layer       string                   `json:"layer,omitempty"`
}
