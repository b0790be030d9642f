package models

import "time"

// DeliveryMode records how a recipient was handled for one alert.
type DeliveryMode string

const (
	ModeModern      DeliveryMode = "modern"
	ModeLegacy      DeliveryMode = "legacy"
	ModeDuplicate   DeliveryMode = "skipped_duplicate"
	ModeUnsupported DeliveryMode = "skipped_legacy"
)

// TransportErrorStatus is reported when the request never got a response.
const TransportErrorStatus = -500

// RecipientResult is the per-token outcome of a dispatch.
type RecipientResult struct {
	Token     string       `json:"token"`
	PrinterID string       `json:"printer_id,omitempty"`
	Mode      DeliveryMode `json:"mode"`
	Status    int          `json:"status,omitempty"`
	Err       string       `json:"error,omitempty"`
}

// Failed reports a transport error or non-2xx response.
func (r RecipientResult) Failed() bool {
	return r.Err != "" || r.Status >= 400 || r.Status < 0
}

// DeliveryOutcome summarises one dispatch.
type DeliveryOutcome struct {
	AlertID    string            `json:"alert_id"`
	Code       EventCode         `json:"event_code"`
	Suppressed SuppressReason    `json:"suppressed,omitempty"`
	Results    []RecipientResult `json:"results,omitempty"`
	At         time.Time         `json:"at"`
}

// Delivered counts recipients that got at least one successful request.
func (o DeliveryOutcome) Delivered() int {
	n := 0
	for _, r := range o.Results {
		if (r.Mode == ModeModern || r.Mode == ModeLegacy) && !r.Failed() {
			n++
		}
	}
	return n
}

// Failures counts recipients whose delivery failed.
func (o DeliveryOutcome) Failures() int {
	n := 0
	for _, r := range o.Results {
		if r.Failed() {
			n++
		}
	}
	return n
}
