package models

import "time"

// NotificationRecord is a single history entry.
type NotificationRecord struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	EventCode  string    `json:"event_code"`
	Summary    string    `json:"summary"` // human-readable
	Metadata   any       `json:"metadata,omitempty"`
}
