package models

import (
	"strings"
	"time"
)

// Recipient is a registered device token for one printer.
type Recipient struct {
	Token       string    `json:"token"`
	PrinterID   string    `json:"printer_id"`
	DeviceName  string    `json:"device_name"`
	DisplayName string    `json:"display_name,omitempty"`
	Language    string    `json:"language_code,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Capability is either Modern or Legacy.
type Capability interface {
	capability()
}

// Modern clients render localized, visible notifications.
type Modern struct {
	DisplayName string
	Locale      string
}

// Legacy clients only understand silent payloads with fixed event codes.
type Legacy struct{}

func (Modern) capability() {}
func (Legacy) capability() {}

// Capability resolves the delivery mode. A missing display name means Legacy.
func (r Recipient) Capability() Capability {
	name := strings.TrimSpace(r.DisplayName)
	if name == "" {
		return Legacy{}
	}
	return Modern{DisplayName: name, Locale: r.Language}
}
