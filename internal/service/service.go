package service

import (
	"context"
	"time"

	"print_notifier/internal/config"
	"print_notifier/internal/models"
	"print_notifier/internal/monitor"
	"print_notifier/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Recipients manages the registered device tokens.
type Recipients interface {
	UpdateToken(ctx context.Context, u TokenUpdate) (models.Recipient, error)
	ListRecipients(ctx context.Context) ([]models.Recipient, error)
	DeleteRecipient(ctx context.Context, token, printerID string) error
}

// Ingest is the host feed that drives the detectors.
type Ingest interface {
	ReportTemperatures(readings map[string]models.HeaterReading, printing bool)
	ReportConsoleLine(line string)
	ReportProgress(percent float64)
	ClearProgress()
	ReportState(stateID, stateString string, completion *float64)
	ReportLayer(layer string)
	ReportCommandSent(cmd string)
}

// Monitor exposes snooze, watch lists, status and the test notification.
type Monitor interface {
	Status() MonitorStatus
	Snooze(ctx context.Context, code models.EventCode, minutes int) (time.Time, error)

	AddLayer(layer string) (bool, error)
	RemoveLayer(layer string) bool
	Layers() []string
	ClearLayers()

	AddCommand(cmd string) (bool, error)
	RemoveCommand(cmd string) bool
	Commands() []string
	ClearCommands()

	SoCSamples() []monitor.SoCSample
	SendTest(ctx context.Context) models.DeliveryOutcome
	Outcomes() (<-chan models.DeliveryOutcome, func())
}

// Settings applies admin changes to the live configuration.
type Settings interface {
	Current() config.Settings
	SetProgressMode(mode string) error
	SetBedThreshold(low float64) error
	SetToolThreshold(low float64, targetTemp bool) error
	SetBedWarmDuration(minutes int) error
	SetPauseInterval(minutes int) error
	SetMMUInterval(minutes int) error
	SetSoCThreshold(high float64) error
	SetThermalProtection(p ThermalParams) error
	SetSound(sound string) error
}

// History exposes the notification log with filtering access.
type History interface {
	List(ctx context.Context, f LogFilter) ([]models.NotificationRecord, error)
}

// Simulator feeds demo telemetry. Stop via context cancellation.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Recipients
	Ingest
	Monitor
	Settings
	History
	Simulator
}

// NewService wires the repository layer, the live settings and the printer
// monitor into the composite used by the HTTP layer.
func NewService(repos *repository.Repository, store *config.Store, mon *PrinterMonitor, recipients *RecipientService) *Service {
	cfg := store.Get()
	return &Service{
		Authorization: NewAuthService(repos.Auth, cfg.Auth.SigningKey, cfg.Auth.TokenTTL.Std()),
		Recipients:    recipients,
		Ingest:        mon,
		Monitor:       mon,
		Settings:      NewSettingsService(store),
		History:       NewHistoryService(repos.History),
		Simulator:     NewSimulatorService(mon),
	}
}
