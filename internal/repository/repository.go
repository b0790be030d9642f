package repository

import (
	"context"
	"database/sql"
	"time"

	"print_notifier/internal/models"
)

// Authorization stores admin users.
type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// RecipientRepo stores device tokens. The primary key is (token, printer_id).
type RecipientRepo interface {
	List(ctx context.Context) ([]models.Recipient, error)
	Save(ctx context.Context, r models.Recipient) error
	Replace(ctx context.Context, oldToken string, r models.Recipient) error
	Delete(ctx context.Context, token, printerID string) (bool, error)
}

// HistoryRepo is the append-only notification log.
type HistoryRepo interface {
	Append(ctx context.Context, rec models.NotificationRecord) error
	List(ctx context.Context, from, to time.Time, code string) ([]models.NotificationRecord, error)
}

// SnoozeRepo persists snooze windows so they survive restarts.
type SnoozeRepo interface {
	Save(ctx context.Context, code models.EventCode, until time.Time) error
	LoadAll(ctx context.Context) (map[models.EventCode]time.Time, error)
}

type Repository struct {
	Recipients RecipientRepo
	History    HistoryRepo
	Snoozes    SnoozeRepo
	Auth       Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Recipients: NewRecipientSQLite(db),
		History:    NewHistorySQLite(db),
		Snoozes:    NewSnoozeSQLite(db),
		Auth:       NewUserSQLite(db),
	}
}
