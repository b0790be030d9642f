package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"print_notifier/internal/models"
)

type SnoozeSQLite struct {
	db *sql.DB
}

func NewSnoozeSQLite(db *sql.DB) *SnoozeSQLite {
	return &SnoozeSQLite{db: db}
}

const (
	upsertSnoozeSQL = `
		INSERT INTO snoozes (event_code, until) VALUES (?, ?)
		ON CONFLICT(event_code) DO UPDATE SET until=excluded.until
	`
	selectSnoozesSQL = `SELECT event_code, until FROM snoozes`
)

// Save records the end of the snooze window for code.
func (r *SnoozeSQLite) Save(ctx context.Context, code models.EventCode, until time.Time) error {
	if _, err := r.db.ExecContext(ctx, upsertSnoozeSQL, string(code), until.UTC()); err != nil {
		return fmt.Errorf("upsert snooze %s: %w", code, err)
	}
	return nil
}

// LoadAll returns every stored window, expired ones included.
func (r *SnoozeSQLite) LoadAll(ctx context.Context) (map[models.EventCode]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, selectSnoozesSQL)
	if err != nil {
		return nil, fmt.Errorf("select snoozes: %w", err)
	}
	defer rows.Close()

	out := make(map[models.EventCode]time.Time)
	for rows.Next() {
		var (
			code  string
			until time.Time
		)
		if err := rows.Scan(&code, &until); err != nil {
			return nil, fmt.Errorf("scan snooze: %w", err)
		}
		out[models.EventCode(code)] = until.UTC()
	}
	return out, rows.Err()
}
