package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"print_notifier/internal/models"

	"github.com/google/uuid"
)

type HistorySQLite struct {
	db *sql.DB
}

func NewHistorySQLite(db *sql.DB) *HistorySQLite { return &HistorySQLite{db: db} }

const insertNotificationSQL = `
		INSERT INTO notifications (id, occurred_at, event_code, summary, meta)
		VALUES (?, ?, ?, ?, ?)
	`

// Append inserts a record. Missing ID and OccurredAt are filled in.
func (r *HistorySQLite) Append(ctx context.Context, rec models.NotificationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = time.Now().UTC()
	} else {
		rec.OccurredAt = rec.OccurredAt.UTC()
	}

	var metaPtr *string
	if rec.Metadata != nil {
		if b, err := json.Marshal(rec.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, insertNotificationSQL,
		rec.ID,
		rec.OccurredAt.Format("2006-01-02 15:04:05"), // SQLite TIMESTAMP format
		strings.TrimSpace(rec.EventCode),
		rec.Summary,
		metaPtr,
	)
	return err
}

// List returns records within [from, to] and/or with the given event code, oldest first.
func (r *HistorySQLite) List(ctx context.Context, from, to time.Time, code string) ([]models.NotificationRecord, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}
	if code = strings.TrimSpace(code); code != "" {
		conds = append(conds, "event_code = ?")
		args = append(args, code)
	}

	q := `SELECT id, occurred_at, event_code, summary, meta FROM notifications`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.NotificationRecord, 0, 64)
	for rows.Next() {
		var rec models.NotificationRecord
		var metaStr sql.NullString
		if err := rows.Scan(&rec.ID, &rec.OccurredAt, &rec.EventCode, &rec.Summary, &metaStr); err != nil {
			return nil, err
		}
		rec.OccurredAt = rec.OccurredAt.UTC()

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				rec.Metadata = v
			} else {
				rec.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
