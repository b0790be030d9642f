package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"print_notifier/internal/models"
)

type RecipientSQLite struct {
	db *sql.DB
}

func NewRecipientSQLite(db *sql.DB) *RecipientSQLite {
	return &RecipientSQLite{db: db}
}

const (
	upsertRecipientSQL = `
		INSERT INTO recipients (token, printer_id, device_name, display_name, language_code, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(token, printer_id) DO UPDATE SET
			device_name=excluded.device_name,
			display_name=excluded.display_name,
			language_code=excluded.language_code,
			updated_at=excluded.updated_at
	`

	selectRecipientsSQL = `
		SELECT token, printer_id, device_name, display_name, language_code, updated_at
		FROM recipients ORDER BY rowid ASC
	`

	deleteRecipientSQL = `DELETE FROM recipients WHERE token = ? AND printer_id = ?`
)

// nullable stores empty strings as NULL so legacy recipients stay distinguishable.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func stampUTC(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

// Save inserts or updates the recipient keyed by token and printer id.
func (r *RecipientSQLite) Save(ctx context.Context, rec models.Recipient) error {
	_, err := r.db.ExecContext(ctx, upsertRecipientSQL,
		rec.Token,
		rec.PrinterID,
		rec.DeviceName,
		nullable(rec.DisplayName),
		nullable(rec.Language),
		stampUTC(rec.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert recipient: %w", err)
	}
	return nil
}

// Replace swaps oldToken for rec.Token on the same printer in one transaction.
func (r *RecipientSQLite) Replace(ctx context.Context, oldToken string, rec models.Recipient) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace recipient: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteRecipientSQL, oldToken, rec.PrinterID); err != nil {
		return fmt.Errorf("delete old recipient: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsertRecipientSQL,
		rec.Token,
		rec.PrinterID,
		rec.DeviceName,
		nullable(rec.DisplayName),
		nullable(rec.Language),
		stampUTC(rec.UpdatedAt),
	); err != nil {
		return fmt.Errorf("insert new recipient: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace recipient: %w", err)
	}
	return nil
}

// List returns all recipients in registration order.
func (r *RecipientSQLite) List(ctx context.Context) ([]models.Recipient, error) {
	rows, err := r.db.QueryContext(ctx, selectRecipientsSQL)
	if err != nil {
		return nil, fmt.Errorf("select recipients: %w", err)
	}
	defer rows.Close()

	out := make([]models.Recipient, 0, 8)
	for rows.Next() {
		var (
			rec         models.Recipient
			displayName sql.NullString
			language    sql.NullString
		)
		if err := rows.Scan(&rec.Token, &rec.PrinterID, &rec.DeviceName, &displayName, &language, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipient: %w", err)
		}
		rec.DisplayName = displayName.String
		rec.Language = language.String
		rec.UpdatedAt = rec.UpdatedAt.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes one recipient and reports whether it existed.
func (r *RecipientSQLite) Delete(ctx context.Context, token, printerID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteRecipientSQL, token, printerID)
	if err != nil {
		return false, fmt.Errorf("delete recipient: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete recipient rows affected: %w", err)
	}
	return n > 0, nil
}
