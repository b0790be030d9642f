package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 5000",
}

// InitDB opens (creating if needed) the sqlite file at path and applies the schema.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}
	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := prepare(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func prepare(db *sql.DB) error {
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	if err := ensureSchema(db); err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping sqlite: %w", err)
	}
	return nil
}

const sqliteDriverName = "sqlite"

const schemaRecipients = `
CREATE TABLE IF NOT EXISTS recipients (
    token TEXT NOT NULL,
    printer_id TEXT NOT NULL,
    device_name TEXT NOT NULL,
    display_name TEXT,
    language_code TEXT,
    updated_at TIMESTAMP NOT NULL,
    PRIMARY KEY (token, printer_id)
);
`

const schemaNotifications = `
CREATE TABLE IF NOT EXISTS notifications (
    id TEXT PRIMARY KEY,
    occurred_at TIMESTAMP NOT NULL,
    event_code TEXT NOT NULL,
    summary TEXT NOT NULL,
    meta TEXT
);
`

const schemaNotificationsIndex = `
CREATE INDEX IF NOT EXISTS idx_notifications_occurred_at ON notifications (occurred_at);
`

const schemaSnoozes = `
CREATE TABLE IF NOT EXISTS snoozes (
    event_code TEXT PRIMARY KEY,
    until TIMESTAMP NOT NULL
);
`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range []string{
		schemaRecipients,
		schemaNotifications,
		schemaNotificationsIndex,
		schemaSnoozes,
		schemaUsers,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
