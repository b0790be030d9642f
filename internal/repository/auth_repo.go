package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"print_notifier/internal/models"
)

// ErrUsernameTaken is returned by Create when the username already exists.
var ErrUsernameTaken = errors.New("username already taken")

// UserSQLite keeps admin API accounts.
type UserSQLite struct {
	db *sql.DB
}

var _ Authorization = (*UserSQLite)(nil)

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

const (
	insertUserSQL = `INSERT INTO users (username, password_hash) VALUES (?, ?)`
	selectUserSQL = `SELECT id, username, password_hash FROM users WHERE username = ?`
)

func (r *UserSQLite) Create(username, hash string) (int, error) {
	res, err := r.db.Exec(insertUserSQL, username, hash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert user %q: %w", username, ErrUsernameTaken)
		}
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id for %q: %w", username, err)
	}
	return int(id), nil
}

// GetByUsername returns (nil, nil) when no such user exists.
func (r *UserSQLite) GetByUsername(username string) (*models.User, error) {
	var u models.User
	switch err := r.db.QueryRow(selectUserSQL, username).Scan(&u.ID, &u.Username, &u.PasswordHash); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
