package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// UserUpsert carries the fields supplied by an external sign-in. Nil
// pointer fields are left untouched on an existing row.
type UserUpsert struct {
	OpenID       string
	Name         *string
	Email        *string
	LoginMethod  *string
	Role         *string
	LastSignedIn *time.Time
}

// UserRepository handles database operations for users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert inserts a user row keyed by openId, or updates the existing row
// restricted to the fields that were explicitly supplied. A single native
// upsert statement keeps concurrent first sign-ins from racing to a
// duplicate-key error. When an update carries no fields at all,
// last_signed_in is refreshed so that every sign-in bumps the timestamp.
func (r *UserRepository) Upsert(ctx context.Context, in UserUpsert) error {
	if in.OpenID == "" {
		return errors.New("openId is required for upsert")
	}

	signedIn := in.LastSignedIn
	if signedIn == nil && in.Name == nil && in.Email == nil && in.LoginMethod == nil && in.Role == nil {
		now := time.Now()
		signedIn = &now
	}

	// Role and last_signed_in get separate placeholders for the update
	// branch: the insert branch substitutes defaults, and a default must
	// not clobber the existing row on conflict.
	var query string
	switch r.db.DriverName() {
	case "sqlite3":
		query = `INSERT INTO users (open_id, name, email, login_method, role, last_signed_in)
			VALUES (?, ?, ?, ?, COALESCE(?, 'user'), COALESCE(?, CURRENT_TIMESTAMP))
			ON CONFLICT(open_id) DO UPDATE SET
				name = COALESCE(excluded.name, name),
				email = COALESCE(excluded.email, email),
				login_method = COALESCE(excluded.login_method, login_method),
				role = COALESCE(?, role),
				last_signed_in = COALESCE(?, last_signed_in),
				updated_at = CURRENT_TIMESTAMP`
	default:
		query = `INSERT INTO users (open_id, name, email, login_method, role, last_signed_in)
			VALUES (?, ?, ?, ?, COALESCE(?, 'user'), COALESCE(?, CURRENT_TIMESTAMP))
			ON DUPLICATE KEY UPDATE
				name = COALESCE(VALUES(name), name),
				email = COALESCE(VALUES(email), email),
				login_method = COALESCE(VALUES(login_method), login_method),
				role = COALESCE(?, role),
				last_signed_in = COALESCE(?, last_signed_in),
				updated_at = CURRENT_TIMESTAMP`
	}

	args := []interface{}{in.OpenID, in.Name, in.Email, in.LoginMethod, in.Role, signedIn, in.Role, signedIn}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// GetByOpenID retrieves a user by their external identity. Missing rows
// are not an error.
func (r *UserRepository) GetByOpenID(ctx context.Context, openID string) (*User, error) {
	var user User
	query := `SELECT * FROM users WHERE open_id = ?`
	if err := r.db.GetContext(ctx, &user, query, openID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by openId: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by primary key. Missing rows are not an error.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	var user User
	query := `SELECT * FROM users WHERE id = ?`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}
