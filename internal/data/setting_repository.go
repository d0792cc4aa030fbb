package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SettingRepository handles database operations for the site settings
// key-value store.
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a new SettingRepository.
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get retrieves a setting by key. Missing keys are not an error.
func (r *SettingRepository) Get(ctx context.Context, key string) (*SiteSetting, error) {
	var setting SiteSetting
	if err := r.db.GetContext(ctx, &setting, `SELECT * FROM site_settings WHERE setting_key = ?`, key); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return &setting, nil
}

// ListAll returns every setting row.
func (r *SettingRepository) ListAll(ctx context.Context) ([]*SiteSetting, error) {
	var settings []*SiteSetting
	if err := r.db.SelectContext(ctx, &settings, `SELECT * FROM site_settings`); err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}

// Upsert updates the value of an existing key or inserts a new row.
// The check-then-write is not atomic; the unique key constraint backstops
// the rare concurrent insert.
func (r *SettingRepository) Upsert(ctx context.Context, key, value string) error {
	existing, err := r.Get(ctx, key)
	if err != nil {
		return err
	}

	if existing != nil {
		query := `UPDATE site_settings SET setting_value = ?, updated_at = ? WHERE setting_key = ?`
		if _, err := r.db.ExecContext(ctx, query, value, time.Now(), key); err != nil {
			return fmt.Errorf("failed to update setting: %w", err)
		}
		return nil
	}

	query := `INSERT INTO site_settings (setting_key, setting_value) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to insert setting: %w", err)
	}
	return nil
}
