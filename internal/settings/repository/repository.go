package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cablecrm_backend/platform/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Setting is a single admin configuration entry.
type Setting struct {
	Key         string    `db:"key"`
	Value       string    `db:"value"`
	Description *string   `db:"description"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Repository provides database operations for admin settings
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new settings repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get retrieves a setting by key.
func (r *Repository) Get(ctx context.Context, key string) (*Setting, error) {
	var s Setting
	query := `SELECT key, value, description, updated_at FROM admin_settings WHERE key = $1`

	err := r.pool.QueryRow(ctx, query, key).Scan(&s.Key, &s.Value, &s.Description, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("setting not found")
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return &s, nil
}

// Set upserts a setting value, preserving an existing description when the
// new one is nil.
func (r *Repository) Set(ctx context.Context, s *Setting) error {
	query := `
		INSERT INTO admin_settings (key, value, description, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			description = COALESCE(EXCLUDED.description, admin_settings.description),
			updated_at = EXCLUDED.updated_at`

	if _, err := r.pool.Exec(ctx, query, s.Key, s.Value, s.Description, s.UpdatedAt); err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}
	return nil
}

// List retrieves all settings ordered by key.
func (r *Repository) List(ctx context.Context) ([]Setting, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value, description, updated_at FROM admin_settings ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.Description, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settings: %w", err)
	}
	return settings, nil
}
