package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerline/backend/internal/model"
)

// SettingsRepository stores the single firm settings document.
type SettingsRepository interface {
	// Get returns the saved settings or ErrNotFound when none were saved yet.
	Get(ctx context.Context) (*model.Settings, error)
	Save(ctx context.Context, s *model.Settings) error
}

// PgSettingsRepository keeps settings as one JSONB row (id = 1).
type PgSettingsRepository struct {
	pool *pgxpool.Pool
}

// NewPgSettingsRepository creates a PgSettingsRepository backed by the given pool.
func NewPgSettingsRepository(pool *pgxpool.Pool) *PgSettingsRepository {
	return &PgSettingsRepository{pool: pool}
}

var _ SettingsRepository = (*PgSettingsRepository)(nil)

func (r *PgSettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	var raw []byte
	var s model.Settings
	err := r.pool.QueryRow(ctx,
		`SELECT data, updated_at FROM site_settings WHERE id = 1`,
	).Scan(&raw, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	updated := s.UpdatedAt
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	s.UpdatedAt = updated
	return &s, nil
}

// Save upserts the settings row and refreshes s.UpdatedAt.
func (r *PgSettingsRepository) Save(ctx context.Context, s *model.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO site_settings (id, data, updated_at) VALUES (1, $1, NOW())
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
		 RETURNING updated_at`,
		raw,
	).Scan(&s.UpdatedAt)
}
