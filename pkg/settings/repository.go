package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepository defines the interface for settings persistence.
type SettingsRepository interface {
	Get(ctx context.Context) (Settings, error)
	Put(ctx context.Context, settings Settings) error
}

// PostgresSettingsRepository implements SettingsRepository against the
// invite_settings key/value table.
type PostgresSettingsRepository struct {
	db *pgxpool.Pool
}

// NewPostgresSettingsRepository creates a new PostgreSQL-based settings repository
func NewPostgresSettingsRepository(db *pgxpool.Pool) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

// Get loads settings from the canonical key, falling back to the legacy key
// written by the older revision of this module.
func (r *PostgresSettingsRepository) Get(ctx context.Context) (Settings, error) {
	value, err := r.getValue(ctx, ConfigKey)
	if err == nil {
		var s Settings
		if err := json.Unmarshal(value, &s); err != nil {
			return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
		}
		if s.Roles == nil {
			s.Roles = make(map[string]RoleConfig)
		}
		return s, nil
	}
	if !errors.Is(err, ErrSettingsNotFound) {
		return Settings{}, err
	}

	value, err = r.getValue(ctx, LegacyConfigKey)
	if err != nil {
		return Settings{}, err
	}
	var legacy legacySettings
	if err := json.Unmarshal(value, &legacy); err != nil {
		return Settings{}, fmt.Errorf("failed to decode legacy settings: %w", err)
	}
	return legacy.toSettings(), nil
}

func (r *PostgresSettingsRepository) getValue(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT value
		FROM invite_settings
		WHERE key = $1
	`

	var value []byte
	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return value, nil
}

// Put stores settings under the canonical key.
func (r *PostgresSettingsRepository) Put(ctx context.Context, settings Settings) error {
	value, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	query := `
		INSERT INTO invite_settings (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
	`

	_, err = r.db.Exec(ctx, query, ConfigKey, value)
	return err
}
