package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const settingsFileName = "invite_settings.json"

// FileSettingsRepository implements SettingsRepository using file-based storage.
// The file holds a key -> raw JSON map so the legacy configuration key can
// coexist with the canonical one.
type FileSettingsRepository struct {
	dataDir string
	values  map[string]json.RawMessage
	mutex   sync.RWMutex
}

// NewFileSettingsRepository creates a new file-based settings repository
func NewFileSettingsRepository(dataDir string) (*FileSettingsRepository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	repo := &FileSettingsRepository{
		dataDir: dataDir,
		values:  make(map[string]json.RawMessage),
	}

	if err := repo.load(); err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	return repo, nil
}

// Get retrieves the stored settings, reading the legacy key when the
// canonical key is absent.
func (r *FileSettingsRepository) Get(ctx context.Context) (Settings, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if raw, ok := r.values[ConfigKey]; ok {
		var s Settings
		if err := json.Unmarshal(raw, &s); err != nil {
			return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
		}
		if s.Roles == nil {
			s.Roles = make(map[string]RoleConfig)
		}
		return s, nil
	}

	if raw, ok := r.values[LegacyConfigKey]; ok {
		var legacy legacySettings
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return Settings{}, fmt.Errorf("failed to decode legacy settings: %w", err)
		}
		return legacy.toSettings(), nil
	}

	return Settings{}, ErrSettingsNotFound
}

// Put stores settings under the canonical key
func (r *FileSettingsRepository) Put(ctx context.Context, settings Settings) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	r.values[ConfigKey] = raw
	return r.save()
}

func (r *FileSettingsRepository) filePath() string {
	return filepath.Join(r.dataDir, settingsFileName)
}

func (r *FileSettingsRepository) load() error {
	data, err := os.ReadFile(r.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(data, &r.values)
}

func (r *FileSettingsRepository) save() error {
	data, err := json.MarshalIndent(r.values, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.filePath(), data, 0644)
}
