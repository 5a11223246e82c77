package settings

import (
	"context"
	"sync"
)

// InMemorySettingsRepository implements SettingsRepository using in-memory storage
type InMemorySettingsRepository struct {
	mu     sync.RWMutex
	values map[string]Settings
}

// NewInMemorySettingsRepository creates a new in-memory settings repository
func NewInMemorySettingsRepository() *InMemorySettingsRepository {
	return &InMemorySettingsRepository{
		values: make(map[string]Settings),
	}
}

// Get retrieves the stored settings
func (r *InMemorySettingsRepository) Get(ctx context.Context) (Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.values[ConfigKey]
	if !ok {
		return Settings{}, ErrSettingsNotFound
	}
	return s, nil
}

// Put stores settings under the canonical key
func (r *InMemorySettingsRepository) Put(ctx context.Context, settings Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[ConfigKey] = settings
	return nil
}
