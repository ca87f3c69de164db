package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

type memorySettings struct {
	mu       sync.RWMutex
	settings map[string]entity.Settings
}

// NewMemorySettingsRepository - process-local storage used when redis is disabled.
func NewMemorySettingsRepository() SettingsRepository {
	return &memorySettings{
		settings: make(map[string]entity.Settings),
	}
}

func (that *memorySettings) CreateOrUpdate(_ context.Context, playerID string, settings entity.Settings) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.settings[playerID] = settings

	return nil
}

func (that *memorySettings) GetByID(_ context.Context, playerID string) (entity.Settings, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	settings, ok := that.settings[playerID]
	if !ok {
		return entity.Settings{}, apperror.ErrSettingsNotFound
	}

	return settings, nil
}
