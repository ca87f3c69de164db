package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

const settingsKeyPrefix = "settings:"

type SettingsRepository interface {
	CreateOrUpdate(ctx context.Context, playerID string, settings entity.Settings) error
	GetByID(ctx context.Context, playerID string) (entity.Settings, error)
}

type dbSettings struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSettingsRepository - stores settings as JSON under settings:<playerID>. A zero ttl keeps them forever.
func NewSettingsRepository(client *redis.Client, ttl time.Duration) SettingsRepository {
	return &dbSettings{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbSettings) CreateOrUpdate(ctx context.Context, playerID string, settings entity.Settings) error {
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	err = that.client.Set(ctx, settingsKeyPrefix+playerID, settingsJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set settings: %w", err)
	}

	return nil
}

func (that *dbSettings) GetByID(ctx context.Context, playerID string) (entity.Settings, error) {
	response, err := that.client.Get(ctx, settingsKeyPrefix+playerID).Result()

	if errors.Is(err, redis.Nil) {
		return entity.Settings{}, apperror.ErrSettingsNotFound
	}

	if err != nil {
		return entity.Settings{}, fmt.Errorf("failed to get settings by player ID: %w", err)
	}

	var settings entity.Settings
	if err = json.Unmarshal([]byte(response), &settings); err != nil {
		return entity.Settings{}, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return settings.Normalize(), nil
}
