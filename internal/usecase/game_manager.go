package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

type settingsRepo interface {
	CreateOrUpdate(ctx context.Context, playerID string, settings entity.Settings) error
	GetByID(ctx context.Context, playerID string) (entity.Settings, error)
}

// GameManager - entry points used by the UI for one player. It owns the settings that
// outlive single games and hands a copy of them to the session on every start.
type GameManager struct {
	logger *slog.Logger

	playerID     string
	session      *GameSession
	settingsRepo settingsRepo
	renderer     Renderer

	mu       sync.Mutex
	settings entity.Settings
}

func NewGameManager(
	logger *slog.Logger,
	playerID string,
	session *GameSession,
	settingsRepo settingsRepo,
	renderer Renderer,
	defaults entity.Settings,
) *GameManager {
	return &GameManager{
		logger: logger.With("component", "gameManager", "playerID", playerID),

		playerID:     playerID,
		session:      session,
		settingsRepo: settingsRepo,
		renderer:     renderer,

		settings: defaults.Normalize(),
	}
}

// LoadSettings - restores the player's stored settings, keeping the defaults when none were saved.
func (that *GameManager) LoadSettings(ctx context.Context) (entity.Settings, error) {
	stored, err := that.settingsRepo.GetByID(ctx, that.playerID)
	if err != nil && !errors.Is(err, apperror.ErrSettingsNotFound) {
		return that.Settings(), fmt.Errorf("failed to get settings: %w", err)
	}

	that.mu.Lock()
	if err == nil {
		that.settings = stored.Normalize()
	}
	settings := that.settings
	that.mu.Unlock()

	that.renderer.RenderSettings(settings)

	return settings, nil
}

func (that *GameManager) Settings() entity.Settings {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.settings
}

func (that *GameManager) Session() *GameSession {
	return that.session
}

func (that *GameManager) OnStartRequested() {
	that.session.Start(that.Settings())
}

func (that *GameManager) OnResetRequested() {
	that.session.Reset()
}

func (that *GameManager) Close() {
	that.session.Close()
}

func (that *GameManager) OnCellActivated(cell int) error {
	if err := that.session.ApplyHumanMove(cell); err != nil {
		that.logger.Debug("move ignored", "cell", cell, "error", err)
		return err
	}
	return nil
}

// OnToggleSymbol - switches the human mark for the next game.
func (that *GameManager) OnToggleSymbol(ctx context.Context) (entity.Settings, error) {
	return that.updateSettings(ctx, (*entity.Settings).ToggleMark)
}

// OnToggleOpponent - switches between the bot and a second local player for the next game.
func (that *GameManager) OnToggleOpponent(ctx context.Context) (entity.Settings, error) {
	return that.updateSettings(ctx, (*entity.Settings).ToggleOpponent)
}

func (that *GameManager) updateSettings(ctx context.Context, toggle func(*entity.Settings)) (entity.Settings, error) {
	that.mu.Lock()
	toggle(&that.settings)
	settings := that.settings
	that.mu.Unlock()

	err := that.settingsRepo.CreateOrUpdate(ctx, that.playerID, settings)

	// the new value applies to the next game even when it could not be stored
	that.renderer.RenderSettings(settings)

	if err != nil {
		return settings, fmt.Errorf("failed to save settings: %w", err)
	}

	return settings, nil
}
