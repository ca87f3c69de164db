package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-bot/internal/usecase"
)

var errCellRequired = errors.New("cell is required")

// handleConnect - sends the stored settings and shows the options panel.
func (that *Server) handleConnect(ctx context.Context, manager *usecase.GameManager, client *client, msg *Message) error {
	if _, err := manager.LoadSettings(ctx); err != nil {
		// the defaults stay usable, the player only loses stored choices
		client.RenderSettings(manager.Settings())
		that.reply(that.logger, client.sendErrorResponse(msg.Action, "failed to load settings"))

		return fmt.Errorf("failed to load settings: %w", err)
	}

	client.ShowOptions(true)

	return nil
}

func (that *Server) handleStart(_ context.Context, manager *usecase.GameManager, _ *client, _ *Message) error {
	manager.OnStartRequested()
	return nil
}

func (that *Server) handleReset(_ context.Context, manager *usecase.GameManager, _ *client, _ *Message) error {
	manager.OnResetRequested()
	return nil
}

// handleCell - a click on a board cell. Rejected moves are ignored by the UI, so nothing is sent back.
func (that *Server) handleCell(_ context.Context, manager *usecase.GameManager, client *client, msg *Message) error {
	var payloadReq RequestPayload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		that.reply(that.logger, client.sendErrorResponse(msg.Action, "invalid payload"))
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Cell == nil {
		that.reply(that.logger, client.sendErrorResponse(msg.Action, "cell is required"))
		return errCellRequired
	}

	if err := manager.OnCellActivated(*payloadReq.Cell); err != nil {
		that.logger.Debug("cell click rejected", "playerID", client.playerID, "cell", *payloadReq.Cell, "error", err)
	}

	return nil
}

func (that *Server) handleToggleSymbol(ctx context.Context, manager *usecase.GameManager, _ *client, _ *Message) error {
	if _, err := manager.OnToggleSymbol(ctx); err != nil {
		return fmt.Errorf("failed to toggle symbol: %w", err)
	}
	return nil
}

func (that *Server) handleToggleOpponent(ctx context.Context, manager *usecase.GameManager, _ *client, _ *Message) error {
	if _, err := manager.OnToggleOpponent(ctx); err != nil {
		return fmt.Errorf("failed to toggle opponent: %w", err)
	}
	return nil
}
