package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

const writeWait = 10 * time.Second

// client - one browser connection. It is the renderer of its game session, so writes
// come from the read loop and from bot timers at the same time.
type client struct {
	logger *slog.Logger

	playerID string

	writeMu sync.Mutex
	conn    *websocket.Conn
}

func newClient(logger *slog.Logger, conn *websocket.Conn, playerID string) *client {
	return &client{
		logger:   logger.With("component", "wsClient", "playerID", playerID),
		playerID: playerID,
		conn:     conn,
	}
}

func (that *client) sendMessage(action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err = that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *client) sendErrorResponse(action, text string) error {
	return that.sendMessage(actionError, ResponsePayload{Action: action, Error: text})
}

// render - renderer callbacks cannot return errors, a dead connection is only logged.
func (that *client) render(action string, payload ResponsePayload) {
	if err := that.sendMessage(action, payload); err != nil {
		that.logger.Debug("failed to render", "action", action, "error", err)
	}
}

func (that *client) ClearBoard() {
	that.render(actionBoardClear, ResponsePayload{})
}

func (that *client) RenderCell(cell int, mark entity.Mark) {
	that.render(actionCellRender, ResponsePayload{Cell: &cell, Mark: mark})
}

func (that *client) RenderResult(text string) {
	that.render(actionGameResult, ResponsePayload{Text: text})
}

func (that *client) ShowOptions(visible bool) {
	that.render(actionOptions, ResponsePayload{Visible: &visible})
}

func (that *client) RenderSettings(settings entity.Settings) {
	that.render(actionSettings, ResponsePayload{Settings: &settings})
}
