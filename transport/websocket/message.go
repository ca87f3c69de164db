package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

// inbound actions.
const (
	actionConnect          = "connect"
	actionGameStart        = "game:start"
	actionGameReset        = "game:reset"
	actionGameCell         = "game:cell"
	actionSettingsSymbol   = "settings:symbol"
	actionSettingsOpponent = "settings:opponent"
)

// outbound actions.
const (
	actionBoardClear = "board:clear"
	actionCellRender = "cell:render"
	actionGameResult = "game:result"
	actionOptions    = "options"
	actionSettings   = "settings"
	actionError      = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	Cell *int `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Action   string           `json:"action,omitempty"`
	Cell     *int             `json:"cell,omitempty"`
	Mark     entity.Mark      `json:"mark,omitempty"`
	Text     string           `json:"text,omitempty"`
	Visible  *bool            `json:"visible,omitempty"`
	Settings *entity.Settings `json:"settings,omitempty"`
	Error    string           `json:"error,omitempty"`
}
