package tictactoe

import "github.com/rocketscienceinc/tictactoe-bot/internal/entity"

type State string

const (
	StateIdle       State = "idle"
	StatePlayerTurn State = "player_turn"
	StateBotTurn    State = "bot_turn"
)

// TurnController - decides who moves next. In hot-seat mode it alternates the human marks,
// in bot mode it hands control between the human and the bot.
type TurnController struct {
	state    State
	active   entity.Mark
	settings entity.Settings
}

func NewTurnController() *TurnController {
	return &TurnController{
		state:    StateIdle,
		settings: entity.DefaultSettings(),
	}
}

// Start - X always opens; with a bot holding X the bot moves first.
func (that *TurnController) Start(settings entity.Settings) State {
	that.settings = settings.Normalize()
	that.active = entity.PlayerX

	if that.settings.IsWithBot() && that.settings.PlayerMark == entity.PlayerO {
		that.state = StateBotTurn
	} else {
		that.state = StatePlayerTurn
	}

	return that.state
}

// Advance - called after a move by mover that neither won nor drew.
func (that *TurnController) Advance(mover entity.Mark) State {
	if that.state == StateIdle {
		return that.state
	}

	if !that.settings.IsWithBot() {
		that.active = mover.Opponent()
		that.state = StatePlayerTurn
		return that.state
	}

	if mover == that.settings.PlayerMark {
		that.active = that.settings.BotMark()
		that.state = StateBotTurn
	} else {
		that.active = that.settings.PlayerMark
		that.state = StatePlayerTurn
	}

	return that.state
}

// Finish - terminal state; the active mark is kept as it was.
func (that *TurnController) Finish() {
	that.state = StateIdle
}

func (that *TurnController) Reset() {
	that.state = StateIdle
	that.active = entity.EmptyCell
}

func (that *TurnController) State() State {
	return that.state
}

// Active - mark whose move is expected.
func (that *TurnController) Active() entity.Mark {
	return that.active
}
