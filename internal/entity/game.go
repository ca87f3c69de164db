package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

const drawText = "It's a draw!"

type Game struct {
	ID       string   `json:"id"`
	Board    Board    `json:"board"`
	Winner   Mark     `json:"winner"`
	Status   string   `json:"status"`
	Turn     Mark     `json:"player_turn"`
	Settings Settings `json:"settings"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:       id,
		Status:   StatusWaiting,
		Settings: DefaultSettings(),
	}
}

// Start - clears the board and activates the game with the given settings snapshot.
func (that *Game) Start(settings Settings) {
	that.Board.Create()
	that.Winner = EmptyCell
	that.Turn = PlayerX
	that.Settings = settings.Normalize()
	that.Status = StatusOngoing
}

// Reset - deactivates the game and clears the board whatever the turn.
func (that *Game) Reset() {
	that.Board.Create()
	that.Winner = EmptyCell
	that.Turn = EmptyCell
	that.Status = StatusWaiting
}

// MakeTurn - places mark and records a win or a draw. Turn handover is left to the caller.
func (that *Game) MakeTurn(mark Mark, cell int) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if err := that.Board.SetCell(cell, mark); err != nil {
		return err
	}

	that.UpdateGameState(mark)

	return nil
}

// UpdateGameState - evaluates the board for the mark that has just moved.
func (that *Game) UpdateGameState(mover Mark) {
	switch result := that.Board.Outcome(mover); result {
	case PlayerX, PlayerO, PlayerTie:
		that.Winner = result
		that.Status = StatusFinished
	default:
		that.Status = StatusOngoing
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownGameStatus, that.Status)
	}
}

// ResultText - text shown in the result area.
func (that *Game) ResultText() string {
	switch that.Winner {
	case PlayerX, PlayerO:
		return fmt.Sprintf("%s wins!", that.Winner)
	case PlayerTie:
		return drawText
	default:
		return ""
	}
}
