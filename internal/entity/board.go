package entity

import (
	"fmt"
	"iter"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

// BoardSize - number of cells on the board, indexed 0..8 row-major.
const BoardSize = 9

type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	PlayerTie Mark = "-"

	EmptyCell Mark = ""
)

// WinCombos - rows, then columns, then diagonals. The bot relies on this order for tie-breaks.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Opponent - returns the other playing mark.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Mark) IsPlayable() bool {
	return that == PlayerX || that == PlayerO
}

type Board [BoardSize]Mark

// Create - clears every cell.
func (that *Board) Create() {
	*that = Board{}
}

// SetCell - occupies an empty cell. Occupied cells are never overwritten.
func (that *Board) SetCell(cell int, mark Mark) error {
	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !mark.IsPlayable() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if that[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that[cell] = mark

	return nil
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// EmptyIndices - yields empty cells in ascending order. Each range over the result is a fresh pass.
func (that *Board) EmptyIndices() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, cell := range that {
			if cell != EmptyCell {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}

// HasWin - reports whether any line is fully occupied by mark.
func (that *Board) HasWin(mark Mark) bool {
	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}
	return false
}

// IsDraw - a full board. Callers must check HasWin for the mover first.
func (that *Board) IsDraw() bool {
	return that.IsFull()
}

// Outcome - result after mover's placement: mover, PlayerTie or EmptyCell when play goes on.
func (that *Board) Outcome(mover Mark) Mark {
	if that.HasWin(mover) {
		return mover
	}

	if that.IsDraw() {
		return PlayerTie
	}

	return EmptyCell
}
