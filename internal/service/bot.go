package service

import (
	"math/rand"
	"slices"
	"sync"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

type BotService interface {
	// ChooseCell - picks a cell for botMark. ok is false only on a full board.
	ChooseCell(board entity.Board, botMark entity.Mark) (cell int, ok bool)
}

type botService struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewBotService(rnd *rand.Rand) BotService {
	return &botService{
		rnd: rnd,
	}
}

// lineCount - what a single winning line holds.
type lineCount struct {
	own       int
	opponent  int
	firstFree int
}

func countLine(board *entity.Board, combo [3]int, own entity.Mark) lineCount {
	count := lineCount{firstFree: -1}

	for _, cell := range combo {
		switch board[cell] {
		case entity.EmptyCell:
			if count.firstFree < 0 {
				count.firstFree = cell
			}
		case own:
			count.own++
		default:
			count.opponent++
		}
	}

	return count
}

// ChooseCell - win now, then block, then build on a lone own mark, then random.
func (that *botService) ChooseCell(board entity.Board, botMark entity.Mark) (int, bool) {
	nearWin := func(c lineCount) bool { return c.own == 2 && c.firstFree >= 0 }
	nearLoss := func(c lineCount) bool { return c.opponent == 2 && c.firstFree >= 0 }
	buildable := func(c lineCount) bool { return c.own == 1 && c.opponent == 0 && c.firstFree >= 0 }

	for _, rule := range []func(lineCount) bool{nearWin, nearLoss, buildable} {
		if cell, ok := scanLines(&board, botMark, rule); ok {
			return cell, true
		}
	}

	return that.randomCell(&board)
}

// scanLines - first line in WinCombos order that satisfies rule.
func scanLines(board *entity.Board, botMark entity.Mark, rule func(lineCount) bool) (int, bool) {
	for _, combo := range entity.WinCombos {
		if count := countLine(board, combo, botMark); rule(count) {
			return count.firstFree, true
		}
	}
	return -1, false
}

func (that *botService) randomCell(board *entity.Board) (int, bool) {
	free := slices.Collect(board.EmptyIndices())
	if len(free) == 0 {
		return -1, false
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	return free[that.rnd.Intn(len(free))], true //nolint: gosec // it's ok
}
