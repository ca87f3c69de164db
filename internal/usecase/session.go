package usecase

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

// Renderer - the UI side of a session. Rendering is a projection of the board, never read back.
type Renderer interface {
	ClearBoard()
	RenderCell(cell int, mark entity.Mark)
	RenderResult(text string)
	ShowOptions(visible bool)
	RenderSettings(settings entity.Settings)
}

type botService interface {
	ChooseCell(board entity.Board, botMark entity.Mark) (int, bool)
}

// Snapshot - read-only copy of a session.
type Snapshot struct {
	Game  entity.Game
	State tictactoe.State
}

// GameSession - one board with its turn state. All methods are safe for concurrent use.
type GameSession struct {
	logger *slog.Logger

	bot       botService
	renderer  Renderer
	scheduler pkg.Scheduler
	botDelay  time.Duration

	mu         sync.Mutex
	game       *entity.Game
	turns      *tictactoe.TurnController
	pending    pkg.Task
	generation uint64
}

func NewGameSession(
	logger *slog.Logger,
	id string,
	bot botService,
	renderer Renderer,
	scheduler pkg.Scheduler,
	botDelay time.Duration,
) *GameSession {
	return &GameSession{
		logger: logger.With("component", "session", "gameID", id),

		bot:       bot,
		renderer:  renderer,
		scheduler: scheduler,
		botDelay:  botDelay,

		game:  entity.NewGame(id),
		turns: tictactoe.NewTurnController(),
	}
}

// Start - begins a new game. When the bot holds X its opening move is applied before returning.
func (that *GameSession) Start(settings entity.Settings) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancelPendingLocked()

	that.game.Start(settings)
	state := that.turns.Start(that.game.Settings)

	that.renderer.ClearBoard()
	that.renderer.ShowOptions(false)

	that.logger.Info("game started", "playerMark", that.game.Settings.PlayerMark, "opponent", that.game.Settings.Opponent)

	if state == tictactoe.StateBotTurn {
		if err := that.botMoveLocked(); err != nil {
			that.logger.Error("bot failed to make first turn", "error", err)
		}
	}
}

// ApplyHumanMove - places the active human mark. Invalid moves change nothing and fire no callback.
func (that *GameSession) ApplyHumanMove(cell int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.game.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.turns.State() != tictactoe.StatePlayerTurn {
		return apperror.ErrNotYourTurn
	}

	if err := that.placeLocked(that.turns.Active(), cell); err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	if that.turns.State() == tictactoe.StateBotTurn {
		that.scheduleBotMoveLocked()
	}

	return nil
}

// ApplyBotMove - lets the bot move now. It is a no-op error outside the bot's turn.
func (that *GameSession) ApplyBotMove() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	// a reply already scheduled for this turn must not fire on a later one
	that.cancelPendingLocked()

	return that.botMoveLocked()
}

// Reset - deactivates the session and clears the board whatever the turn.
func (that *GameSession) Reset() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancelPendingLocked()

	that.game.Reset()
	that.turns.Reset()

	that.renderer.ClearBoard()
	that.renderer.ShowOptions(true)

	that.logger.Info("game reset")
}

// Close - drops a pending bot move without touching the UI. Used when the UI goes away.
func (that *GameSession) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancelPendingLocked()
}

func (that *GameSession) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return Snapshot{
		Game:  *that.game,
		State: that.turns.State(),
	}
}

func (that *GameSession) botMoveLocked() error {
	if err := that.game.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.turns.State() != tictactoe.StateBotTurn {
		return apperror.ErrNotYourTurn
	}

	botMark := that.turns.Active()

	cell, ok := that.bot.ChooseCell(that.game.Board, botMark)
	if !ok {
		return apperror.ErrNoAvailableMoves
	}

	if err := that.placeLocked(botMark, cell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

// placeLocked - one atomic move: write the cell, then win check for mover, then draw check.
func (that *GameSession) placeLocked(mover entity.Mark, cell int) error {
	that.game.Turn = mover

	if err := that.game.MakeTurn(mover, cell); err != nil {
		return err
	}

	that.renderer.RenderCell(cell, mover)

	if that.game.IsFinished() {
		that.turns.Finish()
		that.renderer.RenderResult(that.game.ResultText())
		that.logger.Info("game finished", "winner", that.game.Winner)

		return nil
	}

	that.turns.Advance(mover)
	that.game.Turn = that.turns.Active()

	return nil
}

func (that *GameSession) scheduleBotMoveLocked() {
	that.cancelPendingLocked()
	generation := that.generation

	that.pending = that.scheduler.Schedule(that.botDelay, func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		// superseded by a reset, a restart or a direct bot move
		if generation != that.generation {
			return
		}
		that.pending = nil

		if err := that.botMoveLocked(); err != nil {
			that.logger.Debug("scheduled bot move skipped", "error", err)
		}
	})
}

func (that *GameSession) cancelPendingLocked() {
	that.generation++

	if that.pending != nil {
		that.pending.Stop()
		that.pending = nil
	}
}
