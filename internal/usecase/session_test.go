package usecase

import (
	"io"
	"log/slog"
	"math/rand"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-bot/internal/service"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

const testBotDelay = 500 * time.Millisecond

var (
	hotSeat = entity.Settings{PlayerMark: entity.PlayerX, Opponent: entity.OpponentPlayer}
	xVsBot  = entity.Settings{PlayerMark: entity.PlayerX, Opponent: entity.OpponentBot}
	oVsBot  = entity.Settings{PlayerMark: entity.PlayerO, Opponent: entity.OpponentBot}
)

type renderEvent struct {
	kind    string
	cell    int
	mark    entity.Mark
	text    string
	visible bool
}

type recordingRenderer struct {
	mu       sync.Mutex
	events   []renderEvent
	settings []entity.Settings
}

func (that *recordingRenderer) record(event renderEvent) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.events = append(that.events, event)
}

func (that *recordingRenderer) ClearBoard() {
	that.record(renderEvent{kind: "clear"})
}

func (that *recordingRenderer) RenderCell(cell int, mark entity.Mark) {
	that.record(renderEvent{kind: "cell", cell: cell, mark: mark})
}

func (that *recordingRenderer) RenderResult(text string) {
	that.record(renderEvent{kind: "result", text: text})
}

func (that *recordingRenderer) ShowOptions(visible bool) {
	that.record(renderEvent{kind: "options", visible: visible})
}

func (that *recordingRenderer) RenderSettings(settings entity.Settings) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.settings = append(that.settings, settings)
}

func (that *recordingRenderer) Events() []renderEvent {
	that.mu.Lock()
	defer that.mu.Unlock()
	return slices.Clone(that.events)
}

func (that *recordingRenderer) Results() []string {
	var results []string
	for _, event := range that.Events() {
		if event.kind == "result" {
			results = append(results, event.text)
		}
	}
	return results
}

func (that *recordingRenderer) Reset() {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.events = nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newTestSession(t *testing.T, scheduler pkg.Scheduler) (*GameSession, *recordingRenderer) {
	t.Helper()

	renderer := &recordingRenderer{}
	bot := service.NewBotService(rand.New(rand.NewSource(1))) //nolint: gosec // it's ok

	return NewGameSession(newTestLogger(), "game-1", bot, renderer, scheduler, testBotDelay), renderer
}

func occupied(board entity.Board) int {
	return entity.BoardSize - len(slices.Collect(board.EmptyIndices()))
}

func firstFree(board entity.Board) int {
	for cell := range board.EmptyIndices() {
		return cell
	}
	return -1
}

func playAll(t *testing.T, session *GameSession, cells ...int) {
	t.Helper()

	for _, cell := range cells {
		require.NoError(t, session.ApplyHumanMove(cell), "cell %d", cell)
	}
}

func TestGameSession_Start(t *testing.T) {
	t.Run("Human X starts on an empty board", func(t *testing.T) {
		// Given: a new session
		scheduler := pkg.NewManualScheduler()
		session, renderer := newTestSession(t, scheduler)

		// When: the game is started against the bot with X
		session.Start(xVsBot)

		// Then: the board is empty, the human moves and the options are hidden
		snapshot := session.Snapshot()
		assert.Equal(t, entity.Board{}, snapshot.Game.Board)
		assert.True(t, snapshot.Game.IsOngoing())
		assert.Equal(t, tictactoe.StatePlayerTurn, snapshot.State)
		assert.Equal(t, entity.PlayerX, snapshot.Game.Turn)
		assert.Equal(t, []renderEvent{{kind: "clear"}, {kind: "options", visible: false}}, renderer.Events())
	})

	t.Run("Bot holding X opens before Start returns", func(t *testing.T) {
		// Given: the human chose O against the bot
		scheduler := pkg.NewManualScheduler()
		session, renderer := newTestSession(t, scheduler)

		// When: the game is started
		session.Start(oVsBot)

		// Then: exactly one X is on the board and it is the human's turn
		snapshot := session.Snapshot()
		assert.Equal(t, 1, occupied(snapshot.Game.Board))
		assert.Equal(t, tictactoe.StatePlayerTurn, snapshot.State)
		assert.Equal(t, entity.PlayerO, snapshot.Game.Turn)
		assert.Equal(t, 0, scheduler.Pending())

		events := renderer.Events()
		require.Len(t, events, 3)
		assert.Equal(t, "cell", events[2].kind)
		assert.Equal(t, entity.PlayerX, events[2].mark)
		assert.Equal(t, entity.PlayerX, snapshot.Game.Board[events[2].cell])
	})
}

func TestGameSession_ApplyHumanMove(t *testing.T) {
	t.Run("Hot seat diagonal win for X", func(t *testing.T) {
		// Given: a hot-seat game
		session, renderer := newTestSession(t, pkg.NewManualScheduler())
		session.Start(hotSeat)

		// When: X plays 0, 4, 8 while O plays 1 and 2
		playAll(t, session, 0, 1, 4, 2, 8)

		// Then: X wins and the session is inactive
		snapshot := session.Snapshot()
		assert.True(t, snapshot.Game.IsFinished())
		assert.Equal(t, entity.PlayerX, snapshot.Game.Winner)
		assert.Equal(t, tictactoe.StateIdle, snapshot.State)
		assert.Equal(t, []string{"X wins!"}, renderer.Results())

		// And: further moves are ignored
		err := session.ApplyHumanMove(3)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, entity.EmptyCell, session.Snapshot().Game.Board[3])
	})

	t.Run("Full board completing a line reports a win", func(t *testing.T) {
		session, renderer := newTestSession(t, pkg.NewManualScheduler())
		session.Start(hotSeat)

		playAll(t, session, 0, 1, 2, 3, 4, 5, 7, 6, 8)

		snapshot := session.Snapshot()
		assert.True(t, snapshot.Game.Board.IsFull())
		assert.Equal(t, entity.PlayerX, snapshot.Game.Winner)
		assert.Equal(t, []string{"X wins!"}, renderer.Results())
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		session, renderer := newTestSession(t, pkg.NewManualScheduler())
		session.Start(hotSeat)

		playAll(t, session, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		snapshot := session.Snapshot()
		assert.Equal(t, entity.PlayerTie, snapshot.Game.Winner)
		assert.False(t, snapshot.Game.IsOngoing())
		assert.Equal(t, []string{"It's a draw!"}, renderer.Results())
	})

	t.Run("Invalid moves change nothing and render nothing", func(t *testing.T) {
		// Given: a hot-seat game with X on 0
		session, renderer := newTestSession(t, pkg.NewManualScheduler())
		session.Start(hotSeat)
		playAll(t, session, 0)
		before := session.Snapshot()
		renderer.Reset()

		// When: occupied and out of range cells are played
		errOccupied := session.ApplyHumanMove(0)
		errRange := session.ApplyHumanMove(9)
		errNegative := session.ApplyHumanMove(-1)

		// Then: every move is rejected silently
		require.ErrorIs(t, errOccupied, apperror.ErrCellOccupied)
		require.ErrorIs(t, errRange, apperror.ErrInvalidCell)
		require.ErrorIs(t, errNegative, apperror.ErrInvalidCell)
		assert.Equal(t, before, session.Snapshot())
		assert.Empty(t, renderer.Events())
	})

	t.Run("Moves before start are ignored", func(t *testing.T) {
		session, renderer := newTestSession(t, pkg.NewManualScheduler())

		err := session.ApplyHumanMove(4)

		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
		assert.Empty(t, renderer.Events())
	})

	t.Run("Human move against the bot schedules one delayed reply", func(t *testing.T) {
		// Given: X against the bot
		scheduler := pkg.NewManualScheduler()
		session, _ := newTestSession(t, scheduler)
		session.Start(xVsBot)

		// When: the human takes the centre
		require.NoError(t, session.ApplyHumanMove(4))

		// Then: the bot reply is pending and the human cannot move again
		assert.Equal(t, tictactoe.StateBotTurn, session.Snapshot().State)
		assert.Equal(t, 1, scheduler.Pending())
		assert.Equal(t, []time.Duration{testBotDelay}, scheduler.Delays())
		require.ErrorIs(t, session.ApplyHumanMove(0), apperror.ErrNotYourTurn)

		// When: the delay elapses
		assert.Equal(t, 1, scheduler.RunPending())

		// Then: the bot has answered with O and control is back with the human
		snapshot := session.Snapshot()
		assert.Equal(t, 2, occupied(snapshot.Game.Board))
		assert.Equal(t, tictactoe.StatePlayerTurn, snapshot.State)
		assert.Equal(t, entity.PlayerX, snapshot.Game.Turn)
		assert.Equal(t, 0, scheduler.Pending())
	})

	t.Run("Bot win is attributed to the bot mark", func(t *testing.T) {
		// Given: O (bot) owns 3 and 4, X owns 0 and 6
		scheduler := pkg.NewManualScheduler()
		session, renderer := newTestSession(t, scheduler)
		session.Start(xVsBot)
		session.game.Board = entity.Board{
			entity.PlayerX, "", "",
			entity.PlayerO, entity.PlayerO, "",
			entity.PlayerX, "", "",
		}

		// When: X plays 1 and the bot replies
		require.NoError(t, session.ApplyHumanMove(1))
		scheduler.RunPending()

		// Then: the bot completes 3-4-5 and O wins
		snapshot := session.Snapshot()
		assert.Equal(t, entity.PlayerO, snapshot.Game.Board[5])
		assert.Equal(t, entity.PlayerO, snapshot.Game.Winner)
		assert.Equal(t, []string{"O wins!"}, renderer.Results())
	})
}

func TestGameSession_ApplyBotMove(t *testing.T) {
	t.Run("No-op when inactive", func(t *testing.T) {
		session, renderer := newTestSession(t, pkg.NewManualScheduler())

		err := session.ApplyBotMove()

		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
		assert.Empty(t, renderer.Events())
	})

	t.Run("No-op on the human's turn", func(t *testing.T) {
		session, _ := newTestSession(t, pkg.NewManualScheduler())
		session.Start(xVsBot)

		err := session.ApplyBotMove()

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, entity.Board{}, session.Snapshot().Game.Board)
	})

	t.Run("Synchronous bot move during the bot's turn", func(t *testing.T) {
		scheduler := pkg.NewManualScheduler()
		session, _ := newTestSession(t, scheduler)
		session.Start(xVsBot)
		require.NoError(t, session.ApplyHumanMove(0))

		require.NoError(t, session.ApplyBotMove())

		assert.Equal(t, 2, occupied(session.Snapshot().Game.Board))

		// And: the queued reply has been dropped
		assert.Equal(t, 0, scheduler.RunPending())
		assert.Equal(t, 2, occupied(session.Snapshot().Game.Board))
	})

	t.Run("Next human move leaves exactly one reply queued", func(t *testing.T) {
		// Given: the bot answered directly while its delayed reply was queued
		scheduler := pkg.NewManualScheduler()
		session, _ := newTestSession(t, scheduler)
		session.Start(xVsBot)
		require.NoError(t, session.ApplyHumanMove(0))
		require.NoError(t, session.ApplyBotMove())

		// When: the human moves again
		require.NoError(t, session.ApplyHumanMove(firstFree(session.Snapshot().Game.Board)))

		// Then: only the reply to this move is pending
		assert.Equal(t, 1, scheduler.Pending())
		assert.Equal(t, 1, scheduler.RunPending())
		assert.Equal(t, 4, occupied(session.Snapshot().Game.Board))
	})

	t.Run("Timer that already fired does not answer a later turn", func(t *testing.T) {
		// Given: a reply whose timer cannot be stopped any more
		scheduler := &lateScheduler{}
		session, _ := newTestSession(t, scheduler)
		session.Start(xVsBot)
		require.NoError(t, session.ApplyHumanMove(0))
		require.NoError(t, session.ApplyBotMove())
		require.NoError(t, session.ApplyHumanMove(firstFree(session.Snapshot().Game.Board)))
		require.Len(t, scheduler.tasks, 2)

		// When: the first timer fires during the second bot turn
		scheduler.tasks[0]()

		// Then: the bot waits for its own delay
		snapshot := session.Snapshot()
		assert.Equal(t, 3, occupied(snapshot.Game.Board))
		assert.Equal(t, tictactoe.StateBotTurn, snapshot.State)

		// When: the current timer fires
		scheduler.tasks[1]()

		// Then: the bot answers once
		assert.Equal(t, 4, occupied(session.Snapshot().Game.Board))
	})
}

func TestGameSession_Reset(t *testing.T) {
	t.Run("Reset during the bot's turn clears everything", func(t *testing.T) {
		// Given: a bot reply is pending
		scheduler := pkg.NewManualScheduler()
		session, renderer := newTestSession(t, scheduler)
		session.Start(xVsBot)
		require.NoError(t, session.ApplyHumanMove(4))
		renderer.Reset()

		// When: the game is reset
		session.Reset()

		// Then: the session is inactive, the board empty and the reply cancelled
		snapshot := session.Snapshot()
		assert.True(t, snapshot.Game.IsWaiting())
		assert.Equal(t, entity.Board{}, snapshot.Game.Board)
		assert.Equal(t, tictactoe.StateIdle, snapshot.State)
		assert.Equal(t, 0, scheduler.RunPending())
		assert.Equal(t, []renderEvent{{kind: "clear"}, {kind: "options", visible: true}}, renderer.Events())
	})

	t.Run("Reset on the human's turn", func(t *testing.T) {
		session, _ := newTestSession(t, pkg.NewManualScheduler())
		session.Start(hotSeat)
		playAll(t, session, 0, 1)

		session.Reset()

		assert.Equal(t, entity.Board{}, session.Snapshot().Game.Board)
		require.ErrorIs(t, session.ApplyHumanMove(2), apperror.ErrGameIsNotStarted)
	})
}

func TestGameSession_Close(t *testing.T) {
	// Given: a bot reply is pending
	scheduler := pkg.NewManualScheduler()
	session, renderer := newTestSession(t, scheduler)
	session.Start(xVsBot)
	require.NoError(t, session.ApplyHumanMove(4))
	renderer.Reset()

	// When: the session is closed
	session.Close()

	// Then: the reply never runs and nothing is rendered
	assert.Equal(t, 0, scheduler.RunPending())
	assert.Empty(t, renderer.Events())
	assert.Equal(t, 1, occupied(session.Snapshot().Game.Board))
}

// lateScheduler - Stop never prevents the callback, like a timer that has already fired.
type lateScheduler struct {
	tasks []func()
}

type lateTask struct{}

func (lateTask) Stop() bool { return false }

func (that *lateScheduler) Schedule(_ time.Duration, fn func()) pkg.Task {
	that.tasks = append(that.tasks, fn)
	return lateTask{}
}

func TestGameSession_StaleBotMove(t *testing.T) {
	// Given: a bot reply whose timer fires after a restart
	scheduler := &lateScheduler{}
	session, _ := newTestSession(t, scheduler)
	session.Start(xVsBot)
	require.NoError(t, session.ApplyHumanMove(4))
	session.Reset()
	session.Start(xVsBot)

	// When: the old callback runs
	require.Len(t, scheduler.tasks, 1)
	scheduler.tasks[0]()

	// Then: the new game is untouched
	snapshot := session.Snapshot()
	assert.Equal(t, entity.Board{}, snapshot.Game.Board)
	assert.Equal(t, tictactoe.StatePlayerTurn, snapshot.State)
}

func TestGameSession_TimerScheduler(t *testing.T) {
	// Given: a session with a real timer
	renderer := &recordingRenderer{}
	bot := service.NewBotService(rand.New(rand.NewSource(3))) //nolint: gosec // it's ok
	session := NewGameSession(newTestLogger(), "game-2", bot, renderer, pkg.NewTimerScheduler(), time.Millisecond)
	session.Start(xVsBot)

	// When: the human moves
	require.NoError(t, session.ApplyHumanMove(4))

	// Then: the bot answers on its own
	require.Eventually(t, func() bool {
		snapshot := session.Snapshot()
		return snapshot.State == tictactoe.StatePlayerTurn && occupied(snapshot.Game.Board) == 2
	}, 2*time.Second, 5*time.Millisecond, "bot did not reply")
}
