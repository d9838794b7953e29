package tictactoe

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/entity"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.MarkerX
	o = entity.MarkerO
	e = entity.EmptyCell
)

// scriptedBot - plays the given cells in order and counts its calls.
type scriptedBot struct {
	cells []int
	calls int
}

func (that *scriptedBot) MakeTurn(board *entity.Board, mark entity.Marker) (int, error) {
	that.calls++
	if len(that.cells) == 0 {
		return 0, apperror.ErrNoAvailableMoves
	}

	cell := that.cells[0]
	that.cells = that.cells[1:]

	return cell, board.PutMarker(cell, mark)
}

type fixedRandom int

func (that fixedRandom) Intn(n int) int {
	return int(that) % n
}

// newOngoingGame - human plays X, computer plays O.
func newOngoingGame(board entity.Board) *entity.Game {
	return &entity.Game{
		ID:      "123",
		Board:   board,
		Status:  entity.StatusOngoing,
		Markers: [2]entity.Marker{x, o},
		Players: []*entity.Player{entity.NewHumanPlayer("alice", x), entity.NewComputerPlayer(o)},
	}
}

func TestGameController_RegisterPlayer(t *testing.T) {
	t.Run("Human starts", func(t *testing.T) {
		// Given: a waiting game and a draw that picks the human
		bot := &scriptedBot{}
		controller := NewGameController(bot, fixedRandom(0))
		game := entity.NewGame("123", o, x, time.Now())

		// When: the human registers
		result, err := controller.RegisterPlayer(game, "alice")

		// Then: the game starts with an empty board and the computer waits
		require.NoError(t, err)
		assert.Equal(t, &StartResult{
			Text:   "alice vs ComputerBot - alice starts",
			Marker: o,
			Board:  entity.Board{},
			Status: true,
		}, result)
		assert.Equal(t, 0, bot.calls)
		assert.Equal(t, entity.StatusOngoing, game.Status)
		assert.Equal(t, "alice", game.FirstMover)
		assert.Equal(t, o, game.Human().Mark)
		assert.Equal(t, x, game.Computer().Mark)
	})

	t.Run("Computer starts and moves once", func(t *testing.T) {
		// Given: a draw that picks the computer
		bot := &scriptedBot{cells: []int{0}}
		controller := NewGameController(bot, fixedRandom(1))
		game := entity.NewGame("123", x, o, time.Now())

		// When: the human registers
		result, err := controller.RegisterPlayer(game, "alice")

		// Then: the computer's opening move is in the returned board
		require.NoError(t, err)
		assert.Equal(t, "alice vs ComputerBot - ComputerBot starts", result.Text)
		assert.Equal(t, x, result.Marker)
		assert.True(t, result.Status)
		assert.Equal(t, entity.Board{o, e, e, e, e, e, e, e, e}, result.Board)
		assert.Equal(t, 1, bot.calls)
		assert.Equal(t, entity.ComputerName, game.FirstMover)
	})

	t.Run("Second registration is rejected", func(t *testing.T) {
		// Given: a game that already started
		controller := NewGameController(&scriptedBot{}, fixedRandom(0))
		game := newOngoingGame(entity.Board{})

		// When: someone registers again
		_, err := controller.RegisterPlayer(game, "bob")

		// Then: ErrPlayerAlreadyRegistered is returned and players are unchanged
		require.ErrorIs(t, err, apperror.ErrPlayerAlreadyRegistered)
		assert.Equal(t, "alice", game.Human().Name)
	})
}

func TestGameController_TurnRejected(t *testing.T) {
	boards := []entity.Board{
		{},
		{x, e, e, e, o, e, e, e, e},
		{x, o, x, e, o, e, e, e, e},
	}

	for _, area := range []int{0, 10, -3, 100} {
		for _, board := range boards {
			// Given: an ongoing game
			bot := &scriptedBot{}
			controller := NewGameController(bot, fixedRandom(0))
			game := newOngoingGame(board)

			// When: the human plays outside 1..9
			result, err := controller.Turn(game, area, x)

			// Then: the move is rejected and nothing changes
			require.NoError(t, err)
			assert.Equal(t, OutcomeRejected, result.Outcome)
			assert.Equal(t, board, result.Board)
			assert.Equal(t, board, game.Board)
			assert.Equal(t, 0, bot.calls)
			assert.True(t, game.IsOngoing())
		}
	}

	t.Run("Occupied cell", func(t *testing.T) {
		// Given: a board where area 5 is taken
		bot := &scriptedBot{}
		controller := NewGameController(bot, fixedRandom(0))
		board := entity.Board{x, e, e, e, o, e, e, e, e}
		game := newOngoingGame(board)

		// When: the human plays area 5
		result, err := controller.Turn(game, 5, x)

		// Then: the move is rejected and the board is unchanged
		require.NoError(t, err)
		assert.Equal(t, OutcomeRejected, result.Outcome)
		assert.Equal(t, board, game.Board)
		assert.Equal(t, 0, bot.calls)
	})
}

func TestGameController_TurnErrors(t *testing.T) {
	t.Run("Wrong marker", func(t *testing.T) {
		controller := NewGameController(&scriptedBot{}, fixedRandom(0))
		game := newOngoingGame(entity.Board{})

		_, err := controller.Turn(game, 1, o)

		require.ErrorIs(t, err, apperror.ErrNotYourMarker)
		assert.Equal(t, entity.Board{}, game.Board)
	})

	t.Run("Game is not started", func(t *testing.T) {
		controller := NewGameController(&scriptedBot{}, fixedRandom(0))
		game := entity.NewGame("123", x, o, time.Now())

		_, err := controller.Turn(game, 1, x)

		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("Game is finished", func(t *testing.T) {
		controller := NewGameController(&scriptedBot{}, fixedRandom(0))
		game := newOngoingGame(entity.Board{x, x, x, o, o, e, e, e, e})
		game.Finish(entity.ReasonWin)

		_, err := controller.Turn(game, 6, x)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, e, game.Board[5])
	})
}

func TestGameController_TurnOutcomes(t *testing.T) {
	t.Run("Accepted move gets the computer reply", func(t *testing.T) {
		// Given: an empty board
		bot := &scriptedBot{cells: []int{0}}
		controller := NewGameController(bot, fixedRandom(0))
		game := newOngoingGame(entity.Board{})

		// When: the human takes the center
		result, err := controller.Turn(game, 5, x)

		// Then: both moves are on the board and the game goes on
		require.NoError(t, err)
		assert.Equal(t, OutcomeAccepted, result.Outcome)
		assert.False(t, result.IsGameOver())
		assert.Equal(t, entity.Board{o, e, e, e, x, e, e, e, e}, result.Board)
		assert.True(t, game.IsOngoing())
	})

	t.Run("Human wins before the computer moves", func(t *testing.T) {
		bot := &scriptedBot{}
		controller := NewGameController(bot, fixedRandom(0))
		game := newOngoingGame(entity.Board{x, x, e, o, o, e, e, e, e})

		result, err := controller.Turn(game, 3, x)

		require.NoError(t, err)
		assert.Equal(t, OutcomeGameOver, result.Outcome)
		assert.Equal(t, entity.ReasonWin, result.Reason)
		assert.Equal(t, 0, bot.calls)
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.ReasonWin, game.Reason)
	})

	t.Run("Human fills the board without winning", func(t *testing.T) {
		bot := &scriptedBot{}
		controller := NewGameController(bot, fixedRandom(0))
		game := newOngoingGame(entity.Board{
			x, o, x,
			x, o, o,
			o, x, e,
		})

		result, err := controller.Turn(game, 9, x)

		require.NoError(t, err)
		assert.Equal(t, entity.ReasonDraw, result.Reason)
		assert.Equal(t, 0, bot.calls)
	})

	t.Run("Win beats draw when the winning move fills the board", func(t *testing.T) {
		bot := &scriptedBot{}
		controller := NewGameController(bot, fixedRandom(0))
		game := newOngoingGame(entity.Board{
			x, o, x,
			o, x, o,
			o, x, e,
		})

		result, err := controller.Turn(game, 9, x)

		require.NoError(t, err)
		assert.True(t, game.Board.IsDraw())
		assert.Equal(t, entity.ReasonWin, result.Reason)
	})

	t.Run("Computer wins", func(t *testing.T) {
		bot := &scriptedBot{cells: []int{2}}
		controller := NewGameController(bot, fixedRandom(0))
		game := newOngoingGame(entity.Board{
			o, o, e,
			x, e, e,
			x, e, e,
		})

		result, err := controller.Turn(game, 9, x)

		require.NoError(t, err)
		assert.Equal(t, OutcomeGameOver, result.Outcome)
		assert.Equal(t, entity.ReasonLose, result.Reason)
		assert.Equal(t, 1, bot.calls)
		assert.Equal(t, o, result.Board[2])
	})

	t.Run("Computer fills the board without winning", func(t *testing.T) {
		bot := &scriptedBot{cells: []int{8}}
		controller := NewGameController(bot, fixedRandom(0))
		game := newOngoingGame(entity.Board{
			x, o, x,
			x, o, o,
			o, e, e,
		})

		result, err := controller.Turn(game, 8, x)

		require.NoError(t, err)
		assert.Equal(t, entity.ReasonDraw, result.Reason)
		assert.Equal(t, 1, bot.calls)
	})

	t.Run("Computer win beats draw on a full board", func(t *testing.T) {
		bot := &scriptedBot{cells: []int{8}}
		controller := NewGameController(bot, fixedRandom(0))
		game := newOngoingGame(entity.Board{
			o, x, x,
			x, o, o,
			e, o, e,
		})

		result, err := controller.Turn(game, 7, x)

		require.NoError(t, err)
		assert.True(t, game.Board.IsDraw())
		assert.Equal(t, entity.ReasonLose, result.Reason)
	})
}

func TestGameController_FullGameEnds(t *testing.T) {
	// Given: the real bot with a seeded source
	rng := pkg.NewRandom(3)
	controller := NewGameController(service.NewBotService(rng), rng)
	game := entity.NewGame("123", x, o, time.Now())

	_, err := controller.RegisterPlayer(game, "alice")
	require.NoError(t, err)

	// When: the human always plays the first free area
	var result *TurnResult
	for turns := 0; turns < entity.BoardSize && !game.IsFinished(); turns++ {
		free := game.Board.FreeCells()
		require.NotEmpty(t, free)

		result, err = controller.Turn(game, free[0]+1, x)
		require.NoError(t, err)
		require.NotEqual(t, OutcomeRejected, result.Outcome)
	}

	// Then: the game is over with a known reason
	require.True(t, game.IsFinished())
	assert.Contains(t, []string{entity.ReasonWin, entity.ReasonLose, entity.ReasonDraw}, result.Reason)
}
