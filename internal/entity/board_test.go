package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = MarkerX
	o = MarkerO
	e = EmptyCell
)

func TestBoard_IsFree(t *testing.T) {
	// Given: a board with one marker
	board := Board{e, e, e, x, e, e, e, e, e}

	// Then: only the taken cell is not free
	assert.True(t, board.IsFree(0))
	assert.False(t, board.IsFree(3))
	assert.False(t, board.IsFree(-1))
	assert.False(t, board.IsFree(9))
}

func TestBoard_PutMarker(t *testing.T) {
	t.Run("Writes marker into the cell", func(t *testing.T) {
		board := Board{}

		err := board.PutMarker(8, o)

		require.NoError(t, err)
		assert.Equal(t, o, board[8])
		assert.False(t, board.IsFree(8))
	})

	t.Run("Returns ErrInvalidArea outside the board", func(t *testing.T) {
		board := Board{}

		err := board.PutMarker(10, x)

		require.ErrorIs(t, err, apperror.ErrInvalidArea)
		assert.Equal(t, Board{}, board)
	})

	t.Run("Returns ErrInvalidArea for negative index", func(t *testing.T) {
		board := Board{}

		assert.ErrorIs(t, board.PutMarker(-1, x), apperror.ErrInvalidArea)
	})
}

func TestBoard_FreeCorners(t *testing.T) {
	board := Board{}
	assert.Equal(t, []int{0, 2, 6, 8}, board.FreeCorners())

	board[0] = x
	assert.Equal(t, []int{2, 6, 8}, board.FreeCorners())
}

func TestBoard_FreeCenter(t *testing.T) {
	board := Board{}
	assert.Equal(t, []int{4}, board.FreeCenter())

	board[4] = o
	assert.Empty(t, board.FreeCenter())
}

func TestBoard_IsWinner(t *testing.T) {
	t.Run("Every winning line wins", func(t *testing.T) {
		for _, combo := range WinCombos {
			board := Board{}
			for _, i := range combo {
				board[i] = x
			}

			assert.True(t, board.IsWinner(x), "combo %v", combo)
			assert.False(t, board.IsWinner(o), "combo %v", combo)
		}
	})

	t.Run("Mixed line does not win", func(t *testing.T) {
		board := Board{x, x, o, e, e, e, e, e, e}

		assert.False(t, board.IsWinner(x))
		assert.False(t, board.IsWinner(o))
	})

	t.Run("Empty line never wins", func(t *testing.T) {
		board := Board{}

		assert.False(t, board.IsWinner(EmptyCell))
	})
}

func TestBoard_IsDraw(t *testing.T) {
	t.Run("Full board without winner", func(t *testing.T) {
		board := Board{
			o, x, o,
			o, x, x,
			x, o, x,
		}

		assert.True(t, board.IsDraw())
		assert.False(t, board.IsWinner(x))
		assert.False(t, board.IsWinner(o))
	})

	t.Run("Board with empty cell", func(t *testing.T) {
		board := Board{x, o, x, o, x, o, o, x, e}

		assert.False(t, board.IsDraw())
	})
}

func TestBoard_JSON(t *testing.T) {
	// Given: a board with two markers
	board := Board{x, e, e, e, o, e, e, e, e}

	// When: the board is marshaled
	data, err := json.Marshal(board)
	require.NoError(t, err)

	// Then: empty cells are null
	assert.JSONEq(t, `["X",null,null,null,"O",null,null,null,null]`, string(data))

	// And: it reads back the same
	var decoded Board
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, board, decoded)
}

func TestBoard_UnmarshalJSONWrongSize(t *testing.T) {
	var board Board

	err := json.Unmarshal([]byte(`[null,null]`), &board)

	require.Error(t, err)
}
