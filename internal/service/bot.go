package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/entity"
)

type random interface {
	Intn(n int) int
}

type BotService interface {
	ChooseCell(board entity.Board, mark entity.Marker) (int, error)
	MakeTurn(board *entity.Board, mark entity.Marker) (int, error)
}

type botService struct {
	rng random
}

func NewBotService(rng random) BotService {
	return &botService{
		rng: rng,
	}
}

// ChooseCell - picks the computer's cell: win, block, corner, center, anything free.
func (that *botService) ChooseCell(board entity.Board, mark entity.Marker) (int, error) {
	availableCells := board.FreeCells()
	if len(availableCells) == 0 {
		return 0, apperror.ErrNoAvailableMoves
	}

	if cell, ok := findWinningCell(board, availableCells, mark); ok {
		return cell, nil
	}

	if cell, ok := findWinningCell(board, availableCells, mark.Opponent()); ok {
		return cell, nil
	}

	if corners := board.FreeCorners(); len(corners) > 0 {
		return corners[that.rng.Intn(len(corners))], nil
	}

	if center := board.FreeCenter(); len(center) > 0 {
		return center[0], nil
	}

	return availableCells[that.rng.Intn(len(availableCells))], nil
}

func (that *botService) MakeTurn(board *entity.Board, mark entity.Marker) (int, error) {
	cell, err := that.ChooseCell(*board, mark)
	if err != nil {
		return 0, fmt.Errorf("bot failed to choose cell: %w", err)
	}

	if err = board.PutMarker(cell, mark); err != nil {
		return 0, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}

// findWinningCell - first free cell, in ascending order, that completes a line for mark.
func findWinningCell(board entity.Board, availableCells []int, mark entity.Marker) (int, bool) {
	for _, cell := range availableCells {
		probe := board
		probe[cell] = mark

		if probe.IsWinner(mark) {
			return cell, true
		}
	}

	return 0, false
}
