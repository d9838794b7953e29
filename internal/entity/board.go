package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/apperror"
)

const (
	BoardSize   = 9
	CenterIndex = 4
)

var (
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}

	Corners = [4]int{0, 2, 6, 8}
)

// Board - 3x3 grid stored row by row, indexes 0..8.
type Board [BoardSize]Marker

func (that Board) IsFree(index int) bool {
	if index < 0 || index >= BoardSize {
		return false
	}
	return that[index] == EmptyCell
}

// PutMarker - writes marker into the cell. Occupancy is checked by the caller.
func (that *Board) PutMarker(index int, marker Marker) error {
	if index < 0 || index >= BoardSize {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidArea, index)
	}

	that[index] = marker

	return nil
}

func (that Board) FreeCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}
	return cells
}

func (that Board) FreeCorners() []int {
	corners := make([]int, 0, len(Corners))
	for _, i := range Corners {
		if that[i] == EmptyCell {
			corners = append(corners, i)
		}
	}
	return corners
}

func (that Board) FreeCenter() []int {
	if that[CenterIndex] == EmptyCell {
		return []int{CenterIndex}
	}
	return []int{}
}

func (that Board) IsWinner(marker Marker) bool {
	if !marker.IsValid() {
		return false
	}

	for _, combo := range WinCombos {
		if that[combo[0]] == marker && that[combo[1]] == marker && that[combo[2]] == marker {
			return true
		}
	}

	return false
}

// IsDraw - all cells are taken. Callers check IsWinner first.
func (that Board) IsDraw() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// MarshalJSON - empty cells go on the wire as null.
func (that Board) MarshalJSON() ([]byte, error) {
	cells := make([]*string, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			continue
		}
		mark := string(cell)
		cells[i] = &mark
	}
	return json.Marshal(cells)
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var cells []*string
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	if len(cells) != BoardSize {
		return fmt.Errorf("board must have %d cells, got %d", BoardSize, len(cells))
	}

	for i, cell := range cells {
		if cell == nil {
			that[i] = EmptyCell
			continue
		}
		that[i] = Marker(*cell)
	}

	return nil
}
