package client

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/entity"
)

const boardForm = `
| %s | %s | %s |
-------------
| %s | %s | %s |
-------------
| %s | %s | %s |
`

// RenderBoard - draws the 3x3 grid, blanks for empty cells.
func RenderBoard(board entity.Board) string {
	cells := make([]any, entity.BoardSize)
	for i, cell := range board {
		cells[i] = " "
		if cell != entity.EmptyCell {
			cells[i] = string(cell)
		}
	}

	return fmt.Sprintf(boardForm, cells...)
}
