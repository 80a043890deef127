package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-grid/internal/apperror"
)

// Board is a square grid of cells stored row-major.
type Board struct {
	size  int
	cells []Cell
}

func NewBoard(size int) (*Board, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, size)
	}

	return &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}, nil
}

func (that *Board) Size() int {
	return that.size
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < that.size && col < that.size
}

func (that *Board) Get(row, col int) (Cell, error) {
	if !that.InBounds(row, col) {
		return EmptyCell, fmt.Errorf("%w: row %d, col %d", apperror.ErrOutOfRange, row, col)
	}

	return that.cells[that.index(row, col)], nil
}

// Place sets mark on an empty cell. An occupied cell is not an error: the
// board is left untouched and false is returned.
func (that *Board) Place(row, col int, mark Cell) (bool, error) {
	if !mark.IsMark() {
		return false, fmt.Errorf("%w: %d", apperror.ErrInvalidMark, mark)
	}

	current, err := that.Get(row, col)
	if err != nil {
		return false, err
	}

	if current != EmptyCell {
		return false, nil
	}

	that.cells[that.index(row, col)] = mark

	return true, nil
}

func (that *Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Cells returns a row-major copy of the grid.
func (that *Board) Cells() []Cell {
	cells := make([]Cell, len(that.cells))
	copy(cells, that.cells)

	return cells
}

// At skips the bounds check; callers iterate within [0, size).
func (that *Board) At(row, col int) Cell {
	return that.cells[that.index(row, col)]
}

func (that *Board) String() string {
	var sb strings.Builder

	for row := 0; row < that.size; row++ {
		for col := 0; col < that.size; col++ {
			cell := that.At(row, col)
			if cell == EmptyCell {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(cell.String())
		}
		if row < that.size-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func (that *Board) index(row, col int) int {
	return row*that.size + col
}
