package layout

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-grid/internal/apperror"
)

// Grid maps pixels of a square drawing surface to board cells.
type Grid struct {
	SurfaceSize int
	Dimension   int
}

func NewGrid(surfaceSize, dimension int) (Grid, error) {
	if dimension < 1 || surfaceSize < dimension {
		return Grid{}, fmt.Errorf("%w: surface %d, dimension %d", apperror.ErrInvalidBoardSize, surfaceSize, dimension)
	}

	return Grid{SurfaceSize: surfaceSize, Dimension: dimension}, nil
}

// CellSize is the side of one cell in pixels. Any remainder of the surface
// is left over on the right and bottom edges.
func (g Grid) CellSize() int {
	return g.SurfaceSize / g.Dimension
}

// CellAt resolves a pixel to (row, col): the column comes from x and the row
// from y.
func (g Grid) CellAt(x, y int) (int, int, error) {
	size := g.CellSize()
	if x < 0 || y < 0 || size == 0 {
		return 0, 0, fmt.Errorf("%w: pixel (%d, %d)", apperror.ErrOutOfRange, x, y)
	}

	row, col := y/size, x/size
	if row >= g.Dimension || col >= g.Dimension {
		return 0, 0, fmt.Errorf("%w: pixel (%d, %d)", apperror.ErrOutOfRange, x, y)
	}

	return row, col, nil
}
