package tictactoe

import "github.com/rocketscienceinc/tictactoe-grid/internal/entity"

// RowComplete reports whether every cell of row holds mark.
func RowComplete(board *entity.Board, mark entity.Cell, row int) bool {
	for col := 0; col < board.Size(); col++ {
		if board.At(row, col) != mark {
			return false
		}
	}

	return true
}

// ColumnComplete reports whether every cell of col holds mark.
func ColumnComplete(board *entity.Board, mark entity.Cell, col int) bool {
	for row := 0; row < board.Size(); row++ {
		if board.At(row, col) != mark {
			return false
		}
	}

	return true
}

// MainDiagonalComplete scans (0,0)..(n-1,n-1).
func MainDiagonalComplete(board *entity.Board, mark entity.Cell) bool {
	for i := 0; i < board.Size(); i++ {
		if board.At(i, i) != mark {
			return false
		}
	}

	return true
}

// AntiDiagonalComplete scans (0,n-1)..(n-1,0).
func AntiDiagonalComplete(board *entity.Board, mark entity.Cell) bool {
	last := board.Size() - 1
	for i := last; i >= 0; i-- {
		if board.At(i, last-i) != mark {
			return false
		}
	}

	return true
}

// HasWon checks the column and the row through the last move, then both
// diagonals unconditionally. Other rows and columns are never inspected.
func HasWon(board *entity.Board, mark entity.Cell, lastRow, lastCol int) bool {
	if !mark.IsMark() || !board.InBounds(lastRow, lastCol) {
		return false
	}

	return ColumnComplete(board, mark, lastCol) ||
		RowComplete(board, mark, lastRow) ||
		MainDiagonalComplete(board, mark) ||
		AntiDiagonalComplete(board, mark)
}
