package entity

// Cell is the content of one grid position.
type Cell int

const (
	EmptyCell Cell = iota
	MarkA
	MarkB
)

const (
	symbolA     = "O"
	symbolB     = "X"
	symbolEmpty = ""
)

func (c Cell) String() string {
	switch c {
	case MarkA:
		return symbolA
	case MarkB:
		return symbolB
	default:
		return symbolEmpty
	}
}

// IsMark reports whether c is one of the two player marks.
func (c Cell) IsMark() bool {
	return c == MarkA || c == MarkB
}

// Opponent returns the other player's mark. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case MarkA:
		return MarkB
	case MarkB:
		return MarkA
	default:
		return EmptyCell
	}
}

// MarkFromString is the inverse of String for the two marks.
func MarkFromString(s string) (Cell, bool) {
	switch s {
	case symbolA:
		return MarkA, true
	case symbolB:
		return MarkB, true
	default:
		return EmptyCell, false
	}
}
