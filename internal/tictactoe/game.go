package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-grid/internal/entity"
)

// FirstMover starts every game.
const FirstMover = entity.MarkA

// Game is the turn and outcome state machine. It is not safe for concurrent
// use; GameController serializes access.
type Game struct {
	board   *entity.Board
	active  entity.Cell
	outcome entity.Outcome
	phase   entity.Phase
	moves   int
}

func NewGame(size int) (*Game, error) {
	board, err := entity.NewBoard(size)
	if err != nil {
		return nil, fmt.Errorf("could not create board: %w", err)
	}

	return &Game{
		board:   board,
		active:  FirstMover,
		outcome: entity.OutcomeUndecided,
		phase:   entity.PhaseNotStarted,
	}, nil
}

// Click applies one pointer click already resolved to a cell. It reports
// whether the game state changed.
func (that *Game) Click(row, col int) (bool, error) {
	switch that.phase {
	case entity.PhaseNotStarted:
		// the first click only starts the game, wherever it lands
		that.phase = entity.PhaseInProgress
		return true, nil
	case entity.PhaseFinished:
		return false, nil
	}

	mark := that.active

	placed, err := that.board.Place(row, col, mark)
	if err != nil {
		return false, fmt.Errorf("could not place %s: %w", mark, err)
	}

	if !placed {
		return false, nil
	}

	that.moves++
	that.active = mark.Opponent()
	that.updateOutcome(mark, row, col)

	return true, nil
}

func (that *Game) updateOutcome(mark entity.Cell, row, col int) {
	switch {
	case HasWon(that.board, mark, row, col):
		that.outcome = entity.WinFor(mark)
		that.phase = entity.PhaseFinished
	case that.board.IsFull():
		that.outcome = entity.OutcomeTie
		that.phase = entity.PhaseFinished
	}
}

func (that *Game) Phase() entity.Phase {
	return that.phase
}

func (that *Game) Outcome() entity.Outcome {
	return that.outcome
}

func (that *Game) ActivePlayer() entity.Cell {
	return that.active
}

func (that *Game) Moves() int {
	return that.moves
}

func (that *Game) Board() *entity.Board {
	return that.board
}

func (that *Game) CellAt(row, col int) (entity.Cell, error) {
	return that.board.Get(row, col)
}
