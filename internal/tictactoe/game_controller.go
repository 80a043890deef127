package tictactoe

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-grid/internal/entity"
)

// View is a consistent copy of the game taken under the controller lock.
type View struct {
	Size     int
	Phase    entity.Phase
	Outcome  entity.Outcome
	Active   entity.Cell
	Cells    []entity.Cell
	Moves    int
	Revision uint64
}

// At reads a cell of the copied grid without bounds checking.
func (v View) At(row, col int) entity.Cell {
	return v.Cells[row*v.Size+col]
}

// FinishedFunc is called once per game, outside the lock, with the final view.
type FinishedFunc func(View)

// GameController owns one game and guards it with a single mutex so input
// and redraw may run on different goroutines.
type GameController struct {
	mu     sync.Mutex
	logger *slog.Logger

	size     int
	game     *Game
	revision uint64

	onFinished FinishedFunc
}

func NewGameController(logger *slog.Logger, size int) (*GameController, error) {
	game, err := NewGame(size)
	if err != nil {
		return nil, fmt.Errorf("could not create game: %w", err)
	}

	return &GameController{
		logger: logger.With("component", "game_controller"),
		size:   size,
		game:   game,
	}, nil
}

// OnFinished registers fn to be called when a game reaches a terminal outcome.
func (that *GameController) OnFinished(fn FinishedFunc) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.onFinished = fn
}

// OnClick forwards a resolved click to the game. Occupied cells and clicks
// after the game finished are silently ignored; only out of range
// coordinates produce an error.
func (that *GameController) OnClick(row, col int) error {
	that.mu.Lock()

	before := that.game.Phase()

	changed, err := that.game.Click(row, col)
	if err != nil {
		that.mu.Unlock()
		return fmt.Errorf("failed to apply click: %w", err)
	}

	if !changed {
		that.mu.Unlock()
		return nil
	}

	that.revision++
	view := that.snapshot()
	notify := that.onFinished

	var finalBoard string
	if view.Phase == entity.PhaseFinished {
		finalBoard = that.game.Board().String()
	}

	that.mu.Unlock()

	log := that.logger.With("row", row, "col", col, "revision", view.Revision)

	switch {
	case before == entity.PhaseNotStarted:
		log.Debug("game started")
	case view.Phase == entity.PhaseFinished:
		log.Info("game finished", "outcome", view.Outcome.String(), "moves", view.Moves, "board", finalBoard)
		if notify != nil {
			notify(view)
		}
	default:
		log.Debug("mark placed", "next", view.Active.String())
	}

	return nil
}

// Reset discards the current game and starts over with an empty board in
// the NotStarted phase.
func (that *GameController) Reset() error {
	game, err := NewGame(that.size)
	if err != nil {
		return fmt.Errorf("could not create game: %w", err)
	}

	that.mu.Lock()
	that.game = game
	that.revision++
	that.mu.Unlock()

	that.logger.Debug("game reset")

	return nil
}

func (that *GameController) Snapshot() View {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

func (that *GameController) CurrentPhase() entity.Phase {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.Phase()
}

func (that *GameController) CellAt(row, col int) (entity.Cell, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.CellAt(row, col)
}

func (that *GameController) Outcome() entity.Outcome {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.Outcome()
}

func (that *GameController) ActivePlayer() entity.Cell {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.ActivePlayer()
}

func (that *GameController) Size() int {
	return that.size
}

// snapshot must be called with mu held.
func (that *GameController) snapshot() View {
	return View{
		Size:     that.size,
		Phase:    that.game.Phase(),
		Outcome:  that.game.Outcome(),
		Active:   that.game.ActivePlayer(),
		Cells:    that.game.Board().Cells(),
		Moves:    that.game.Moves(),
		Revision: that.revision,
	}
}
