package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-grid/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-grid/internal/entity"
	"github.com/rocketscienceinc/tictactoe-grid/internal/layout"
	"github.com/rocketscienceinc/tictactoe-grid/internal/tictactoe"
)

var ErrInvalidTickRate = errors.New("invalid tick rate")

// Game is what the loop needs from the core: clicks in, views out.
type Game interface {
	OnClick(row, col int) error
	CurrentPhase() entity.Phase
	Snapshot() tictactoe.View
	Reset() error
}

type Redrawer interface {
	Redraw(view tictactoe.View) error
}

// Loop delivers input to the game and requests a redraw on every tick. It
// owns all timing; the game has none.
type Loop struct {
	logger *slog.Logger

	game     Game
	grid     layout.Grid
	redrawer Redrawer
	period   time.Duration
}

func NewLoop(logger *slog.Logger, game Game, grid layout.Grid, redrawer Redrawer, tickRate int) (*Loop, error) {
	if tickRate < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTickRate, tickRate)
	}

	return &Loop{
		logger:   logger.With("component", "loop"),
		game:     game,
		grid:     grid,
		redrawer: redrawer,
		period:   time.Second / time.Duration(tickRate),
	}, nil
}

// Run ticks at a fixed period until ctx is done, the events channel is
// closed or a quit event arrives. A last frame is drawn before returning.
func (that *Loop) Run(ctx context.Context, events <-chan Event) error {
	log := that.logger.With("method", "Run")

	ticker := time.NewTicker(that.period)
	defer ticker.Stop()

	log.Info("loop started", "period", that.period.String())

	for {
		select {
		case <-ctx.Done():
			log.Info("loop stopped", "reason", ctx.Err())
			return that.Tick()
		case <-ticker.C:
			if err := that.Tick(); err != nil {
				return err
			}
		case event, ok := <-events:
			if !ok {
				log.Info("input closed")
				return that.Tick()
			}

			if event.Kind == EventQuit {
				log.Info("quit requested")
				return that.Tick()
			}

			if err := that.HandleEvent(event); err != nil {
				return err
			}
		}
	}
}

// Tick only requests a redraw of the current state.
func (that *Loop) Tick() error {
	if err := that.redrawer.Redraw(that.game.Snapshot()); err != nil {
		return fmt.Errorf("failed to redraw: %w", err)
	}

	return nil
}

// HandleEvent applies one input event. Clicks that miss the grid are logged
// and dropped; any other failure is returned.
func (that *Loop) HandleEvent(event Event) error {
	log := that.logger.With("method", "HandleEvent")

	switch event.Kind {
	case EventReset:
		if err := that.game.Reset(); err != nil {
			return fmt.Errorf("failed to reset game: %w", err)
		}
		return nil
	case EventClick:
	default:
		return nil
	}

	// any click starts the game, on or off the grid
	if that.game.CurrentPhase() == entity.PhaseNotStarted {
		if err := that.game.OnClick(0, 0); err != nil {
			return fmt.Errorf("failed to start game: %w", err)
		}
		return nil
	}

	row, col, err := that.grid.CellAt(event.X, event.Y)
	if errors.Is(err, apperror.ErrOutOfRange) {
		log.Debug("click outside the grid", "x", event.X, "y", event.Y)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to map click: %w", err)
	}

	if err = that.game.OnClick(row, col); err != nil {
		return fmt.Errorf("failed to click: %w", err)
	}

	return nil
}
