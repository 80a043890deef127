package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-grid/internal/config"
	"github.com/rocketscienceinc/tictactoe-grid/internal/host"
	"github.com/rocketscienceinc/tictactoe-grid/internal/layout"
	"github.com/rocketscienceinc/tictactoe-grid/internal/render"
	"github.com/rocketscienceinc/tictactoe-grid/internal/repository"
	"github.com/rocketscienceinc/tictactoe-grid/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-grid/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-grid/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the game on stdin/stderr until input ends or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	return Run(context.Background(), logger, conf, os.Stdin, os.Stderr)
}

// Run wires the game, the text surface and the optional results ledger, then
// drives them from input until it is exhausted or ctx is cancelled.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, input io.Reader, output io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	grid, err := layout.NewGrid(conf.SurfaceSize, conf.BoardSize)
	if err != nil {
		return fmt.Errorf("could not create layout: %w", err)
	}

	gameController, err := tictactoe.NewGameController(logger, conf.BoardSize)
	if err != nil {
		return fmt.Errorf("could not create game controller: %w", err)
	}

	surface := render.NewText(output)

	// an unreachable ledger never stops the game
	if conf.Results.Enabled {
		closeLedger, ledgerErr := attachLedger(ctx, logger, conf, gameController, surface)
		if ledgerErr != nil {
			log.Error("results ledger disabled", "error", ledgerErr)
		} else {
			defer closeLedger()
		}
	}

	loop, err := host.NewLoop(logger, gameController, grid, surface, conf.TickRate)
	if err != nil {
		return fmt.Errorf("could not create loop: %w", err)
	}

	events := make(chan host.Event)
	go func() {
		if readErr := host.ReadEvents(ctx, logger, input, events); readErr != nil {
			log.Error("input error", "error", readErr)
		}
	}()

	log.Info("Starting game", "board_size", conf.BoardSize, "surface_size", conf.SurfaceSize, "tick_rate", conf.TickRate)

	if err = loop.Run(ctx, events); err != nil {
		return fmt.Errorf("loop error: %w", err)
	}

	log.Info("Game loop finished, shutting down")

	return nil
}

// attachLedger connects to Redis and records every finished game. Past
// results are printed at start and after each game.
func attachLedger(
	ctx context.Context,
	logger *slog.Logger,
	conf *config.Config,
	gameController *tictactoe.GameController,
	surface *render.Text,
) (func(), error) {
	log := logger.With("component", "app")

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	resultRepo := repository.NewResultRepository(redisStorage)
	recorder := usecase.NewResultRecorder(logger, resultRepo, conf.Results.Recent)

	printSummary := func() {
		summary, err := recorder.Summary(ctx)
		if err != nil {
			log.Error("could not load results summary", "error", err)
			return
		}

		if err = surface.Print(render.Summary(summary.Tally, summary.Recent)); err != nil {
			log.Error("could not print results summary", "error", err)
		}
	}

	record := recorder.Hook(ctx)
	gameController.OnFinished(func(view tictactoe.View) {
		// the final board goes out before the summary that follows it
		if err := surface.Redraw(view); err != nil {
			log.Error("could not draw final frame", "error", err)
		}
		record(view)
		printSummary()
	})

	printSummary()

	return func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}, nil
}
