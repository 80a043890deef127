package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-grid/internal/entity"
	"github.com/rocketscienceinc/tictactoe-grid/internal/tictactoe"
)

var ErrGameNotFinished = errors.New("game is not finished")

const emptySymbol = "."

type resultRepoDep interface {
	Save(ctx context.Context, result *entity.MatchResult) error
	Recent(ctx context.Context, limit int) ([]*entity.MatchResult, error)
	Tally(ctx context.Context) (entity.Tally, error)
}

// Summary is what the host prints about past games.
type Summary struct {
	Tally  entity.Tally
	Recent []*entity.MatchResult
}

type ResultRecorder struct {
	logger *slog.Logger

	resultRepo resultRepoDep
	recent     int

	now   func() time.Time
	newID func() string
}

func NewResultRecorder(logger *slog.Logger, resultRepo resultRepoDep, recent int) *ResultRecorder {
	return &ResultRecorder{
		logger:     logger.With("component", "result_recorder"),
		resultRepo: resultRepo,
		recent:     recent,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Record stores a finished game. Views without a final outcome are rejected.
func (that *ResultRecorder) Record(ctx context.Context, view tictactoe.View) (*entity.MatchResult, error) {
	if view.Phase != entity.PhaseFinished || !view.Outcome.IsDecided() {
		return nil, fmt.Errorf("%w: phase %s, outcome %s", ErrGameNotFinished, view.Phase, view.Outcome)
	}

	result := &entity.MatchResult{
		ID:         that.newID(),
		Size:       view.Size,
		Winner:     winnerOf(view.Outcome),
		Board:      boardRows(view),
		Moves:      view.Moves,
		FinishedAt: that.now().UTC(),
	}

	if err := that.resultRepo.Save(ctx, result); err != nil {
		return nil, fmt.Errorf("could not save match result: %w", err)
	}

	return result, nil
}

// Hook adapts Record to the controller's finished callback. Storage failures
// are logged and never reach the game.
func (that *ResultRecorder) Hook(ctx context.Context) tictactoe.FinishedFunc {
	log := that.logger.With("method", "Hook")

	return func(view tictactoe.View) {
		result, err := that.Record(ctx, view)
		if err != nil {
			log.Error("failed to record match result", "error", err)
			return
		}

		log.Info("match result recorded", "id", result.ID, "winner", result.Winner, "moves", result.Moves)
	}
}

func (that *ResultRecorder) Summary(ctx context.Context) (*Summary, error) {
	tally, err := that.resultRepo.Tally(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get results tally: %w", err)
	}

	recent, err := that.resultRepo.Recent(ctx, that.recent)
	if err != nil {
		return nil, fmt.Errorf("could not get recent results: %w", err)
	}

	return &Summary{Tally: tally, Recent: recent}, nil
}

func winnerOf(outcome entity.Outcome) string {
	if winner, ok := outcome.Winner(); ok {
		return winner.String()
	}

	return entity.ResultTie
}

func boardRows(view tictactoe.View) []string {
	rows := make([]string, view.Size)

	for row := 0; row < view.Size; row++ {
		var line strings.Builder
		for col := 0; col < view.Size; col++ {
			symbol := view.At(row, col).String()
			if symbol == "" {
				symbol = emptySymbol
			}
			line.WriteString(symbol)
		}
		rows[row] = line.String()
	}

	return rows
}
