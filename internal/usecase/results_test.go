package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-grid/internal/entity"
	"github.com/rocketscienceinc/tictactoe-grid/internal/tictactoe"
)

var errRedisDown = errors.New("redis down")

type mockResultRepo struct {
	mock.Mock
}

func (m *mockResultRepo) Save(ctx context.Context, result *entity.MatchResult) error {
	return m.Called(ctx, result).Error(0)
}

func (m *mockResultRepo) Recent(ctx context.Context, limit int) ([]*entity.MatchResult, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*entity.MatchResult), args.Error(1)
}

func (m *mockResultRepo) Tally(ctx context.Context) (entity.Tally, error) {
	args := m.Called(ctx)
	return args.Get(0).(entity.Tally), args.Error(1)
}

var finishedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestRecorder(repo *mockResultRepo) *ResultRecorder {
	recorder := NewResultRecorder(slog.New(slog.NewTextHandler(io.Discard, nil)), repo, 3)
	recorder.now = func() time.Time { return finishedAt }
	recorder.newID = func() string { return "match-1" }

	return recorder
}

func finishedView(outcome entity.Outcome) tictactoe.View {
	o, x, e := entity.MarkA, entity.MarkB, entity.EmptyCell

	return tictactoe.View{
		Size:    3,
		Phase:   entity.PhaseFinished,
		Outcome: outcome,
		Cells: []entity.Cell{
			o, o, o,
			x, x, e,
			e, e, e,
		},
		Moves: 5,
	}
}

func TestResultRecorder_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("Saves a won game", func(t *testing.T) {
		// Given: a repository that accepts the record
		repo := &mockResultRepo{}
		expected := &entity.MatchResult{
			ID:         "match-1",
			Size:       3,
			Winner:     "O",
			Board:      []string{"OOO", "XX.", "..."},
			Moves:      5,
			FinishedAt: finishedAt,
		}
		repo.On("Save", mock.Anything, expected).Return(nil).Once()

		// When: the finished view is recorded
		result, err := newTestRecorder(repo).Record(ctx, finishedView(entity.OutcomeWinA))

		// Then: the stored record describes the game
		require.NoError(t, err)
		assert.Equal(t, expected, result)
		repo.AssertExpectations(t)
	})

	t.Run("Ties use the tie marker", func(t *testing.T) {
		repo := &mockResultRepo{}
		repo.On("Save", mock.Anything, mock.MatchedBy(func(result *entity.MatchResult) bool {
			return result.IsTie()
		})).Return(nil).Once()

		_, err := newTestRecorder(repo).Record(ctx, finishedView(entity.OutcomeTie))

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Rejects games still in progress", func(t *testing.T) {
		repo := &mockResultRepo{}
		view := finishedView(entity.OutcomeUndecided)
		view.Phase = entity.PhaseInProgress

		_, err := newTestRecorder(repo).Record(ctx, view)

		require.ErrorIs(t, err, ErrGameNotFinished)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Rejects finished views without an outcome", func(t *testing.T) {
		repo := &mockResultRepo{}

		_, err := newTestRecorder(repo).Record(ctx, finishedView(entity.OutcomeUndecided))

		require.ErrorIs(t, err, ErrGameNotFinished)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Returns storage failures", func(t *testing.T) {
		repo := &mockResultRepo{}
		repo.On("Save", mock.Anything, mock.Anything).Return(errRedisDown).Once()

		_, err := newTestRecorder(repo).Record(ctx, finishedView(entity.OutcomeWinB))

		assert.ErrorIs(t, err, errRedisDown)
	})
}

func TestResultRecorder_Hook(t *testing.T) {
	t.Run("Records games finished through the controller", func(t *testing.T) {
		// Given: a controller whose finished hook records results
		repo := &mockResultRepo{}
		repo.On("Save", mock.Anything, mock.MatchedBy(func(result *entity.MatchResult) bool {
			return result.Winner == "O" && result.Moves == 5
		})).Return(nil).Once()

		controller, err := tictactoe.NewGameController(slog.New(slog.NewTextHandler(io.Discard, nil)), 3)
		require.NoError(t, err)
		controller.OnFinished(newTestRecorder(repo).Hook(context.Background()))

		// When: O completes the top row
		require.NoError(t, controller.OnClick(0, 0))
		for _, cell := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}} {
			require.NoError(t, controller.OnClick(cell[0], cell[1]))
		}

		// Then: one record is saved
		repo.AssertExpectations(t)
	})

	t.Run("Swallows storage failures", func(t *testing.T) {
		repo := &mockResultRepo{}
		repo.On("Save", mock.Anything, mock.Anything).Return(errRedisDown).Once()

		hook := newTestRecorder(repo).Hook(context.Background())

		assert.NotPanics(t, func() { hook(finishedView(entity.OutcomeWinA)) })
		repo.AssertExpectations(t)
	})
}

func TestResultRecorder_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("Combines tally and recent games", func(t *testing.T) {
		repo := &mockResultRepo{}
		tally := entity.Tally{WinsA: 2, WinsB: 1, Ties: 1}
		recent := []*entity.MatchResult{{ID: "m4"}, {ID: "m3"}}
		repo.On("Tally", mock.Anything).Return(tally, nil).Once()
		repo.On("Recent", mock.Anything, 3).Return(recent, nil).Once()

		summary, err := newTestRecorder(repo).Summary(ctx)

		require.NoError(t, err)
		assert.Equal(t, tally, summary.Tally)
		assert.Equal(t, recent, summary.Recent)
	})

	t.Run("Returns tally failures", func(t *testing.T) {
		repo := &mockResultRepo{}
		repo.On("Tally", mock.Anything).Return(entity.Tally{}, errRedisDown).Once()

		_, err := newTestRecorder(repo).Summary(ctx)

		assert.ErrorIs(t, err, errRedisDown)
		repo.AssertNotCalled(t, "Recent", mock.Anything, mock.Anything)
	})
}
