package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-grid/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-grid/internal/entity"
)

const (
	matchKeyPrefix = "match:"
	matchesKey     = "matches"
	resultsKey     = "results"

	tallyTie = "tie"
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.MatchResult) error
	GetByID(ctx context.Context, id string) (*entity.MatchResult, error)
	Recent(ctx context.Context, limit int) ([]*entity.MatchResult, error)
	Tally(ctx context.Context) (entity.Tally, error)
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

// Save stores the record, pushes it to the head of the history and bumps the
// counter for its result in one transaction.
func (that *dbResult) Save(ctx context.Context, result *entity.MatchResult) error {
	field, err := tallyField(result)
	if err != nil {
		return err
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal match result: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, matchKeyPrefix+result.ID, resultJSON, 0)
		pipe.LPush(ctx, matchesKey, result.ID)
		pipe.HIncrBy(ctx, resultsKey, field, 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save match result: %w", err)
	}

	return nil
}

func (that *dbResult) GetByID(ctx context.Context, id string) (*entity.MatchResult, error) {
	response, err := that.client.Get(ctx, matchKeyPrefix+id).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.MatchResult{}, apperror.ErrResultNotFound
	}

	if err != nil {
		return &entity.MatchResult{}, fmt.Errorf("failed to get match result by id: %w", err)
	}

	var result entity.MatchResult
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return &entity.MatchResult{}, fmt.Errorf("failed to unmarshal match result: %w", err)
	}

	return &result, nil
}

// Recent returns up to limit records, newest first. Ids whose record has
// gone missing are skipped.
func (that *dbResult) Recent(ctx context.Context, limit int) ([]*entity.MatchResult, error) {
	if limit <= 0 {
		return []*entity.MatchResult{}, nil
	}

	ids, err := that.client.LRange(ctx, matchesKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list match ids: %w", err)
	}

	if len(ids) == 0 {
		return []*entity.MatchResult{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = matchKeyPrefix + id
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get match results: %w", err)
	}

	results := make([]*entity.MatchResult, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var result entity.MatchResult
		if err = json.Unmarshal([]byte(raw), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match result: %w", err)
		}

		results = append(results, &result)
	}

	return results, nil
}

func (that *dbResult) Tally(ctx context.Context) (entity.Tally, error) {
	counters, err := that.client.HGetAll(ctx, resultsKey).Result()
	if err != nil {
		return entity.Tally{}, fmt.Errorf("failed to get results tally: %w", err)
	}

	var tally entity.Tally
	for field, target := range map[string]*int64{
		entity.MarkA.String(): &tally.WinsA,
		entity.MarkB.String(): &tally.WinsB,
		tallyTie:              &tally.Ties,
	} {
		raw, ok := counters[field]
		if !ok {
			continue
		}

		if *target, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return entity.Tally{}, fmt.Errorf("failed to parse %s counter: %w", field, err)
		}
	}

	return tally, nil
}

func tallyField(result *entity.MatchResult) (string, error) {
	if result.IsTie() {
		return tallyTie, nil
	}

	if _, ok := entity.MarkFromString(result.Winner); !ok {
		return "", fmt.Errorf("%w: winner %q", apperror.ErrInvalidMark, result.Winner)
	}

	return result.Winner, nil
}
