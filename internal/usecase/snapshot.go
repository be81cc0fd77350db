package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/toto-league/internal/domain/entity"
	"github.com/riskibarqy/toto-league/internal/domain/prediction"
	"github.com/riskibarqy/toto-league/internal/domain/question"
	"github.com/riskibarqy/toto-league/internal/domain/ranking"
	"github.com/riskibarqy/toto-league/internal/platform/batch"
	"github.com/sourcegraph/conc/pool"
)

// loadOrder reads oldest first so that equal timestamps resolve to the row
// stored last.
const loadOrder = "created_date"

// LoadOptions controls how collections are read from the store.
type LoadOptions struct {
	Batch batch.Options
	// Concurrency bounds how many collections load at once. One keeps the
	// reads serialized.
	Concurrency int
}

type snapshot struct {
	questions   []question.Question
	predictions []prediction.Prediction
	rankings    []ranking.Ranking
}

type snapshotLoader struct {
	questions   question.Repository
	predictions prediction.Repository
	rankings    ranking.Repository
	opts        LoadOptions
}

// snapshotParts selects what to load. A nil predictions filter skips
// predictions; allPredictions loads every row.
type snapshotParts struct {
	questions   bool
	predictions entity.Filter
	rankings    bool
}

func (l snapshotLoader) load(ctx context.Context, parts snapshotParts) (snapshot, error) {
	p := pool.New().
		WithErrors().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(max(1, l.opts.Concurrency))

	var out snapshot
	if parts.questions {
		p.Go(func(ctx context.Context) error {
			items, err := readAll(ctx, l.questions, nil, l.opts.Batch)
			if err != nil {
				return fmt.Errorf("load questions: %w", err)
			}
			out.questions = items
			return nil
		})
	}
	if parts.predictions != nil {
		p.Go(func(ctx context.Context) error {
			items, err := readAll(ctx, l.predictions, parts.predictions, l.opts.Batch)
			if err != nil {
				return fmt.Errorf("load predictions: %w", err)
			}
			out.predictions = items
			return nil
		})
	}
	if parts.rankings {
		p.Go(func(ctx context.Context) error {
			items, err := readAll(ctx, l.rankings, nil, l.opts.Batch)
			if err != nil {
				return fmt.Errorf("load rankings: %w", err)
			}
			out.rankings = items
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return snapshot{}, fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
	}
	return out, nil
}

var allPredictions = entity.Filter{}

func readAll[T any](ctx context.Context, store entity.Store[T], filter entity.Filter, opts batch.Options) ([]T, error) {
	return batch.ReadAll(ctx, func(ctx context.Context, limit, offset int) ([]T, error) {
		return store.Filter(ctx, filter, entity.ListOptions{OrderBy: loadOrder, Limit: limit, Offset: offset})
	}, opts)
}
