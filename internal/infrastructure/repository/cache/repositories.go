package cache

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/toto-league/internal/domain/entity"
	"github.com/riskibarqy/toto-league/internal/domain/question"
	basecache "github.com/riskibarqy/toto-league/internal/platform/cache"
)

// Repository is a read-through entity.Store. Every write drops all cached
// reads under the repository prefix.
type Repository[T any] struct {
	next   entity.Store[T]
	cache  *basecache.Store
	prefix string
}

func NewRepository[T any](prefix string, next entity.Store[T], cache *basecache.Store) *Repository[T] {
	return &Repository[T]{next: next, cache: cache, prefix: prefix + ":"}
}

func NewQuestionRepository(next question.Repository, cache *basecache.Store) *Repository[question.Question] {
	return NewRepository("question", next, cache)
}

func (r *Repository[T]) List(ctx context.Context, opts entity.ListOptions) ([]T, error) {
	return r.Filter(ctx, nil, opts)
}

func (r *Repository[T]) Filter(ctx context.Context, filter entity.Filter, opts entity.ListOptions) ([]T, error) {
	items, err := basecache.Load(ctx, r.cache, r.prefix+"list:"+listKey(filter, opts), func(ctx context.Context) ([]T, error) {
		items, err := r.next.Filter(ctx, filter, opts)
		if err != nil {
			return nil, err
		}
		return append([]T(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]T(nil), items...), nil
}

func (r *Repository[T]) Get(ctx context.Context, id string) (T, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, r.prefix+"id:"+id, func(ctx context.Context) (cachedByID[T], error) {
		item, exists, err := r.next.Get(ctx, id)
		if err != nil {
			return cachedByID[T]{}, err
		}
		return cachedByID[T]{value: item, exists: exists}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *Repository[T]) Create(ctx context.Context, item T) (T, error) {
	defer r.invalidate(ctx)
	return r.next.Create(ctx, item)
}

func (r *Repository[T]) Update(ctx context.Context, id string, item T) (T, error) {
	defer r.invalidate(ctx)
	return r.next.Update(ctx, id, item)
}

func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	defer r.invalidate(ctx)
	return r.next.Delete(ctx, id)
}

func (r *Repository[T]) Upsert(ctx context.Context, item T, conflictColumn string) (T, error) {
	defer r.invalidate(ctx)
	return r.next.Upsert(ctx, item, conflictColumn)
}

func (r *Repository[T]) BulkCreate(ctx context.Context, items []T) ([]T, error) {
	defer r.invalidate(ctx)
	return r.next.BulkCreate(ctx, items)
}

func (r *Repository[T]) invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, r.prefix)
}

type cachedByID[T any] struct {
	value  T
	exists bool
}

func listKey(filter entity.Filter, opts entity.ListOptions) string {
	keys := make([]string, 0, len(filter))
	for column := range filter {
		keys = append(keys, column)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+3)
	for _, column := range keys {
		parts = append(parts, column+"="+fmt.Sprint(filter[column]))
	}
	order := entity.ParseOrderBy(opts.OrderBy)
	parts = append(parts,
		"order="+order.Column+":"+strconv.FormatBool(order.Desc),
		"limit="+strconv.Itoa(opts.Limit),
		"offset="+strconv.Itoa(opts.Offset),
	)
	return strings.Join(parts, "|")
}
