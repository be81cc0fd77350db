package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/toto-league/internal/domain/entity"
	"github.com/riskibarqy/toto-league/internal/platform/id"
)

// Table is an in-process entity.Store kept in insertion order.
type Table[T entity.Identifiable[T]] struct {
	mu    sync.RWMutex
	items []T
	index map[string]int
	ids   id.Generator
	now   func() time.Time
}

func NewTable[T entity.Identifiable[T]](ids id.Generator) *Table[T] {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	return &Table[T]{
		index: make(map[string]int),
		ids:   ids,
		now:   time.Now,
	}
}

// WithClock replaces the clock used to stamp created records.
func (t *Table[T]) WithClock(now func() time.Time) *Table[T] {
	if now != nil {
		t.now = now
	}
	return t
}

func (t *Table[T]) List(ctx context.Context, opts entity.ListOptions) ([]T, error) {
	return t.Filter(ctx, nil, opts)
}

func (t *Table[T]) Filter(_ context.Context, filter entity.Filter, opts entity.ListOptions) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.items))
	for _, item := range t.items {
		ok, err := matches(item, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, item)
		}
	}

	if err := sortRecords(out, entity.ParseOrderBy(opts.OrderBy)); err != nil {
		return nil, err
	}
	return page(out, opts.Limit, opts.Offset), nil
}

func (t *Table[T]) Get(_ context.Context, id string) (T, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	pos, ok := t.index[id]
	if !ok {
		var zero T
		return zero, false, nil
	}
	return t.items[pos], true, nil
}

func (t *Table[T]) Create(_ context.Context, item T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.insertLocked(item)
}

// Update replaces the stored record. The original created date is kept
// unless item carries its own.
func (t *Table[T]) Update(_ context.Context, id string, item T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.replaceLocked(id, item)
}

func (t *Table[T]) Delete(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	pos, ok := t.index[id]
	if !ok {
		return fmt.Errorf("delete %s: %w", id, entity.ErrNotFound)
	}
	t.items = append(t.items[:pos], t.items[pos+1:]...)
	t.reindexLocked()
	return nil
}

func (t *Table[T]) Upsert(_ context.Context, item T, conflictColumn string) (T, error) {
	want, ok := item.Column(conflictColumn)
	if !ok {
		var zero T
		return zero, fmt.Errorf("upsert on %q: %w", conflictColumn, entity.ErrUnknownColumn)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, existing := range t.items {
		got, _ := existing.Column(conflictColumn)
		if equalValues(got, want) {
			return t.replaceLocked(existing.EntityID(), item)
		}
	}
	return t.insertLocked(item)
}

// BulkCreate inserts every item or none of them.
func (t *Table[T]) BulkCreate(_ context.Context, items []T) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		itemID := item.EntityID()
		if itemID == "" {
			continue
		}
		if _, ok := t.index[itemID]; ok {
			return nil, fmt.Errorf("bulk create %s: %w", itemID, entity.ErrDuplicate)
		}
		if _, ok := seen[itemID]; ok {
			return nil, fmt.Errorf("bulk create %s: %w", itemID, entity.ErrDuplicate)
		}
		seen[itemID] = struct{}{}
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		created, err := t.insertLocked(item)
		if err != nil {
			t.items = t.items[:len(t.items)-len(out)]
			t.reindexLocked()
			return nil, err
		}
		out = append(out, created)
	}
	return out, nil
}

func (t *Table[T]) insertLocked(item T) (T, error) {
	itemID := item.EntityID()
	if itemID == "" {
		generated, err := t.ids.NewID()
		if err != nil {
			var zero T
			return zero, fmt.Errorf("generate id: %w", err)
		}
		itemID = generated
	}
	if _, ok := t.index[itemID]; ok {
		var zero T
		return zero, fmt.Errorf("create %s: %w", itemID, entity.ErrDuplicate)
	}

	stored := item.WithIdentity(itemID, t.now().UTC())
	t.index[itemID] = len(t.items)
	t.items = append(t.items, stored)
	return stored, nil
}

func (t *Table[T]) replaceLocked(id string, item T) (T, error) {
	pos, ok := t.index[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("update %s: %w", id, entity.ErrNotFound)
	}

	created, _ := t.items[pos].Column("created_date")
	createdAt, _ := created.(time.Time)
	stored := item.WithIdentity(id, createdAt)
	t.items[pos] = stored
	return stored, nil
}

func (t *Table[T]) reindexLocked() {
	t.index = make(map[string]int, len(t.items))
	for i, item := range t.items {
		t.index[item.EntityID()] = i
	}
}

func matches(record entity.Record, filter entity.Filter) (bool, error) {
	for column, want := range filter {
		got, ok := record.Column(column)
		if !ok {
			return false, fmt.Errorf("filter on %q: %w", column, entity.ErrUnknownColumn)
		}
		if !equalValues(got, want) {
			return false, nil
		}
	}
	return true, nil
}

func sortRecords[T entity.Record](items []T, order entity.Order) error {
	if len(items) == 0 {
		return nil
	}
	if _, ok := items[0].Column(order.Column); !ok {
		return fmt.Errorf("order by %q: %w", order.Column, entity.ErrUnknownColumn)
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, _ := items[i].Column(order.Column)
		b, _ := items[j].Column(order.Column)
		cmp := compareValues(a, b)
		if order.Desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func equalValues(a, b any) bool {
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Equal(bt)
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return compareOrdered(av, bv)
	case int:
		bv, _ := b.(int)
		return compareOrdered(av, bv)
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Compare(bv)
	default:
		return compareOrdered(fmt.Sprint(a), fmt.Sprint(b))
	}
}

func compareOrdered[V int | string](a, b V) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
