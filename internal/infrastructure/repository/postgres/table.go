package postgres

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/toto-league/internal/domain/entity"
	"github.com/riskibarqy/toto-league/internal/platform/id"
	qb "github.com/riskibarqy/toto-league/internal/platform/querybuilder"
)

// bulkChunkSize keeps multi-row inserts well under the 65535 bind
// parameter limit of the wire protocol.
const bulkChunkSize = 500

// Mapping converts between a domain record and its row model.
type Mapping[T any, R any] struct {
	Table   string
	ToRow   func(T) R
	FromRow func(R) T
}

// Table is an entity.Store backed by one Postgres table. R is the sqlx row
// model; its db tags define the column whitelist for filters and ordering.
type Table[T entity.Identifiable[T], R any] struct {
	db      *sqlx.DB
	mapping Mapping[T, R]
	columns map[string]struct{}
	ids     id.Generator
	now     func() time.Time
}

func NewTable[T entity.Identifiable[T], R any](db *sqlx.DB, ids id.Generator, mapping Mapping[T, R]) *Table[T, R] {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}

	var zero R
	cols, _, err := qb.ColumnsAndValues(zero)
	if err != nil {
		panic(fmt.Sprintf("postgres table %s: %v", mapping.Table, err))
	}
	columns := make(map[string]struct{}, len(cols))
	for _, col := range cols {
		columns[col] = struct{}{}
	}

	return &Table[T, R]{
		db:      db,
		mapping: mapping,
		columns: columns,
		ids:     ids,
		now:     time.Now,
	}
}

func (t *Table[T, R]) List(ctx context.Context, opts entity.ListOptions) ([]T, error) {
	return t.Filter(ctx, nil, opts)
}

func (t *Table[T, R]) Filter(ctx context.Context, filter entity.Filter, opts entity.ListOptions) ([]T, error) {
	conditions, err := t.conditions(filter)
	if err != nil {
		return nil, err
	}
	order, err := t.orderBy(opts.OrderBy)
	if err != nil {
		return nil, err
	}

	query, args, err := qb.Select("*").From(t.mapping.Table).
		Where(conditions...).
		OrderBy(order...).
		Limit(opts.Limit).
		Offset(opts.Offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list %s query: %w", t.mapping.Table, err)
	}

	var rows []R
	if err := t.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", t.mapping.Table, err)
	}
	return t.fromRows(rows), nil
}

func (t *Table[T, R]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	query, args, err := qb.Select("*").From(t.mapping.Table).
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return zero, false, fmt.Errorf("build get %s query: %w", t.mapping.Table, err)
	}

	var row R
	if err := t.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("get %s id=%s: %w", t.mapping.Table, id, err)
	}
	return t.mapping.FromRow(row), true, nil
}

func (t *Table[T, R]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	stamped, err := t.stamp(item)
	if err != nil {
		return zero, err
	}

	query, args, err := qb.InsertModel(t.mapping.Table, t.mapping.ToRow(stamped), "RETURNING *")
	if err != nil {
		return zero, fmt.Errorf("build insert %s query: %w", t.mapping.Table, err)
	}
	return t.queryOne(ctx, t.db, query, args, "insert", stamped.EntityID())
}

// Update overwrites every mutable column. id and created_date are never
// rewritten.
func (t *Table[T, R]) Update(ctx context.Context, id string, item T) (T, error) {
	var zero T
	cols, vals, err := qb.ColumnsAndValues(t.mapping.ToRow(item.WithIdentity(id, t.now().UTC())))
	if err != nil {
		return zero, fmt.Errorf("read %s columns: %w", t.mapping.Table, err)
	}

	builder := qb.Update(t.mapping.Table)
	for i, col := range cols {
		if col == "id" || col == "created_date" {
			continue
		}
		builder.Set(col, vals[i])
	}
	query, args, err := builder.Where(qb.Eq("id", id)).Suffix("RETURNING *").ToSQL()
	if err != nil {
		return zero, fmt.Errorf("build update %s query: %w", t.mapping.Table, err)
	}
	return t.queryOne(ctx, t.db, query, args, "update", id)
}

func (t *Table[T, R]) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom(t.mapping.Table).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete %s query: %w", t.mapping.Table, err)
	}

	res, err := t.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete %s id=%s: %w", t.mapping.Table, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s id=%s rows affected: %w", t.mapping.Table, id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete %s id=%s: %w", t.mapping.Table, id, entity.ErrNotFound)
	}
	return nil
}

// Upsert relies on a unique index over conflictColumn.
func (t *Table[T, R]) Upsert(ctx context.Context, item T, conflictColumn string) (T, error) {
	var zero T
	if _, ok := t.columns[conflictColumn]; !ok {
		return zero, fmt.Errorf("upsert %s on %q: %w", t.mapping.Table, conflictColumn, entity.ErrUnknownColumn)
	}
	stamped, err := t.stamp(item)
	if err != nil {
		return zero, err
	}

	row := t.mapping.ToRow(stamped)
	cols, _, err := qb.ColumnsAndValues(row)
	if err != nil {
		return zero, fmt.Errorf("read %s columns: %w", t.mapping.Table, err)
	}
	query, args, err := qb.InsertModel(t.mapping.Table, row, upsertSuffix(cols, conflictColumn))
	if err != nil {
		return zero, fmt.Errorf("build upsert %s query: %w", t.mapping.Table, err)
	}
	return t.queryOne(ctx, t.db, query, args, "upsert", stamped.EntityID())
}

// BulkCreate inserts all items in one transaction.
func (t *Table[T, R]) BulkCreate(ctx context.Context, items []T) ([]T, error) {
	if len(items) == 0 {
		return nil, nil
	}

	rows := make([]R, 0, len(items))
	for _, item := range items {
		stamped, err := t.stamp(item)
		if err != nil {
			return nil, err
		}
		rows = append(rows, t.mapping.ToRow(stamped))
	}

	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx bulk create %s: %w", t.mapping.Table, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	out := make([]T, 0, len(rows))
	for start := 0; start < len(rows); start += bulkChunkSize {
		end := min(start+bulkChunkSize, len(rows))
		query, args, err := qb.InsertModels(t.mapping.Table, rows[start:end], "RETURNING *")
		if err != nil {
			return nil, fmt.Errorf("build bulk insert %s query: %w", t.mapping.Table, err)
		}

		var inserted []R
		if err := tx.SelectContext(ctx, &inserted, query, args...); err != nil {
			return nil, t.wrapWriteErr(err, "bulk insert", fmt.Sprintf("rows %d-%d", start, end))
		}
		out = append(out, t.fromRows(inserted)...)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit bulk create %s tx: %w", t.mapping.Table, err)
	}
	return out, nil
}

func (t *Table[T, R]) stamp(item T) (T, error) {
	itemID := item.EntityID()
	if itemID == "" {
		generated, err := t.ids.NewID()
		if err != nil {
			var zero T
			return zero, fmt.Errorf("generate %s id: %w", t.mapping.Table, err)
		}
		itemID = generated
	}
	return item.WithIdentity(itemID, t.now().UTC()), nil
}

func (t *Table[T, R]) queryOne(ctx context.Context, q sqlx.QueryerContext, query string, args []any, op, id string) (T, error) {
	var zero T
	var row R
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return zero, fmt.Errorf("%s %s id=%s: %w", op, t.mapping.Table, id, entity.ErrNotFound)
		}
		return zero, t.wrapWriteErr(err, op, "id="+id)
	}
	return t.mapping.FromRow(row), nil
}

func (t *Table[T, R]) wrapWriteErr(err error, op, target string) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%s %s %s: %w", op, t.mapping.Table, target, entity.ErrDuplicate)
	}
	return fmt.Errorf("%s %s %s: %w", op, t.mapping.Table, target, err)
}

func (t *Table[T, R]) conditions(filter entity.Filter) ([]qb.Condition, error) {
	keys := make([]string, 0, len(filter))
	for column := range filter {
		if _, ok := t.columns[column]; !ok {
			return nil, fmt.Errorf("filter %s on %q: %w", t.mapping.Table, column, entity.ErrUnknownColumn)
		}
		keys = append(keys, column)
	}
	sort.Strings(keys)

	out := make([]qb.Condition, 0, len(keys))
	for _, column := range keys {
		out = append(out, qb.Eq(column, filter[column]))
	}
	return out, nil
}

func (t *Table[T, R]) orderBy(raw string) ([]string, error) {
	order := entity.ParseOrderBy(raw)
	if _, ok := t.columns[order.Column]; !ok {
		return nil, fmt.Errorf("order %s by %q: %w", t.mapping.Table, order.Column, entity.ErrUnknownColumn)
	}

	clause := order.Column
	if order.Desc {
		clause += " DESC"
	}
	if order.Column == "id" {
		return []string{clause}, nil
	}
	return []string{clause, "id"}, nil
}

func (t *Table[T, R]) fromRows(rows []R) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		out = append(out, t.mapping.FromRow(row))
	}
	return out
}

func upsertSuffix(cols []string, conflictColumn string) string {
	sets := make([]string, 0, len(cols))
	for _, col := range cols {
		if col == "id" || col == "created_date" || col == conflictColumn {
			continue
		}
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	if len(sets) == 0 {
		return "ON CONFLICT (" + conflictColumn + ") DO NOTHING RETURNING *"
	}
	return "ON CONFLICT (" + conflictColumn + ")\nDO UPDATE SET\n    " + strings.Join(sets, ",\n    ") + "\nRETURNING *"
}
