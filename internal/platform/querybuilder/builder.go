package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition renders one WHERE term. Terms are joined with AND.
type Condition interface {
	render(w *writer)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) render(w *writer) {
	w.WriteString(c.column)
	w.WriteString(" = ")
	w.bind(c.value)
}

// writer accumulates SQL text and numbered ($n) arguments.
type writer struct {
	strings.Builder
	args []any
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.WriteString("$")
	w.WriteString(strconv.Itoa(len(w.args)))
}

func (w *writer) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			w.WriteString(" WHERE ")
		} else {
			w.WriteString(" AND ")
		}
		c.render(w)
	}
}

func (w *writer) suffix(sql string) {
	if sql == "" {
		return
	}
	w.WriteString(" ")
	w.WriteString(sql)
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
	offset  int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) Offset(offset int) *SelectBuilder {
	b.offset = offset
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var w writer
	w.WriteString("SELECT ")
	w.WriteString(strings.Join(b.columns, ", "))
	w.WriteString(" FROM ")
	w.WriteString(b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.suffix("ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.suffix("LIMIT " + strconv.Itoa(b.limit))
	}
	if b.offset > 0 {
		w.suffix("OFFSET " + strconv.Itoa(b.offset))
	}
	return w.String(), w.args, nil
}

// insertStatement is multi-row; every row must match the column list.
type insertStatement struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func (s insertStatement) toSQL() (string, []any, error) {
	if strings.TrimSpace(s.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(s.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(s.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var w writer
	w.args = make([]any, 0, len(s.rows)*len(s.columns))
	w.WriteString("INSERT INTO ")
	w.WriteString(s.table)
	w.WriteString(" (")
	w.WriteString(strings.Join(s.columns, ", "))
	w.WriteString(") VALUES ")
	for i, row := range s.rows {
		if len(row) != len(s.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(s.columns))
		}
		if i > 0 {
			w.WriteString(", ")
		}
		w.WriteString("(")
		for j, value := range row {
			if j > 0 {
				w.WriteString(", ")
			}
			w.bind(value)
		}
		w.WriteString(")")
	}
	w.suffix(strings.TrimSpace(s.suffix))
	return w.String(), w.args, nil
}

type assignment struct {
	column string
	value  any
}

type UpdateBuilder struct {
	table  string
	sets   []assignment
	where  []Condition
	suffix string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// Suffix is appended verbatim, e.g. "RETURNING *".
func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var w writer
	w.WriteString("UPDATE ")
	w.WriteString(b.table)
	w.WriteString(" SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.WriteString(", ")
		}
		w.WriteString(s.column)
		w.WriteString(" = ")
		w.bind(s.value)
	}
	w.where(b.where)
	w.suffix(b.suffix)
	return w.String(), w.args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses to build an unconditioned DELETE.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete conditions are required")
	}

	var w writer
	w.WriteString("DELETE FROM ")
	w.WriteString(b.table)
	w.where(b.where)
	return w.String(), w.args, nil
}
