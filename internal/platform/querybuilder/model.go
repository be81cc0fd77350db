package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := ColumnsAndValues(model)
	if err != nil {
		return "", nil, err
	}
	return insertStatement{table: table, columns: cols, rows: [][]any{vals}, suffix: suffix}.toSQL()
}

// InsertModels builds one multi-row INSERT. Every model must expose the same
// db columns as the first one.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("insert models are required")
	}

	stmt := insertStatement{table: table, suffix: suffix, rows: make([][]any, 0, len(models))}
	for i, model := range models {
		cols, vals, err := ColumnsAndValues(model)
		if err != nil {
			return "", nil, fmt.Errorf("model %d: %w", i, err)
		}
		if i == 0 {
			stmt.columns = cols
		} else if strings.Join(cols, ",") != strings.Join(stmt.columns, ",") {
			return "", nil, fmt.Errorf("model %d has mismatched columns", i)
		}
		stmt.rows = append(stmt.rows, vals)
	}
	return stmt.toSQL()
}

// ColumnsAndValues reads the db-tagged exported fields of a struct in
// declaration order.
func ColumnsAndValues(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		tag := strings.TrimSpace(field.Tag.Get("db"))
		if tag == "" || tag == "-" {
			continue
		}
		col := strings.TrimSpace(strings.Split(tag, ",")[0])
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
