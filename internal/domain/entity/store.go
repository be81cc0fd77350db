package entity

import (
	"context"
	"errors"
	"strings"
	"time"
)

// DefaultOrderBy is applied when a list call does not name an order.
const DefaultOrderBy = "-created_date"

var (
	ErrNotFound      = errors.New("entity not found")
	ErrDuplicate     = errors.New("entity already exists")
	ErrUnknownColumn = errors.New("unknown column")
)

// Filter matches records whose column equals the given value.
type Filter map[string]any

// ListOptions controls ordering and paging of list calls. OrderBy names a
// column and may be prefixed with "-" for descending order.
type ListOptions struct {
	OrderBy string
	Limit   int
	Offset  int
}

type Order struct {
	Column string
	Desc   bool
}

func ParseOrderBy(raw string) Order {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultOrderBy
	}
	if strings.HasPrefix(raw, "-") {
		return Order{Column: strings.TrimSpace(raw[1:]), Desc: true}
	}
	return Order{Column: strings.TrimSpace(strings.TrimPrefix(raw, "+"))}
}

// Record is implemented by every persisted model so generic stores can
// filter and order without reflection.
type Record interface {
	EntityID() string
	Column(name string) (any, bool)
}

// Identifiable records accept a store-assigned id and creation time.
type Identifiable[T any] interface {
	Record
	WithIdentity(id string, created time.Time) T
}

// Store is the persistence contract shared by all backends.
type Store[T any] interface {
	List(ctx context.Context, opts ListOptions) ([]T, error)
	Filter(ctx context.Context, filter Filter, opts ListOptions) ([]T, error)
	Get(ctx context.Context, id string) (T, bool, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id string, item T) (T, error)
	Delete(ctx context.Context, id string) error
	Upsert(ctx context.Context, item T, conflictColumn string) (T, error)
	BulkCreate(ctx context.Context, items []T) ([]T, error)
}
