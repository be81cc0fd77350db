package remote

import (
	"context"
	"net/url"
	"strconv"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/toto-league/internal/domain/entity"
	"github.com/valyala/fasthttp"
)

// Codec maps a domain record onto the JSON shape of one remote entity.
type Codec[T any, W any] struct {
	Entity   string
	ToWire   func(T) W
	FromWire func(W) T
}

// EntityRepository is an entity.Store over the remote entity API. Upsert is
// resolved client side with a filter followed by update or create.
type EntityRepository[T entity.Identifiable[T], W any] struct {
	client *Client
	codec  Codec[T, W]
}

func NewEntityRepository[T entity.Identifiable[T], W any](client *Client, codec Codec[T, W]) *EntityRepository[T, W] {
	return &EntityRepository[T, W]{client: client, codec: codec}
}

func (r *EntityRepository[T, W]) List(ctx context.Context, opts entity.ListOptions) ([]T, error) {
	return r.Filter(ctx, nil, opts)
}

func (r *EntityRepository[T, W]) Filter(ctx context.Context, filter entity.Filter, opts entity.ListOptions) ([]T, error) {
	query := map[string]string{
		"sort": opts.OrderBy,
	}
	if query["sort"] == "" {
		query["sort"] = entity.DefaultOrderBy
	}
	if opts.Limit > 0 {
		query["limit"] = strconv.Itoa(opts.Limit)
	}
	if opts.Offset > 0 {
		query["skip"] = strconv.Itoa(opts.Offset)
	}
	if len(filter) > 0 {
		encoded, err := sonic.MarshalString(filter)
		if err != nil {
			return nil, crerr.Wrapf(err, "encode %s filter", r.codec.Entity)
		}
		query["q"] = encoded
	}

	var wire []W
	if err := r.client.do(ctx, request{method: fasthttp.MethodGet, path: r.collection(), query: query}, &wire); err != nil {
		return nil, crerr.Wrapf(err, "list %s", r.codec.Entity)
	}
	return r.fromWire(wire), nil
}

func (r *EntityRepository[T, W]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	var wire W
	err := r.client.do(ctx, request{method: fasthttp.MethodGet, path: r.item(id)}, &wire)
	if crerr.Is(err, entity.ErrNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, crerr.Wrapf(err, "get %s id=%s", r.codec.Entity, id)
	}
	return r.codec.FromWire(wire), true, nil
}

func (r *EntityRepository[T, W]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	var wire W
	if err := r.client.do(ctx, request{method: fasthttp.MethodPost, path: r.collection(), body: r.codec.ToWire(item)}, &wire); err != nil {
		return zero, crerr.Wrapf(err, "create %s", r.codec.Entity)
	}
	return r.codec.FromWire(wire), nil
}

func (r *EntityRepository[T, W]) Update(ctx context.Context, id string, item T) (T, error) {
	var zero T
	var wire W
	if err := r.client.do(ctx, request{method: fasthttp.MethodPut, path: r.item(id), body: r.codec.ToWire(item)}, &wire); err != nil {
		return zero, crerr.Wrapf(err, "update %s id=%s", r.codec.Entity, id)
	}
	return r.codec.FromWire(wire), nil
}

func (r *EntityRepository[T, W]) Delete(ctx context.Context, id string) error {
	if err := r.client.do(ctx, request{method: fasthttp.MethodDelete, path: r.item(id)}, nil); err != nil {
		return crerr.Wrapf(err, "delete %s id=%s", r.codec.Entity, id)
	}
	return nil
}

func (r *EntityRepository[T, W]) Upsert(ctx context.Context, item T, conflictColumn string) (T, error) {
	var zero T
	value, ok := item.Column(conflictColumn)
	if !ok {
		return zero, crerr.Wrapf(entity.ErrUnknownColumn, "upsert %s on %q", r.codec.Entity, conflictColumn)
	}

	existing, err := r.Filter(ctx, entity.Filter{conflictColumn: value}, entity.ListOptions{Limit: 1})
	if err != nil {
		return zero, err
	}
	if len(existing) > 0 {
		return r.Update(ctx, existing[0].EntityID(), item)
	}
	return r.Create(ctx, item)
}

func (r *EntityRepository[T, W]) BulkCreate(ctx context.Context, items []T) ([]T, error) {
	if len(items) == 0 {
		return nil, nil
	}

	payload := make([]W, 0, len(items))
	for _, item := range items {
		payload = append(payload, r.codec.ToWire(item))
	}

	var wire []W
	if err := r.client.do(ctx, request{method: fasthttp.MethodPost, path: r.collection() + "/bulk", body: payload}, &wire); err != nil {
		return nil, crerr.Wrapf(err, "bulk create %d %s", len(items), r.codec.Entity)
	}
	return r.fromWire(wire), nil
}

func (r *EntityRepository[T, W]) collection() string {
	return url.PathEscape(r.codec.Entity)
}

func (r *EntityRepository[T, W]) item(id string) string {
	return r.collection() + "/" + url.PathEscape(id)
}

func (r *EntityRepository[T, W]) fromWire(items []W) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, r.codec.FromWire(item))
	}
	return out
}
