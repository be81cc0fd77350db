package batch

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
)

const DefaultPageSize = 200

// PageFunc fetches one page. A page shorter than limit ends the read.
type PageFunc[T any] func(ctx context.Context, limit, offset int) ([]T, error)

type Options struct {
	PageSize int
	// Delay is waited between pages to throttle the backing store.
	Delay time.Duration
}

func (o Options) normalize() Options {
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.Delay < 0 {
		o.Delay = 0
	}
	return o
}

// ReadAll pages through fetch until a short page, an error or ctx is done.
func ReadAll[T any](ctx context.Context, fetch PageFunc[T], opts Options) ([]T, error) {
	if fetch == nil {
		return nil, crerr.New("batch: fetch func is required")
	}
	opts = opts.normalize()

	out := make([]T, 0, opts.PageSize)
	for page := 0; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, crerr.Wrap(err, "batch read cancelled")
		}

		offset := page * opts.PageSize
		items, err := fetch(ctx, opts.PageSize, offset)
		if err != nil {
			return nil, crerr.Wrapf(err, "batch read page %d (offset %d)", page, offset)
		}
		out = append(out, items...)
		if len(items) < opts.PageSize {
			return out, nil
		}

		if opts.Delay > 0 {
			if err := sleep(ctx, opts.Delay); err != nil {
				return nil, crerr.Wrap(err, "batch read cancelled")
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
