package content

import (
	"context"
	"errors"
	"time"
)

// Result is the outcome of an asynchronous generation call.
type Result[T any] struct {
	Value T
	Err   error
}

// Async runs fn on its own goroutine and delivers the result on the returned
// channel, which receives exactly one value. When timeout is positive and
// elapses first, the result is a *GenerationError of the given kind.
func Async[T any](ctx context.Context, kind Kind, timeout time.Duration, fn func(context.Context) (T, error)) <-chan Result[T] {
	out := make(chan Result[T], 1)

	go func() {
		cctx, cancel := ctx, context.CancelFunc(func() {})
		if timeout > 0 {
			cctx, cancel = context.WithTimeout(ctx, timeout)
		}
		defer cancel()

		done := make(chan Result[T], 1)
		go func() {
			v, err := fn(cctx)
			done <- Result[T]{Value: v, Err: err}
		}()

		select {
		case r := <-done:
			if r.Err != nil && errors.Is(cctx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
				r.Err = genErr(kind, "timed out after "+timeout.String(), r.Err)
			}
			out <- r
		case <-cctx.Done():
			var zero T
			if errors.Is(cctx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
				out <- Result[T]{Value: zero, Err: genErr(kind, "timed out after "+timeout.String(), cctx.Err())}
				return
			}
			out <- Result[T]{Value: zero, Err: genErr(kind, "cancelled", cctx.Err())}
		}
	}()

	return out
}
