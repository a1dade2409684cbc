package stream

import (
	"context"

	"github.com/go-streamline/streamline/internal/resilience"
)

// future carries one pending invocation's eventual result.
type future[R any] chan result[R]

type concurrentMapIterator[T, R any] struct {
	futures chan future[R]
	cancel  context.CancelFunc
	done    chan struct{}
	closer  func() error
}

// newConcurrentMap runs fn on upstream values with up to concurrency
// invocations in flight, yielding results in upstream order.
func newConcurrentMap[T, R any](ctx context.Context, upstream Iterator[T], concurrency int, fn func(context.Context, T) (R, error)) Iterator[R] {
	workCtx, cancel := context.WithCancel(ctx)
	bulkhead := resilience.NewBulkhead(concurrency)
	futures := make(chan future[R], concurrency)
	done := make(chan struct{})

	go func() {
		defer close(futures)
		defer close(done)
		for {
			val, ok, err := upstream.Next(workCtx)
			if err != nil {
				f := make(future[R], 1)
				f <- result[R]{err: wrapElement(err)}
				select {
				case futures <- f:
				case <-workCtx.Done():
					return
				}
				continue
			}
			if !ok {
				return
			}

			f := make(future[R], 1)
			select {
			case futures <- f:
			case <-workCtx.Done():
				return
			}

			if err := bulkhead.Acquire(workCtx); err != nil {
				f <- result[R]{err: workCtx.Err()}
				continue
			}
			go func(elem T, f future[R]) {
				defer bulkhead.Release()
				defer func() {
					if r := recover(); r != nil {
						f <- result[R]{err: newWorkerError("panic in map worker: %v", r)}
					}
				}()
				out, err := fn(workCtx, elem)
				if err != nil {
					f <- result[R]{err: wrapElement(err)}
					return
				}
				f <- result[R]{val: out, ok: true}
			}(val, f)
		}
	}()

	return &concurrentMapIterator[T, R]{
		futures: futures,
		cancel:  cancel,
		done:    done,
		closer:  upstream.Close,
	}
}

func (it *concurrentMapIterator[T, R]) Next(ctx context.Context) (R, bool, error) {
	select {
	case f, open := <-it.futures:
		if !open {
			var zero R
			return zero, false, nil
		}
		select {
		case r := <-f:
			return r.val, r.ok, r.err
		case <-ctx.Done():
			var zero R
			return zero, false, ctx.Err()
		}
	case <-ctx.Done():
		var zero R
		return zero, false, ctx.Err()
	}
}

func (it *concurrentMapIterator[T, R]) Close() error {
	it.cancel()
	<-it.done
	return it.closer()
}
