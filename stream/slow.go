package stream

import (
	"context"
	"time"

	"github.com/go-streamline/streamline/internal/resilience"
)

// Slow enforces a minimum interval between upstream pulls: before each pull
// it waits until at least interval has passed since the previous pull
// started, then pulls upstream. The interval is counted from the start of
// the previous pull, not from when its element was yielded, so time spent
// inside upstream counts toward it. The first pull is never delayed. The
// rate is an upper bound, not a target: an upstream that naturally yields
// slower than interval is unaffected. interval must be > 0.
func (s *Stream[T]) Slow(interval time.Duration) *Stream[T] {
	if interval <= 0 {
		panic(newUsageError("slow interval should be > 0, but got %s", interval))
	}
	node := &planNode{
		kind:     planSlow,
		upstream: s.node,
		params:   []string{fmtDuration("interval", interval)},
	}
	return &Stream[T]{
		node: node,
		compile: func(ctx context.Context) (Iterator[T], error) {
			up, err := s.compile(ctx)
			if err != nil {
				return nil, err
			}
			rate := float64(time.Second) / float64(interval)
			limiter := resilience.NewRateLimiter(rate, 1)
			return &slowIterator[T]{source: up, limiter: limiter}, nil
		},
	}
}

type slowIterator[T any] struct {
	source  Iterator[T]
	limiter *resilience.RateLimiter
}

func (it *slowIterator[T]) Next(ctx context.Context) (T, bool, error) {
	if err := it.limiter.Wait(ctx); err != nil {
		var zero T
		return zero, false, err
	}
	return it.source.Next(ctx)
}

func (it *slowIterator[T]) Close() error { return it.source.Close() }
