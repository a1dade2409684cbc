package stream

import (
	"context"

	"github.com/go-streamline/streamline/internal/streamlog"
)

// Observe logs progress at logarithmic checkpoints: the 1st element, every
// power-of-two count after that (2, 4, 8, 16, ...), and a final log with the
// total count once upstream is exhausted. what is a plural noun describing
// the elements, e.g. "output elements". Errors are never logged here.
func (s *Stream[T]) Observe(what string) *Stream[T] {
	node := &planNode{
		kind:     planObserve,
		upstream: s.node,
		params:   []string{"what=" + what},
	}
	return &Stream[T]{
		node: node,
		compile: func(ctx context.Context) (Iterator[T], error) {
			up, err := s.compile(ctx)
			if err != nil {
				return nil, err
			}
			return &observeIterator[T]{source: up, what: what, logger: streamlog.DefaultLogger().WithComponent("observe")}, nil
		},
	}
}

// isOuterObserve reports whether a Stream's outermost plan node is already
// an Observe, so the driver (driver.go) can avoid double-wrapping.
func (s *Stream[T]) isOuterObserve() bool {
	return s.node != nil && s.node.kind == planObserve
}

type observeIterator[T any] struct {
	source Iterator[T]
	what   string
	logger *streamlog.Logger
	count  int
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func (it *observeIterator[T]) Next(ctx context.Context) (T, bool, error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil {
		return val, false, err
	}
	if !ok {
		it.logger.Info("observed "+it.what+" (final)", map[string]any{"count": it.count})
		return val, false, nil
	}
	it.count++
	if it.count == 1 || isPowerOfTwo(it.count) {
		it.logger.Info("observed "+it.what, map[string]any{"count": it.count})
	}
	return val, true, nil
}

func (it *observeIterator[T]) Close() error { return it.source.Close() }
