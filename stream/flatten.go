package stream

import "context"

// Flatten concatenates each sub-stream yielded by s. At concurrency 1,
// output order matches upstream order; at concurrency >= 2, sub-streams are
// consumed concurrently and output order is arrival order.
func Flatten[R any](s *Stream[*Stream[R]], concurrency int) *Stream[R] {
	if err := validateConcurrency(concurrency); err != nil {
		panic(err)
	}
	node := &planNode{
		kind:     planFlatten,
		upstream: s.node,
		params:   []string{fmtInt("concurrency", concurrency)},
	}
	if concurrency == 1 {
		return &Stream[R]{
			node: node,
			compile: func(ctx context.Context) (Iterator[R], error) {
				outer, err := s.compile(ctx)
				if err != nil {
					return nil, err
				}
				return &flattenIterator[R]{outer: outer}, nil
			},
		}
	}
	return &Stream[R]{
		node: node,
		compile: func(ctx context.Context) (Iterator[R], error) {
			outer, err := s.compile(ctx)
			if err != nil {
				return nil, err
			}
			return newConcurrentFlatten(ctx, outer, concurrency), nil
		},
	}
}

// flattenIterator keeps a single current sub-iterator active at a time. On a
// sub-iterator error it leaves current in place so a downstream Catch
// resumes pulling the same sub-iterator rather than skipping to the next
// one.
type flattenIterator[R any] struct {
	outer   Iterator[*Stream[R]]
	current Iterator[R]
}

func (it *flattenIterator[R]) Next(ctx context.Context) (R, bool, error) {
	for {
		if it.current == nil {
			sub, ok, err := it.outer.Next(ctx)
			if err != nil || !ok {
				var zero R
				return zero, false, err
			}
			cur, err := sub.compile(ctx)
			if err != nil {
				var zero R
				return zero, false, err
			}
			it.current = cur
		}

		val, ok, err := it.current.Next(ctx)
		if err != nil {
			var zero R
			return zero, false, err
		}
		if ok {
			return val, true, nil
		}
		it.current.Close()
		it.current = nil
	}
}

func (it *flattenIterator[R]) Close() error {
	var first error
	if it.current != nil {
		first = it.current.Close()
	}
	if err := it.outer.Close(); err != nil && first == nil {
		first = err
	}
	return first
}
