package stream

import "context"

// Chain yields this stream's elements followed by each of others', in the
// order given, each fully drained before the next begins.
func (s *Stream[T]) Chain(others ...*Stream[T]) *Stream[T] {
	if len(others) == 0 {
		return s
	}
	node := &planNode{kind: planChain, upstream: s.node}
	for _, o := range others {
		node.others = append(node.others, o.node)
	}
	return &Stream[T]{
		node: node,
		compile: func(ctx context.Context) (Iterator[T], error) {
			sources := make([]*Stream[T], 0, len(others)+1)
			sources = append(sources, s)
			sources = append(sources, others...)
			return &chainIterator[T]{sources: sources}, nil
		},
	}
}

// Plus is Chain with a single argument.
func (s *Stream[T]) Plus(other *Stream[T]) *Stream[T] {
	return s.Chain(other)
}

// chainIterator compiles each source lazily, only once the previous one is
// exhausted.
type chainIterator[T any] struct {
	sources []*Stream[T]
	index   int
	current Iterator[T]
	closed  []Iterator[T]
}

func (it *chainIterator[T]) Next(ctx context.Context) (T, bool, error) {
	for {
		if it.current == nil {
			if it.index >= len(it.sources) {
				var zero T
				return zero, false, nil
			}
			cur, err := it.sources[it.index].compile(ctx)
			it.index++
			if err != nil {
				var zero T
				return zero, false, err
			}
			it.current = cur
			it.closed = append(it.closed, cur)
		}

		val, ok, err := it.current.Next(ctx)
		if err != nil {
			return val, false, err
		}
		if ok {
			return val, true, nil
		}
		it.current = nil
	}
}

func (it *chainIterator[T]) Close() error {
	var first error
	for _, c := range it.closed {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
