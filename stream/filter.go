package stream

import "context"

// Filter yields only the upstream elements for which predicate returns true,
// preserving order. predicate is total and cannot itself fail; use Map
// beforehand if a fallible check is needed and wrap its failure as a
// stream.Error.
func (s *Stream[T]) Filter(predicate func(T) bool) *Stream[T] {
	if predicate == nil {
		panic(newUsageError("filter predicate must not be nil"))
	}
	node := &planNode{
		kind:     planFilter,
		upstream: s.node,
		params:   []string{"predicate=" + funcName(predicate)},
	}
	return &Stream[T]{
		node: node,
		compile: func(ctx context.Context) (Iterator[T], error) {
			up, err := s.compile(ctx)
			if err != nil {
				return nil, err
			}
			return &filterIterator[T]{source: up, predicate: predicate}, nil
		},
	}
}

type filterIterator[T any] struct {
	source    Iterator[T]
	predicate func(T) bool
}

func (it *filterIterator[T]) Next(ctx context.Context) (T, bool, error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return val, ok, err
		}
		if it.predicate(val) {
			return val, true, nil
		}
	}
}

func (it *filterIterator[T]) Close() error { return it.source.Close() }
