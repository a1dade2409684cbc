package stream

import "context"

// Stream is an immutable description of a lazy pipeline over elements of
// type T. No work happens until Iterator, Collect, or Run is called.
type Stream[T any] struct {
	node    *planNode
	compile func(ctx context.Context) (Iterator[T], error)
}

// Source builds a Stream whose elements come from repeated calls to
// factory — once per independent iteration, never memoized. factory must be
// non-nil; a nil factory is a UsageError raised synchronously.
func Source[T any](factory func() (Iterator[T], error)) *Stream[T] {
	if factory == nil {
		panic(newUsageError("source factory must not be nil"))
	}
	return &Stream[T]{
		node: &planNode{kind: planSource, params: []string{"factory=" + funcName(factory)}},
		compile: func(ctx context.Context) (Iterator[T], error) {
			it, err := factory()
			if err != nil {
				return nil, wrapElement(err)
			}
			if it == nil {
				return nil, newSourceTypeError("source factory returned a nil iterator")
			}
			return it, nil
		},
	}
}

// FromSlice builds a Stream yielding the elements of items, in order. Each
// independent iteration gets its own cursor, so the same Stream can be
// iterated more than once.
func FromSlice[T any](items []T) *Stream[T] {
	return Source(func() (Iterator[T], error) {
		return &sliceIterator[T]{items: items}, nil
	})
}

// FromFunc builds a Stream from a factory that produces an Iterator
// directly, for callers that already have a pull-based source (e.g. one
// assembled from channels or another library's cursor type).
func FromFunc[T any](factory func(ctx context.Context) (Iterator[T], error)) *Stream[T] {
	return &Stream[T]{
		node: &planNode{kind: planSource, params: []string{"factory=" + funcName(factory)}},
		compile: func(ctx context.Context) (Iterator[T], error) {
			it, err := factory(ctx)
			if err != nil {
				return nil, wrapElement(err)
			}
			if it == nil {
				return nil, newSourceTypeError("source factory returned a nil iterator")
			}
			return it, nil
		},
	}
}

// Iterator compiles the plan and returns a fresh pull-based Iterator. The
// caller must Close it. Re-compiling the same Stream (calling Iterator
// again) produces an entirely independent pipeline instance.
func (s *Stream[T]) Iterator(ctx context.Context) (Iterator[T], error) {
	return s.compile(ctx)
}

func validateConcurrency(concurrency int) error {
	if concurrency < 1 {
		return newUsageError("concurrency should be >= 1, but got %d", concurrency)
	}
	return nil
}
