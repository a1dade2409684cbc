package stream

import "context"

// Map applies fn to each upstream element and yields the result, in
// upstream order. Map changes the element type (T -> R), which Go cannot
// express as a method carrying a fresh type parameter, so it is a
// package-level generic function rather than a Stream[T] method.
//
// With concurrency == 1, elements are mapped one at a time on
// the consumer's own goroutine. With concurrency > 1, up to concurrency
// invocations of fn may run concurrently while results are still yielded in
// upstream order (see concurrent_map.go).
func Map[T, R any](s *Stream[T], fn func(T) (R, error), concurrency int) *Stream[R] {
	if err := validateConcurrency(concurrency); err != nil {
		panic(err)
	}
	node := &planNode{
		kind:     planMap,
		upstream: s.node,
		params:   []string{"func=" + funcName(fn), fmtInt("concurrency", concurrency)},
	}
	if concurrency == 1 {
		return &Stream[R]{
			node: node,
			compile: func(ctx context.Context) (Iterator[R], error) {
				up, err := s.compile(ctx)
				if err != nil {
					return nil, err
				}
				return &mapIterator[T, R]{source: up, fn: fn}, nil
			},
		}
	}
	return &Stream[R]{
		node: node,
		compile: func(ctx context.Context) (Iterator[R], error) {
			up, err := s.compile(ctx)
			if err != nil {
				return nil, err
			}
			return newConcurrentMap(ctx, up, concurrency, func(ctx context.Context, v T) (R, error) {
				return fn(v)
			}), nil
		},
	}
}

type mapIterator[T, R any] struct {
	source Iterator[T]
	fn     func(T) (R, error)
}

func (it *mapIterator[T, R]) Next(ctx context.Context) (R, bool, error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		var zero R
		return zero, false, err
	}
	out, err := it.fn(val)
	if err != nil {
		var zero R
		return zero, false, wrapElement(err)
	}
	return out, true, nil
}

func (it *mapIterator[T, R]) Close() error { return it.source.Close() }

// Do calls fn on each upstream element as a side effect, discarding its
// result, and yields the original upstream element unchanged and in order.
// If fn(elem) returns an error, that error propagates at the yield point and
// elem is not yielded — matching Map's error semantics exactly, since Do
// reuses Map's concurrent engine with a result-discarding adapter rather
// than a second bounded-futures implementation.
func (s *Stream[T]) Do(fn func(T) error, concurrency int) *Stream[T] {
	if err := validateConcurrency(concurrency); err != nil {
		panic(err)
	}
	adapter := func(v T) (T, error) {
		if err := fn(v); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	}
	node := &planNode{
		kind:     planDo,
		upstream: s.node,
		params:   []string{"func=" + funcName(fn), fmtInt("concurrency", concurrency)},
	}
	inner := Map(s, adapter, concurrency)
	return &Stream[T]{node: node, compile: inner.compile}
}
