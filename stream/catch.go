package stream

import "context"

// Catch suppresses element errors for which when returns true, skipping the
// failed element and continuing the iteration rather than propagating the
// error to the caller. when receives the unwrapped cause (Error.Cause if
// set, otherwise the *Error itself), matching how user code raised it. Only
// KindElement errors are ever eligible for suppression; KindUsage and
// KindWorker errors always propagate regardless of when.
func (s *Stream[T]) Catch(when func(error) bool) *Stream[T] {
	if when == nil {
		panic(newUsageError("catch predicate must not be nil"))
	}
	node := &planNode{
		kind:     planCatch,
		upstream: s.node,
		params:   []string{"when=" + funcName(when)},
	}
	return &Stream[T]{
		node: node,
		compile: func(ctx context.Context) (Iterator[T], error) {
			up, err := s.compile(ctx)
			if err != nil {
				return nil, err
			}
			return &catchIterator[T]{source: up, when: when}, nil
		},
	}
}

// CatchAny suppresses every element error, equivalent to Catch(func(error)
// bool { return true }).
func (s *Stream[T]) CatchAny() *Stream[T] {
	return s.Catch(func(error) bool { return true })
}

type catchIterator[T any] struct {
	source Iterator[T]
	when   func(error) bool
}

func (it *catchIterator[T]) Next(ctx context.Context) (T, bool, error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err == nil {
			return val, ok, nil
		}
		if !Is(err, KindElement) {
			var zero T
			return zero, false, err
		}
		cause := err
		if se, ok := err.(*Error); ok && se.Cause != nil {
			cause = se.Cause
		}
		if it.when(cause) {
			continue
		}
		var zero T
		return zero, false, err
	}
}

func (it *catchIterator[T]) Close() error { return it.source.Close() }
