package stream

import "context"

// Collect drains s to exhaustion and returns its elements, truncating the
// returned slice to limit (limit <= 0 means unlimited). Unlike Run, Collect
// installs no Observe or Catch wrapping and propagates the first error
// immediately; it is the bare, no-ceremony escape hatch for callers who
// already have their own logging and error policy.
func (s *Stream[T]) Collect(ctx context.Context, limit int) ([]T, error) {
	it, err := s.Iterator(ctx)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var out []T
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return out, err
		}
		if !ok {
			break
		}
		if limit <= 0 || len(out) < limit {
			out = append(out, val)
		}
	}
	return out, nil
}
