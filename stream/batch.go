package stream

import (
	"context"
	"time"
)

// Batch groups upstream elements into slices of at most size, each emitted
// as soon as either size elements have accumulated or interval has elapsed
// since the first element of the batch arrived, whichever comes first. A
// final partial batch is emitted when upstream is exhausted. interval <= 0
// disables the time bound entirely (batches are size-only).
func (s *Stream[T]) Batch(size int, interval time.Duration) *Stream[[]T] {
	if size < 1 {
		panic(newUsageError("batch size should be >= 1, but got %d", size))
	}
	node := &planNode{
		kind:     planBatch,
		upstream: s.node,
		params:   []string{fmtInt("size", size), fmtDuration("interval", interval)},
	}
	return &Stream[[]T]{
		node: node,
		compile: func(ctx context.Context) (Iterator[[]T], error) {
			up, err := s.compile(ctx)
			if err != nil {
				return nil, err
			}
			batchCtx, cancel := context.WithCancel(ctx)
			ch := make(chan result[T], 1)
			fed := make(chan struct{})
			go func() {
				defer close(fed)
				defer close(ch)
				for {
					val, ok, err := up.Next(batchCtx)
					if err != nil {
						select {
						case ch <- result[T]{err: err}:
						case <-batchCtx.Done():
						}
						return
					}
					if !ok {
						return
					}
					select {
					case ch <- result[T]{val: val, ok: true}:
					case <-batchCtx.Done():
						return
					}
				}
			}()
			return &batchIterator[T]{ch: ch, size: size, interval: interval, cancel: cancel, closer: func() error { <-fed; return up.Close() }}, nil
		},
	}
}

type batchIterator[T any] struct {
	ch         <-chan result[T]
	size       int
	interval   time.Duration
	cancel     context.CancelFunc
	closer     func() error
	done       bool
	stashedErr error
}

// Next emits a partial batch before an upstream error if the batch is
// non-empty, stashing the error to re-raise on the following pull.
func (it *batchIterator[T]) Next(ctx context.Context) ([]T, bool, error) {
	if it.stashedErr != nil {
		err := it.stashedErr
		it.stashedErr = nil
		return nil, false, err
	}
	if it.done {
		return nil, false, nil
	}

	var batch []T
	var timerC <-chan time.Time

	for {
		select {
		case r, open := <-it.ch:
			if !open {
				it.done = true
				if len(batch) > 0 {
					return batch, true, nil
				}
				return nil, false, nil
			}
			if r.err != nil {
				it.done = true
				if len(batch) > 0 {
					it.stashedErr = r.err
					return batch, true, nil
				}
				return nil, false, r.err
			}
			batch = append(batch, r.val)
			if len(batch) >= it.size {
				return batch, true, nil
			}
			if len(batch) == 1 && it.interval > 0 {
				timer := time.NewTimer(it.interval)
				defer timer.Stop()
				timerC = timer.C
			}

		case <-timerC:
			return batch, true, nil

		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}
}

func (it *batchIterator[T]) Close() error {
	it.cancel()
	return it.closer()
}
