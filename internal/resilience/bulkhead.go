// Package resilience carries the two concurrency primitives the stream
// package's concurrent operators are built on: a counting semaphore
// (Bulkhead) that bounds how many user-function invocations may run at
// once, and a token-bucket RateLimiter. Both are adapted from a service
// toolkit's HTTP/call-gating resilience package to gate plain
// func(context.Context) (T, error) invocations instead of backend calls.
package resilience

import (
	"context"
	"errors"
	"sync"
)

// ErrBulkheadClosed is returned by Acquire after Close.
var ErrBulkheadClosed = errors.New("resilience: bulkhead closed")

// Bulkhead bounds the number of concurrent invocations admitted through it.
// It isolates one operator's worker pool from the rest of the pipeline so a
// slow or runaway func cannot starve unrelated stages.
type Bulkhead struct {
	sem      chan struct{}
	closed   chan struct{}
	closeOne sync.Once
}

// NewBulkhead creates a Bulkhead admitting at most maxConcurrent callers at
// once. maxConcurrent must be >= 1; callers validate this upstream (the
// stream package's builder methods reject concurrency < 1 as a UsageError
// before a Bulkhead is ever constructed).
func NewBulkhead(maxConcurrent int) *Bulkhead {
	return &Bulkhead{
		sem:    make(chan struct{}, maxConcurrent),
		closed: make(chan struct{}),
	}
}

// Acquire blocks until a slot is free, ctx is done, or the bulkhead is
// closed. The caller must call Release exactly once after a nil-error
// Acquire.
func (b *Bulkhead) Acquire(ctx context.Context) error {
	select {
	case b.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-b.closed:
		return ErrBulkheadClosed
	}
}

// Release frees the slot acquired by a prior successful Acquire.
func (b *Bulkhead) Release() {
	select {
	case <-b.sem:
	default:
	}
}

// Close unblocks any pending Acquire calls with ErrBulkheadClosed. Safe to
// call more than once.
func (b *Bulkhead) Close() {
	b.closeOne.Do(func() { close(b.closed) })
}
