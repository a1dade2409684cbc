package stream

import (
	"context"

	"github.com/go-streamline/streamline/internal/streamlog"
)

// maxErrorSamples bounds how many swallowed errors Run keeps around to log
// and to re-raise from.
const maxErrorSamples = 8

// RunOptions configures Run's iteration driver.
type RunOptions struct {
	// CollectLimit caps how many elements Run returns. Must be >= 0; 0
	// drains the stream fully but returns no elements.
	CollectLimit int
	// RaiseIfMoreErrorsThan: Run re-raises the first swallowed error sample
	// once more than this many elements failed. Must be >= 0.
	RaiseIfMoreErrorsThan int
	// FailFast disables error-swallowing: the first element error
	// propagates out of Run immediately.
	FailFast bool
}

// Run drives s to exhaustion and returns up to opts.CollectLimit collected
// elements, wrapping s in Observe and a counting Catch as needed and
// logging the plan and any swallowed errors along the way.
func (s *Stream[T]) Run(ctx context.Context, opts RunOptions) ([]T, error) {
	if opts.CollectLimit < 0 {
		return nil, newUsageError("collect limit should be >= 0, but got %d", opts.CollectLimit)
	}
	if opts.RaiseIfMoreErrorsThan < 0 {
		return nil, newUsageError("raise_if_more_errors_than should be >= 0, but got %d", opts.RaiseIfMoreErrorsThan)
	}

	observed := s
	if !s.isOuterObserve() {
		observed = s.Observe("output elements")
	}

	tracker := &errorTracker{}
	runnable := observed
	if !opts.FailFast {
		runnable = observed.Catch(tracker.observe)
	}

	logger := streamlog.DefaultLogger().WithComponent("driver")
	logger.Info("plan\n" + runnable.Explain(false))

	it, err := runnable.Iterator(ctx)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var collected []T
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return collected, err
		}
		if !ok {
			break
		}
		if len(collected) < opts.CollectLimit {
			collected = append(collected, val)
		}
	}

	if tracker.count > 0 {
		logger.Error("element errors during iteration", map[string]any{
			"errors_count": tracker.count,
			"samples":      tracker.sampleMessages(),
		})
		if tracker.count > opts.RaiseIfMoreErrorsThan {
			return collected, tracker.samples[0]
		}
	}

	return collected, nil
}

// errorTracker counts and samples errors swallowed by the driver's Catch.
type errorTracker struct {
	count   int
	samples []error
}

func (t *errorTracker) observe(err error) bool {
	t.count++
	if len(t.samples) < maxErrorSamples {
		t.samples = append(t.samples, err)
	}
	return true
}

func (t *errorTracker) sampleMessages() []string {
	msgs := make([]string, len(t.samples))
	for i, e := range t.samples {
		msgs[i] = e.Error()
	}
	return msgs
}
