package stream

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestConcurrentMap_PreservesOrder(t *testing.T) {
	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}
	s := Map(FromSlice(items), func(v int) (int, error) {
		time.Sleep(time.Duration(50-v) * time.Microsecond)
		return v * 2, nil
	}, 8)

	it, err := s.Iterator(context.Background())
	if err != nil {
		t.Fatalf("Iterator: %v", err)
	}
	defer it.Close()

	for i := range items {
		v, ok, err := it.Next(context.Background())
		if err != nil || !ok {
			t.Fatalf("Next(%d): v=%v ok=%v err=%v", i, v, ok, err)
		}
		if v != i*2 {
			t.Fatalf("index %d: got %d, want %d", i, v, i*2)
		}
	}
	_, ok, err := it.Next(context.Background())
	if ok || err != nil {
		t.Fatalf("expected end of stream, got ok=%v err=%v", ok, err)
	}
}

func TestConcurrentMap_BoundsInFlightInvocations(t *testing.T) {
	const concurrency = 3
	var inFlight, maxSeen int32
	items := make([]int, 30)
	s := Map(FromSlice(items), func(v int) (int, error) {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxSeen)
			if cur <= m || atomic.CompareAndSwapInt32(&maxSeen, m, cur) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return v, nil
	}, concurrency)

	it, err := s.Iterator(context.Background())
	if err != nil {
		t.Fatalf("Iterator: %v", err)
	}
	defer it.Close()

	for {
		_, ok, err := it.Next(context.Background())
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
	}
	if atomic.LoadInt32(&maxSeen) > concurrency {
		t.Fatalf("observed %d concurrent invocations, want <= %d", maxSeen, concurrency)
	}
}

func TestConcurrentMap_PropagatesElementError(t *testing.T) {
	boom := errors.New("boom")
	items := []int{1, 2, 3}
	s := Map(FromSlice(items), func(v int) (int, error) {
		if v == 2 {
			return 0, boom
		}
		return v, nil
	}, 2)

	it, err := s.Iterator(context.Background())
	if err != nil {
		t.Fatalf("Iterator: %v", err)
	}
	defer it.Close()

	var sawError bool
	for i := 0; i < len(items); i++ {
		_, _, err := it.Next(context.Background())
		if err != nil {
			sawError = true
			if !Is(err, KindElement) {
				t.Fatalf("expected KindElement, got %v", err)
			}
		}
	}
	if !sawError {
		t.Fatal("expected an element error to surface")
	}
}
