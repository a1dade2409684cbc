package stream

import (
	"context"
	"errors"
	"testing"
)

var errBoom = errors.New("boom")

func TestFlatten_ConcatenatesInUpstreamOrder(t *testing.T) {
	subs := FromSlice([]*Stream[int]{
		FromSlice([]int{1, 2}),
		FromSlice([]int{3}),
		FromSlice([]int{4, 5, 6}),
	})
	s := Flatten(subs, 1)
	got := drainInts(t, s)
	want := []int{1, 2, 3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFlatten_EmptySubstreamsSkipped(t *testing.T) {
	subs := FromSlice([]*Stream[int]{
		FromSlice([]int{}),
		FromSlice([]int{1}),
		FromSlice([]int{}),
	})
	got := drainInts(t, Flatten(subs, 1))
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("got %v, want [1]", got)
	}
}

func TestFlatten_SubIteratorErrorLeavesCurrentInPlace(t *testing.T) {
	var calls int
	failTwiceThenSucceed := Source(func() (Iterator[int], error) {
		return &flakySubIterator{failUntil: 2, values: []int{1, 2, 3}}, nil
	})
	subs := FromSlice([]*Stream[int]{failTwiceThenSucceed})
	s := Flatten(subs, 1).CatchAny()

	it, err := s.Iterator(context.Background())
	if err != nil {
		t.Fatalf("Iterator: %v", err)
	}
	defer it.Close()

	var got []int
	for i := 0; i < 10; i++ {
		v, ok, err := it.Next(context.Background())
		if err != nil {
			t.Fatalf("unexpected propagated error: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, v)
		calls++
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("got %v, want [1 2 3]", got)
	}
}

// flakySubIterator fails its first failUntil calls to Next with a
// KindElement error, then yields values in order.
type flakySubIterator struct {
	failUntil int
	calls     int
	values    []int
	idx       int
}

func (it *flakySubIterator) Next(ctx context.Context) (int, bool, error) {
	if it.calls < it.failUntil {
		it.calls++
		return 0, false, wrapElement(errBoom)
	}
	if it.idx >= len(it.values) {
		return 0, false, nil
	}
	v := it.values[it.idx]
	it.idx++
	return v, true, nil
}

func (it *flakySubIterator) Close() error { return nil }
