package stream

import (
	"context"
	"testing"
)

func drainInts(t *testing.T, s *Stream[int]) []int {
	t.Helper()
	it, err := s.Iterator(context.Background())
	if err != nil {
		t.Fatalf("Iterator: %v", err)
	}
	defer it.Close()
	var got []int
	for {
		v, ok, err := it.Next(context.Background())
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, v)
	}
	return got
}

func TestChain_ConcatenatesInOrder(t *testing.T) {
	s := FromSlice([]int{1, 2}).Chain(FromSlice([]int{3, 4}), FromSlice([]int{5}))
	got := drainInts(t, s)
	want := []int{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestChain_NoOthersReturnsSameStream(t *testing.T) {
	s := FromSlice([]int{1, 2})
	if s.Chain() != s {
		t.Fatal("Chain with no arguments should return the receiver unchanged")
	}
}

func TestPlus_IsSingleArgChain(t *testing.T) {
	s := FromSlice([]int{1}).Plus(FromSlice([]int{2}))
	got := drainInts(t, s)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("got %v, want [1 2]", got)
	}
}

func TestChain_LazilyCompilesLaterSources(t *testing.T) {
	var compiled int
	first := FromSlice([]int{1})
	second := Source(func() (Iterator[int], error) {
		compiled++
		return &sliceIterator[int]{items: []int{2}}, nil
	})
	s := first.Chain(second)
	it, err := s.Iterator(context.Background())
	if err != nil {
		t.Fatalf("Iterator: %v", err)
	}
	defer it.Close()

	if compiled != 0 {
		t.Fatalf("second source compiled before needed: %d", compiled)
	}
	v, ok, err := it.Next(context.Background())
	if err != nil || !ok || v != 1 {
		t.Fatalf("first Next: v=%v ok=%v err=%v", v, ok, err)
	}
	if compiled != 0 {
		t.Fatalf("second source compiled before first exhausted: %d", compiled)
	}
	v, ok, err = it.Next(context.Background())
	if err != nil || !ok || v != 2 {
		t.Fatalf("second Next: v=%v ok=%v err=%v", v, ok, err)
	}
	if compiled != 1 {
		t.Fatalf("expected second source compiled exactly once, got %d", compiled)
	}
}
