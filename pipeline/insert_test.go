package pipeline

import (
	"context"
	"errors"
	"testing"
)

func isOdd(n, _ int) (bool, error) { return n%2 == 1, nil }

func never[T any](T, int) (bool, error) { return false, nil }

func TestInsertAfterEvery_OddItems(t *testing.T) {
	out := InsertAfterEvery(FromSlice([]int{1, 2, 3}), isOdd, FromSlice([]int{10, 20}))
	got, err := Collect(context.Background(), out)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{1, 10, 20, 2, 3, 10, 20}
	if !sliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInsertAfterFirst_OddItems(t *testing.T) {
	out := InsertAfterFirst(FromSlice([]int{1, 2, 3}), isOdd, FromSlice([]int{10, 20}))
	got, err := Collect(context.Background(), out)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{1, 10, 20, 2, 3}
	if !sliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInsert_OutputLength(t *testing.T) {
	tests := []struct {
		name      string
		primary   []int
		additions []int
		pred      func(int, int) (bool, error)
		every     int
		first     int
	}{
		{"no matches", []int{2, 4, 6}, []int{0, 0}, isOdd, 3, 3},
		{"all match", []int{1, 3, 5}, []int{0, 0}, isOdd, 9, 5},
		{"some match", []int{1, 2, 3, 4, 5}, []int{0}, isOdd, 8, 6},
		{"empty additions", []int{1, 2, 3}, nil, isOdd, 3, 3},
		{"empty primary", nil, []int{0}, always[int], 0, 0},
		{"index based", []int{7, 7, 7, 7}, []int{0, 0, 0},
			func(_ int, i int) (bool, error) { return i%2 == 1, nil }, 10, 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			every, err := Collect(context.Background(),
				InsertAfterEvery(FromSlice(tc.primary), tc.pred, FromSlice(tc.additions)))
			if err != nil {
				t.Fatal(err)
			}
			if len(every) != tc.every {
				t.Errorf("every: len = %d, want %d (%v)", len(every), tc.every, every)
			}
			first, err := Collect(context.Background(),
				InsertAfterFirst(FromSlice(tc.primary), tc.pred, FromSlice(tc.additions)))
			if err != nil {
				t.Fatal(err)
			}
			if len(first) != tc.first {
				t.Errorf("first: len = %d, want %d (%v)", len(first), tc.first, first)
			}
		})
	}
}

func TestInsert_PreservesPrimaryOrder(t *testing.T) {
	primary := []int{5, 1, 4, 2, 3}
	additions := []int{-1, -2}
	for name, op := range map[string]func(*Pipeline[int], func(int, int) (bool, error), *Pipeline[int]) *Pipeline[int]{
		"every": InsertAfterEvery[int],
		"first": InsertAfterFirst[int],
	} {
		t.Run(name, func(t *testing.T) {
			got, err := Collect(context.Background(), op(FromSlice(primary), isOdd, FromSlice(additions)))
			if err != nil {
				t.Fatal(err)
			}
			var stripped []int
			for _, v := range got {
				if v >= 0 {
					stripped = append(stripped, v)
				}
			}
			if !sliceEqual(stripped, primary) {
				t.Errorf("primary order changed: got %v, want %v", stripped, primary)
			}
		})
	}
}

func TestInsert_EmptyPrimaryNeverTouchesAdditions(t *testing.T) {
	for name, op := range map[string]func(*Pipeline[int], func(int, int) (bool, error), *Pipeline[int]) *Pipeline[int]{
		"every": InsertAfterEvery[int],
		"first": InsertAfterFirst[int],
	} {
		t.Run(name, func(t *testing.T) {
			additions := &countingSource[int]{items: []int{1}}
			called := false
			pred := func(int, int) (bool, error) { called = true; return true, nil }
			got, err := Collect(context.Background(), op(Empty[int](), pred, additions.Pipeline()))
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 0 {
				t.Errorf("expected empty output, got %v", got)
			}
			if called {
				t.Error("predicate evaluated for an empty primary")
			}
			if additions.created != 0 {
				t.Errorf("additions started %d times, want 0", additions.created)
			}
		})
	}
}

func TestInsert_EmptyAdditionsEqualsPrimary(t *testing.T) {
	got, err := Collect(context.Background(), InsertAfterEvery(FromSlice([]int{1, 2, 3}), always[int], Empty[int]()))
	if err != nil {
		t.Fatal(err)
	}
	if !sliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestInsert_MatchOnLastItemAppends(t *testing.T) {
	last := func(n, _ int) (bool, error) { return n == 3, nil }
	got, err := Collect(context.Background(), InsertAfterEvery(FromSlice([]int{1, 2, 3}), last, FromSlice([]int{9})))
	if err != nil {
		t.Fatal(err)
	}
	if !sliceEqual(got, []int{1, 2, 3, 9}) {
		t.Errorf("got %v, want [1 2 3 9]", got)
	}
}

func TestInsert_NoMatchLeavesAdditionsUnconsumed(t *testing.T) {
	additions := &countingSource[int]{items: []int{1}}
	got, err := Collect(context.Background(), InsertAfterFirst(FromSlice([]int{2, 4}), never[int], additions.Pipeline()))
	if err != nil {
		t.Fatal(err)
	}
	if !sliceEqual(got, []int{2, 4}) {
		t.Errorf("got %v, want [2 4]", got)
	}
	if additions.created != 0 {
		t.Errorf("additions started %d times, want 0", additions.created)
	}
}

func TestInsert_IndicesStartAtZero(t *testing.T) {
	for name, op := range map[string]func(*Pipeline[string], func(string, int) (bool, error), *Pipeline[string]) *Pipeline[string]{
		"every": InsertAfterEvery[string],
		"first": InsertAfterFirst[string],
	} {
		t.Run(name, func(t *testing.T) {
			var indices []int
			pred := func(_ string, i int) (bool, error) {
				indices = append(indices, i)
				return false, nil
			}
			_, err := Collect(context.Background(), op(FromSlice([]string{"a", "b", "c"}), pred, FromSlice([]string{"x"})))
			if err != nil {
				t.Fatal(err)
			}
			if !sliceEqual(indices, []int{0, 1, 2}) {
				t.Errorf("indices = %v, want [0 1 2]", indices)
			}
		})
	}
}

func TestInsertAfterEvery_IndicesIgnoreInsertions(t *testing.T) {
	var indices []int
	pred := func(_ string, i int) (bool, error) {
		indices = append(indices, i)
		return true, nil
	}
	got, err := Collect(context.Background(),
		InsertAfterEvery(FromSlice([]string{"a", "b", "c"}), pred, FromSlice([]string{"x", "y"})))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 9 {
		t.Errorf("got %v, want 9 items", got)
	}
	if !sliceEqual(indices, []int{0, 1, 2}) {
		t.Errorf("indices = %v, want [0 1 2]", indices)
	}
}

func TestInsertAfterFirst_StopsEvaluatingAfterMatch(t *testing.T) {
	calls := 0
	pred := func(n, _ int) (bool, error) {
		calls++
		return n == 2, nil
	}
	got, err := Collect(context.Background(), InsertAfterFirst(FromSlice([]int{1, 2, 3, 4}), pred, FromSlice([]int{0})))
	if err != nil {
		t.Fatal(err)
	}
	if !sliceEqual(got, []int{1, 2, 0, 3, 4}) {
		t.Errorf("got %v", got)
	}
	if calls != 2 {
		t.Errorf("predicate called %d times, want 2", calls)
	}
}

func TestInsertAfterEvery_RestartsAdditionsPerMatch(t *testing.T) {
	additions := &countingSource[int]{items: []int{7, 8}}
	got, err := Collect(context.Background(), InsertAfterEvery(FromSlice([]int{1, 3, 5}), isOdd, additions.Pipeline()))
	if err != nil {
		t.Fatal(err)
	}
	want := []int{1, 7, 8, 3, 7, 8, 5, 7, 8}
	if !sliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if additions.created != 3 || additions.closed != 3 {
		t.Errorf("created=%d closed=%d, want 3 each", additions.created, additions.closed)
	}
}

func TestInsert_PredicateRunsAfterItemIsYielded(t *testing.T) {
	var events []string
	pred := func(n, _ int) (bool, error) {
		events = append(events, "pred")
		return true, nil
	}
	ctx := context.Background()
	iter := InsertAfterEvery(FromSlice([]int{1, 2}), pred, FromSlice([]int{0})).Iter(ctx)
	defer iter.Close()

	if v, ok, err := iter.Next(ctx); err != nil || !ok || v != 1 {
		t.Fatalf("first Next: val=%d ok=%v err=%v", v, ok, err)
	}
	if len(events) != 0 {
		t.Fatalf("predicate evaluated before the next pull: %v", events)
	}
	if v, ok, err := iter.Next(ctx); err != nil || !ok || v != 0 {
		t.Fatalf("second Next: val=%d ok=%v err=%v", v, ok, err)
	}
	if len(events) != 1 {
		t.Errorf("predicate calls = %d, want 1", len(events))
	}
}

func TestInsert_PrimaryOnlyPulledAfterInsertion(t *testing.T) {
	primary := &countingSource[int]{items: []int{1, 2}}
	ctx := context.Background()
	iter := InsertAfterEvery(primary.Pipeline(), isOdd, FromSlice([]int{10, 20})).Iter(ctx)
	defer iter.Close()

	for _, want := range []int{1, 10, 20} {
		v, ok, err := iter.Next(ctx)
		if err != nil || !ok || v != want {
			t.Fatalf("Next: val=%d ok=%v err=%v, want %d", v, ok, err, want)
		}
	}
	if primary.pulled != 1 {
		t.Errorf("primary pulled %d values while inserting, want 1", primary.pulled)
	}
}

func TestInsert_PredicateError(t *testing.T) {
	boom := errors.New("predicate failed")
	pred := func(n, _ int) (bool, error) {
		if n == 2 {
			return false, boom
		}
		return false, nil
	}
	primary := &countingSource[int]{items: []int{1, 2, 3}}
	ctx := context.Background()
	iter := InsertAfterEvery(primary.Pipeline(), pred, FromSlice([]int{0})).Iter(ctx)
	defer iter.Close()

	var got []int
	var err error
	for {
		var v int
		var ok bool
		v, ok, err = iter.Next(ctx)
		if err != nil || !ok {
			break
		}
		got = append(got, v)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected predicate error, got %v", err)
	}
	if !sliceEqual(got, []int{1, 2}) {
		t.Errorf("got %v, want [1 2]", got)
	}
	if primary.pulled != 2 {
		t.Errorf("primary pulled %d values, want 2", primary.pulled)
	}
	if _, _, again := iter.Next(ctx); !errors.Is(again, boom) {
		t.Errorf("error should be sticky, got %v", again)
	}
}

func TestInsert_PrimaryError(t *testing.T) {
	boom := errors.New("primary failed")
	primary := &countingSource[int]{items: []int{1, 2, 3}, failAt: 2, err: boom}
	got, err := Collect(context.Background(), InsertAfterEvery(primary.Pipeline(), isOdd, FromSlice([]int{0})))
	if !errors.Is(err, boom) {
		t.Fatalf("expected primary error, got %v", err)
	}
	if !sliceEqual(got, []int{1, 0, 2}) {
		t.Errorf("got %v, want [1 0 2]", got)
	}
}

func TestInsert_AdditionsError(t *testing.T) {
	boom := errors.New("additions failed")
	additions := &countingSource[int]{items: []int{10, 20}, failAt: 1, err: boom}
	primary := &countingSource[int]{items: []int{1, 2, 3}}
	got, err := Collect(context.Background(), InsertAfterEvery(primary.Pipeline(), isOdd, additions.Pipeline()))
	if !errors.Is(err, boom) {
		t.Fatalf("expected additions error, got %v", err)
	}
	if !sliceEqual(got, []int{1, 10}) {
		t.Errorf("got %v, want [1 10]", got)
	}
	if primary.pulled != 1 {
		t.Errorf("primary pulled %d values after failure, want 1", primary.pulled)
	}
	if additions.closed != 1 || primary.closed != 1 {
		t.Errorf("closed additions=%d primary=%d, want 1 each", additions.closed, primary.closed)
	}
}

func TestInsert_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	primary := &countingSource[int]{items: []int{1, 2, 3}}
	iter := InsertAfterEvery(primary.Pipeline(), isOdd, FromSlice([]int{10, 20})).Iter(ctx)
	defer iter.Close()

	if v, ok, err := iter.Next(ctx); err != nil || !ok || v != 1 {
		t.Fatalf("first Next: val=%d ok=%v err=%v", v, ok, err)
	}
	if v, ok, err := iter.Next(ctx); err != nil || !ok || v != 10 {
		t.Fatalf("second Next: val=%d ok=%v err=%v", v, ok, err)
	}
	cancel()
	if _, ok, err := iter.Next(ctx); !errors.Is(err, context.Canceled) || ok {
		t.Fatalf("expected context.Canceled, got ok=%v err=%v", ok, err)
	}
	if primary.pulled != 1 {
		t.Errorf("primary pulled %d values after cancel, want 1", primary.pulled)
	}
}

func TestInsert_CloseMidInsertion(t *testing.T) {
	additions := &countingSource[int]{items: []int{10, 20}}
	primary := &countingSource[int]{items: []int{1, 2}}
	ctx := context.Background()
	iter := InsertAfterEvery(primary.Pipeline(), isOdd, additions.Pipeline()).Iter(ctx)

	for range 2 {
		if _, _, err := iter.Next(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if err := iter.Close(); err != nil {
		t.Fatal(err)
	}
	if additions.closed != 1 {
		t.Errorf("additions closed %d times, want 1", additions.closed)
	}
	if primary.closed != 1 {
		t.Errorf("primary closed %d times, want 1", primary.closed)
	}
}

func TestInsertAfterFirst_LatchIsPerTraversal(t *testing.T) {
	out := InsertAfterFirst(FromSlice([]int{1, 2, 3}), isOdd, FromSlice([]int{0}))
	for i := 0; i < 2; i++ {
		got, err := Collect(context.Background(), out)
		if err != nil {
			t.Fatal(err)
		}
		if !sliceEqual(got, []int{1, 0, 2, 3}) {
			t.Errorf("traversal %d: got %v", i, got)
		}
	}
}

func TestInsert_SuspendingSources(t *testing.T) {
	primary := make(chan int)
	go func() {
		defer close(primary)
		for _, v := range []int{1, 2, 3} {
			primary <- v
		}
	}()
	p := FromFunc(func(context.Context) Iterator[int] { return &chanIter[int]{ch: primary} })
	got, err := Collect(context.Background(), InsertAfterEvery(p, isOdd, FromSlice([]int{0})))
	if err != nil {
		t.Fatal(err)
	}
	if !sliceEqual(got, []int{1, 0, 2, 3, 0}) {
		t.Errorf("got %v, want [1 0 2 3 0]", got)
	}
}

// chanIter blocks on a channel for every value.
type chanIter[T any] struct {
	ch <-chan T
}

func (it *chanIter[T]) Next(ctx context.Context) (T, bool, error) {
	select {
	case v, open := <-it.ch:
		return v, open, nil
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	}
}

func (it *chanIter[T]) Close() error { return nil }
