package pipeline

import (
	"context"
	"errors"
	"testing"
)

func TestReversed_Slice(t *testing.T) {
	got, _ := Collect(context.Background(), Reversed(FromSlice([]int{1, 2, 3})))
	if !intSliceEqual(got, []int{3, 2, 1}) {
		t.Errorf("got %v", got)
	}
}

func TestReversed_PartiallyConsumedSlice(t *testing.T) {
	ctx := context.Background()
	src := FromSlice([]int{1, 2, 3, 4})
	src.Next(ctx)
	got, _ := Collect(ctx, Reversed(src))
	if !intSliceEqual(got, []int{4, 3, 2}) {
		t.Errorf("got %v", got)
	}
	if _, ok, _ := src.Next(ctx); ok {
		t.Error("reversal should take ownership of the remaining values")
	}
}

func TestReversed_Range(t *testing.T) {
	ctx := context.Background()
	r := Range(4, 9)
	r.Next(ctx)
	got, _ := Collect(ctx, Reversed(r))
	if !intSliceEqual(got, []int{8, 7, 6, 5}) {
		t.Errorf("got %v", got)
	}

	stepped := &rangeIter{next: 0, stop: 5, step: 2}
	got, _ = Collect(ctx, Reversed[int](stepped))
	if !intSliceEqual(got, []int{4, 2, 0}) {
		t.Errorf("stepped range got %v", got)
	}
}

func TestReversed_IsLazy(t *testing.T) {
	pulls := 0
	src := Tap(Range(0, 3), func(_ context.Context, _ int) error {
		pulls++
		return nil
	})
	rev := Reversed(src)
	if pulls != 0 {
		t.Fatal("nothing should be read before the first pull")
	}
	got, _ := Collect(context.Background(), rev)
	if !intSliceEqual(got, []int{2, 1, 0}) {
		t.Errorf("got %v", got)
	}
	if pulls != 3 {
		t.Errorf("expected 3 pulls, got %d", pulls)
	}
}

func TestReversed_Twice(t *testing.T) {
	pulls := 0
	src := Tap(Range(0, 3), func(_ context.Context, _ int) error {
		pulls++
		return nil
	})
	rev := Reversed(src)
	back := Reversed(rev)
	v, _, _ := back.Next(context.Background())
	if v != 0 || pulls != 1 {
		t.Errorf("double reversal should stream, got %d after %d pulls", v, pulls)
	}
}

func TestReversed_ClosesDrainedSource(t *testing.T) {
	src := &closeTracker[int]{Iterator: FromFunc(func(_ context.Context) (int, bool, error) {
		return 0, false, nil
	})}
	Collect(context.Background(), Reversed[int](src))
	if src.closed != 1 {
		t.Errorf("expected drained source closed once, got %d", src.closed)
	}
}

func TestReversed_ErrorResumes(t *testing.T) {
	boom := errors.New("flaky")
	calls := 0
	src := FromFunc(func(_ context.Context) (int, bool, error) {
		calls++
		switch calls {
		case 1, 3:
			return calls, true, nil
		case 2:
			return 0, false, boom
		}
		return 0, false, nil
	})
	rev := Reversed(src)
	ctx := context.Background()
	if _, _, err := rev.Next(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected flaky error, got %v", err)
	}
	got, err := Collect(ctx, rev)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{3, 1}) {
		t.Errorf("expected values kept across the failure, got %v", got)
	}
}
