package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestTee_IndependentForks(t *testing.T) {
	ctx := context.Background()
	forks := Tee(Range(0, 4), 3)
	if len(forks) != 3 {
		t.Fatalf("expected 3 forks, got %d", len(forks))
	}

	first, _ := Collect(ctx, forks[0])
	if !intSliceEqual(first, []int{0, 1, 2, 3}) {
		t.Errorf("fork 0 got %v", first)
	}
	v, _, _ := forks[1].Next(ctx)
	if v != 0 {
		t.Errorf("fork 1 should start at 0, got %d", v)
	}
	rest, _ := Collect(ctx, forks[1])
	if !intSliceEqual(rest, []int{1, 2, 3}) {
		t.Errorf("fork 1 got %v", rest)
	}
	third, _ := Collect(ctx, forks[2])
	if !intSliceEqual(third, []int{0, 1, 2, 3}) {
		t.Errorf("fork 2 got %v", third)
	}
}

func TestTee_PullsSourceOnce(t *testing.T) {
	pulls := 0
	src := Tap(Range(0, 3), func(_ context.Context, _ int) error {
		pulls++
		return nil
	})
	forks := Tee(src, 2)
	ctx := context.Background()
	Collect(ctx, forks[0])
	Collect(ctx, forks[1])
	if pulls != 3 {
		t.Errorf("expected each value pulled from the source once, got %d pulls", pulls)
	}
}

func TestTee_ReleasesConsumedValues(t *testing.T) {
	ctx := context.Background()
	forks := Tee(Range(0, 10), 2)
	Collect(ctx, Take(forks[0], 5))
	shared := forks[0].(*teeIter[int]).shared
	if len(shared.buf) != 5 {
		t.Errorf("expected 5 values buffered for the lagging fork, got %d", len(shared.buf))
	}
	Collect(ctx, Take(forks[1], 5))
	if len(shared.buf) != 0 {
		t.Errorf("expected buffer released once both forks passed, got %d", len(shared.buf))
	}
	forks[1].Close()
	Collect(ctx, forks[0])
	if len(shared.buf) != 0 {
		t.Errorf("expected no buffering with a single live fork, got %d", len(shared.buf))
	}
}

func TestTee_OfForkSharesBuffer(t *testing.T) {
	ctx := context.Background()
	forks := Tee(Range(0, 5), 2)
	forks[0].Next(ctx)
	forks[0].Next(ctx)

	again := Tee(forks[0], 3)
	if again[0] != forks[0] {
		t.Error("expected the fork itself as the first result")
	}
	if again[1].(*teeIter[int]).shared != forks[0].(*teeIter[int]).shared {
		t.Error("expected new forks on the same buffer")
	}
	for i, f := range again {
		got, _ := Collect(ctx, f)
		if !intSliceEqual(got, []int{2, 3, 4}) {
			t.Errorf("fork %d got %v", i, got)
		}
	}
	all, _ := Collect(ctx, forks[1])
	if !intSliceEqual(all, []int{0, 1, 2, 3, 4}) {
		t.Errorf("untouched fork got %v", all)
	}
}

func TestTee_ClosesSource(t *testing.T) {
	t.Run("on exhaustion", func(t *testing.T) {
		src := &closeTracker[int]{Iterator: Range(0, 2)}
		forks := Tee[int](src, 2)
		Collect(context.Background(), forks[0])
		if src.closed != 1 {
			t.Errorf("expected source closed once, got %d", src.closed)
		}
		Collect(context.Background(), forks[1])
		if src.closed != 1 {
			t.Errorf("expected no second close, got %d", src.closed)
		}
	})
	t.Run("when last fork closes", func(t *testing.T) {
		src := &closeTracker[int]{Iterator: Range(0, 2)}
		forks := Tee[int](src, 2)
		forks[0].Close()
		if src.closed != 0 {
			t.Error("source closed while a fork is still live")
		}
		forks[1].Close()
		if src.closed != 1 {
			t.Errorf("expected source closed once, got %d", src.closed)
		}
	})
}

func TestTee_Degenerate(t *testing.T) {
	src := Range(0, 1)
	if got := Tee(src, 0); got != nil {
		t.Errorf("expected nil for n=0, got %v", got)
	}
	one := Tee(src, 1)
	if len(one) != 1 || one[0] != src {
		t.Error("expected the source itself for n=1")
	}
}

func TestTee_ErrorReachesPullingFork(t *testing.T) {
	boom := errors.New("boom")
	forks := Tee(Concat(FromSlice([]int{1}), failing[int](boom)), 2)
	ctx := context.Background()
	got, err := Collect(ctx, forks[0])
	if !errors.Is(err, boom) || !intSliceEqual(got, []int{1}) {
		t.Errorf("expected [1] and boom, got %v %v", got, err)
	}
	v, ok, err := forks[1].Next(ctx)
	if err != nil || !ok || v != 1 {
		t.Errorf("expected buffered value for the other fork, got %d %v %v", v, ok, err)
	}
}

func TestTee_ConcurrentForks(t *testing.T) {
	forks := Tee(Range(0, 1000), 4)
	var wg sync.WaitGroup
	sums := make([]int, len(forks))
	for i, f := range forks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, _ := Collect(context.Background(), f)
			for _, v := range got {
				sums[i] += v
			}
		}()
	}
	wg.Wait()
	for i, s := range sums {
		if s != 499500 {
			t.Errorf("fork %d sum = %d", i, s)
		}
	}
}
