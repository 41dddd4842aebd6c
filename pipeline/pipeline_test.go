package pipeline

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestFromSlice_Collect(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	want := []int{1, 2, 3}
	if !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFromSlice_Empty(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestSlice_IterIsRepeatable(t *testing.T) {
	s := Slice[string]{"a", "b"}
	ctx := context.Background()
	first, _ := Collect(ctx, s.Iter())
	second, _ := Collect(ctx, s.Iter())
	if !slices.Equal(first, second) || len(first) != 2 {
		t.Errorf("expected two identical passes, got %v and %v", first, second)
	}
}

func TestRange(t *testing.T) {
	got, err := Collect(context.Background(), Range(4, 7))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{4, 5, 6}) {
		t.Errorf("got %v, want [4 5 6]", got)
	}

	empty, _ := Collect(context.Background(), Range(3, 3))
	if len(empty) != 0 {
		t.Errorf("expected empty range, got %v", empty)
	}
}

func TestFromSeq_Lazy(t *testing.T) {
	started := false
	seq := func(yield func(int) bool) {
		started = true
		for i := range 3 {
			if !yield(i) {
				return
			}
		}
	}
	it := FromSeq(seq)
	if started {
		t.Fatal("sequence should not start before the first pull")
	}
	got, err := Collect(context.Background(), it)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{0, 1, 2}) {
		t.Errorf("got %v", got)
	}
	if err := it.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFromSeq_CloseStopsEarly(t *testing.T) {
	stopped := false
	seq := func(yield func(int) bool) {
		defer func() { stopped = true }()
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	}
	it := FromSeq(seq)
	if _, _, err := it.Next(context.Background()); err != nil {
		t.Fatal(err)
	}
	it.Close()
	if !stopped {
		t.Error("expected Close to stop the sequence")
	}
	if _, ok, _ := it.Next(context.Background()); ok {
		t.Error("expected no values after Close")
	}
}

func TestFromSeq_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := FromSeq(slices.Values([]int{1})).Next(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFromFunc(t *testing.T) {
	n := 0
	it := FromFunc(func(_ context.Context) (int, bool, error) {
		if n >= 3 {
			return 0, false, nil
		}
		n++
		return n, true, nil
	})
	got, err := Collect(context.Background(), it)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v", got)
	}
}

func TestEmpty(t *testing.T) {
	if _, ok, err := Empty[int]().Next(context.Background()); ok || err != nil {
		t.Errorf("expected exhausted iterator, got ok=%v err=%v", ok, err)
	}
}

func TestCollect_PartialOnError(t *testing.T) {
	boom := errors.New("boom")
	it := Concat(FromSlice([]int{1, 2}), failing[int](boom))
	got, err := Collect(context.Background(), it)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if !intSliceEqual(got, []int{1, 2}) {
		t.Errorf("expected partial values, got %v", got)
	}
}

func TestForEach(t *testing.T) {
	src := &closeTracker[int]{Iterator: FromSlice([]int{1, 2, 3})}
	sum := 0
	err := ForEach(context.Background(), src, func(_ context.Context, n int) error {
		sum += n
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if sum != 6 {
		t.Errorf("expected sum 6, got %d", sum)
	}
	if src.closed != 1 {
		t.Errorf("expected ForEach to close the iterator once, got %d", src.closed)
	}
}

func TestForEach_Error(t *testing.T) {
	boom := errors.New("stop")
	err := ForEach(context.Background(), FromSlice([]int{1, 2}), func(_ context.Context, _ int) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected stop error, got %v", err)
	}
}

func TestMap(t *testing.T) {
	doubled := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})
	got, err := Collect(context.Background(), doubled)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{2, 4, 6}) {
		t.Errorf("got %v", got)
	}
}

func TestMap_Error(t *testing.T) {
	boom := errors.New("map failed")
	it := Map(FromSlice([]int{1}), func(_ context.Context, _ int) (int, error) {
		return 0, boom
	})
	if _, _, err := it.Next(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected map error, got %v", err)
	}
}

func TestFilter(t *testing.T) {
	evens := Filter(Range(0, 7), func(n int) bool { return n%2 == 0 })
	got, _ := Collect(context.Background(), evens)
	if !intSliceEqual(got, []int{0, 2, 4, 6}) {
		t.Errorf("got %v", got)
	}
}

func TestTake(t *testing.T) {
	pulled := 0
	src := Tap(Range(0, 100), func(_ context.Context, _ int) error {
		pulled++
		return nil
	})
	got, _ := Collect(context.Background(), Take(src, 3))
	if !intSliceEqual(got, []int{0, 1, 2}) {
		t.Errorf("got %v", got)
	}
	if pulled != 3 {
		t.Errorf("expected exactly 3 pulls, got %d", pulled)
	}
}

func TestTap_Error(t *testing.T) {
	boom := errors.New("tap failed")
	it := Tap(FromSlice([]int{1}), func(_ context.Context, _ int) error { return boom })
	if _, _, err := it.Next(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected tap error, got %v", err)
	}
}

func TestConcat(t *testing.T) {
	a := &closeTracker[int]{Iterator: FromSlice([]int{1, 2})}
	b := &closeTracker[int]{Iterator: FromSlice([]int{3})}
	it := Concat[int](a, Empty[int](), b)
	got, _ := Collect(context.Background(), it)
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v", got)
	}
	it.Close()
	if a.closed != 1 || b.closed != 1 {
		t.Errorf("expected all parts closed, got a=%d b=%d", a.closed, b.closed)
	}
}

func TestPaginate(t *testing.T) {
	pages := map[string]struct {
		items []int
		next  string
	}{
		"":   {[]int{1, 2}, "p2"},
		"p2": {nil, "p3"},
		"p3": {[]int{3}, ""},
	}
	var fetched []string
	it := Paginate(func(_ context.Context, token string) ([]int, string, error) {
		fetched = append(fetched, token)
		p := pages[token]
		return p.items, p.next, nil
	})

	ctx := context.Background()
	if v, _, _ := it.Next(ctx); v != 1 {
		t.Fatalf("expected 1, got %d", v)
	}
	if len(fetched) != 1 {
		t.Errorf("expected one fetch after first value, got %v", fetched)
	}

	rest, err := Collect(ctx, it)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(rest, []int{2, 3}) {
		t.Errorf("got %v", rest)
	}
	if !slices.Equal(fetched, []string{"", "p2", "p3"}) {
		t.Errorf("unexpected fetch order %v", fetched)
	}
}

func TestPaginate_RetriesSameToken(t *testing.T) {
	calls := 0
	it := Paginate(func(_ context.Context, token string) ([]string, string, error) {
		calls++
		if calls == 1 {
			return nil, "", errors.New("unavailable")
		}
		return []string{"x:" + token}, "", nil
	})
	ctx := context.Background()
	if _, _, err := it.Next(ctx); err == nil {
		t.Fatal("expected first fetch to fail")
	}
	v, ok, err := it.Next(ctx)
	if err != nil || !ok || v != "x:" {
		t.Errorf("expected retry with empty token, got %q ok=%v err=%v", v, ok, err)
	}
}

// --- helpers ---

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type closeTracker[T any] struct {
	Iterator[T]
	closed int
}

func (c *closeTracker[T]) Close() error {
	c.closed++
	return c.Iterator.Close()
}

func failing[T any](err error) Iterator[T] {
	return FromFunc(func(_ context.Context) (T, bool, error) {
		var zero T
		return zero, false, err
	})
}
