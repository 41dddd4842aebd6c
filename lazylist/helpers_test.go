package lazylist

import (
	"context"
	"errors"

	"github.com/kbukum/lazykit/pipeline"
)

var errBoom = errors.New("boom")

// counting counts pulls and closes on a wrapped iterator.
type counting[T any] struct {
	pipeline.Iterator[T]
	pulled int
	closed int
}

func newCounting[T any](it pipeline.Iterator[T]) *counting[T] {
	return &counting[T]{Iterator: it}
}

func (p *counting[T]) Next(ctx context.Context) (T, bool, error) {
	v, ok, err := p.Iterator.Next(ctx)
	if ok {
		p.pulled++
	}
	return v, ok, err
}

func (p *counting[T]) Close() error {
	p.closed++
	return p.Iterator.Close()
}

// failAfter yields items and then fails with err on every further pull.
func failAfter[T any](err error, items ...T) pipeline.Iterator[T] {
	fail := pipeline.FromFunc(func(_ context.Context) (T, bool, error) {
		var zero T
		return zero, false, err
	})
	return pipeline.Concat(pipeline.FromSlice(items), fail)
}

// mixed builds 0..9 out of five different sources.
func mixed() *List[int] {
	l := FromSlice([]int{0, 1})
	l.Extend(pipeline.Range(2, 5))
	l.ExtendSlice([]int{5})
	l.ExtendSeq(func(yield func(int) bool) {
		for i := 6; i < 9; i++ {
			if !yield(i) {
				return
			}
		}
	})
	l.Append(9)
	return l
}

func flat(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func collect[T comparable](l *List[T]) []T {
	out, err := pipeline.Collect(context.Background(), l.Iter())
	if err != nil {
		panic(err)
	}
	return out
}
