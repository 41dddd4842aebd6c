package lazylist

import (
	"context"
	"iter"

	"github.com/kbukum/lazykit/pipeline"
)

// Iter returns a cursor over the list. The cursor is a live view: it holds
// only a position and materializes one element per step, so changes made
// to the list while it is in use are visible to it.
func (l *List[T]) Iter() pipeline.Iterator[T] {
	return &cursor[T]{list: l}
}

type cursor[T comparable] struct {
	list *List[T]
	pos  int
}

func (c *cursor[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := c.list.ensure(ctx, c.pos); err != nil {
		return zero, false, err
	}
	if c.pos >= len(c.list.strict) {
		return zero, false, nil
	}
	v := c.list.strict[c.pos]
	c.pos++
	return v, true, nil
}

func (c *cursor[T]) Close() error { return nil }

// All returns a range-over-func view of the list. A source failure is
// yielded once as the final pair.
func (l *List[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for i := 0; ; i++ {
			if err := l.ensure(ctx, i); err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if i >= len(l.strict) || !yield(l.strict[i], nil) {
				return
			}
		}
	}
}
