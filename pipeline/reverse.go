package pipeline

import "context"

// Reversed returns an iterator over the remaining values of it in reverse
// order. Nothing is read from it until the first call to Next. Sources
// implementing Reversible are reversed natively; any other source is
// drained into memory on that first call and closed once exhausted.
//
// If draining fails the values read so far are kept and the next call
// resumes the drain.
func Reversed[T any](it Iterator[T]) Iterator[T] {
	return &reversedIter[T]{src: it}
}

type reversedIter[T any] struct {
	src     Iterator[T]
	pending []T
	inner   Iterator[T]
}

func (it *reversedIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.inner == nil {
		if err := it.start(ctx); err != nil {
			var zero T
			return zero, false, err
		}
	}
	return it.inner.Next(ctx)
}

func (it *reversedIter[T]) start(ctx context.Context) error {
	if it.pending == nil {
		if r, ok := it.src.(Reversible[T]); ok {
			if rev, ok := r.Reverse(); ok {
				it.inner = rev
				return nil
			}
		}
	}
	for {
		val, ok, err := it.src.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		it.pending = append(it.pending, val)
	}
	if err := it.src.Close(); err != nil {
		return err
	}
	it.inner = &sliceIter[T]{items: it.pending, hi: len(it.pending), backward: true}
	return nil
}

// Reverse undoes the reversal without reading anything when the wrapped
// source has not been touched yet.
func (it *reversedIter[T]) Reverse() (Iterator[T], bool) {
	if it.inner == nil && it.pending == nil {
		src := it.src
		it.src, it.inner = Empty[T](), Empty[T]()
		return src, true
	}
	if r, ok := it.inner.(Reversible[T]); ok {
		return r.Reverse()
	}
	return nil, false
}

func (it *reversedIter[T]) Close() error {
	if it.inner != nil {
		return it.inner.Close()
	}
	return it.src.Close()
}
