package pipeline

import (
	"context"
	"iter"
)

// Iterator provides pull-based sequential access to a stream of values.
// An iterator is single-pass: once a value is returned it is never
// produced again.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Reversible is implemented by iterators that can yield their remaining
// values backwards without buffering them first.
type Reversible[T any] interface {
	// Reverse returns an iterator over the remaining values in reverse
	// order and takes ownership of them. ok is false when the iterator
	// cannot reverse natively in its current state; the receiver is then
	// left untouched.
	Reverse() (rev Iterator[T], ok bool)
}

// Slice is a plain ordered sequence usable wherever a re-iterable
// sequence is expected.
type Slice[T any] []T

// Iter returns a fresh iterator over the slice.
func (s Slice[T]) Iter() Iterator[T] {
	return FromSlice(s)
}

// --- Constructors ---

// FromSlice creates an iterator over items. The slice is not copied.
func FromSlice[T any](items []T) Iterator[T] {
	return &sliceIter[T]{items: items, hi: len(items)}
}

// FromSeq adapts a range-over-func sequence. The sequence is not started
// until the first call to Next; Close stops it.
func FromSeq[T any](seq iter.Seq[T]) Iterator[T] {
	return &seqIter[T]{seq: seq}
}

// FromFunc creates an iterator from a next function.
func FromFunc[T any](fn func(ctx context.Context) (T, bool, error)) Iterator[T] {
	return &funcIter[T]{fn: fn}
}

// Empty returns an exhausted iterator.
func Empty[T any]() Iterator[T] {
	return &sliceIter[T]{}
}

// Range yields start, start+1, ..., stop-1.
func Range(start, stop int) Iterator[int] {
	return &rangeIter{next: start, stop: stop, step: 1}
}

// --- Terminals ---

// Collect drains it and returns all values. On error the values read so
// far are returned with it. Collect does not close the iterator.
func Collect[T any](ctx context.Context, it Iterator[T]) ([]T, error) {
	var result []T
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, val)
	}
}

// ForEach pulls all values and calls fn for each, then closes it.
func ForEach[T any](ctx context.Context, it Iterator[T], fn func(context.Context, T) error) error {
	defer it.Close()
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(ctx, val); err != nil {
			return err
		}
	}
}

// --- Internal iterators ---

// sliceIter walks items[lo:hi], from either end.
type sliceIter[T any] struct {
	items    []T
	lo, hi   int
	backward bool
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.lo >= it.hi {
		var zero T
		return zero, false, nil
	}
	if it.backward {
		it.hi--
		return it.items[it.hi], true, nil
	}
	val := it.items[it.lo]
	it.lo++
	return val, true, nil
}

func (it *sliceIter[T]) Reverse() (Iterator[T], bool) {
	rev := &sliceIter[T]{items: it.items, lo: it.lo, hi: it.hi, backward: !it.backward}
	it.lo, it.hi = 0, 0
	return rev, true
}

func (it *sliceIter[T]) Close() error { return nil }

type seqIter[T any] struct {
	seq  iter.Seq[T]
	next func() (T, bool)
	stop func()
	done bool
}

func (it *seqIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if it.next == nil {
		it.next, it.stop = iter.Pull(it.seq)
	}
	val, ok := it.next()
	if !ok {
		it.done = true
		return zero, false, nil
	}
	return val, true, nil
}

func (it *seqIter[T]) Close() error {
	it.done = true
	if it.stop != nil {
		it.stop()
	}
	return nil
}

type funcIter[T any] struct {
	fn   func(ctx context.Context) (T, bool, error)
	done bool
}

func (it *funcIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.done {
		var zero T
		return zero, false, nil
	}
	val, ok, err := it.fn(ctx)
	if err == nil && !ok {
		it.done = true
	}
	return val, ok, err
}

func (it *funcIter[T]) Close() error { return nil }

type rangeIter struct {
	next, stop, step int
}

func (it *rangeIter) Next(_ context.Context) (int, bool, error) {
	if (it.step > 0 && it.next >= it.stop) || (it.step < 0 && it.next <= it.stop) {
		return 0, false, nil
	}
	val := it.next
	it.next += it.step
	return val, true, nil
}

func (it *rangeIter) Reverse() (Iterator[int], bool) {
	if (it.step > 0 && it.next >= it.stop) || (it.step < 0 && it.next <= it.stop) {
		return Empty[int](), true
	}
	// last value actually produced by the forward walk
	n := (it.stop - it.next + it.step - sign(it.step)) / it.step
	last := it.next + (n-1)*it.step
	rev := &rangeIter{next: last, stop: it.next - it.step, step: -it.step}
	it.next = it.stop
	return rev, true
}

func (it *rangeIter) Close() error { return nil }

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}
