package lazylist

import (
	"context"
	"fmt"
	"slices"

	apperrors "github.com/kbukum/lazykit/errors"
)

// resolve maps a possibly negative index onto [0, n).
func resolve(i, n int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

// Len materializes everything and returns the length.
func (l *List[T]) Len(ctx context.Context) (int, error) {
	if err := l.ensure(ctx, all); err != nil {
		return 0, err
	}
	return len(l.strict), nil
}

// Bool reports whether the list has at least one element, pulling at most one.
func (l *List[T]) Bool(ctx context.Context) (bool, error) {
	if err := l.ensure(ctx, 0); err != nil {
		return false, err
	}
	return len(l.strict) > 0, nil
}

// IsEmpty is the negation of Bool.
func (l *List[T]) IsEmpty(ctx context.Context) (bool, error) {
	ok, err := l.Bool(ctx)
	return !ok, err
}

// Get returns the element at i. Negative indexes count from the end and
// force full materialization.
func (l *List[T]) Get(ctx context.Context, i int) (T, error) {
	var zero T
	if err := l.ensure(ctx, i); err != nil {
		return zero, err
	}
	idx, ok := resolve(i, len(l.strict))
	if !ok {
		return zero, apperrors.OutOfRange("list", i, len(l.strict))
	}
	return l.strict[idx], nil
}

// Set replaces the element at i.
func (l *List[T]) Set(ctx context.Context, i int, v T) error {
	if err := l.ensure(ctx, i); err != nil {
		return err
	}
	idx, ok := resolve(i, len(l.strict))
	if !ok {
		return apperrors.OutOfRange("list assignment", i, len(l.strict))
	}
	l.strict[idx] = v
	return nil
}

// Delete removes the element at i.
func (l *List[T]) Delete(ctx context.Context, i int) error {
	if err := l.ensure(ctx, i); err != nil {
		return err
	}
	idx, ok := resolve(i, len(l.strict))
	if !ok {
		return apperrors.OutOfRange("list assignment", i, len(l.strict))
	}
	l.strict = slices.Delete(l.strict, idx, idx+1)
	return nil
}

// Slice returns a new slice holding the elements s selects.
func (l *List[T]) Slice(ctx context.Context, s Span) ([]T, error) {
	if err := l.ensureSpan(ctx, s, false); err != nil {
		return nil, err
	}
	pos := s.positions(len(l.strict))
	out := make([]T, len(pos))
	for i, p := range pos {
		out[i] = l.strict[p]
	}
	return out, nil
}

// SetSlice replaces the elements s selects with values. With a step of 1
// the lengths may differ; otherwise they must match.
func (l *List[T]) SetSlice(ctx context.Context, s Span, values []T) error {
	if err := l.ensureSpan(ctx, s, true); err != nil {
		return err
	}
	if s.stepValue() == 1 {
		start, stop, _ := s.indices(len(l.strict))
		stop = max(start, stop)
		l.strict = slices.Replace(l.strict, start, stop, values...)
		return nil
	}
	pos := s.positions(len(l.strict))
	if len(pos) != len(values) {
		return apperrors.InvalidArgument("values", fmt.Sprintf(
			"attempt to assign sequence of size %d to extended slice of size %d", len(values), len(pos)))
	}
	for i, p := range pos {
		l.strict[p] = values[i]
	}
	return nil
}

// DeleteSlice removes the elements s selects.
func (l *List[T]) DeleteSlice(ctx context.Context, s Span) error {
	if err := l.ensureSpan(ctx, s, false); err != nil {
		return err
	}
	if s.stepValue() == 1 {
		start, stop, _ := s.indices(len(l.strict))
		l.strict = slices.Delete(l.strict, start, max(start, stop))
		return nil
	}
	drop := make(map[int]struct{})
	for _, p := range s.positions(len(l.strict)) {
		drop[p] = struct{}{}
	}
	kept := l.strict[:0]
	for i, v := range l.strict {
		if _, ok := drop[i]; !ok {
			kept = append(kept, v)
		}
	}
	clear(l.strict[len(kept):])
	l.strict = kept
	return nil
}

func (l *List[T]) ensureSpan(ctx context.Context, s Span, write bool) error {
	if err := s.validate(); err != nil {
		return err
	}
	need, ok := s.need(write)
	if !ok {
		return nil
	}
	return l.ensure(ctx, need)
}

// Insert places v before index i. Only the elements before the insertion
// point are materialized; a negative i materializes everything.
func (l *List[T]) Insert(ctx context.Context, i int, v T) error {
	switch {
	case i < 0:
		if err := l.ensure(ctx, all); err != nil {
			return err
		}
		i = max(i+len(l.strict), 0)
	case i > 0:
		if err := l.ensure(ctx, i-1); err != nil {
			return err
		}
		i = min(i, len(l.strict))
	}
	l.strict = slices.Insert(l.strict, i, v)
	return nil
}

// Pop removes and returns the last element.
func (l *List[T]) Pop(ctx context.Context) (T, error) {
	return l.PopAt(ctx, -1)
}

// PopAt removes and returns the element at i.
func (l *List[T]) PopAt(ctx context.Context, i int) (T, error) {
	var zero T
	if err := l.ensure(ctx, i); err != nil {
		return zero, err
	}
	if len(l.strict) == 0 {
		return zero, apperrors.Empty("pop")
	}
	idx, ok := resolve(i, len(l.strict))
	if !ok {
		return zero, apperrors.OutOfRange("pop", i, len(l.strict))
	}
	v := l.strict[idx]
	l.strict = slices.Delete(l.strict, idx, idx+1)
	return v, nil
}

// Remove deletes the first occurrence of v.
func (l *List[T]) Remove(ctx context.Context, v T) error {
	if err := l.ensure(ctx, all); err != nil {
		return err
	}
	idx := slices.Index(l.strict, v)
	if idx < 0 {
		return apperrors.ValueNotFound("remove", v)
	}
	l.strict = slices.Delete(l.strict, idx, idx+1)
	return nil
}

// Contains reports whether v is present, stopping at the first match.
func (l *List[T]) Contains(ctx context.Context, v T) (bool, error) {
	return l.ContainsFunc(ctx, func(e T) bool { return e == v })
}

// ContainsFunc reports whether some element satisfies match.
func (l *List[T]) ContainsFunc(ctx context.Context, match func(T) bool) (bool, error) {
	i, err := l.IndexFunc(ctx, match)
	return i >= 0, err
}

// IndexFunc returns the index of the first element satisfying match, or -1.
// Elements are materialized one at a time until a match is found.
func (l *List[T]) IndexFunc(ctx context.Context, match func(T) bool) (int, error) {
	for i := 0; ; i++ {
		if err := l.ensure(ctx, i); err != nil {
			return -1, err
		}
		if i >= len(l.strict) {
			return -1, nil
		}
		if match(l.strict[i]) {
			return i, nil
		}
	}
}

// Index returns the index of the first occurrence of v.
func (l *List[T]) Index(ctx context.Context, v T) (int, error) {
	i, err := l.IndexFunc(ctx, func(e T) bool { return e == v })
	if err != nil {
		return -1, err
	}
	if i < 0 {
		return -1, apperrors.ValueNotFound("index", v)
	}
	return i, nil
}

// IndexRange returns the index of the first occurrence of v within
// [start, stop). Negative bounds count from the end and force full
// materialization.
func (l *List[T]) IndexRange(ctx context.Context, v T, start, stop int) (int, error) {
	if start < 0 || stop < 0 {
		if err := l.ensure(ctx, all); err != nil {
			return -1, err
		}
		n := len(l.strict)
		if start < 0 {
			start = max(start+n, 0)
		}
		if stop < 0 {
			stop = max(stop+n, 0)
		}
	}
	for i := start; i < stop; i++ {
		if err := l.ensure(ctx, i); err != nil {
			return -1, err
		}
		if i >= len(l.strict) {
			break
		}
		if l.strict[i] == v {
			return i, nil
		}
	}
	return -1, apperrors.ValueNotFound("index", v)
}

// Count returns the number of elements equal to v.
func (l *List[T]) Count(ctx context.Context, v T) (int, error) {
	if err := l.ensure(ctx, all); err != nil {
		return 0, err
	}
	n := 0
	for _, e := range l.strict {
		if e == v {
			n++
		}
	}
	return n, nil
}

// Sort materializes everything and sorts it in natural order. Elements
// without a natural order produce a type mismatch and leave the list
// unchanged.
func (l *List[T]) Sort(ctx context.Context) error {
	if err := l.ensure(ctx, all); err != nil {
		return err
	}
	sorted := slices.Clone(l.strict)
	var orderErr error
	slices.SortStableFunc(sorted, func(a, b T) int {
		c, err := naturalOrder(a, b)
		if err != nil && orderErr == nil {
			orderErr = err
		}
		return c
	})
	if orderErr != nil {
		return orderErr
	}
	l.strict = sorted
	return nil
}

// SortFunc materializes everything and sorts it stably by cmp.
func (l *List[T]) SortFunc(ctx context.Context, cmp func(a, b T) int) error {
	if err := l.ensure(ctx, all); err != nil {
		return err
	}
	slices.SortStableFunc(l.strict, cmp)
	return nil
}
