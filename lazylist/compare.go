package lazylist

import (
	"cmp"
	"context"
	"reflect"

	apperrors "github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/pipeline"
)

// Sequence is anything that can be iterated from the start on demand.
// *List and pipeline.Slice implement it.
type Sequence[T any] interface {
	Iter() pipeline.Iterator[T]
}

// sequenceIter returns an iterator over other when it is a sequence. A nil
// *List is not a sequence.
func sequenceIter[T comparable](other any) (pipeline.Iterator[T], bool) {
	switch o := other.(type) {
	case *List[T]:
		if o == nil {
			return nil, false
		}
		return o.Iter(), true
	case Sequence[T]:
		return o.Iter(), true
	case []T:
		return pipeline.FromSlice(o), true
	}
	return nil, false
}

// Equal reports whether other holds the same elements in the same order.
// other may be a Sequence or a slice; any other value is never equal.
// Only as many elements are pulled as needed to find a difference.
func (l *List[T]) Equal(ctx context.Context, other any) (bool, error) {
	it, ok := sequenceIter[T](other)
	if !ok {
		return false, nil
	}
	c, err := compareIters(ctx, l.Iter(), it, nil)
	return c == 0, err
}

// Compare orders l and other lexicographically. Elements are ordered
// naturally; other must be a Sequence or a slice.
func (l *List[T]) Compare(ctx context.Context, other any) (int, error) {
	it, ok := sequenceIter[T](other)
	if !ok {
		return 0, apperrors.TypeMismatch("comparison", l, other)
	}
	return compareIters(ctx, l.Iter(), it, naturalOrder[T])
}

// CompareFunc orders l and other lexicographically using cmp for elements.
// A nil other is a TypeMismatch.
func (l *List[T]) CompareFunc(ctx context.Context, other Sequence[T], cmp func(a, b T) int) (int, error) {
	it, ok := sequenceIter[T](other)
	if !ok {
		return 0, apperrors.TypeMismatch("comparison", l, other)
	}
	return compareIters(ctx, l.Iter(), it, func(a, b T) (int, error) {
		return cmp(a, b), nil
	})
}

// Less reports whether l orders before other.
func (l *List[T]) Less(ctx context.Context, other any) (bool, error) {
	c, err := l.Compare(ctx, other)
	return err == nil && c < 0, err
}

// LessEqual reports whether l orders before or equal to other.
func (l *List[T]) LessEqual(ctx context.Context, other any) (bool, error) {
	c, err := l.Compare(ctx, other)
	return err == nil && c <= 0, err
}

// Greater reports whether l orders after other.
func (l *List[T]) Greater(ctx context.Context, other any) (bool, error) {
	c, err := l.Compare(ctx, other)
	return err == nil && c > 0, err
}

// GreaterEqual reports whether l orders after or equal to other.
func (l *List[T]) GreaterEqual(ctx context.Context, other any) (bool, error) {
	c, err := l.Compare(ctx, other)
	return err == nil && c >= 0, err
}

// compareIters walks a and b in step. A nil order only detects
// differences, reporting any mismatch as 1.
func compareIters[T comparable](ctx context.Context, a, b pipeline.Iterator[T], order func(x, y T) (int, error)) (int, error) {
	for {
		x, okA, err := a.Next(ctx)
		if err != nil {
			return 0, err
		}
		y, okB, err := b.Next(ctx)
		if err != nil {
			return 0, err
		}
		switch {
		case !okA && !okB:
			return 0, nil
		case !okA:
			return -1, nil
		case !okB:
			return 1, nil
		case x == y:
			continue
		case order == nil:
			return 1, nil
		}
		return order(x, y)
	}
}

// naturalOrder compares values with a Compare method or of an ordered
// kind. Mixed or unordered kinds are a type mismatch.
func naturalOrder[T any](a, b T) (int, error) {
	if c, ok := any(a).(interface{ Compare(T) int }); ok {
		return c.Compare(b), nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	ka, kb := kindGroup(va), kindGroup(vb)
	if ka == unordered || ka != kb {
		return 0, apperrors.TypeMismatch("ordering", a, b)
	}
	switch ka {
	case signed:
		return cmp.Compare(va.Int(), vb.Int()), nil
	case unsigned:
		return cmp.Compare(va.Uint(), vb.Uint()), nil
	case float:
		return cmp.Compare(va.Float(), vb.Float()), nil
	default:
		return cmp.Compare(va.String(), vb.String()), nil
	}
}

type group int

const (
	unordered group = iota
	signed
	unsigned
	float
	text
)

func kindGroup(v reflect.Value) group {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signed
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unsigned
	case reflect.Float32, reflect.Float64:
		return float
	case reflect.String:
		return text
	}
	return unordered
}
