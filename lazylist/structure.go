package lazylist

import (
	"slices"

	"github.com/kbukum/lazykit/pipeline"
)

// Copy returns an independent list with the same contents. Iterator
// sources are forked, so consuming either list never affects the other.
func (l *List[T]) Copy() *List[T] {
	c := l.derive()
	c.strict = slices.Clone(l.strict)
	if l.active != nil {
		forks := l.fork(l.active, 2)
		l.active, c.active = forks[0], forks[1]
	}
	if len(l.pending) > 0 {
		c.pending = make([]*entry[T], len(l.pending))
		for i, e := range l.pending {
			forks := l.fork(e, 2)
			l.pending[i], c.pending[i] = forks[0], forks[1]
		}
	}
	return c
}

// fork splits e into n independent entries. Sequences are copied;
// iterators are teed.
func (l *List[T]) fork(e *entry[T], n int) []*entry[T] {
	out := make([]*entry[T], n)
	if e.kind == KindSequence {
		out[0] = e
		for i := 1; i < n; i++ {
			out[i] = sequenceEntry(slices.Clone(e.items))
		}
		return out
	}
	for i, it := range pipeline.Tee(e.it, n) {
		if i == 0 {
			out[i] = &entry[T]{kind: KindIterator, it: it, id: e.id}
			continue
		}
		out[i] = iteratorEntry(it)
	}
	l.debug("source forked", "forks", n, "from", e.id)
	return out
}

// Concat returns a new list holding l's contents followed by other's.
// Neither operand is changed by later use of the result.
func (l *List[T]) Concat(other Sequence[T]) *List[T] {
	c := l.Copy()
	switch o := other.(type) {
	case *List[T]:
		c.ExtendList(o)
	case pipeline.Slice[T]:
		c.ExtendSlice(o)
	default:
		c.Extend(other.Iter())
	}
	return c
}

// ConcatSlice returns a new list holding l's contents followed by items.
func (l *List[T]) ConcatSlice(items []T) *List[T] {
	c := l.Copy()
	c.ExtendSlice(items)
	return c
}

// Repeat returns a new list holding l's contents n times.
func (l *List[T]) Repeat(n int) *List[T] {
	c := l.Copy()
	c.RepeatInPlace(n)
	return c
}

// RepeatInPlace replaces the contents with n repetitions of themselves
// without materializing anything. Every source, the strict prefix
// included, is forked n ways and the copies are queued repetition by
// repetition. n <= 0 empties the list.
func (l *List[T]) RepeatInPlace(n int) {
	sources := make([]*entry[T], 0, len(l.pending)+2)
	if len(l.strict) > 0 {
		sources = append(sources, sequenceEntry(l.strict))
	}
	if l.active != nil {
		sources = append(sources, l.active)
	}
	sources = append(sources, l.pending...)

	l.Clear()
	if n <= 0 || len(sources) == 0 {
		return
	}
	groups := make([][]*entry[T], n)
	for _, e := range sources {
		for i, f := range l.fork(e, n) {
			groups[i] = append(groups[i], f)
		}
	}
	l.pending = slices.Concat(groups...)
	l.advance()
}

// Reverse reverses the list in place without materializing it. Pending
// sources are queued back to front, each reversed on its own when reached;
// the strict prefix is reversed now and queued last. A source that cannot
// reverse natively is drained in full when it is reached.
func (l *List[T]) Reverse() {
	strict, active, pending := l.strict, l.active, l.pending
	l.Clear()

	queue := make([]*entry[T], 0, len(pending)+2)
	for _, e := range slices.Backward(pending) {
		queue = append(queue, reverseEntry(e))
	}
	if active != nil {
		queue = append(queue, reverseEntry(active))
	}
	if len(strict) > 0 {
		slices.Reverse(strict)
		queue = append(queue, sequenceEntry(strict))
	}
	l.pending = queue
	l.advance()
}

func reverseEntry[T any](e *entry[T]) *entry[T] {
	if e.kind == KindSequence {
		slices.Reverse(e.items)
		return e
	}
	return &entry[T]{kind: KindIterator, it: pipeline.Reversed(e.it), id: e.id}
}
