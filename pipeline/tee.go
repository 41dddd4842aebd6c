package pipeline

import (
	"context"
	"sync"
)

// Tee splits it into n independent iterators that each yield every
// remaining value of it. Values are buffered only while some fork still
// has to read them. Teeing a fork registers new cursors on the fork's
// buffer instead of stacking buffers, and the fork itself is returned as
// the first result. The source is closed when it is exhausted or when the
// last fork is closed.
//
// After Tee the caller must not use it directly except through the
// returned forks. n <= 0 yields nil and n == 1 yields it unchanged.
func Tee[T any](it Iterator[T], n int) []Iterator[T] {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []Iterator[T]{it}
	}

	forks := make([]Iterator[T], 0, n)
	if t, ok := it.(*teeIter[T]); ok {
		t.shared.mu.Lock()
		defer t.shared.mu.Unlock()
		forks = append(forks, t)
		for len(forks) < n {
			forks = append(forks, t.shared.cursor(t.pos))
		}
		return forks
	}

	shared := &teeBuffer[T]{src: it, cursors: make(map[*teeIter[T]]struct{}, n)}
	for range n {
		forks = append(forks, shared.cursor(0))
	}
	return forks
}

// teeBuffer holds the values read from src that at least one cursor has
// not consumed yet. buf[0] is the value at absolute position base.
type teeBuffer[T any] struct {
	mu        sync.Mutex
	src       Iterator[T]
	buf       []T
	base      int
	cursors   map[*teeIter[T]]struct{}
	exhausted bool
	closed    bool
}

func (b *teeBuffer[T]) cursor(pos int) *teeIter[T] {
	c := &teeIter[T]{shared: b, pos: pos}
	b.cursors[c] = struct{}{}
	return c
}

// release drops the buffered prefix every cursor has already passed.
func (b *teeBuffer[T]) release() {
	low := -1
	for c := range b.cursors {
		if low < 0 || c.pos < low {
			low = c.pos
		}
	}
	drop := low - b.base
	if low < 0 {
		drop = len(b.buf)
		low = b.base + drop
	}
	if drop <= 0 {
		return
	}
	if drop >= len(b.buf) {
		b.buf = nil
	} else {
		clear(b.buf[:drop])
		b.buf = b.buf[drop:]
	}
	b.base = low
}

func (b *teeBuffer[T]) closeSource() error {
	if b.closed {
		return nil
	}
	b.closed = true
	return b.src.Close()
}

type teeIter[T any] struct {
	shared *teeBuffer[T]
	pos    int
	closed bool
}

func (it *teeIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	b := it.shared
	b.mu.Lock()
	defer b.mu.Unlock()

	if it.closed {
		return zero, false, nil
	}
	if idx := it.pos - b.base; idx < len(b.buf) {
		val := b.buf[idx]
		it.pos++
		b.release()
		return val, true, nil
	}
	if b.exhausted {
		return zero, false, nil
	}

	val, ok, err := b.src.Next(ctx)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		b.exhausted = true
		return zero, false, b.closeSource()
	}
	b.buf = append(b.buf, val)
	it.pos++
	b.release()
	return val, true, nil
}

func (it *teeIter[T]) Close() error {
	b := it.shared
	b.mu.Lock()
	defer b.mu.Unlock()

	if it.closed {
		return nil
	}
	it.closed = true
	delete(b.cursors, it)
	if len(b.cursors) == 0 {
		b.buf = nil
		return b.closeSource()
	}
	b.release()
	return nil
}
