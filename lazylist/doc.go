// Package lazylist provides List, a mutable indexable sequence that is
// filled on demand from iterators.
//
// A List keeps three parts: a strict prefix of elements already produced,
// at most one active iterator being drawn from, and a queue of pending
// sources (in-memory sequences or iterators). Every operation first
// materializes exactly what it needs and then works on the strict prefix:
//
//   - Get(3) pulls until index 3 exists
//   - Bool pulls at most one element
//   - Len, Count, Sort and negative indexes pull everything
//   - Slice pulls up to the furthest index the span can reach
//
// Copy, Repeat and Reverse restructure the sources without pulling. Copy
// and Repeat fork iterators with pipeline.Tee; Reverse reverses each
// source on its own when it is reached.
//
// Source failures are returned unchanged and leave every element pulled
// before the failure in place. Exhausted sources are closed; sources that
// are dropped (Clear, RepeatInPlace(0)) are not.
//
// A List is not safe for concurrent use. Iterators returned by Iter are
// live views of the list.
//
//	l := lazylist.From(pipeline.Range(4, 7))
//	l.ExtendSlice([]int{7, 8})
//	v, err := l.Get(ctx, 0) // pulls a single value
package lazylist
