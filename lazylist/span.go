package lazylist

import (
	"strconv"
	"strings"

	apperrors "github.com/kbukum/lazykit/errors"
)

// Span selects elements by an optional start, an optional exclusive stop
// and a step. Negative bounds count from the end. The zero Span selects
// the whole list.
type Span struct {
	start, stop       int
	hasStart, hasStop bool
	step              int
	hasStep           bool
}

// Whole selects every element.
func Whole() Span { return Span{} }

// Between selects [start, stop).
func Between(start, stop int) Span {
	return Span{start: start, stop: stop, hasStart: true, hasStop: true}
}

// StartAt selects everything from start on.
func StartAt(start int) Span {
	return Span{start: start, hasStart: true}
}

// Until selects everything before stop.
func Until(stop int) Span {
	return Span{stop: stop, hasStop: true}
}

// Step returns a copy of s with the given step. A zero step is rejected
// when the span is used.
func (s Span) Step(n int) Span {
	s.step, s.hasStep = n, true
	return s
}

func (s Span) stepValue() int {
	if !s.hasStep {
		return 1
	}
	return s.step
}

func (s Span) validate() error {
	if s.stepValue() == 0 {
		return apperrors.InvalidArgument("step", "slice step cannot be zero")
	}
	return nil
}

// need returns the ensure requirement for reading s. write widens it so
// that an insertion point past stop is materialized too.
func (s Span) need(write bool) (need int, pull bool) {
	if (s.hasStart && s.start < 0) || (s.hasStop && s.stop < 0) {
		return all, true
	}
	if s.stepValue() < 0 {
		if !s.hasStart {
			return all, true
		}
		return s.start, true
	}
	if !s.hasStop {
		return all, true
	}
	bound := s.stop
	if write && s.hasStart && s.start > bound {
		bound = s.start
	}
	if bound == 0 {
		return 0, false
	}
	return bound - 1, true
}

// indices resolves s against a sequence of length n.
func (s Span) indices(n int) (start, stop, step int) {
	step = s.stepValue()
	lower, upper := 0, n
	if step < 0 {
		lower, upper = -1, n-1
	}
	clamp := func(v int) int {
		if v < 0 {
			v += n
			if v < 0 {
				return lower
			}
			return v
		}
		return min(v, upper)
	}

	if step > 0 {
		start, stop = lower, upper
	} else {
		start, stop = upper, lower
	}
	if s.hasStart {
		start = clamp(s.start)
	}
	if s.hasStop {
		stop = clamp(s.stop)
	}
	return start, stop, step
}

// positions lists the indexes s selects in a sequence of length n.
func (s Span) positions(n int) []int {
	start, stop, step := s.indices(n)
	var out []int
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, i)
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, i)
		}
	}
	return out
}

// String renders s in slice notation, e.g. "[1:5:2]".
func (s Span) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if s.hasStart {
		b.WriteString(strconv.Itoa(s.start))
	}
	b.WriteByte(':')
	if s.hasStop {
		b.WriteString(strconv.Itoa(s.stop))
	}
	if s.hasStep {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(s.step))
	}
	b.WriteByte(']')
	return b.String()
}
