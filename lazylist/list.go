package lazylist

import (
	"context"
	"iter"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/pipeline"
)

// all is the ensure requirement meaning "pull everything".
const all = -1

// SourceKind tells how a pending source is consumed.
type SourceKind int

const (
	// KindSequence sources are spliced into the strict prefix whole.
	KindSequence SourceKind = iota
	// KindIterator sources are drawn from one value at a time.
	KindIterator
)

func (k SourceKind) String() string {
	if k == KindSequence {
		return "sequence"
	}
	return "iterator"
}

// entry is one pending or active source.
type entry[T any] struct {
	kind  SourceKind
	items []T
	it    pipeline.Iterator[T]
	id    string
}

func sequenceEntry[T any](items []T) *entry[T] {
	return &entry[T]{kind: KindSequence, items: items}
}

func iteratorEntry[T any](it pipeline.Iterator[T]) *entry[T] {
	return &entry[T]{kind: KindIterator, it: it, id: newSourceID()}
}

func newSourceID() string {
	return uuid.NewString()[:8]
}

// List is a mutable sequence whose tail is produced on demand from
// iterators. Elements already produced live in a strict prefix; the rest
// sit in one active iterator followed by a queue of pending sources.
//
// A List is not safe for concurrent use. The zero value is an empty list.
type List[T comparable] struct {
	strict  []T
	active  *entry[T]
	pending []*entry[T]

	opts options
}

// New returns an empty list.
func New[T comparable](opts ...Option) *List[T] {
	l := &List[T]{}
	for _, opt := range opts {
		opt(&l.opts)
	}
	return l
}

// From returns a list over the values it will produce. Nothing is pulled
// until an operation needs it.
func From[T comparable](it pipeline.Iterator[T], opts ...Option) *List[T] {
	l := New[T](opts...)
	l.Extend(it)
	return l
}

// FromSlice returns a fully strict list holding a copy of items.
func FromSlice[T comparable](items []T, opts ...Option) *List[T] {
	l := New[T](opts...)
	l.ExtendSlice(items)
	return l
}

// FromSeq returns a list over seq, started only when a value is needed.
func FromSeq[T comparable](seq iter.Seq[T], opts ...Option) *List[T] {
	return From(pipeline.FromSeq(seq), opts...)
}

// derive returns an empty list sharing l's options.
func (l *List[T]) derive() *List[T] {
	return &List[T]{opts: l.opts}
}

// Strict reports whether every source has been consumed.
func (l *List[T]) Strict() bool {
	return l.active == nil && len(l.pending) == 0
}

// Materialized returns the number of elements produced so far.
func (l *List[T]) Materialized() int {
	return len(l.strict)
}

// Append adds v at the end without touching any source.
func (l *List[T]) Append(v T) {
	if l.Strict() {
		l.strict = append(l.strict, v)
		return
	}
	if n := len(l.pending); n > 0 && l.pending[n-1].kind == KindSequence {
		last := l.pending[n-1]
		last.items = append(last.items, v)
		return
	}
	l.addSource(sequenceEntry([]T{v}))
}

// Extend queues it behind the current contents and takes ownership of it.
func (l *List[T]) Extend(it pipeline.Iterator[T]) {
	if it == nil {
		return
	}
	l.addSource(iteratorEntry(it))
}

// ExtendSlice queues a copy of items.
func (l *List[T]) ExtendSlice(items []T) {
	l.addSource(sequenceEntry(slices.Clone(items)))
}

// ExtendSeq queues seq; it is started only when one of its values is needed.
func (l *List[T]) ExtendSeq(seq iter.Seq[T]) {
	l.Extend(pipeline.FromSeq(seq))
}

// ExtendList queues the contents of other. other is forked, so later
// changes to either list do not affect the other.
func (l *List[T]) ExtendList(other *List[T]) {
	if other.Strict() {
		l.ExtendSlice(other.strict)
		return
	}
	l.Extend(other.Copy().Iter())
}

// Clear drops every element and source. Dropped sources are not consumed
// or closed.
func (l *List[T]) Clear() {
	l.strict, l.active, l.pending = nil, nil, nil
}

func (l *List[T]) addSource(e *entry[T]) {
	l.pending = append(l.pending, e)
	if l.active == nil {
		l.advance()
	}
}

// advance drops the active source and moves along the pending queue,
// splicing sequences into the strict prefix, until an iterator becomes
// active or the queue is empty.
func (l *List[T]) advance() {
	l.active = nil
	for l.active == nil && len(l.pending) > 0 {
		e := l.pending[0]
		l.pending[0] = nil
		l.pending = l.pending[1:]
		if e.kind == KindSequence {
			l.strict = append(l.strict, e.items...)
			continue
		}
		l.active = e
		l.opts.observer().SourceActivated(e.kind)
		l.debug("source activated", logger.FieldSource, e.id)
	}
	if len(l.pending) == 0 {
		l.pending = nil
	}
}

// ensure pulls from the sources until the strict prefix holds index need,
// or everything when need is negative. Running out of values is not an
// error. A failing source leaves every value pulled before it in place.
func (l *List[T]) ensure(ctx context.Context, need int) error {
	if l.active == nil || (need >= 0 && need < len(l.strict)) {
		return nil
	}
	done := l.opts.observer().Materialize(ctx, need)
	before := len(l.strict)
	err := l.pull(ctx, need)
	done(len(l.strict)-before, err)
	if err == nil && need < 0 {
		l.debug("materialized", logger.FieldPulled, len(l.strict)-before, logger.FieldStrict, len(l.strict))
	}
	return err
}

func (l *List[T]) pull(ctx context.Context, need int) error {
	for l.active != nil && (need < 0 || len(l.strict) <= need) {
		if err := ctx.Err(); err != nil {
			return err
		}
		v, ok, err := l.active.it.Next(ctx)
		if err != nil {
			l.debug("source failed", logger.FieldSource, l.active.id, logger.FieldError, err.Error())
			return err
		}
		if !ok {
			l.exhaust()
			continue
		}
		l.strict = append(l.strict, v)
	}
	return nil
}

func (l *List[T]) exhaust() {
	e := l.active
	if err := e.it.Close(); err != nil {
		l.log().Warn("closing exhausted source failed", logger.Fields(logger.FieldSource, e.id, logger.FieldError, err.Error()))
	}
	l.debug("source exhausted", logger.FieldSource, e.id)
	l.advance()
}

func (l *List[T]) log() *logger.Logger {
	if l.opts.log == nil {
		return nopLogger
	}
	return l.opts.log
}

func (l *List[T]) debug(msg string, kvs ...interface{}) {
	log := l.log()
	if !log.Enabled(zerolog.DebugLevel) {
		return
	}
	fields := logger.Fields(kvs...)
	if l.opts.name != "" {
		fields[logger.FieldList] = l.opts.name
	}
	fields[logger.FieldPending] = len(l.pending)
	log.Debug(msg, fields)
}
