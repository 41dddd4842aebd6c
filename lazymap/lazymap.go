// Package lazymap provides Map, an insertion-ordered mapping whose values
// may be deferred: a deferred value is computed on first access and
// cached from then on.
//
// A Map is not safe for concurrent use.
package lazymap

import (
	"context"
	"fmt"
	"reflect"
	"slices"

	apperrors "github.com/kbukum/lazykit/errors"
)

// Thunk computes a deferred value.
type Thunk[V any] func(ctx context.Context) (V, error)

// Entry is a key with either a plain or a deferred value.
type Entry[K comparable, V any] struct {
	key   K
	value V
	thunk Thunk[V]
}

// Value returns an entry holding v.
func Value[K comparable, V any](key K, v V) Entry[K, V] {
	return Entry[K, V]{key: key, value: v}
}

// Deferred returns an entry whose value is computed by fn on first access.
func Deferred[K comparable, V any](key K, fn func(ctx context.Context) (V, error)) Entry[K, V] {
	return Entry[K, V]{key: key, thunk: fn}
}

// Item is a resolved key/value pair.
type Item[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is an insertion-ordered mapping with lazily resolved values.
type Map[K comparable, V any] struct {
	keys       []K
	values     map[K]V
	unresolved map[K]Thunk[V]
}

// New returns a map holding entries in order. A repeated key keeps its
// first position and its last value.
func New[K comparable, V any](entries ...Entry[K, V]) *Map[K, V] {
	m := &Map[K, V]{
		values:     make(map[K]V, len(entries)),
		unresolved: make(map[K]Thunk[V]),
	}
	for _, e := range entries {
		if e.thunk != nil {
			m.SetDeferred(e.key, e.thunk)
		} else {
			m.Set(e.key, e.value)
		}
	}
	return m
}

// FromPairs builds a map from untyped rows, each a two-element slice or
// array holding a key and a value. Values that are a Thunk[V], a
// func(context.Context) (V, error) or a func() V are deferred.
func FromPairs[K comparable, V any](rows []any) (*Map[K, V], error) {
	m := New[K, V]()
	for i, row := range rows {
		rv := reflect.ValueOf(row)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, apperrors.Construction(fmt.Sprintf("element #%d is not a pair", i)).
				WithDetail("row", i)
		}
		if rv.Len() != 2 {
			return nil, apperrors.Construction(fmt.Sprintf(
				"element #%d has length %d; 2 is required", i, rv.Len())).WithDetail("row", i)
		}
		key, ok := rv.Index(0).Interface().(K)
		if !ok {
			return nil, apperrors.Construction(fmt.Sprintf(
				"element #%d key has type %T", i, rv.Index(0).Interface())).WithDetail("row", i)
		}
		switch v := rv.Index(1).Interface().(type) {
		case Thunk[V]:
			m.SetDeferred(key, v)
		case func(context.Context) (V, error):
			m.SetDeferred(key, v)
		case func() V:
			m.SetDeferred(key, func(context.Context) (V, error) { return v(), nil })
		case V:
			m.Set(key, v)
		case nil:
			var zero V
			m.Set(key, zero)
		default:
			return nil, apperrors.Construction(fmt.Sprintf(
				"element #%d value has type %T", i, v)).WithDetail("row", i)
		}
	}
	return m, nil
}

func (m *Map[K, V]) init() {
	if m.values == nil {
		m.values = make(map[K]V)
		m.unresolved = make(map[K]Thunk[V])
	}
}

// Get returns the value for key, computing and caching it if it is
// deferred. A failing computation is not cached.
func (m *Map[K, V]) Get(ctx context.Context, key K) (V, error) {
	if fn, ok := m.unresolved[key]; ok {
		v, err := fn(ctx)
		if err != nil {
			var zero V
			return zero, err
		}
		m.values[key] = v
		delete(m.unresolved, key)
		return v, nil
	}
	v, ok := m.values[key]
	if !ok {
		return v, apperrors.KeyNotFound(key)
	}
	return v, nil
}

// Set stores v under key as a plain value, replacing any deferred value.
func (m *Map[K, V]) Set(key K, v V) {
	m.init()
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
	delete(m.unresolved, key)
}

// SetDeferred stores fn under key to be computed on first access.
func (m *Map[K, V]) SetDeferred(key K, fn func(ctx context.Context) (V, error)) {
	m.init()
	var zero V
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = zero
	m.unresolved[key] = fn
}

// Delete removes key. Missing keys are ignored.
func (m *Map[K, V]) Delete(key K) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	delete(m.unresolved, key)
	m.keys = slices.DeleteFunc(m.keys, func(k K) bool { return k == key })
}

// Has reports whether key is present, without resolving it.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.values[key]
	return ok
}

// Len returns the number of keys.
func (m *Map[K, V]) Len() int { return len(m.keys) }

// Keys returns the keys in first-insertion order. Nothing is resolved.
func (m *Map[K, V]) Keys() []K { return slices.Clone(m.keys) }

// Resolved reports whether key is present and its value is computed.
func (m *Map[K, V]) Resolved(key K) bool {
	_, deferred := m.unresolved[key]
	return m.Has(key) && !deferred
}

// Unresolved returns the number of values not yet computed.
func (m *Map[K, V]) Unresolved() int { return len(m.unresolved) }

// Values resolves every value and returns them in key order.
func (m *Map[K, V]) Values(ctx context.Context) ([]V, error) {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		v, err := m.Get(ctx, k)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Items resolves every value and returns the pairs in key order.
func (m *Map[K, V]) Items(ctx context.Context) ([]Item[K, V], error) {
	out := make([]Item[K, V], 0, len(m.keys))
	for _, k := range m.keys {
		v, err := m.Get(ctx, k)
		if err != nil {
			return out, err
		}
		out = append(out, Item[K, V]{Key: k, Value: v})
	}
	return out, nil
}
