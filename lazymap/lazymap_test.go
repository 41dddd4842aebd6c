package lazymap

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kbukum/lazykit/errors"
)

// deferred returns a thunk reporting how often it ran alongside value.
func deferred(value int) func(context.Context) (string, error) {
	called := 0
	return func(context.Context) (string, error) {
		called++
		return fmt.Sprintf("%d:%d", called, value), nil
	}
}

func sample() *Map[string, string] {
	return New(
		Value("a", "1"),
		Deferred("b", deferred(2)),
		Deferred("c", deferred(3)),
	)
}

func TestNew(t *testing.T) {
	m := sample()
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 2, m.Unresolved())
	assert.True(t, m.Resolved("a"))
	assert.False(t, m.Resolved("b"))
	assert.False(t, m.Resolved("x"))
}

func TestNewRepeatedKey(t *testing.T) {
	m := New(Value("a", 1), Value("b", 2), Value("a", 3))
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, err := m.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestGetResolvesOnce(t *testing.T) {
	ctx := context.Background()
	m := sample()

	v, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
	assert.Equal(t, 2, m.Unresolved())

	v, err = m.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "1:2", v)
	assert.Equal(t, 1, m.Unresolved())

	v, err = m.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "1:3", v)
	assert.Equal(t, 0, m.Unresolved())

	v, _ = m.Get(ctx, "b")
	assert.Equal(t, "1:2", v)
	v, _ = m.Get(ctx, "c")
	assert.Equal(t, "1:3", v)
}

func TestGetMissingKey(t *testing.T) {
	m := sample()
	_, err := m.Get(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrKeyNotFound))
	assert.True(t, errors.Is(err, apperrors.ErrValueNotFound))
	assert.Equal(t, 2, m.Unresolved())
}

func TestGetFailureIsNotCached(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("unavailable")
	calls := 0
	m := New(Deferred("k", func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, boom
		}
		return 42, nil
	}))

	_, err := m.Get(ctx, "k")
	assert.Same(t, boom, err)
	assert.False(t, m.Resolved("k"))

	v, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, calls)
}

func TestGetKeepsOrder(t *testing.T) {
	ctx := context.Background()
	m := New(Value("a", "1"), Deferred("b", deferred(2)), Deferred("c", deferred(3)), Deferred("d", deferred(4)))
	m.Get(ctx, "d")
	m.Get(ctx, "c")
	assert.Equal(t, []string{"a", "b", "c", "d"}, m.Keys())
}

func TestSetStoresPlainValue(t *testing.T) {
	ctx := context.Background()
	m := New(Value[string, any]("a", 1))
	fn := func() int { return 4 }
	m.Set("x", fn)

	v, err := m.Get(ctx, "x")
	require.NoError(t, err)
	got, ok := v.(func() int)
	require.True(t, ok, "expected the func itself, got %T", v)
	assert.Equal(t, 4, got())
	assert.Equal(t, 0, m.Unresolved())
}

func TestSetReplacesDeferred(t *testing.T) {
	m := sample()
	m.Set("b", "plain")
	assert.Equal(t, 1, m.Unresolved())
	v, err := m.Get(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, "plain", v)
	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())
}

func TestSetDeferredOnZeroValue(t *testing.T) {
	var m Map[string, int]
	m.SetDeferred("n", func(context.Context) (int, error) { return 7, nil })
	assert.True(t, m.Has("n"))
	v, err := m.Get(context.Background(), "n")
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	m := sample()
	m.Delete("b")
	assert.Equal(t, 1, m.Unresolved())
	assert.Equal(t, []string{"a", "c"}, m.Keys())

	v, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
	v, err = m.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "1:3", v)
}

func TestDeleteMissingKey(t *testing.T) {
	m := sample()
	m.Delete("x")
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 2, m.Unresolved())
}

func TestKeysDoNotResolve(t *testing.T) {
	m := New(Deferred("a", deferred(1)), Deferred("b", deferred(2)), Deferred("c", deferred(3)))
	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())
	assert.Equal(t, 3, m.Unresolved())
}

func TestValuesAndItems(t *testing.T) {
	ctx := context.Background()
	m := New(Deferred("a", deferred(1)), Deferred("b", deferred(2)), Deferred("c", deferred(3)))

	vals, err := m.Values(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1:1", "1:2", "1:3"}, vals)
	assert.Equal(t, 0, m.Unresolved())

	items, err := m.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Item[string, string]{{"a", "1:1"}, {"b", "1:2"}, {"c", "1:3"}}, items)
}

func TestValuesStopsAtFailure(t *testing.T) {
	boom := errors.New("boom")
	m := New(Value("a", 1), Deferred("b", func(context.Context) (int, error) { return 0, boom }), Value("c", 3))
	vals, err := m.Values(context.Background())
	assert.Same(t, boom, err)
	assert.Equal(t, []int{1}, vals)
}

func TestFromPairs(t *testing.T) {
	ctx := context.Background()

	t.Run("plain rows", func(t *testing.T) {
		m, err := FromPairs[string, int]([]any{[]any{"a", 1}, [2]any{"b", 2}, []any{"c", 3}})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, m.Keys())
		assert.Equal(t, 0, m.Unresolved())
	})
	t.Run("typed rows", func(t *testing.T) {
		m, err := FromPairs[int, int]([]any{[]int{0, 1}, []int{1, 2}})
		require.NoError(t, err)
		v, err := m.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	})
	t.Run("deferred values", func(t *testing.T) {
		var thunk Thunk[int] = func(context.Context) (int, error) { return 1, nil }
		m, err := FromPairs[string, int]([]any{
			[]any{"thunk", thunk},
			[]any{"ctx", func(context.Context) (int, error) { return 2, nil }},
			[]any{"plain", func() int { return 3 }},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, m.Unresolved())
		vals, err := m.Values(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, vals)
	})
	t.Run("nil value", func(t *testing.T) {
		m, err := FromPairs[string, any]([]any{[]any{"a", nil}})
		require.NoError(t, err)
		v, err := m.Get(ctx, "a")
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}

func TestFromPairsErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []any
		want string
	}{
		{"too short", []any{[]any{"a", 1}, []any{"b"}}, "element #1 has length 1"},
		{"too long", []any{[]any{"a", 1}, []any{"b", 1, 2}}, "element #1 has length 3"},
		{"not a pair", []any{[]any{"a", 1}, 1}, "element #1 is not a pair"},
		{"bad key", []any{[]any{1, 1}}, "element #0 key has type int"},
		{"bad value", []any{[]any{"a", "x"}}, "element #0 value has type string"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromPairs[string, int](tc.rows)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrConstruction))
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
