package interpolate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapResolver(t *testing.T) {
	ctx := context.Background()
	m := MapResolver{"a": "1", "empty": ""}

	v, ok, err := m.Resolve(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	// An empty value is present.
	v, ok, err = m.Resolve(ctx, "empty")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok, err = m.Resolve(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = MapResolver(nil).Resolve(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolverFunc(t *testing.T) {
	var gotKey string
	r := ResolverFunc(func(_ context.Context, key string) (string, bool, error) {
		gotKey = key
		return "v:" + key, true, nil
	})

	v, ok, err := r.Resolve(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v:k", v)
	assert.Equal(t, "k", gotKey)
}

func TestAbsent(t *testing.T) {
	v, ok, err := Absent.Resolve(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestChain(t *testing.T) {
	ctx := context.Background()
	first := MapResolver{"a": "first"}
	second := MapResolver{"a": "second", "b": "second"}

	t.Run("first present wins", func(t *testing.T) {
		c := Chain(first, second)

		v, ok, err := c.Resolve(ctx, "a")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "first", v)

		v, ok, err = c.Resolve(ctx, "b")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "second", v)

		_, ok, err = c.Resolve(ctx, "c")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("error stops the chain", func(t *testing.T) {
		boom := errors.New("boom")
		called := false
		failing := ResolverFunc(func(context.Context, string) (string, bool, error) {
			return "", false, boom
		})
		after := ResolverFunc(func(context.Context, string) (string, bool, error) {
			called = true
			return "x", true, nil
		})

		_, ok, err := Chain(failing, after).Resolve(ctx, "a")
		assert.ErrorIs(t, err, boom)
		assert.False(t, ok)
		assert.False(t, called)
	})

	t.Run("nil entries skipped", func(t *testing.T) {
		c := Chain(nil, first, nil)
		v, ok, err := c.Resolve(ctx, "a")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "first", v)
	})

	t.Run("single resolver returned as is", func(t *testing.T) {
		assert.Equal(t, Resolver(first), Chain(first))
	})

	t.Run("empty chain is absent", func(t *testing.T) {
		_, ok, err := Chain().Resolve(ctx, "a")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
