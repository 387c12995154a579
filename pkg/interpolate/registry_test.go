package interpolate

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	assert.NotNil(t, r)
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Prefixes())
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	one := MapResolver{"k": "1"}

	r.Register("one", one)

	got, ok := r.Get("one")
	assert.True(t, ok)
	assert.Equal(t, Resolver(one), got)

	got, ok = r.Get("two")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestRegistry_RegisterOverwrite(t *testing.T) {
	r := NewRegistry()
	r.Register("p", MapResolver{"k": "old"})
	r.Register("p", MapResolver{"k": "new"})

	got, ok := r.Get("p")
	require.True(t, ok)
	v, _, _ := got.Resolve(context.Background(), "k")
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_RegisterChaining(t *testing.T) {
	r := NewRegistry().
		Register("a", MapResolver{}).
		Register("b", MapResolver{})
	assert.Equal(t, []string{"a", "b"}, r.Prefixes())
}

func TestRegistry_RegisterNilRemoves(t *testing.T) {
	r := NewRegistry().Register("a", MapResolver{})
	r.Register("a", nil)
	assert.False(t, r.Has("a"))
}

func TestRegistry_RegisterMany(t *testing.T) {
	r := NewRegistry().Register("gone", MapResolver{})

	r.RegisterMany(map[string]Resolver{
		"one":  MapResolver{},
		"two":  MapResolver{},
		"gone": nil,
	})

	assert.Equal(t, []string{"one", "two"}, r.Prefixes())
}

func TestRegistry_Unregister(t *testing.T) {
	r := NewRegistry().Register("a", MapResolver{})

	r.Unregister("a")
	assert.False(t, r.Has("a"))

	// Unknown prefix is a no-op.
	assert.NotPanics(t, func() { r.Unregister("missing") })
}

func TestRegistry_CaseSensitive(t *testing.T) {
	r := NewRegistry().Register("env", MapResolver{})
	assert.True(t, r.Has("env"))
	assert.False(t, r.Has("ENV"))
}

func TestRegistry_PrefixesSorted(t *testing.T) {
	r := NewRegistry()
	for _, p := range []string{"zeta", "alpha", "mid"} {
		r.Register(p, MapResolver{})
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Prefixes())
}

func TestRegistry_Range(t *testing.T) {
	r := NewRegistry()
	for _, p := range []string{"c", "a", "b"} {
		r.Register(p, MapResolver{})
	}

	t.Run("visits in order", func(t *testing.T) {
		var seen []string
		r.Range(func(prefix string, _ Resolver) bool {
			seen = append(seen, prefix)
			return true
		})
		assert.Equal(t, []string{"a", "b", "c"}, seen)
	})

	t.Run("stops early", func(t *testing.T) {
		count := 0
		r.Range(func(string, Resolver) bool {
			count++
			return count < 2
		})
		assert.Equal(t, 2, count)
	})

	t.Run("mutation during range", func(t *testing.T) {
		c := r.Clone()
		var seen []string
		c.Range(func(prefix string, _ Resolver) bool {
			seen = append(seen, prefix)
			c.Unregister(prefix)
			c.Register(prefix+"x", MapResolver{})
			return true
		})
		assert.Equal(t, []string{"a", "b", "c"}, seen)
		assert.Equal(t, []string{"ax", "bx", "cx"}, c.Prefixes())
	})
}

func TestRegistry_Clone(t *testing.T) {
	r := NewRegistry().Register("a", MapResolver{})
	c := r.Clone()

	c.Register("b", MapResolver{})
	r.Unregister("a")

	assert.Equal(t, []string{"a", "b"}, c.Prefixes())
	assert.Empty(t, r.Prefixes())
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()

	const numGoroutines = 50
	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			r.Register(fmt.Sprintf("p%d", id), MapResolver{})
		}(i)
		go func(id int) {
			defer wg.Done()
			_, _ = r.Get(fmt.Sprintf("p%d", id))
			_ = r.Prefixes()
		}(i)
	}

	wg.Wait()
	assert.Equal(t, numGoroutines, r.Len())
}
