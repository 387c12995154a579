package interpolate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCycleError(t *testing.T) {
	err := &CycleError{Key: "a", Chain: []string{"a", "b", "a"}}

	assert.Equal(t, `cycle detected resolving "a": a -> b -> a`, err.Error())
	assert.True(t, errors.Is(err, ErrCycleDetected))
	assert.False(t, errors.Is(err, ErrUndefinedVariable))

	wrapped := fmt.Errorf("render: %w", err)
	var target *CycleError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "a", target.Key)
}

func TestUndefinedVariableError(t *testing.T) {
	tests := []struct {
		names    []string
		expected string
	}{
		{[]string{"a"}, "undefined variable: a"},
		{[]string{"a", "b", "c"}, "undefined variables: a, b, c"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			err := &UndefinedVariableError{Names: tt.names}
			assert.Equal(t, tt.expected, err.Error())
			assert.True(t, errors.Is(err, ErrUndefinedVariable))
		})
	}
}

func TestScope(t *testing.T) {
	sc := newScope()

	assert.NoError(t, sc.push("a"))
	assert.NoError(t, sc.push("b"))

	err := sc.push("a")
	var cycle *CycleError
	assert.ErrorAs(t, err, &cycle)
	assert.Equal(t, []string{"a", "b", "a"}, cycle.Chain)

	// The failed push leaves the chain unchanged.
	assert.Equal(t, []string{"a", "b"}, sc.chain)

	sc.pop()
	assert.NoError(t, sc.push("b"), "popped keys may be pushed again")
	sc.pop()
	sc.pop()
	assert.Empty(t, sc.chain)
	assert.Empty(t, sc.index)
}
