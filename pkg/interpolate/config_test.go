package interpolate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/interpolate/pkg/interpolate/config"
)

func TestParseMissingAction(t *testing.T) {
	tests := []struct {
		input    string
		expected MissingAction
		wantErr  bool
	}{
		{"", MissingKeep, false},
		{"keep", MissingKeep, false},
		{"EMPTY", MissingEmpty, false},
		{" error ", MissingError, false},
		{"explode", MissingKeep, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMissingAction(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMissingAction_String(t *testing.T) {
	assert.Equal(t, "keep", MissingKeep.String())
	assert.Equal(t, "empty", MissingEmpty.String())
	assert.Equal(t, "error", MissingError.String())
	assert.Equal(t, "unknown", MissingAction(99).String())

	for _, a := range []MissingAction{MissingKeep, MissingEmpty, MissingError} {
		parsed, err := ParseMissingAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	vars := MapResolver{"name": "World"}
	ctx := context.Background()

	t.Run("empty config keeps defaults", func(t *testing.T) {
		opts, err := OptionsFromConfig(config.New(nil))
		require.NoError(t, err)
		assert.Empty(t, opts)
	})

	t.Run("custom syntax", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte(`
prefix: "{{"
suffix: "}}"
escape: "\\"
separator: "|"
missing: empty
`))
		require.NoError(t, err)

		opts, err := OptionsFromConfig(cfg)
		require.NoError(t, err)
		assert.Len(t, opts, 5)

		got, err := NewSubstitutor(vars, opts...).Substitute(ctx, `{{name}} {{x|d}} [{{y}}] \{{name}}`)
		require.NoError(t, err)
		assert.Equal(t, "World d [] {{name}}", got)
	})

	t.Run("flags", func(t *testing.T) {
		cfg := config.New(map[string]any{
			"recursive":        false,
			"preserve_escapes": "true",
			"separator":        "",
		})
		opts, err := OptionsFromConfig(cfg)
		require.NoError(t, err)

		sub := NewSubstitutor(MapResolver{"a": "${b}", "b": "x", "k:-d": "whole"}, opts...)
		got, err := sub.Substitute(ctx, "${a} $${a} ${k:-d}")
		require.NoError(t, err)
		assert.Equal(t, "${b} $${a} whole", got)
	})

	t.Run("invalid missing action", func(t *testing.T) {
		_, err := OptionsFromConfig(config.New(map[string]any{"missing": "explode"}))
		assert.Error(t, err)
	})
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "interpolate.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"missing": "error"}`), 0o600))

	opts, err := LoadOptions(path)
	require.NoError(t, err)

	_, err = NewSubstitutor(nil, opts...).Substitute(context.Background(), "${x}")
	assert.ErrorIs(t, err, ErrUndefinedVariable)

	_, err = LoadOptions(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("missing: explode\n"), 0o600))
	_, err = LoadOptions(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}

func TestDispatcherOptionsFromConfig(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`
prefix_separator: "."
variables:
  app: billing
  port: 8080
  nested:
    skipped: true
`))
	require.NoError(t, err)

	reg := NewRegistry().Register("const", MapResolver{"a": "1"})
	d := NewDispatcher(reg, DispatcherOptionsFromConfig(cfg)...)
	sub := NewSubstitutor(d)

	got, err := sub.Substitute(context.Background(), "${app}:${port} ${const.a} ${const:a} ${nested}")
	require.NoError(t, err)
	assert.Equal(t, "billing:8080 1 ${const:a} ${nested}", got)

	assert.Empty(t, DispatcherOptionsFromConfig(config.New(nil)))
}

func TestSubstituteConfig(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`
db:
  host: ${host}
  port: 5432
  hosts:
    - ${host}
    - replica
name: ${missing:-svc}
`))
	require.NoError(t, err)

	sub := NewSubstitutor(MapResolver{"host": "db.internal"})
	out, err := SubstituteConfig(context.Background(), sub, cfg)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", out.String("db.host", ""))
	assert.Equal(t, 5432, out.Int("db.port", 0))
	assert.Equal(t, []string{"db.internal", "replica"}, out.StringSlice("db.hosts", nil))
	assert.Equal(t, "svc", out.String("name", ""))
	assert.Equal(t, "${host}", cfg.String("db.host", ""), "input is not modified")

	t.Run("error", func(t *testing.T) {
		strict := NewSubstitutor(nil, WithMissingAction(MissingError))
		_, err := SubstituteConfig(context.Background(), strict, cfg)
		assert.ErrorIs(t, err, ErrUndefinedVariable)
	})
}
