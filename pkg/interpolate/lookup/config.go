package lookup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/randalmurphal/interpolate/pkg/interpolate/config"
)

// ConfigKeySeparator separates the document path from the dotted key.
const ConfigKeySeparator = "::"

// ErrMalformedConfigKey is returned for a config key without "::".
var ErrMalformedConfigKey = errors.New("config key must be path::dotted.key")

// Config reads a value from a YAML or JSON document.
//
// The key is "path::dotted.key", e.g. "app.yaml::database.host". The
// document is read on every call. A missing document, a missing key and a
// non-scalar value are absent.
type Config struct {
	// Root is the directory relative paths are resolved against.
	Root string
}

// Resolve implements interpolate.Resolver.
func (c Config) Resolve(_ context.Context, key string) (string, bool, error) {
	path, dotted, ok := strings.Cut(key, ConfigKeySeparator)
	if !ok || path == "" || dotted == "" {
		return "", false, fmt.Errorf("config %q: %w", key, ErrMalformedConfigKey)
	}
	if c.Root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(c.Root, path)
	}

	cfg, err := config.FromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("config %q: %w", path, err)
	}

	v, ok := cfg.Text(dotted)
	return v, ok, nil
}
