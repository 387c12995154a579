package lookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrOutsideRoot is returned when a file key names a path outside the root.
var ErrOutsideRoot = errors.New("path outside lookup root")

// File resolves a path to the contents of that file.
//
// Paths are relative to Root and may not leave it: absolute paths, ".."
// components and symlinks pointing outside Root are rejected with an error.
// A file that does not exist is absent.
type File struct {
	// Root is the directory keys are resolved against. Empty means the
	// working directory.
	Root string
	// TrimNewline drops a single trailing "\n" or "\r\n".
	TrimNewline bool
}

// Resolve implements interpolate.Resolver.
func (f File) Resolve(_ context.Context, path string) (string, bool, error) {
	if path == "" {
		return "", false, nil
	}
	if !filepath.IsLocal(path) {
		return "", false, fmt.Errorf("file %q: %w", path, ErrOutsideRoot)
	}

	dir := f.Root
	if dir == "" {
		dir = "."
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return "", false, fmt.Errorf("open root %q: %w", dir, err)
	}
	defer root.Close()

	fh, err := root.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("file %q: %w", path, err)
	}
	defer fh.Close()

	b, err := io.ReadAll(fh)
	if err != nil {
		return "", false, fmt.Errorf("read file %q: %w", path, err)
	}

	s := string(b)
	if f.TrimNewline {
		s = trimNewline(s)
	}
	return s, true, nil
}

func trimNewline(s string) string {
	n := len(s)
	if n > 0 && s[n-1] == '\n' {
		n--
		if n > 0 && s[n-1] == '\r' {
			n--
		}
	}
	return s[:n]
}
