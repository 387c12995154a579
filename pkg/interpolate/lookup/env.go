package lookup

import (
	"context"
	"os"
)

// Env resolves environment variables. An unset variable is absent; a
// variable set to the empty string is present.
type Env struct {
	// LookupEnv replaces os.LookupEnv when set.
	LookupEnv func(name string) (string, bool)
}

// Resolve implements interpolate.Resolver.
func (e Env) Resolve(_ context.Context, name string) (string, bool, error) {
	if name == "" {
		return "", false, nil
	}
	lookup := e.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, ok := lookup(name)
	return v, ok, nil
}
