package lookup

import (
	"context"
	"errors"
	"fmt"

	"github.com/randalmurphal/interpolate/pkg/interpolate/store"
)

// Store resolves names against one namespace of a variable store.
// A variable that is not stored is absent.
type Store struct {
	Store     store.Store
	Namespace string
}

// Resolve implements interpolate.Resolver.
func (s Store) Resolve(ctx context.Context, name string) (string, bool, error) {
	if s.Store == nil {
		return "", false, nil
	}
	v, err := s.Store.Get(ctx, s.Namespace, name)
	if errors.Is(err, store.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("store %s/%s: %w", s.Namespace, name, err)
	}
	return v, true, nil
}
