package interpolate

import "context"

// Resolver maps a key to a value.
//
// A missing key is reported with ok == false and a nil error; absence is the
// normal "not found" signal and never an error. A non-nil error means the
// resolver itself failed (a file could not be read, a query timed out) and
// ends the substitution that asked for it.
//
// Implementations must tolerate repeated calls with the same key. Whether a
// Resolver is safe for concurrent use is up to the implementation; all
// resolvers in this module are.
type Resolver interface {
	Resolve(ctx context.Context, key string) (value string, ok bool, err error)
}

// ResolverFunc adapts an ordinary function to the Resolver interface.
type ResolverFunc func(ctx context.Context, key string) (string, bool, error)

// Resolve calls f(ctx, key).
func (f ResolverFunc) Resolve(ctx context.Context, key string) (string, bool, error) {
	return f(ctx, key)
}

// MapResolver resolves keys from a fixed map.
// It is the constant lookup: a nil map resolves nothing.
type MapResolver map[string]string

// Resolve implements Resolver.
func (m MapResolver) Resolve(_ context.Context, key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

// Absent is a Resolver that never finds anything.
var Absent Resolver = ResolverFunc(func(context.Context, string) (string, bool, error) {
	return "", false, nil
})

// chain tries each resolver in order and returns the first present value.
type chain []Resolver

// Chain returns a Resolver that consults resolvers in order.
//
// The first present value wins. An error from any resolver is returned
// immediately without consulting the rest. Nil entries are skipped.
func Chain(resolvers ...Resolver) Resolver {
	out := make(chain, 0, len(resolvers))
	for _, r := range resolvers {
		if r != nil {
			out = append(out, r)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

// Resolve implements Resolver.
func (c chain) Resolve(ctx context.Context, key string) (string, bool, error) {
	for _, r := range c {
		v, ok, err := r.Resolve(ctx, key)
		if err != nil {
			return "", false, err
		}
		if ok {
			return v, true, nil
		}
	}
	return "", false, nil
}
