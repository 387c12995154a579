package interpolate

import (
	"context"
	"log/slog"
	"strings"

	"github.com/randalmurphal/interpolate/pkg/interpolate/observability"
)

// DefaultPrefixSeparator splits a compound key such as "env:HOME" into its
// prefix and the key handed to the prefix's resolver.
const DefaultPrefixSeparator = ":"

// Dispatcher is a Resolver that routes "prefix:rest" keys to the resolver
// registered for prefix.
//
// Keys without a separator, or whose prefix is not registered, are handed
// whole to the default resolver. Without a default resolver such keys are
// absent. The registry is shared, not copied; see Registry for the rules on
// mutating it.
type Dispatcher struct {
	registry  *Registry
	fallback  Resolver
	vars      MapResolver
	separator string
	logger    *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDefaultResolver sets the resolver used for unprefixed and unknown-prefix keys.
func WithDefaultResolver(r Resolver) DispatcherOption {
	return func(d *Dispatcher) {
		d.fallback = r
	}
}

// WithVariables adds always-present variables consulted before the default
// resolver. Later calls merge into earlier ones.
func WithVariables(vars map[string]string) DispatcherOption {
	return func(d *Dispatcher) {
		d.vars = mergeVars(d.vars, vars)
	}
}

// WithPrefixSeparator changes the prefix separator. Empty values are ignored.
func WithPrefixSeparator(sep string) DispatcherOption {
	return func(d *Dispatcher) {
		if sep != "" {
			d.separator = sep
		}
	}
}

// WithDispatchLogger logs each routing decision at debug level.
func WithDispatchLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher creates a Dispatcher over reg. A nil registry is treated as empty.
func NewDispatcher(reg *Registry, opts ...DispatcherOption) *Dispatcher {
	if reg == nil {
		reg = NewRegistry()
	}
	d := &Dispatcher{
		registry:  reg,
		separator: DefaultPrefixSeparator,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the registry the dispatcher routes through.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// WithDefault returns a copy of d using r as the default resolver.
func (d *Dispatcher) WithDefault(r Resolver) *Dispatcher {
	c := *d
	c.fallback = r
	return &c
}

// WithVars returns a copy of d with vars merged into its always-present variables.
func (d *Dispatcher) WithVars(vars map[string]string) *Dispatcher {
	c := *d
	c.vars = mergeVars(d.vars, vars)
	return &c
}

// Resolve implements Resolver.
func (d *Dispatcher) Resolve(ctx context.Context, key string) (string, bool, error) {
	done := observability.TimedOperation()
	if prefix, rest, found := strings.Cut(key, d.separator); found {
		if r, ok := d.registry.Get(prefix); ok {
			v, ok, err := r.Resolve(ctx, rest)
			d.log(ctx, "prefix", key, prefix, ok, done)
			return v, ok, err
		}
	}

	fallback := d.defaultResolver()
	if fallback == nil {
		d.log(ctx, "none", key, "", false, done)
		return "", false, nil
	}
	v, ok, err := fallback.Resolve(ctx, key)
	d.log(ctx, "default", key, "", ok, done)
	return v, ok, err
}

func (d *Dispatcher) defaultResolver() Resolver {
	switch {
	case len(d.vars) > 0 && d.fallback != nil:
		return Chain(d.vars, d.fallback)
	case len(d.vars) > 0:
		return d.vars
	default:
		return d.fallback
	}
}

func (d *Dispatcher) log(ctx context.Context, route, key, prefix string, found bool, elapsed func() float64) {
	if d.logger == nil {
		return
	}
	observability.LogLookup(ctx, d.logger, route, key, prefix, found, elapsed())
}

func mergeVars(base MapResolver, vars map[string]string) MapResolver {
	if len(vars) == 0 {
		return base
	}
	merged := make(MapResolver, len(base)+len(vars))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range vars {
		merged[k] = v
	}
	return merged
}
