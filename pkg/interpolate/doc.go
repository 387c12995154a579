/*
Package interpolate substitutes variable markers in strings.

# Overview

A template such as "jdbc://${env:DB_HOST:-localhost}/${name}" contains
markers. Each marker holds a key, which is looked up through a Resolver;
the value replaces the marker. Values may themselves contain markers and
are substituted recursively until nothing is left to resolve or a key is
reached again while it is still being resolved.

# Basic Usage

Substitute from a plain map with the package-level function:

	out, err := interpolate.Substitute(ctx, "Hello ${name}", map[string]string{"name": "World"})
	// out: "Hello World"

# Resolvers and Prefixes

Resolver is the lookup abstraction. A missing key is absent (ok == false),
never an error. Resolvers are registered under prefixes in a Registry and a
Dispatcher routes "prefix:rest" keys to them:

	reg := interpolate.NewRegistry().
		Register("const", interpolate.MapResolver{"a": "1"}).
		Register("env", lookup.Env{})

	d := interpolate.NewDispatcher(reg,
		interpolate.WithVariables(map[string]string{"name": "api"}),
	)
	sub := interpolate.NewSubstitutor(d)

	out, _ := sub.Substitute(ctx, "x=${const:a}, y=${const:b:-9}")
	// out: "x=1, y=9"

Keys without a registered prefix go whole to the dispatcher's default
resolver, so "${name}" above resolves from the variables. The lookup
package provides ready-made resolvers for environment variables, dates,
files, configuration documents, DNS, HTTP and the variable store.

# Marker Syntax

	${key}            value of key
	${key:-default}   value of key, or default when key is absent
	${${inner}}       key computed from another marker
	$${key}           literal "${key}"

Markers, the escape character and the value separator are configurable
with WithPrefix, WithSuffix, WithEscape and WithValueSeparator. A marker
without its closing suffix is plain text.

Only the first value separator outside nested markers splits a marker, so
"${a:-b:-c}" defaults to "b:-c". Default values are substituted only when
the key is absent.

# Missing Keys

An absent key with no default is handled by the MissingAction:

	MissingKeep   leave the marker in the output (default)
	MissingEmpty  replace the marker with ""
	MissingError  fail with *UndefinedVariableError listing every absent key

# Cycles

Each Substitute call tracks the keys currently being resolved. Reaching one
of them again fails the call with a *CycleError naming the key and the
chain that led to it:

	vars := map[string]string{"a": "${b}", "b": "${a}"}
	_, err := interpolate.Substitute(ctx, "${a}", vars)
	// errors.Is(err, interpolate.ErrCycleDetected) == true
	// err: cycle detected resolving "a": a -> b -> a

The same key may appear any number of times side by side; only re-entry
while in flight is a cycle.

# Configuration

Engine options can be loaded from YAML or JSON:

	opts, err := interpolate.LoadOptions("interpolate.yaml")
	sub := interpolate.NewSubstitutor(d, opts...)

# Observability

WithLogger, WithMetrics and WithSpanManager attach the slog and OpenTelemetry
helpers of the observability package. Every call gets a substitution ID
that appears in its log records and span.

# Thread Safety

Substitutor and Dispatcher are immutable after construction and safe for
concurrent use when their resolvers are. Every call has its own cycle
detection state. Registry is safe for concurrent use but is meant to be
populated before substitutions start.
*/
package interpolate
