package interpolate

import (
	"log/slog"

	"github.com/randalmurphal/interpolate/pkg/interpolate/observability"
)

// Default marker syntax.
const (
	DefaultMarkerPrefix   = "${"
	DefaultMarkerSuffix   = "}"
	DefaultEscape         = "$"
	DefaultValueSeparator = ":-"
)

// MissingAction specifies how to handle keys that resolve to nothing and
// have no default clause.
type MissingAction int

const (
	// MissingKeep leaves the marker text as-is. This is the default behavior.
	MissingKeep MissingAction = iota

	// MissingEmpty replaces the marker with an empty string.
	MissingEmpty

	// MissingError fails the substitution with an UndefinedVariableError
	// listing every missing key.
	MissingError
)

// String returns the action name as used in configuration files.
func (a MissingAction) String() string {
	switch a {
	case MissingKeep:
		return "keep"
	case MissingEmpty:
		return "empty"
	case MissingError:
		return "error"
	default:
		return "unknown"
	}
}

// Option configures a Substitutor.
type Option func(*Substitutor)

// WithPrefix sets the marker prefix token. Default: "${". Empty values are ignored.
func WithPrefix(prefix string) Option {
	return func(s *Substitutor) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithSuffix sets the marker suffix token. Default: "}". Empty values are ignored.
func WithSuffix(suffix string) Option {
	return func(s *Substitutor) {
		if suffix != "" {
			s.suffix = suffix
		}
	}
}

// WithEscape sets the escape token placed before the prefix to keep it literal.
//
// Default: "$", so "$${name}" produces "${name}". An empty escape disables
// escaping.
func WithEscape(escape string) Option {
	return func(s *Substitutor) {
		s.escape = escape
	}
}

// WithValueSeparator sets the token separating a key from its default value.
//
// Default: ":-", as in "${name:-anonymous}". An empty separator disables
// default values.
func WithValueSeparator(sep string) Option {
	return func(s *Substitutor) {
		s.separator = sep
	}
}

// WithMissingAction sets how keys without a value or default are handled.
//
// Default: MissingKeep (keep the marker as-is)
//
// Example:
//
//	sub := NewSubstitutor(resolver, WithMissingAction(MissingEmpty))
//	out, _ := sub.Substitute(ctx, "Hello ${missing}!")
//	// out: "Hello !"
func WithMissingAction(action MissingAction) Option {
	return func(s *Substitutor) {
		s.missing = action
	}
}

// WithRecursiveValues controls whether resolved values and defaults are
// themselves substituted. Default: true.
func WithRecursiveValues(enabled bool) Option {
	return func(s *Substitutor) {
		s.recursive = enabled
	}
}

// WithPreserveEscapes keeps the escape token in the output, so "$${a}"
// stays "$${a}" instead of becoming "${a}". Default: false.
func WithPreserveEscapes(enabled bool) Option {
	return func(s *Substitutor) {
		s.preserveEscapes = enabled
	}
}

// WithLogger sets the logger for substitution events. Nil disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Substitutor) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Use observability.NewMetricsRecorder() for OpenTelemetry metrics.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(s *Substitutor) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithSpanManager sets the span manager.
// Use observability.NewSpanManager() for OpenTelemetry tracing.
func WithSpanManager(sm observability.SpanManager) Option {
	return func(s *Substitutor) {
		if sm != nil {
			s.spans = sm
		}
	}
}
