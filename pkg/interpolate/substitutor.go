package interpolate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/interpolate/pkg/interpolate/observability"
)

// Substitutor replaces variable markers in templates with resolver output.
//
// Create with NewSubstitutor() and configure with Option functions.
// Substitutor is immutable after construction and safe for concurrent use
// as long as its Resolver is; every call keeps its own cycle-detection state.
type Substitutor struct {
	resolver Resolver

	prefix    string
	suffix    string
	escape    string
	separator string

	missing         MissingAction
	recursive       bool
	preserveEscapes bool

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// NewSubstitutor creates a Substitutor resolving keys through resolver.
//
// Default configuration:
//   - markers: "${" and "}"
//   - escape: "$" ("$${" is a literal "${")
//   - value separator: ":-"
//   - MissingAction: MissingKeep
//   - recursive values: enabled
//
// A nil resolver resolves nothing.
//
// Example:
//
//	reg := NewRegistry().Register("const", MapResolver{"a": "1"})
//	sub := NewSubstitutor(NewDispatcher(reg))
//	out, err := sub.Substitute(ctx, "x=${const:a}, y=${const:b:-9}")
//	// out: "x=1, y=9"
func NewSubstitutor(resolver Resolver, opts ...Option) *Substitutor {
	if resolver == nil {
		resolver = Absent
	}
	s := &Substitutor{
		resolver:  resolver,
		prefix:    DefaultMarkerPrefix,
		suffix:    DefaultMarkerSuffix,
		escape:    DefaultEscape,
		separator: DefaultValueSeparator,
		missing:   MissingKeep,
		recursive: true,
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolver returns the resolver the substitutor looks keys up in.
func (s *Substitutor) Resolver() Resolver {
	return s.resolver
}

// Substitute resolves every marker in template.
//
// Markers are resolved innermost first. Resolved values and default values
// are substituted recursively; text produced by a replacement is never
// rescanned as part of the surrounding template. Unterminated markers are
// kept as literal text.
//
// Errors are a *CycleError when a key is reached again while it is being
// resolved, an *UndefinedVariableError under MissingError, or whatever the
// resolver returned. No partial output is returned with an error.
func (s *Substitutor) Substitute(ctx context.Context, template string) (string, error) {
	if template == "" {
		return "", nil
	}

	id := uuid.NewString()
	logger := observability.EnrichLogger(s.logger, id)
	ctx, span := s.spans.StartSubstituteSpan(ctx, id, len(template))
	start := time.Now()
	observability.LogSubstituteStart(logger, len(template))

	sc := newScope()
	out, err := s.expand(ctx, sc, template)
	if err == nil && len(sc.missing) > 0 {
		err = &UndefinedVariableError{Names: sc.missing}
	}

	elapsed := time.Since(start)
	s.metrics.RecordSubstitution(ctx, elapsed, sc.lookups, err)

	var cycle *CycleError
	if errors.As(err, &cycle) {
		s.metrics.RecordCycle(ctx)
		s.spans.AddSpanEvent(ctx, "cycle",
			attribute.String("key", cycle.Key),
			attribute.StringSlice("chain", cycle.Chain),
		)
		observability.LogCycle(logger, cycle.Key, cycle.Chain)
	}
	s.spans.EndSpanWithError(span, err)

	durationMs := float64(elapsed.Microseconds()) / 1000
	if err != nil {
		observability.LogSubstituteError(logger, err, durationMs)
		return "", err
	}
	observability.LogSubstituteComplete(logger, durationMs, sc.lookups)
	return out, nil
}

// MustSubstitute is like Substitute but panics on error.
func (s *Substitutor) MustSubstitute(ctx context.Context, template string) string {
	out, err := s.Substitute(ctx, template)
	if err != nil {
		panic(fmt.Sprintf("interpolate: %v", err))
	}
	return out
}

// SubstituteWith substitutes template with vars available as unprefixed keys.
//
// When the resolver is a *Dispatcher the variables are merged in front of its
// default resolver, so prefixed keys still route through the registry.
// Otherwise vars are consulted before the resolver.
func (s *Substitutor) SubstituteWith(ctx context.Context, template string, vars map[string]string) (string, error) {
	if len(vars) == 0 {
		return s.Substitute(ctx, template)
	}
	c := *s
	if d, ok := s.resolver.(*Dispatcher); ok {
		c.resolver = d.WithVars(vars)
	} else {
		c.resolver = Chain(MapResolver(vars), s.resolver)
	}
	return c.Substitute(ctx, template)
}

// SubstituteAll substitutes every template in order.
// On error it returns nil and the first error.
func (s *Substitutor) SubstituteAll(ctx context.Context, templates []string) ([]string, error) {
	if templates == nil {
		return nil, nil
	}
	out := make([]string, len(templates))
	for i, t := range templates {
		v, err := s.Substitute(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("template %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// SubstituteMap substitutes all string values of m, descending into nested
// maps and slices. Non-string values are copied as-is. Keys are not touched.
func (s *Substitutor) SubstituteMap(ctx context.Context, m map[string]any) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		sv, err := s.substituteValue(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		out[k] = sv
	}
	return out, nil
}

func (s *Substitutor) substituteValue(ctx context.Context, v any) (any, error) {
	switch val := v.(type) {
	case string:
		return s.Substitute(ctx, val)
	case map[string]any:
		return s.SubstituteMap(ctx, val)
	case []string:
		return s.SubstituteAll(ctx, val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			sv, err := s.substituteValue(ctx, item)
			if err != nil {
				return nil, err
			}
			out[i] = sv
		}
		return out, nil
	default:
		return v, nil
	}
}

// expand scans text once, replacing each top-level marker.
func (s *Substitutor) expand(ctx context.Context, sc *scope, text string) (string, error) {
	if !strings.Contains(text, s.prefix) {
		return text, nil
	}

	escaped := s.escape + s.prefix
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		rest := text[i:]
		switch {
		case s.escape != "" && strings.HasPrefix(rest, escaped):
			if s.preserveEscapes {
				b.WriteString(s.escape)
			}
			b.WriteString(s.prefix)
			i += len(escaped)

		case strings.HasPrefix(rest, s.prefix):
			start := i + len(s.prefix)
			end := s.closing(text, start)
			if end < 0 {
				// Unterminated: the prefix is plain text.
				b.WriteString(s.prefix)
				i = start
				continue
			}
			value, err := s.replace(ctx, sc, text[i:end+len(s.suffix)], text[start:end])
			if err != nil {
				return "", err
			}
			b.WriteString(value)
			i = end + len(s.suffix)

		default:
			b.WriteByte(text[i])
			i++
		}
	}
	return b.String(), nil
}

// closing returns the index of the suffix closing a marker whose body starts
// at start, or -1. Nested prefixes, escaped or not, must be balanced first.
// Markers using the same token on both sides cannot nest.
func (s *Substitutor) closing(text string, start int) int {
	if s.prefix == s.suffix {
		if j := strings.Index(text[start:], s.suffix); j >= 0 {
			return start + j
		}
		return -1
	}
	depth := 0
	for j := start; j < len(text); {
		rest := text[j:]
		switch {
		case strings.HasPrefix(rest, s.prefix):
			depth++
			j += len(s.prefix)
		case strings.HasPrefix(rest, s.suffix):
			if depth == 0 {
				return j
			}
			depth--
			j += len(s.suffix)
		default:
			j++
		}
	}
	return -1
}

// splitDefault splits a marker body on the first value separator outside
// nested markers.
func (s *Substitutor) splitDefault(body string) (key, def string, ok bool) {
	if s.separator == "" {
		return body, "", false
	}
	depth := 0
	for j := 0; j < len(body); {
		rest := body[j:]
		switch {
		case strings.HasPrefix(rest, s.prefix):
			depth++
			j += len(s.prefix)
		case depth > 0 && strings.HasPrefix(rest, s.suffix):
			depth--
			j += len(s.suffix)
		case depth == 0 && strings.HasPrefix(rest, s.separator):
			return body[:j], body[j+len(s.separator):], true
		default:
			j++
		}
	}
	return body, "", false
}

// replace resolves a single marker. raw is the full marker text and body
// the text between prefix and suffix.
func (s *Substitutor) replace(ctx context.Context, sc *scope, raw, body string) (string, error) {
	keyExpr, defExpr, hasDefault := s.splitDefault(body)

	key, err := s.expand(ctx, sc, keyExpr)
	if err != nil {
		return "", err
	}

	// A separator produced by a nested marker still splits the key; the
	// default it yields is already flattened.
	literalDefault := false
	if !hasDefault && s.separator != "" {
		if k, d, ok := strings.Cut(key, s.separator); ok {
			key, defExpr, hasDefault, literalDefault = k, d, true, true
		}
	}

	if err := sc.push(key); err != nil {
		return "", err
	}
	defer sc.pop()

	value, found, err := s.resolver.Resolve(ctx, key)
	sc.lookups++
	if err != nil {
		return "", err
	}
	s.metrics.RecordLookup(ctx, found)

	switch {
	case found && s.recursive:
		return s.expand(ctx, sc, value)
	case found:
		return value, nil
	case hasDefault && literalDefault:
		return defExpr, nil
	case hasDefault:
		return s.expand(ctx, sc, defExpr)
	}

	switch s.missing {
	case MissingEmpty:
		return "", nil
	case MissingError:
		sc.missing = append(sc.missing, key)
		return raw, nil
	default:
		return raw, nil
	}
}

// Substitute resolves template against vars with default settings.
//
// Example:
//
//	out, err := interpolate.Substitute(ctx, "Hello ${name}", map[string]string{"name": "World"})
//	// out: "Hello World"
func Substitute(ctx context.Context, template string, vars map[string]string) (string, error) {
	return NewSubstitutor(MapResolver(vars)).Substitute(ctx, template)
}
