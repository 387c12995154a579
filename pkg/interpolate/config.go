package interpolate

import (
	"context"
	"fmt"
	"strings"

	"github.com/randalmurphal/interpolate/pkg/interpolate/config"
)

// Configuration keys read by OptionsFromConfig.
const (
	ConfigKeyPrefix          = "prefix"
	ConfigKeySuffix          = "suffix"
	ConfigKeyEscape          = "escape"
	ConfigKeySeparator       = "separator"
	ConfigKeyMissing         = "missing"
	ConfigKeyRecursive       = "recursive"
	ConfigKeyPreserveEscapes = "preserve_escapes"
)

// Configuration keys read by DispatcherOptionsFromConfig.
const (
	ConfigKeyVariables       = "variables"
	ConfigKeyPrefixSeparator = "prefix_separator"
)

// ParseMissingAction parses "keep", "empty" or "error", case-insensitively.
func ParseMissingAction(s string) (MissingAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keep", "":
		return MissingKeep, nil
	case "empty":
		return MissingEmpty, nil
	case "error":
		return MissingError, nil
	default:
		return MissingKeep, fmt.Errorf("unknown missing action %q", s)
	}
}

// OptionsFromConfig builds Substitutor options from a configuration section.
//
// Only keys that are present produce options, so the result can be combined
// with options given in code:
//
//	prefix: "{{"
//	suffix: "}}"
//	escape: "\\"
//	separator: "|"
//	missing: empty
//	recursive: true
//	preserve_escapes: false
//
// An empty escape or separator disables escaping or default values.
func OptionsFromConfig(cfg config.Config) ([]Option, error) {
	var opts []Option
	if cfg.Has(ConfigKeyPrefix) {
		opts = append(opts, WithPrefix(cfg.String(ConfigKeyPrefix, DefaultMarkerPrefix)))
	}
	if cfg.Has(ConfigKeySuffix) {
		opts = append(opts, WithSuffix(cfg.String(ConfigKeySuffix, DefaultMarkerSuffix)))
	}
	if cfg.Has(ConfigKeyEscape) {
		opts = append(opts, WithEscape(cfg.String(ConfigKeyEscape, DefaultEscape)))
	}
	if cfg.Has(ConfigKeySeparator) {
		opts = append(opts, WithValueSeparator(cfg.String(ConfigKeySeparator, DefaultValueSeparator)))
	}
	if cfg.Has(ConfigKeyMissing) {
		action, err := ParseMissingAction(cfg.String(ConfigKeyMissing, ""))
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithMissingAction(action))
	}
	if cfg.Has(ConfigKeyRecursive) {
		opts = append(opts, WithRecursiveValues(cfg.Bool(ConfigKeyRecursive, true)))
	}
	if cfg.Has(ConfigKeyPreserveEscapes) {
		opts = append(opts, WithPreserveEscapes(cfg.Bool(ConfigKeyPreserveEscapes, false)))
	}
	return opts, nil
}

// LoadOptions reads Substitutor options from a YAML or JSON file.
func LoadOptions(path string) ([]Option, error) {
	cfg, err := config.FromFile(path)
	if err != nil {
		return nil, err
	}
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// DispatcherOptionsFromConfig builds Dispatcher options from a configuration
// section:
//
//	prefix_separator: "."
//	variables:
//	  app: billing
//	  port: 8080
//
// Scalar variables are converted to text; nested sections under variables
// are ignored.
func DispatcherOptionsFromConfig(cfg config.Config) []DispatcherOption {
	var opts []DispatcherOption
	if cfg.Has(ConfigKeyPrefixSeparator) {
		opts = append(opts, WithPrefixSeparator(cfg.String(ConfigKeyPrefixSeparator, DefaultPrefixSeparator)))
	}
	if vars := cfg.StringMap(ConfigKeyVariables); len(vars) > 0 {
		opts = append(opts, WithVariables(vars))
	}
	return opts
}

// SubstituteConfig returns a copy of cfg with markers in every string value
// substituted. Keys and non-string values are left alone.
func SubstituteConfig(ctx context.Context, s *Substitutor, cfg config.Config) (config.Config, error) {
	out, err := s.SubstituteMap(ctx, cfg.Raw())
	if err != nil {
		return config.Config{}, err
	}
	return config.New(out), nil
}
