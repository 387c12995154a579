package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PathSeparator separates segments in dotted lookup paths such as "db.primary.host".
const PathSeparator = "."

// Config wraps a decoded YAML or JSON document for type-safe value extraction.
// All accessor methods return default values if the key is missing
// or the value cannot be converted to the requested type.
//
// Keys given to the accessors are dotted paths; "server.port" reads
// data["server"]["port"].
type Config struct {
	data map[string]any
}

// New creates a Config from the given map.
// If data is nil, an empty Config is returned.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// Lookup walks a dotted path through nested maps and slices.
// Slice elements are addressed by index: "hosts.0".
func (c Config) Lookup(path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	if v, ok := c.data[path]; ok {
		return v, true
	}

	var cur any = c.data
	for _, seg := range strings.Split(path, PathSeparator) {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Sub returns the nested section at path as its own Config.
// Missing or non-map sections yield an empty Config.
func (c Config) Sub(path string) Config {
	v, ok := c.Lookup(path)
	if !ok {
		return New(nil)
	}
	if m, ok := v.(map[string]any); ok {
		return New(m)
	}
	return New(nil)
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (c Config) String(key, defaultVal string) string {
	v, ok := c.Lookup(key)
	if !ok {
		return defaultVal
	}
	if s, ok := v.(string); ok {
		return s
	}
	return defaultVal
}

// Text returns the value for key rendered as text.
//
// Scalars are formatted with fmt; maps and slices are not text and report
// false, as does a missing key or an explicit null.
func (c Config) Text(key string) (string, bool) {
	v, ok := c.Lookup(key)
	if !ok || v == nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case map[string]any, []any:
		return "", false
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		return fmt.Sprint(val), true
	}
}

// Duration returns the duration value for key, or defaultVal if missing or invalid.
//
// Accepts:
//   - string: parsed with time.ParseDuration
//   - int: interpreted as seconds
//   - float64: interpreted as seconds
//   - time.Duration: used directly
func (c Config) Duration(key string, defaultVal time.Duration) time.Duration {
	v, ok := c.Lookup(key)
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case string:
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	case float64:
		return time.Duration(val * float64(time.Second))
	case int:
		return time.Duration(val) * time.Second
	case time.Duration:
		return val
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or not a bool.
// The strings "true" and "false" are accepted as well.
func (c Config) Bool(key string, defaultVal bool) bool {
	v, ok := c.Lookup(key)
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// Int returns the integer value for key, or defaultVal if missing or not convertible.
// Floats are only converted when they have no fractional part.
func (c Config) Int(key string, defaultVal int) int {
	v, ok := c.Lookup(key)
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		if val == float64(int(val)) {
			return int(val)
		}
	}
	return defaultVal
}

// StringSlice returns the string slice for key, or defaultVal if missing or
// if any element is not a string.
func (c Config) StringSlice(key string, defaultVal []string) []string {
	v, ok := c.Lookup(key)
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		result := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return defaultVal
			}
			result = append(result, s)
		}
		return result
	}
	return defaultVal
}

// StringMap returns the section at key as a flat map of text values.
// Nested sections are skipped.
func (c Config) StringMap(key string) map[string]string {
	section := c.Sub(key)
	out := make(map[string]string, len(section.data))
	for k := range section.data {
		if s, ok := section.Text(k); ok {
			out[k] = s
		}
	}
	return out
}

// Has returns true if the key exists in the config.
func (c Config) Has(key string) bool {
	_, ok := c.Lookup(key)
	return ok
}

// Raw returns the underlying map.
// The returned map should not be modified.
func (c Config) Raw() map[string]any {
	return c.data
}
