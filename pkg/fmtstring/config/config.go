package config

import (
	"fmt"

	"github.com/randalmurphal/fmtstring/pkg/fmtstring"
)

// Keys read by the fmtstring CLI from a --config file.
const (
	KeyCatalog  = "catalog"
	KeyVerbose  = "verbose"
	KeyArgsFile = "args_file"
	KeyArgs     = "args"
)

// Config is a read-only view over decoded YAML or JSON settings.
// Accessors return the given default when a key is missing or holds
// a value of the wrong type.
type Config struct {
	data map[string]any
}

// New wraps data. A nil map behaves as an empty config.
func New(data map[string]any) Config {
	if data == nil {
		data = map[string]any{}
	}
	return Config{data: data}
}

func typed[T any](c Config, key string) (T, bool) {
	v, ok := c.data[key].(T)
	return v, ok
}

// String returns the string at key, or def.
func (c Config) String(key, def string) string {
	if s, ok := typed[string](c, key); ok {
		return s
	}
	return def
}

// Bool returns the boolean at key, or def.
func (c Config) Bool(key string, def bool) bool {
	if b, ok := typed[bool](c, key); ok {
		return b
	}
	return def
}

// Int returns the integer at key, or def.
// JSON numbers (float64) are accepted when they have no fractional part.
func (c Config) Int(key string, def int) int {
	switch v := c.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}
	return def
}

// StringSlice returns the list of strings at key, or def if the value
// is not a list or any element is not a string.
func (c Config) StringSlice(key string, def []string) []string {
	switch v := c.data[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return def
			}
			out[i] = s
		}
		return out
	}
	return def
}

// Args converts the inline argument block at key into a Lookup.
// A missing key gives an empty Lookup.
func (c Config) Args(key string) (fmtstring.Lookup, error) {
	v, ok := c.data[key]
	if !ok {
		return fmtstring.Lookup{}, nil
	}
	lookup, err := toLookup(v)
	if err != nil {
		return nil, fmt.Errorf("config key %q: %w", key, err)
	}
	return lookup, nil
}

// Has reports whether key is present.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Raw returns the underlying map. Callers must not modify it.
func (c Config) Raw() map[string]any {
	return c.data
}
