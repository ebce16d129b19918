package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/fmtstring/pkg/fmtstring"
)

// Supported document formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ErrArgsShape is returned when an argument document is neither a
// sequence nor a mapping.
var ErrArgsShape = errors.New("arguments must be a sequence or a mapping")

// FormatForPath returns the document format implied by the file extension.
func FormatForPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported file extension: %q", ext)
	}
}

// FromFile loads a config file, choosing the decoder by extension
// (.yaml, .yml or .json).
func FromFile(path string) (Config, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if format == FormatJSON {
		return FromJSON(data)
	}
	return FromYAML(data)
}

// FromYAML parses a YAML mapping into a Config.
func FromYAML(data []byte) (Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return New(m), nil
}

// FromJSON parses a JSON object into a Config.
func FromJSON(data []byte) (Config, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	return New(m), nil
}

// LoadArgs reads an argument file. See ParseArgs.
func LoadArgs(path string) (fmtstring.Lookup, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read args file: %w", err)
	}
	return ParseArgs(data, format)
}

// ParseArgs decodes an argument document. A top-level sequence becomes
// positional arguments and a top-level mapping becomes named arguments.
// An empty document gives an empty Lookup.
//
// JSON numbers keep their source text, so 1e3 renders as "1e3".
func ParseArgs(data []byte, format string) (fmtstring.Lookup, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmtstring.Lookup{}, nil
	}

	var doc any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported args format: %q", format)
	}

	return toLookup(doc)
}

func toLookup(doc any) (fmtstring.Lookup, error) {
	switch v := doc.(type) {
	case nil:
		return fmtstring.Lookup{}, nil
	case []any:
		return fmtstring.Positional(v...), nil
	case map[string]any:
		return fmtstring.Named(v), nil
	case map[any]any:
		// YAML mappings with non-string keys.
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[fmt.Sprint(k)] = val
		}
		return fmtstring.Named(m), nil
	default:
		return nil, fmt.Errorf("%w, got %T", ErrArgsShape, doc)
	}
}
