// Package decode turns candidate configuration files into the generic value
// tree the validator walks. Configuration ships in JSON, YAML, and TOML;
// every format is normalized to map[string]any / []any / primitives.
package decode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a candidate document encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

// ParseFormat maps a format name to a Format. Empty means JSON.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return FormatJSON, fmt.Errorf("decode: unsupported format %q", name)
	}
}

// DetectFormat picks a Format from a file extension, defaulting to JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Bytes decodes raw candidate bytes in the given format.
func Bytes(b []byte, f Format) (any, error) {
	switch f {
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(b, &v); err != nil {
			return nil, err
		}
		return normalize(v), nil
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(b, &m); err != nil {
			return nil, err
		}
		return normalize(m), nil
	default:
		var v any
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// File reads and decodes a candidate document, detecting the format from the
// file extension.
func File(path string) (any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Bytes(b, DetectFormat(path))
}

// normalize rewrites decoder-specific container types into the shapes the
// engine expects: map[string]any for objects, []any for arrays.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprintf("%v", k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = normalize(el)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = normalize(el)
		}
		return out
	default:
		return v
	}
}
