// Package source decodes raw documents into the map[string]any mappings a
// schema binds. JSON is read token by token through goccy/go-json so that
// duplicate keys and excessive nesting can be rejected while decoding; YAML
// is read with gopkg.in/yaml.v3.
package source

import (
	"fmt"
	"strings"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a name or file extension ("yml", ".json") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("source: unsupported format %q", s)
}

// Options tunes decoding.
type Options struct {
	// RejectDuplicateKeys fails JSON input that repeats a key in one object.
	RejectDuplicateKeys bool
	// MaxDepth limits JSON nesting; 0 means unlimited.
	MaxDepth int
	// Float64Numbers decodes JSON numbers as float64 instead of json.Number.
	Float64Numbers bool
}

// Decode dispatches on format.
func Decode(data []byte, format Format, opt Options) (map[string]any, error) {
	switch format {
	case FormatJSON, "":
		return DecodeJSON(data, opt)
	case FormatYAML:
		return DecodeYAML(data)
	}
	return nil, fmt.Errorf("source: unsupported format %q", format)
}
