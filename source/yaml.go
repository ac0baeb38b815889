package source

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeYAML decodes a single YAML document whose root is a mapping. Nested
// mappings with non-string keys are normalized to map[string]any. An empty
// document yields an empty mapping.
func DecodeYAML(data []byte) (map[string]any, error) {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("source: decode yaml: %w", err)
	}
	if root == nil {
		return map[string]any{}, nil
	}
	m, ok := normalize(root).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("source: decode yaml: document root is not a mapping")
	}
	return m, nil
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = normalize(e)
		}
		return m
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	}
	return v
}
