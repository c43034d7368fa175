package config

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Setting is a single extra Doxyfile key.
type Setting struct {
	Key   string
	Value string
}

// OrderedSettings preserves declaration order from YAML mappings.
type OrderedSettings []Setting

// UnmarshalYAML decodes a mapping node, keeping key order.
func (s *OrderedSettings) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: settings must be a mapping", value.Line)
	}
	out := make(OrderedSettings, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: setting %q must be a scalar", v.Line, k.Value)
		}
		out = append(out, Setting{Key: k.Value, Value: v.Value})
	}
	*s = out
	return nil
}

// UnmarshalTOML decodes a TOML table. TOML tables are unordered, so keys are
// sorted. Booleans become YES/NO and arrays become space-separated lists.
func (s *OrderedSettings) UnmarshalTOML(data any) error {
	m, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("settings must be a table")
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(OrderedSettings, 0, len(keys))
	for _, k := range keys {
		var v string
		switch tv := m[k].(type) {
		case []any:
			items := make([]string, 0, len(tv))
			for _, item := range tv {
				s, ok := tomlScalar(item)
				if !ok {
					return fmt.Errorf("setting %q: list entries must be scalars", k)
				}
				items = append(items, s)
			}
			v = JoinList(items)
		default:
			s, ok := tomlScalar(tv)
			if !ok {
				return fmt.Errorf("setting %q must be a scalar or a list of scalars", k)
			}
			v = s
		}
		out = append(out, Setting{Key: k, Value: v})
	}
	*s = out
	return nil
}

func tomlScalar(v any) (string, bool) {
	switch tv := v.(type) {
	case bool:
		if tv {
			return "YES", true
		}
		return "NO", true
	case string, int64, float64:
		return fmt.Sprint(tv), true
	case fmt.Stringer:
		// datetimes
		return tv.String(), true
	}
	return "", false
}

// JoinList space-joins Doxyfile list values. Doxygen splits lists on
// whitespace, so an item containing whitespace is double-quoted.
func JoinList(items []string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		if strings.ContainsAny(item, " \t") {
			item = `"` + item + `"`
		}
		parts[i] = item
	}
	return strings.Join(parts, " ")
}
