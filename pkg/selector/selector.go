// Package selector provides the default template.Selector: a small
// dot-path query language over the generic values produced by
// pkg/contenttype (map[string]any, []any, and scalars).
package selector

import (
	"fmt"
	"strconv"
	"strings"
)

// DotPath resolves expressions of the form "a.b.2.c" against nested
// maps and slices, formatting the final scalar as a string.
type DotPath struct{}

// QueryToString implements template.Selector.
func (DotPath) QueryToString(expr string, value any) (string, error) {
	cur := value
	if expr != "" {
		for _, part := range strings.Split(expr, ".") {
			next, err := step(cur, part)
			if err != nil {
				return "", fmt.Errorf("selector: %q: %w", expr, err)
			}
			cur = next
		}
	}
	return format(cur), nil
}

func step(cur any, part string) (any, error) {
	switch v := cur.(type) {
	case map[string]any:
		child, ok := v[part]
		if !ok {
			return nil, fmt.Errorf("no field %q", part)
		}
		return child, nil

	case []any:
		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid index", part)
		}
		if idx < 0 || idx >= len(v) {
			return nil, fmt.Errorf("index %d out of range", idx)
		}
		return v[idx], nil

	default:
		return nil, fmt.Errorf("cannot index into %T with %q", cur, part)
	}
}

func format(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
