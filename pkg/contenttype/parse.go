package contenttype

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseContent implements template.ContentTyper. JSON and YAML are
// parsed into generic any values (maps, slices, scalars) so a
// selector can walk them uniformly; anything else is returned as a
// plain string, which satisfies selectors that only need the raw
// text.
func (Detector) ParseContent(data []byte, contentType string) (any, error) {
	base := contentType
	if i := strings.IndexByte(base, ';'); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimSpace(strings.ToLower(base))

	switch {
	case base == "application/json" || strings.HasSuffix(base, "+json"):
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("contenttype: parsing json: %w", err)
		}
		return v, nil

	case base == "application/yaml" || base == "text/yaml" || strings.HasSuffix(base, "+yaml"):
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("contenttype: parsing yaml: %w", err)
		}
		return v, nil

	default:
		return string(data), nil
	}
}
