package normalize

import (
	"fmt"
	"strings"
)

// ParseTags turns a comma-separated string or a list of values into trimmed,
// non-empty tags. Order is preserved; anything else yields nil.
func ParseTags(v any) []string {
	var parts []string
	switch t := v.(type) {
	case string:
		parts = strings.Split(t, ",")
	case []string:
		parts = t
	case []any:
		for _, e := range t {
			if e != nil {
				parts = append(parts, fmt.Sprint(e))
			}
		}
	default:
		return nil
	}

	var tags []string
	for _, p := range parts {
		if p = CollapseSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
