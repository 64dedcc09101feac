package catalogs

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Tag is a tag in the target catalog. CategoryID is nil for tags without a category.
type Tag struct {
	ID         int    `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	CategoryID *int   `json:"categoryId" yaml:"categoryId"`
}

// Key returns the tag's canonical identity.
func (t Tag) Key() CanonicalKey {
	return Key(t.Name)
}

// SameCategory reports whether two optional category references are equal.
func SameCategory(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// FormatCategoryID renders an optional category reference for logs.
func FormatCategoryID(id *int) string {
	if id == nil {
		return "none"
	}
	return strconv.Itoa(*id)
}

// OriginTag is a tag as attached to an origin post.
type OriginTag struct {
	// Names holds the tag's aliases; the first one is canonical.
	Names []string `json:"names"`
	// Category is the origin category label, empty when absent.
	Category string `json:"category"`
}

// UnmarshalJSON tolerates non-string aliases and a null or non-string
// category label.
func (t *OriginTag) UnmarshalJSON(data []byte) error {
	var raw struct {
		Names    []any `json:"names"`
		Category any   `json:"category"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	names := make([]string, 0, len(raw.Names))
	for _, n := range raw.Names {
		if n == nil {
			continue
		}
		names = append(names, scalarString(n))
	}
	*t = OriginTag{
		Names:    names,
		Category: scalarString(raw.Category),
	}
	return nil
}

// CanonicalName returns the first alias, trimmed, or "" when there is none.
func (t OriginTag) CanonicalName() string {
	if len(t.Names) == 0 {
		return ""
	}
	return strings.TrimSpace(t.Names[0])
}

// scalarString renders a decoded JSON scalar the way it would be displayed.
func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
