package catalogs

import (
	"encoding/json"
	"strings"
)

// SourceField is the origin post's free-form "source" field. The origin
// stores a single string that may span several lines, but lists are
// accepted too.
type SourceField struct {
	candidates []string
}

// NewSourceField builds a SourceField from a string, a []string or a []any.
// Non-string list entries are dropped; any other value yields an empty field.
func NewSourceField(raw any) SourceField {
	switch v := raw.(type) {
	case string:
		return SourceField{candidates: splitLines(v)}
	case []string:
		return SourceField{candidates: append([]string(nil), v...)}
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return SourceField{candidates: out}
	default:
		return SourceField{}
	}
}

// UnmarshalJSON never fails on an unexpected shape; it yields an empty field.
func (s *SourceField) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = SourceField{}
		return nil
	}
	*s = NewSourceField(raw)
	return nil
}

// MarshalJSON writes the normalized values as a list.
func (s SourceField) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// Values returns the deduplicated, trimmed, non-empty sources in first-seen order.
func (s SourceField) Values() []string {
	return NormalizeSources(s.candidates)
}

// NormalizeSources trims values, drops empty ones and removes duplicates
// under case-insensitive comparison. The first-seen form of each value is
// kept and order is preserved. Applying it to its own output is a no-op.
func NormalizeSources(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[CanonicalKey]struct{}, len(values))
	for _, v := range values {
		value := strings.TrimSpace(v)
		if value == "" {
			continue
		}
		key := Key(value)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, value)
	}
	return result
}

// MissingSources returns the entries of candidates not already present in
// current, compared case and whitespace insensitively, in candidate order.
func MissingSources(current, candidates []string) []string {
	have := make(map[CanonicalKey]struct{}, len(current))
	for _, c := range current {
		have[Key(c)] = struct{}{}
	}
	var missing []string
	for _, c := range NormalizeSources(candidates) {
		if _, ok := have[Key(c)]; ok {
			continue
		}
		missing = append(missing, c)
	}
	return missing
}

// splitLines splits on every line boundary a multi-line text field may use.
func splitLines(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
			return true
		}
		return false
	})
}
