package catalogs

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CanonicalKey is the case and whitespace insensitive identity of a name.
// Two category, tag or source names are the same iff their keys are equal.
type CanonicalKey string

// Key normalizes name into its CanonicalKey: surrounding whitespace is
// trimmed and the remainder is lower-cased. The empty key means "absent".
func Key(name string) CanonicalKey {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	// A Caser keeps state between calls, so one is built per key.
	return CanonicalKey(cases.Lower(language.Und).String(trimmed))
}

// IsZero reports whether the key is empty.
func (k CanonicalKey) IsZero() bool {
	return k == ""
}

// String returns the string representation of a CanonicalKey.
func (k CanonicalKey) String() string {
	return string(k)
}
