// Package ptr has helpers for optional values, such as a tag's category
// reference.
package ptr

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Int returns a pointer to a copy of i.
func Int(i int) *int {
	return To(i)
}

