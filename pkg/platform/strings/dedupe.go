// Package strings provides string and slice manipulation utilities.
package strings

import (
	"strings"
)

// DedupeBy keeps the first element for each key, preserving input order.
// Elements whose key is the zero value are kept or dropped according to keepZero.
//
// Example:
//
//	DedupeBy([]string{"b", "a", "b"}, func(s string) string { return s }, true)
//	// Returns: []string{"b", "a"}
func DedupeBy[T any, K comparable](values []T, key func(T) K, keepZero bool) []T {
	if values == nil {
		return nil
	}

	var zero K
	seen := make(map[K]struct{}, len(values))
	result := make([]T, 0, len(values))

	for _, v := range values {
		k := key(v)
		if k == zero && !keepZero {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, v)
	}

	return result
}

// TrimAll trims whitespace from every element without dropping or merging any.
func TrimAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
