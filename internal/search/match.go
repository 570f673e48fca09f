// Package search holds the substring matching shared by the list filters.
package search

import "strings"

// Match reports whether term is a case-insensitive substring of any field.
// An empty term matches everything.
func Match(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Filter returns the items whose fields match term, preserving order.
func Filter[T any](items []T, term string, fields func(T) []string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Match(term, fields(it)...) {
			out = append(out, it)
		}
	}
	return out
}
