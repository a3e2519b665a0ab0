package catalog

import (
	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of an identifier. Two identifiers are equal
// under the case-insensitive policy when their folded forms are equal.
func Fold(name string) string {
	// A Caser keeps state and is not safe for concurrent use.
	return cases.Fold().String(name)
}

// NameEqual compares two identifiers under the given case policy.
func NameEqual(a, b string, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}
	if a == b {
		return true
	}
	return Fold(a) == Fold(b)
}

// Find returns the first item whose name matches under the case policy, or
// the zero value of T.
func Find[T Object](items []T, name string, caseSensitive bool) T {
	for _, it := range items {
		if NameEqual(it.ObjectName(), name, caseSensitive) {
			return it
		}
	}
	var zero T
	return zero
}

func remove[T comparable](items []T, item T) ([]T, bool) {
	for i, it := range items {
		if it == item {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}
