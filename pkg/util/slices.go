package util

// RemoveDuplicatesBy keeps the first item seen for every key, preserving the order of first occurrence
func RemoveDuplicatesBy[T any, K comparable](items []T, key func(T) K) []T {
	present := make(map[K]bool, len(items))
	list := make([]T, 0, len(items))

	for _, item := range items {
		k := key(item)
		if present[k] {
			continue
		}

		present[k] = true
		list = append(list, item)
	}

	return list
}

// Filter returns a new slice holding the items matching p, s is left untouched
func Filter[T any](s []T, p func(T) bool) []T {
	var filtered []T
	for _, e := range s {
		if p(e) {
			filtered = append(filtered, e)
		}
	}

	return filtered
}
