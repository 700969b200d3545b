package utils

// FindIndex returns the position of the first item in slice, -1 if absent.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}
