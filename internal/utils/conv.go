package utils

import (
	"strconv"
)

// AtoiDefault converts s to an int, falling back when s is empty, not a
// number, or not positive. Used for page/limit query parameters.
func AtoiDefault(s string, fallback int) int {
	i, err := strconv.Atoi(s)
	if err != nil || i < 1 {
		return fallback
	}
	return i
}
