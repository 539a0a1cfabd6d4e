package ds

import (
	"golang.org/x/exp/constraints"
)

// Clamp limits t to the closed range [low, high].
// When high < low, low wins.
func Clamp[T constraints.Ordered](t, low, high T) T {
	if t > high {
		t = high
	}
	if t < low {
		t = low
	}
	return t
}
