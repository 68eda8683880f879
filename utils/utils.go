// Package utils contains helper functions shared by the other packages.
package utils

import (
	"golang.org/x/exp/constraints"
)

// AllDistinct returns true if all elements of the slice are distinct.
func AllDistinct[V comparable](values []V) bool {
	m := make(map[V]struct{}, len(values))
	for _, v := range values {
		if _, ok := m[v]; ok {
			return false
		}
		m[v] = struct{}{}
	}
	return true
}

// GCD computes the greatest common divisor of a and b.
func GCD[T constraints.Unsigned](a, b T) T {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Min returns the minimum of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a <= b {
		return a
	}
	return b
}

// Max returns the maximum of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a >= b {
		return a
	}
	return b
}

// IsInSlice returns true if x is in the slice.
func IsInSlice[V comparable](x V, slice []V) bool {
	for _, v := range slice {
		if v == x {
			return true
		}
	}
	return false
}
