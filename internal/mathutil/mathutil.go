// Package mathutil provides small width and bit-count helpers shared by
// the value packages.
package mathutil

import "math/bits"

// BitsFor returns the number of bits needed to represent 'value'.
// BitsFor(0) is 1.
func BitsFor(value uint64) int {
	if value == 0 {
		return 1
	}
	return bits.Len64(value)
}

func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
