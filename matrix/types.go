// SPDX-License-Identifier: MIT

// Package matrix: domain-facing interfaces shared by the array types.
// Dense (rank 2), Stack (rank 3) and Tensor (any rank) all implement Array so
// that rank-based dispatch can inspect operands without type switches on
// every call site.
package matrix

// Array is any n-dimensional float64 container.
//
// Dims returns a freshly allocated shape slice; len(Dims()) is the rank.
type Array interface {
	Dims() []int
}

// Rank returns len(a.Dims()), or 0 for a nil Array.
// Complexity: O(rank).
func Rank(a Array) int {
	if a == nil {
		return 0
	}

	return len(a.Dims())
}

// Compile-time assertions for interface conformance.
var (
	_ Array = (*Dense)(nil)
	_ Array = (*Stack)(nil)
	_ Array = (*Tensor)(nil)
)
