// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating nil/shape/finiteness checks here.
//  - Return sentinel errors tagged with the validator name so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure and deterministic; only ValidateFinite is O(size).
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Shape).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures every argument is a non-nil *Dense.
//
// Returns ErrNilMatrix for the first nil argument.
// Complexity: O(len(ms)).
func ValidateNotNil(ms ...*Dense) error {
	for _, m := range ms {
		if m == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	}

	return nil
}

// ValidateSameCols ensures a and b share the feature dimension (column count).
// This is the distance-kernel compatibility rule: a mismatch is a shape
// error, never a broadcast.
//
// Implementation: NotNil → Cols equality.
// Complexity: O(1).
func ValidateSameCols(a, b *Dense) error {
	if err := ValidateNotNil(a, b); err != nil {
		return err
	}
	if a.c != b.c {
		return validatorErrorf("ValidateSameCols", fmt.Errorf("%w: %d vs %d columns", ErrShape, a.c, b.c))
	}

	return nil
}

// ValidateStackCols ensures query rows and stack items share the feature dimension.
// Complexity: O(1).
func ValidateStackCols(q *Dense, s *Stack) error {
	if q == nil || s == nil {
		return validatorErrorf("ValidateStackCols", ErrNilMatrix)
	}
	// An empty stack carries no feature basis to disagree with.
	if s.r == 0 {
		return nil
	}
	if q.c != s.d {
		return validatorErrorf("ValidateStackCols", fmt.Errorf("%w: query %d vs stack %d columns", ErrShape, q.c, s.d))
	}

	return nil
}

// ValidateUniform ensures all items are non-nil and share one (rows, cols) shape.
// Complexity: O(len(items)).
func ValidateUniform(items ...*Dense) error {
	if err := ValidateNotNil(items...); err != nil {
		return validatorErrorf("ValidateUniform", err)
	}
	if len(items) == 0 {
		return nil
	}
	r, c := items[0].Shape()
	for i, it := range items[1:] {
		if it.r != r || it.c != c {
			return validatorErrorf("ValidateUniform",
				fmt.Errorf("%w: item %d is %dx%d, item 0 is %dx%d", ErrShape, i+1, it.r, it.c, r, c))
		}
	}

	return nil
}

// ValidateFinite scans m for NaN/±Inf regardless of its numeric policy.
// Complexity: O(r*c).
func ValidateFinite(m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if idx := firstNonFinite(m.data); idx >= 0 {
		return validatorErrorf("ValidateFinite", denseErrorf(ctxAt, idx/m.c, idx%m.c, ErrNaNInf))
	}

	return nil
}

// ValidateTolerance accepts finite non-negative tolerances.
// Complexity: O(1).
func ValidateTolerance(tol float64) error {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		return validatorErrorf("ValidateTolerance", fmt.Errorf("%w: tolerance %v", ErrInvalidArgument, tol))
	}

	return nil
}

// elemCount returns the product of dims. ok is false when a dimension is
// negative or the product does not fit in an int.
// Complexity: O(len(dims)).
func elemCount(dims ...int) (n int, ok bool) {
	n = 1
	for _, d := range dims {
		if d < 0 {
			return 0, false
		}
		if d != 0 && n > math.MaxInt/d {
			return 0, false
		}
		n *= d
	}

	return n, true
}
