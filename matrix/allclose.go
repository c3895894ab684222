// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN != anything; +Inf equals +Inf; -Inf equals -Inf. Deterministic.
//
// Policy:
//   - a and b must be non-nil and have identical shapes (ErrShape otherwise).
//   - rtol, atol are treated as |rtol|, |atol|; NaN/Inf tolerances fail with ErrNaNInf.
//
// Time: O(r*c). Space: O(1).
func AllClose(a, b *Dense, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, fmt.Errorf("AllClose: %w", ErrNaNInf)
	}
	if err := ValidateNotNil(a, b); err != nil {
		return false, fmt.Errorf("AllClose: %w", err)
	}
	if a.r != b.r || a.c != b.c {
		return false, Errorf("AllClose", ErrShape, "%dx%d vs %dx%d", a.r, a.c, b.r, b.c)
	}

	return SliceClose(a.data, b.data, rtol, atol), nil
}

// SliceClose is the flat-buffer form of AllClose; slices of different length
// are never close.
func SliceClose(a, b []float64, rtol, atol float64) bool {
	if len(a) != len(b) {
		return false
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for i := range a {
		if a[i] == b[i] { // covers matching infinities
			continue
		}
		if math.Abs(a[i]-b[i]) > atol+rtol*math.Abs(b[i]) || math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			return false
		}
	}

	return true
}
