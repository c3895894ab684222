// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FromGonum copies any gonum matrix into a Dense (finite policy applies).
// Complexity: O(r*c).
func FromGonum(src mat.Matrix, opts ...Option) (*Dense, error) {
	if src == nil {
		return nil, fmt.Errorf("FromGonum: %w", ErrNilMatrix)
	}
	r, c := src.Dims()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data = append(data, src.At(i, j))
		}
	}

	return NewDenseFrom(r, c, data, opts...)
}

// ToGonum copies m into a *mat.Dense.
// gonum forbids zero-sized matrices, so an empty m fails with ErrInvalidDimensions.
// Complexity: O(r*c).
func (m *Dense) ToGonum() (*mat.Dense, error) {
	if m.r == 0 || m.c == 0 {
		return nil, Errorf("Dense.ToGonum", ErrInvalidDimensions, "%dx%d", m.r, m.c)
	}
	buf := make([]float64, len(m.data))
	copy(buf, m.data)

	return mat.NewDense(m.r, m.c, buf), nil
}
