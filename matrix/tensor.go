// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// Tensor is an arbitrary-rank row-major float64 array, typically produced by
// external readers before the rank is known. Kernels never consume a Tensor
// directly; AsDense/AsStack convert rank-2 and rank-3 tensors and reject
// everything else with ErrUnsupportedInput.
type Tensor struct {
	shape []int
	data  []float64
}

// NewTensor copies data into a tensor of the given shape.
//
// Errors:
//   - ErrInvalidDimensions on negative dims or an overflowing element count; ErrShape when len(data) != Π shape.
func NewTensor(shape []int, data []float64) (*Tensor, error) {
	size, ok := elemCount(shape...)
	if !ok {
		return nil, Errorf("NewTensor", ErrInvalidDimensions, "shape %v", shape)
	}
	if len(data) != size {
		return nil, Errorf("NewTensor", ErrShape, "len(data)=%d, shape %v wants %d", len(data), shape, size)
	}
	sh := append([]int(nil), shape...)
	buf := append([]float64(nil), data...)

	return &Tensor{shape: sh, data: buf}, nil
}

// Dims implements Array.
func (t *Tensor) Dims() []int {
	if t == nil {
		return nil
	}

	return append([]int(nil), t.shape...)
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int { return len(t.shape) }

// AsDense converts a rank-2 tensor (copying, finite policy applies).
func (t *Tensor) AsDense(opts ...Option) (*Dense, error) {
	if len(t.shape) != 2 {
		return nil, fmt.Errorf("Tensor.AsDense: rank %d: %w", len(t.shape), ErrUnsupportedInput)
	}

	return NewDenseFrom(t.shape[0], t.shape[1], t.data, opts...)
}

// AsStack converts a rank-3 tensor (copying, finite policy applies).
func (t *Tensor) AsStack(opts ...Option) (*Stack, error) {
	if len(t.shape) != 3 {
		return nil, fmt.Errorf("Tensor.AsStack: rank %d: %w", len(t.shape), ErrUnsupportedInput)
	}

	return NewStackFrom(t.shape[0], t.shape[1], t.shape[2], t.data, opts...)
}
