// SPDX-License-Identifier: MIT

// Package matrix - Stack: a contiguous (r, n, d) batch of uniform point arrays.
//
// Purpose:
//   - Represent a reference stack ("markers") or a batch of queries as one
//     row-major buffer: item i, row j, column k lives at (i*n + j)*d + k.
//   - Make non-uniform item shapes unrepresentable: StackOf validates every
//     item before allocating, so bulk kernels never meet a ragged batch.
//   - Hand out borrowed per-item *Dense views (Item) without copying.
//
// Complexity quicksheet:
//   - NewStack/NewStackFrom/StackOf: O(r*n*d); Item: O(1); At/Set: O(1).

package matrix

import (
	"fmt"
	"math"
)

const (
	ctxStack     = "Stack"
	ctxNewStack  = "NewStack"
	ctxStackFrom = "NewStackFrom"
	ctxStackOf   = "StackOf"
)

// Stack holds r items, each an n×d point array, in one flat buffer.
type Stack struct {
	r, n, d        int       // items, rows per item, columns
	data           []float64 // len == r*n*d
	validateNaNInf bool      // numeric guard inherited by Item views
}

// NewStack allocates a zero-filled (r, n, d) stack.
//
// Errors:
//   - ErrInvalidDimensions on any negative dimension or when items*rows*cols
//     overflows an int.
//
// Complexity:
//   - Time O(r*n*d), Space O(r*n*d).
func NewStack(items, rows, cols int, opts ...Option) (*Stack, error) {
	size, ok := elemCount(items, rows, cols)
	if !ok {
		return nil, Errorf(ctxNewStack, ErrInvalidDimensions, "%dx%dx%d", items, rows, cols)
	}
	o := gatherOptions(opts...)

	return &Stack{
		r:              items,
		n:              rows,
		d:              cols,
		data:           make([]float64, size),
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// NewStackFrom copies a row-major (r, n, d) buffer into a new Stack.
//
// Implementation:
//   - Stage 1: validate dimensions and len(data) == r*n*d.
//   - Stage 2: under the finite policy, reject NaN/±Inf.
//   - Stage 3: copy data (the caller keeps ownership of its slice).
//
// Errors:
//   - ErrInvalidDimensions, ErrShape, ErrNaNInf.
func NewStackFrom(items, rows, cols int, data []float64, opts ...Option) (*Stack, error) {
	size, ok := elemCount(items, rows, cols)
	if !ok {
		return nil, Errorf(ctxStackFrom, ErrInvalidDimensions, "%dx%dx%d", items, rows, cols)
	}
	if len(data) != size {
		return nil, Errorf(ctxStackFrom, ErrShape, "len(data)=%d, want %d", len(data), size)
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		if idx := firstNonFinite(data); idx >= 0 {
			return nil, Errorf(ctxStackFrom, ErrNaNInf, "flat index %d", idx)
		}
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Stack{r: items, n: rows, d: cols, data: buf, validateNaNInf: o.validateNaNInf}, nil
}

// StackOf copies items into a new Stack.
// All items must share the same (n, d); the check runs over every item before
// anything is allocated, so a ragged batch fails fast with ErrShape.
// StackOf() with no items yields an empty (0, 0, 0) stack.
//
// Errors:
//   - ErrNilMatrix when any item is nil; ErrShape on non-uniform shapes.
//
// Complexity:
//   - Time O(r*n*d), Space O(r*n*d).
func StackOf(items ...*Dense) (*Stack, error) {
	if len(items) == 0 {
		return NewStack(0, 0, 0)
	}
	if err := ValidateUniform(items...); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxStackOf, err)
	}
	n, d := items[0].Shape()
	s := &Stack{
		r:              len(items),
		n:              n,
		d:              d,
		data:           make([]float64, 0, len(items)*n*d),
		validateNaNInf: items[0].validateNaNInf,
	}
	for _, it := range items {
		s.data = append(s.data, it.data...)
	}

	return s, nil
}

// Len returns the number of items r.
func (s *Stack) Len() int { return s.r }

// ItemRows returns the rows per item n.
func (s *Stack) ItemRows() int { return s.n }

// Cols returns the shared column (feature) count d.
func (s *Stack) Cols() int { return s.d }

// Dims implements Array: {r, n, d}. A nil *Stack reports no dimensions.
func (s *Stack) Dims() []int {
	if s == nil {
		return nil
	}

	return []int{s.r, s.n, s.d}
}

// RawData returns the borrowed flat buffer (len == r*n*d).
func (s *Stack) RawData() []float64 { return s.data }

// Item returns a borrowed n×d view of item i sharing the stack's buffer.
// Writes through the view mutate the stack.
//
// Errors:
//   - ErrOutOfRange when i is outside [0, Len()).
//
// Complexity: O(1).
func (s *Stack) Item(i int) (*Dense, error) {
	if i < 0 || i >= s.r {
		return nil, fmt.Errorf("%s.Item(%d): %w", ctxStack, i, ErrOutOfRange)
	}

	return s.item(i), nil
}

// item is the unchecked variant of Item used by bulk kernels after validation.
func (s *Stack) item(i int) *Dense {
	size := s.n * s.d
	base := i * size

	return &Dense{r: s.n, c: s.d, data: s.data[base : base+size : base+size], validateNaNInf: s.validateNaNInf}
}

// MustItem is the unchecked accessor for kernels that already validated i.
// It panics on out-of-range indices (programmer error).
func (s *Stack) MustItem(i int) *Dense {
	if i < 0 || i >= s.r {
		panic(fmt.Sprintf("matrix: Stack.MustItem(%d) out of range [0,%d)", i, s.r))
	}

	return s.item(i)
}

// At returns element (i, j, k) or ErrOutOfRange.
// Complexity: O(1).
func (s *Stack) At(i, j, k int) (float64, error) {
	off, err := s.offset(i, j, k)
	if err != nil {
		return 0, fmt.Errorf("%s.At(%d,%d,%d): %w", ctxStack, i, j, k, err)
	}

	return s.data[off], nil
}

// Set stores v at (i, j, k), honoring the numeric policy.
// Complexity: O(1).
func (s *Stack) Set(i, j, k int, v float64) error {
	off, err := s.offset(i, j, k)
	if err != nil {
		return fmt.Errorf("%s.Set(%d,%d,%d): %w", ctxStack, i, j, k, err)
	}
	if s.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return fmt.Errorf("%s.Set(%d,%d,%d): %w", ctxStack, i, j, k, ErrNaNInf)
	}
	s.data[off] = v

	return nil
}

func (s *Stack) offset(i, j, k int) (int, error) {
	if i < 0 || i >= s.r || j < 0 || j >= s.n || k < 0 || k >= s.d {
		return 0, ErrOutOfRange
	}

	return (i*s.n+j)*s.d + k, nil
}

// Permute returns a new stack whose item p is s.Item(perm[p]).
// perm must be a permutation of [0, Len()); otherwise ErrInvalidArgument.
// Complexity: O(r*n*d).
func (s *Stack) Permute(perm []int) (*Stack, error) {
	if len(perm) != s.r {
		return nil, Errorf("Stack.Permute", ErrInvalidArgument, "len(perm)=%d, want %d", len(perm), s.r)
	}
	seen := make([]bool, s.r)
	for _, p := range perm {
		if p < 0 || p >= s.r || seen[p] {
			return nil, Errorf("Stack.Permute", ErrInvalidArgument, "not a permutation")
		}
		seen[p] = true
	}
	size := s.n * s.d
	out := &Stack{r: s.r, n: s.n, d: s.d, data: make([]float64, len(s.data)), validateNaNInf: s.validateNaNInf}
	for dst, src := range perm {
		copy(out.data[dst*size:(dst+1)*size], s.data[src*size:(src+1)*size])
	}

	return out, nil
}
