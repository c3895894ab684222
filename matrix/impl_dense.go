// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Expose borrowed row views (Row) for hot kernels that must not allocate.
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// A Dense is a point array: n rows (points) of d columns (features). Zero
// rows or zero columns are legal; an empty point set is a valid operand.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Row: O(1); Clone: O(r*c); Transpose: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt        = "At"           // method tag used in error wrappers
	ctxSet       = "Set"          // method tag used in error wrappers
	ctxNewDense  = "NewDense"     // ctor tag
	ctxDenseFrom = "NewDenseFrom" // ctor tag
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Complexity: O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables optional NaN/Inf rejection in Set.
type Dense struct {
	r, c           int       // row and column counts (>=0)
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>=0 && cols>=0 and that rows*cols fits in an int;
//     else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//   - Stage 3: resolve numeric policy from opts.
//
// Errors:
//   - ErrInvalidDimensions (negative dimension or element count overflow).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	size, ok := elemCount(rows, cols)
	if !ok {
		return nil, Errorf(ctxNewDense, ErrInvalidDimensions, "%dx%d", rows, cols)
	}
	o := gatherOptions(opts...)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, size),
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// NewDenseFrom creates an r×c matrix holding a copy of data (row-major).
//
// Implementation:
//   - Stage 1: validate dimensions and len(data) == rows*cols.
//   - Stage 2: under the finite policy, scan data for NaN/±Inf.
//   - Stage 3: copy into a fresh buffer (the caller keeps ownership of data).
//
// Errors:
//   - ErrInvalidDimensions, ErrShape (length mismatch), ErrNaNInf.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows, cols int, data []float64, opts ...Option) (*Dense, error) {
	size, ok := elemCount(rows, cols)
	if !ok {
		return nil, Errorf(ctxDenseFrom, ErrInvalidDimensions, "%dx%d", rows, cols)
	}
	if len(data) != size {
		return nil, Errorf(ctxDenseFrom, ErrShape, "len(data)=%d, want %d", len(data), size)
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		if idx := firstNonFinite(data); idx >= 0 {
			return nil, denseErrorf(ctxDenseFrom, idx/max(cols, 1), idx%max(cols, 1), ErrNaNInf)
		}
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Dense{r: rows, c: cols, data: buf, validateNaNInf: o.validateNaNInf}, nil
}

// NewDenseRows builds a matrix from a slice of equally long rows.
// A ragged input fails with ErrShape; an empty input yields a 0×0 matrix.
// Complexity: O(r*c).
func NewDenseRows(rows [][]float64, opts ...Option) (*Dense, error) {
	if len(rows) == 0 {
		return NewDense(0, 0, opts...)
	}
	cols := len(rows[0])
	flat := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, Errorf("NewDenseRows", ErrShape, "row %d has %d cols, want %d", i, len(row), cols)
		}
		flat = append(flat, row...)
	}

	return NewDenseFrom(len(rows), cols, flat, opts...)
}

// Rows returns the row count. No side effects.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
// Complexity: O(1).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// Dims implements Array. A nil *Dense reports no dimensions.
func (m *Dense) Dims() []int {
	if m == nil {
		return nil
	}

	return []int{m.r, m.c}
}

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Returns a bare sentinel; public methods (At/Set) wrap it with coordinates.
// Complexity: O(1).
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for non-finite v when the policy is on.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Row returns a borrowed view of row i (no copy). Mutating the returned slice
// mutates the matrix and bypasses the numeric policy; kernels treat it as
// read-only. The index must be in range; this is the unchecked hot-path
// accessor used by distance kernels.
// Complexity: O(1).
func (m *Dense) Row(i int) []float64 {
	base := i * m.c

	return m.data[base : base+m.c : base+m.c]
}

// RawData returns the borrowed row-major backing buffer (len == Rows*Cols).
// Complexity: O(1).
func (m *Dense) RawData() []float64 { return m.data }

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           cp,
		validateNaNInf: m.validateNaNInf, // preserve guard policy
	}
}

// Transpose returns a new c×r matrix with element (j,i) = m(i,j).
// Complexity: O(r*c) time and space.
func (m *Dense) Transpose() *Dense {
	out := &Dense{r: m.c, c: m.r, data: make([]float64, len(m.data)), validateNaNInf: m.validateNaNInf}
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			out.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return out
}

// String HUMAN-READABLE dump of rows for diagnostics.
// Not for hot paths; intended for logs, debugging and examples.
// Complexity: O(r*c).
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ { // iterate rows deterministically
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Do visits each element (i,j) in row-major order and calls f(i,j,v).
// Stops early when f returns false. Read-only; no allocations.
// Complexity: O(r*c).
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// firstNonFinite returns the flat index of the first NaN/±Inf in data, or -1.
func firstNonFinite(data []float64) int {
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i
		}
	}

	return -1
}
