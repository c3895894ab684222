package rdist

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/pillars/matrix"
	"github.com/katalvlaran/pillars/sched"
)

// Euclidean computes the n×m distance matrix between the rows of a (n×d) and
// the rows of b (m×d):
//
//	out[i,j] = sqrt( Σ_k (a[i,k] - b[j,k])² )
//
// Algorithm Outline:
//  1. Validate: both non-nil, a.Cols() == b.Cols(); else ErrShape.
//  2. Allocate the n×m output once.
//  3. Serial: one block [0, n). Parallel: contiguous row blocks of a, one per
//     worker; each block writes only its own output rows.
//  4. Every block runs the same row kernel, so both modes produce the same
//     bits for the same input.
//
// Complexity:
//
//	Time   = O(n·m·d)
//	Memory = O(n·m) for the output; no scratch space.
//
// Errors:
//   - ErrNilMatrix — a or b is nil.
//   - ErrShape     — feature dimensions differ.
func Euclidean(a, b *matrix.Dense, opts ...Option) (*matrix.Dense, error) {
	if err := matrix.ValidateSameCols(a, b); err != nil {
		return nil, fmt.Errorf("rdist.Euclidean: %w", err)
	}
	o := gather(opts)

	out, err := matrix.NewDense(a.Rows(), b.Rows(), matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, fmt.Errorf("rdist.Euclidean: %w", err)
	}
	dst := out.RawData()
	m := b.Rows()

	// Blocks never fail and no caller context exists here, so Background is fine.
	err = sched.ForBlocks(context.Background(), o.Mode, o.Workers, a.Rows(), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			euclideanRow(dst[i*m:(i+1)*m], a.Row(i), b)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rdist.Euclidean: %w", err)
	}

	return out, nil
}

// euclideanRow fills dst[j] with the distance between x and row j of b.
// len(dst) must equal b.Rows() and len(x) must equal b.Cols().
func euclideanRow(dst, x []float64, b *matrix.Dense) {
	for j := range dst {
		dst[j] = distance(x, b.Row(j))
	}
}

// distance is the shared scalar kernel: sqrt of the summed squared differences,
// accumulated left to right.
func distance(x, y []float64) float64 {
	var sum float64
	for k := range x {
		d := x[k] - y[k]
		sum += d * d
	}

	return math.Sqrt(sum)
}

// Flat computes the same distances as Euclidean over raw row-major buffers:
// a holds len(a)/colsA rows, b holds len(b)/colsB rows, and the result is the
// row-major n×m distance buffer.
//
// Errors:
//   - ErrShape — colsA != colsB, a non-positive column count with non-empty
//     data, or a buffer length that is not a multiple of its column count.
func Flat(a, b []float64, colsA, colsB int) ([]float64, error) {
	if colsA != colsB {
		return nil, matrix.Errorf("rdist.Flat", matrix.ErrShape, "%d vs %d columns", colsA, colsB)
	}
	if colsA <= 0 {
		if len(a) == 0 && len(b) == 0 {
			return []float64{}, nil
		}
		return nil, matrix.Errorf("rdist.Flat", matrix.ErrShape, "non-positive column count %d", colsA)
	}
	if len(a)%colsA != 0 || len(b)%colsB != 0 {
		return nil, matrix.Errorf("rdist.Flat", matrix.ErrShape, "buffer lengths %d/%d not divisible by %d", len(a), len(b), colsA)
	}

	n, m := len(a)/colsA, len(b)/colsB
	out := make([]float64, 0, n*m)
	for i := 0; i < n; i++ {
		x := a[i*colsA : (i+1)*colsA]
		for j := 0; j < m; j++ {
			out = append(out, distance(x, b[j*colsB:(j+1)*colsB]))
		}
	}

	return out, nil
}
