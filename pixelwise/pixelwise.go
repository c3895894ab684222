// Package pixelwise matches value cubes lane by lane.
//
// A cube is a matrix.Stack read as (X, Y, K): X×Y pixels, each holding a lane
// of K candidate values. MatchIndexes compares the lanes of two cubes pixel by
// pixel and reports every pair of lane positions whose values agree within a
// tolerance.
package pixelwise

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/pillars/matrix"
	"github.com/katalvlaran/pillars/sched"
)

// Indexes is the column-oriented list of matches: match m is pixel
// (X[m], Y[m]) with left lane position Left[m] and right lane position Right[m].
type Indexes struct {
	X, Y        []int
	Left, Right []int
}

// Len returns the number of matches.
func (ix Indexes) Len() int { return len(ix.X) }

// MatchIndexes records (x, y, l, r) whenever
//
//	|left[x,y,l] - right[x,y,r]| < tol  and  neither value equals invalid
//
// Matches are ordered by x, then y, then l, then r. The cubes must agree on
// their first two axes; lane lengths may differ. Pixel rows (x) are scanned in
// parallel and joined in order.
//
// Errors:
//   - ErrNilMatrix       — a nil cube.
//   - ErrShape           — the (X, Y) extents differ.
//   - ErrInvalidArgument — tol is negative, NaN or infinite.
//
// Complexity: O(X·Y·Kl·Kr) time.
func MatchIndexes(left, right *matrix.Stack, tol, invalid float64) (Indexes, error) {
	if left == nil || right == nil {
		return Indexes{}, fmt.Errorf("pixelwise.MatchIndexes: %w", matrix.ErrNilMatrix)
	}
	if left.Len() != right.Len() || left.ItemRows() != right.ItemRows() {
		return Indexes{}, matrix.Errorf("pixelwise.MatchIndexes", matrix.ErrShape,
			"pixel grid %dx%d vs %dx%d", left.Len(), left.ItemRows(), right.Len(), right.ItemRows())
	}
	if err := matrix.ValidateTolerance(tol); err != nil {
		return Indexes{}, fmt.Errorf("pixelwise.MatchIndexes: %w", err)
	}

	nx := left.Len()
	parts := make([]Indexes, nx)
	err := sched.Map(context.Background(), sched.Parallel, 0, nx, func(x int) error {
		l, err := left.Item(x)
		if err != nil {
			return err
		}
		r, err := right.Item(x)
		if err != nil {
			return err
		}
		parts[x] = matchRow(x, l, r, tol, invalid)
		return nil
	})
	if err != nil {
		return Indexes{}, fmt.Errorf("pixelwise.MatchIndexes: %w", err)
	}

	var out Indexes
	for _, p := range parts {
		out.X = append(out.X, p.X...)
		out.Y = append(out.Y, p.Y...)
		out.Left = append(out.Left, p.Left...)
		out.Right = append(out.Right, p.Right...)
	}
	if out.X == nil {
		out = Indexes{X: []int{}, Y: []int{}, Left: []int{}, Right: []int{}}
	}

	return out, nil
}

// matchRow scans the Y pixels of row x; l and r are Y×K slices of the cubes.
func matchRow(x int, l, r *matrix.Dense, tol, invalid float64) Indexes {
	var out Indexes
	for y := 0; y < l.Rows(); y++ {
		ll, rl := l.Row(y), r.Row(y)
		for i, a := range ll {
			if a == invalid {
				continue
			}
			for j, b := range rl {
				if b != invalid && math.Abs(a-b) < tol {
					out.X = append(out.X, x)
					out.Y = append(out.Y, y)
					out.Left = append(out.Left, i)
					out.Right = append(out.Right, j)
				}
			}
		}
	}

	return out
}
