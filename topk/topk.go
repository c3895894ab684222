package topk

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/pillars/matrix"
	"github.com/katalvlaran/pillars/sched"
)

// Ranking is one selected reference with its score.
type Ranking struct {
	Index int
	Score float64
}

// Options configures Select and Rank.
type Options struct {
	// Tolerance, when HasTolerance is set, drops every score greater than
	// min(scores) + Tolerance.
	Tolerance    float64
	HasTolerance bool
}

// Option mutates Options.
type Option func(*Options)

// WithTolerance keeps only scores within t of the minimum. t = 0 keeps only
// the ties with the minimum. A negative or NaN t is rejected by Select.
func WithTolerance(t float64) Option {
	return func(o *Options) {
		o.Tolerance = t
		o.HasTolerance = true
	}
}

// Select returns the indices of the k smallest scores, ascending by score.
// See Rank for the ordering and tolerance rules.
func Select(scores []float64, k int, opts ...Option) ([]int, error) {
	ranked, err := Rank(scores, k, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(ranked))
	for i, r := range ranked {
		out[i] = r.Index
	}

	return out, nil
}

// Rank returns up to k (index, score) pairs of the smallest scores.
//
// Ordering:
//   - ascending by score; equal scores keep ascending index order
//   - NaN scores sort after every number
//
// Without tolerance the result has min(k, len(scores)) entries. With
// WithTolerance(t), entries scoring above min(scores)+t are dropped as well;
// NaN scores never pass a tolerance filter.
//
// Errors:
//   - ErrInvalidArgument — k < 0, or a negative/NaN/Inf tolerance.
//
// Complexity: O(r log r) time, O(r) space.
func Rank(scores []float64, k int, opts ...Option) ([]Ranking, error) {
	if k < 0 {
		return nil, matrix.Errorf("topk.Rank", matrix.ErrInvalidArgument, "k=%d", k)
	}
	o := Options{}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.HasTolerance {
		if err := matrix.ValidateTolerance(o.Tolerance); err != nil {
			return nil, fmt.Errorf("topk.Rank: %w", err)
		}
	}

	order := argsort(scores)
	var limit float64
	if o.HasTolerance && len(order) > 0 {
		// order[0] holds the minimum unless every score is NaN
		limit = scores[order[0]] + o.Tolerance
	}
	if len(order) > k {
		order = order[:k]
	}

	out := make([]Ranking, 0, len(order))
	for _, i := range order {
		s := scores[i]
		if o.HasTolerance && !(s <= limit) {
			break
		}
		out = append(out, Ranking{Index: i, Score: s})
	}

	return out, nil
}

// argsort returns the indices of scores ordered by (score, index), NaN last.
func argsort(scores []float64) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	slices.SortFunc(idx, func(a, b int) int {
		return compareScores(scores[a], scores[b], a, b)
	})

	return idx
}

func compareScores(x, y float64, i, j int) int {
	xn, yn := math.IsNaN(x), math.IsNaN(y)
	switch {
	case xn && !yn:
		return 1
	case !xn && yn:
		return -1
	case !xn && x < y:
		return -1
	case !xn && x > y:
		return 1
	}

	return i - j
}

// Match pairs every left value with the right values within tol of it.
//
// Row i lists the indices j with |right[j] - left[i]| <= tol, ordered by that
// absolute difference and then by j, truncated to k entries. Rows may be
// shorter than k (down to empty) when fewer right values qualify. Rows are
// computed in parallel over the left values.
//
// Errors:
//   - ErrInvalidArgument — k < 0, or a negative/NaN/Inf tol.
func Match(left, right []float64, tol float64, k int) ([][]int, error) {
	if k < 0 {
		return nil, matrix.Errorf("topk.Match", matrix.ErrInvalidArgument, "k=%d", k)
	}
	if err := matrix.ValidateTolerance(tol); err != nil {
		return nil, fmt.Errorf("topk.Match: %w", err)
	}

	out := make([][]int, len(left))
	err := sched.Map(context.Background(), sched.Parallel, 0, len(left), func(i int) error {
		diffs := make([]float64, len(right))
		for j, r := range right {
			diffs[j] = math.Abs(r - left[i])
		}
		row := make([]int, 0, min(k, len(right)))
		for _, j := range argsort(diffs) {
			if len(row) == k || !(diffs[j] <= tol) {
				break
			}
			row = append(row, j)
		}
		out[i] = row
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("topk.Match: %w", err)
	}

	return out, nil
}
