package hungarian

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/pillars/matrix"
)

// Solve finds the minimum-cost assignment of the rows of a p×q cost matrix to
// distinct columns (Kuhn–Munkres).
//
// Description:
//
//	Every row is matched to exactly one column and no column is used twice;
//	among all such matchings Solve returns one of minimum total cost.
//	With p ≤ q this is a perfect matching of the rows.
//
// Algorithm Outline (row potentials u, column potentials v):
//  1. Rows are added one at a time. For row i, grow a shortest augmenting
//     path (Dijkstra-like over reduced costs c[i,j] - u[i] - v[j]) until a
//     free column is reached; minv[j] holds the best reduced cost into j and
//     way[j] the previous column on that path.
//  2. On each step, shift the potentials by the smallest slack delta so at
//     least one new column becomes tight.
//  3. Flip the matching along way[] back to the virtual column 0.
//  4. After p rows, read the matching off colRow[].
//
// Orientation:
//   - p = 0 or q = 0 ⇒ empty assignment, cost 0.
//   - p > q ⇒ the transpose is solved and pairs are reported back in the
//     caller's (row, col) orientation; only q rows are matched.
//
// Complexity:
//
//	Time   = O(min(p,q)²·max(p,q))
//	Memory = O(p + q) beyond the input
//
// Errors:
//   - ErrNilMatrix — cost is nil.
//   - ErrNaNInf    — cost holds NaN or ±Inf.
func Solve(cost *matrix.Dense) (Assignment, error) {
	if err := matrix.ValidateNotNil(cost); err != nil {
		return Assignment{}, fmt.Errorf("hungarian.Solve: %w", err)
	}
	if err := matrix.ValidateFinite(cost); err != nil {
		return Assignment{}, fmt.Errorf("hungarian.Solve: %w", err)
	}

	p, q := cost.Shape()
	if p == 0 || q == 0 {
		return Assignment{Pairs: []Pair{}}, nil
	}

	var pairs []Pair
	if p <= q {
		pairs = newSolver(cost).run()
	} else {
		pairs = newSolver(cost.Transpose()).run()
		for k := range pairs {
			pairs[k].Row, pairs[k].Col = pairs[k].Col, pairs[k].Row
		}
		sort.Slice(pairs, func(x, y int) bool { return pairs[x].Row < pairs[y].Row })
	}

	var total float64
	for _, pr := range pairs {
		total += cost.Row(pr.Row)[pr.Col]
	}

	return Assignment{Pairs: pairs, Cost: total}, nil
}

// MinCost returns only the total of Solve(cost).
func MinCost(cost *matrix.Dense) (float64, error) {
	a, err := Solve(cost)
	if err != nil {
		return 0, err
	}

	return a.Cost, nil
}

// solver holds the per-call state of one run. Arrays are 1-indexed; index 0
// is the virtual column that roots every augmenting path.
type solver struct {
	c      *matrix.Dense
	p, q   int
	u, v   []float64
	minv   []float64
	colRow []int // colRow[j] = row matched to column j (1-based), 0 if free
	way    []int
	used   []bool
}

func newSolver(c *matrix.Dense) *solver {
	p, q := c.Shape()

	return &solver{
		c:      c,
		p:      p,
		q:      q,
		u:      make([]float64, p+1),
		v:      make([]float64, q+1),
		minv:   make([]float64, q+1),
		colRow: make([]int, q+1),
		way:    make([]int, q+1),
		used:   make([]bool, q+1),
	}
}

// run requires p ≤ q. It returns one Pair per row, ascending by row.
func (s *solver) run() []Pair {
	for i := 1; i <= s.p; i++ {
		s.augment(i)
	}

	pairs := make([]Pair, s.p)
	for j := 1; j <= s.q; j++ {
		if r := s.colRow[j]; r != 0 {
			pairs[r-1] = Pair{Row: r - 1, Col: j - 1}
		}
	}

	return pairs
}

// augment inserts row i into the matching along a shortest augmenting path.
func (s *solver) augment(i int) {
	s.colRow[0] = i
	j0 := 0
	for j := range s.minv {
		s.minv[j] = math.Inf(1)
		s.used[j] = false
	}

	for {
		s.used[j0] = true
		i0 := s.colRow[j0]
		row := s.c.Row(i0 - 1)
		delta, j1 := math.Inf(1), 0
		for j := 1; j <= s.q; j++ {
			if s.used[j] {
				continue
			}
			cur := row[j-1] - s.u[i0] - s.v[j]
			if cur < s.minv[j] {
				s.minv[j] = cur
				s.way[j] = j0
			}
			if s.minv[j] < delta {
				delta, j1 = s.minv[j], j
			}
		}
		for j := 0; j <= s.q; j++ {
			if s.used[j] {
				s.u[s.colRow[j]] += delta
				s.v[j] -= delta
			} else {
				s.minv[j] -= delta
			}
		}
		j0 = j1
		if s.colRow[j0] == 0 {
			break
		}
	}

	// flip the path back to the virtual column
	for j0 != 0 {
		j1 := s.way[j0]
		s.colRow[j0] = s.colRow[j1]
		j0 = j1
	}
}
