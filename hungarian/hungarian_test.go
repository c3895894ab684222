package hungarian_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/pillars/hungarian"
	"github.com/katalvlaran/pillars/internal/fixture"
	"github.com/katalvlaran/pillars/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bruteForceCost enumerates every injective row→column map (p ≤ q) and
// returns the cheapest total.
func bruteForceCost(c *matrix.Dense) float64 {
	p, q := c.Shape()
	used := make([]bool, q)
	best := math.Inf(1)
	var rec func(i int, acc float64)
	rec = func(i int, acc float64) {
		if i == p {
			best = math.Min(best, acc)
			return
		}
		for j := 0; j < q; j++ {
			if !used[j] {
				used[j] = true
				rec(i+1, acc+c.Row(i)[j])
				used[j] = false
			}
		}
	}
	rec(0, 0)

	return best
}

func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseRows(rows)
	require.NoError(t, err)

	return m
}

// checkValid asserts the pairs form a matching covering min(p, q) rows.
func checkValid(t *testing.T, c *matrix.Dense, a hungarian.Assignment) {
	t.Helper()
	p, q := c.Shape()
	require.Len(t, a.Pairs, min(p, q))
	seenCol := map[int]bool{}
	var sum float64
	for k, pr := range a.Pairs {
		if k > 0 {
			require.Less(t, a.Pairs[k-1].Row, pr.Row)
		}
		require.False(t, seenCol[pr.Col], "column %d matched twice", pr.Col)
		seenCol[pr.Col] = true
		sum += c.Row(pr.Row)[pr.Col]
	}
	require.Equal(t, sum, a.Cost)
}

func TestSolveClassic(t *testing.T) {
	c := mustRows(t, [][]float64{
		{4, 1, 3},
		{2, 0, 5},
		{3, 2, 2},
	})
	a, err := hungarian.Solve(c)
	require.NoError(t, err)
	checkValid(t, c, a)
	assert.Equal(t, 5.0, a.Cost)
	assert.Equal(t, []hungarian.Pair{{0, 1}, {1, 0}, {2, 2}}, a.Pairs)
}

func TestSolveRectangular(t *testing.T) {
	wide := mustRows(t, [][]float64{
		{10, 1, 7, 3},
		{2, 9, 4, 8},
	})
	a, err := hungarian.Solve(wide)
	require.NoError(t, err)
	checkValid(t, wide, a)
	assert.Equal(t, 3.0, a.Cost)

	tall := wide.Transpose()
	b, err := hungarian.Solve(tall)
	require.NoError(t, err)
	checkValid(t, tall, b)
	assert.Equal(t, a.Cost, b.Cost)
	assert.Equal(t, []int{1, 0}, a.Cols(2))
	assert.Equal(t, []int{1, 0, -1, -1}, b.Cols(4))
}

func TestSolveMatchesBruteForce(t *testing.T) {
	src := fixture.New(21)
	shapes := [][2]int{{1, 1}, {1, 5}, {3, 3}, {4, 6}, {6, 6}, {5, 8}, {7, 7}}
	for k, sh := range shapes {
		c, err := src.Stream(uint64(k)).Dense(sh[0], sh[1])
		require.NoError(t, err)

		got, err := hungarian.MinCost(c)
		require.NoError(t, err)
		assert.InDelta(t, bruteForceCost(c), got, 1e-12, "shape %v", sh)
	}
}

func TestSolvePermutationInvariance(t *testing.T) {
	src := fixture.New(4)
	c, err := src.Dense(6, 6)
	require.NoError(t, err)
	base, err := hungarian.MinCost(c)
	require.NoError(t, err)

	rowPerm, colPerm := src.Perm(6), src.Perm(6)
	shuffled, err := matrix.NewDense(6, 6)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			require.NoError(t, shuffled.Set(i, j, c.Row(rowPerm[i])[colPerm[j]]))
		}
	}
	got, err := hungarian.MinCost(shuffled)
	require.NoError(t, err)
	assert.InDelta(t, base, got, 1e-12)
}

func TestSolveDegenerate(t *testing.T) {
	for _, sh := range [][2]int{{0, 0}, {0, 4}, {4, 0}} {
		c, err := matrix.NewDense(sh[0], sh[1])
		require.NoError(t, err)
		a, err := hungarian.Solve(c)
		require.NoError(t, err)
		assert.Empty(t, a.Pairs)
		assert.Zero(t, a.Cost)
	}

	zeros, err := matrix.NewDense(5, 5)
	require.NoError(t, err)
	a, err := hungarian.Solve(zeros)
	require.NoError(t, err)
	checkValid(t, zeros, a)
	assert.Zero(t, a.Cost)
}

func TestSolveRejectsBadInput(t *testing.T) {
	_, err := hungarian.Solve(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	c, err := matrix.NewDense(2, 2, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, c.Set(1, 0, math.NaN()))
	_, err = hungarian.Solve(c)
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	require.NoError(t, c.Set(1, 0, math.Inf(1)))
	_, err = hungarian.MinCost(c)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}
