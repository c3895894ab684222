package hungarian

// Pair is one matched (row, column) cell of a cost matrix.
type Pair struct {
	Row, Col int
}

// Assignment is a minimum-cost matching.
//
// Pairs covers every row of the smaller side exactly once and is sorted by
// ascending Row. Cost is the sum of the original cost entries over Pairs,
// accumulated in that order.
type Assignment struct {
	Pairs []Pair
	Cost  float64
}

// Cols returns, for each row i, the column it is matched to, or -1 when the
// row is unmatched (only possible when rows > cols).
func (a Assignment) Cols(rows int) []int {
	out := make([]int, rows)
	for i := range out {
		out[i] = -1
	}
	for _, p := range a.Pairs {
		if p.Row >= 0 && p.Row < rows {
			out[p.Row] = p.Col
		}
	}

	return out
}
