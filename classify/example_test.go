package classify_test

import (
	"fmt"

	"github.com/katalvlaran/pillars/classify"
	"github.com/katalvlaran/pillars/matrix"
)

// ExampleClosest picks the two markers nearest to a query.
func ExampleClosest() {
	q, _ := matrix.NewDenseRows([][]float64{{0, 0}, {1, 1}})
	far, _ := matrix.NewDenseRows([][]float64{{9, 9}, {8, 8}})
	same, _ := matrix.NewDenseRows([][]float64{{1, 1}, {0, 0}})
	near, _ := matrix.NewDenseRows([][]float64{{0, 1}, {1, 2}})
	markers, _ := matrix.StackOf(far, same, near)

	idx, err := classify.Closest(q, markers, 2)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Println(idx)
	// Output:
	// [1 2]
}
