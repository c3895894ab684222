// Package kernel evaluates EMDs without touching metrics or logs. The public
// emd package and the classifier both run on it and each records its own
// accounting once, at the layer that was called.
package kernel

import (
	"context"
	"fmt"

	"github.com/katalvlaran/pillars/hungarian"
	"github.com/katalvlaran/pillars/matrix"
	"github.com/katalvlaran/pillars/rdist"
	"github.com/katalvlaran/pillars/sched"
)

// Distance is the exact EMD of a and b. The smaller set becomes the rows of
// the distance matrix, which is computed serially.
func Distance(a, b *matrix.Dense) (float64, error) {
	if err := matrix.ValidateSameCols(a, b); err != nil {
		return 0, err
	}
	if a.Rows() > b.Rows() {
		a, b = b, a
	}
	cost, err := rdist.Euclidean(a, b)
	if err != nil {
		return 0, err
	}

	return hungarian.MinCost(cost)
}

// Bulk returns Distance(a, stack.Item(i)) for every reference, one sched.Map
// unit per reference. The inputs are validated before any unit runs; the
// lowest failing reference fails the batch.
func Bulk(ctx context.Context, a *matrix.Dense, stack *matrix.Stack, mode sched.Mode, workers int) ([]float64, error) {
	if err := matrix.ValidateStackCols(a, stack); err != nil {
		return nil, err
	}

	out := make([]float64, stack.Len())
	err := sched.Map(ctx, mode, workers, len(out), func(i int) error {
		ref, err := stack.Item(i)
		if err != nil {
			return err
		}
		d, err := Distance(a, ref)
		if err != nil {
			return fmt.Errorf("reference %d: %w", i, err)
		}
		out[i] = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
