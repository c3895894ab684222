package emd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/pillars/hungarian"
	"github.com/katalvlaran/pillars/internal/kernel"
	"github.com/katalvlaran/pillars/internal/metrics"
	"github.com/katalvlaran/pillars/matrix"
	"github.com/katalvlaran/pillars/rdist"
	"github.com/katalvlaran/pillars/sched"
)

const (
	opDistance = "emd.Distance"
	opPlan     = "emd.Plan"
	opBulk     = "emd.Bulk"
)

// Distance returns the Earth Mover's Distance between two point sets:
// the minimum, over all matchings of the rows of the smaller set to distinct
// rows of the larger one, of the summed Euclidean distances.
//
// The distance matrix is always built with the smaller set as rows; it is
// computed serially.
//
// Errors:
//   - ErrNilMatrix — a or b is nil.
//   - ErrShape     — a.Cols() != b.Cols().
//   - ErrNaNInf    — a distance is not finite (inputs built without the
//     finite policy).
func Distance(a, b *matrix.Dense) (float64, error) {
	start := time.Now()
	d, err := kernel.Distance(a, b)
	if err != nil {
		err = fmt.Errorf("%s: %w", opDistance, err)
	} else {
		metrics.EMDEvaluationsTotal.WithLabelValues(sched.Serial.String()).Inc()
	}
	metrics.ObserveOperation(opDistance, start, err)

	return d, err
}

// Plan returns the optimal matching behind Distance. Pairs are reported as
// (row of a, row of b), ascending by the row of a; when a has more rows than
// b, only b.Rows() rows of a appear.
func Plan(a, b *matrix.Dense) (hungarian.Assignment, error) {
	if err := matrix.ValidateSameCols(a, b); err != nil {
		return hungarian.Assignment{}, fmt.Errorf("%s: %w", opPlan, err)
	}
	swapped := a.Rows() > b.Rows()
	if swapped {
		a, b = b, a
	}
	cost, err := rdist.Euclidean(a, b)
	if err != nil {
		return hungarian.Assignment{}, fmt.Errorf("%s: %w", opPlan, err)
	}
	plan, err := hungarian.Solve(cost)
	if err != nil {
		return hungarian.Assignment{}, fmt.Errorf("%s: %w", opPlan, err)
	}
	if swapped {
		for k := range plan.Pairs {
			plan.Pairs[k].Row, plan.Pairs[k].Col = plan.Pairs[k].Col, plan.Pairs[k].Row
		}
		sort.Slice(plan.Pairs, func(x, y int) bool { return plan.Pairs[x].Row < plan.Pairs[y].Row })
	}

	return plan, nil
}

// Bulk computes out[i] = Distance(a, stack.Item(i)) for every reference.
// It is BulkContext with context.Background().
func Bulk(a *matrix.Dense, stack *matrix.Stack, opts ...Option) ([]float64, error) {
	return BulkContext(context.Background(), a, stack, opts...)
}

// BulkContext evaluates the query a against every reference of stack.
//
// Implementation:
//   - Stage 1: validate a against the stack (nil, feature dimension). Nothing
//     is evaluated on failure.
//   - Stage 2: one unit per reference via sched.Map. In Parallel mode the units
//     fan out over the worker pool; each unit builds its own distance matrix
//     serially so only the reference axis is parallel.
//   - Stage 3: out[i] is written by unit i only, so the result order is the
//     stack order in every mode.
//
// A failing unit fails the whole batch; the error of the lowest failing
// reference index is returned. ctx is observed between units only.
//
// Complexity: O(r · (n·m·d + p²q)) work for r references.
func BulkContext(ctx context.Context, a *matrix.Dense, stack *matrix.Stack, opts ...Option) ([]float64, error) {
	start := time.Now()
	o := gather(opts)

	out, err := bulk(ctx, a, stack, o)
	metrics.ObserveOperation(opBulk, start, err)
	if err != nil {
		o.Logger.Debug("emd bulk failed", zap.Error(err))
		return nil, err
	}
	metrics.EMDEvaluationsTotal.WithLabelValues(o.Mode.String()).Add(float64(len(out)))
	o.Logger.Debug("emd bulk finished",
		zap.Int("references", len(out)),
		zap.Stringer("mode", o.Mode),
		zap.Int("workers", sched.Workers(o.Workers)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return out, nil
}

func bulk(ctx context.Context, a *matrix.Dense, stack *matrix.Stack, o Options) ([]float64, error) {
	out, err := kernel.Bulk(ctx, a, stack, o.Mode, o.Workers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opBulk, err)
	}

	return out, nil
}
