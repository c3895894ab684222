package classify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/pillars/internal/kernel"
	"github.com/katalvlaran/pillars/internal/metrics"
	"github.com/katalvlaran/pillars/matrix"
	"github.com/katalvlaran/pillars/sched"
	"github.com/katalvlaran/pillars/topk"
)

const (
	opClosest     = "classify.Closest"
	opClosestBulk = "classify.ClosestBulk"
)

// Closest returns the indices of the k references of stack with the smallest
// EMD to query, nearest first. See ClosestContext.
func Closest(query *matrix.Dense, stack *matrix.Stack, k int, opts ...Option) ([]int, error) {
	return ClosestContext(context.Background(), query, stack, k, opts...)
}

// ClosestContext ranks every reference of stack by its EMD to query and keeps
// the k best (ties by reference index). The reference axis runs in the
// configured mode (parallel by default).
//
// Errors (all detected before any EMD is evaluated):
//   - ErrInvalidArgument — k < 0 or an invalid tolerance.
//   - ErrNilMatrix       — query or stack is nil.
//   - ErrShape           — query and references differ in feature dimension.
func ClosestContext(ctx context.Context, query *matrix.Dense, stack *matrix.Stack, k int, opts ...Option) ([]int, error) {
	start := time.Now()
	o := gather(opts)

	idx, err := closest(ctx, query, stack, k, o, o.Mode)
	metrics.ObserveOperation(opClosest, start, err)
	if err != nil {
		o.Logger.Debug("classify failed", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", opClosest, err)
	}
	metrics.QueriesTotal.Inc()
	o.Logger.Debug("classify finished",
		zap.Int("references", stack.Len()),
		zap.Int("k", k),
		zap.Stringer("mode", o.Mode),
		zap.Duration("elapsed", time.Since(start)),
	)

	return idx, nil
}

// ClosestBulk classifies every query of queries against stack.
// See ClosestBulkContext.
func ClosestBulk(queries, stack *matrix.Stack, k int, opts ...Option) ([][]int, error) {
	return ClosestBulkContext(context.Background(), queries, stack, k, opts...)
}

// ClosestBulkContext runs one independent Closest per query.
//
// Implementation:
//   - Stage 1: validate k, tolerance, nil operands and the feature dimension
//     of queries against stack.
//   - Stage 2: fan the queries out through sched.Map in the configured mode.
//     Each query evaluates its references serially, so the query axis is the
//     only parallel one.
//   - Stage 3: row i of the result is written by query i only.
//
// The first failing query (lowest index) fails the whole call. ctx is
// observed between queries and between references.
//
// Complexity: O(q · r · (n·m·d + p²q')) work.
func ClosestBulkContext(ctx context.Context, queries, stack *matrix.Stack, k int, opts ...Option) ([][]int, error) {
	start := time.Now()
	o := gather(opts)

	out, err := closestBulk(ctx, queries, stack, k, o)
	metrics.ObserveOperation(opClosestBulk, start, err)
	if err != nil {
		o.Logger.Debug("classify bulk failed", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", opClosestBulk, err)
	}
	metrics.QueriesTotal.Add(float64(len(out)))
	o.Logger.Debug("classify bulk finished",
		zap.Int("queries", len(out)),
		zap.Int("references", stack.Len()),
		zap.Int("k", k),
		zap.Stringer("mode", o.Mode),
		zap.Duration("elapsed", time.Since(start)),
	)

	return out, nil
}

func closestBulk(ctx context.Context, queries, stack *matrix.Stack, k int, o Options) ([][]int, error) {
	if err := validateArgs(k, o); err != nil {
		return nil, err
	}
	if queries == nil || stack == nil {
		return nil, matrix.ErrNilMatrix
	}
	if queries.Len() > 0 && stack.Len() > 0 && queries.Cols() != stack.Cols() {
		return nil, matrix.Errorf("validate", matrix.ErrShape, "queries %d vs stack %d columns", queries.Cols(), stack.Cols())
	}

	var (
		mu   sync.Mutex
		done int
	)
	total := queries.Len()
	out := make([][]int, total)
	err := sched.Map(ctx, o.Mode, o.Workers, total, func(i int) error {
		q, err := queries.Item(i)
		if err != nil {
			return err
		}
		idx, err := closest(ctx, q, stack, k, o, sched.Serial)
		if err != nil {
			return fmt.Errorf("query %d: %w", i, err)
		}
		out[i] = idx
		if o.Progress != nil {
			mu.Lock()
			done++
			o.Progress(done, total)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// closest is the per-query unit; mode applies to the reference axis. Errors
// are counted by the exported caller only.
func closest(ctx context.Context, query *matrix.Dense, stack *matrix.Stack, k int, o Options, mode sched.Mode) ([]int, error) {
	if err := validateArgs(k, o); err != nil {
		return nil, err
	}
	scores, err := kernel.Bulk(ctx, query, stack, mode, o.Workers)
	if err != nil {
		return nil, err
	}
	metrics.EMDEvaluationsTotal.WithLabelValues(mode.String()).Add(float64(len(scores)))

	var sel []topk.Option
	if o.HasTolerance {
		sel = append(sel, topk.WithTolerance(o.Tolerance))
	}

	return topk.Select(scores, k, sel...)
}

func validateArgs(k int, o Options) error {
	if k < 0 {
		return matrix.Errorf("validate", matrix.ErrInvalidArgument, "k=%d", k)
	}
	if o.HasTolerance {
		if err := matrix.ValidateTolerance(o.Tolerance); err != nil {
			return err
		}
	}

	return nil
}
