package classify_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pillars/classify"
	"github.com/katalvlaran/pillars/emd"
	"github.com/katalvlaran/pillars/internal/fixture"
	"github.com/katalvlaran/pillars/internal/metrics"
	"github.com/katalvlaran/pillars/matrix"
	"github.com/katalvlaran/pillars/sched"
)

func markers(t *testing.T, seed int64, r, n, d int) *matrix.Stack {
	t.Helper()
	s, err := fixture.New(seed).Stack(r, n, d)
	require.NoError(t, err)

	return s
}

func TestClosestReturnsSortedTopK(t *testing.T) {
	stack := markers(t, 1, 100, 6, 4)
	q, err := fixture.New(2).Dense(6, 4)
	require.NoError(t, err)

	idx, err := classify.Closest(q, stack, 10)
	require.NoError(t, err)
	require.Len(t, idx, 10)

	scores, err := emd.Bulk(q, stack)
	require.NoError(t, err)
	for i := 1; i < len(idx); i++ {
		assert.LessOrEqual(t, scores[idx[i-1]], scores[idx[i]])
	}
	// nothing outside the selection beats the 10th entry
	chosen := map[int]bool{}
	for _, i := range idx {
		chosen[i] = true
	}
	for j, s := range scores {
		if !chosen[j] {
			assert.GreaterOrEqual(t, s, scores[idx[9]])
		}
	}

	serial, err := classify.Closest(q, stack, 10, classify.WithMode(sched.Serial))
	require.NoError(t, err)
	assert.Equal(t, idx, serial)
}

func TestClosestBulkShapeAndModes(t *testing.T) {
	stack := markers(t, 3, 60, 5, 3)
	queries := markers(t, 4, 12, 5, 3)

	parallel, err := classify.ClosestBulk(queries, stack, 10, classify.WithWorkers(4))
	require.NoError(t, err)
	require.Len(t, parallel, 12)
	for _, row := range parallel {
		require.Len(t, row, 10)
	}

	serial, err := classify.ClosestBulk(queries, stack, 10, classify.WithMode(sched.Serial))
	require.NoError(t, err)
	assert.Equal(t, parallel, serial)

	for i := 0; i < queries.Len(); i += 5 {
		q, err := queries.Item(i)
		require.NoError(t, err)
		one, err := classify.Closest(q, stack, 10)
		require.NoError(t, err)
		assert.Equal(t, one, parallel[i], "query %d", i)
	}
}

func TestClosestPermutationInvariance(t *testing.T) {
	stack := markers(t, 5, 30, 4, 3)
	q, err := fixture.New(6).Dense(4, 3)
	require.NoError(t, err)
	perm := fixture.New(7).Perm(stack.Len())
	permuted, err := stack.Permute(perm)
	require.NoError(t, err)

	base, err := classify.Closest(q, stack, 8)
	require.NoError(t, err)
	got, err := classify.Closest(q, permuted, 8)
	require.NoError(t, err)

	mapped := make([]int, len(got))
	for i, p := range got {
		mapped[i] = perm[p]
	}
	assert.Equal(t, base, mapped)

	sort.Ints(base)
	sort.Ints(mapped)
	assert.Equal(t, base, mapped)
}

func TestClosestToleranceKeepsTies(t *testing.T) {
	src := fixture.New(9)
	q, err := src.Stream(0).Dense(3, 2)
	require.NoError(t, err)
	items := make([]*matrix.Dense, 10)
	for i := range items {
		items[i], err = src.Stream(uint64(i + 1)).Dense(3, 2)
		require.NoError(t, err)
	}
	items[3], items[7] = q.Clone(), q.Clone()
	stack, err := matrix.StackOf(items...)
	require.NoError(t, err)

	idx, err := classify.Closest(q, stack, 5, classify.WithTolerance(0))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7}, idx)

	rows, err := classify.ClosestBulk(mustStackOf(t, q, q), stack, 5, classify.WithTolerance(0))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{3, 7}, {3, 7}}, rows)
}

func TestClosestErrorsBeforeWork(t *testing.T) {
	stack := markers(t, 1, 5, 3, 4)
	q, err := fixture.New(2).Dense(3, 2)
	require.NoError(t, err)
	before := testutil.ToFloat64(metrics.EMDEvaluationsTotal.WithLabelValues("parallel"))

	_, err = classify.Closest(q, stack, 3)
	require.ErrorIs(t, err, matrix.ErrShape)

	good, err := fixture.New(2).Dense(3, 4)
	require.NoError(t, err)
	_, err = classify.Closest(good, stack, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
	_, err = classify.Closest(good, stack, 2, classify.WithTolerance(-1))
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)

	queries := markers(t, 8, 4, 3, 2)
	calls := 0
	_, err = classify.ClosestBulk(queries, stack, 2, classify.WithProgress(func(int, int) { calls++ }))
	require.ErrorIs(t, err, matrix.ErrShape)
	_, err = classify.ClosestBulk(nil, stack, 2)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	assert.Zero(t, calls)
	assert.Equal(t, before, testutil.ToFloat64(metrics.EMDEvaluationsTotal.WithLabelValues("parallel")))
}

func TestClosestCountsInputErrorOnce(t *testing.T) {
	stack := markers(t, 1, 5, 3, 4)
	q, err := fixture.New(2).Dense(3, 5)
	require.NoError(t, err)
	queries := markers(t, 3, 2, 3, 5)
	shape := metrics.InputErrorsTotal.WithLabelValues("shape")

	before := testutil.ToFloat64(shape)
	_, err = classify.Closest(q, stack, 2)
	require.ErrorIs(t, err, matrix.ErrShape)
	assert.Equal(t, before+1, testutil.ToFloat64(shape))

	before = testutil.ToFloat64(shape)
	_, err = classify.ClosestBulk(queries, stack, 2)
	require.ErrorIs(t, err, matrix.ErrShape)
	assert.Equal(t, before+1, testutil.ToFloat64(shape))
}

func TestClosestBulkProgress(t *testing.T) {
	stack := markers(t, 1, 8, 3, 2)
	queries := markers(t, 2, 9, 3, 2)

	var (
		mu   sync.Mutex
		seen []int
	)
	_, err := classify.ClosestBulk(queries, stack, 3, classify.WithProgress(func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 9, total)
		seen = append(seen, done)
	}))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, seen)
}

func TestClosestBulkCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := classify.ClosestBulkContext(ctx, markers(t, 1, 3, 2, 2), markers(t, 2, 3, 2, 2), 1)
	require.ErrorIs(t, err, context.Canceled)
}

func mustStackOf(t *testing.T, items ...*matrix.Dense) *matrix.Stack {
	t.Helper()
	s, err := matrix.StackOf(items...)
	require.NoError(t, err)

	return s
}
