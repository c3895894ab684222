package matrix_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/katalvlaran/pillars/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestValidateSameCols(t *testing.T) {
	a := MustDense(t, [][]float64{{1, 2, 3}})
	b := MustDense(t, [][]float64{{1, 2}})

	require.NoError(t, matrix.ValidateSameCols(a, a))
	require.ErrorIs(t, matrix.ValidateSameCols(a, b), matrix.ErrShape)
	require.ErrorIs(t, matrix.ValidateSameCols(a, nil), matrix.ErrNilMatrix)
}

func TestValidateStackCols(t *testing.T) {
	q := MustDense(t, [][]float64{{1, 2}})
	s := MustStack(t, MustDense(t, [][]float64{{1, 2, 3}}))
	empty, err := matrix.NewStack(0, 0, 0)
	require.NoError(t, err)

	require.ErrorIs(t, matrix.ValidateStackCols(q, s), matrix.ErrShape)
	require.NoError(t, matrix.ValidateStackCols(q, empty))
	require.ErrorIs(t, matrix.ValidateStackCols(nil, s), matrix.ErrNilMatrix)
}

func TestValidateFiniteAndTolerance(t *testing.T) {
	m, err := matrix.NewDense(2, 2, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateFinite(m))
	require.NoError(t, m.Set(1, 1, math.NaN()))
	require.ErrorIs(t, matrix.ValidateFinite(m), matrix.ErrNaNInf)

	require.NoError(t, matrix.ValidateTolerance(0))
	require.ErrorIs(t, matrix.ValidateTolerance(-1e-9), matrix.ErrInvalidArgument)
	require.ErrorIs(t, matrix.ValidateTolerance(math.NaN()), matrix.ErrInvalidArgument)
}

func TestAllClose(t *testing.T) {
	a := MustDense(t, [][]float64{{1, 2}, {3, 4}})
	b := MustDense(t, [][]float64{{1, 2}, {3, 4 + 1e-13}})
	c := MustDense(t, [][]float64{{1, 2}, {3, 5}})

	ok, err := matrix.AllClose(a, b, 1e-12, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matrix.AllClose(a, c, 1e-12, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = matrix.AllClose(a, MustDense(t, [][]float64{{1}}), 0, 0)
	require.ErrorIs(t, err, matrix.ErrShape)

	_, err = matrix.AllClose(a, b, math.NaN(), 0)
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	assert.False(t, matrix.SliceClose([]float64{math.NaN()}, []float64{math.NaN()}, 1, 1))
	assert.True(t, matrix.SliceClose([]float64{math.Inf(1)}, []float64{math.Inf(1)}, 0, 0))
}

func TestErrorfAndKind(t *testing.T) {
	err := matrix.Errorf("emd.Bulk", matrix.ErrShape, "query %d vs stack %d", 3, 4)
	require.ErrorIs(t, err, matrix.ErrShape)
	assert.Equal(t, "emd.Bulk: matrix: shape mismatch: query 3 vs stack 4", err.Error())
	assert.Equal(t, "emd.Bulk: matrix: invalid argument", matrix.Errorf("emd.Bulk", matrix.ErrInvalidArgument, "").Error())

	tests := []struct {
		err  error
		kind string
	}{
		{nil, ""},
		{fmt.Errorf("wrapped: %w", matrix.ErrShape), "shape"},
		{matrix.ErrInvalidArgument, "invalid_argument"},
		{matrix.ErrUnsupportedInput, "unsupported_input"},
		{matrix.ErrNaNInf, "nan_inf"},
		{matrix.ErrNilMatrix, "nil"},
		{matrix.ErrOutOfRange, "out_of_range"},
		{matrix.ErrInvalidDimensions, "dimensions"},
		{errors.New("boom"), "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, matrix.Kind(tt.err))
	}
}

func TestTensorConversions(t *testing.T) {
	tn, err := matrix.NewTensor([]int{2, 1, 2}, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	require.Equal(t, 3, tn.Rank())
	require.Equal(t, 3, matrix.Rank(tn))

	s, err := tn.AsStack()
	require.NoError(t, err)
	require.Equal(t, []int{2, 1, 2}, s.Dims())

	_, err = tn.AsDense()
	require.ErrorIs(t, err, matrix.ErrUnsupportedInput)

	_, err = matrix.NewTensor([]int{2, 2}, []float64{1})
	require.ErrorIs(t, err, matrix.ErrShape)

	four, err := matrix.NewTensor([]int{1, 1, 1, 1}, []float64{1})
	require.NoError(t, err)
	_, err = four.AsStack()
	require.ErrorIs(t, err, matrix.ErrUnsupportedInput)

	assert.Equal(t, 0, matrix.Rank(nil))
}

func TestGonumRoundTrip(t *testing.T) {
	g := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	m, err := matrix.FromGonum(g)
	require.NoError(t, err)
	require.Equal(t, "[1, 2, 3]\n[4, 5, 6]\n", m.String())

	back, err := m.ToGonum()
	require.NoError(t, err)
	assert.True(t, mat.Equal(g, back))

	empty, err := matrix.NewDense(0, 2)
	require.NoError(t, err)
	_, err = empty.ToGonum()
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
