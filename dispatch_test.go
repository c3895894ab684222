package pillars_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pillars"
	"github.com/katalvlaran/pillars/emd"
	"github.com/katalvlaran/pillars/internal/fixture"
	"github.com/katalvlaran/pillars/matrix"
	"github.com/katalvlaran/pillars/sched"
)

func TestEMDTwoByTwo(t *testing.T) {
	a, err := fixture.New(1).Dense(17, 11)
	require.NoError(t, err)
	b, err := fixture.New(2).Dense(17, 11)
	require.NoError(t, err)

	got, err := pillars.EMD(a, b)
	require.NoError(t, err)
	want, err := emd.Distance(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{want}, got)

	self, err := pillars.EMD(a, a)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, self)
}

func TestEMDTwoByThreeBothOrders(t *testing.T) {
	q, err := fixture.New(3).Dense(5, 4)
	require.NoError(t, err)
	stack, err := fixture.New(4).Stack(20, 5, 4)
	require.NoError(t, err)

	want, err := emd.Bulk(q, stack)
	require.NoError(t, err)

	got, err := pillars.EMD(q, stack)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	rev, err := pillars.EMD(stack, q, emd.WithMode(sched.Serial))
	require.NoError(t, err)
	assert.Equal(t, want, rev)
}

func TestEMDTensors(t *testing.T) {
	ta, err := matrix.NewTensor([]int{2, 2}, []float64{0, 0, 1, 1})
	require.NoError(t, err)
	tb, err := matrix.NewTensor([]int{3, 2, 2}, []float64{
		0, 0, 1, 1,
		0, 1, 1, 2,
		0, 0, 1, 1,
	})
	require.NoError(t, err)

	got, err := pillars.EMD(ta, tb)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2, 0}, got)
}

func TestEMDUnsupported(t *testing.T) {
	s, err := fixture.New(1).Stack(2, 2, 2)
	require.NoError(t, err)
	four, err := matrix.NewTensor([]int{1, 1, 2, 2}, make([]float64, 4))
	require.NoError(t, err)
	vec, err := matrix.NewTensor([]int{4}, make([]float64, 4))
	require.NoError(t, err)

	tests := []struct {
		name string
		a, b matrix.Array
	}{
		{"StackStack", s, s},
		{"FourD", four, s},
		{"Vector", vec, vec},
		{"Nil", nil, s},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pillars.EMD(tt.a, tt.b)
			require.ErrorIs(t, err, matrix.ErrUnsupportedInput)
		})
	}
}

func TestEMDShapeMismatch(t *testing.T) {
	q, err := fixture.New(1).Dense(3, 2)
	require.NoError(t, err)
	s, err := fixture.New(2).Stack(4, 3, 3)
	require.NoError(t, err)

	_, err = pillars.EMD(q, s)
	require.ErrorIs(t, err, matrix.ErrShape)
}
