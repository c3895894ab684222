package fixture_test

import (
	"testing"

	"github.com/katalvlaran/pillars/internal/fixture"
	"github.com/katalvlaran/pillars/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameSeedSameArrays(t *testing.T) {
	a, err := fixture.New(42).Dense(5, 3)
	require.NoError(t, err)
	b, err := fixture.New(42).Dense(5, 3)
	require.NoError(t, err)
	assert.Equal(t, a.RawData(), b.RawData())
}

func TestStreamsAreIndependent(t *testing.T) {
	src := fixture.New(7)
	q, err := src.Stream(0).Dense(4, 4)
	require.NoError(t, err)
	m, err := src.Stream(1).Dense(4, 4)
	require.NoError(t, err)
	assert.NotEqual(t, q.RawData(), m.RawData())

	again, err := fixture.New(7).Stream(0).Dense(4, 4)
	require.NoError(t, err)
	assert.Equal(t, q.RawData(), again.RawData())
}

func TestStackShapeAndRange(t *testing.T) {
	s, err := fixture.New(3).Stack(6, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 4, 2}, s.Dims())
	for _, v := range s.RawData() {
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestFilledAndInvalidDims(t *testing.T) {
	m, err := fixture.Filled(11, 17, 11)
	require.NoError(t, err)
	for _, v := range m.RawData() {
		require.Equal(t, 11.0, v)
	}

	_, err = fixture.New(1).Dense(-1, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
