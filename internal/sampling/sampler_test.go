package sampling

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndices_Reproducible(t *testing.T) {
	a, err := New(DefaultSeed).Indices(1599, 100)
	require.NoError(t, err)
	b, err := New(DefaultSeed).Indices(1599, 100)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := New(DefaultSeed+1).Indices(1599, 100)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestIndices_DistinctAndInRange(t *testing.T) {
	idx, err := New(1).Indices(50, 50)
	require.NoError(t, err)
	require.Len(t, idx, 50)

	sorted := append([]int(nil), idx...)
	sort.Ints(sorted)
	for i, v := range sorted {
		assert.Equal(t, i, v)
	}
}

func TestIndices_Errors(t *testing.T) {
	_, err := New(1).Indices(10, 11)
	assert.ErrorIs(t, err, ErrSampleTooLarge)

	_, err = New(1).Indices(10, -1)
	assert.Error(t, err)

	idx, err := New(1).Indices(10, 0)
	require.NoError(t, err)
	assert.Empty(t, idx)
}

func TestSample_AlignsColumns(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	y := []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}

	s := New(DefaultSeed)
	xs, xIdx, err := s.Sample(x, 5)
	require.NoError(t, err)
	ys, yIdx, err := s.Sample(y, 5)
	require.NoError(t, err)

	assert.Equal(t, xIdx, yIdx)
	for i := range xs {
		assert.Equal(t, xs[i]*10, ys[i])
	}
}
