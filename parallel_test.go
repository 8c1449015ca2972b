package dpc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sinData(n, dims int) []float64 {
	data := make([]float64, n*dims)
	for i := range data {
		data[i] = math.Sin(float64(i) * 0.7)
	}
	return data
}

func TestComputePairwiseDistancesParallel_BitwiseIdentical(t *testing.T) {
	n, dims := 23, 3
	data := sinData(n, dims)

	for _, metric := range []DistanceMetric{EuclideanMetric{}, CosineMetric{}} {
		sequential := ComputePairwiseDistances(data, n, dims, metric)
		for _, workers := range []int{1, 2, 4, 7, 50} {
			parallel := ComputePairwiseDistancesParallel(data, n, dims, metric, workers)
			assert.Equal(t, sequential, parallel, "%T workers=%d", metric, workers)
		}
	}
}

func TestComputePairwiseDistancesParallel_SinglePoint(t *testing.T) {
	result := ComputePairwiseDistancesParallel([]float64{1, 2}, 1, 2, EuclideanMetric{}, 4)
	assert.Equal(t, []float64{0}, result)
}

func TestComputeDensityParallel_BitwiseIdentical(t *testing.T) {
	n, dims := 31, 2
	dist := ComputePairwiseDistances(sinData(n, dims), n, dims, EuclideanMetric{})
	kernel, err := KernelSize(dist, n, 0.1)
	require.NoError(t, err)

	sequential := ComputeDensity(dist, n, kernel)
	for _, workers := range []int{2, 3, 8, 100} {
		assert.Equal(t, sequential, ComputeDensityParallel(dist, n, kernel, workers), "workers=%d", workers)
	}
}

func TestDeltaAndNeighbourParallel_BitwiseIdentical(t *testing.T) {
	n, dims := 31, 2
	dist := ComputePairwiseDistances(sinData(n, dims), n, dims, EuclideanMetric{})
	kernel, err := KernelSize(dist, n, 0.1)
	require.NoError(t, err)
	order := DensityOrder(ComputeDensity(dist, n, kernel))
	maxDist := MaxDistance(dist)

	delta, neighbour, err := DeltaAndNeighbour(order, dist, n, maxDist)
	require.NoError(t, err)

	for _, workers := range []int{2, 5, 64} {
		pDelta, pNeighbour, err := DeltaAndNeighbourParallel(order, dist, n, maxDist, workers)
		require.NoError(t, err)
		assert.Equal(t, delta, pDelta, "workers=%d", workers)
		assert.Equal(t, neighbour, pNeighbour, "workers=%d", workers)
	}
}

func TestDeltaAndNeighbourParallel_ValidatesInput(t *testing.T) {
	_, _, err := DeltaAndNeighbourParallel([]int{0}, []float64{0}, 1, 0, 4)
	assert.ErrorIs(t, err, ErrDegenerateInput)

	_, _, err = DeltaAndNeighbourParallel([]int{0, 0}, make([]float64, 4), 2, 0, 4)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}
