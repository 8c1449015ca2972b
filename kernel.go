package dpc

import (
	"fmt"
	"math"
	"sort"
)

// KernelSize estimates the density kernel bandwidth from a distance matrix.
// distMatrix is flat n*n row-major. The result is the distance below which
// the given fraction of all point pairs lie, so that on average each point
// has about fraction*(n-1) neighbours closer than the kernel size.
//
// If that quantile is zero (duplicate points), the smallest positive pairwise
// distance is used instead. Returns ErrInvalidFraction for fractions outside
// (0, 1) and ErrDegenerateInput when n < 2 or all points coincide.
func KernelSize(distMatrix []float64, n int, fraction float64) (float64, error) {
	size, _, err := kernelSize(distMatrix, n, fraction)
	return size, err
}

// kernelSize is KernelSize that also reports whether the quantile had to be
// advanced past zero distances.
func kernelSize(distMatrix []float64, n int, fraction float64) (float64, bool, error) {
	if !(fraction > 0 && fraction < 1) {
		return 0, false, fmt.Errorf("dpc: fraction must be in (0, 1), got %v: %w", fraction, ErrInvalidFraction)
	}
	if n < 2 {
		return 0, false, fmt.Errorf("dpc: kernel size needs at least 2 points, got %d: %w", n, ErrDegenerateInput)
	}
	if len(distMatrix) != n*n {
		return 0, false, fmt.Errorf("dpc: distMatrix length %d does not match n*n = %d (n=%d): %w", len(distMatrix), n*n, n, ErrShapeMismatch)
	}

	pairs := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		pairs = append(pairs, distMatrix[i*n+i+1:(i+1)*n]...)
	}
	sort.Float64s(pairs)

	k := int(math.Floor(0.5 + fraction*float64(len(pairs))))
	k = min(k, len(pairs)-1)
	if pairs[k] > 0 {
		return pairs[k], false, nil
	}

	k = sort.Search(len(pairs), func(i int) bool { return pairs[i] > 0 })
	if k == len(pairs) {
		return 0, false, fmt.Errorf("dpc: all %d points coincide: %w", n, ErrDegenerateInput)
	}
	return pairs[k], true, nil
}

// NeighborFraction returns the mean, over all points, of the fraction of
// other points lying strictly closer than radius.
func NeighborFraction(distMatrix []float64, n int, radius float64) float64 {
	if n < 2 {
		return 0
	}
	var count int
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j != i && distMatrix[i*n+j] < radius {
				count++
			}
		}
	}
	return float64(count) / float64(n*(n-1))
}
