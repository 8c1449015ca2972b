package dpc

import (
	"fmt"
	"math"
)

// DistanceProvider produces the pairwise distance matrix of a point set.
//
// Implementations return a flat n*n row-major matrix that is symmetric,
// non-negative, finite and has a zero diagonal, together with n. Cluster
// never needs to know which provider produced the matrix.
type DistanceProvider interface {
	PairwiseDistances(metric Metric) ([]float64, int, error)
}

// DenseProvider measures dense points directly.
type DenseProvider struct {
	// Data holds one point per row; all rows must have the same length.
	Data [][]float64

	// Workers is the number of goroutines used. Values <= 1 run sequentially.
	Workers int
}

// PairwiseDistances implements DistanceProvider.
func (p DenseProvider) PairwiseDistances(metric Metric) ([]float64, int, error) {
	dm, err := metricFor(metric)
	if err != nil {
		return nil, 0, err
	}
	flat, n, dims, err := flattenPoints(p.Data)
	if err != nil {
		return nil, 0, err
	}
	return ComputePairwiseDistancesParallel(flat, n, dims, dm, p.Workers), n, nil
}

// flattenPoints validates a dense point set and copies it into flat
// row-major storage.
func flattenPoints(data [][]float64) ([]float64, int, int, error) {
	n := len(data)
	if n == 0 {
		return nil, 0, 0, fmt.Errorf("dpc: point set is empty: %w", ErrShapeMismatch)
	}
	dims := len(data[0])
	if dims == 0 {
		return nil, 0, 0, fmt.Errorf("dpc: points have zero dimensions: %w", ErrShapeMismatch)
	}

	flat := make([]float64, n*dims)
	for i, row := range data {
		if len(row) != dims {
			return nil, 0, 0, fmt.Errorf("dpc: point %d has %d dimensions, expected %d: %w", i, len(row), dims, ErrShapeMismatch)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, 0, 0, fmt.Errorf("dpc: point %d coordinate %d is %v: %w", i, j, v, ErrNonFinite)
			}
		}
		copy(flat[i*dims:], row)
	}
	return flat, n, dims, nil
}

// validateDistances checks that distMatrix honours the distance-matrix
// contract for n points.
func validateDistances(distMatrix []float64, n int) error {
	if len(distMatrix) != n*n {
		return fmt.Errorf("dpc: distMatrix length %d does not match n*n = %d (n=%d): %w", len(distMatrix), n*n, n, ErrShapeMismatch)
	}
	for i := 0; i < n; i++ {
		if distMatrix[i*n+i] != 0 {
			return fmt.Errorf("dpc: dist[%d][%d] = %v, expected 0: %w", i, i, distMatrix[i*n+i], ErrInvalidDistances)
		}
		for j := i + 1; j < n; j++ {
			d := distMatrix[i*n+j]
			if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
				return fmt.Errorf("dpc: dist[%d][%d] = %v is not a finite non-negative distance: %w", i, j, d, ErrInvalidDistances)
			}
			if distMatrix[j*n+i] != d {
				return fmt.Errorf("dpc: dist[%d][%d] = %v but dist[%d][%d] = %v: %w", i, j, d, j, i, distMatrix[j*n+i], ErrInvalidDistances)
			}
		}
	}
	return nil
}

// precomputedProvider serves an already computed matrix.
type precomputedProvider struct {
	distMatrix []float64
	n          int
}

func (p precomputedProvider) PairwiseDistances(Metric) ([]float64, int, error) {
	return p.distMatrix, p.n, nil
}
