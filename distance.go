package dpc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Metric names a supported distance metric.
type Metric string

const (
	Euclidean Metric = "euclidean"
	Cosine    Metric = "cosine"
)

// ParseMetric converts a metric name into a Metric.
// Returns an error wrapping ErrInvalidMetric for unsupported names.
func ParseMetric(name string) (Metric, error) {
	switch m := Metric(name); m {
	case Euclidean, Cosine:
		return m, nil
	default:
		return "", fmt.Errorf("dpc: metric must be %q or %q, got %q: %w", Euclidean, Cosine, name, ErrInvalidMetric)
	}
}

// DistanceMetric computes the distance between two points of equal length.
type DistanceMetric interface {
	Distance(a, b []float64) float64
}

// DistanceFunc adapts a plain function into a DistanceMetric.
type DistanceFunc func(a, b []float64) float64

func (f DistanceFunc) Distance(a, b []float64) float64 { return f(a, b) }

// EuclideanMetric computes the Euclidean (L2) distance.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// CosineMetric computes the cosine distance: 1 - cosine_similarity, clipped
// to [0, 2]. A zero vector has no direction and is treated as orthogonal to
// everything, giving distance 1.
type CosineMetric struct{}

func (CosineMetric) Distance(a, b []float64) float64 {
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 1
	}
	return clipCosine(1 - floats.Dot(a, b)/(normA*normB))
}

func clipCosine(d float64) float64 {
	return math.Min(math.Max(d, 0), 2)
}

// metricFor returns the DistanceMetric implementing m.
func metricFor(m Metric) (DistanceMetric, error) {
	switch m {
	case Euclidean:
		return EuclideanMetric{}, nil
	case Cosine:
		return CosineMetric{}, nil
	default:
		return nil, fmt.Errorf("dpc: metric must be %q or %q, got %q: %w", Euclidean, Cosine, string(m), ErrInvalidMetric)
	}
}

// ComputePairwiseDistances computes the full n*n distance matrix.
// data is flat row-major with n rows and dims columns.
// Returns flat []float64 of length n*n with a zero diagonal.
func ComputePairwiseDistances(data []float64, n, dims int, metric DistanceMetric) []float64 {
	result := make([]float64, n*n)
	distanceRows(data, n, dims, metric, result, 0, n)
	return result
}

// distanceRows fills dist(i, j) and dist(j, i) for every i in [start, end) and j > i.
func distanceRows(data []float64, n, dims int, metric DistanceMetric, result []float64, start, end int) {
	for i := start; i < end; i++ {
		a := data[i*dims : (i+1)*dims]
		for j := i + 1; j < n; j++ {
			d := metric.Distance(a, data[j*dims:(j+1)*dims])
			result[i*n+j] = d
			result[j*n+i] = d
		}
	}
}

// MaxDistance returns the largest entry of a distance matrix, 0 for an empty one.
func MaxDistance(distMatrix []float64) float64 {
	if len(distMatrix) == 0 {
		return 0
	}
	return floats.Max(distMatrix)
}
