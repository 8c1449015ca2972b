package dpc

import (
	"math/rand"
	"testing"
)

func generateBenchData(n, dims int) [][]float64 {
	rng := rand.New(rand.NewSource(42))
	data := make([][]float64, n)
	for i := range data {
		data[i] = make([]float64, dims)
		for j := range data[i] {
			data[i][j] = rng.Float64() * 100
		}
	}
	return data
}

func generateFlatData(n, dims int) []float64 {
	rng := rand.New(rand.NewSource(42))
	data := make([]float64, n*dims)
	for i := range data {
		data[i] = rng.Float64() * 100
	}
	return data
}

// --- Pairwise Distances ---

func benchPairwiseDistances(b *testing.B, n, workers int) {
	b.Helper()
	dims := 2
	data := generateFlatData(n, dims)
	metric := EuclideanMetric{}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputePairwiseDistancesParallel(data, n, dims, metric, workers)
	}
}

func BenchmarkPairwiseDistances_500(b *testing.B)          { benchPairwiseDistances(b, 500, 1) }
func BenchmarkPairwiseDistances_1000(b *testing.B)         { benchPairwiseDistances(b, 1000, 1) }
func BenchmarkPairwiseDistancesParallel_1000(b *testing.B) { benchPairwiseDistances(b, 1000, 4) }

// --- Density ---

func benchDensity(b *testing.B, n, workers int) {
	b.Helper()
	dist := ComputePairwiseDistances(generateFlatData(n, 2), n, 2, EuclideanMetric{})
	kernel, err := KernelSize(dist, n, 0.02)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputeDensityParallel(dist, n, kernel, workers)
	}
}

func BenchmarkDensity_1000(b *testing.B)         { benchDensity(b, 1000, 1) }
func BenchmarkDensityParallel_1000(b *testing.B) { benchDensity(b, 1000, 4) }

// --- Kernel size ---

func BenchmarkKernelSize_1000(b *testing.B) {
	n := 1000
	dist := ComputePairwiseDistances(generateFlatData(n, 2), n, 2, EuclideanMetric{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := KernelSize(dist, n, 0.02); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Delta / neighbour ---

func benchDelta(b *testing.B, n, workers int) {
	b.Helper()
	dist := ComputePairwiseDistances(generateFlatData(n, 2), n, 2, EuclideanMetric{})
	kernel, err := KernelSize(dist, n, 0.02)
	if err != nil {
		b.Fatal(err)
	}
	order := DensityOrder(ComputeDensity(dist, n, kernel))
	maxDist := MaxDistance(dist)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := DeltaAndNeighbourParallel(order, dist, n, maxDist, workers); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDelta_1000(b *testing.B)         { benchDelta(b, 1000, 1) }
func BenchmarkDeltaParallel_1000(b *testing.B) { benchDelta(b, 1000, 4) }

// --- End-to-end ---

func BenchmarkCluster_1000(b *testing.B) {
	data := generateBenchData(1000, 2)
	cfg := DefaultConfig()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Cluster(data, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAssign_1000(b *testing.B) {
	c, err := Cluster(generateBenchData(1000, 2), DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}
	cfg := AssignConfig{MinDensity: 1, MinDelta: 10}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Assign(cfg)
	}
}
