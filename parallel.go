package dpc

import "golang.org/x/sync/errgroup"

// parallelRows splits [0, n) into contiguous ranges and runs fn on each range
// in its own goroutine, with at most numWorkers running at once. fn must only
// write output slots belonging to its own range.
func parallelRows(n, numWorkers int, fn func(start, end int)) {
	rowsPerWorker := (n + numWorkers - 1) / numWorkers

	var g errgroup.Group
	g.SetLimit(numWorkers)
	for start := 0; start < n; start += rowsPerWorker {
		end := min(start+rowsPerWorker, n)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}

// ComputePairwiseDistancesParallel computes the full n×n distance matrix using
// multiple goroutines. data is flat row-major with n rows and dims columns.
// numWorkers controls the degree of parallelism; if <= 1, it falls back to
// single-threaded ComputePairwiseDistances.
//
// The result is bitwise identical to ComputePairwiseDistances.
func ComputePairwiseDistancesParallel(data []float64, n, dims int, metric DistanceMetric, numWorkers int) []float64 {
	if numWorkers <= 1 || n <= 1 {
		return ComputePairwiseDistances(data, n, dims, metric)
	}

	// Each worker owns source rows [start, end) and writes dist(i,j) and
	// dist(j,i) for j > i. Every unordered pair belongs to exactly one row.
	result := make([]float64, n*n)
	parallelRows(n, numWorkers, func(start, end int) {
		distanceRows(data, n, dims, metric, result, start, end)
	})
	return result
}

// ComputeDensityParallel computes densities using multiple goroutines.
// Falls back to sequential ComputeDensity if numWorkers <= 1.
func ComputeDensityParallel(distMatrix []float64, n int, kernelSize float64, numWorkers int) []float64 {
	if numWorkers <= 1 || n <= 1 {
		return ComputeDensity(distMatrix, n, kernelSize)
	}

	density := make([]float64, n)
	parallelRows(n, numWorkers, func(start, end int) {
		densityRows(distMatrix, n, kernelSize, density, start, end)
	})
	return density
}

// DeltaAndNeighbourParallel computes delta and neighbour using multiple
// goroutines, each handling a contiguous range of density ranks. Falls back
// to sequential DeltaAndNeighbour if numWorkers <= 1.
func DeltaAndNeighbourParallel(order []int, distMatrix []float64, n int, maxDistance float64, numWorkers int) ([]float64, []int, error) {
	if numWorkers <= 1 {
		return DeltaAndNeighbour(order, distMatrix, n, maxDistance)
	}
	if err := validateGraphInput(order, distMatrix, n); err != nil {
		return nil, nil, err
	}

	delta := make([]float64, n)
	neighbour := make([]int, n)
	parallelRows(n, numWorkers, func(start, end int) {
		deltaRanks(order, distMatrix, n, maxDistance, delta, neighbour, start, end)
	})
	return delta, neighbour, nil
}
