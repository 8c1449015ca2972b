package dpc

import (
	"math"
	"sort"
)

// ComputeDensity computes a Gaussian-kernel density for every point.
// distMatrix is flat n*n row-major and kernelSize must be > 0.
// density[i] = sum over j != i of exp(-(dist(i,j)/kernelSize)^2).
//
// Terms are summed in ascending j so the result is reproducible bit for bit.
func ComputeDensity(distMatrix []float64, n int, kernelSize float64) []float64 {
	density := make([]float64, n)
	densityRows(distMatrix, n, kernelSize, density, 0, n)
	return density
}

func densityRows(distMatrix []float64, n int, kernelSize float64, density []float64, start, end int) {
	for i := start; i < end; i++ {
		var rho float64
		for j, d := range distMatrix[i*n : (i+1)*n] {
			if j == i {
				continue
			}
			x := d / kernelSize
			rho += math.Exp(-x * x)
		}
		density[i] = rho
	}
}

// DensityOrder returns the point indices sorted by density, highest first.
// Equal densities keep ascending index order.
func DensityOrder(density []float64) []int {
	order := make([]int, len(density))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return density[order[a]] > density[order[b]]
	})
	return order
}
