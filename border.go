package dpc

import "math"

// BorderDensity computes the border density of each cluster and flags the
// points that bridge two clusters.
//
// A pair (p, q) bridges when p and q belong to different clusters and
// dist(p, q) <= kernelSize. Its candidate is min(density[p], density[q]) and
// each cluster's border density is the largest candidate over its bridges,
// 0 for a cluster with none. Unassigned points never bridge.
func BorderDensity(distMatrix []float64, n int, kernelSize float64, density []float64,
	membership []int, nclusters int,
) ([]float64, []bool) {
	borderDensity := make([]float64, nclusters)
	borderMember := make([]bool, n)

	for i := 0; i < n-1; i++ {
		ci := membership[i]
		if ci == Unassigned {
			continue
		}
		row := distMatrix[i*n : (i+1)*n]
		for j := i + 1; j < n; j++ {
			cj := membership[j]
			if cj == Unassigned || cj == ci || row[j] > kernelSize {
				continue
			}
			rho := math.Min(density[i], density[j])
			borderDensity[ci] = math.Max(borderDensity[ci], rho)
			borderDensity[cj] = math.Max(borderDensity[cj], rho)
			borderMember[i] = true
			borderMember[j] = true
		}
	}

	return borderDensity, borderMember
}
