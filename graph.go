package dpc

import "fmt"

// NoNeighbour is the neighbour of the global density maximum, which has no
// denser point to link to.
const NoNeighbour = -1

// DeltaAndNeighbour computes, for every point, the distance to its nearest
// point of higher density rank (delta) and that point's index (neighbour).
//
// order is the density order from DensityOrder and distMatrix is flat n*n
// row-major. The point at order[0] gets delta = maxDistance and neighbour =
// NoNeighbour. Every other point at rank r scans ranks 0..r-1; on equal
// distances the earlier rank wins.
//
// Returns ErrDegenerateInput if n < 2 and ErrShapeMismatch if order is not a
// permutation of 0..n-1 or distMatrix is not n*n.
func DeltaAndNeighbour(order []int, distMatrix []float64, n int, maxDistance float64) ([]float64, []int, error) {
	if err := validateGraphInput(order, distMatrix, n); err != nil {
		return nil, nil, err
	}

	delta := make([]float64, n)
	neighbour := make([]int, n)
	deltaRanks(order, distMatrix, n, maxDistance, delta, neighbour, 0, n)
	return delta, neighbour, nil
}

// deltaRanks fills delta and neighbour for the points at ranks [start, end).
func deltaRanks(order []int, distMatrix []float64, n int, maxDistance float64,
	delta []float64, neighbour []int, start, end int,
) {
	for r := start; r < end; r++ {
		p := order[r]
		if r == 0 {
			delta[p] = maxDistance
			neighbour[p] = NoNeighbour
			continue
		}

		row := distMatrix[p*n : (p+1)*n]
		nearest := order[0]
		best := row[nearest]
		for _, q := range order[1:r] {
			if d := row[q]; d < best {
				best = d
				nearest = q
			}
		}
		delta[p] = best
		neighbour[p] = nearest
	}
}

func validateGraphInput(order []int, distMatrix []float64, n int) error {
	if n < 2 {
		return fmt.Errorf("dpc: delta needs at least 2 points, got %d: %w", n, ErrDegenerateInput)
	}
	if len(distMatrix) != n*n {
		return fmt.Errorf("dpc: distMatrix length %d does not match n*n = %d (n=%d): %w", len(distMatrix), n*n, n, ErrShapeMismatch)
	}
	if len(order) != n {
		return fmt.Errorf("dpc: order length %d does not match n = %d: %w", len(order), n, ErrShapeMismatch)
	}
	seen := make([]bool, n)
	for _, p := range order {
		if p < 0 || p >= n || seen[p] {
			return fmt.Errorf("dpc: order is not a permutation of 0..%d: %w", n-1, ErrShapeMismatch)
		}
		seen[p] = true
	}
	return nil
}
