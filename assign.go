package dpc

// Unassigned is the membership of a point that no cluster center dominates.
const Unassigned = -1

// SelectCenters returns the points with density > minDensity and
// delta > minDelta, in density order. Position in the result is the
// cluster ID. An empty (non-nil) slice means no point qualified.
func SelectCenters(order []int, density, delta []float64, minDensity, minDelta float64) []int {
	centers := []int{}
	for _, p := range order {
		if density[p] > minDensity && delta[p] > minDelta {
			centers = append(centers, p)
		}
	}
	return centers
}

// Membership assigns every point to a cluster in one pass over the density
// order. Centers take their own cluster ID; every other point inherits the
// ID of its neighbour, which precedes it in order and is therefore already
// resolved. Points with no center above them stay Unassigned.
func Membership(centers, order, neighbour []int) []int {
	return propagate(centers, order, neighbour, nil)
}

// propagate is Membership where points for which isolated reports true are
// left Unassigned instead of inheriting, and pass that on to their
// descendants.
func propagate(centers, order, neighbour []int, isolated func(p int) bool) []int {
	membership := make([]int, len(order))
	for i := range membership {
		membership[i] = Unassigned
	}
	for id, c := range centers {
		membership[c] = id
	}

	for _, p := range order {
		if membership[p] != Unassigned {
			continue
		}
		nb := neighbour[p]
		if nb == NoNeighbour || (isolated != nil && isolated(p)) {
			continue
		}
		membership[p] = membership[nb]
	}
	return membership
}
