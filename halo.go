package dpc

// Halo reports, per point, whether it is a halo (low-confidence) member.
//
// A point is halo when its density is <= its cluster's border density.
// With borderOnly set, only points flagged in borderMember can be downgraded.
// Unassigned points are always halo.
func Halo(density []float64, membership []int, borderDensity []float64, borderMember []bool, borderOnly bool) []bool {
	halo := make([]bool, len(density))
	for i, c := range membership {
		switch {
		case c == Unassigned:
			halo[i] = true
		case borderOnly && !borderMember[i]:
			// core
		default:
			halo[i] = density[i] <= borderDensity[c]
		}
	}
	return halo
}

// HaloIndices returns the ascending indices of halo points.
func HaloIndices(halo []bool) []int {
	return indicesWhere(halo, true)
}

// CoreIndices returns the ascending indices of core points.
func CoreIndices(halo []bool) []int {
	return indicesWhere(halo, false)
}

func indicesWhere(flags []bool, want bool) []int {
	idx := []int{}
	for i, f := range flags {
		if f == want {
			idx = append(idx, i)
		}
	}
	return idx
}
