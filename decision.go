package dpc

import "gonum.org/v1/gonum/floats"

// Segment is a straight line from (X0, Y0) to (X1, Y1) in decision-graph
// coordinates (density on x, delta on y).
type Segment struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// DecisionGraph is the data behind a density/delta scatter plot. Points in
// the upper right corner of the threshold lines are cluster centers.
type DecisionGraph struct {
	Density    []float64 `json:"density"`
	Delta      []float64 `json:"delta"`
	Thresholds []Segment `json:"thresholds,omitempty"`
}

// DecisionGraph returns the density and delta of every point for plotting.
// The slices are shared with c.
func (c *Clustering) DecisionGraph() DecisionGraph {
	return DecisionGraph{Density: c.Density, Delta: c.Delta}
}

// WithThresholds returns a copy of g carrying the two threshold lines for
// minDensity and minDelta: a horizontal one at minDelta from minDensity to
// the largest density, and a vertical one at minDensity from minDelta to the
// largest delta.
func (g DecisionGraph) WithThresholds(minDensity, minDelta float64) DecisionGraph {
	if len(g.Density) == 0 {
		return g
	}
	maxDensity := floats.Max(g.Density)
	maxDelta := floats.Max(g.Delta)
	g.Thresholds = []Segment{
		{X0: minDensity, Y0: minDelta, X1: maxDensity, Y1: minDelta},
		{X0: minDensity, Y0: minDelta, X1: minDensity, Y1: maxDelta},
	}
	return g
}
