// Package dpc implements Density Peak Clustering (DPC).
//
// DPC picks cluster centers as points that are both locally dense and far
// from any denser point. Every other point joins the cluster of its nearest
// denser neighbour, and a border density per cluster separates reliable
// (core) members from unreliable (halo) ones.
//
// Basic usage:
//
//	cfg := dpc.DefaultConfig()
//	cfg.Fraction = 0.05
//	c, err := dpc.Cluster(data, cfg)
//	// inspect c.Density and c.Delta (see Clustering.DecisionGraph) to pick thresholds
//	a := c.Assign(dpc.AssignConfig{MinDensity: 1.5, MinDelta: 2.0})
//	// a.Membership[i] is the cluster ID for point i (-1 = unassigned)
//	// a.Halo[i] reports whether point i is a low-confidence member
//
// Construction computes the distance matrix, kernel size, density, density
// order and the delta/neighbour graph once. Assign only selects centers and
// propagates labels, so it can be called repeatedly with different thresholds.
//
// # Distance providers
//
// Dense points are measured directly. Sparse points (CSR, see SparseMatrix)
// go through a Gram-matrix provider. Both satisfy DistanceProvider and produce
// the same flat n*n row-major matrix:
//
//	c, err := dpc.ClusterSparse(m, cfg)
//	c, err := dpc.ClusterPrecomputed(distMatrix, n, cfg)
//	c, err := dpc.ClusterWithProvider(myProvider, cfg)
package dpc
