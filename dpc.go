package dpc

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// Config controls density and graph construction.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Fraction is the share of point pairs that should fall within the kernel
	// size. Larger values smooth the density estimate.
	// Must be in (0, 1). Default: 0.02.
	Fraction float64

	// Metric selects the distance function: Euclidean or Cosine.
	// Ignored by ClusterPrecomputed. Default: Euclidean.
	Metric Metric

	// Workers controls the number of goroutines for the row-parallel stages
	// (pairwise distances, density, delta). 0 means use runtime.NumCPU().
	// Default: 0 (auto).
	Workers int

	// Logger receives debug output for each pipeline stage. nil disables logging.
	Logger *zap.Logger
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Fraction: 0.02,
		Metric:   Euclidean,
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if !(cfg.Fraction > 0 && cfg.Fraction < 1) {
		return fmt.Errorf("dpc: Fraction must be in (0, 1), got %v: %w", cfg.Fraction, ErrInvalidFraction)
	}
	if _, err := metricFor(cfg.Metric); err != nil {
		return err
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("dpc: Workers must be >= 0, got %d", cfg.Workers)
	}
	return nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
// Fraction has no zero default: 0 is rejected as ErrInvalidFraction.
func applyDefaults(cfg *Config) {
	if cfg.Metric == "" {
		cfg.Metric = Euclidean
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// Clustering holds the threshold-independent stages of DPC for one point set.
// All slices are shared with every Assignment and must not be modified.
type Clustering struct {
	// N is the number of points.
	N int

	// Metric is the metric the distances were computed with. Empty for
	// ClusterPrecomputed.
	Metric Metric

	// Fraction is the neighbour fraction used for the kernel size.
	Fraction float64

	// Distances is the flat n*n row-major pairwise distance matrix.
	Distances []float64

	// MaxDistance is the largest pairwise distance. It doubles as the delta
	// of the densest point.
	MaxDistance float64

	// KernelSize is the density bandwidth estimated from Fraction.
	KernelSize float64

	// Density is the Gaussian-kernel density of each point.
	Density []float64

	// Order lists point indices by descending density, ties by ascending index.
	Order []int

	// Delta is the distance from each point to its nearest point of higher
	// density rank.
	Delta []float64

	// Neighbour is the index of that point, NoNeighbour for Order[0].
	Neighbour []int

	logger *zap.Logger
}

// Cluster builds the distance matrix, kernel size, density, density order
// and delta/neighbour graph for dense points. Each element of data is a
// point; all points must have the same dimensionality.
//
// Returns errors wrapping ErrInvalidFraction, ErrInvalidMetric,
// ErrShapeMismatch, ErrNonFinite or ErrDegenerateInput.
func Cluster(data [][]float64, cfg Config) (*Clustering, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return build(DenseProvider{Data: data, Workers: cfg.Workers}, cfg, cfg.Metric)
}

// ClusterSparse is Cluster for points in CSR form.
func ClusterSparse(m *SparseMatrix, cfg Config) (*Clustering, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return build(SparseProvider{Matrix: m}, cfg, cfg.Metric)
}

// ClusterWithProvider is Cluster with distances supplied by p. The matrix p
// returns is checked against the distance-matrix contract and rejected with
// ErrInvalidDistances if it breaks it.
func ClusterWithProvider(p DistanceProvider, cfg Config) (*Clustering, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return build(p, cfg, cfg.Metric)
}

// ClusterPrecomputed runs the pipeline on a precomputed distance matrix.
// distMatrix is a flat []float64 of length n*n in row-major order, where
// distMatrix[i*n+j] is the distance between points i and j. The Config.Metric
// field is ignored since distances are already computed. distMatrix is
// retained, not copied.
func ClusterPrecomputed(distMatrix []float64, n int, cfg Config) (*Clustering, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("dpc: point set is empty: %w", ErrShapeMismatch)
	}
	return build(precomputedProvider{distMatrix: distMatrix, n: n}, cfg, "")
}

// build runs steps from the distance matrix through the delta graph.
func build(p DistanceProvider, cfg Config, metric Metric) (*Clustering, error) {
	log := cfg.Logger

	distMatrix, n, err := p.PairwiseDistances(cfg.Metric)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("dpc: point set is empty: %w", ErrShapeMismatch)
	}
	if n < 2 {
		return nil, fmt.Errorf("dpc: need at least 2 points, got %d: %w", n, ErrDegenerateInput)
	}
	if err := validateDistances(distMatrix, n); err != nil {
		return nil, err
	}
	maxDistance := MaxDistance(distMatrix)
	log.Debug("distance matrix ready",
		zap.Int("n", n), zap.String("metric", string(metric)), zap.Float64("max_distance", maxDistance))

	kernel, advanced, err := kernelSize(distMatrix, n, cfg.Fraction)
	if err != nil {
		return nil, err
	}
	if advanced {
		log.Warn("kernel size quantile hit duplicate points, using smallest positive distance",
			zap.Float64("fraction", cfg.Fraction), zap.Float64("kernel_size", kernel))
	}

	density := ComputeDensityParallel(distMatrix, n, kernel, cfg.Workers)
	order := DensityOrder(density)
	delta, neighbour, err := DeltaAndNeighbourParallel(order, distMatrix, n, maxDistance, cfg.Workers)
	if err != nil {
		return nil, err
	}
	log.Debug("density graph ready",
		zap.Float64("kernel_size", kernel),
		zap.Int("densest", order[0]),
		zap.Float64("max_density", density[order[0]]))

	return &Clustering{
		N:           n,
		Metric:      metric,
		Fraction:    cfg.Fraction,
		Distances:   distMatrix,
		MaxDistance: maxDistance,
		KernelSize:  kernel,
		Density:     density,
		Order:       order,
		Delta:       delta,
		Neighbour:   neighbour,
		logger:      log,
	}, nil
}

// AssignConfig holds the user-chosen thresholds for Assign.
type AssignConfig struct {
	// MinDensity and MinDelta select centers: density > MinDensity and
	// delta > MinDelta.
	MinDensity float64
	MinDelta   float64

	// BorderOnly restricts halo downgrading to points that bridge two
	// clusters. Default: false (any point at or below its cluster's border
	// density is halo).
	BorderOnly bool

	// RejectOutliers leaves non-center points with delta > MinDelta (far from
	// anything denser, yet not dense enough to be a center) unassigned, along
	// with every point that would inherit from them. Default: false.
	RejectOutliers bool
}

// Assignment is the result of one Assign call. It is never modified after
// Assign returns.
type Assignment struct {
	Config AssignConfig

	// Centers are the center point indices in density order; Centers[k] is
	// the center of cluster k.
	Centers []int

	// NClusters is len(Centers). Zero is a valid outcome.
	NClusters int

	// Membership maps each point to its cluster ID, or Unassigned.
	Membership []int

	// BorderDensity is the border density of each cluster.
	BorderDensity []float64

	// BorderMember flags points that bridge two clusters within KernelSize.
	BorderMember []bool

	// Halo flags low-confidence points; unassigned points are always halo.
	Halo []bool

	// HaloIdx and CoreIdx are the ascending indices of halo and core points.
	HaloIdx []int
	CoreIdx []int
}

// Assign selects cluster centers with the given thresholds, propagates
// membership down the density order and splits members into core and halo.
// It reads but never modifies c, so it may be called repeatedly and
// concurrently.
func (c *Clustering) Assign(cfg AssignConfig) *Assignment {
	centers := SelectCenters(c.Order, c.Density, c.Delta, cfg.MinDensity, cfg.MinDelta)

	var isolated func(int) bool
	if cfg.RejectOutliers {
		isolated = func(p int) bool { return c.Delta[p] > cfg.MinDelta }
	}
	membership := propagate(centers, c.Order, c.Neighbour, isolated)

	borderDensity, borderMember := BorderDensity(c.Distances, c.N, c.KernelSize, c.Density, membership, len(centers))
	halo := Halo(c.Density, membership, borderDensity, borderMember, cfg.BorderOnly)

	a := &Assignment{
		Config:        cfg,
		Centers:       centers,
		NClusters:     len(centers),
		Membership:    membership,
		BorderDensity: borderDensity,
		BorderMember:  borderMember,
		Halo:          halo,
		HaloIdx:       HaloIndices(halo),
		CoreIdx:       CoreIndices(halo),
	}

	if c.logger != nil {
		c.logger.Debug("assigned clusters",
			zap.Float64("min_density", cfg.MinDensity),
			zap.Float64("min_delta", cfg.MinDelta),
			zap.Int("clusters", a.NClusters),
			zap.Int("halo", len(a.HaloIdx)))
	}
	return a
}
