package dpc

import "errors"

var (
	// ErrInvalidMetric is returned for metric names other than "euclidean" and "cosine".
	ErrInvalidMetric = errors.New("invalid metric")

	// ErrInvalidFraction is returned when the neighbour fraction is outside (0, 1).
	ErrInvalidFraction = errors.New("invalid fraction")

	// ErrShapeMismatch is returned for malformed point sets: no points,
	// zero-dimensional points, or rows of differing dimensionality.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrDegenerateInput is returned when density and delta cannot be defined,
	// e.g. fewer than two points or all points coincide.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrNonFinite is returned when a coordinate is NaN or infinite.
	ErrNonFinite = errors.New("non-finite coordinate")

	// ErrInvalidDistances is returned when a supplied distance matrix breaks the
	// contract: symmetric, non-negative, finite, zero diagonal.
	ErrInvalidDistances = errors.New("invalid distance matrix")
)
