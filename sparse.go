package dpc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// SparseMatrix is a point set in compressed sparse row (CSR) form.
// Row i stores its non-zero coordinates at Indices[Indptr[i]:Indptr[i+1]]
// with values Values[Indptr[i]:Indptr[i+1]]; column indices within a row are
// strictly increasing.
type SparseMatrix struct {
	Rows    int
	Cols    int
	Indptr  []int
	Indices []int
	Values  []float64
}

// NewSparseMatrix validates CSR components and wraps them in a SparseMatrix.
// The slices are not copied.
func NewSparseMatrix(rows, cols int, indptr, indices []int, values []float64) (*SparseMatrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("dpc: sparse matrix must be at least 1x1, got %dx%d: %w", rows, cols, ErrShapeMismatch)
	}
	if len(indptr) != rows+1 || indptr[0] != 0 {
		return nil, fmt.Errorf("dpc: indptr must have %d entries starting at 0: %w", rows+1, ErrShapeMismatch)
	}
	if len(indices) != len(values) || indptr[rows] != len(values) {
		return nil, fmt.Errorf("dpc: indptr ends at %d but there are %d indices and %d values: %w",
			indptr[rows], len(indices), len(values), ErrShapeMismatch)
	}
	for i := 0; i < rows; i++ {
		lo, hi := indptr[i], indptr[i+1]
		if hi < lo {
			return nil, fmt.Errorf("dpc: indptr decreases at row %d: %w", i, ErrShapeMismatch)
		}
		prev := -1
		for k := lo; k < hi; k++ {
			col := indices[k]
			if col <= prev || col >= cols {
				return nil, fmt.Errorf("dpc: row %d column index %d out of order or range [0, %d): %w", i, col, cols, ErrShapeMismatch)
			}
			if v := values[k]; math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("dpc: row %d column %d is %v: %w", i, col, v, ErrNonFinite)
			}
			prev = col
		}
	}
	return &SparseMatrix{Rows: rows, Cols: cols, Indptr: indptr, Indices: indices, Values: values}, nil
}

// SparseFromDense converts dense points to CSR form, dropping zeros.
func SparseFromDense(data [][]float64) (*SparseMatrix, error) {
	_, n, dims, err := flattenPoints(data)
	if err != nil {
		return nil, err
	}
	indptr := make([]int, 1, n+1)
	var indices []int
	var values []float64
	for _, row := range data {
		for j, v := range row {
			if v != 0 {
				indices = append(indices, j)
				values = append(values, v)
			}
		}
		indptr = append(indptr, len(values))
	}
	return &SparseMatrix{Rows: n, Cols: dims, Indptr: indptr, Indices: indices, Values: values}, nil
}

// Row returns the column indices and values of row i.
func (m *SparseMatrix) Row(i int) ([]int, []float64) {
	lo, hi := m.Indptr[i], m.Indptr[i+1]
	return m.Indices[lo:hi], m.Values[lo:hi]
}

// dot is the inner product of rows i and j, merging their sorted indices.
func (m *SparseMatrix) dot(i, j int) float64 {
	ai, av := m.Row(i)
	bi, bv := m.Row(j)
	var sum float64
	for a, b := 0, 0; a < len(ai) && b < len(bi); {
		switch {
		case ai[a] < bi[b]:
			a++
		case ai[a] > bi[b]:
			b++
		default:
			sum += av[a] * bv[b]
			a++
			b++
		}
	}
	return sum
}

// SparseProvider measures CSR points through their Gram matrix, the way
// pairwise-distance libraries handle sparse input: only non-zero coordinates
// are touched.
type SparseProvider struct {
	Matrix *SparseMatrix
}

// PairwiseDistances implements DistanceProvider.
func (p SparseProvider) PairwiseDistances(metric Metric) ([]float64, int, error) {
	if _, err := metricFor(metric); err != nil {
		return nil, 0, err
	}
	m := p.Matrix
	if m == nil || m.Rows == 0 {
		return nil, 0, fmt.Errorf("dpc: sparse point set is empty: %w", ErrShapeMismatch)
	}

	n := m.Rows
	gram := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			gram.SetSym(i, j, m.dot(i, j))
		}
	}

	result := make([]float64, n*n)
	for i := 0; i < n; i++ {
		gi := gram.At(i, i)
		for j := i + 1; j < n; j++ {
			gj, gij := gram.At(j, j), gram.At(i, j)
			var d float64
			switch metric {
			case Cosine:
				if gi == 0 || gj == 0 {
					d = 1
				} else {
					d = clipCosine(1 - gij/math.Sqrt(gi*gj))
				}
			default:
				d = math.Sqrt(math.Max(gi+gj-2*gij, 0))
			}
			result[i*n+j] = d
			result[j*n+i] = d
		}
	}
	return result, n, nil
}
