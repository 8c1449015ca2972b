package dpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSparseMatrix_Valid(t *testing.T) {
	// [[1 0 2]
	//  [0 0 0]
	//  [0 3 0]]
	m, err := NewSparseMatrix(3, 3, []int{0, 2, 2, 3}, []int{0, 2, 1}, []float64{1, 2, 3})
	require.NoError(t, err)

	idx, val := m.Row(0)
	assert.Equal(t, []int{0, 2}, idx)
	assert.Equal(t, []float64{1, 2}, val)
	idx, _ = m.Row(1)
	assert.Empty(t, idx)
	assert.Equal(t, 5.0, m.dot(0, 0))
	assert.Zero(t, m.dot(0, 2))
}

func TestNewSparseMatrix_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		cols    int
		indptr  []int
		indices []int
		values  []float64
		want    error
	}{
		{"no rows", 0, 3, []int{0}, nil, nil, ErrShapeMismatch},
		{"short indptr", 2, 3, []int{0, 1}, []int{0}, []float64{1}, ErrShapeMismatch},
		{"indptr not from zero", 1, 3, []int{1, 1}, nil, nil, ErrShapeMismatch},
		{"indptr end mismatch", 1, 3, []int{0, 2}, []int{0}, []float64{1}, ErrShapeMismatch},
		{"decreasing indptr", 2, 3, []int{0, 1, 0}, []int{0}, []float64{1}, ErrShapeMismatch},
		{"column out of range", 1, 3, []int{0, 1}, []int{3}, []float64{1}, ErrShapeMismatch},
		{"unsorted columns", 1, 3, []int{0, 2}, []int{2, 0}, []float64{1, 1}, ErrShapeMismatch},
		{"duplicate column", 1, 3, []int{0, 2}, []int{1, 1}, []float64{1, 1}, ErrShapeMismatch},
		{"NaN value", 1, 3, []int{0, 1}, []int{0}, []float64{nan()}, ErrNonFinite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSparseMatrix(tt.rows, tt.cols, tt.indptr, tt.indices, tt.values)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSparseFromDense(t *testing.T) {
	m, err := SparseFromDense([][]float64{{1, 0, 2}, {0, 0, 0}, {0, 3, 0}})
	require.NoError(t, err)
	assert.Equal(t, 3, m.Rows)
	assert.Equal(t, 3, m.Cols)
	assert.Equal(t, []int{0, 2, 2, 3}, m.Indptr)
	assert.Equal(t, []int{0, 2, 1}, m.Indices)
	assert.Equal(t, []float64{1, 2, 3}, m.Values)

	_, err = SparseFromDense([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestSparseProvider_MatchesDense(t *testing.T) {
	data := blobs(2, 15, 9)
	m, err := SparseFromDense(data)
	require.NoError(t, err)

	for _, metric := range []Metric{Euclidean, Cosine} {
		t.Run(string(metric), func(t *testing.T) {
			dense, n, err := DenseProvider{Data: data, Workers: 2}.PairwiseDistances(metric)
			require.NoError(t, err)
			sparse, sn, err := SparseProvider{Matrix: m}.PairwiseDistances(metric)
			require.NoError(t, err)

			require.Equal(t, n, sn)
			assert.InDeltaSlice(t, dense, sparse, 1e-6)
			require.NoError(t, validateDistances(sparse, sn))
		})
	}
}

func TestSparseProvider_ZeroRowCosine(t *testing.T) {
	m, err := SparseFromDense([][]float64{{0, 0}, {1, 0}, {0, 2}})
	require.NoError(t, err)

	dist, n, err := SparseProvider{Matrix: m}.PairwiseDistances(Cosine)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	assert.InDeltaSlice(t, []float64{
		0, 1, 1,
		1, 0, 1,
		1, 1, 0,
	}, dist, floatTol)
}

func TestSparseProvider_Errors(t *testing.T) {
	_, _, err := SparseProvider{}.PairwiseDistances(Euclidean)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	m, err := SparseFromDense([][]float64{{1}, {2}})
	require.NoError(t, err)
	_, _, err = SparseProvider{Matrix: m}.PairwiseDistances("jaccard")
	assert.ErrorIs(t, err, ErrInvalidMetric)
}

func TestClusterSparse_MatchesDense(t *testing.T) {
	data := blobs(3, 20, 4)
	m, err := SparseFromDense(data)
	require.NoError(t, err)

	cfg := Config{Fraction: 0.03}
	dense, err := Cluster(data, cfg)
	require.NoError(t, err)
	sparse, err := ClusterSparse(m, cfg)
	require.NoError(t, err)

	assert.InDelta(t, dense.KernelSize, sparse.KernelSize, 1e-6)
	assert.InDeltaSlice(t, dense.Density, sparse.Density, 1e-4)

	thresholds := AssignConfig{MinDensity: 1, MinDelta: 10}
	da, sa := dense.Assign(thresholds), sparse.Assign(thresholds)
	require.Equal(t, da.NClusters, sa.NClusters)
	assert.True(t, sameClustering(da.Membership, sa.Membership))
}

// sameClustering reports whether two memberships describe the same partition
// up to relabelling. Unassigned must match exactly.
func sameClustering(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	forward := map[int]int{}
	backward := map[int]int{}
	for i := range a {
		if (a[i] == Unassigned) != (b[i] == Unassigned) {
			return false
		}
		if a[i] == Unassigned {
			continue
		}
		if m, ok := forward[a[i]]; ok && m != b[i] {
			return false
		}
		if m, ok := backward[b[i]]; ok && m != a[i] {
			return false
		}
		forward[a[i]] = b[i]
		backward[b[i]] = a[i]
	}
	return true
}
