package hdf5

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMinimal2D covers a small, fully-free two-dimensional store.
func TestMinimal2D(t *testing.T) {
	defer SetBigDimLength(BigDimLength())
	SetBigDimLength(10)

	// Sizes are already ascending, so the schema writer's stable sort
	// leaves this pair's order untouched (dimension reordering itself
	// is covered separately by TestCreateMatrixFileRoundTripAndReorder).
	path := filepath.Join(t.TempDir(), "minimal.bst")
	names := []string{"rows", "cols"}
	sizes := []int64{2, 3}
	labels := [][]string{{"r0", "r1"}, {"c0", "c1", "c2"}}
	h, err := CreateMatrixFile(path, names, sizes, labels, nil)
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, StoreValues(h, [][]int64{{0, 0}, {1, 2}}, []float64{1.0, 2.5}))

	result, err := FetchStringValues(h, []bool{false, false}, []int64{0, 0})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, result.Dims)
	require.Equal(t, []float64{1.0, 2.5}, result.Values)
	require.Equal(t, [][]string{{"r0", "c0"}, {"r1", "c2"}}, result.Coords)
}

// TestBoundaryPruning covers query pruning via the boundary index,
// including a conditioning index that was never stored.
func TestBoundaryPruning(t *testing.T) {
	defer SetBigDimLength(BigDimLength())
	SetBigDimLength(1000)

	path := filepath.Join(t.TempDir(), "pruning.bst")
	names := []string{"a", "b"}
	sizes := []int64{2000, 2000}
	labels := make([][]string, 2)
	for d := range labels {
		lbl := make([]string, 2000)
		for i := range lbl {
			lbl[i] = "v"
		}
		labels[d] = lbl
	}
	h, err := CreateMatrixFile(path, names, sizes, labels, nil)
	require.NoError(t, err)
	defer h.Close()
	require.Equal(t, 2, h.CoreRank())

	require.NoError(t, StoreValues(h, [][]int64{{10, 20}, {10, 25}, {11, 30}}, []float64{1.0, 2.0, 3.0}))

	result, err := FetchStringValues(h, []bool{true, false}, []int64{10, 0})
	require.NoError(t, err)
	require.Len(t, result.Values, 2)
	require.ElementsMatch(t, []float64{1.0, 2.0}, result.Values)

	// A never-stored conditioning index prunes to nothing.
	empty, err := FetchStringValues(h, []bool{true, false}, []int64{999, 0})
	require.NoError(t, err)
	require.Empty(t, empty.Values)
}

// TestLabelMapping covers joining a query's result against its
// dimension's label vocabulary.
func TestLabelMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.bst")
	names := []string{"letter"}
	sizes := []int64{3}
	labels := [][]string{{"a", "bb", "ccc"}}
	h, err := CreateMatrixFile(path, names, sizes, labels, nil)
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, StoreValues(h, [][]int64{{1}, {2}}, []float64{7.0, 8.0}))

	result, err := FetchStringValues(h, []bool{false}, []int64{0})
	require.NoError(t, err)
	require.Equal(t, []int{0}, result.Dims)
	require.Equal(t, []string{"letter"}, result.DimNames)
	require.Equal(t, [][]string{{"bb"}, {"ccc"}}, result.Coords)
	require.Equal(t, []float64{7.0, 8.0}, result.Values)

	result.Release()
	require.Nil(t, result.Values)
}

func TestFetchStringValuesRejectsOutOfRangeConstraint(t *testing.T) {
	h, _ := newTestMatrixFile(t, []int64{3, 2})
	defer h.Close()

	_, err := FetchStringValues(h, []bool{true, false}, []int64{5, 0})
	require.Error(t, err)
}

func TestMaxUnprunedVolumeBudget(t *testing.T) {
	defer SetBigDimLength(BigDimLength())
	SetBigDimLength(1)

	path := filepath.Join(t.TempDir(), "budget.bst")
	names := []string{"a", "b"}
	sizes := []int64{10, 10}
	labels := [][]string{make([]string, 10), make([]string, 10)}
	for d := range labels {
		for i := range labels[d] {
			labels[d][i] = "v"
		}
	}
	h, err := CreateMatrixFile(path, names, sizes, labels, nil)
	require.NoError(t, err)
	defer h.Close()
	require.Equal(t, 2, h.CoreRank())

	h.SetMaxUnprunedVolume(50) // 10*10=100 > 50, and no core dim is fixed

	_, err = FetchStringValues(h, []bool{false, false}, []int64{0, 0})
	require.Error(t, err)
	var hErr *Error
	require.ErrorAs(t, err, &hErr)
	require.Equal(t, KindResourceExhausted, hErr.Kind)
}
