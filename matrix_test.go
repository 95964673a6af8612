package hdf5

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestMatrixFile(t *testing.T, sizes []int64) (*Handle, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matrix.bst")
	names := make([]string, len(sizes))
	labels := make([][]string, len(sizes))
	for d, size := range sizes {
		names[d] = "dim"
		lbl := make([]string, size)
		for i := range lbl {
			lbl[i] = "v"
		}
		labels[d] = lbl
	}
	h, err := CreateMatrixFile(path, names, sizes, labels, nil)
	require.NoError(t, err)
	return h, path
}

func TestStoreValuesOverwriteLastWriteWins(t *testing.T) {
	h, _ := newTestMatrixFile(t, []int64{3, 2})
	defer h.Close()

	// sizes {3,2} are reordered ascending to persisted sizes {2,3}.
	require.NoError(t, StoreValues(h, [][]int64{{0, 0}, {1, 2}}, []float64{1.0, 2.5}))
	require.NoError(t, StoreValues(h, [][]int64{{0, 0}}, []float64{9.0}))

	result, err := FetchStringValues(h, []bool{false, false}, []int64{0, 0})
	require.NoError(t, err)
	require.Len(t, result.Values, 2)
	require.Equal(t, []float64{9.0, 2.5}, result.Values)
}

func TestStoreValuesRejectsOutOfRangeCoordinate(t *testing.T) {
	h, _ := newTestMatrixFile(t, []int64{3, 2})
	defer h.Close()

	err := StoreValues(h, [][]int64{{3, 0}}, []float64{1.0})
	require.Error(t, err)
}

func TestStoreValuesRejectsMismatchedLengths(t *testing.T) {
	h, _ := newTestMatrixFile(t, []int64{3, 2})
	defer h.Close()

	err := StoreValues(h, [][]int64{{0, 0}}, []float64{1.0, 2.0})
	require.Error(t, err)
}
