package hdf5

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateFileThenOpenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.bst")

	f, err := CreateFile(path)
	require.NoError(t, err)

	_, err = WriteStringArray(f.Root(), "dim_names", []string{"rows", "cols"})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()

	ds, err := reopened.Root().OpenDataset("dim_names")
	require.NoError(t, err)
	names, err := ReadStringArray(ds)
	require.NoError(t, err)
	require.Equal(t, []string{"rows", "cols"}, names)
}

func TestOpenFileHandleRejectsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readonly.bst")

	f, err := CreateFile(path)
	require.NoError(t, err)
	_, err = WriteStringArray(f.Root(), "dim_names", []string{"a"})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()

	_, err = reopened.Root().CreateDataset("matrix", DatasetOptions{
		Shape: []uint64{1}, ChunkShape: []uint64{1}, Dtype: Float64Type,
	})
	require.Error(t, err)
}
