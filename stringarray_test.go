package hdf5

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeStringsRoundTrip(t *testing.T) {
	in := []string{"a", "bb", "ccc"}
	rowWidth, data := EncodeStrings(in)
	require.Equal(t, 4, rowWidth) // longest "ccc" (3) + terminator
	require.Equal(t, len(in)*rowWidth, len(data))

	out := DecodeStrings(data, len(in), rowWidth)
	require.Equal(t, in, out)
}

func TestReadStringSubarray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub.bst")
	f, err := CreateFile(path)
	require.NoError(t, err)
	defer f.Close()

	ds, err := WriteStringArray(f.Root(), "labels", []string{"a", "bb", "ccc", "d"})
	require.NoError(t, err)

	sub, err := ReadStringSubarray(ds, 1, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"bb", "ccc"}, sub)
}

func TestEmptyStringArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bst")
	f, err := CreateFile(path)
	require.NoError(t, err)
	defer f.Close()

	ds, err := WriteStringArray(f.Root(), "labels", nil)
	require.NoError(t, err)
	out, err := ReadStringArray(ds)
	require.NoError(t, err)
	require.Empty(t, out)
}
