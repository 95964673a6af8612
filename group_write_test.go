package hdf5

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNestedGroupsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groups.bst")
	f, err := CreateFile(path)
	require.NoError(t, err)

	labels, err := f.Root().CreateGroup("dim_labels", 2)
	require.NoError(t, err)
	_, err = WriteStringArray(labels, "0", []string{"a", "bb"})
	require.NoError(t, err)
	_, err = WriteStringArray(labels, "1", []string{"x"})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()

	g, err := reopened.Root().OpenGroup("dim_labels")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"0", "1"}, g.ChildNames())

	ds0, err := g.OpenDataset("0")
	require.NoError(t, err)
	labels0, err := ReadStringArray(ds0)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "bb"}, labels0)
}

func TestCreateGroupRejectsOverCapacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overcap.bst")
	f, err := CreateFile(path)
	require.NoError(t, err)
	defer f.Close()

	g, err := f.Root().CreateGroup("boundaries", 1)
	require.NoError(t, err)
	_, err = WriteStringArray(g, "0", []string{"a"})
	require.NoError(t, err)
	_, err = WriteStringArray(g, "1", []string{"b"})
	require.Error(t, err)
}
