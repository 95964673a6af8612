package bstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestWriter(t *testing.T) *Writer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.bst")
	w, err := OpenWriter(path, true, HeaderSize)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestHeaderRoundTrip(t *testing.T) {
	w := newTestWriter(t)
	require.NoError(t, WriteHeader(w, Header{RootAddr: 123}))
	h, err := ReadHeader(w.File())
	require.NoError(t, err)
	require.Equal(t, uint64(123), h.RootAddr)
}

func TestReadHeaderRejectsBadMagic(t *testing.T) {
	w := newTestWriter(t)
	buf := make([]byte, HeaderSize)
	copy(buf, "NOTBSTOR")
	require.NoError(t, w.WriteAt(buf, 0))
	_, err := ReadHeader(w.File())
	require.Error(t, err)
}

func TestGroupDirRoundTrip(t *testing.T) {
	w := newTestWriter(t)
	g, err := CreateGroupDir(w, 2)
	require.NoError(t, err)
	require.NoError(t, g.AddChild(w, "0", ChildDataset, 500))
	require.NoError(t, g.AddChild(w, "1", ChildGroup, 900))

	_, entries, err := OpenGroupDir(w, g.Addr)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, ChildEntry{Name: "0", Kind: ChildDataset, Addr: 500}, entries[0])
	require.Equal(t, ChildEntry{Name: "1", Kind: ChildGroup, Addr: 900}, entries[1])
}

func TestGroupDirRejectsOverCapacity(t *testing.T) {
	w := newTestWriter(t)
	g, err := CreateGroupDir(w, 1)
	require.NoError(t, err)
	require.NoError(t, g.AddChild(w, "only", ChildDataset, 1))
	require.Error(t, g.AddChild(w, "overflow", ChildDataset, 2))
}

func TestDatasetHeaderRoundTripWithAttrs(t *testing.T) {
	w := newTestWriter(t)
	h, err := CreateDataset(w, []uint64{4, 4}, []uint64{2, 2}, Float64, -1, []Attr{{Name: "Core dimensions", Value: 1}})
	require.NoError(t, err)

	reopened, err := OpenDataset(w, h.Addr)
	require.NoError(t, err)
	require.Equal(t, []uint64{4, 4}, reopened.Shape)
	require.Equal(t, []uint64{2, 2}, reopened.ChunkShape)
	v, ok := reopened.Attribute("Core dimensions")
	require.True(t, ok)
	require.Equal(t, int64(1), v)
	_, ok = reopened.Attribute("missing")
	require.False(t, ok)
}

func TestReadElementReturnsFillValueBeforeFirstWrite(t *testing.T) {
	w := newTestWriter(t)
	h, err := CreateDataset(w, []uint64{4, 4}, []uint64{2, 2}, Float64, -1, nil)
	require.NoError(t, err)

	vals, err := ReadHyperslabFloat64(w, h, []uint64{0, 0}, []uint64{4, 4})
	require.NoError(t, err)
	for _, v := range vals {
		require.Equal(t, -1.0, v)
	}
}

func TestWriteElementAllocatesChunkLazily(t *testing.T) {
	w := newTestWriter(t)
	h, err := CreateDataset(w, []uint64{4, 4}, []uint64{2, 2}, Float64, 0, nil)
	require.NoError(t, err)

	require.NoError(t, WriteHyperslabFloat64(w, h, []uint64{3, 3}, []uint64{1, 1}, []float64{42}))

	// Reading a different cell in the same chunk observes the chunk's
	// fill value rather than an error, confirming the whole chunk was
	// fill-initialized on first write, not just the written element.
	vals, err := ReadHyperslabFloat64(w, h, []uint64{2, 2}, []uint64{2, 2})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0, 42}, vals)
}

func TestWriteElementsFloat64LastWriteWins(t *testing.T) {
	w := newTestWriter(t)
	h, err := CreateDataset(w, []uint64{4, 4}, []uint64{4, 4}, Float64, 0, nil)
	require.NoError(t, err)

	require.NoError(t, WriteElementsFloat64(w, h, [][]uint64{{1, 1}, {1, 1}}, []float64{1, 2}))
	vals, err := ReadHyperslabFloat64(w, h, []uint64{1, 1}, []uint64{1, 1})
	require.NoError(t, err)
	require.Equal(t, []float64{2}, vals)
}

func TestEachCoordRowMajorOrder(t *testing.T) {
	var got [][]uint64
	err := eachCoord([]uint64{1, 0}, []uint64{2, 3}, func(coord []uint64) error {
		got = append(got, append([]uint64(nil), coord...))
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, [][]uint64{
		{1, 0}, {1, 1}, {1, 2},
		{2, 0}, {2, 1}, {2, 2},
	}, got)
}

func TestValidateCoordRejectsOutOfRange(t *testing.T) {
	w := newTestWriter(t)
	h, err := CreateDataset(w, []uint64{3, 3}, []uint64{3, 3}, Float64, 0, nil)
	require.NoError(t, err)
	require.Error(t, h.ValidateCoord([]uint64{3, 0}))
	require.Error(t, h.ValidateCoord([]uint64{0, 0, 0}))
	require.NoError(t, h.ValidateCoord([]uint64{2, 2}))
}
