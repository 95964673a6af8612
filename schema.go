package hdf5

import (
	"fmt"
	"sort"
	"strconv"
)

// Handle is a writable or read-only matrix store file, wrapping the
// binary-format adapter's *File with the cached schema metadata the
// matrix store, boundary index, and query planner all need on every
// call: rank, core_rank, and the persisted (post-reorder) dimension
// extents.
type Handle struct {
	f        *File
	rank     int
	coreRank int
	sizes    []int64

	// maxUnprunedVolume bounds the /matrix read volume of a query in
	// which no core dimension is fixed. Zero means unlimited.
	maxUnprunedVolume uint64
}

// Rank returns the number of dimensions.
func (h *Handle) Rank() int { return h.rank }

// CoreRank returns the number of core dimensions.
func (h *Handle) CoreRank() int { return h.coreRank }

// Sizes returns the persisted (post-reorder) per-dimension extents.
func (h *Handle) Sizes() []int64 { return append([]int64(nil), h.sizes...) }

// isCore reports whether absolute dimension d occupies one of the high
// core_rank positions: core dimensions are the last core_rank positions
// after reordering.
func (h *Handle) isCore(d int) bool { return d >= h.rank-h.coreRank }

// SetMaxUnprunedVolume bounds the volume of a query that leaves every
// core dimension free, which is correct but can be arbitrarily
// expensive. Zero (the default) means unlimited.
func (h *Handle) SetMaxUnprunedVolume(v uint64) { h.maxUnprunedVolume = v }

// Close releases the underlying file handle.
func (h *Handle) Close() error { return h.f.Close() }

// boundariesDatasetName is the decimal key a core dimension's boundary
// dataset is registered under in /boundaries.
func boundariesDatasetName(d int) string { return strconv.Itoa(d) }

// dimLabelDatasetName is the decimal key a dimension's label vocabulary
// is registered under in /dim_labels.
func dimLabelDatasetName(d int) string { return strconv.Itoa(d) }

// CreateMatrixFile implements the schema writer: it truncates filename,
// classifies dimensions into free/core against the configured
// BigDimLength, reorders them by ascending extent (stable, ties broken
// by original index), and lays down /dim_names, /dim_labels/<d>,
// /matrix (with its "Core dimensions" attribute), and one -1-filled
// /boundaries/<d> per core dimension.
//
// names, sizes, and labels are reordered in place to reflect the
// persisted order. If chunkSizes is nil, each defaults to
// min(size_d, 100) before reordering; if supplied, it is reordered
// alongside (names, sizes, labels) by the same permutation so a
// caller-supplied chunk size always travels with its dimension.
func CreateMatrixFile(filename string, names []string, sizes []int64, labels [][]string, chunkSizes []int64) (*Handle, error) {
	rank := len(names)
	if rank == 0 {
		return nil, newErr(KindArgument, "CreateMatrixFile: rank must be >= 1", nil)
	}
	if len(sizes) != rank || len(labels) != rank {
		return nil, newErr(KindArgument, "CreateMatrixFile: names, sizes, labels must have equal length", nil)
	}
	for d := 0; d < rank; d++ {
		if int64(len(labels[d])) != sizes[d] {
			return nil, newErr(KindArgument, fmt.Sprintf("CreateMatrixFile: dim %d has %d labels for size %d", d, len(labels[d]), sizes[d]), nil)
		}
	}

	if chunkSizes == nil {
		chunkSizes = make([]int64, rank)
		for d := 0; d < rank; d++ {
			chunkSizes[d] = minInt64(sizes[d], 100)
		}
	} else if len(chunkSizes) != rank {
		return nil, newErr(KindArgument, "CreateMatrixFile: chunkSizes must have rank length", nil)
	}

	bigDim := BigDimLength()
	coreRank := 0
	for _, s := range sizes {
		if s > bigDim {
			coreRank++
		}
	}

	order := make([]int, rank)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return sizes[order[a]] < sizes[order[b]] })

	reorderedNames := make([]string, rank)
	reorderedSizes := make([]int64, rank)
	reorderedLabels := make([][]string, rank)
	reorderedChunks := make([]int64, rank)
	for i, orig := range order {
		reorderedNames[i] = names[orig]
		reorderedSizes[i] = sizes[orig]
		reorderedLabels[i] = labels[orig]
		reorderedChunks[i] = chunkSizes[orig]
	}
	copy(names, reorderedNames)
	copy(sizes, reorderedSizes)
	copy(labels, reorderedLabels)
	copy(chunkSizes, reorderedChunks)

	logf("CreateMatrixFile %s: rank=%d core_rank=%d", filename, rank, coreRank)

	f, err := CreateFile(filename)
	if err != nil {
		return nil, err
	}

	if _, err := WriteStringArray(f.Root(), "dim_names", names); err != nil {
		_ = f.Close()
		return nil, err
	}

	dimLabels, err := f.Root().CreateGroup("dim_labels", rank)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	for d := 0; d < rank; d++ {
		if _, err := WriteStringArray(dimLabels, dimLabelDatasetName(d), labels[d]); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	shape := make([]uint64, rank)
	chunkShape := make([]uint64, rank)
	for d := 0; d < rank; d++ {
		shape[d] = uint64(sizes[d])
		chunkShape[d] = uint64(chunkSizes[d])
	}
	_, err = f.Root().CreateDataset("matrix", DatasetOptions{
		Shape:      shape,
		ChunkShape: chunkShape,
		Dtype:      Float64Type,
		Attrs:      []AttrSpec{{Name: "Core dimensions", Value: int64(coreRank)}},
	})
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	if coreRank > 0 {
		boundaries, err := f.Root().CreateGroup("boundaries", coreRank)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		firstCore := rank - coreRank
		for d := firstCore; d < rank; d++ {
			_, err := boundaries.CreateDataset(boundariesDatasetName(d), DatasetOptions{
				Shape:      []uint64{uint64(sizes[d]), uint64(coreRank - 1), 2},
				ChunkShape: []uint64{uint64(sizes[d]), uint64(coreRank - 1), 2},
				Dtype:      Int64Type,
				FillValue:  -1,
			})
			if err != nil {
				_ = f.Close()
				return nil, err
			}
		}
	}

	return &Handle{f: f, rank: rank, coreRank: coreRank, sizes: append([]int64(nil), sizes...)}, nil
}

// OpenMatrixFile opens an existing matrix store file read-only,
// reconstructing the cached schema metadata from /matrix's shape and
// its "Core dimensions" attribute.
func OpenMatrixFile(filename string) (*Handle, error) {
	f, err := OpenFile(filename)
	if err != nil {
		return nil, err
	}
	matrix, err := f.Root().OpenDataset("matrix")
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	coreRank64, ok := matrix.Attribute("Core dimensions")
	if !ok {
		_ = f.Close()
		return nil, newErr(KindFormat, "matrix dataset missing Core dimensions attribute", nil)
	}
	shape := matrix.Shape()
	sizes := make([]int64, len(shape))
	for i, s := range shape {
		sizes[i] = int64(s)
	}
	return &Handle{f: f, rank: len(shape), coreRank: int(coreRank64), sizes: sizes}, nil
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
