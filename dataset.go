package hdf5

import (
	"github.com/nerdstrike/hdf5matrix/internal/bstore"
)

// Dataset is a handle to a chunked, fixed-extent, fixed-element-type
// dataset: /matrix, /dim_names, one /dim_labels/<d>, or one
// /boundaries/<d> in the matrix store's file layout.
type Dataset struct {
	file   *File
	header *bstore.DatasetHeader
	name   string
}

// Name returns the dataset's own name within its parent group.
func (d *Dataset) Name() string { return d.name }

// Shape returns the dataset's extent along each dimension.
func (d *Dataset) Shape() []uint64 { return d.header.Shape }

// ChunkShape returns the dataset's chunk size along each dimension.
func (d *Dataset) ChunkShape() []uint64 { return d.header.ChunkShape }

// Rank returns the dataset's number of dimensions.
func (d *Dataset) Rank() int { return d.header.Rank }
