package hdf5

import (
	"github.com/nerdstrike/hdf5matrix/internal/bstore"
)

// Datatype enumerates the element types CreateDataset accepts, re-exported
// from the internal encoding so callers never import internal/bstore
// directly.
type Datatype = bstore.Dtype

const (
	// Float64Type is the element type of /matrix.
	Float64Type = bstore.Float64
	// Int64Type is the element type of the boundary datasets.
	Int64Type = bstore.Int64
	// Uint8Type is the element type of the string-array codec's backing
	// datasets (/dim_names, /dim_labels/<d>).
	Uint8Type = bstore.Uint8
)

// AttrSpec is a scalar int64 attribute to attach to a dataset at creation
// time.
type AttrSpec struct {
	Name  string
	Value int64
}

// DatasetOptions configures CreateDataset.
type DatasetOptions struct {
	Shape      []uint64
	ChunkShape []uint64
	Dtype      Datatype
	FillValue  float64
	Attrs      []AttrSpec
}

// CreateDataset creates a new fixed-extent, chunked dataset named name as
// a child of g, and registers it in g's directory.
func (g *Group) CreateDataset(name string, opts DatasetOptions) (*Dataset, error) {
	if err := g.file.requireWritable("CreateDataset"); err != nil {
		return nil, err
	}
	attrs := make([]bstore.Attr, len(opts.Attrs))
	for i, a := range opts.Attrs {
		attrs[i] = bstore.Attr{Name: a.Name, Value: a.Value}
	}
	header, err := bstore.CreateDataset(g.file.w, opts.Shape, opts.ChunkShape, opts.Dtype, opts.FillValue, attrs)
	if err != nil {
		return nil, newErr(KindArgument, "create dataset "+name, err)
	}
	if err := g.dir.AddChild(g.file.w, name, bstore.ChildDataset, header.Addr); err != nil {
		return nil, newErr(KindStorage, "register dataset "+name, err)
	}
	g.entries = append(g.entries, bstore.ChildEntry{Name: name, Kind: bstore.ChildDataset, Addr: header.Addr})
	return &Dataset{file: g.file, header: header, name: name}, nil
}

// WriteHyperslab writes a row-major flattened slice of doubles into the
// rectangular region [offset, offset+width) of a Float64Type dataset.
func (d *Dataset) WriteHyperslab(offset, width []uint64, data []float64) error {
	if err := d.file.requireWritable("WriteHyperslab"); err != nil {
		return err
	}
	if err := bstore.WriteHyperslabFloat64(d.file.w, d.header, offset, width, data); err != nil {
		return newErr(KindArgument, "write hyperslab "+d.name, err)
	}
	return nil
}

// WriteHyperslabInt64 is the Int64Type analogue of WriteHyperslab, used
// by the boundary index.
func (d *Dataset) WriteHyperslabInt64(offset, width []uint64, data []int64) error {
	if err := d.file.requireWritable("WriteHyperslabInt64"); err != nil {
		return err
	}
	if err := bstore.WriteHyperslabInt64(d.file.w, d.header, offset, width, data); err != nil {
		return newErr(KindArgument, "write hyperslab "+d.name, err)
	}
	return nil
}

// WriteBytes writes a flattened byte slice into the rectangular region
// [offset, offset+width) of a Uint8Type dataset, used by the string-array
// codec.
func (d *Dataset) WriteBytes(offset, width []uint64, data []byte) error {
	if err := d.file.requireWritable("WriteBytes"); err != nil {
		return err
	}
	if err := bstore.WriteHyperslabBytes(d.file.w, d.header, offset, width, data); err != nil {
		return newErr(KindArgument, "write bytes "+d.name, err)
	}
	return nil
}

// WriteElements scatter-writes values at the given coordinates into a
// Float64Type dataset. Overwrite semantics apply: the last write to a
// given coordinate wins.
func (d *Dataset) WriteElements(coords [][]uint64, values []float64) error {
	if err := d.file.requireWritable("WriteElements"); err != nil {
		return err
	}
	if err := bstore.WriteElementsFloat64(d.file.w, d.header, coords, values); err != nil {
		return newErr(KindArgument, "write elements "+d.name, err)
	}
	return nil
}
