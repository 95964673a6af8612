package bstore

import (
	"fmt"
	"math"
)

// Dtype enumerates the three element types this store ever persists:
// the double-precision matrix, the int64 boundary intervals, and the
// raw bytes of the string-array codec.
type Dtype uint8

const (
	// Float64 is an 8-byte IEEE-754 double, used by /matrix.
	Float64 Dtype = iota
	// Int64 is an 8-byte signed integer, used by boundary datasets.
	Int64
	// Uint8 is a single byte, used by the string-array codec.
	Uint8
)

// Size returns the on-disk size in bytes of one element of d.
func (d Dtype) Size() uint64 {
	switch d {
	case Float64, Int64:
		return 8
	case Uint8:
		return 1
	default:
		panic(fmt.Sprintf("bstore: unknown dtype %d", d))
	}
}

const attrEntrySize = 1 + 32 + 8 // nameLen(1) + name(32) + value int64(8)

// Attr is a scalar int64 attribute attached to a dataset at creation.
// Attributes in this store are fixed at creation time, since the only
// attribute any component ever writes ("Core dimensions") is always
// known before the dataset exists.
type Attr struct {
	Name  string
	Value int64
}

// DatasetHeader is the fixed-size-per-rank record describing one
// dataset: its shape, chunk shape, element type, fill value, and
// attributes, immediately followed on disk by its chunk address table.
type DatasetHeader struct {
	Addr       uint64
	Rank       int
	Shape      []uint64
	ChunkShape []uint64
	Dtype      Dtype
	FillValue  float64
	Attrs      []Attr

	chunkTableAddr uint64
	gridShape      []uint64
}

// GridShape returns the number of chunks along each dimension, i.e.
// ceil(shape[d] / chunkShape[d]).
func GridShape(shape, chunkShape []uint64) []uint64 {
	g := make([]uint64, len(shape))
	for d := range shape {
		if shape[d] == 0 {
			// A zero-extent axis (e.g. a boundary dataset's core_rank-1
			// axis when core_rank == 1) holds no chunks regardless of
			// its nominal chunk size, which may itself be 0.
			g[d] = 0
			continue
		}
		g[d] = (shape[d] + chunkShape[d] - 1) / chunkShape[d]
	}
	return g
}

func gridVolume(g []uint64) uint64 {
	v := uint64(1)
	for _, x := range g {
		v *= x
	}
	return v
}

// CreateDataset allocates and writes a new dataset header plus an
// all-zero (unallocated) chunk address table. Chunks are materialized
// lazily on first write; a flat grid-indexed table addresses them,
// since every dataset here has a fixed extent decided at creation and
// the index never needs to grow.
func CreateDataset(w *Writer, shape, chunkShape []uint64, dtype Dtype, fill float64, attrs []Attr) (*DatasetHeader, error) {
	rank := len(shape)
	if rank == 0 || rank != len(chunkShape) {
		return nil, fmt.Errorf("bstore: rank mismatch (shape=%d chunkShape=%d)", rank, len(chunkShape))
	}
	headerFixed := 1 + 1 + rank*8 + rank*8 + 8 + 4 + len(attrs)*attrEntrySize
	grid := GridShape(shape, chunkShape)
	tableLen := gridVolume(grid)
	total := uint64(headerFixed) + tableLen*8

	addr := w.Allocate(total)
	buf := make([]byte, headerFixed)
	buf[0] = byte(rank)
	buf[1] = byte(dtype)
	off := 2
	for _, s := range shape {
		Order.PutUint64(buf[off:], s)
		off += 8
	}
	for _, c := range chunkShape {
		Order.PutUint64(buf[off:], c)
		off += 8
	}
	Order.PutUint64(buf[off:], math.Float64bits(fill))
	off += 8
	Order.PutUint32(buf[off:], uint32(len(attrs)))
	off += 4
	for _, a := range attrs {
		if len(a.Name) > 32 {
			return nil, fmt.Errorf("bstore: attribute name %q exceeds 32 bytes", a.Name)
		}
		buf[off] = byte(len(a.Name))
		copy(buf[off+1:off+1+32], a.Name)
		Order.PutUint64(buf[off+1+32:], uint64(a.Value))
		off += attrEntrySize
	}
	if err := w.WriteAt(buf, addr); err != nil {
		return nil, err
	}

	chunkTableAddr := addr + uint64(headerFixed)
	zero := make([]byte, tableLen*8)
	if err := w.WriteAt(zero, chunkTableAddr); err != nil {
		return nil, err
	}

	return &DatasetHeader{
		Addr: addr, Rank: rank, Shape: shape, ChunkShape: chunkShape,
		Dtype: dtype, FillValue: fill, Attrs: attrs,
		chunkTableAddr: chunkTableAddr, gridShape: grid,
	}, nil
}

// OpenDataset reads back a dataset header previously written by
// CreateDataset.
func OpenDataset(w *Writer, addr uint64) (*DatasetHeader, error) {
	prefix := make([]byte, 2)
	if err := w.ReadAt(prefix, addr); err != nil {
		return nil, err
	}
	rank := int(prefix[0])
	dtype := Dtype(prefix[1])

	rest := make([]byte, rank*8+rank*8+8+4)
	if err := w.ReadAt(rest, addr+2); err != nil {
		return nil, err
	}
	off := 0
	shape := make([]uint64, rank)
	for i := range shape {
		shape[i] = Order.Uint64(rest[off:])
		off += 8
	}
	chunkShape := make([]uint64, rank)
	for i := range chunkShape {
		chunkShape[i] = Order.Uint64(rest[off:])
		off += 8
	}
	fill := math.Float64frombits(Order.Uint64(rest[off:]))
	off += 8
	attrCount := int(Order.Uint32(rest[off:]))

	attrs := make([]Attr, attrCount)
	attrBuf := make([]byte, attrCount*attrEntrySize)
	attrsAddr := addr + 2 + uint64(len(rest))
	if attrCount > 0 {
		if err := w.ReadAt(attrBuf, attrsAddr); err != nil {
			return nil, err
		}
	}
	aoff := 0
	for i := 0; i < attrCount; i++ {
		nameLen := int(attrBuf[aoff])
		name := string(attrBuf[aoff+1 : aoff+1+nameLen])
		value := int64(Order.Uint64(attrBuf[aoff+1+32:]))
		attrs[i] = Attr{Name: name, Value: value}
		aoff += attrEntrySize
	}

	headerFixed := 2 + len(rest) + attrCount*attrEntrySize
	grid := GridShape(shape, chunkShape)
	return &DatasetHeader{
		Addr: addr, Rank: rank, Shape: shape, ChunkShape: chunkShape,
		Dtype: dtype, FillValue: fill, Attrs: attrs,
		chunkTableAddr: addr + uint64(headerFixed), gridShape: grid,
	}, nil
}

// Attribute looks up a scalar attribute by name.
func (h *DatasetHeader) Attribute(name string) (int64, bool) {
	for _, a := range h.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return 0, false
}
