package bstore

import (
	"fmt"
	"math"
)

// rowMajor converts a multi-dimensional index into a flat row-major
// offset against the given extents, outermost dimension first.
func rowMajor(index, extents []uint64) uint64 {
	var flat uint64
	for d, idx := range index {
		flat = flat*extents[d] + idx
	}
	return flat
}

// chunkCoord splits an absolute element coordinate into the grid index of
// the chunk that holds it and the element's position within that chunk.
func chunkCoord(coord, chunkShape []uint64) (grid, local []uint64) {
	grid = make([]uint64, len(coord))
	local = make([]uint64, len(coord))
	for d := range coord {
		grid[d] = coord[d] / chunkShape[d]
		local[d] = coord[d] % chunkShape[d]
	}
	return
}

func chunkVolume(chunkShape []uint64) uint64 {
	v := uint64(1)
	for _, c := range chunkShape {
		v *= c
	}
	return v
}

// chunkSlot returns the file address of the chunk-table entry for the
// chunk at grid index g (not the chunk's data address; that is the
// value stored at this slot, 0 meaning unallocated).
func (h *DatasetHeader) chunkSlot(grid []uint64) uint64 {
	flat := rowMajor(grid, h.gridShape)
	return h.chunkTableAddr + flat*8
}

func (h *DatasetHeader) readChunkAddr(w *Writer, grid []uint64) (uint64, error) {
	buf := make([]byte, 8)
	if err := w.ReadAt(buf, h.chunkSlot(grid)); err != nil {
		return 0, err
	}
	return Order.Uint64(buf), nil
}

// ensureChunk returns the data address of the chunk at grid index g,
// allocating and fill-initializing it on first use.
func (h *DatasetHeader) ensureChunk(w *Writer, grid []uint64) (uint64, error) {
	addr, err := h.readChunkAddr(w, grid)
	if err != nil {
		return 0, err
	}
	if addr != 0 {
		return addr, nil
	}

	elemSize := h.Dtype.Size()
	vol := chunkVolume(h.ChunkShape)
	data := make([]byte, vol*elemSize)
	fillElem := h.encodeFill()
	for i := uint64(0); i < vol; i++ {
		copy(data[i*elemSize:], fillElem)
	}
	newAddr := w.Allocate(uint64(len(data)))
	if err := w.WriteAt(data, newAddr); err != nil {
		return 0, err
	}
	slotBuf := make([]byte, 8)
	Order.PutUint64(slotBuf, newAddr)
	if err := w.WriteAt(slotBuf, h.chunkSlot(grid)); err != nil {
		return 0, err
	}
	return newAddr, nil
}

func (h *DatasetHeader) encodeFill() []byte {
	buf := make([]byte, h.Dtype.Size())
	switch h.Dtype {
	case Float64:
		Order.PutUint64(buf, math.Float64bits(h.FillValue))
	case Int64:
		Order.PutUint64(buf, uint64(int64(h.FillValue)))
	case Uint8:
		buf[0] = byte(int64(h.FillValue))
	}
	return buf
}

// ReadElement returns the raw bytes of the element at an absolute
// coordinate, or the dataset's fill value if its chunk was never
// written.
func (h *DatasetHeader) ReadElement(w *Writer, coord []uint64) ([]byte, error) {
	grid, local := chunkCoord(coord, h.ChunkShape)
	addr, err := h.readChunkAddr(w, grid)
	if err != nil {
		return nil, err
	}
	elemSize := h.Dtype.Size()
	if addr == 0 {
		return h.encodeFill(), nil
	}
	localFlat := rowMajor(local, h.ChunkShape)
	buf := make([]byte, elemSize)
	if err := w.ReadAt(buf, addr+localFlat*elemSize); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteElement writes raw element bytes at an absolute coordinate,
// allocating the backing chunk if this is its first write.
func (h *DatasetHeader) WriteElement(w *Writer, coord []uint64, raw []byte) error {
	grid, local := chunkCoord(coord, h.ChunkShape)
	addr, err := h.ensureChunk(w, grid)
	if err != nil {
		return err
	}
	elemSize := h.Dtype.Size()
	localFlat := rowMajor(local, h.ChunkShape)
	return w.WriteAt(raw, addr+localFlat*elemSize)
}

// ValidateCoord checks that coord is within the dataset's shape.
func (h *DatasetHeader) ValidateCoord(coord []uint64) error {
	if len(coord) != h.Rank {
		return fmt.Errorf("bstore: coordinate rank %d != dataset rank %d", len(coord), h.Rank)
	}
	for d, c := range coord {
		if c >= h.Shape[d] {
			return fmt.Errorf("bstore: coordinate %d out of range [0,%d) on dim %d", c, h.Shape[d], d)
		}
	}
	return nil
}
