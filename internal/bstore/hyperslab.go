package bstore

import (
	"encoding/binary"
	"fmt"
	"math"
)

// eachCoord enumerates every absolute coordinate in the rectangular
// region [offset, offset+width) in row-major order, outermost dimension
// first, calling visit for each one: a single counter decomposed into
// per-dimension indices rather than a recursive descent.
func eachCoord(offset, width []uint64, visit func(coord []uint64) error) error {
	rank := len(offset)
	if rank == 0 {
		return nil
	}
	total := uint64(1)
	for _, w := range width {
		total *= w
	}
	coord := make([]uint64, rank)
	copy(coord, offset)
	for n := uint64(0); n < total; n++ {
		if err := visit(coord); err != nil {
			return err
		}
		for d := rank - 1; d >= 0; d-- {
			coord[d]++
			if coord[d] < offset[d]+width[d] {
				break
			}
			coord[d] = offset[d]
		}
	}
	return nil
}

func validateHyperslab(h *DatasetHeader, offset, width []uint64) error {
	if len(offset) != h.Rank || len(width) != h.Rank {
		return fmt.Errorf("bstore: hyperslab rank mismatch")
	}
	for d := 0; d < h.Rank; d++ {
		if offset[d]+width[d] > h.Shape[d] {
			return fmt.Errorf("bstore: hyperslab [%d,%d) exceeds extent %d on dim %d",
				offset[d], offset[d]+width[d], h.Shape[d], d)
		}
	}
	return nil
}

// ReadHyperslabFloat64 reads the dense rectangular region [offset,
// offset+width) of a Float64 dataset into a row-major flattened slice.
func ReadHyperslabFloat64(w *Writer, h *DatasetHeader, offset, width []uint64) ([]float64, error) {
	if h.Dtype != Float64 {
		return nil, fmt.Errorf("bstore: dataset is not Float64")
	}
	if err := validateHyperslab(h, offset, width); err != nil {
		return nil, err
	}
	var total uint64 = 1
	for _, x := range width {
		total *= x
	}
	out := make([]float64, 0, total)
	err := eachCoord(offset, width, func(coord []uint64) error {
		raw, err := h.ReadElement(w, coord)
		if err != nil {
			return err
		}
		out = append(out, math.Float64frombits(binary.LittleEndian.Uint64(raw)))
		return nil
	})
	return out, err
}

// WriteHyperslabFloat64 writes a row-major flattened slice into the dense
// rectangular region [offset, offset+width) of a Float64 dataset.
func WriteHyperslabFloat64(w *Writer, h *DatasetHeader, offset, width []uint64, data []float64) error {
	if h.Dtype != Float64 {
		return fmt.Errorf("bstore: dataset is not Float64")
	}
	if err := validateHyperslab(h, offset, width); err != nil {
		return err
	}
	i := 0
	return eachCoord(offset, width, func(coord []uint64) error {
		raw := make([]byte, 8)
		binary.LittleEndian.PutUint64(raw, math.Float64bits(data[i]))
		i++
		return h.WriteElement(w, coord, raw)
	})
}

// ReadHyperslabInt64 is the Int64 analogue of ReadHyperslabFloat64, used
// for boundary datasets.
func ReadHyperslabInt64(w *Writer, h *DatasetHeader, offset, width []uint64) ([]int64, error) {
	if h.Dtype != Int64 {
		return nil, fmt.Errorf("bstore: dataset is not Int64")
	}
	if err := validateHyperslab(h, offset, width); err != nil {
		return nil, err
	}
	var total uint64 = 1
	for _, x := range width {
		total *= x
	}
	out := make([]int64, 0, total)
	err := eachCoord(offset, width, func(coord []uint64) error {
		raw, err := h.ReadElement(w, coord)
		if err != nil {
			return err
		}
		out = append(out, int64(binary.LittleEndian.Uint64(raw)))
		return nil
	})
	return out, err
}

// WriteHyperslabInt64 is the Int64 analogue of WriteHyperslabFloat64.
func WriteHyperslabInt64(w *Writer, h *DatasetHeader, offset, width []uint64, data []int64) error {
	if h.Dtype != Int64 {
		return fmt.Errorf("bstore: dataset is not Int64")
	}
	if err := validateHyperslab(h, offset, width); err != nil {
		return err
	}
	i := 0
	return eachCoord(offset, width, func(coord []uint64) error {
		raw := make([]byte, 8)
		binary.LittleEndian.PutUint64(raw, uint64(data[i]))
		i++
		return h.WriteElement(w, coord, raw)
	})
}

// ReadHyperslabBytes is the Uint8 analogue, used by the string-array
// codec.
func ReadHyperslabBytes(w *Writer, h *DatasetHeader, offset, width []uint64) ([]byte, error) {
	if h.Dtype != Uint8 {
		return nil, fmt.Errorf("bstore: dataset is not Uint8")
	}
	if err := validateHyperslab(h, offset, width); err != nil {
		return nil, err
	}
	var total uint64 = 1
	for _, x := range width {
		total *= x
	}
	out := make([]byte, 0, total)
	err := eachCoord(offset, width, func(coord []uint64) error {
		raw, err := h.ReadElement(w, coord)
		if err != nil {
			return err
		}
		out = append(out, raw[0])
		return nil
	})
	return out, err
}

// WriteHyperslabBytes is the Uint8 analogue, used by the string-array
// codec.
func WriteHyperslabBytes(w *Writer, h *DatasetHeader, offset, width []uint64, data []byte) error {
	if h.Dtype != Uint8 {
		return fmt.Errorf("bstore: dataset is not Uint8")
	}
	if err := validateHyperslab(h, offset, width); err != nil {
		return err
	}
	i := 0
	return eachCoord(offset, width, func(coord []uint64) error {
		err := h.WriteElement(w, coord, data[i:i+1])
		i++
		return err
	})
}

// WriteElementsFloat64 scatter-writes values at the given coordinates:
// each coordinate is addressed independently, last write wins on
// duplicates.
func WriteElementsFloat64(w *Writer, h *DatasetHeader, coords [][]uint64, values []float64) error {
	if h.Dtype != Float64 {
		return fmt.Errorf("bstore: dataset is not Float64")
	}
	if len(coords) != len(values) {
		return fmt.Errorf("bstore: %d coordinates but %d values", len(coords), len(values))
	}
	for i, coord := range coords {
		if err := h.ValidateCoord(coord); err != nil {
			return err
		}
		raw := make([]byte, 8)
		binary.LittleEndian.PutUint64(raw, math.Float64bits(values[i]))
		if err := h.WriteElement(w, coord, raw); err != nil {
			return err
		}
	}
	return nil
}
