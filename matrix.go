package hdf5

import "fmt"

// StoreValues writes a batch of (coord, value) tuples into /matrix via
// element selection, then delegates to the boundary index so every
// core-dimension pair's co-occurrence window reflects the new tuples.
// Overwrite semantics apply: if a coordinate repeats across calls (or
// within the same batch), the last write wins.
func StoreValues(h *Handle, coords [][]int64, values []float64) error {
	if len(coords) != len(values) {
		return newErr(KindArgument, "StoreValues: coords and values must have equal length", nil)
	}
	if len(coords) == 0 {
		return nil
	}
	elemCoords := make([][]uint64, len(coords))
	for i, c := range coords {
		if len(c) != h.rank {
			return newErr(KindArgument, fmt.Sprintf("StoreValues: coord %d has rank %d, want %d", i, len(c), h.rank), nil)
		}
		elem := make([]uint64, h.rank)
		for d, v := range c {
			if v < 0 || v >= h.sizes[d] {
				return newErr(KindArgument, fmt.Sprintf("StoreValues: coord %d dim %d = %d out of range [0,%d)", i, d, v, h.sizes[d]), nil)
			}
			elem[d] = uint64(v)
		}
		elemCoords[i] = elem
	}

	matrix, err := h.f.Root().OpenDataset("matrix")
	if err != nil {
		return err
	}
	if err := matrix.WriteElements(elemCoords, values); err != nil {
		return err
	}

	logf("StoreValues: wrote %d tuples", len(coords))

	return updateBoundaries(h, coords)
}
