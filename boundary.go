package hdf5

// coreSlot projects absolute core-dimension index d to its position
// among the core dimensions.
func (h *Handle) coreSlot(d int) int { return d - (h.rank - h.coreRank) }

// boundarySlot computes the column a core dimension's boundary dataset
// reserves for another core dimension, after skipping its own slot.
func boundarySlot(cd, cdPrime int) int {
	if cdPrime < cd {
		return cdPrime
	}
	return cdPrime - 1
}

// boundaryMatrix is an in-memory copy of one core dimension's boundary
// dataset, read once per StoreValues batch, widened in place, and
// written back once in full after the whole batch is processed.
type boundaryMatrix struct {
	dim      int // the core dimension this boundary dataset belongs to
	size     int64
	cols     int // core_rank - 1
	data     []int64
	modified bool
}

func loadBoundaryMatrix(h *Handle, boundaries *Group, dim int) (*boundaryMatrix, error) {
	ds, err := boundaries.OpenDataset(boundariesDatasetName(dim))
	if err != nil {
		return nil, err
	}
	shape := ds.Shape()
	size, cols := int64(shape[0]), int(shape[1])
	data, err := ds.ReadHyperslabInt64([]uint64{0, 0, 0}, shape)
	if err != nil {
		return nil, err
	}
	return &boundaryMatrix{dim: dim, size: size, cols: cols, data: data}, nil
}

func (bm *boundaryMatrix) widen(i int64, col int, j int64) {
	base := (i*int64(bm.cols) + int64(col)) * 2
	lo, hi := bm.data[base], bm.data[base+1]
	if lo == -1 || j < lo {
		bm.data[base] = j
		bm.modified = true
	}
	if j+1 > hi {
		bm.data[base+1] = j + 1
		bm.modified = true
	}
}

func (bm *boundaryMatrix) store(boundaries *Group) error {
	if !bm.modified {
		return nil
	}
	ds, err := boundaries.OpenDataset(boundariesDatasetName(bm.dim))
	if err != nil {
		return err
	}
	return ds.WriteHyperslabInt64([]uint64{0, 0, 0}, []uint64{uint64(bm.size), uint64(bm.cols), 2}, bm.data)
}

// updateBoundaries widens every core-dimension pair's co-occurrence
// window for the tuples in coords. It loads each touched core
// dimension's boundary dataset once, applies every widening the batch
// implies, and writes back only the datasets that actually changed.
func updateBoundaries(h *Handle, coords [][]int64) error {
	if h.coreRank == 0 {
		return nil
	}
	boundaries, err := h.f.Root().OpenGroup("boundaries")
	if err != nil {
		return err
	}

	firstCore := h.rank - h.coreRank
	matrices := make(map[int]*boundaryMatrix, h.coreRank)
	get := func(d int) (*boundaryMatrix, error) {
		if bm, ok := matrices[d]; ok {
			return bm, nil
		}
		bm, err := loadBoundaryMatrix(h, boundaries, d)
		if err != nil {
			return nil, err
		}
		matrices[d] = bm
		return bm, nil
	}

	for _, c := range coords {
		for d := firstCore; d < h.rank; d++ {
			bm, err := get(d)
			if err != nil {
				return err
			}
			cd := h.coreSlot(d)
			i := c[d]
			for dPrime := firstCore; dPrime < h.rank; dPrime++ {
				if dPrime == d {
					continue
				}
				col := boundarySlot(cd, h.coreSlot(dPrime))
				j := c[dPrime]
				bm.widen(i, col, j)
			}
		}
	}

	for d := firstCore; d < h.rank; d++ {
		bm, ok := matrices[d]
		if !ok {
			continue
		}
		if err := bm.store(boundaries); err != nil {
			return err
		}
	}
	return nil
}

// boundaryBounds computes [lowerBound, upperBound) for an unconstrained
// core dimension d, conditioned on every other core dimension d' that
// is fixed. If no other core dimension is fixed, the full extent
// [0, size_d) is returned unpruned.
func boundaryBounds(h *Handle, boundaries *Group, d int, fixed []bool, constraint []int64) (lower, upper int64, err error) {
	firstCore := h.rank - h.coreRank
	lower, upper = 0, h.sizes[d]
	anyFixed := false
	cd := h.coreSlot(d)

	for dPrime := firstCore; dPrime < h.rank; dPrime++ {
		if dPrime == d || !fixed[dPrime] {
			continue
		}
		ds, err := boundaries.OpenDataset(boundariesDatasetName(dPrime))
		if err != nil {
			return 0, 0, err
		}
		cols := int(ds.Shape()[1])
		col := boundarySlot(h.coreSlot(dPrime), cd)
		row, err := ds.ReadHyperslabInt64([]uint64{uint64(constraint[dPrime]), 0, 0}, []uint64{1, uint64(cols), 2})
		if err != nil {
			return 0, 0, err
		}
		lo, hi := row[col*2], row[col*2+1]
		if lo == -1 {
			// d'=constraint[d'] never co-occurred with anything: no
			// match is possible along d, regardless of other
			// conditioning dimensions.
			return 0, 0, nil
		}
		if !anyFixed {
			lower, upper = lo, hi
			anyFixed = true
			continue
		}
		if lo > lower {
			lower = lo
		}
		if hi < upper {
			upper = hi
		}
	}
	return lower, upper, nil
}
