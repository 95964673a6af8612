package hdf5

import "fmt"

// FetchStringValues turns a fixed/constraint mask into a per-dimension
// (offset, width) hyperslab, using the boundary index to prune
// unconstrained core dimensions, reads that hyperslab from /matrix,
// extracts the non-zero cells, and joins them against the
// dimension-name and label vocabularies.
func FetchStringValues(h *Handle, fixed []bool, constraint []int64) (*StringResultTable, error) {
	if len(fixed) != h.rank || len(constraint) != h.rank {
		return nil, newErr(KindArgument, "FetchStringValues: fixed and constraint must have rank length", nil)
	}
	for d := 0; d < h.rank; d++ {
		if fixed[d] && (constraint[d] < 0 || constraint[d] >= h.sizes[d]) {
			return nil, newErr(KindArgument, fmt.Sprintf("FetchStringValues: constraint[%d]=%d out of range [0,%d)", d, constraint[d], h.sizes[d]), nil)
		}
	}

	offset := make([]uint64, h.rank)
	width := make([]uint64, h.rank)

	var boundaries *Group
	if h.coreRank > 0 {
		var err error
		boundaries, err = h.f.Root().OpenGroup("boundaries")
		if err != nil {
			return nil, err
		}
	}

	anyCoreFixed := false
	for d := 0; d < h.rank; d++ {
		switch {
		case fixed[d]:
			offset[d] = uint64(constraint[d])
			width[d] = 1
			if h.isCore(d) {
				anyCoreFixed = true
			}
		case h.isCore(d):
			lower, upper, err := boundaryBounds(h, boundaries, d, fixed, constraint)
			if err != nil {
				return nil, err
			}
			offset[d] = uint64(lower)
			if upper > lower {
				width[d] = uint64(upper - lower)
			}
		default:
			offset[d] = 0
			width[d] = uint64(h.sizes[d])
		}
	}

	if !anyCoreFixed && h.maxUnprunedVolume > 0 {
		volume := uint64(1)
		for _, w := range width {
			volume *= w
		}
		if volume > h.maxUnprunedVolume {
			return nil, newErr(KindResourceExhausted, fmt.Sprintf("FetchStringValues: unpruned read volume %d exceeds budget %d", volume, h.maxUnprunedVolume), nil)
		}
	}

	logf("FetchStringValues: offset=%v width=%v", offset, width)

	matrix, err := h.f.Root().OpenDataset("matrix")
	if err != nil {
		return nil, err
	}
	data, err := matrix.ReadHyperslab(offset, width)
	if err != nil {
		return nil, err
	}

	rt := buildResultTable(h.rank, fixed, offset, width, data)
	return stringifyResultTable(h, rt, offset, width)
}
