package hdf5

// resultTable is the sparse, numeric-coordinate result of a query: one
// row per non-zero cell kept from the hyperslab read, one column per
// dimension that was not fixed in the query. It is an intermediate
// value on the way to the labeled StringResultTable FetchStringValues
// returns.
type resultTable struct {
	dims   []int
	coords [][]int64
	values []float64
}

// StringResultTable is the labeled, presentation-ready result of
// FetchStringValues: for every row kept, one label string per unfixed
// dimension plus the stored value.
type StringResultTable struct {
	// DimNames holds, for each column, the name of the dimension it
	// represents (from /dim_names).
	DimNames []string
	// Dims holds, for each column, the absolute dimension index.
	Dims []int
	// Coords holds, for each row, one label string per column.
	Coords [][]string
	// Values holds, for each row, the stored cell value.
	Values []float64
}

// Release drops the table's internal references, letting the garbage
// collector reclaim the underlying memory.
func (t *StringResultTable) Release() {
	t.DimNames = nil
	t.Dims = nil
	t.Coords = nil
	t.Values = nil
}

// buildResultTable converts a dense row-major hyperslab read into a
// sparse, non-zero-only extraction, via an explicit iterative counter
// decomposed into per-dimension indices.
func buildResultTable(rank int, fixed []bool, offset, width []uint64, data []float64) *resultTable {
	var dims []int
	for d := 0; d < rank; d++ {
		if !fixed[d] {
			dims = append(dims, d)
		}
	}
	rt := &resultTable{dims: dims}

	total := uint64(1)
	for _, w := range width {
		total *= w
	}
	if total == 0 {
		return rt
	}

	idx := make([]uint64, rank)
	for n := uint64(0); n < total; n++ {
		rem := n
		for d := rank - 1; d >= 0; d-- {
			idx[d] = rem % width[d]
			rem /= width[d]
		}
		v := data[n]
		if v == 0 {
			continue
		}
		coord := make([]int64, len(dims))
		for ci, d := range dims {
			coord[ci] = int64(offset[d]) + int64(idx[d])
		}
		rt.coords = append(rt.coords, coord)
		rt.values = append(rt.values, v)
	}
	return rt
}

// stringifyResultTable joins a sparse numeric result table against
// /dim_names and the relevant /dim_labels/<d> sub-ranges, producing the
// labeled table FetchStringValues returns.
func stringifyResultTable(h *Handle, rt *resultTable, offset, width []uint64) (*StringResultTable, error) {
	dimNamesDs, err := h.f.Root().OpenDataset("dim_names")
	if err != nil {
		return nil, err
	}
	allNames, err := ReadStringArray(dimNamesDs)
	if err != nil {
		return nil, err
	}

	dimLabels, err := h.f.Root().OpenGroup("dim_labels")
	if err != nil {
		return nil, err
	}

	out := &StringResultTable{
		Dims:     append([]int(nil), rt.dims...),
		DimNames: make([]string, len(rt.dims)),
		Values:   append([]float64(nil), rt.values...),
		Coords:   make([][]string, len(rt.coords)),
	}

	labelSets := make([][]string, len(rt.dims))
	for ci, d := range rt.dims {
		out.DimNames[ci] = allNames[d]
		ds, err := dimLabels.OpenDataset(dimLabelDatasetName(d))
		if err != nil {
			return nil, err
		}
		labels, err := ReadStringSubarray(ds, int(offset[d]), int(width[d]))
		if err != nil {
			return nil, err
		}
		labelSets[ci] = labels
	}

	for r, coord := range rt.coords {
		row := make([]string, len(coord))
		for ci, d := range rt.dims {
			row[ci] = labelSets[ci][coord[ci]-int64(offset[d])]
		}
		out.Coords[r] = row
	}
	return out, nil
}
