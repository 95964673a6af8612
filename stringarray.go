package hdf5

// StringArray encodes/decodes the zero-padded, zero-terminated rank-2
// byte layout used for /dim_names and each /dim_labels/<d>: n strings
// packed into n rows of L+1 bytes, L the longest member, each row
// zero-terminated and zero-padded.
type StringArray struct {
	Rows     int
	RowWidth int // L+1
}

// EncodeStrings computes the row width (max length + 1) and the
// zero-padded, zero-terminated byte buffer for strings.
func EncodeStrings(strings []string) (rowWidth int, data []byte) {
	maxLen := 0
	for _, s := range strings {
		if len(s) > maxLen {
			maxLen = len(s)
		}
	}
	rowWidth = maxLen + 1
	data = make([]byte, len(strings)*rowWidth)
	for i, s := range strings {
		copy(data[i*rowWidth:], s)
		// The remaining bytes in the row, including the terminator, are
		// already zero from make().
	}
	return rowWidth, data
}

// DecodeStrings splits a zero-padded, zero-terminated rank-2 byte buffer
// of rows rows each rowWidth bytes wide back into strings.
func DecodeStrings(data []byte, rows, rowWidth int) []string {
	out := make([]string, rows)
	for i := 0; i < rows; i++ {
		row := data[i*rowWidth : (i+1)*rowWidth]
		end := 0
		for end < len(row) && row[end] != 0 {
			end++
		}
		out[i] = string(row[:end])
	}
	return out
}

// WriteStringArray creates a Uint8Type dataset named name under parent,
// holding the string-array encoding of strings, and returns it.
func WriteStringArray(parent *Group, name string, strings []string) (*Dataset, error) {
	rowWidth, data := EncodeStrings(strings)
	rows := len(strings)
	chunkRows := rows
	if chunkRows == 0 {
		chunkRows = 1 // keep every chunk dimension non-zero; the zero-extent axis holds no chunks either way
	}
	ds, err := parent.CreateDataset(name, DatasetOptions{
		Shape:      []uint64{uint64(rows), uint64(rowWidth)},
		ChunkShape: []uint64{uint64(chunkRows), uint64(rowWidth)},
		Dtype:      Uint8Type,
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return ds, nil
	}
	if err := ds.WriteBytes([]uint64{0, 0}, []uint64{uint64(rows), uint64(rowWidth)}, data); err != nil {
		return nil, err
	}
	return ds, nil
}

// ReadStringArray reads back the full contents of a string-array dataset.
func ReadStringArray(ds *Dataset) ([]string, error) {
	shape := ds.Shape()
	rows, rowWidth := int(shape[0]), int(shape[1])
	if rows == 0 {
		return nil, nil
	}
	data, err := ds.ReadBytes([]uint64{0, 0}, []uint64{uint64(rows), uint64(rowWidth)})
	if err != nil {
		return nil, err
	}
	return DecodeStrings(data, rows, rowWidth), nil
}

// ReadStringSubarray reads count rows starting at offset from a
// string-array dataset, used to pull only the labels a query's pruned
// range actually needs.
func ReadStringSubarray(ds *Dataset, offset, count int) ([]string, error) {
	shape := ds.Shape()
	rowWidth := int(shape[1])
	if count == 0 {
		return nil, nil
	}
	data, err := ds.ReadBytes([]uint64{uint64(offset), 0}, []uint64{uint64(count), uint64(rowWidth)})
	if err != nil {
		return nil, err
	}
	return DecodeStrings(data, count, rowWidth), nil
}
