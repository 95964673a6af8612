package hdf5

import (
	"github.com/nerdstrike/hdf5matrix/internal/bstore"
)

// ReadHyperslab reads the dense rectangular region [offset, offset+width)
// of a Float64Type dataset into a row-major flattened slice. Used by the
// query planner to pull the pruned matrix region for a query.
func (d *Dataset) ReadHyperslab(offset, width []uint64) ([]float64, error) {
	out, err := bstore.ReadHyperslabFloat64(d.file.w, d.header, offset, width)
	if err != nil {
		return nil, newErr(KindArgument, "read hyperslab "+d.name, err)
	}
	return out, nil
}

// ReadHyperslabInt64 is the Int64Type analogue of ReadHyperslab, used to
// pull a boundary dataset's row for a given conditioning index.
func (d *Dataset) ReadHyperslabInt64(offset, width []uint64) ([]int64, error) {
	out, err := bstore.ReadHyperslabInt64(d.file.w, d.header, offset, width)
	if err != nil {
		return nil, newErr(KindArgument, "read hyperslab "+d.name, err)
	}
	return out, nil
}

// ReadBytes is the Uint8Type analogue of ReadHyperslab, used by the
// string-array codec's sub-read.
func (d *Dataset) ReadBytes(offset, width []uint64) ([]byte, error) {
	out, err := bstore.ReadHyperslabBytes(d.file.w, d.header, offset, width)
	if err != nil {
		return nil, newErr(KindArgument, "read bytes "+d.name, err)
	}
	return out, nil
}
