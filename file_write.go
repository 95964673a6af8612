package hdf5

import (
	"github.com/nerdstrike/hdf5matrix/internal/bstore"
)

// RootCapacity is the number of direct children the root group is
// created with: /dim_names, /dim_labels, /matrix, /boundaries.
const RootCapacity = 4

// CreateFile truncates (or creates) filename and returns a writable
// handle whose root group has room for RootCapacity children. This is
// the only way to obtain a writable handle; OpenFile always returns a
// read-only one.
func CreateFile(filename string) (*File, error) {
	w, err := bstore.OpenWriter(filename, true, bstore.HeaderSize)
	if err != nil {
		return nil, newErr(KindStorage, "create file", err)
	}
	dir, err := bstore.CreateGroupDir(w, RootCapacity)
	if err != nil {
		_ = w.Close()
		return nil, newErr(KindStorage, "create root group", err)
	}
	if err := bstore.WriteHeader(w, bstore.Header{RootAddr: dir.Addr}); err != nil {
		_ = w.Close()
		return nil, newErr(KindStorage, "write header", err)
	}
	f := &File{w: w, writable: true}
	f.root = &Group{file: f, dir: dir, entries: nil, name: "/"}
	return f, nil
}
