// Package hdf5 is a small, chunked container format providing files,
// groups, chunked datasets of a fixed element type, hyperslab and
// element-selection I/O, and scalar attributes: a thin top-level API
// over an internal allocator and on-disk encoding.
package hdf5

import (
	"fmt"

	"github.com/nerdstrike/hdf5matrix/internal/bstore"
)

// File is an open handle to a bstore container, either writable (from
// CreateFile) or read-only (from OpenFile).
type File struct {
	w        *bstore.Writer
	writable bool
	root     *Group
}

// OpenFile opens an existing file for reading. A file opened this way
// must not be used for StoreValues; only the handle returned by
// CreateFile is writable.
func OpenFile(filename string) (*File, error) {
	w, err := bstore.OpenWriter(filename, false, bstore.HeaderSize)
	if err != nil {
		return nil, newErr(KindStorage, "open file", err)
	}
	head, err := bstore.ReadHeader(w.File())
	if err != nil {
		_ = w.Close()
		return nil, newErr(KindFormat, "read header", err)
	}
	dir, entries, err := bstore.OpenGroupDir(w, head.RootAddr)
	if err != nil {
		_ = w.Close()
		return nil, newErr(KindFormat, "read root group", err)
	}
	f := &File{w: w, writable: false}
	f.root = &Group{file: f, dir: dir, entries: entries, name: "/"}
	return f, nil
}

// Close releases the file handle. Safe to call once; a second call
// returns the error from the underlying close.
func (f *File) Close() error {
	if err := f.w.Close(); err != nil {
		return newErr(KindStorage, "close file", err)
	}
	return nil
}

// Root returns the file's root group.
func (f *File) Root() *Group { return f.root }

func (f *File) requireWritable(op string) error {
	if !f.writable {
		return newErr(KindArgument, fmt.Sprintf("%s: file was opened read-only", op), nil)
	}
	return nil
}
