// Package bstore implements the on-disk container that backs package hdf5.
//
// It is not a general-purpose binary format: it is sized to exactly what a
// chunked, group-and-attribute-bearing dataset store needs and nothing
// more. Groups are written once with every child known at creation time
// (this store never grows a group incrementally after the fact), and
// datasets have a fixed extent decided at creation, so there is no need
// for rebalancing B-trees or fractal heaps.
package bstore

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Order is the byte order used throughout the container, matching the
// little-endian convention the HDF5 format itself uses.
var Order = binary.LittleEndian

const (
	magic      = "BSTORE01"
	headerSize = 32 // magic(8) + rootAddr(8) + reserved(16)
)

// Writer wraps an *os.File with an end-of-file bump allocator:
// allocations are never reused or freed, which is sufficient for a store
// whose datasets and groups are never deleted.
type Writer struct {
	f    *os.File
	next uint64
}

// OpenWriter creates (truncating) or reopens filename for read-write
// access, with allocations starting at the given offset (typically
// headerSize, immediately after the fixed file header).
func OpenWriter(filename string, truncate bool, next uint64) (*Writer, error) {
	flags := os.O_RDWR | os.O_CREATE
	if truncate {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(filename, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("bstore: open %q: %w", filename, err)
	}
	return &Writer{f: f, next: next}, nil
}

// Allocate reserves size bytes at the end of the file and returns the
// address of the reserved block. The block is not zeroed; the caller
// writes into it immediately via WriteAt.
func (w *Writer) Allocate(size uint64) uint64 {
	addr := w.next
	w.next += size
	return addr
}

// WriteAt writes data at an absolute file address, growing the file if
// necessary (addr+len(data) may exceed any address returned by Allocate
// when rewriting an already-allocated chunk-table slot).
func (w *Writer) WriteAt(data []byte, addr uint64) error {
	_, err := w.f.WriteAt(data, int64(addr))
	if err != nil {
		return fmt.Errorf("bstore: write at %d: %w", addr, err)
	}
	return nil
}

// ReadAt reads len(buf) bytes starting at an absolute file address.
func (w *Writer) ReadAt(buf []byte, addr uint64) error {
	_, err := w.f.ReadAt(buf, int64(addr))
	if err != nil {
		return fmt.Errorf("bstore: read at %d: %w", addr, err)
	}
	return nil
}

// File returns the underlying *os.File for read-only handles that never
// allocate.
func (w *Writer) File() *os.File { return w.f }

// Close closes the underlying file.
func (w *Writer) Close() error { return w.f.Close() }

// Header is the fixed 32-byte record at the start of every bstore file,
// standing in for the HDF5 superblock: it records only what is needed to
// locate the root group, since everything else (schema, rank, dtype) is
// self-describing within each object's own header.
type Header struct {
	RootAddr uint64
}

// WriteHeader writes the file header at offset 0.
func WriteHeader(w *Writer, h Header) error {
	buf := make([]byte, headerSize)
	copy(buf[:8], magic)
	Order.PutUint64(buf[8:16], h.RootAddr)
	return w.WriteAt(buf, 0)
}

// ReadHeader reads and validates the file header at offset 0.
func ReadHeader(f interface{ ReadAt([]byte, int64) (int, error) }) (Header, error) {
	buf := make([]byte, headerSize)
	if _, err := f.ReadAt(buf, 0); err != nil {
		return Header{}, fmt.Errorf("bstore: read header: %w", err)
	}
	if string(buf[:8]) != magic {
		return Header{}, fmt.Errorf("bstore: not a bstore file (bad magic)")
	}
	return Header{RootAddr: Order.Uint64(buf[8:16])}, nil
}

// HeaderSize is the fixed byte size of the file header; callers use it to
// compute the first free address for allocation.
const HeaderSize = headerSize
