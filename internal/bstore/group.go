package bstore

import "fmt"

// MaxChildNameLen bounds the name of any group child.
const MaxChildNameLen = 64

// childEntrySize is the fixed on-disk size of one group child entry:
// kind(1) + name(MaxChildNameLen) + nameLen(1) + addr(8).
const childEntrySize = 1 + MaxChildNameLen + 1 + 8

// ChildKind distinguishes a group child that is itself a group from one
// that is a dataset.
type ChildKind uint8

const (
	// ChildGroup marks a child entry as another group.
	ChildGroup ChildKind = iota
	// ChildDataset marks a child entry as a dataset.
	ChildDataset
)

// ChildEntry is one row of a group's child table.
type ChildEntry struct {
	Name string
	Kind ChildKind
	Addr uint64
}

// GroupDir is the on-disk directory of a group: a fixed-capacity table of
// children, written once at creation and filled in one entry at a time as
// CreateGroup/CreateDataset register new children. Capacity is declared
// up front because every group in this store has a capacity known before
// its first child is added (R dimension labels, core_rank boundary
// datasets, or the 4 fixed root entries).
type GroupDir struct {
	Addr     uint64
	Capacity int
	Count    int
}

// CreateGroupDir allocates space for a new group directory with room for
// capacity children and writes the (empty) header.
func CreateGroupDir(w *Writer, capacity int) (*GroupDir, error) {
	size := uint64(4+4) + uint64(capacity)*childEntrySize
	addr := w.Allocate(size)
	g := &GroupDir{Addr: addr, Capacity: capacity, Count: 0}
	if err := g.writeCounts(w); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GroupDir) writeCounts(w *Writer) error {
	buf := make([]byte, 8)
	Order.PutUint32(buf[0:4], uint32(g.Capacity))
	Order.PutUint32(buf[4:8], uint32(g.Count))
	return w.WriteAt(buf, g.Addr)
}

// AddChild appends a new child entry to the directory. It fails if the
// directory is already at capacity.
func (g *GroupDir) AddChild(w *Writer, name string, kind ChildKind, childAddr uint64) error {
	if g.Count >= g.Capacity {
		return fmt.Errorf("bstore: group at %d is full (capacity %d)", g.Addr, g.Capacity)
	}
	if len(name) > MaxChildNameLen {
		return fmt.Errorf("bstore: child name %q exceeds %d bytes", name, MaxChildNameLen)
	}
	entryAddr := g.Addr + 8 + uint64(g.Count)*childEntrySize
	buf := make([]byte, childEntrySize)
	buf[0] = byte(kind)
	copy(buf[1:1+MaxChildNameLen], name)
	buf[1+MaxChildNameLen] = byte(len(name))
	Order.PutUint64(buf[2+MaxChildNameLen:], childAddr)
	if err := w.WriteAt(buf, entryAddr); err != nil {
		return err
	}
	g.Count++
	return g.writeCounts(w)
}

// OpenGroupDir reads a group directory's header and child table from addr.
func OpenGroupDir(w *Writer, addr uint64) (*GroupDir, []ChildEntry, error) {
	head := make([]byte, 8)
	if err := w.ReadAt(head, addr); err != nil {
		return nil, nil, err
	}
	capacity := int(Order.Uint32(head[0:4]))
	count := int(Order.Uint32(head[4:8]))
	entries := make([]ChildEntry, count)
	for i := 0; i < count; i++ {
		entryAddr := addr + 8 + uint64(i)*childEntrySize
		buf := make([]byte, childEntrySize)
		if err := w.ReadAt(buf, entryAddr); err != nil {
			return nil, nil, err
		}
		nameLen := int(buf[1+MaxChildNameLen])
		entries[i] = ChildEntry{
			Kind: ChildKind(buf[0]),
			Name: string(buf[1 : 1+nameLen]),
			Addr: Order.Uint64(buf[2+MaxChildNameLen:]),
		}
	}
	return &GroupDir{Addr: addr, Capacity: capacity, Count: count}, entries, nil
}
