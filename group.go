package hdf5

import (
	"github.com/nerdstrike/hdf5matrix/internal/bstore"
)

// Group is a directory of named children, each either another Group or a
// Dataset. Groups in this store are always created with every child's
// slot reserved up front and are never grown after the file is fully
// written; there is no rename or delete operation.
type Group struct {
	file    *File
	dir     *bstore.GroupDir
	entries []bstore.ChildEntry // read from disk on open, appended to on create
	name    string
}

// Name returns the group's own name ("/" for the root group).
func (g *Group) Name() string { return g.name }

func (g *Group) findChild(name string) (bstore.ChildEntry, bool) {
	for _, e := range g.entries {
		if e.Name == name {
			return e, true
		}
	}
	return bstore.ChildEntry{}, false
}

// OpenGroup opens an existing child group by name.
func (g *Group) OpenGroup(name string) (*Group, error) {
	entry, ok := g.findChild(name)
	if !ok || entry.Kind != bstore.ChildGroup {
		return nil, newErr(KindFormat, "group "+name+" not found", nil)
	}
	dir, entries, err := bstore.OpenGroupDir(g.file.w, entry.Addr)
	if err != nil {
		return nil, newErr(KindFormat, "read group "+name, err)
	}
	return &Group{file: g.file, dir: dir, entries: entries, name: name}, nil
}

// OpenDataset opens an existing child dataset by name.
func (g *Group) OpenDataset(name string) (*Dataset, error) {
	entry, ok := g.findChild(name)
	if !ok || entry.Kind != bstore.ChildDataset {
		return nil, newErr(KindFormat, "dataset "+name+" not found", nil)
	}
	header, err := bstore.OpenDataset(g.file.w, entry.Addr)
	if err != nil {
		return nil, newErr(KindFormat, "read dataset "+name, err)
	}
	return &Dataset{file: g.file, header: header, name: name}, nil
}

// ChildNames returns the names of every child in declaration order, for
// callers that enumerate a group's children without knowing the exact
// keys up front.
func (g *Group) ChildNames() []string {
	names := make([]string, len(g.entries))
	for i, e := range g.entries {
		names[i] = e.Name
	}
	return names
}
