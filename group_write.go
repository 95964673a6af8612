package hdf5

import (
	"github.com/nerdstrike/hdf5matrix/internal/bstore"
)

// CreateGroup creates a new child group named name with room for
// capacity further children (the schema writer always knows this count
// up front: R dimension labels under /dim_labels, core_rank boundary
// datasets under /boundaries), and registers it in g.
func (g *Group) CreateGroup(name string, capacity int) (*Group, error) {
	if err := g.file.requireWritable("CreateGroup"); err != nil {
		return nil, err
	}
	dir, err := bstore.CreateGroupDir(g.file.w, capacity)
	if err != nil {
		return nil, newErr(KindStorage, "create group "+name, err)
	}
	if err := g.dir.AddChild(g.file.w, name, bstore.ChildGroup, dir.Addr); err != nil {
		return nil, newErr(KindStorage, "register group "+name, err)
	}
	child := &Group{file: g.file, dir: dir, name: name}
	g.entries = append(g.entries, bstore.ChildEntry{Name: name, Kind: bstore.ChildGroup, Addr: dir.Addr})
	return child, nil
}
