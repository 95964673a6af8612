package hdf5

// Attribute looks up a scalar integer attribute attached to the dataset
// at creation time. It reports whether the attribute exists.
func (d *Dataset) Attribute(name string) (int64, bool) {
	return d.header.Attribute(name)
}
