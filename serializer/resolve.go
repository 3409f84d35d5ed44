package serializer

// New builds a top-level table: the Defaults with overrides applied in
// order. Neither the defaults nor the overrides slice are retained.
func New(overrides ...Override) *Table {
	return Merge(Defaults(), overrides...)
}

// Merge returns a table holding every entry of parent with overrides
// layered on top. Parent is never modified. With no overrides the parent
// itself is returned, which is safe because tables are immutable.
//
// A removal is recorded even when parent has no entry for the key, so
// tables merged from this one still see the key as removed.
func Merge(parent *Table, overrides ...Override) *Table {
	if len(overrides) == 0 {
		if parent == nil {
			return &Table{}
		}
		return parent
	}
	return newTable(parent, overrides)
}

// Empty returns a table with no entries, not even the defaults.
func Empty() *Table {
	return &Table{}
}
