package serializer

import (
	"strings"
)

// Table is a resolved, immutable serializer table. The zero value and a
// nil *Table are both valid empty tables.
type Table struct {
	entries map[Key]Entry
	order   []Key
}

func newTable(base *Table, overrides []Override) *Table {
	t := &Table{
		entries: make(map[Key]Entry, base.Len()+len(overrides)),
		order:   make([]Key, 0, base.Len()+len(overrides)),
	}
	if base != nil {
		for _, k := range base.order {
			t.put(k, base.entries[k])
		}
	}
	for _, o := range overrides {
		t.put(o.Key, o.Entry)
	}
	return t
}

// put overwrites in place so a key keeps the position of its first write.
func (t *Table) put(k Key, e Entry) {
	if _, ok := t.entries[k]; !ok {
		t.order = append(t.order, k)
	}
	t.entries[k] = e
}

// Len returns the number of entries, removals included.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Lookup returns the exact entry for k. It does not consult Wildcard.
func (t *Table) Lookup(k Key) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	e, ok := t.entries[k]
	return e, ok
}

// Keys returns the keys in first-declaration order.
func (t *Table) Keys() []Key {
	if t == nil {
		return nil
	}
	out := make([]Key, len(t.order))
	copy(out, t.order)
	return out
}

// Entries returns the table contents as overrides, in key order. Passing
// them to New on an empty base rebuilds an equal table.
func (t *Table) Entries() []Override {
	if t == nil {
		return nil
	}
	out := make([]Override, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, Override{Key: k, Entry: t.entries[k]})
	}
	return out
}

// Equal reports whether both tables hold the same keys bound to equal
// entries. Order is ignored.
func (t *Table) Equal(o *Table) bool {
	if t.Len() != o.Len() {
		return false
	}
	if t == nil || t == o {
		return true
	}
	for k, e := range t.entries {
		oe, ok := o.entries[k]
		if !ok || !e.Equal(oe) {
			return false
		}
	}
	return true
}

func (t *Table) String() string {
	if t.Len() == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range t.order {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k.String())
		b.WriteString(": ")
		b.WriteString(t.entries[k].String())
	}
	b.WriteByte('}')
	return b.String()
}
