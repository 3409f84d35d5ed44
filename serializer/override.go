package serializer

import "sort"

// Override is one configuration entry. Overrides are applied in the order
// they are given, so when two target the same key the last one wins.
type Override struct {
	Key   Key
	Entry Entry
}

// Set installs fn for key. A nil fn is treated as a removal.
func Set(key Key, fn Func) Override {
	return Override{Key: key, Entry: Transform(fn)}
}

// Remove disables any default or inherited transform for key.
func Remove(key Key) Override {
	return Override{Key: key, Entry: Removed()}
}

// SetField is Set(Field(name), fn).
func SetField(name string, fn Func) Override {
	return Set(Field(name), fn)
}

// RemoveField is Remove(Field(name)).
func RemoveField(name string) Override {
	return Remove(Field(name))
}

// FromMap converts a name-keyed map into overrides. A nil Func means
// removal. Map iteration order is random, so names are sorted to keep the
// declaration order deterministic.
func FromMap(m map[string]Func) []Override {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Override, 0, len(names))
	for _, name := range names {
		out = append(out, SetField(name, m[name]))
	}
	return out
}
