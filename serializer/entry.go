package serializer

import (
	"fmt"
	"unsafe"
)

// Func rewrites a raw field value into the value that reaches the encoder.
// It must not mutate logger state. A panic inside a Func is not recovered.
type Func func(v any) any

// Entry is the value side of a table: a transform or an explicit removal.
type Entry struct {
	fn      Func
	removed bool
}

// Transform returns an Entry running fn. A nil fn yields a removal.
func Transform(fn Func) Entry {
	if fn == nil {
		return Removed()
	}
	return Entry{fn: fn}
}

// Removed returns the removal marker.
func Removed() Entry {
	return Entry{removed: true}
}

// Func returns the transform, or nil for a removal.
func (e Entry) Func() Func {
	return e.fn
}

// IsRemoved reports whether the entry disables transformation.
func (e Entry) IsRemoved() bool {
	return e.removed
}

// Equal compares two entries. Transforms are equal when they are the same
// function value: the same top-level function, or the same closure or
// method value instance. Two closures built from one literal are distinct.
func (e Entry) Equal(o Entry) bool {
	if e.removed || o.removed {
		return e.removed == o.removed
	}
	return funcIdentity(e.fn) == funcIdentity(o.fn)
}

func (e Entry) String() string {
	if e.removed {
		return "removed"
	}
	return fmt.Sprintf("func@%#x", funcIdentity(e.fn))
}

// funcIdentity returns the address of the function value, not of its code.
// A func value points at a closure object holding the code pointer and any
// captured variables; each closure or method value gets its own.
func funcIdentity(fn Func) uintptr {
	if fn == nil {
		return 0
	}
	return uintptr(*(*unsafe.Pointer)(unsafe.Pointer(&fn)))
}
