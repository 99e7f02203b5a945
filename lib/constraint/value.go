package constraint

import "fmt"

// Value is a classified ordinal: either a root enumerator at a PER index, or
// an extension value outside the root set. An extension value may be unknown
// to the binding; it is still a valid value of an extensible type.
//
// The zero Value is neither: failed decodes return it, and IsValid reports
// false for it.
type Value struct {
	Ordinal int64
	index   int
	class   class
}

type class uint8

const (
	invalid class = iota
	root
	extension
)

// Root returns the Value for the root enumerator at index i.
func Root(i int, ordinal int64) Value {
	return Value{Ordinal: ordinal, index: i, class: root}
}

// Extension returns the Value for an ordinal outside the root set.
func Extension(ordinal int64) Value {
	return Value{Ordinal: ordinal, index: -1, class: extension}
}

// IsValid reports whether v came from Root or Extension.
func (v Value) IsValid() bool {
	return v.class != invalid
}

// IsRoot reports whether v is a root enumerator.
func (v Value) IsRoot() bool {
	return v.class == root
}

// IsExtension reports whether v is an extension value.
func (v Value) IsExtension() bool {
	return v.class == extension
}

// Index returns the root index, or -1 for an extension or invalid value.
func (v Value) Index() int {
	if v.class != root {
		return -1
	}
	return v.index
}

func (v Value) String() string {
	switch v.class {
	case root:
		return fmt.Sprintf("Root(%d)=%d", v.index, v.Ordinal)
	case extension:
		return fmt.Sprintf("Extension(%d)", v.Ordinal)
	}
	return "Invalid"
}
