package object

import "strings"

// Vector is a fixed-length mutable sequence with Scheme #(...) syntax.
type Vector struct {
	items []Object
}

func (v *Vector) Type() Type {
	return VECTOR
}

func (v *Vector) Len() int {
	return len(v.items)
}

func (v *Vector) Get(i int) (Object, bool) {
	if i < 0 || i >= len(v.items) {
		return nil, false
	}
	return v.items[i], true
}

func (v *Vector) Set(i int, obj Object) bool {
	if i < 0 || i >= len(v.items) {
		return false
	}
	v.items[i] = obj
	return true
}

func (v *Vector) Inspect() string {
	var out strings.Builder
	out.WriteString("#(")
	for i, item := range v.items {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(item.Inspect())
	}
	out.WriteString(")")
	return out.String()
}

func (v *Vector) String() string {
	return v.Inspect()
}

func (v *Vector) Interface() interface{} {
	out := make([]interface{}, len(v.items))
	for i, item := range v.items {
		out[i] = item.Interface()
	}
	return out
}

func (v *Vector) Equals(other Object) bool {
	otherVec, ok := other.(*Vector)
	if !ok || len(v.items) != len(otherVec.items) {
		return false
	}
	for i, item := range v.items {
		if !item.Equals(otherVec.items[i]) {
			return false
		}
	}
	return true
}

func (v *Vector) IsTruthy() bool {
	return true
}

// NewVector builds a vector of the given length with every slot set to
// the fill value.
func NewVector(length int, fill Object) *Vector {
	items := make([]Object, length)
	for i := range items {
		items[i] = fill
	}
	return &Vector{items: items}
}

// NewVectorFrom builds a vector holding the given items.
func NewVectorFrom(items ...Object) *Vector {
	return &Vector{items: items}
}
