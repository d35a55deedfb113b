// Package object provides the runtime value types produced and consumed
// by the Lambdust bytecode engine.
//
// Callers of the engine usually type assert an object.Object to a
// concrete type:
//
//	switch obj := obj.(type) {
//	case *object.Float:
//		// do something with obj.Value()
//	case *object.Pair:
//		// do something with obj.Car() and obj.Cdr()
//	}
//
// Truthiness follows Scheme: every value is truthy except #f. In
// particular the empty list () and 0.0 are truthy.
package object

import "sort"

// Type of an object as a string.
type Type string

// Type constants
const (
	BOOL        Type = "bool"
	FLOAT       Type = "float"
	NIL         Type = "nil"
	PAIR        Type = "pair"
	STRING      Type = "string"
	SYMBOL      Type = "symbol"
	UNSPECIFIED Type = "unspecified"
	VECTOR      Type = "vector"
)

var (
	Nil         = &NilType{}
	True        = &Bool{value: true}
	False       = &Bool{value: false}
	Unspecified = &UnspecifiedType{}
)

// Object is the interface that all runtime value types implement.
type Object interface {
	// Type of the object.
	Type() Type

	// Inspect returns a string representation of the given object,
	// using Scheme external syntax where one exists.
	Inspect() string

	// Interface converts the given object to a native Go value.
	Interface() interface{}

	// Returns true if the given object is equal to this object.
	Equals(other Object) bool

	// IsTruthy returns true unless the object is #f.
	IsTruthy() bool
}

// HashKey is a structural identity for an object, usable as a map key.
type HashKey struct {
	Type     Type
	IntValue int64
	StrValue string
}

// Hashable is implemented by object types with a structural identity.
// Only hashable objects may be interned into a constant pool.
type Hashable interface {
	Object

	// HashKey returns a comparable structural key for the object.
	HashKey() HashKey
}

// Keys returns the keys of an object map as a sorted slice of strings.
func Keys(m map[string]Object) []string {
	var names []string
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// AsFloat converts the object to a native float64 if it is numeric.
func AsFloat(obj Object) (float64, bool) {
	f, ok := obj.(*Float)
	if !ok {
		return 0, false
	}
	return f.Value(), true
}

// NewBool returns the interned boolean object for the given value.
func NewBool(value bool) *Bool {
	if value {
		return True
	}
	return False
}
