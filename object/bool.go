package object

// Bool wraps bool and implements the Object and Hashable interfaces.
// The two values are interned as True and False; use NewBool rather
// than constructing new instances.
type Bool struct {
	value bool
}

func (b *Bool) Type() Type {
	return BOOL
}

func (b *Bool) Value() bool {
	return b.value
}

func (b *Bool) Inspect() string {
	if b.value {
		return "#t"
	}
	return "#f"
}

func (b *Bool) String() string {
	return b.Inspect()
}

func (b *Bool) Interface() interface{} {
	return b.value
}

func (b *Bool) Equals(other Object) bool {
	if other, ok := other.(*Bool); ok {
		return b.value == other.value
	}
	return false
}

func (b *Bool) IsTruthy() bool {
	return b.value
}

func (b *Bool) HashKey() HashKey {
	var v int64
	if b.value {
		v = 1
	}
	return HashKey{Type: BOOL, IntValue: v}
}
