package object

// NilType is the empty list (). It is a singleton, available as Nil.
// Unlike most languages' nil it is truthy: Scheme treats every value
// except #f as true.
type NilType struct{}

func (n *NilType) Type() Type {
	return NIL
}

func (n *NilType) Inspect() string {
	return "()"
}

func (n *NilType) String() string {
	return "()"
}

func (n *NilType) Interface() interface{} {
	return nil
}

func (n *NilType) Equals(other Object) bool {
	_, ok := other.(*NilType)
	return ok
}

func (n *NilType) IsTruthy() bool {
	return true
}

func (n *NilType) HashKey() HashKey {
	return HashKey{Type: NIL}
}

// UnspecifiedType is the value of expressions with no useful result,
// such as halting on an empty stack. It is a singleton, available as
// Unspecified.
type UnspecifiedType struct{}

func (u *UnspecifiedType) Type() Type {
	return UNSPECIFIED
}

func (u *UnspecifiedType) Inspect() string {
	return "#<unspecified>"
}

func (u *UnspecifiedType) String() string {
	return "#<unspecified>"
}

func (u *UnspecifiedType) Interface() interface{} {
	return nil
}

func (u *UnspecifiedType) Equals(other Object) bool {
	_, ok := other.(*UnspecifiedType)
	return ok
}

func (u *UnspecifiedType) IsTruthy() bool {
	return true
}
