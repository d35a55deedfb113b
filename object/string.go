package object

import "strconv"

// String wraps string and implements the Object and Hashable interfaces.
type String struct {
	value string
}

func (s *String) Type() Type {
	return STRING
}

func (s *String) Value() string {
	return s.value
}

func (s *String) Inspect() string {
	return strconv.Quote(s.value)
}

func (s *String) String() string {
	return s.value
}

func (s *String) Interface() interface{} {
	return s.value
}

func (s *String) Equals(other Object) bool {
	if other, ok := other.(*String); ok {
		return s.value == other.value
	}
	return false
}

func (s *String) IsTruthy() bool {
	return true
}

func (s *String) HashKey() HashKey {
	return HashKey{Type: STRING, StrValue: s.value}
}

// NewString wraps a string in a String object.
func NewString(value string) *String {
	return &String{value: value}
}
