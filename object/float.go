package object

import (
	"math"
	"strconv"
)

// Float wraps float64 and implements the Object and Hashable interfaces.
// All Lambdust numbers reaching this engine are float64; the numeric
// tower is flattened upstream.
type Float struct {
	value float64
}

func (f *Float) Type() Type {
	return FLOAT
}

func (f *Float) Value() float64 {
	return f.value
}

func (f *Float) Inspect() string {
	return strconv.FormatFloat(f.value, 'f', -1, 64)
}

func (f *Float) String() string {
	return f.Inspect()
}

func (f *Float) Interface() interface{} {
	return f.value
}

func (f *Float) Equals(other Object) bool {
	if other, ok := other.(*Float); ok {
		return f.value == other.value
	}
	return false
}

func (f *Float) IsTruthy() bool {
	return true
}

// HashKey keys floats by bit pattern rather than numeric equality, so
// NaN keys stay retrievable and 0.0 and -0.0 are distinct.
func (f *Float) HashKey() HashKey {
	return HashKey{Type: FLOAT, IntValue: int64(math.Float64bits(f.value))}
}

// NewFloat wraps a float64 in a Float object.
func NewFloat(value float64) *Float {
	return &Float{value: value}
}
