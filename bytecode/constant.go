package bytecode

import (
	"fmt"
	"math"
	"strconv"

	"github.com/akasaka-miraina/lambdust-sub010/object"
)

// Constant is a value stored in a constant pool. The variant set is
// closed: numbers, strings, booleans, symbol identifiers, nested code
// blocks, and hashable runtime values.
//
// Constants are plain data, distinct from runtime values; the virtual
// machine converts them with its own rules when a LOAD_CONST executes.
type Constant interface {
	// Inspect returns the constant's listing representation.
	Inspect() string

	// key returns the identity used for pool deduplication. Keeping it
	// unexported closes the variant set.
	key() constantKey
}

type constantKind uint8

const (
	constNumber constantKind = iota
	constString
	constBoolean
	constSymbol
	constCode
	constValue
)

// constantKey is a comparable structural identity for a constant.
type constantKey struct {
	kind constantKind
	num  uint64
	str  string
	code *Bytecode
	hash object.HashKey
}

// Number is a floating point constant. Identity is the float's bit
// pattern, not numeric equality: 0.0 and -0.0 are distinct constants
// and a NaN deduplicates against an identical NaN.
type Number float64

func (n Number) Inspect() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (n Number) key() constantKey {
	return constantKey{kind: constNumber, num: math.Float64bits(float64(n))}
}

// String is a string constant.
type String string

func (s String) Inspect() string {
	return strconv.Quote(string(s))
}

func (s String) key() constantKey {
	return constantKey{kind: constString, str: string(s)}
}

// Boolean is a boolean constant.
type Boolean bool

func (b Boolean) Inspect() string {
	if b {
		return "#t"
	}
	return "#f"
}

func (b Boolean) key() constantKey {
	var v uint64
	if b {
		v = 1
	}
	return constantKey{kind: constBoolean, num: v}
}

// Symbol is an interned symbol identifier constant.
type Symbol object.SymbolID

func (s Symbol) Inspect() string {
	return fmt.Sprintf("#<symbol %d>", uint32(s))
}

func (s Symbol) key() constantKey {
	return constantKey{kind: constSymbol, num: uint64(s)}
}

// Code is a nested compiled block, used for closure bodies. Identity is
// the block pointer: a Bytecode is owned by its pool once interned, so
// pointer equality is equivalent to block identity.
type Code struct {
	Block *Bytecode
}

func (c Code) Inspect() string {
	if c.Block == nil {
		return "#<code nil>"
	}
	return fmt.Sprintf("#<code %d instructions>", c.Block.InstructionCount())
}

func (c Code) key() constantKey {
	return constantKey{kind: constCode, code: c.Block}
}

// Value wraps an opaque runtime value. Only hashable values can be
// interned, so deduplication stays structural; the type system enforces
// the restriction instead of the pool checking at run time.
type Value struct {
	Obj object.Hashable
}

func (v Value) Inspect() string {
	if v.Obj == nil {
		return "#<value nil>"
	}
	return v.Obj.Inspect()
}

func (v Value) key() constantKey {
	if v.Obj == nil {
		return constantKey{kind: constValue}
	}
	return constantKey{kind: constValue, hash: v.Obj.HashKey()}
}
