package bytecode

import (
	"fmt"

	"github.com/akasaka-miraina/lambdust-sub010/object"
	"github.com/akasaka-miraina/lambdust-sub010/op"
)

// Operand is the single typed argument of an instruction. The zero
// value is the "no operand" case. Use the kind-specific constructors;
// the payload is interpreted according to the kind.
type Operand struct {
	kind  op.OperandKind
	value int64
}

// NoOperand returns the empty operand.
func NoOperand() Operand {
	return Operand{}
}

// U8Operand returns an 8-bit unsigned immediate operand.
func U8Operand(v uint8) Operand {
	return Operand{kind: op.OperandU8, value: int64(v)}
}

// U16Operand returns a 16-bit unsigned immediate operand.
func U16Operand(v uint16) Operand {
	return Operand{kind: op.OperandU16, value: int64(v)}
}

// U32Operand returns a 32-bit unsigned immediate operand.
func U32Operand(v uint32) Operand {
	return Operand{kind: op.OperandU32, value: int64(v)}
}

// ConstOperand returns a constant-pool index operand.
func ConstOperand(index int) Operand {
	return Operand{kind: op.OperandConst, value: int64(index)}
}

// LocalOperand returns a local-variable index operand.
func LocalOperand(index int) Operand {
	return Operand{kind: op.OperandLocal, value: int64(index)}
}

// JumpOperand returns a jump offset operand. The offset is signed and
// relative to the index of the instruction that carries it: target
// index = instruction index + offset.
func JumpOperand(offset int) Operand {
	return Operand{kind: op.OperandJump, value: int64(offset)}
}

// SymbolOperand returns a symbol identifier operand.
func SymbolOperand(id object.SymbolID) Operand {
	return Operand{kind: op.OperandSymbol, value: int64(id)}
}

// Kind returns the operand kind.
func (o Operand) Kind() op.OperandKind {
	return o.kind
}

// IsNone reports whether the operand is empty.
func (o Operand) IsNone() bool {
	return o.kind == op.OperandNone
}

// Value returns the raw operand payload regardless of kind.
func (o Operand) Value() int64 {
	return o.value
}

// ConstIndex returns the constant-pool index when the operand holds one.
func (o Operand) ConstIndex() (int, bool) {
	if o.kind != op.OperandConst {
		return 0, false
	}
	return int(o.value), true
}

// LocalIndex returns the local-variable index when the operand holds one.
func (o Operand) LocalIndex() (int, bool) {
	if o.kind != op.OperandLocal {
		return 0, false
	}
	return int(o.value), true
}

// JumpOffset returns the signed jump offset when the operand holds one.
func (o Operand) JumpOffset() (int, bool) {
	if o.kind != op.OperandJump {
		return 0, false
	}
	return int(o.value), true
}

// SymbolID returns the symbol identifier when the operand holds one.
func (o Operand) SymbolID() (object.SymbolID, bool) {
	if o.kind != op.OperandSymbol {
		return 0, false
	}
	return object.SymbolID(o.value), true
}

// EncodedSize returns the number of bytes the operand occupies in the
// binary instruction encoding.
func (o Operand) EncodedSize() int {
	return o.kind.Size()
}

// String renders the operand for disassembly listings, e.g. "const:2"
// or "jump:+5". The empty operand renders as "".
func (o Operand) String() string {
	switch o.kind {
	case op.OperandNone:
		return ""
	case op.OperandJump:
		return fmt.Sprintf("jump:%+d", o.value)
	default:
		return fmt.Sprintf("%s:%d", o.kind.String(), o.value)
	}
}
