package bytecode

import (
	"strings"

	"github.com/akasaka-miraina/lambdust-sub010/op"
)

// Instruction couples an opcode with its operand and an optional source
// location. Instructions are value types; a Bytecode holds a slice of
// them addressed by index.
type Instruction struct {
	Opcode   op.Code
	Operand  Operand
	Location SourceLocation
}

// NewInstruction builds an instruction without a source location.
func NewInstruction(opcode op.Code, operand Operand) Instruction {
	return Instruction{Opcode: opcode, Operand: operand}
}

// WithLocation returns a copy of the instruction carrying the given
// source location.
func (i Instruction) WithLocation(loc SourceLocation) Instruction {
	i.Location = loc
	return i
}

// EncodedSize returns the binary size of the instruction: one opcode
// byte plus the fixed width of its operand kind. Nothing in this
// repository serializes instructions yet; the sizes are a stable
// contract for future encoders.
func (i Instruction) EncodedSize() int {
	return 1 + i.Operand.EncodedSize()
}

// IsControlFlow reports whether the instruction can transfer control
// somewhere other than the next instruction.
func (i Instruction) IsControlFlow() bool {
	switch i.Opcode {
	case op.Jump, op.JumpIfFalse, op.JumpIfTrue,
		op.Call, op.TailCall, op.Return, op.CallCC, op.Yield:
		return true
	default:
		return false
	}
}

// IsTerminator reports whether the instruction unconditionally ends a
// basic block: execution never falls through to the next instruction.
// Conditional jumps and calls are not terminators.
func (i Instruction) IsTerminator() bool {
	switch i.Opcode {
	case op.Jump, op.Return, op.Halt, op.Yield:
		return true
	default:
		return false
	}
}

// IsMarker reports whether the instruction is a debug or profile marker
// that the optimizer may always remove. Pop is not a marker; it is
// removable only in contexts the optimizer verifies itself.
func (i Instruction) IsMarker() bool {
	switch i.Opcode {
	case op.DebugMarker, op.ProfileMarker:
		return true
	default:
		return false
	}
}

// String renders the instruction as "MNEMONIC operand".
func (i Instruction) String() string {
	var out strings.Builder
	out.WriteString(i.Opcode.String())
	if operand := i.Operand.String(); operand != "" {
		out.WriteString(" ")
		out.WriteString(operand)
	}
	return out.String()
}
