package bytecode

import (
	"github.com/akasaka-miraina/lambdust-sub010/errz"
	"github.com/hashicorp/go-multierror"
)

// Bytecode is a complete executable compilation unit: an instruction
// sequence, the constant pool it references, and execution metadata.
// Unlike source-level structures it is deliberately mutable: the
// optimizer rewrites the instruction slice in place. It is not safe for
// concurrent use.
type Bytecode struct {
	instructions  []Instruction
	constants     *ConstantPool
	entryPoint    int
	localCount    int
	maxStackDepth int
}

// Params contains parameters for creating a new Bytecode.
type Params struct {
	Instructions  []Instruction
	Constants     *ConstantPool
	EntryPoint    int
	LocalCount    int
	MaxStackDepth int
}

// New creates a Bytecode from the given parameters. The instruction
// slice is copied; the constant pool is shared (a nil pool gets a fresh
// empty one).
func New(params Params) *Bytecode {
	constants := params.Constants
	if constants == nil {
		constants = NewConstantPool()
	}
	return &Bytecode{
		instructions:  copyInstructions(params.Instructions),
		constants:     constants,
		entryPoint:    params.EntryPoint,
		localCount:    params.LocalCount,
		maxStackDepth: params.MaxStackDepth,
	}
}

// InstructionCount returns the number of instructions.
func (b *Bytecode) InstructionCount() int {
	return len(b.instructions)
}

// InstructionAt returns the instruction at the given index.
func (b *Bytecode) InstructionAt(index int) Instruction {
	return b.instructions[index]
}

// Instructions returns a copy of the instruction sequence.
func (b *Bytecode) Instructions() []Instruction {
	return copyInstructions(b.instructions)
}

// SetInstructions replaces the instruction sequence. The optimizer uses
// this after rewriting; the slice is copied.
func (b *Bytecode) SetInstructions(instructions []Instruction) {
	b.instructions = copyInstructions(instructions)
}

// Append adds instructions to the end of the sequence and returns the
// index of the first appended instruction.
func (b *Bytecode) Append(instructions ...Instruction) int {
	index := len(b.instructions)
	b.instructions = append(b.instructions, instructions...)
	return index
}

// Constants returns the constant pool.
func (b *Bytecode) Constants() *ConstantPool {
	return b.constants
}

// AddConstant interns a constant into the pool and returns its index.
func (b *Bytecode) AddConstant(c Constant) int {
	return b.constants.Add(c)
}

// EntryPoint returns the index of the first instruction to execute.
func (b *Bytecode) EntryPoint() int {
	return b.entryPoint
}

// SetEntryPoint changes the index of the first instruction to execute.
func (b *Bytecode) SetEntryPoint(index int) {
	b.entryPoint = index
}

// SetInstructionAt replaces the instruction at the given index. The
// assembler uses this to patch deferred jump offsets.
func (b *Bytecode) SetInstructionAt(index int, instr Instruction) {
	b.instructions[index] = instr
}

// LocalCount returns the number of local variable slots a frame needs.
func (b *Bytecode) LocalCount() int {
	return b.localCount
}

// SetLocalCount changes the number of local variable slots.
func (b *Bytecode) SetLocalCount(count int) {
	b.localCount = count
}

// MaxStackDepth returns the compiler's estimate of the deepest value
// stack this unit can reach. It is metadata, not an enforced bound.
func (b *Bytecode) MaxStackDepth() int {
	return b.maxStackDepth
}

// SetMaxStackDepth changes the recorded stack depth estimate.
func (b *Bytecode) SetMaxStackDepth(depth int) {
	b.maxStackDepth = depth
}

// LocationAt returns the source location for the instruction at the
// given index, or a zero location when the index is out of range.
func (b *Bytecode) LocationAt(index int) SourceLocation {
	if index < 0 || index >= len(b.instructions) {
		return SourceLocation{}
	}
	return b.instructions[index].Location
}

// Validate checks structural integrity and reports every problem found:
// an out-of-bounds entry point, constant operands pointing outside the
// pool, and jump targets outside the instruction sequence. It is
// advisory; nothing calls it implicitly, so deliberately partial
// bytecode can still be built and inspected.
func (b *Bytecode) Validate() error {
	var result *multierror.Error
	if len(b.instructions) == 0 {
		result = multierror.Append(result, errz.ValidationErrorf(
			"bytecode has no instructions"))
	} else if b.entryPoint < 0 || b.entryPoint >= len(b.instructions) {
		result = multierror.Append(result, errz.ValidationErrorf(
			"entry point %d out of range [0, %d)", b.entryPoint, len(b.instructions)))
	}
	for i, instr := range b.instructions {
		if ci, ok := instr.Operand.ConstIndex(); ok {
			if ci < 0 || ci >= b.constants.Len() {
				result = multierror.Append(result, errz.ValidationErrorf(
					"instruction %d (%s): constant index %d out of range [0, %d)",
					i, instr.Opcode.String(), ci, b.constants.Len()))
			}
		}
		if offset, ok := instr.Operand.JumpOffset(); ok {
			target := i + offset
			if target < 0 || target >= len(b.instructions) {
				result = multierror.Append(result, errz.ValidationErrorf(
					"instruction %d (%s): jump target %d out of range [0, %d)",
					i, instr.Opcode.String(), target, len(b.instructions)))
			}
		}
	}
	return result.ErrorOrNil()
}

// EncodedSize returns the total binary size of the instruction sequence
// per the fixed operand-width contract.
func (b *Bytecode) EncodedSize() int {
	total := 0
	for _, instr := range b.instructions {
		total += instr.EncodedSize()
	}
	return total
}

// MemoryUsage estimates the bytes held by the unit: instruction storage
// plus the constant pool estimate.
func (b *Bytecode) MemoryUsage() int {
	return len(b.instructions)*InstructionSizeEstimate + b.constants.MemoryUsage()
}

// InstructionSizeEstimate is the nominal in-memory size of one decoded
// instruction, used for memory accounting and optimizer savings
// estimates.
const InstructionSizeEstimate = 48
