package bytecode

// Stats contains statistics about a compilation unit.
// This is useful for auditing bytecode before execution.
type Stats struct {
	// InstructionCount is the total number of instructions.
	InstructionCount int

	// ConstantCount is the number of constants in the constant pool.
	ConstantCount int

	// LocalCount is the number of local variable slots.
	LocalCount int

	// EncodedSize is the binary size of the instruction sequence in
	// bytes, per the fixed operand-width contract.
	EncodedSize int

	// MemoryUsage is the estimated in-memory footprint in bytes.
	MemoryUsage int
}

// Stats computes summary statistics for the unit.
func (b *Bytecode) Stats() Stats {
	return Stats{
		InstructionCount: len(b.instructions),
		ConstantCount:    b.constants.Len(),
		LocalCount:       b.localCount,
		EncodedSize:      b.EncodedSize(),
		MemoryUsage:      b.MemoryUsage(),
	}
}
