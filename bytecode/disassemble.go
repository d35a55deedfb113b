package bytecode

import (
	"fmt"
	"strings"

	"github.com/akasaka-miraina/lambdust-sub010/op"
)

// Disassemble renders the unit in the engine's fixed listing format:
// a header, the execution metadata, the constant table, and the
// instruction sequence with the entry point marked by ">". Constant
// loads are annotated with the constant's value. The format is stable;
// tooling that wants color or layout control should use the dis
// package instead.
func (b *Bytecode) Disassemble() string {
	var out strings.Builder
	out.WriteString("=== Bytecode Disassembly ===\n")
	fmt.Fprintf(&out, "entry point:     %d\n", b.entryPoint)
	fmt.Fprintf(&out, "local count:     %d\n", b.localCount)
	fmt.Fprintf(&out, "max stack depth: %d\n", b.maxStackDepth)
	out.WriteString("\n")

	fmt.Fprintf(&out, "constants (%d):\n", b.constants.Len())
	for i, c := range b.constants.Constants() {
		fmt.Fprintf(&out, "  [%d] %s\n", i, c.Inspect())
	}
	out.WriteString("\n")

	fmt.Fprintf(&out, "instructions (%d):\n", len(b.instructions))
	for i, instr := range b.instructions {
		marker := " "
		if i == b.entryPoint {
			marker = ">"
		}
		line := fmt.Sprintf("%s %04d %-15s %-15s", marker, i,
			op.GetInfo(instr.Opcode).Name, instr.Operand.String())
		if annotation := b.annotate(i, instr); annotation != "" {
			line = line + "; " + annotation
		}
		out.WriteString(strings.TrimRight(line, " "))
		out.WriteString("\n")
	}
	return out.String()
}

// annotate returns extra human-oriented context for the instruction at
// the given index: the value of a referenced constant, or the resolved
// target of a jump.
func (b *Bytecode) annotate(index int, instr Instruction) string {
	if ci, ok := instr.Operand.ConstIndex(); ok {
		if c, found := b.constants.Get(ci); found {
			return c.Inspect()
		}
		return "invalid constant index"
	}
	if offset, ok := instr.Operand.JumpOffset(); ok {
		return fmt.Sprintf("-> %04d", index+offset)
	}
	return ""
}
