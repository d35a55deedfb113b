// Package bytecode defines the compilation target of the Lambdust
// Scheme front end: instructions, operands, constants, and the
// container that ties them together for execution.
//
// # Key Types
//
//   - [Bytecode]: A compilation unit (instructions + constant pool +
//     execution metadata)
//   - [Instruction]: One opcode with its typed operand and optional
//     source location
//   - [Operand]: The tagged operand union (immediates, pool indexes,
//     local slots, jump offsets, symbol ids)
//   - [Constant] and [ConstantPool]: Deduplicated literal storage
//   - [SourceLocation]: Maps instructions back to source positions
//
// # Mutability
//
// Unlike most compiled-code representations, a Bytecode is mutable on
// purpose: the optimizer rewrites instruction sequences in place and
// interns new constants while doing so. Share a unit across goroutines
// only after all rewriting is done.
//
// # Addressing
//
// Instructions are addressed by index, not byte offset. Jump operands
// hold signed offsets relative to the index of the jump instruction
// itself, so target = index + offset. The per-operand byte widths
// exposed by EncodedSize are a contract for future binary encoders;
// nothing in this repository serializes bytecode.
//
// # Validation
//
// [Bytecode.Validate] is advisory and never invoked implicitly, so
// partially built units can be constructed and inspected freely. It
// reports every structural problem at once: entry point bounds,
// constant index bounds, and jump target bounds.
package bytecode
