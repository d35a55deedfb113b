package asm

import (
	"testing"

	"github.com/akasaka-miraina/lambdust-sub010/bytecode"
	"github.com/akasaka-miraina/lambdust-sub010/op"
	"github.com/stretchr/testify/require"
)

func TestAssembleBasic(t *testing.T) {
	code, err := New().Assemble(`
	; compute (+ 5 3)
	.const five 5
	.const three 3
	LOAD_CONST five
	LOAD_CONST three
	ADD
	HALT
	`)
	require.NoError(t, err)
	require.Equal(t, 4, code.InstructionCount())
	require.Equal(t, 2, code.Constants().Len())
	require.Equal(t, op.LoadConst, code.InstructionAt(0).Opcode)
	require.Equal(t, op.Add, code.InstructionAt(2).Opcode)
	require.Equal(t, op.Halt, code.InstructionAt(3).Opcode)
}

func TestAssembleInlineLiterals(t *testing.T) {
	code, err := New().Assemble(`
	LOAD_CONST 42
	LOAD_CONST "hello"
	LOAD_CONST #t
	LOAD_CONST 'foo
	HALT
	`)
	require.NoError(t, err)
	require.Equal(t, 4, code.Constants().Len())
	c, ok := code.Constants().Get(0)
	require.True(t, ok)
	require.Equal(t, bytecode.Number(42), c)
	c, ok = code.Constants().Get(1)
	require.True(t, ok)
	require.Equal(t, bytecode.String("hello"), c)
}

func TestAssembleSubtraction(t *testing.T) {
	code, err := New().Assemble(`
	LOAD_CONST 10
	LOAD_CONST 3
	SUB
	HALT
	`)
	require.NoError(t, err)
	require.Equal(t, op.Sub, code.InstructionAt(2).Opcode)
	require.Equal(t, "SUB", code.InstructionAt(2).Opcode.String())
}

func TestAssembleLabelsAndJumps(t *testing.T) {
	code, err := New().Assemble(`
	.entry start
	start:
	LOAD_CONST #f
	JUMP_IF_FALSE end
	LOAD_CONST 1
	end:
	HALT
	`)
	require.NoError(t, err)
	require.Equal(t, 0, code.EntryPoint())

	jump := code.InstructionAt(1)
	require.Equal(t, op.JumpIfFalse, jump.Opcode)
	offset, ok := jump.Operand.JumpOffset()
	require.True(t, ok)
	require.Equal(t, 2, offset) // index 1 + 2 = HALT at index 3
}

func TestAssembleExplicitOffset(t *testing.T) {
	code, err := New().Assemble(`
	NOP
	JUMP -1
	`)
	require.NoError(t, err)
	offset, ok := code.InstructionAt(1).Operand.JumpOffset()
	require.True(t, ok)
	require.Equal(t, -1, offset)
}

func TestAssembleDirectives(t *testing.T) {
	code, err := New().Assemble(`
	.locals 3
	.stack 16
	LOAD_LOCAL 2
	HALT
	`)
	require.NoError(t, err)
	require.Equal(t, 3, code.LocalCount())
	require.Equal(t, 16, code.MaxStackDepth())
	index, ok := code.InstructionAt(0).Operand.LocalIndex()
	require.True(t, ok)
	require.Equal(t, 2, index)
}

func TestAssembleSymbolOperand(t *testing.T) {
	assembler := New()
	code, err := assembler.Assemble(`
	LOAD_GLOBAL display
	HALT
	`)
	require.NoError(t, err)
	id, ok := code.InstructionAt(0).Operand.SymbolID()
	require.True(t, ok)
	name, ok := assembler.Symbols().NameOf(id)
	require.True(t, ok)
	require.Equal(t, "display", name)
}

func TestAssembleConstantDedup(t *testing.T) {
	code, err := New().Assemble(`
	LOAD_CONST 42
	LOAD_CONST 42
	HALT
	`)
	require.NoError(t, err)
	require.Equal(t, 1, code.Constants().Len())
	a, _ := code.InstructionAt(0).Operand.ConstIndex()
	b, _ := code.InstructionAt(1).Operand.ConstIndex()
	require.Equal(t, a, b)
}

func TestAssembleErrorsAggregated(t *testing.T) {
	_, err := New().Assemble(`
	FROB 1
	JUMP nowhere
	LOAD_CONST
	`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown mnemonic \"FROB\"")
	require.Contains(t, err.Error(), "undefined label \"nowhere\"")
	require.Contains(t, err.Error(), "requires a const operand")
}

func TestAssembleDuplicateLabel(t *testing.T) {
	_, err := New().Assemble(`
	a:
	NOP
	a:
	HALT
	`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate label")
}

func TestAssembleCommentsInsideStrings(t *testing.T) {
	code, err := New().Assemble(`
	LOAD_CONST "semi;colon" ; trailing comment
	HALT
	`)
	require.NoError(t, err)
	c, ok := code.Constants().Get(0)
	require.True(t, ok)
	require.Equal(t, bytecode.String("semi;colon"), c)
}

func TestAssembleRoundTrip(t *testing.T) {
	code, err := New().Assemble(`
	LOAD_CONST 42
	RETURN
	`)
	require.NoError(t, err)
	listing := code.Disassemble()
	require.Contains(t, listing, "LOAD_CONST")
	require.Contains(t, listing, "RETURN")
	require.Contains(t, listing, "42")
}
