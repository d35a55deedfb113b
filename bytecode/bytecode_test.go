package bytecode

import (
	"strings"
	"testing"

	"github.com/akasaka-miraina/lambdust-sub010/errz"
	"github.com/akasaka-miraina/lambdust-sub010/op"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func TestNewCopiesInstructions(t *testing.T) {
	instructions := []Instruction{
		NewInstruction(op.LoadConst, ConstOperand(0)),
		NewInstruction(op.Halt, NoOperand()),
	}
	code := New(Params{Instructions: instructions, MaxStackDepth: 4})

	instructions[0] = NewInstruction(op.Nop, NoOperand())
	require.Equal(t, op.LoadConst, code.InstructionAt(0).Opcode)
	require.Equal(t, 2, code.InstructionCount())
	require.Equal(t, 4, code.MaxStackDepth())
	require.NotNil(t, code.Constants())
}

func TestAppendAndSetInstructions(t *testing.T) {
	code := New(Params{})
	index := code.Append(NewInstruction(op.Nop, NoOperand()))
	require.Equal(t, 0, index)
	index = code.Append(
		NewInstruction(op.Pop, NoOperand()),
		NewInstruction(op.Halt, NoOperand()),
	)
	require.Equal(t, 1, index)
	require.Equal(t, 3, code.InstructionCount())

	code.SetInstructions([]Instruction{NewInstruction(op.Halt, NoOperand())})
	require.Equal(t, 1, code.InstructionCount())
	require.Equal(t, op.Halt, code.InstructionAt(0).Opcode)
}

func TestValidateOK(t *testing.T) {
	code := New(Params{})
	code.AddConstant(Number(1))
	code.Append(
		NewInstruction(op.LoadConst, ConstOperand(0)),
		NewInstruction(op.JumpIfFalse, JumpOperand(1)),
		NewInstruction(op.Halt, NoOperand()),
	)
	require.Nil(t, code.Validate())
}

func TestValidateEntryPoint(t *testing.T) {
	code := New(Params{
		Instructions: []Instruction{NewInstruction(op.Halt, NoOperand())},
		EntryPoint:   5,
	})
	err := code.Validate()
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "entry point 5 out of range")

	code.SetEntryPoint(0)
	require.Nil(t, code.Validate())
}

func TestValidateEmpty(t *testing.T) {
	code := New(Params{})
	err := code.Validate()
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "no instructions")
}

func TestValidateConstantIndex(t *testing.T) {
	code := New(Params{Instructions: []Instruction{
		NewInstruction(op.LoadConst, ConstOperand(3)),
		NewInstruction(op.Halt, NoOperand()),
	}})
	err := code.Validate()
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "constant index 3 out of range")
	require.True(t, errz.IsKind(err, errz.ErrValidation))
}

func TestValidateJumpTarget(t *testing.T) {
	code := New(Params{Instructions: []Instruction{
		NewInstruction(op.Jump, JumpOperand(99)),
		NewInstruction(op.Halt, NoOperand()),
	}})
	err := code.Validate()
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "jump target 99 out of range")

	back := New(Params{Instructions: []Instruction{
		NewInstruction(op.Jump, JumpOperand(-1)),
		NewInstruction(op.Halt, NoOperand()),
	}})
	err = back.Validate()
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "jump target -1 out of range")
}

func TestValidateReportsAllProblems(t *testing.T) {
	code := New(Params{
		Instructions: []Instruction{
			NewInstruction(op.LoadConst, ConstOperand(9)),
			NewInstruction(op.Jump, JumpOperand(50)),
		},
		EntryPoint: 7,
	})
	err := code.Validate()
	require.NotNil(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 3)
}

func TestLocationAt(t *testing.T) {
	loc := SourceLocation{Filename: "lib.scm", Line: 10, Column: 4}
	code := New(Params{Instructions: []Instruction{
		NewInstruction(op.Halt, NoOperand()).WithLocation(loc),
	}})
	require.Equal(t, loc, code.LocationAt(0))
	require.True(t, code.LocationAt(1).IsZero())
	require.True(t, code.LocationAt(-1).IsZero())
}

func TestEncodedSize(t *testing.T) {
	code := New(Params{Instructions: []Instruction{
		NewInstruction(op.LoadConst, ConstOperand(0)), // 3 bytes
		NewInstruction(op.Jump, JumpOperand(-1)),      // 5 bytes
		NewInstruction(op.Halt, NoOperand()),          // 1 byte
	}})
	require.Equal(t, 9, code.EncodedSize())
}

func TestMemoryUsageGrowsWithInstructions(t *testing.T) {
	code := New(Params{})
	code.AddConstant(Number(1))
	base := code.MemoryUsage()

	code.Append(NewInstruction(op.Nop, NoOperand()))
	require.Equal(t, base+InstructionSizeEstimate, code.MemoryUsage())
}

func TestStats(t *testing.T) {
	code := New(Params{LocalCount: 2})
	code.AddConstant(Number(1))
	code.AddConstant(String("x"))
	code.Append(
		NewInstruction(op.LoadConst, ConstOperand(0)),
		NewInstruction(op.Halt, NoOperand()),
	)
	stats := code.Stats()
	require.Equal(t, 2, stats.InstructionCount)
	require.Equal(t, 2, stats.ConstantCount)
	require.Equal(t, 2, stats.LocalCount)
	require.Equal(t, 4, stats.EncodedSize)
	require.Greater(t, stats.MemoryUsage, 0)
}

func TestDisassemble(t *testing.T) {
	code := New(Params{MaxStackDepth: 8, LocalCount: 1})
	index := code.AddConstant(Number(42))
	code.Append(
		NewInstruction(op.LoadConst, ConstOperand(index)),
		NewInstruction(op.Return, NoOperand()),
		NewInstruction(op.Halt, NoOperand()),
	)

	listing := code.Disassemble()
	require.Contains(t, listing, "=== Bytecode Disassembly ===")
	require.Contains(t, listing, "entry point:     0")
	require.Contains(t, listing, "local count:     1")
	require.Contains(t, listing, "max stack depth: 8")
	require.Contains(t, listing, "LOAD_CONST")
	require.Contains(t, listing, "RETURN")
	require.Contains(t, listing, "42")
	require.Contains(t, listing, "constants (1):")
	require.Contains(t, listing, "[0] 42")
}

func TestDisassembleMarksEntryPoint(t *testing.T) {
	code := New(Params{
		Instructions: []Instruction{
			NewInstruction(op.Nop, NoOperand()),
			NewInstruction(op.Halt, NoOperand()),
		},
		EntryPoint: 1,
	})
	listing := code.Disassemble()
	lines := strings.Split(listing, "\n")

	var entryLine string
	for _, line := range lines {
		if strings.HasPrefix(line, ">") {
			entryLine = line
		}
	}
	require.Contains(t, entryLine, "0001")
	require.Contains(t, entryLine, "HALT")
}

func TestDisassembleAnnotatesJumps(t *testing.T) {
	code := New(Params{Instructions: []Instruction{
		NewInstruction(op.Jump, JumpOperand(1)),
		NewInstruction(op.Halt, NoOperand()),
	}})
	require.Contains(t, code.Disassemble(), "-> 0001")
}
