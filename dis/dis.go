// Package dis supports analysis of Lambdust bytecode by disassembling
// it into an annotated, optionally colored tabular listing. It works
// with the opcodes defined in the op package; for the plain fixed-format
// listing use Bytecode.Disassemble instead.
package dis

import (
	"fmt"
	"io"

	"github.com/akasaka-miraina/lambdust-sub010/bytecode"
	"github.com/akasaka-miraina/lambdust-sub010/internal/tbl"
	"github.com/akasaka-miraina/lambdust-sub010/object"
	"github.com/akasaka-miraina/lambdust-sub010/op"
	"github.com/fatih/color"
)

// Instruction represents a single decoded instruction prepared for
// display: its byte offset per the fixed encoding contract, its
// mnemonic, its operand, and a human-oriented annotation.
type Instruction struct {
	Offset     int
	Index      int
	Name       string
	Opcode     op.Code
	Operand    string
	Annotation string
	Constant   bytecode.Constant
	Entry      bool
}

// Option configures disassembly.
type Option func(*disassembler)

// WithSymbols resolves symbol operands to their interned names. Without
// a table, symbol operands are annotated with their raw identifiers.
func WithSymbols(symbols *object.SymbolTable) Option {
	return func(d *disassembler) {
		d.symbols = symbols
	}
}

type disassembler struct {
	symbols *object.SymbolTable
}

// Disassemble returns a parsed representation of the given bytecode.
// It fails when an instruction references a constant outside the pool;
// run Bytecode.Validate first for the full structural report.
func Disassemble(code *bytecode.Bytecode, opts ...Option) ([]Instruction, error) {
	var d disassembler
	for _, opt := range opts {
		opt(&d)
	}
	instructions := make([]Instruction, 0, code.InstructionCount())
	offset := 0
	for i := 0; i < code.InstructionCount(); i++ {
		instr := code.InstructionAt(i)
		info := op.GetInfo(instr.Opcode)
		name := info.Name
		if name == "" {
			name = fmt.Sprintf("INVALID(%d)", uint16(instr.Opcode))
		}
		row := Instruction{
			Offset:  offset,
			Index:   i,
			Name:    name,
			Opcode:  instr.Opcode,
			Operand: formatOperand(instr.Operand),
			Entry:   i == code.EntryPoint(),
		}
		if err := d.annotate(&row, code, i, instr); err != nil {
			return nil, err
		}
		instructions = append(instructions, row)
		offset += instr.EncodedSize()
	}
	return instructions, nil
}

func (d *disassembler) annotate(row *Instruction, code *bytecode.Bytecode, index int, instr bytecode.Instruction) error {
	if ci, ok := instr.Operand.ConstIndex(); ok {
		c, found := code.Constants().Get(ci)
		if !found {
			return fmt.Errorf("constant index out of range: %d", ci)
		}
		row.Constant = c
		row.Annotation = c.Inspect()
		return nil
	}
	if offset, ok := instr.Operand.JumpOffset(); ok {
		row.Annotation = fmt.Sprintf("to %d", index+offset)
		return nil
	}
	if id, ok := instr.Operand.SymbolID(); ok {
		if d.symbols != nil {
			if name, found := d.symbols.NameOf(id); found {
				row.Annotation = name
				return nil
			}
		}
		row.Annotation = fmt.Sprintf("sym %d", id)
	}
	return nil
}

func formatOperand(operand bytecode.Operand) string {
	if operand.IsNone() {
		return ""
	}
	if offset, ok := operand.JumpOffset(); ok {
		return fmt.Sprintf("%+d", offset)
	}
	return fmt.Sprintf("%d", operand.Value())
}

// Print writes a table of the given instructions to the writer. The
// entry point is marked in the OFFSET column; constants are colored by
// kind when color output is enabled.
func Print(instructions []Instruction, writer io.Writer) {
	bold := color.New(color.Bold)
	var lines [][]string
	for _, instr := range instructions {
		offset := fmt.Sprintf("%d", instr.Offset)
		if instr.Entry {
			offset = "> " + offset
		}
		lines = append(lines, []string{
			offset,
			bold.Sprint(instr.Name),
			instr.Operand,
			formatInfo(instr),
		})
	}
	tbl.NewTable(writer).
		WithHeader([]string{"OFFSET", "OPCODE", "OPERAND", "INFO"}).
		WithColumnAlignment([]tbl.Alignment{
			tbl.AlignRight,
			tbl.AlignLeft,
			tbl.AlignRight,
			tbl.AlignLeft,
		}).
		WithHeaderAlignment([]tbl.Alignment{
			tbl.AlignCenter,
			tbl.AlignCenter,
			tbl.AlignCenter,
			tbl.AlignCenter,
		}).
		WithRows(lines).
		Render()
}

func formatInfo(instr Instruction) string {
	if instr.Annotation == "" {
		return ""
	}
	if instr.Constant == nil {
		return color.CyanString("%s", instr.Annotation)
	}
	switch instr.Constant.(type) {
	case bytecode.Number:
		return color.YellowString("%s", instr.Annotation)
	case bytecode.String:
		return color.GreenString("%s", instr.Annotation)
	case bytecode.Code:
		return color.MagentaString("%s", instr.Annotation)
	default:
		return instr.Annotation
	}
}

// Fprint disassembles and prints the unit in one call.
func Fprint(code *bytecode.Bytecode, writer io.Writer, opts ...Option) error {
	instructions, err := Disassemble(code, opts...)
	if err != nil {
		return err
	}
	Print(instructions, writer)
	return nil
}
