// Package asm parses a line-oriented assembly text format into
// executable bytecode, so units can be built and tested without the
// Scheme compiler. The format mirrors the disassembly listing:
//
//	; compute (+ 5 3)
//	.entry start
//	.const five 5
//	.const three 3
//
//	start:
//	    LOAD_CONST five
//	    LOAD_CONST three
//	    ADD
//	    HALT
//
// Directives: .entry sets the entry label or index, .locals the local
// slot count, .stack the max stack depth metadata, and .const binds a
// name to a literal (number, quoted string, #t, #f, or 'symbol).
// Operands are resolved by the opcode's declared operand kind: constant
// operands accept a .const name or an inline literal, jump operands a
// label or an explicit signed offset, symbol operands a bare name that
// is interned into the assembler's symbol table.
package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akasaka-miraina/lambdust-sub010/bytecode"
	"github.com/akasaka-miraina/lambdust-sub010/object"
	"github.com/akasaka-miraina/lambdust-sub010/op"
	"github.com/hashicorp/go-multierror"
)

// Assembler parses assembly text into bytecode units. Symbol operands
// are interned into its symbol table, which must be shared with the
// virtual machine that runs the output.
type Assembler struct {
	symbols *object.SymbolTable
}

// Option is a configuration function for an Assembler.
type Option func(*Assembler)

// WithSymbols sets the symbol table that symbol operands are interned
// into. Without it the assembler creates its own.
func WithSymbols(symbols *object.SymbolTable) Option {
	return func(a *Assembler) {
		a.symbols = symbols
	}
}

// New creates an Assembler.
func New(opts ...Option) *Assembler {
	a := &Assembler{}
	for _, opt := range opts {
		opt(a)
	}
	if a.symbols == nil {
		a.symbols = object.NewSymbolTable()
	}
	return a
}

// Symbols returns the assembler's symbol table.
func (a *Assembler) Symbols() *SymbolTable {
	return a.symbols
}

// SymbolTable is re-exported so callers wiring assembler and machine
// together need not import object directly.
type SymbolTable = object.SymbolTable

type fixup struct {
	index int
	label string
	line  int
}

type unit struct {
	code       *bytecode.Bytecode
	labels     map[string]int
	constants  map[string]int
	entryLabel string
	fixups     []fixup
}

// Assemble parses the source text and returns the assembled unit. All
// parse and resolution errors are reported together, each prefixed with
// its line number. The result is structurally valid: assembly ends with
// a Validate check.
func (a *Assembler) Assemble(source string) (*bytecode.Bytecode, error) {
	u := &unit{
		code:      bytecode.New(bytecode.Params{}),
		labels:    map[string]int{},
		constants: map[string]int{},
	}
	var result *multierror.Error

	for lineno, raw := range strings.Split(source, "\n") {
		line := stripComment(raw)
		if line == "" {
			continue
		}
		if err := a.parseLine(u, line, lineno+1); err != nil {
			result = multierror.Append(result, err)
		}
	}

	for _, f := range u.fixups {
		target, ok := u.labels[f.label]
		if !ok {
			result = multierror.Append(result,
				lineErrorf(f.line, "undefined label %q", f.label))
			continue
		}
		instr := u.code.InstructionAt(f.index)
		instr.Operand = bytecode.JumpOperand(target - f.index)
		u.code.SetInstructionAt(f.index, instr)
	}

	if u.entryLabel != "" {
		if target, ok := u.labels[u.entryLabel]; ok {
			u.code.SetEntryPoint(target)
		} else {
			result = multierror.Append(result,
				fmt.Errorf("undefined entry label %q", u.entryLabel))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	if err := u.code.Validate(); err != nil {
		return nil, err
	}
	return u.code, nil
}

func (a *Assembler) parseLine(u *unit, line string, lineno int) error {
	if strings.HasPrefix(line, ".") {
		return a.parseDirective(u, line, lineno)
	}
	if label, ok := strings.CutSuffix(line, ":"); ok {
		label = strings.TrimSpace(label)
		if label == "" {
			return lineErrorf(lineno, "empty label")
		}
		if _, exists := u.labels[label]; exists {
			return lineErrorf(lineno, "duplicate label %q", label)
		}
		u.labels[label] = u.code.InstructionCount()
		return nil
	}
	return a.parseInstruction(u, line, lineno)
}

func (a *Assembler) parseDirective(u *unit, line string, lineno int) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case ".entry":
		if len(fields) != 2 {
			return lineErrorf(lineno, ".entry takes one argument")
		}
		if index, err := strconv.Atoi(fields[1]); err == nil {
			u.code.SetEntryPoint(index)
		} else {
			u.entryLabel = fields[1]
		}
		return nil
	case ".locals", ".stack":
		if len(fields) != 2 {
			return lineErrorf(lineno, "%s takes one argument", fields[0])
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 0 {
			return lineErrorf(lineno, "%s requires a non-negative count, got %q",
				fields[0], fields[1])
		}
		if fields[0] == ".locals" {
			u.code.SetLocalCount(n)
		} else {
			u.code.SetMaxStackDepth(n)
		}
		return nil
	case ".const":
		rest := strings.TrimSpace(line[len(".const"):])
		sep := strings.IndexAny(rest, " \t")
		if sep < 0 {
			return lineErrorf(lineno, ".const takes a name and a literal")
		}
		name := rest[:sep]
		c, err := parseLiteral(a.symbols, strings.TrimSpace(rest[sep:]))
		if err != nil {
			return lineErrorf(lineno, "%v", err)
		}
		u.constants[name] = u.code.AddConstant(c)
		return nil
	default:
		return lineErrorf(lineno, "unknown directive %q", fields[0])
	}
}

func (a *Assembler) parseInstruction(u *unit, line string, lineno int) error {
	mnemonic, rest := line, ""
	if sep := strings.IndexAny(line, " \t"); sep >= 0 {
		mnemonic, rest = line[:sep], line[sep:]
	}
	opcode, ok := op.Lookup(strings.ToUpper(mnemonic))
	if !ok {
		return lineErrorf(lineno, "unknown mnemonic %q", mnemonic)
	}
	arg := strings.TrimSpace(rest)
	kind := op.GetInfo(opcode).Operand

	if kind == op.OperandNone {
		if arg != "" {
			return lineErrorf(lineno, "%s takes no operand", opcode)
		}
		u.code.Append(bytecode.NewInstruction(opcode, bytecode.NoOperand()))
		return nil
	}
	if arg == "" {
		return lineErrorf(lineno, "%s requires a %s operand", opcode, kind)
	}

	operand, deferred, err := a.parseOperand(u, kind, arg, lineno)
	if err != nil {
		return err
	}
	index := u.code.Append(bytecode.NewInstruction(opcode, operand))
	if deferred != "" {
		u.fixups = append(u.fixups, fixup{index: index, label: deferred, line: lineno})
	}
	return nil
}

// parseOperand resolves the operand text by kind. Jump operands naming
// a label are deferred: the instruction is emitted with a placeholder
// offset and patched once every label's position is known.
func (a *Assembler) parseOperand(u *unit, kind op.OperandKind, arg string, lineno int) (bytecode.Operand, string, error) {
	switch kind {
	case op.OperandU8, op.OperandU16, op.OperandU32:
		bits := map[op.OperandKind]int{
			op.OperandU8: 8, op.OperandU16: 16, op.OperandU32: 32,
		}[kind]
		n, err := strconv.ParseUint(arg, 10, bits)
		if err != nil {
			return bytecode.Operand{}, "", lineErrorf(lineno,
				"invalid %s operand %q", kind, arg)
		}
		switch kind {
		case op.OperandU8:
			return bytecode.U8Operand(uint8(n)), "", nil
		case op.OperandU16:
			return bytecode.U16Operand(uint16(n)), "", nil
		default:
			return bytecode.U32Operand(uint32(n)), "", nil
		}
	case op.OperandLocal:
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return bytecode.Operand{}, "", lineErrorf(lineno,
				"invalid local index %q", arg)
		}
		return bytecode.LocalOperand(n), "", nil
	case op.OperandConst:
		if index, ok := u.constants[arg]; ok {
			return bytecode.ConstOperand(index), "", nil
		}
		c, err := parseLiteral(a.symbols, arg)
		if err != nil {
			return bytecode.Operand{}, "", lineErrorf(lineno,
				"%q is neither a declared constant nor a literal", arg)
		}
		return bytecode.ConstOperand(u.code.AddConstant(c)), "", nil
	case op.OperandJump:
		if offset, err := strconv.Atoi(arg); err == nil &&
			(strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-")) {
			return bytecode.JumpOperand(offset), "", nil
		}
		return bytecode.JumpOperand(0), arg, nil
	case op.OperandSymbol:
		return bytecode.SymbolOperand(a.symbols.Intern(arg)), "", nil
	default:
		return bytecode.Operand{}, "", lineErrorf(lineno,
			"unsupported operand kind %s", kind)
	}
}

// parseLiteral parses a constant literal: a number, a quoted string,
// #t or #f, or 'name for a symbol.
func parseLiteral(symbols *object.SymbolTable, text string) (bytecode.Constant, error) {
	switch {
	case text == "#t":
		return bytecode.Boolean(true), nil
	case text == "#f":
		return bytecode.Boolean(false), nil
	case strings.HasPrefix(text, `"`):
		s, err := strconv.Unquote(text)
		if err != nil {
			return nil, fmt.Errorf("invalid string literal %s", text)
		}
		return bytecode.String(s), nil
	case strings.HasPrefix(text, "'"):
		name := text[1:]
		if name == "" {
			return nil, fmt.Errorf("empty symbol literal")
		}
		return bytecode.Symbol(symbols.Intern(name)), nil
	default:
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid literal %q", text)
		}
		return bytecode.Number(n), nil
	}
}

// stripComment removes a trailing ";" comment, respecting string
// literals, and trims whitespace.
func stripComment(line string) string {
	inString := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			if i == 0 || line[i-1] != '\\' {
				inString = !inString
			}
		case ';':
			if !inString {
				return strings.TrimSpace(line[:i])
			}
		}
	}
	return strings.TrimSpace(line)
}

func lineErrorf(lineno int, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", lineno, fmt.Sprintf(format, args...))
}
