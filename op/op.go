// Package op defines the opcodes understood by the Lambdust bytecode
// engine: the compilation target of the Scheme front end and the
// instruction set executed by the virtual machine.
package op

// Code is an integer opcode that indicates an operation to execute.
// Codes are stable across releases and reserved in ranges by category,
// so a future binary encoder can rely on them.
type Code uint16

const (
	Invalid Code = 0

	// Stack
	Nop         Code = 1
	LoadConst   Code = 2
	LoadLocal   Code = 3
	StoreLocal  Code = 4
	LoadGlobal  Code = 5
	StoreGlobal Code = 6
	Pop         Code = 7
	Dup         Code = 8
	Swap        Code = 9

	// Arithmetic
	Add Code = 10
	Sub Code = 11
	Mul Code = 12
	Div Code = 13
	Mod Code = 14
	Neg Code = 15

	// Comparison
	Eq Code = 20
	Ne Code = 21
	Lt Code = 22
	Le Code = 23
	Gt Code = 24
	Ge Code = 25

	// Logical
	Not Code = 30
	And Code = 31
	Or  Code = 32

	// Control flow
	Jump        Code = 40
	JumpIfFalse Code = 41
	JumpIfTrue  Code = 42
	Call        Code = 43
	TailCall    Code = 44
	Return      Code = 45
	CallCC      Code = 46
	Yield       Code = 47

	// Pairs and lists
	Cons   Code = 60
	Car    Code = 61
	Cdr    Code = 62
	SetCar Code = 63
	SetCdr Code = 64

	// Vectors
	MakeVector Code = 70
	VectorRef  Code = 71
	VectorSet  Code = 72
	VectorLen  Code = 73

	// Type predicates
	IsNull    Code = 80
	IsPair    Code = 81
	IsNumber  Code = 82
	IsString  Code = 83
	IsSymbol  Code = 84
	IsBoolean Code = 85

	// Closures and continuations
	MakeClosure   Code = 90
	LoadCaptured  Code = 91
	StoreCaptured Code = 92

	// Markers (freely removable by the optimizer)
	DebugMarker   Code = 100
	ProfileMarker Code = 101

	// Halt
	Halt Code = 110
)

// OperandKind describes the single operand an opcode carries, if any.
// Each kind has a fixed encoded size so instruction widths are knowable
// without decoding.
type OperandKind uint8

const (
	OperandNone OperandKind = iota
	OperandU8
	OperandU16
	OperandU32
	OperandConst  // constant pool index
	OperandLocal  // local variable index
	OperandJump   // signed offset relative to the instruction's own index
	OperandSymbol // symbol identifier
)

// Size returns the encoded byte width of the operand kind.
func (k OperandKind) Size() int {
	switch k {
	case OperandNone:
		return 0
	case OperandU8:
		return 1
	case OperandU16:
		return 2
	case OperandU32:
		return 4
	case OperandConst:
		return 2
	case OperandLocal:
		return 2
	case OperandJump:
		return 4
	case OperandSymbol:
		return 4
	default:
		return 0
	}
}

// String returns a short name for the operand kind, as used in
// disassembly listings.
func (k OperandKind) String() string {
	switch k {
	case OperandNone:
		return "none"
	case OperandU8:
		return "u8"
	case OperandU16:
		return "u16"
	case OperandU32:
		return "u32"
	case OperandConst:
		return "const"
	case OperandLocal:
		return "local"
	case OperandJump:
		return "jump"
	case OperandSymbol:
		return "sym"
	default:
		return "invalid"
	}
}

// Info contains information about an opcode.
type Info struct {
	Code    Code
	Name    string
	Operand OperandKind
}

var infos = make([]Info, 256)

var byName = map[string]Code{}

func init() {
	type opInfo struct {
		op      Code
		name    string
		operand OperandKind
	}
	ops := []opInfo{
		{Add, "ADD", OperandNone},
		{And, "AND", OperandNone},
		{Call, "CALL", OperandU8},
		{CallCC, "CALL_CC", OperandNone},
		{Car, "CAR", OperandNone},
		{Cdr, "CDR", OperandNone},
		{Cons, "CONS", OperandNone},
		{DebugMarker, "DEBUG_MARKER", OperandU32},
		{Div, "DIV", OperandNone},
		{Dup, "DUP", OperandNone},
		{Eq, "EQ", OperandNone},
		{Ge, "GE", OperandNone},
		{Gt, "GT", OperandNone},
		{Halt, "HALT", OperandNone},
		{IsBoolean, "IS_BOOLEAN", OperandNone},
		{IsNull, "IS_NULL", OperandNone},
		{IsNumber, "IS_NUMBER", OperandNone},
		{IsPair, "IS_PAIR", OperandNone},
		{IsString, "IS_STRING", OperandNone},
		{IsSymbol, "IS_SYMBOL", OperandNone},
		{Jump, "JUMP", OperandJump},
		{JumpIfFalse, "JUMP_IF_FALSE", OperandJump},
		{JumpIfTrue, "JUMP_IF_TRUE", OperandJump},
		{Le, "LE", OperandNone},
		{LoadCaptured, "LOAD_CAPTURED", OperandU8},
		{LoadConst, "LOAD_CONST", OperandConst},
		{LoadGlobal, "LOAD_GLOBAL", OperandSymbol},
		{LoadLocal, "LOAD_LOCAL", OperandLocal},
		{Lt, "LT", OperandNone},
		{MakeClosure, "MAKE_CLOSURE", OperandConst},
		{MakeVector, "MAKE_VECTOR", OperandU16},
		{Mod, "MOD", OperandNone},
		{Mul, "MUL", OperandNone},
		{Ne, "NE", OperandNone},
		{Neg, "NEG", OperandNone},
		{Nop, "NOP", OperandNone},
		{Not, "NOT", OperandNone},
		{Or, "OR", OperandNone},
		{Pop, "POP", OperandNone},
		{ProfileMarker, "PROFILE_MARKER", OperandU32},
		{Return, "RETURN", OperandNone},
		{SetCar, "SET_CAR", OperandNone},
		{SetCdr, "SET_CDR", OperandNone},
		{StoreCaptured, "STORE_CAPTURED", OperandU8},
		{StoreGlobal, "STORE_GLOBAL", OperandSymbol},
		{StoreLocal, "STORE_LOCAL", OperandLocal},
		{Sub, "SUB", OperandNone},
		{Swap, "SWAP", OperandU8},
		{TailCall, "TAIL_CALL", OperandU8},
		{VectorLen, "VECTOR_LEN", OperandNone},
		{VectorRef, "VECTOR_REF", OperandNone},
		{VectorSet, "VECTOR_SET", OperandNone},
		{Yield, "YIELD", OperandNone},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Name:    o.name,
			Code:    o.op,
			Operand: o.operand,
		}
		byName[o.name] = o.op
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(op Code) Info {
	if int(op) >= len(infos) {
		return Info{}
	}
	return infos[op]
}

// Lookup resolves a mnemonic like "LOAD_CONST" to its opcode.
func Lookup(name string) (Code, bool) {
	c, ok := byName[name]
	return c, ok
}

// Valid reports whether the code names a known opcode.
func (c Code) Valid() bool {
	return GetInfo(c).Name != ""
}

// String returns the opcode mnemonic, or "INVALID" for unknown codes.
func (c Code) String() string {
	if info := GetInfo(c); info.Name != "" {
		return info.Name
	}
	return "INVALID"
}
