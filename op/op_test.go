package op

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo(LoadConst)
	require.Equal(t, "LOAD_CONST", info.Name)
	require.Equal(t, OperandConst, info.Operand)
	require.Equal(t, LoadConst, info.Code)
}

func TestGetInfoAllOpcodes(t *testing.T) {
	tests := []struct {
		code    Code
		name    string
		operand OperandKind
	}{
		{Nop, "NOP", OperandNone},
		{LoadConst, "LOAD_CONST", OperandConst},
		{LoadLocal, "LOAD_LOCAL", OperandLocal},
		{StoreLocal, "STORE_LOCAL", OperandLocal},
		{LoadGlobal, "LOAD_GLOBAL", OperandSymbol},
		{StoreGlobal, "STORE_GLOBAL", OperandSymbol},
		{Pop, "POP", OperandNone},
		{Dup, "DUP", OperandNone},
		{Swap, "SWAP", OperandU8},
		{Add, "ADD", OperandNone},
		{Sub, "SUB", OperandNone},
		{Mul, "MUL", OperandNone},
		{Div, "DIV", OperandNone},
		{Mod, "MOD", OperandNone},
		{Neg, "NEG", OperandNone},
		{Eq, "EQ", OperandNone},
		{Ne, "NE", OperandNone},
		{Lt, "LT", OperandNone},
		{Le, "LE", OperandNone},
		{Gt, "GT", OperandNone},
		{Ge, "GE", OperandNone},
		{Not, "NOT", OperandNone},
		{And, "AND", OperandNone},
		{Or, "OR", OperandNone},
		{Jump, "JUMP", OperandJump},
		{JumpIfFalse, "JUMP_IF_FALSE", OperandJump},
		{JumpIfTrue, "JUMP_IF_TRUE", OperandJump},
		{Call, "CALL", OperandU8},
		{TailCall, "TAIL_CALL", OperandU8},
		{Return, "RETURN", OperandNone},
		{CallCC, "CALL_CC", OperandNone},
		{Yield, "YIELD", OperandNone},
		{Cons, "CONS", OperandNone},
		{Car, "CAR", OperandNone},
		{Cdr, "CDR", OperandNone},
		{SetCar, "SET_CAR", OperandNone},
		{SetCdr, "SET_CDR", OperandNone},
		{MakeVector, "MAKE_VECTOR", OperandU16},
		{VectorRef, "VECTOR_REF", OperandNone},
		{VectorSet, "VECTOR_SET", OperandNone},
		{VectorLen, "VECTOR_LEN", OperandNone},
		{IsNull, "IS_NULL", OperandNone},
		{IsPair, "IS_PAIR", OperandNone},
		{IsNumber, "IS_NUMBER", OperandNone},
		{IsString, "IS_STRING", OperandNone},
		{IsSymbol, "IS_SYMBOL", OperandNone},
		{IsBoolean, "IS_BOOLEAN", OperandNone},
		{MakeClosure, "MAKE_CLOSURE", OperandConst},
		{LoadCaptured, "LOAD_CAPTURED", OperandU8},
		{StoreCaptured, "STORE_CAPTURED", OperandU8},
		{DebugMarker, "DEBUG_MARKER", OperandU32},
		{ProfileMarker, "PROFILE_MARKER", OperandU32},
		{Halt, "HALT", OperandNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := GetInfo(tt.code)
			require.Equal(t, tt.code, info.Code)
			require.Equal(t, tt.name, info.Name)
			require.Equal(t, tt.operand, info.Operand)
			require.True(t, tt.code.Valid())
			require.Equal(t, tt.name, tt.code.String())
		})
	}
}

func TestStableNumericCodes(t *testing.T) {
	// The numeric codes are a contract for future binary encoders and
	// must not drift between releases.
	require.Equal(t, Code(2), LoadConst)
	require.Equal(t, Code(7), Pop)
	require.Equal(t, Code(10), Add)
	require.Equal(t, Code(40), Jump)
	require.Equal(t, Code(43), Call)
	require.Equal(t, Code(44), TailCall)
	require.Equal(t, Code(45), Return)
	require.Equal(t, Code(60), Cons)
	require.Equal(t, Code(110), Halt)
}

func TestOperandKindSizes(t *testing.T) {
	tests := []struct {
		kind OperandKind
		size int
	}{
		{OperandNone, 0},
		{OperandU8, 1},
		{OperandU16, 2},
		{OperandU32, 4},
		{OperandConst, 2},
		{OperandLocal, 2},
		{OperandJump, 4},
		{OperandSymbol, 4},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			require.Equal(t, tt.size, tt.kind.Size())
		})
	}
}

func TestLookup(t *testing.T) {
	code, ok := Lookup("CAR")
	require.True(t, ok)
	require.Equal(t, Car, code)

	_, ok = Lookup("NO_SUCH_OP")
	require.False(t, ok)
}

func TestLookupArithmetic(t *testing.T) {
	// Every arithmetic mnemonic the VM dispatches must resolve by name,
	// or the assembler rejects code the VM can run.
	tests := []struct {
		name string
		code Code
	}{
		{"ADD", Add},
		{"SUB", Sub},
		{"MUL", Mul},
		{"DIV", Div},
		{"MOD", Mod},
		{"NEG", Neg},
	}
	for _, tt := range tests {
		code, ok := Lookup(tt.name)
		require.True(t, ok, tt.name)
		require.Equal(t, tt.code, code)
	}
}

func TestGetInfoInvalid(t *testing.T) {
	info := GetInfo(Invalid)
	require.Equal(t, Code(0), info.Code)
	require.Equal(t, "", info.Name)
	require.False(t, Invalid.Valid())
	require.Equal(t, "INVALID", Invalid.String())
	require.Equal(t, Info{}, GetInfo(Code(999)))
}
