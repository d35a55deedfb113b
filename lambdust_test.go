package lambdust

import (
	"testing"

	"github.com/akasaka-miraina/lambdust-sub010/errz"
	"github.com/akasaka-miraina/lambdust-sub010/object"
	"github.com/akasaka-miraina/lambdust-sub010/optimizer"
	"github.com/akasaka-miraina/lambdust-sub010/vm"
	"github.com/stretchr/testify/require"
)

func TestRunArithmetic(t *testing.T) {
	value, err := Run(`
	LOAD_CONST 10
	LOAD_CONST 5
	ADD
	HALT
	`)
	require.NoError(t, err)
	require.Equal(t, object.NewFloat(15), value)
}

func TestRunSubtraction(t *testing.T) {
	value, err := Run(`
	LOAD_CONST 10
	LOAD_CONST 3
	SUB
	HALT
	`)
	require.NoError(t, err)
	require.Equal(t, object.NewFloat(7), value)
}

func TestRunListOps(t *testing.T) {
	value, err := Run(`
	LOAD_CONST 1
	LOAD_CONST 2
	CONS
	CAR
	HALT
	`)
	require.NoError(t, err)
	require.Equal(t, object.NewFloat(1), value)
}

func TestRunWithGlobals(t *testing.T) {
	value, err := Run(`
	LOAD_GLOBAL answer
	HALT
	`, WithGlobals(map[string]object.Object{
		"answer": object.NewFloat(42),
	}))
	require.NoError(t, err)
	require.Equal(t, object.NewFloat(42), value)
}

func TestRunRuntimeError(t *testing.T) {
	_, err := Run(`
	ADD
	HALT
	`)
	require.Error(t, err)
	require.True(t, errz.IsKind(err, errz.ErrStack))
}

func TestRunAssemblyError(t *testing.T) {
	_, err := Run(`BOGUS`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown mnemonic")
}

func TestRunWithoutOptimization(t *testing.T) {
	// DUP on the executable-subset boundary: the peephole pass would
	// delete the DUP, POP pair; without optimization the DUP executes
	// and reports unimplemented.
	source := `
	LOAD_CONST 1
	DUP
	POP
	HALT
	`
	value, err := Run(source)
	require.NoError(t, err)
	require.Equal(t, object.NewFloat(1), value)

	_, err = Run(source, WithoutOptimization())
	require.Error(t, err)
	require.True(t, errz.IsKind(err, errz.ErrUnimplemented))
}

func TestAssembleThenExecute(t *testing.T) {
	symbols := object.NewSymbolTable()
	code, err := Assemble(`
	LOAD_CONST "hello"
	HALT
	`, WithSymbols(symbols))
	require.NoError(t, err)

	result, err := Execute(code, WithSymbols(symbols))
	require.NoError(t, err)
	require.Equal(t, vm.ResultCompleted, result.Kind())
	require.Equal(t, object.NewString("hello"), result.Value())
}

func TestOptimizeFacade(t *testing.T) {
	code, err := Assemble(`
	LOAD_CONST 5
	LOAD_CONST 3
	ADD
	HALT
	`)
	require.NoError(t, err)

	optimized, stats := Optimize(code, WithOptimizerConfig(optimizer.DefaultConfig()))
	require.Equal(t, 2, optimized.InstructionCount())
	require.Equal(t, 2, stats.InstructionsEliminated)
}
