// Package vm provides a VirtualMachine that executes compiled Lambdust
// bytecode.
package vm

import (
	"fmt"
	"time"

	"github.com/akasaka-miraina/lambdust-sub010/bytecode"
	"github.com/akasaka-miraina/lambdust-sub010/errz"
	"github.com/akasaka-miraina/lambdust-sub010/object"
	"github.com/akasaka-miraina/lambdust-sub010/op"
	"github.com/rs/zerolog"
)

const (
	DefaultInitialStackSize = 64
	DefaultMaxStackSize     = 1024
)

// Config controls sizing and instrumentation of a machine.
type Config struct {
	// InitialStackSize is the stack capacity allocated up front.
	InitialStackSize int

	// MaxStackSize is the depth at which execution fails with a stack
	// overflow error.
	MaxStackSize int

	// EnableGC is informational: the engine performs no collection
	// itself, so GCTriggers stays 0 either way. A runtime embedding
	// this machine reads the flag when wiring its own collector.
	EnableGC bool

	// GCThreshold is the allocation threshold an embedding collector
	// would use. Unused by this engine.
	GCThreshold int

	// EnableProfiling logs an execution summary after every run.
	EnableProfiling bool

	// EnableDebug logs a trace line per instruction.
	EnableDebug bool
}

// DefaultConfig returns the standard machine configuration.
func DefaultConfig() Config {
	return Config{
		InitialStackSize: DefaultInitialStackSize,
		MaxStackSize:     DefaultMaxStackSize,
	}
}

// VirtualMachine executes one bytecode unit at a time on a value
// stack. Each instance is single-threaded with no internal locking;
// independent instances may run concurrently since compiled units are
// read-only during execution. A machine runs Ready → Running → one of
// the terminal states, and must be Reset before the next Execute.
type VirtualMachine struct {
	config           Config
	state            State
	code             *bytecode.Bytecode
	ip               int
	stack            []object.Object
	frames           []frame
	globals          map[string]object.Object
	initialGlobals   map[string]object.Object
	symbols          *object.SymbolTable
	stats            Stats
	observer         Observer
	observerConfig   ObserverConfig
	sampleCounter    int
	lastStepLocation bytecode.SourceLocation
	logger           zerolog.Logger
}

// New creates a Virtual Machine.
func New(options ...Option) *VirtualMachine {
	vm := &VirtualMachine{
		config:         DefaultConfig(),
		initialGlobals: map[string]object.Object{},
		symbols:        object.NewSymbolTable(),
		logger:         zerolog.Nop(),
	}
	for _, opt := range options {
		opt(vm)
	}
	if vm.config.MaxStackSize <= 0 {
		vm.config.MaxStackSize = DefaultMaxStackSize
	}
	if vm.config.InitialStackSize < 0 {
		vm.config.InitialStackSize = 0
	}
	if vm.config.InitialStackSize > vm.config.MaxStackSize {
		vm.config.InitialStackSize = vm.config.MaxStackSize
	}
	vm.stack = make([]object.Object, 0, vm.config.InitialStackSize)
	vm.globals = copyGlobals(vm.initialGlobals)
	if vm.observer != nil {
		vm.observerConfig = NormalizeConfig(vm.observer.Config())
	}
	return vm
}

// State returns the machine's run state.
func (vm *VirtualMachine) State() State {
	return vm.state
}

// Global returns the current binding for name.
func (vm *VirtualMachine) Global(name string) (object.Object, bool) {
	value, ok := vm.globals[name]
	return value, ok
}

// Execute runs the unit from its entry point to a terminal outcome,
// resolving constants against the unit's own pool. Runtime failures
// arrive inside the ExecutionResult; the error return is reserved for
// misuse, such as calling Execute on a machine that is not Ready.
func (vm *VirtualMachine) Execute(code *bytecode.Bytecode) (ExecutionResult, error) {
	if code == nil {
		return ExecutionResult{}, fmt.Errorf("no bytecode provided")
	}
	if vm.state != StateReady {
		return ExecutionResult{}, fmt.Errorf(
			"vm is not ready (state %q); call Reset between runs", vm.state)
	}
	vm.state = StateRunning
	vm.code = code
	vm.ip = code.EntryPoint()
	vm.frames = append(vm.frames[:0], newFrame(-1, code.LocalCount(), "<main>"))

	start := time.Now()
	result := vm.run()
	vm.stats.ExecutionTime += time.Since(start)

	switch result.Kind() {
	case ResultCompleted:
		vm.state = StateCompleted
	case ResultYielded:
		vm.state = StateYielded
	default:
		vm.state = StateError
	}

	if vm.config.EnableProfiling {
		vm.logger.Info().
			Int("instructions", vm.stats.InstructionsExecuted).
			Int("max_stack_depth", vm.stats.MaxStackDepth).
			Int("optimized_ops", vm.stats.OptimizedOps).
			Dur("execution_time", vm.stats.ExecutionTime).
			Str("state", vm.state.String()).
			Msg("execution profile")
	}
	return result, nil
}

// Reset returns the machine to Ready: the value stack and locals are
// cleared, statistics zeroed, and the global bindings restored to the
// configured initial set.
func (vm *VirtualMachine) Reset() {
	for i := range vm.stack {
		vm.stack[i] = nil
	}
	vm.stack = vm.stack[:0]
	vm.frames = nil
	vm.globals = copyGlobals(vm.initialGlobals)
	vm.code = nil
	vm.ip = 0
	vm.stats = Stats{}
	vm.sampleCounter = 0
	vm.lastStepLocation = bytecode.SourceLocation{}
	vm.state = StateReady
}

// run executes the fetch-dispatch loop to a terminal result. A panic
// escaping a handler is contained and degraded to an error result, so
// execution is total over arbitrary input.
func (vm *VirtualMachine) run() (result ExecutionResult) {
	defer func() {
		if r := recover(); r != nil {
			result = ErrorResult(vm.runtimeError(errz.ErrRuntime, "internal error: %v", r))
		}
	}()

	for {
		if vm.ip < 0 || vm.ip >= vm.code.InstructionCount() {
			return vm.fail(vm.runtimeError(errz.ErrRuntime,
				"instruction pointer %d out of bounds [0, %d)",
				vm.ip, vm.code.InstructionCount()))
		}
		instr := vm.code.InstructionAt(vm.ip)

		if vm.config.EnableDebug {
			vm.logger.Trace().
				Int("ip", vm.ip).
				Str("op", instr.Opcode.String()).
				Int("stack_depth", len(vm.stack)).
				Msg("step")
		}

		if vm.observer != nil && vm.shouldObserveStep(instr) {
			event := StepEvent{
				IP:         vm.ip,
				Opcode:     instr.Opcode,
				OpcodeName: op.GetInfo(instr.Opcode).Name,
				Location:   instr.Location,
				StackDepth: len(vm.stack),
			}
			if !vm.observer.OnStep(event) {
				return vm.fail(vm.runtimeError(errz.ErrRuntime,
					"execution halted by observer"))
			}
		}

		step := vm.dispatch(instr)
		vm.stats.InstructionsExecuted++
		if depth := len(vm.stack); depth > vm.stats.MaxStackDepth {
			vm.stats.MaxStackDepth = depth
		}
		if len(vm.stack) > vm.config.MaxStackSize {
			return vm.fail(vm.stackError("stack overflow: depth %d exceeds maximum %d",
				len(vm.stack), vm.config.MaxStackSize))
		}

		switch step.kind {
		case stepContinue:
			vm.ip++
		case stepJump:
			vm.ip = step.target
		case stepReturn:
			return CompletedResult(step.value)
		case stepError:
			return vm.fail(step.err)
		case stepYield:
			return YieldedResult(step.value)
		}
	}
}

// dispatch routes the instruction to its handler. Only a subset of the
// instruction set has executable semantics here; everything else,
// including any future dispatch gap, reports an unimplemented opcode
// error instead of panicking.
func (vm *VirtualMachine) dispatch(instr bytecode.Instruction) stepResult {
	switch instr.Opcode {
	case op.LoadConst:
		return vm.execLoadConst(instr)
	case op.LoadLocal:
		return vm.execLoadLocal(instr)
	case op.LoadGlobal:
		return vm.execLoadGlobal(instr)
	case op.Pop:
		return vm.execPop()
	case op.Add, op.Sub, op.Mul:
		return vm.execArithmetic(instr.Opcode)
	case op.Cons:
		return vm.execCons()
	case op.Car:
		return vm.execCar()
	case op.Cdr:
		return vm.execCdr()
	case op.Halt:
		return vm.execHalt()
	default:
		return errorStep(vm.unimplementedError(instr))
	}
}

func (vm *VirtualMachine) execLoadConst(instr bytecode.Instruction) stepResult {
	index, ok := instr.Operand.ConstIndex()
	if !ok {
		return errorStep(vm.valueError("%s carries no constant operand", instr.Opcode))
	}
	c, ok := vm.code.Constants().Get(index)
	if !ok {
		return errorStep(vm.valueError("constant index %d out of range [0, %d)",
			index, vm.code.Constants().Len()))
	}
	value, err := vm.constantToValue(c)
	if err != nil {
		return errorStep(err)
	}
	vm.push(value)
	return continueStep()
}

// constantToValue converts a pool constant to a runtime value. Nested
// code blocks and embedded runtime values are not loadable in this
// execution path; the closure opcodes will change that.
func (vm *VirtualMachine) constantToValue(c bytecode.Constant) (object.Object, error) {
	switch c := c.(type) {
	case bytecode.Number:
		return object.NewFloat(float64(c)), nil
	case bytecode.String:
		return object.NewString(string(c)), nil
	case bytecode.Boolean:
		return object.NewBool(bool(c)), nil
	case bytecode.Symbol:
		id := object.SymbolID(c)
		name, ok := vm.symbols.NameOf(id)
		if !ok {
			return nil, vm.nameError("symbol id %d is not interned", id)
		}
		return object.NewSymbol(id, name), nil
	case bytecode.Code:
		return nil, vm.valueError("code constants are not loadable in this execution path")
	case bytecode.Value:
		return nil, vm.valueError("embedded runtime values are not loadable in this execution path")
	default:
		return nil, vm.valueError("unsupported constant %s", c.Inspect())
	}
}

func (vm *VirtualMachine) execLoadLocal(instr bytecode.Instruction) stepResult {
	index, ok := instr.Operand.LocalIndex()
	if !ok {
		return errorStep(vm.valueError("%s carries no local operand", instr.Opcode))
	}
	locals := vm.currentFrame().locals
	if index < 0 || index >= len(locals) {
		return errorStep(vm.valueError("local index %d out of range [0, %d)",
			index, len(locals)))
	}
	vm.push(locals[index])
	return continueStep()
}

// execLoadGlobal resolves the symbol operand to its interned name, then
// the name to its binding.
func (vm *VirtualMachine) execLoadGlobal(instr bytecode.Instruction) stepResult {
	id, ok := instr.Operand.SymbolID()
	if !ok {
		return errorStep(vm.valueError("%s carries no symbol operand", instr.Opcode))
	}
	name, ok := vm.symbols.NameOf(id)
	if !ok {
		return errorStep(vm.nameError("symbol id %d is not interned", id))
	}
	value, ok := vm.globals[name]
	if !ok {
		return errorStep(vm.nameError("unbound global %q", name))
	}
	vm.push(value)
	return continueStep()
}

func (vm *VirtualMachine) execPop() stepResult {
	if len(vm.stack) == 0 {
		return errorStep(vm.stackError("stack underflow executing %s", op.Pop))
	}
	vm.pop()
	return continueStep()
}

func (vm *VirtualMachine) execArithmetic(opcode op.Code) stepResult {
	if len(vm.stack) < 2 {
		return errorStep(vm.stackError("stack underflow executing %s", opcode))
	}
	right := vm.pop()
	left := vm.pop()
	l, ok := object.AsFloat(left)
	if !ok {
		return errorStep(vm.typeError("%s requires numbers, got %s", opcode, left.Type()))
	}
	r, ok := object.AsFloat(right)
	if !ok {
		return errorStep(vm.typeError("%s requires numbers, got %s", opcode, right.Type()))
	}
	var value float64
	switch opcode {
	case op.Add:
		value = l + r
	case op.Sub:
		value = l - r
	default:
		value = l * r
	}
	vm.push(object.NewFloat(value))
	vm.stats.OptimizedOps++
	return continueStep()
}

func (vm *VirtualMachine) execCons() stepResult {
	if len(vm.stack) < 2 {
		return errorStep(vm.stackError("stack underflow executing %s", op.Cons))
	}
	cdr := vm.pop()
	car := vm.pop()
	vm.push(object.NewPair(car, cdr))
	return continueStep()
}

func (vm *VirtualMachine) execCar() stepResult {
	if len(vm.stack) == 0 {
		return errorStep(vm.stackError("stack underflow executing %s", op.Car))
	}
	value := vm.pop()
	pair, ok := value.(*object.Pair)
	if !ok {
		return errorStep(vm.typeError("%s requires a pair, got %s", op.Car, value.Type()))
	}
	vm.push(pair.Car())
	return continueStep()
}

func (vm *VirtualMachine) execCdr() stepResult {
	if len(vm.stack) == 0 {
		return errorStep(vm.stackError("stack underflow executing %s", op.Cdr))
	}
	value := vm.pop()
	pair, ok := value.(*object.Pair)
	if !ok {
		return errorStep(vm.typeError("%s requires a pair, got %s", op.Cdr, value.Type()))
	}
	vm.push(pair.Cdr())
	return continueStep()
}

// execHalt finishes the run with the top of stack, or the unspecified
// value when the stack is empty.
func (vm *VirtualMachine) execHalt() stepResult {
	if len(vm.stack) == 0 {
		return returnStep(object.Unspecified)
	}
	return returnStep(vm.pop())
}

func (vm *VirtualMachine) push(obj object.Object) {
	vm.stack = append(vm.stack, obj)
}

// pop removes and returns the top of stack. Callers check depth first.
func (vm *VirtualMachine) pop() object.Object {
	top := vm.stack[len(vm.stack)-1]
	vm.stack[len(vm.stack)-1] = nil
	vm.stack = vm.stack[:len(vm.stack)-1]
	return top
}

// fail notifies the observer and wraps err in an error result.
func (vm *VirtualMachine) fail(err error) ExecutionResult {
	if vm.observer != nil && vm.observerConfig.ObserveErrors {
		vm.observer.OnError(ErrorEvent{
			IP:       vm.ip,
			Location: vm.currentLocation(),
			Err:      err,
		})
	}
	return ErrorResult(err)
}

func (vm *VirtualMachine) shouldObserveStep(instr bytecode.Instruction) bool {
	switch vm.observerConfig.StepMode {
	case StepAll:
		return true
	case StepSampled:
		vm.sampleCounter++
		if vm.sampleCounter >= vm.observerConfig.SampleInterval {
			vm.sampleCounter = 0
			return true
		}
		return false
	case StepOnLine:
		// Instructions without source locations cannot be grouped by
		// line; observe each one individually.
		if instr.Location.IsZero() {
			return true
		}
		if instr.Location == vm.lastStepLocation {
			return false
		}
		vm.lastStepLocation = instr.Location
		return true
	default:
		return false
	}
}

// currentLocation returns the source location of the current
// instruction.
func (vm *VirtualMachine) currentLocation() bytecode.SourceLocation {
	if vm.code == nil {
		return bytecode.SourceLocation{}
	}
	return vm.code.LocationAt(vm.ip)
}

// captureStack builds a stack trace from the call frames, innermost
// first. With the call opcodes unimplemented there is never more than
// the main frame.
func (vm *VirtualMachine) captureStack() []errz.StackFrame {
	if vm.code == nil || len(vm.frames) == 0 {
		return nil
	}
	trace := make([]errz.StackFrame, 0, len(vm.frames))
	location := errz.SourceLocation(vm.currentLocation())
	for i := len(vm.frames) - 1; i >= 0; i-- {
		trace = append(trace, errz.StackFrame{
			Function: vm.frames[i].functionName,
			Location: location,
		})
		location = errz.SourceLocation{}
	}
	return trace
}

// runtimeError creates a StructuredError with source location and stack
// trace.
func (vm *VirtualMachine) runtimeError(kind errz.ErrorKind, format string, args ...any) *errz.StructuredError {
	return errz.Newf(kind, format, args...).
		WithLocation(errz.SourceLocation(vm.currentLocation())).
		WithStack(vm.captureStack())
}

func (vm *VirtualMachine) typeError(format string, args ...any) *errz.StructuredError {
	return vm.runtimeError(errz.ErrType, format, args...)
}

func (vm *VirtualMachine) nameError(format string, args ...any) *errz.StructuredError {
	return vm.runtimeError(errz.ErrName, format, args...)
}

func (vm *VirtualMachine) valueError(format string, args ...any) *errz.StructuredError {
	return vm.runtimeError(errz.ErrValue, format, args...)
}

func (vm *VirtualMachine) stackError(format string, args ...any) *errz.StructuredError {
	return vm.runtimeError(errz.ErrStack, format, args...)
}

func (vm *VirtualMachine) unimplementedError(instr bytecode.Instruction) *errz.StructuredError {
	return vm.runtimeError(errz.ErrUnimplemented,
		"%s (%d) has no handler in this engine", instr.Opcode, uint16(instr.Opcode))
}

func copyGlobals(src map[string]object.Object) map[string]object.Object {
	dst := make(map[string]object.Object, len(src))
	for name, value := range src {
		dst[name] = value
	}
	return dst
}
