package vm

import (
	"github.com/akasaka-miraina/lambdust-sub010/bytecode"
	"github.com/akasaka-miraina/lambdust-sub010/op"
)

// StepMode controls when OnStep callbacks are triggered.
type StepMode uint8

const (
	// StepAll calls OnStep for every instruction.
	// Use for: detailed tracing, instruction-level debugging.
	StepAll StepMode = iota

	// StepNone never calls OnStep.
	// Use for: observers that only need error events.
	StepNone

	// StepSampled calls OnStep every N instructions.
	// Use for: statistical CPU profiling.
	StepSampled

	// StepOnLine calls OnStep when the source location changes.
	// Use for: coverage tools, line-level debugging.
	StepOnLine
)

// ObserverConfig specifies what events an observer wants to receive.
// Use NewObserverConfig() to create configs with safe defaults.
type ObserverConfig struct {
	// StepMode controls OnStep callback frequency.
	StepMode StepMode

	// SampleInterval is the number of instructions between OnStep calls
	// when StepMode is StepSampled. Values <= 0 are treated as 1.
	// Ignored for other modes.
	SampleInterval int

	// ObserveCalls enables OnCall callbacks.
	ObserveCalls bool

	// ObserveReturns enables OnReturn callbacks.
	ObserveReturns bool

	// ObserveErrors enables OnError callbacks.
	ObserveErrors bool
}

// NewObserverConfig creates a config with safe defaults: calls,
// returns, and errors are all observed.
func NewObserverConfig(mode StepMode) ObserverConfig {
	return ObserverConfig{
		StepMode:       mode,
		SampleInterval: 1000,
		ObserveCalls:   true,
		ObserveReturns: true,
		ObserveErrors:  true,
	}
}

// NormalizeConfig validates and clamps config values. It does not set
// defaults for the Observe flags; use NewObserverConfig for those.
func NormalizeConfig(cfg ObserverConfig) ObserverConfig {
	if cfg.StepMode == StepSampled && cfg.SampleInterval <= 0 {
		cfg.SampleInterval = 1
	}
	return cfg
}

// Observer is an interface for observing execution events.
// Implementations can be used for profiling, debugging, code coverage,
// or detailed execution tracing without modifying the engine core.
//
// All methods are optional - implementations can embed NoOpObserver to
// provide default no-op implementations for methods they don't need.
//
// Observer methods are called synchronously during execution.
// Implementations should be fast to avoid impacting performance.
//
// OnCall and OnReturn are reserved for the function call opcodes, which
// are outside the executable subset today; no event reaches them yet.
type Observer interface {
	// Config returns the observer's configuration.
	// Called once when the observer is attached to the machine.
	Config() ObserverConfig

	// OnStep is called based on the StepMode in the observer's config.
	// Returns false to halt execution immediately.
	OnStep(event StepEvent) bool

	// OnCall is called when a function is invoked (if ObserveCalls is true).
	// Returns false to halt execution immediately.
	OnCall(event CallEvent) bool

	// OnReturn is called when a function returns (if ObserveReturns is true).
	// Returns false to halt execution immediately.
	OnReturn(event ReturnEvent) bool

	// OnError is called when execution fails (if ObserveErrors is true),
	// just before the error result is returned.
	OnError(event ErrorEvent)
}

// StepEvent contains information about a single instruction step.
type StepEvent struct {
	// IP is the instruction pointer (index into the instruction array).
	IP int

	// Opcode is the operation being executed.
	Opcode op.Code

	// OpcodeName is the human-readable name of the opcode.
	OpcodeName string

	// Location is the source location of the instruction.
	Location bytecode.SourceLocation

	// StackDepth is the current depth of the value stack.
	StackDepth int
}

// CallEvent contains information about a function call.
type CallEvent struct {
	// FunctionName is the name of the function being called.
	// Anonymous functions will have an empty name.
	FunctionName string

	// ArgCount is the number of arguments passed to the function.
	ArgCount int

	// Location is the source location of the call site.
	Location bytecode.SourceLocation
}

// ReturnEvent contains information about a function return.
type ReturnEvent struct {
	// FunctionName is the name of the function returning.
	FunctionName string

	// Location is the source location of the return.
	Location bytecode.SourceLocation
}

// ErrorEvent contains information about an execution failure.
type ErrorEvent struct {
	// IP is the instruction pointer at the failure.
	IP int

	// Location is the source location of the failing instruction.
	Location bytecode.SourceLocation

	// Err is the error that ends the run.
	Err error
}

// NoOpObserver is an Observer implementation that does nothing.
// Embed this in your observer to provide default implementations for
// methods you don't need.
//
// Important: NoOpObserver uses StepAll mode by default with calls,
// returns, and errors observed. Override Config() in your observer to
// use a different mode.
type NoOpObserver struct{}

func (NoOpObserver) Config() ObserverConfig {
	return NewObserverConfig(StepAll)
}

func (NoOpObserver) OnStep(StepEvent) bool     { return true }
func (NoOpObserver) OnCall(CallEvent) bool     { return true }
func (NoOpObserver) OnReturn(ReturnEvent) bool { return true }
func (NoOpObserver) OnError(ErrorEvent)        {}

// Ensure NoOpObserver implements Observer.
var _ Observer = NoOpObserver{}
