package vm

import (
	"github.com/akasaka-miraina/lambdust-sub010/object"
	"github.com/rs/zerolog"
)

// Option is a configuration function for a Virtual Machine.
type Option func(*VirtualMachine)

// WithConfig sets the machine configuration.
func WithConfig(config Config) Option {
	return func(vm *VirtualMachine) {
		vm.config = config
	}
}

// WithGlobals provides the initial global bindings. Reset restores the
// globals map to this set.
func WithGlobals(globals map[string]object.Object) Option {
	return func(vm *VirtualMachine) {
		for name, value := range globals {
			vm.initialGlobals[name] = value
		}
	}
}

// WithSymbols sets the symbol table used to resolve the symbol
// identifiers carried by global-access instructions. The table must be
// the one the compiler interned names into.
func WithSymbols(symbols *object.SymbolTable) Option {
	return func(vm *VirtualMachine) {
		vm.symbols = symbols
	}
}

// WithObserver sets an observer for execution events. The observer
// receives callbacks for instruction steps and errors (and for calls
// and returns once the call opcodes gain handlers). This enables
// profilers, debuggers, and execution tracers without modifying the
// engine core.
//
// Observer methods are called synchronously during execution, so
// implementations should be fast to avoid impacting performance.
// Returning false from OnStep halts execution immediately.
func WithObserver(observer Observer) Option {
	return func(vm *VirtualMachine) {
		vm.observer = observer
	}
}

// WithLogger sets the logger used for debug tracing and profiling
// summaries.
func WithLogger(logger zerolog.Logger) Option {
	return func(vm *VirtualMachine) {
		vm.logger = logger
	}
}
