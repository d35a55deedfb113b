package vm

import "time"

// Stats reports execution activity for one machine. Counters accumulate
// across Execute calls; Reset clears them.
type Stats struct {

	// InstructionsExecuted counts dispatched instructions.
	InstructionsExecuted int

	// ExecutionTime is the total wall-clock time spent inside Execute.
	ExecutionTime time.Duration

	// FunctionCalls counts invoked functions. The call opcodes are
	// outside the executable subset, so this stays 0 today.
	FunctionCalls int

	// MaxStackDepth is the deepest value stack observed.
	MaxStackDepth int

	// GCTriggers counts garbage collections requested by this machine.
	// The engine performs no collection itself, so it is always 0; the
	// field exists because callers aggregate it with runtime-level
	// collector stats.
	GCTriggers int

	// OptimizedOps counts arithmetic fast-path operations.
	OptimizedOps int
}

// GetStats returns a snapshot of the accumulated counters. Mutating the
// returned value has no effect on the machine.
func (vm *VirtualMachine) GetStats() Stats {
	return vm.stats
}
