package optimizer

import "time"

// Stats reports cumulative optimizer activity. Counters accumulate
// across every Optimize call on the same Optimizer until ResetStats.
type Stats struct {

	// PassesApplied counts pass executions that changed the unit. A
	// pass that runs but finds nothing to rewrite is not counted.
	PassesApplied int

	// InstructionsBefore sums the instruction counts of optimized
	// units as they arrived.
	InstructionsBefore int

	// InstructionsAfter sums the instruction counts of optimized
	// units as they left.
	InstructionsAfter int

	// InstructionsEliminated is the net number of instructions
	// removed across all units.
	InstructionsEliminated int

	// ConstantsFolded counts load/load/add triples rewritten into a
	// single load.
	ConstantsFolded int

	// DeadInstructionsRemoved counts unreachable instructions
	// discarded by dead code elimination.
	DeadInstructionsRemoved int

	// InstructionsCombined counts peephole matches, each of which
	// collapses or deletes a short instruction sequence.
	InstructionsCombined int

	// TailCallsOptimized counts call/return pairs rewritten into
	// tail calls.
	TailCallsOptimized int

	// OptimizationTime is the total wall-clock time spent inside
	// Optimize.
	OptimizationTime time.Duration

	// EstimatedBytesSaved approximates the memory reclaimed by
	// eliminated instructions.
	EstimatedBytesSaved int
}

// Stats returns a snapshot of the accumulated counters. Mutating the
// returned value has no effect on the optimizer.
func (o *Optimizer) Stats() Stats {
	return o.stats
}

// ResetStats zeroes the accumulated counters.
func (o *Optimizer) ResetStats() {
	o.stats = Stats{}
}
