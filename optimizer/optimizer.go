// Package optimizer rewrites bytecode units to equivalent, cheaper
// forms. Passes run in rounds until a full round changes nothing or the
// configured round budget is exhausted, so enabling an aggressive pass
// can never loop forever.
package optimizer

import (
	"time"

	"github.com/akasaka-miraina/lambdust-sub010/bytecode"
	"github.com/rs/zerolog"
)

// Config toggles individual optimization passes and bounds the fixpoint
// loop.
type Config struct {
	// ConstantFolding replaces an adjacent LOAD_CONST, LOAD_CONST, ADD
	// triple over numeric constants with a single load of the sum.
	ConstantFolding bool

	// DeadCodeElimination removes instructions unreachable from the
	// entry point, recomputing jump offsets for the survivors.
	DeadCodeElimination bool

	// InstructionCombining runs the peephole patterns: POP followed by
	// LOAD_CONST drops the POP, DUP followed by POP drops both, and
	// NOP and marker instructions are dropped wherever they appear.
	InstructionCombining bool

	// TailCallOptimization rewrites the first adjacent CALL, RETURN
	// pair into a single TAIL_CALL per pass invocation. The fixpoint
	// loop converts remaining pairs on later rounds.
	TailCallOptimization bool

	// RegisterAllocation is a placeholder for a future register-based
	// backend. The pass is declared but never changes anything.
	RegisterAllocation bool

	// MaxPasses bounds the number of optimization rounds.
	MaxPasses int
}

// DefaultConfig enables every implemented pass with a round budget of
// ten. RegisterAllocation stays off until it does something.
func DefaultConfig() Config {
	return Config{
		ConstantFolding:      true,
		DeadCodeElimination:  true,
		InstructionCombining: true,
		TailCallOptimization: true,
		RegisterAllocation:   false,
		MaxPasses:            10,
	}
}

// Optimizer applies the configured passes to bytecode units. Statistics
// accumulate across Optimize calls until ResetStats. Not safe for
// concurrent use.
type Optimizer struct {
	config Config
	stats  Stats
	logger zerolog.Logger
}

// Option is a configuration function for an Optimizer.
type Option func(*Optimizer)

// WithConfig sets the pass configuration.
func WithConfig(config Config) Option {
	return func(o *Optimizer) {
		o.config = config
	}
}

// WithLogger sets the logger used for per-pass trace output.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Optimizer) {
		o.logger = logger
	}
}

// New creates an Optimizer with the default configuration, which the
// given options may adjust.
func New(opts ...Option) *Optimizer {
	o := &Optimizer{
		config: DefaultConfig(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.config.MaxPasses < 1 {
		o.config.MaxPasses = 1
	}
	return o
}

// Config returns the active pass configuration.
func (o *Optimizer) Config() Config {
	return o.config
}

// Optimize rewrites the unit in place and returns it. Each round runs
// the enabled passes in a fixed order; the loop stops early once a full
// round changes nothing. Optimizing an already optimized unit is a
// no-op.
func (o *Optimizer) Optimize(code *bytecode.Bytecode) *bytecode.Bytecode {
	start := time.Now()
	instructions := code.Instructions()
	entry := code.EntryPoint()
	before := len(instructions)
	o.stats.InstructionsBefore += before

	for round := 0; round < o.config.MaxPasses; round++ {
		changed := false

		if o.config.ConstantFolding {
			var n int
			instructions, entry, n = o.foldConstants(instructions, entry, code)
			if n > 0 {
				changed = true
				o.stats.PassesApplied++
				o.stats.ConstantsFolded += n
				o.logger.Trace().Int("round", round).Int("folded", n).
					Msg("constant folding")
			}
		}

		if o.config.DeadCodeElimination {
			var n int
			instructions, entry, n = o.eliminateDeadCode(instructions, entry)
			if n > 0 {
				changed = true
				o.stats.PassesApplied++
				o.stats.DeadInstructionsRemoved += n
				o.logger.Trace().Int("round", round).Int("removed", n).
					Msg("dead code elimination")
			}
		}

		if o.config.InstructionCombining {
			var n int
			instructions, entry, n = o.combineInstructions(instructions, entry)
			if n > 0 {
				changed = true
				o.stats.PassesApplied++
				o.stats.InstructionsCombined += n
				o.logger.Trace().Int("round", round).Int("combined", n).
					Msg("instruction combining")
			}
		}

		if o.config.TailCallOptimization {
			var n int
			instructions, entry, n = o.optimizeTailCalls(instructions, entry)
			if n > 0 {
				changed = true
				o.stats.PassesApplied++
				o.stats.TailCallsOptimized += n
				o.logger.Trace().Int("round", round).Msg("tail call optimization")
			}
		}

		if o.config.RegisterAllocation {
			o.allocateRegisters(instructions)
		}

		if !changed {
			break
		}
	}

	code.SetInstructions(instructions)
	code.SetEntryPoint(entry)

	after := len(instructions)
	o.stats.InstructionsAfter += after
	if eliminated := before - after; eliminated > 0 {
		o.stats.InstructionsEliminated += eliminated
		o.stats.EstimatedBytesSaved += eliminated * bytecode.InstructionSizeEstimate
	}
	o.stats.OptimizationTime += time.Since(start)

	o.logger.Debug().
		Int("instructions_before", before).
		Int("instructions_after", after).
		Msg("optimization complete")
	return code
}

// allocateRegisters is a declared placeholder: the engine has no
// register backend yet, so the pass inspects nothing and changes
// nothing.
func (o *Optimizer) allocateRegisters(instructions []bytecode.Instruction) {
	o.logger.Trace().Msg("register allocation is a placeholder pass")
}
