// Package lambdust provides convenient top-level entry points for the
// Lambdust bytecode engine: assemble a textual unit, optimize it, and
// execute it on a virtual machine.
//
// Run ties the whole pipeline together:
//
//	value, err := lambdust.Run(`
//		LOAD_CONST 10
//		LOAD_CONST 5
//		ADD
//		HALT
//	`)
//
// The individual stages are exposed for callers that need to reuse a
// compiled unit or inspect intermediate results.
package lambdust

import (
	"github.com/akasaka-miraina/lambdust-sub010/asm"
	"github.com/akasaka-miraina/lambdust-sub010/bytecode"
	"github.com/akasaka-miraina/lambdust-sub010/object"
	"github.com/akasaka-miraina/lambdust-sub010/optimizer"
	"github.com/akasaka-miraina/lambdust-sub010/vm"
	"github.com/rs/zerolog"
)

// Option configures an engine pipeline invocation.
type Option func(*options)

type options struct {
	symbols         *object.SymbolTable
	globals         map[string]object.Object
	optimize        bool
	optimizerConfig optimizer.Config
	vmConfig        vm.Config
	observer        vm.Observer
	logger          zerolog.Logger
	loggerSet       bool
}

func collectOptions(opts ...Option) *options {
	o := &options{
		symbols:         object.NewSymbolTable(),
		globals:         map[string]object.Object{},
		optimize:        true,
		optimizerConfig: optimizer.DefaultConfig(),
		vmConfig:        vm.DefaultConfig(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithSymbols shares a symbol table across the pipeline stages and with
// the caller. By default each invocation gets a fresh table, which the
// stages of that invocation share internally.
func WithSymbols(symbols *object.SymbolTable) Option {
	return func(o *options) {
		o.symbols = symbols
	}
}

// WithGlobals provides the global bindings visible to executed code.
// Multiple WithGlobals options are additive; on a duplicate name the
// last value wins.
func WithGlobals(globals map[string]object.Object) Option {
	return func(o *options) {
		for name, value := range globals {
			o.globals[name] = value
		}
	}
}

// WithOptimizerConfig sets the optimization passes Run applies.
func WithOptimizerConfig(config optimizer.Config) Option {
	return func(o *options) {
		o.optimizerConfig = config
	}
}

// WithoutOptimization makes Run execute the unit exactly as assembled.
func WithoutOptimization() Option {
	return func(o *options) {
		o.optimize = false
	}
}

// WithVMConfig sets the virtual machine configuration.
func WithVMConfig(config vm.Config) Option {
	return func(o *options) {
		o.vmConfig = config
	}
}

// WithObserver sets an observer for VM execution events.
func WithObserver(observer vm.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithLogger sets the logger passed to the optimizer and the machine.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
		o.loggerSet = true
	}
}

func (o *options) vmOpts() []vm.Option {
	opts := []vm.Option{
		vm.WithConfig(o.vmConfig),
		vm.WithSymbols(o.symbols),
	}
	if len(o.globals) > 0 {
		opts = append(opts, vm.WithGlobals(o.globals))
	}
	if o.observer != nil {
		opts = append(opts, vm.WithObserver(o.observer))
	}
	if o.loggerSet {
		opts = append(opts, vm.WithLogger(o.logger))
	}
	return opts
}

// Assemble parses assembly text into a validated bytecode unit.
func Assemble(source string, opts ...Option) (*bytecode.Bytecode, error) {
	o := collectOptions(opts...)
	return asm.New(asm.WithSymbols(o.symbols)).Assemble(source)
}

// Optimize rewrites the unit with the configured passes and returns it
// along with the optimizer's statistics for the call.
func Optimize(code *bytecode.Bytecode, opts ...Option) (*bytecode.Bytecode, optimizer.Stats) {
	o := collectOptions(opts...)
	optOpts := []optimizer.Option{optimizer.WithConfig(o.optimizerConfig)}
	if o.loggerSet {
		optOpts = append(optOpts, optimizer.WithLogger(o.logger))
	}
	opt := optimizer.New(optOpts...)
	return opt.Optimize(code), opt.Stats()
}

// Execute runs an already compiled unit on a fresh machine and returns
// the tagged result.
func Execute(code *bytecode.Bytecode, opts ...Option) (vm.ExecutionResult, error) {
	o := collectOptions(opts...)
	return vm.New(o.vmOpts()...).Execute(code)
}

// Run assembles, validates, optimizes, and executes the source text,
// returning the final value. A runtime failure is returned as the
// error; a yielded outcome returns the yielded value.
func Run(source string, opts ...Option) (object.Object, error) {
	o := collectOptions(opts...)

	code, err := asm.New(asm.WithSymbols(o.symbols)).Assemble(source)
	if err != nil {
		return nil, err
	}

	if o.optimize {
		optOpts := []optimizer.Option{optimizer.WithConfig(o.optimizerConfig)}
		if o.loggerSet {
			optOpts = append(optOpts, optimizer.WithLogger(o.logger))
		}
		code = optimizer.New(optOpts...).Optimize(code)
	}

	result, err := vm.New(o.vmOpts()...).Execute(code)
	if err != nil {
		return nil, err
	}
	if result.Kind() == vm.ResultError {
		return nil, result.Err()
	}
	return result.Value(), nil
}
