package vm

import (
	"fmt"

	"github.com/akasaka-miraina/lambdust-sub010/object"
)

// State is the run state of a VirtualMachine. A machine starts Ready,
// moves to Running inside Execute, and finishes in one of the terminal
// states. Reset returns a finished machine to Ready.
type State uint8

const (
	StateReady State = iota
	StateRunning
	StateCompleted
	StateError
	StateYielded
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateError:
		return "error"
	case StateYielded:
		return "yielded"
	default:
		return "unknown"
	}
}

// ResultKind tags an ExecutionResult.
type ResultKind uint8

const (
	// ResultCompleted carries the final value of a normal run.
	ResultCompleted ResultKind = iota

	// ResultError carries the error of a failed run. Runtime failures
	// always arrive this way, never as a panic.
	ResultError

	// ResultYielded carries the value of a cooperative suspension.
	// Nothing produces it today since yield has no handler, but the
	// result shape supports it for future continuation work.
	ResultYielded
)

func (k ResultKind) String() string {
	switch k {
	case ResultCompleted:
		return "completed"
	case ResultError:
		return "error"
	case ResultYielded:
		return "yielded"
	default:
		return "unknown"
	}
}

// ExecutionResult is the tagged outcome of one Execute call: a final
// value, a caught error, or a yielded value.
type ExecutionResult struct {
	kind  ResultKind
	value object.Object
	err   error
}

// CompletedResult returns a normal completion carrying the given value.
func CompletedResult(value object.Object) ExecutionResult {
	return ExecutionResult{kind: ResultCompleted, value: value}
}

// ErrorResult returns a failed outcome carrying the given error.
func ErrorResult(err error) ExecutionResult {
	return ExecutionResult{kind: ResultError, err: err}
}

// YieldedResult returns a suspended outcome carrying the given value.
func YieldedResult(value object.Object) ExecutionResult {
	return ExecutionResult{kind: ResultYielded, value: value}
}

// Kind returns the result tag.
func (r ExecutionResult) Kind() ResultKind {
	return r.kind
}

// Value returns the completed or yielded value. It is nil for error
// results.
func (r ExecutionResult) Value() object.Object {
	return r.value
}

// Err returns the error of a failed run, or nil.
func (r ExecutionResult) Err() error {
	return r.err
}

func (r ExecutionResult) String() string {
	switch r.kind {
	case ResultError:
		return fmt.Sprintf("error: %v", r.err)
	case ResultYielded:
		if r.value == nil {
			return "yielded"
		}
		return fmt.Sprintf("yielded: %s", r.value.Inspect())
	default:
		if r.value == nil {
			return "completed"
		}
		return fmt.Sprintf("completed: %s", r.value.Inspect())
	}
}
