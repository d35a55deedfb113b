package vm

import "github.com/akasaka-miraina/lambdust-sub010/object"

// stepKind tags the outcome an opcode handler reports back to the
// dispatch loop.
type stepKind uint8

const (
	// stepContinue advances to the next instruction.
	stepContinue stepKind = iota

	// stepJump moves the instruction pointer to an absolute index.
	stepJump

	// stepReturn finishes the run with a value.
	stepReturn

	// stepError finishes the run with an error result.
	stepError

	// stepYield suspends the run with a value.
	stepYield
)

// stepResult is what every opcode handler returns. The loop applies the
// corresponding transition; handlers never touch the instruction
// pointer themselves.
type stepResult struct {
	kind   stepKind
	target int
	value  object.Object
	err    error
}

func continueStep() stepResult {
	return stepResult{kind: stepContinue}
}

// jumpStep transfers control to an absolute instruction index. No
// handler produces it yet; the jump opcodes are outside the executable
// subset and report unimplemented instead.
func jumpStep(target int) stepResult {
	return stepResult{kind: stepJump, target: target}
}

func returnStep(value object.Object) stepResult {
	return stepResult{kind: stepReturn, value: value}
}

func errorStep(err error) stepResult {
	return stepResult{kind: stepError, err: err}
}

// yieldStep suspends execution. No handler produces it yet; yield is a
// declared gap until continuations land.
func yieldStep(value object.Object) stepResult {
	return stepResult{kind: stepYield, value: value}
}
