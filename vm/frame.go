package vm

import "github.com/akasaka-miraina/lambdust-sub010/object"

// frame is one entry in the machine's call stack: where to resume when
// the callee returns, the callee's local slots, and the function name
// for stack traces. Frames are owned exclusively by their machine and
// never shared.
//
// With the call opcodes outside the executable subset, the only frame
// in play is the main frame pushed by Execute; TAIL_CALL will reuse it
// once calls land.
type frame struct {
	returnAddr   int
	locals       []object.Object
	functionName string
}

// newFrame builds a frame with the given number of local slots, each
// initialized to the unspecified value.
func newFrame(returnAddr int, localCount int, functionName string) frame {
	locals := make([]object.Object, localCount)
	for i := range locals {
		locals[i] = object.Unspecified
	}
	return frame{
		returnAddr:   returnAddr,
		locals:       locals,
		functionName: functionName,
	}
}

// currentFrame returns the innermost call frame. Execute guarantees at
// least the main frame exists while the machine is running.
func (vm *VirtualMachine) currentFrame() *frame {
	return &vm.frames[len(vm.frames)-1]
}
