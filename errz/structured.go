package errz

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrorKind represents the category of an engine error.
type ErrorKind int

const (
	// ErrRuntime indicates a general runtime error.
	ErrRuntime ErrorKind = iota
	// ErrType indicates a type mismatch or invalid operation on a type.
	ErrType
	// ErrName indicates an unbound global or unknown symbol.
	ErrName
	// ErrValue indicates an invalid value for an operation.
	ErrValue
	// ErrStack indicates value stack overflow or underflow.
	ErrStack
	// ErrUnimplemented indicates an opcode with no executable semantics.
	ErrUnimplemented
	// ErrValidation indicates structurally invalid bytecode.
	ErrValidation
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrRuntime:
		return "runtime error"
	case ErrType:
		return "type error"
	case ErrName:
		return "name error"
	case ErrValue:
		return "value error"
	case ErrStack:
		return "stack error"
	case ErrUnimplemented:
		return "unimplemented opcode"
	case ErrValidation:
		return "validation error"
	default:
		return "error"
	}
}

// StructuredError is a rich error type carrying the error kind, the
// source location of the faulting instruction when known, and the
// virtual machine call stack at the time of the error.
type StructuredError struct {
	Message  string
	Kind     ErrorKind
	Location SourceLocation
	Stack    []StackFrame
	Cause    error
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Location.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind.String(), e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind.String(), e.Message, e.Location.String())
}

// Unwrap returns the underlying cause of the error.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// FriendlyErrorMessage returns a human-friendly error message including
// the stack trace when one was captured.
func (e *StructuredError) FriendlyErrorMessage() string {
	var msg bytes.Buffer
	msg.WriteString(e.Error())
	msg.WriteString("\n")
	if len(e.Stack) > 0 {
		msg.WriteString("\n")
		msg.WriteString(FormatStackTrace(e.Stack))
	}
	return msg.String()
}

// WithCause wraps the error with a cause.
func (e *StructuredError) WithCause(cause error) *StructuredError {
	e.Cause = cause
	return e
}

// WithLocation attaches the source location of the faulting instruction.
func (e *StructuredError) WithLocation(loc SourceLocation) *StructuredError {
	e.Location = loc
	return e
}

// WithStack attaches the virtual machine call stack.
func (e *StructuredError) WithStack(stack []StackFrame) *StructuredError {
	e.Stack = stack
	return e
}

// New creates a StructuredError of the given kind.
func New(kind ErrorKind, message string) *StructuredError {
	return &StructuredError{Kind: kind, Message: message}
}

// Newf creates a StructuredError of the given kind with a formatted message.
func Newf(kind ErrorKind, format string, args ...any) *StructuredError {
	return &StructuredError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// TypeErrorf creates a type error with a formatted message.
func TypeErrorf(format string, args ...any) *StructuredError {
	return Newf(ErrType, format, args...)
}

// NameErrorf creates a name error with a formatted message.
func NameErrorf(format string, args ...any) *StructuredError {
	return Newf(ErrName, format, args...)
}

// ValueErrorf creates a value error with a formatted message.
func ValueErrorf(format string, args ...any) *StructuredError {
	return Newf(ErrValue, format, args...)
}

// StackErrorf creates a stack overflow/underflow error with a formatted message.
func StackErrorf(format string, args ...any) *StructuredError {
	return Newf(ErrStack, format, args...)
}

// RuntimeErrorf creates a runtime error with a formatted message.
func RuntimeErrorf(format string, args ...any) *StructuredError {
	return Newf(ErrRuntime, format, args...)
}

// UnimplementedErrorf creates an unimplemented-opcode error with a
// formatted message.
func UnimplementedErrorf(format string, args ...any) *StructuredError {
	return Newf(ErrUnimplemented, format, args...)
}

// ValidationErrorf creates a validation error with a formatted message.
func ValidationErrorf(format string, args ...any) *StructuredError {
	return Newf(ErrValidation, format, args...)
}

// IsKind reports whether err is (or wraps) a StructuredError of the
// given kind.
func IsKind(err error, kind ErrorKind) bool {
	var structured *StructuredError
	if errors.As(err, &structured) {
		return structured.Kind == kind
	}
	return false
}
