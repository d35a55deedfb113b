package errz

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorKindStrings(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{ErrRuntime, "runtime error"},
		{ErrType, "type error"},
		{ErrName, "name error"},
		{ErrValue, "value error"},
		{ErrStack, "stack error"},
		{ErrUnimplemented, "unimplemented opcode"},
		{ErrValidation, "validation error"},
		{ErrorKind(99), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestStructuredErrorMessage(t *testing.T) {
	err := TypeErrorf("expected number, got %s", "string")
	require.Equal(t, "type error: expected number, got string", err.Error())

	err = err.WithLocation(SourceLocation{Filename: "main.scm", Line: 3, Column: 7})
	require.Equal(t, "type error: expected number, got string (main.scm:3:7)", err.Error())
}

func TestStructuredErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := RuntimeErrorf("execution failed").WithCause(cause)
	require.ErrorIs(t, err, cause)
}

func TestIsKind(t *testing.T) {
	err := StackErrorf("stack overflow at depth %d", 1024)
	require.True(t, IsKind(err, ErrStack))
	require.False(t, IsKind(err, ErrType))

	wrapped := fmt.Errorf("while executing: %w", err)
	require.True(t, IsKind(wrapped, ErrStack))

	require.False(t, IsKind(errors.New("plain"), ErrStack))
}

func TestFriendlyErrorMessage(t *testing.T) {
	err := NameErrorf("unbound global: %s", "launch-missiles").WithStack([]StackFrame{
		{Function: "main", Location: SourceLocation{Line: 1, Column: 1}},
		{Function: "boot"},
	})
	msg := err.FriendlyErrorMessage()
	require.Contains(t, msg, "name error: unbound global: launch-missiles")
	require.Contains(t, msg, "Stack trace:")
	require.Contains(t, msg, "at main (1:1)")
	require.Contains(t, msg, "at boot")
}

func TestSourceLocation(t *testing.T) {
	require.True(t, SourceLocation{}.IsZero())
	require.False(t, SourceLocation{Line: 1, Column: 1}.IsZero())
	require.Equal(t, "2:4", SourceLocation{Line: 2, Column: 4}.String())
	require.Equal(t, "lib.scm:2:4", SourceLocation{Filename: "lib.scm", Line: 2, Column: 4}.String())
}

func TestFormatStackTraceEmpty(t *testing.T) {
	require.Equal(t, "", FormatStackTrace(nil))
}
