package vm

import (
	"errors"
	"testing"

	"github.com/akasaka-miraina/lambdust-sub010/object"
	"github.com/stretchr/testify/require"
)

func TestExecutionResultAccessors(t *testing.T) {
	completed := CompletedResult(object.NewFloat(42))
	require.Equal(t, ResultCompleted, completed.Kind())
	require.Equal(t, object.NewFloat(42), completed.Value())
	require.NoError(t, completed.Err())

	failure := errors.New("boom")
	failed := ErrorResult(failure)
	require.Equal(t, ResultError, failed.Kind())
	require.Nil(t, failed.Value())
	require.Equal(t, failure, failed.Err())

	yielded := YieldedResult(object.NewFloat(1))
	require.Equal(t, ResultYielded, yielded.Kind())
	require.Equal(t, object.NewFloat(1), yielded.Value())
	require.NoError(t, yielded.Err())
}

func TestExecutionResultString(t *testing.T) {
	require.Equal(t, "completed: 42", CompletedResult(object.NewFloat(42)).String())
	require.Equal(t, "completed", CompletedResult(nil).String())
	require.Equal(t, "error: boom", ErrorResult(errors.New("boom")).String())
	require.Equal(t, "yielded: 1", YieldedResult(object.NewFloat(1)).String())
	require.Equal(t, "yielded", YieldedResult(nil).String())
}

func TestStateString(t *testing.T) {
	require.Equal(t, "ready", StateReady.String())
	require.Equal(t, "running", StateRunning.String())
	require.Equal(t, "completed", StateCompleted.String())
	require.Equal(t, "error", StateError.String())
	require.Equal(t, "yielded", StateYielded.String())
	require.Equal(t, "unknown", State(99).String())
}

func TestResultKindString(t *testing.T) {
	require.Equal(t, "completed", ResultCompleted.String())
	require.Equal(t, "error", ResultError.String())
	require.Equal(t, "yielded", ResultYielded.String())
	require.Equal(t, "unknown", ResultKind(99).String())
}
