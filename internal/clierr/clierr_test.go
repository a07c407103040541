package clierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, New(EmptyText, "empty").ExitCode())
	assert.Equal(t, 2, New(InternalError, "boom").ExitCode())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(StorageError, cause, "saving tasks")

	assert.Equal(t, "saving tasks: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, HasCode(fmt.Errorf("outer: %w", err), StorageError))
	assert.False(t, HasCode(cause, StorageError))
}

func TestWithDetails(t *testing.T) {
	err := Newf(InvalidTaskID, "invalid task ID %q", "x").
		WithDetails(map[string]any{"input": "x"})

	assert.Equal(t, `invalid task ID "x"`, err.Error())
	assert.Equal(t, "x", err.Details["input"])
}
