package bench

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuntimeError(t *testing.T) {
	cause := errors.New("build failed")
	err := fmt.Errorf("failed to start: %w", NewRuntimeError(cause))

	assert.True(t, IsRuntimeError(err))
	assert.False(t, IsCaseFailureError(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to start: runtime error: build failed", err.Error())
	assert.False(t, IsRuntimeError(nil))
}

func TestCaseFailureError(t *testing.T) {
	err := errors.Join(NewCaseFailureError("7 cases in 1.000s: 6 PASS, 1 FAIL"), nil)

	assert.True(t, IsCaseFailureError(err))
	assert.False(t, IsRuntimeError(err))
	assert.Equal(t, "benchmark failure: 7 cases in 1.000s: 6 PASS, 1 FAIL", err.Error())
	assert.False(t, IsCaseFailureError(nil))
}
