package bench

import (
	"errors"
	"fmt"
)

// RuntimeError represents an operational error that should lead to exit code 2.
// Examples include a failed build, a missing executable or an invalid catalog.
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError creates a new RuntimeError
func NewRuntimeError(err error) *RuntimeError {
	return &RuntimeError{Err: err}
}

// IsRuntimeError checks if the error is or wraps a RuntimeError
func IsRuntimeError(err error) bool {
	var runtimeErr *RuntimeError
	return err != nil && errors.As(err, &runtimeErr)
}

// CaseFailureError reports a completed run in which at least one case did not
// pass (exit code 1)
type CaseFailureError struct {
	Summary string
}

func (e *CaseFailureError) Error() string {
	return fmt.Sprintf("benchmark failure: %s", e.Summary)
}

// NewCaseFailureError creates a new CaseFailureError
func NewCaseFailureError(summary string) *CaseFailureError {
	return &CaseFailureError{Summary: summary}
}

// IsCaseFailureError checks if the error is or wraps a CaseFailureError
func IsCaseFailureError(err error) bool {
	var failureErr *CaseFailureError
	return err != nil && errors.As(err, &failureErr)
}
