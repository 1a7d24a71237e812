package runner

import (
	"errors"
	"fmt"
	"os"
)

// ErrCaseTimeout is the cause recorded on cases that exceeded their time bound
var ErrCaseTimeout = errors.New("case timed out")

// MissingExecutableError is returned when the subject executable does not
// exist. No case is run.
type MissingExecutableError struct {
	Path string
	Err  error
}

func (e *MissingExecutableError) Error() string {
	return fmt.Sprintf("executable not found at %s: %v", e.Path, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *MissingExecutableError) Unwrap() error {
	return e.Err
}

// IsMissingExecutableError checks if the error is or wraps a MissingExecutableError
func IsMissingExecutableError(err error) bool {
	var missing *MissingExecutableError
	return err != nil && errors.As(err, &missing)
}

// CheckExecutable verifies that path exists and is a regular file
func CheckExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &MissingExecutableError{Path: path, Err: err}
	}
	if info.IsDir() {
		return &MissingExecutableError{Path: path, Err: errors.New("is a directory")}
	}
	return nil
}
