package verify

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/ethereum-optimism/infra/op-bench/types"
)

// ResourceError is returned when an expected-output resource cannot be read
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("expected output %s: %v", e.Path, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// IsResourceError checks if the error is or wraps a ResourceError
func IsResourceError(err error) bool {
	var resErr *ResourceError
	return err != nil && errors.As(err, &resErr)
}

// Expected is a resolved expectation: the comparable form plus the raw bytes
// used when the comparison falls back to binary mode.
type Expected struct {
	Output types.ComparableOutput
	Raw    []byte
}

// Resolve produces the expected comparable output for an expectation.
// ok is false for cases without an expectation.
//
// Inline text is returned untouched. File contents have CRLF and lone CR
// normalized to LF and are decoded strictly; content that is not valid
// UTF-8 is returned as binary. Comment lines are never filtered here.
func Resolve(e types.Expectation) (expected Expected, ok bool, err error) {
	switch e.Kind {
	case types.ExpectNone:
		return Expected{}, false, nil
	case types.ExpectInline:
		return Expected{Output: types.Text(e.Text), Raw: []byte(e.Text)}, true, nil
	case types.ExpectFile:
		data, err := os.ReadFile(e.Path)
		if err != nil {
			return Expected{}, false, &ResourceError{Path: e.Path, Err: err}
		}
		return resolveBytes(data), true, nil
	default:
		return Expected{}, false, fmt.Errorf("unknown expectation kind %s", e.Kind)
	}
}

func resolveBytes(data []byte) Expected {
	normalized := NormalizeLineEndings(data)
	decoded, _, err := transform.Bytes(encoding.UTF8Validator, normalized)
	if err != nil {
		return Expected{Output: types.Binary(normalized), Raw: normalized}
	}
	return Expected{Output: types.Text(string(decoded)), Raw: normalized}
}

// NormalizeLineEndings replaces every CRLF and then every lone CR with LF
func NormalizeLineEndings(data []byte) []byte {
	out := bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(out, []byte("\r"), []byte("\n"))
}
