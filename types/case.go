// Package types contains shared types used across the op-bench harness
package types

import (
	"fmt"
	"time"
)

// ExpectationKind identifies which variant of an Expectation is populated
type ExpectationKind int

// ExpectationKind enum values
const (
	ExpectNone ExpectationKind = iota
	ExpectInline
	ExpectFile
)

// String implements the Stringer interface for ExpectationKind
func (k ExpectationKind) String() string {
	switch k {
	case ExpectNone:
		return "none"
	case ExpectInline:
		return "inline"
	case ExpectFile:
		return "file"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Expectation describes what a case is expected to print.
// Only the field matching Kind is meaningful.
type Expectation struct {
	Kind ExpectationKind
	Text string // ExpectInline
	Path string // ExpectFile
}

// NoExpectation marks a case as informational: it is run and timed but never verified.
func NoExpectation() Expectation {
	return Expectation{Kind: ExpectNone}
}

// InlineExpectedText expects the subject to print exactly s (modulo trailing whitespace).
func InlineExpectedText(s string) Expectation {
	return Expectation{Kind: ExpectInline, Text: s}
}

// ExpectedFileRef expects the subject to print the contents of the file at path.
func ExpectedFileRef(path string) Expectation {
	return Expectation{Kind: ExpectFile, Path: path}
}

// IsSet reports whether the expectation requires verification
func (e Expectation) IsSet() bool {
	return e.Kind != ExpectNone
}

// BenchmarkCase is one named benchmark/conformance scenario
type BenchmarkCase struct {
	Name        string
	ProgramPath string // passed to the subject executable as its only argument
	Stdin       []byte
	Expectation Expectation
	Timeout     time.Duration // zero means the suite default
}

// EffectiveTimeout returns the case timeout, falling back to def when unset
func (c BenchmarkCase) EffectiveTimeout(def time.Duration) time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return def
}
