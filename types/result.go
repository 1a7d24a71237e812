package types

import (
	"fmt"
	"strings"
	"time"
)

// Outcome represents the possible classifications of a case run
type Outcome string

const (
	OutcomePass    Outcome = "PASS"
	OutcomeFail    Outcome = "FAIL"
	OutcomeTimeout Outcome = "TIMEOUT"
	OutcomeError   Outcome = "ERROR"
	OutcomeDone    Outcome = "DONE" // ran without an expectation
)

// AllOutcomes lists every outcome in display order
var AllOutcomes = []Outcome{OutcomePass, OutcomeDone, OutcomeFail, OutcomeTimeout, OutcomeError}

// Succeeded reports whether the outcome counts as a success for the suite.
// DONE is unverified but still counts.
func (o Outcome) Succeeded() bool {
	return o == OutcomePass || o == OutcomeDone
}

// String implements the Stringer interface for Outcome
func (o Outcome) String() string {
	return string(o)
}

// ExecutionResult captures the outcome of a single case run
type ExecutionResult struct {
	Case     BenchmarkCase
	Outcome  Outcome
	Elapsed  time.Duration
	Stdout   []byte // raw captured stdout, empty on TIMEOUT and spawn errors
	Stderr   string // tail of stderr, captured but never compared
	ExitCode int
	Err      error // cause of a TIMEOUT or ERROR outcome
}

// ElapsedSeconds returns the wall-clock duration in seconds
func (r *ExecutionResult) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}

// SuiteSummary accumulates results across a suite run
type SuiteSummary struct {
	RunID     string
	Suite     string
	Cases     int
	Total     time.Duration
	AllPassed bool
	Counts    map[Outcome]int
}

// NewSuiteSummary creates an empty summary; AllPassed starts true
func NewSuiteSummary(runID string) *SuiteSummary {
	return &SuiteSummary{
		RunID:     runID,
		AllPassed: true,
		Counts:    make(map[Outcome]int),
	}
}

// Add folds a single case result into the summary
func (s *SuiteSummary) Add(result *ExecutionResult) {
	s.Cases++
	s.Total += result.Elapsed
	s.Counts[result.Outcome]++
	s.AllPassed = s.AllPassed && result.Outcome.Succeeded()
}

// TotalSeconds returns the accumulated elapsed time in seconds
func (s *SuiteSummary) TotalSeconds() float64 {
	return s.Total.Seconds()
}

// ExitCode returns 0 when every case passed or was informational, 1 otherwise
func (s *SuiteSummary) ExitCode() int {
	if s.AllPassed {
		return 0
	}
	return 1
}

// String returns a one-line description of the summary, e.g.
// "7 cases in 12.345s: 5 PASS, 1 DONE, 1 FAIL"
func (s *SuiteSummary) String() string {
	var parts []string
	for _, o := range AllOutcomes {
		if n := s.Counts[o]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, o))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "nothing run")
	}
	return fmt.Sprintf("%d cases in %.3fs: %s", s.Cases, s.TotalSeconds(), strings.Join(parts, ", "))
}
