package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeSucceeded(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    bool
	}{
		{OutcomePass, true},
		{OutcomeDone, true},
		{OutcomeFail, false},
		{OutcomeTimeout, false},
		{OutcomeError, false},
	}
	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.Succeeded())
		})
	}
}

func TestSuiteSummaryAdd(t *testing.T) {
	t.Run("all pass or done exits 0", func(t *testing.T) {
		s := NewSuiteSummary("run1")
		s.Add(&ExecutionResult{Outcome: OutcomePass, Elapsed: time.Second})
		s.Add(&ExecutionResult{Outcome: OutcomeDone, Elapsed: 500 * time.Millisecond})

		assert.True(t, s.AllPassed)
		assert.Equal(t, 0, s.ExitCode())
		assert.Equal(t, 2, s.Cases)
		assert.InDelta(t, 1.5, s.TotalSeconds(), 1e-9)
	})

	t.Run("any failure exits 1 and sticks", func(t *testing.T) {
		s := NewSuiteSummary("run2")
		s.Add(&ExecutionResult{Outcome: OutcomePass})
		s.Add(&ExecutionResult{Outcome: OutcomeTimeout})
		s.Add(&ExecutionResult{Outcome: OutcomePass})

		assert.False(t, s.AllPassed)
		assert.Equal(t, 1, s.ExitCode())
		assert.Equal(t, 2, s.Counts[OutcomePass])
		assert.Equal(t, 1, s.Counts[OutcomeTimeout])
	})

	t.Run("empty summary passes", func(t *testing.T) {
		s := NewSuiteSummary("run3")
		assert.Equal(t, 0, s.ExitCode())
		assert.Equal(t, "0 cases in 0.000s: nothing run", s.String())
	})
}

func TestSuiteSummaryString(t *testing.T) {
	s := NewSuiteSummary("run")
	s.Add(&ExecutionResult{Outcome: OutcomeFail, Elapsed: 2 * time.Second})
	s.Add(&ExecutionResult{Outcome: OutcomePass, Elapsed: time.Second})
	s.Add(&ExecutionResult{Outcome: OutcomeDone, Elapsed: 345 * time.Millisecond})

	require.Equal(t, "3 cases in 3.345s: 1 PASS, 1 DONE, 1 FAIL", s.String())
}

func TestExpectationConstructors(t *testing.T) {
	assert.False(t, NoExpectation().IsSet())

	inline := InlineExpectedText("OK\n")
	assert.Equal(t, ExpectInline, inline.Kind)
	assert.Equal(t, "OK\n", inline.Text)
	assert.Empty(t, inline.Path)

	file := ExpectedFileRef("bench/hanoi.out")
	assert.Equal(t, ExpectFile, file.Kind)
	assert.Equal(t, "bench/hanoi.out", file.Path)
	assert.Empty(t, file.Text)
	assert.Equal(t, "file", file.Kind.String())
}

func TestEffectiveTimeout(t *testing.T) {
	c := BenchmarkCase{Name: "x"}
	assert.Equal(t, 300*time.Second, c.EffectiveTimeout(300*time.Second))

	c.Timeout = time.Minute
	assert.Equal(t, time.Minute, c.EffectiveTimeout(300*time.Second))
}
