package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v2"

	bench "github.com/ethereum-optimism/infra/op-bench"
	"github.com/ethereum-optimism/infra/op-bench/exitcodes"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"no error", nil, exitcodes.Success},
		{"case failures", bench.NewCaseFailureError("1 FAIL"), exitcodes.TestFailure},
		{"runtime error", bench.NewRuntimeError(errors.New("build failed")), exitcodes.RuntimeErr},
		{
			"runtime error joined by the lifecycle",
			errors.Join(fmt.Errorf("failed to start: %w", bench.NewRuntimeError(errors.New("missing"))), nil),
			exitcodes.RuntimeErr,
		},
		{"explicit exit coder", cli.Exit("bad flags", 3), 3},
		{"unclassified", errors.New("boom"), exitcodes.TestFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
