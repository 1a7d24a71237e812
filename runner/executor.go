package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ethereum-optimism/infra/op-bench/types"
	"github.com/ethereum-optimism/infra/op-bench/verify"
)

var _ CaseExecutor = (*caseExecutor)(nil)

// CaseExecutor runs a single benchmark case and classifies its outcome.
// Run never returns an error: every failure mode becomes an outcome.
type CaseExecutor interface {
	Run(ctx context.Context, c types.BenchmarkCase) *types.ExecutionResult
}

// CmdBuilder creates the command used to spawn the subject executable
type CmdBuilder func(ctx context.Context, name string, arg ...string) *exec.Cmd

// DefaultCmdBuilder spawns the subject directly
func DefaultCmdBuilder(ctx context.Context, name string, arg ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, arg...)
}

// caseExecutor implements CaseExecutor
type caseExecutor struct {
	executable string
	timeout    time.Duration
	cmdBuilder CmdBuilder
	waitDelay  time.Duration
	log        log.Logger
	tracer     trace.Tracer
}

// NewCaseExecutor creates a case executor for the subject at executable.
// A zero timeout selects DefaultCaseTimeout.
func NewCaseExecutor(executable string, timeout time.Duration, cmdBuilder CmdBuilder, logger log.Logger) (CaseExecutor, error) {
	if executable == "" {
		return nil, fmt.Errorf("executable cannot be empty")
	}
	if timeout < 0 {
		return nil, fmt.Errorf("timeout cannot be negative")
	}
	if timeout == 0 {
		timeout = DefaultCaseTimeout
	}
	if cmdBuilder == nil {
		cmdBuilder = DefaultCmdBuilder
	}
	if logger == nil {
		logger = log.New()
		logger.Error("No logger provided, using default")
	}

	return &caseExecutor{
		executable: executable,
		timeout:    timeout,
		cmdBuilder: cmdBuilder,
		waitDelay:  killWaitDelay,
		log:        logger,
		tracer:     otel.Tracer(tracerName),
	}, nil
}

// Run executes the case and verifies its output
func (e *caseExecutor) Run(ctx context.Context, c types.BenchmarkCase) *types.ExecutionResult {
	ctx, span := e.tracer.Start(ctx, fmt.Sprintf("case %s", c.Name))
	defer span.End()

	result := e.execute(ctx, c)

	span.SetAttributes(
		attribute.String("case.program", c.ProgramPath),
		attribute.String("case.outcome", string(result.Outcome)),
		attribute.Float64("case.elapsed_seconds", result.ElapsedSeconds()),
	)
	if result.Err != nil {
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, result.Err.Error())
	}
	return result
}

func (e *caseExecutor) execute(ctx context.Context, c types.BenchmarkCase) *types.ExecutionResult {
	timeout := c.EffectiveTimeout(e.timeout)
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := e.cmdBuilder(runCtx, e.executable, c.ProgramPath)
	if len(c.Stdin) > 0 {
		cmd.Stdin = bytes.NewReader(c.Stdin)
	}
	var stdout bytes.Buffer
	stderr := newTailBuffer(defaultStderrTailBytes)
	cmd.Stdout = &stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = e.waitDelay

	e.log.Debug("Running case", "case", c.Name, "program", c.ProgramPath, "timeout", timeout, "stdin_bytes", len(c.Stdin))

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	result := &types.ExecutionResult{
		Case:     c,
		Elapsed:  elapsed,
		Stderr:   stderr.Snippet(),
		ExitCode: -1,
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if runErr != nil {
		if failure := classifyRunError(ctx, runCtx, runErr, timeout); failure != nil {
			result.Outcome = failure.outcome
			result.Err = failure.err
			e.log.Warn("Case did not complete", "case", c.Name, "outcome", result.Outcome, "elapsed", elapsed, "err", result.Err)
			return result
		}
		// exited on its own with a non-zero status: the output is still verified
		e.log.Info("Subject exited with non-zero status", "case", c.Name, "exit_code", result.ExitCode)
	}

	result.Stdout = stdout.Bytes()
	e.checkOutput(result)
	return result
}

type runFailure struct {
	outcome types.Outcome
	err     error
}

// classifyRunError maps a cmd.Run error to a TIMEOUT or ERROR outcome.
// It returns nil when the process ran to completion, even if its exit status
// was non-zero or its output pipes outlived it.
func classifyRunError(parent, runCtx context.Context, runErr error, timeout time.Duration) *runFailure {
	if parent.Err() != nil {
		return &runFailure{outcome: types.OutcomeError, err: fmt.Errorf("case interrupted: %w", parent.Err())}
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return &runFailure{outcome: types.OutcomeTimeout, err: fmt.Errorf("%w after %v", ErrCaseTimeout, timeout)}
	}
	// the subject exited cleanly but a descendant still held its output open
	if errors.Is(runErr, exec.ErrWaitDelay) {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		if exitErr.ExitCode() == -1 {
			return &runFailure{outcome: types.OutcomeError, err: fmt.Errorf("subject terminated abnormally: %w", runErr)}
		}
		return nil
	}
	return &runFailure{outcome: types.OutcomeError, err: fmt.Errorf("failed to run subject: %w", runErr)}
}

// checkOutput fills in the outcome of a completed case
func (e *caseExecutor) checkOutput(result *types.ExecutionResult) {
	c := result.Case

	expected, ok, err := verify.Resolve(c.Expectation)
	if err != nil {
		result.Outcome = types.OutcomeError
		result.Err = err
		e.log.Error("Failed to resolve expected output", "case", c.Name, "err", err)
		return
	}
	if !ok {
		result.Outcome = types.OutcomeDone
		return
	}

	actual := verify.Normalize(result.Stdout)
	if verify.Compare(actual, result.Stdout, expected.Output, expected.Raw) {
		result.Outcome = types.OutcomePass
		return
	}

	result.Outcome = types.OutcomeFail
	e.log.Debug("Output mismatch", "case", c.Name, "expected_kind", c.Expectation.Kind,
		"actual_bytes", len(result.Stdout), "expected_bytes", len(expected.Raw), "stderr", result.Stderr)
}
