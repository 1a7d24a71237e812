package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ethereum-optimism/infra/op-bench/metrics"
	"github.com/ethereum-optimism/infra/op-bench/types"
)

// Reporter receives suite progress. Calls happen on the suite goroutine, in order:
// SuiteStarted, then CaseStarted/CaseFinished per case, then SuiteFinished.
type Reporter interface {
	SuiteStarted(runID string, cases int)
	CaseStarted(c types.BenchmarkCase)
	CaseFinished(result *types.ExecutionResult)
	SuiteFinished(summary *types.SuiteSummary)
}

// SuiteConfig holds configuration for creating a new suite runner
type SuiteConfig struct {
	Name       string // catalog name, carried into the summary
	Executable string // checked for existence before any case runs
	Executor   CaseExecutor
	Reporter   Reporter
	Log        log.Logger
}

// SuiteRunner runs an ordered list of cases and aggregates the outcomes
type SuiteRunner struct {
	name       string
	executable string
	executor   CaseExecutor
	reporter   Reporter
	log        log.Logger
	tracer     trace.Tracer
}

// NewSuiteRunner creates a new suite runner instance
func NewSuiteRunner(cfg SuiteConfig) (*SuiteRunner, error) {
	if cfg.Executable == "" {
		return nil, fmt.Errorf("executable is required")
	}
	if cfg.Executor == nil {
		return nil, fmt.Errorf("case executor is required")
	}
	if cfg.Reporter == nil {
		return nil, fmt.Errorf("reporter is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}

	return &SuiteRunner{
		name:       cfg.Name,
		executable: cfg.Executable,
		executor:   cfg.Executor,
		reporter:   cfg.Reporter,
		log:        cfg.Log,
		tracer:     otel.Tracer(tracerName),
	}, nil
}

// RunSuite runs every case in declared order and returns the summary.
//
// A missing executable yields a MissingExecutableError before anything is
// reported. Cancelling ctx stops the suite before the next case; the partial
// summary is returned together with the context error.
func (s *SuiteRunner) RunSuite(ctx context.Context, cases []types.BenchmarkCase) (*types.SuiteSummary, error) {
	if err := CheckExecutable(s.executable); err != nil {
		metrics.RecordErrorDetails("missing_executable", err)
		return nil, err
	}

	runID := uuid.New().String()
	ctx, span := s.tracer.Start(ctx, "suite")
	defer span.End()
	span.SetAttributes(attribute.String("suite", s.name), attribute.String("run_id", runID), attribute.Int("cases", len(cases)))

	s.log.Info("Running suite", "suite", s.name, "run_id", runID, "cases", len(cases), "executable", s.executable)
	summary := types.NewSuiteSummary(runID)
	summary.Suite = s.name
	s.reporter.SuiteStarted(runID, len(cases))

	start := time.Now()
	var runErr error
	for i, c := range cases {
		if err := ctx.Err(); err != nil {
			s.log.Warn("Suite interrupted", "run_id", runID, "remaining", len(cases)-i)
			runErr = fmt.Errorf("suite interrupted before case %q: %w", c.Name, err)
			break
		}

		s.reporter.CaseStarted(c)
		result := s.executor.Run(ctx, c)
		summary.Add(result)
		s.reporter.CaseFinished(result)

		metrics.RecordCase(runID, c.Name, result.Outcome, result.Elapsed)
		s.log.Debug("Case finished", "case", c.Name, "outcome", result.Outcome, "elapsed", result.Elapsed)
	}

	s.reporter.SuiteFinished(summary)
	metrics.RecordSuite(runID, summary.AllPassed, summary.Cases, summary.Total)
	s.log.Info("Suite completed", "suite", s.name, "run_id", runID, "summary", summary.String(), "wall", time.Since(start))

	return summary, runErr
}
