package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/log"

	"github.com/ethereum-optimism/infra/op-bench/builder"
	"github.com/ethereum-optimism/infra/op-bench/catalog"
	"github.com/ethereum-optimism/infra/op-bench/metrics"
	"github.com/ethereum-optimism/infra/op-bench/reporting"
	"github.com/ethereum-optimism/infra/op-bench/runner"
	"github.com/ethereum-optimism/infra/op-bench/service"
	"github.com/ethereum-optimism/infra/op-bench/types"
	"github.com/ethereum-optimism/optimism/op-service/cliapp"
)

// bench implements the cliapp.Lifecycle interface.
var _ cliapp.Lifecycle = &bench{}

// bench builds the program under test if needed, runs the catalog once and
// then asks the app to shut down.
type bench struct {
	config  *Config
	version string
	catalog *catalog.Catalog
	builder *builder.Builder
	http    *service.Service
	summary *types.SuiteSummary

	running atomic.Bool

	shutdownCallback func(error) // Callback to signal application shutdown
}

func New(ctx context.Context, config *Config, version string, shutdownCallback func(error)) (*bench, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	if config.Log == nil {
		config.Log = log.New()
		config.Log.Error("No logger provided, using default")
	}
	if config.Out == nil {
		config.Out = os.Stdout
	}

	config.Log.Debug("Creating bench with config",
		"executable", config.Executable,
		"workDir", config.WorkDir,
		"catalog", config.CatalogPath,
		"timeout", config.Timeout,
		"forceBuild", config.ForceBuild)

	cat, err := catalog.Load(catalog.Config{
		Log:      config.Log,
		Path:     config.CatalogPath,
		BenchDir: config.BenchDir,
		BaseDir:  config.WorkDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	b, err := builder.NewBuilder(builder.Config{
		Log:      config.Log,
		WorkDir:  config.WorkDir,
		Command:  config.BuildCommand,
		Fallback: config.BuildFallback,
		Output:   config.Out,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create builder: %w", err)
	}

	return &bench{
		config:           config,
		version:          version,
		catalog:          cat,
		builder:          b,
		http:             service.New(config.Log),
		shutdownCallback: shutdownCallback,
	}, nil
}

// Start runs the suite once. Case failures are returned as a CaseFailureError,
// anything that keeps the suite from running as a RuntimeError.
// Start implements the cliapp.Lifecycle interface.
func (b *bench) Start(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.config.Log.Error("Runtime error occurred", "error", r)
			err = NewRuntimeError(fmt.Errorf("panic: %v", r))
		}
	}()

	b.running.Store(true)
	b.config.Log.Info("Starting op-bench", "version", b.version, "cases", len(b.catalog.Cases))

	if b.config.MetricsEnabled {
		if err := b.http.Start(b.config.MetricsAddr); err != nil {
			return NewRuntimeError(err)
		}
	}

	out, closeOut, err := b.openOutput()
	if err != nil {
		return NewRuntimeError(err)
	}
	defer closeOut()

	summary, err := b.run(ctx, out)
	if b.config.MetricsTextfile != "" {
		if werr := metrics.WriteTextfile(b.config.MetricsTextfile); werr != nil {
			b.config.Log.Error("Failed to write metrics textfile", "error", werr)
		}
	}
	if err != nil {
		b.config.Log.Error("Runtime error running benchmarks", "error", err)
		return NewRuntimeError(err)
	}
	b.summary = summary

	if !summary.AllPassed {
		b.config.Log.Warn("Benchmark run completed with failures, returning exit code 1", "summary", summary.String())
		return NewCaseFailureError(summary.String())
	}

	b.config.Log.Info("Benchmarks completed, exiting", "summary", summary.String())
	go func() {
		b.shutdownCallback(nil)
	}()
	return nil
}

// run prints the report for one pass over the catalog
func (b *bench) run(ctx context.Context, out io.Writer) (*types.SuiteSummary, error) {
	reporter := reporting.NewConsoleReporter(out, reporting.ReportingConfig{
		ColorEnabled: b.config.Color,
		SummaryTable: b.config.SummaryTable,
	})
	reporter.Banner(b.config.Name)

	if builder.NeedsBuild(b.config.Executable, b.config.ForceBuild) {
		reporter.Building(b.config.Name)
		_, err := b.builder.EnsureBuilt(ctx, b.config.Executable, b.config.ForceBuild)
		reporter.BuildFinished()
		if err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", b.config.Name, err)
		}
	}

	if fp, err := catalog.Fingerprint(b.catalog.BenchDir); err != nil {
		b.config.Log.Warn("Could not fingerprint bench directory", "dir", b.catalog.BenchDir, "error", err)
	} else {
		b.config.Log.Info("Bench directory", "dir", b.catalog.BenchDir, "fingerprint", fp)
	}

	executor, err := runner.NewCaseExecutor(b.config.Executable, b.config.Timeout, nil, b.config.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create case executor: %w", err)
	}
	suite, err := runner.NewSuiteRunner(runner.SuiteConfig{
		Name:       b.catalog.Name,
		Executable: b.config.Executable,
		Executor:   executor,
		Reporter:   reporter,
		Log:        b.config.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create suite runner: %w", err)
	}

	summary, err := suite.RunSuite(ctx, b.catalog.Cases)
	if runner.IsMissingExecutableError(err) {
		reporter.MissingExecutable(b.config.Name)
	}
	return summary, err
}

// openOutput returns the report writer, teeing into the results file when
// one is configured
func (b *bench) openOutput() (io.Writer, func(), error) {
	if b.config.ResultsFile == "" {
		return b.config.Out, func() {}, nil
	}
	f, err := os.Create(b.config.ResultsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create results file: %w", err)
	}
	closeFn := func() {
		if err := f.Close(); err != nil {
			b.config.Log.Error("Failed to close results file", "path", b.config.ResultsFile, "error", err)
		}
	}
	return io.MultiWriter(b.config.Out, reporting.NewPlainWriter(f)), closeFn, nil
}

// Stop stops the op-bench service.
// Stop implements the cliapp.Lifecycle interface.
func (b *bench) Stop(ctx context.Context) error {
	b.config.Log.Info("Stopping op-bench")
	if !b.running.Load() {
		b.config.Log.Debug("Service already stopped, nothing to do")
		return nil
	}
	b.running.Store(false)

	if err := b.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to stop http service: %w", err)
	}
	b.config.Log.Info("op-bench stopped successfully")
	return nil
}

// Stopped returns true if the op-bench service is stopped.
// Stopped implements the cliapp.Lifecycle interface.
func (b *bench) Stopped() bool {
	return !b.running.Load()
}

// Summary returns the summary of the completed run, or nil
func (b *bench) Summary() *types.SuiteSummary {
	return b.summary
}
