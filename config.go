package bench

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/infra/op-bench/builder"
	"github.com/ethereum-optimism/infra/op-bench/flags"
	opmetrics "github.com/ethereum-optimism/optimism/op-service/metrics"
)

// Config holds the application configuration
type Config struct {
	Name            string        // Program name shown in the banner
	Executable      string        // Absolute path of the executable under test
	WorkDir         string        // Directory the build runs in
	BenchDir        string        // Overrides the catalog bench directory when set
	CatalogPath     string        // YAML catalog; empty selects the built-in one
	ForceBuild      bool          // Rebuild even when the executable exists
	Timeout         time.Duration // Default per-case timeout
	BuildCommand    []string
	BuildFallback   []string // Run when the build tool is not installed
	Color           bool
	SummaryTable    bool
	ResultsFile     string
	MetricsTextfile string
	MetricsEnabled  bool
	MetricsAddr     string
	Out             io.Writer // Report destination, stdout by default
	Log             log.Logger
}

// ExecutableName returns the platform file name for program name
func ExecutableName(name string, goos string) string {
	if goos == "windows" {
		return name + ".exe"
	}
	return name
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, log log.Logger) (*Config, error) {
	name := ctx.String(flags.Name.Name)
	if name == "" {
		return nil, errors.New("program name is required")
	}

	workDir := ctx.String(flags.WorkDir.Name)
	if workDir == "" {
		workDir = "."
	}
	absWorkDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for work directory '%s': %w", workDir, err)
	}

	executable := ctx.String(flags.Executable.Name)
	if executable == "" {
		executable = filepath.Join(absWorkDir, ExecutableName(name, runtime.GOOS))
	}
	absExecutable, err := filepath.Abs(executable)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for executable '%s': %w", executable, err)
	}

	benchDir, err := absOrEmpty(ctx.String(flags.BenchDir.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for bench directory: %w", err)
	}
	catalogPath, err := absOrEmpty(ctx.String(flags.Catalog.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for catalog: %w", err)
	}

	timeout := ctx.Duration(flags.Timeout.Name)
	if timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %v", timeout)
	}

	buildCommand := strings.Fields(ctx.String(flags.BuildCmd.Name))
	if len(buildCommand) == 0 {
		return nil, errors.New("build command cannot be empty")
	}
	var buildFallback []string
	if runtime.GOOS == "windows" && buildCommand[0] == "make" {
		buildFallback = builder.WindowsFallbackCommand(ExecutableName(name, runtime.GOOS))
	}

	colorMode := flags.ColorMode(ctx.String(flags.Color.Name))
	if !colorMode.IsValid() {
		return nil, fmt.Errorf("invalid color mode: %s. Must be one of: %v", colorMode, flags.ValidColorModes())
	}

	metricsCfg := opmetrics.ReadCLIConfig(ctx)
	if err := metricsCfg.Check(); err != nil {
		return nil, fmt.Errorf("invalid metrics config: %w", err)
	}

	return &Config{
		Name:            name,
		Executable:      absExecutable,
		WorkDir:         absWorkDir,
		BenchDir:        benchDir,
		CatalogPath:     catalogPath,
		ForceBuild:      ctx.Bool(flags.Build.Name),
		Timeout:         timeout,
		BuildCommand:    buildCommand,
		BuildFallback:   buildFallback,
		Color:           DetectColor(colorMode, os.Stdout, runtime.GOOS),
		SummaryTable:    ctx.Bool(flags.SummaryTable.Name),
		ResultsFile:     ctx.String(flags.ResultsFile.Name),
		MetricsTextfile: ctx.String(flags.MetricsTextfile.Name),
		MetricsEnabled:  metricsCfg.Enabled,
		MetricsAddr:     net.JoinHostPort(metricsCfg.ListenAddr, strconv.Itoa(metricsCfg.ListenPort)),
		Out:             os.Stdout,
		Log:             log,
	}, nil
}

func absOrEmpty(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	return filepath.Abs(path)
}
