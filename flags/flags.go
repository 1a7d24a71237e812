package flags

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	opservice "github.com/ethereum-optimism/optimism/op-service"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"
	opmetrics "github.com/ethereum-optimism/optimism/op-service/metrics"
)

const EnvVarPrefix = "OP_BENCH"

// ColorMode selects when the report is coloured
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func (c ColorMode) String() string {
	return string(c)
}

func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	}
	return false
}

// ValidColorModes returns every accepted --color value
func ValidColorModes() []ColorMode {
	return []ColorMode{ColorAuto, ColorAlways, ColorNever}
}

func validateColor(value string) error {
	if !ColorMode(value).IsValid() {
		return fmt.Errorf("color must be one of %v, got %q", ValidColorModes(), value)
	}
	return nil
}

var (
	Build = &cli.BoolFlag{
		Name:    "build",
		Aliases: []string{"b"},
		Value:   false,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "BUILD"),
		Usage:   "Rebuild the executable even if it already exists",
	}
	Name = &cli.StringFlag{
		Name:    "name",
		Value:   "bfsree",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "NAME"),
		Usage:   "Name of the program under test, used for the banner and the default executable path",
	}
	Executable = &cli.StringFlag{
		Name:    "executable",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "EXECUTABLE"),
		Usage:   "Path to the executable under test. Defaults to <workdir>/<name> (with .exe on Windows)",
	}
	WorkDir = &cli.StringFlag{
		Name:    "workdir",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "WORKDIR"),
		Usage:   "Directory holding the sources and build files. Defaults to the current directory",
	}
	BenchDir = &cli.StringFlag{
		Name:    "bench-dir",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "BENCH_DIR"),
		Usage:   "Directory holding the benchmark programs. Overrides the catalog's bench_dir",
	}
	Catalog = &cli.StringFlag{
		Name:    "catalog",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "CATALOG"),
		Usage:   "Path to a YAML case catalog. The built-in catalog is used when empty",
	}
	Timeout = &cli.DurationFlag{
		Name:    "timeout",
		Value:   300 * time.Second,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "TIMEOUT"),
		Usage:   "Default per-case timeout (e.g. '300s', '5m'). Catalog entries may override it",
	}
	BuildCmd = &cli.StringFlag{
		Name:    "build-cmd",
		Value:   "make release",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "BUILD_CMD"),
		Usage:   "Command run in the work directory to build the executable",
	}
	Color = &cli.StringFlag{
		Name:    "color",
		Value:   ColorAuto.String(),
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "COLOR"),
		Usage:   fmt.Sprintf("When to colour the report. Options: %v", ValidColorModes()),
		Action: func(ctx *cli.Context, value string) error {
			return validateColor(value)
		},
	}
	SummaryTable = &cli.BoolFlag{
		Name:    "summary-table",
		Value:   false,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "SUMMARY_TABLE"),
		Usage:   "Print a per-case summary table after the report",
	}
	ResultsFile = &cli.StringFlag{
		Name:    "results-file",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "RESULTS_FILE"),
		Usage:   "Also write the report, without colours, to this file",
	}
	MetricsTextfile = &cli.StringFlag{
		Name:    "metrics-textfile",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "METRICS_TEXTFILE"),
		Usage:   "Write Prometheus metrics to this file when the run completes",
	}
)

var optionalFlags = []cli.Flag{
	Build,
	Name,
	Executable,
	WorkDir,
	BenchDir,
	Catalog,
	Timeout,
	BuildCmd,
	Color,
	SummaryTable,
	ResultsFile,
	MetricsTextfile,
}
var Flags []cli.Flag

func init() {
	optionalFlags = append(optionalFlags, oplog.CLIFlags(EnvVarPrefix)...)
	optionalFlags = append(optionalFlags, opmetrics.CLIFlags(EnvVarPrefix)...)

	Flags = optionalFlags
}
