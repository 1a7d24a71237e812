package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ethereum-optimism/infra/op-bench/types"
)

const (
	nameWidth = 25
	ruleWidth = 46
)

var (
	bannerRule    = strings.Repeat("=", ruleWidth)
	separatorRule = strings.Repeat("-", ruleWidth)
)

// ReportingConfig is resolved once at startup and handed to every reporter
type ReportingConfig struct {
	ColorEnabled bool
	// SummaryTable renders a per-case table after the completion line
	SummaryTable bool
}

// outcomeColors returns the colour used for an outcome label
func outcomeColors(o types.Outcome) text.Colors {
	switch o {
	case types.OutcomePass:
		return text.Colors{text.FgGreen}
	case types.OutcomeDone:
		return text.Colors{text.Bold, text.FgYellow}
	default:
		return text.Colors{text.FgRed}
	}
}

// ConsoleReporter prints the human readable benchmark report. Each case line
// is written in two parts: the padded name before the case runs, then the
// elapsed time and label once it finishes.
type ConsoleReporter struct {
	out     io.Writer
	cfg     ReportingConfig
	results []*types.ExecutionResult
}

// NewConsoleReporter creates a reporter writing to out
func NewConsoleReporter(out io.Writer, cfg ReportingConfig) *ConsoleReporter {
	return &ConsoleReporter{out: out, cfg: cfg}
}

func (r *ConsoleReporter) colorize(s string, colors text.Colors) string {
	if !r.cfg.ColorEnabled {
		return s
	}
	return colors.EscapeSeq() + s + text.EscapeReset
}

func (r *ConsoleReporter) println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Banner prints the suite title block
func (r *ConsoleReporter) Banner(name string) {
	r.println(bannerRule)
	r.println(fmt.Sprintf("         %s Benchmark Suite", name))
	r.println(bannerRule)
	r.println()
}

// Building announces a build of the subject executable
func (r *ConsoleReporter) Building(name string) {
	r.println(fmt.Sprintf("Building %s...", name))
}

// BuildFinished closes the build section
func (r *ConsoleReporter) BuildFinished() {
	r.println()
}

// MissingExecutable prints the fatal line shown when there is nothing to run
func (r *ConsoleReporter) MissingExecutable(name string) {
	r.println(r.colorize(fmt.Sprintf("Error: %s executable not found", name), text.Colors{text.FgRed}))
}

func (r *ConsoleReporter) SuiteStarted(runID string, cases int) {
	r.results = r.results[:0]
	r.println("Running benchmarks...")
	r.println(separatorRule)
	r.println(fmt.Sprintf("%-*s %9s  Status", nameWidth, "Test", "Time"))
	r.println(separatorRule)
}

func (r *ConsoleReporter) CaseStarted(c types.BenchmarkCase) {
	_, _ = fmt.Fprintf(r.out, "%-*s", nameWidth, c.Name)
}

func (r *ConsoleReporter) CaseFinished(result *types.ExecutionResult) {
	r.results = append(r.results, result)
	label := r.colorize(result.Outcome.String(), outcomeColors(result.Outcome))
	_, _ = fmt.Fprintf(r.out, "%8.3fs  [%s]\n", result.ElapsedSeconds(), label)
}

func (r *ConsoleReporter) SuiteFinished(summary *types.SuiteSummary) {
	r.println(separatorRule)
	r.println(fmt.Sprintf("Total time: %.3fs", summary.TotalSeconds()))
	r.println("Benchmarks complete!")

	if r.cfg.SummaryTable {
		r.println()
		renderSummaryTable(r.out, r.results, summary, r.cfg.ColorEnabled)
	}
}
