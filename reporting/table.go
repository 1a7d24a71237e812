package reporting

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ethereum-optimism/infra/op-bench/types"
)

// renderSummaryTable writes one row per case and a totals footer
func renderSummaryTable(out io.Writer, results []*types.ExecutionResult, summary *types.SuiteSummary, color bool) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(fmt.Sprintf("Benchmark Results (%s)", formatSeconds(summary.TotalSeconds())))

	t.AppendHeader(table.Row{"Case", "Time", "Status", "Exit", "Error"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Case", WidthMax: 40, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Time", Align: text.AlignRight},
		{Name: "Exit", Align: text.AlignRight},
		{Name: "Error", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
	})

	for _, result := range results {
		errText := ""
		if result.Err != nil {
			errText = result.Err.Error()
		}
		t.AppendRow(table.Row{
			result.Case.Name,
			formatSeconds(result.ElapsedSeconds()),
			result.Outcome.String(),
			exitCodeCell(result.ExitCode),
			errText,
		})
	}

	switch {
	case !color:
		t.SetStyle(table.StyleLight)
	case summary.AllPassed:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}
	t.Style().Format.Footer = text.FormatDefault

	t.AppendFooter(table.Row{
		"TOTAL",
		formatSeconds(summary.TotalSeconds()),
		summaryStatus(summary),
		"",
		summary.String(),
	})

	t.Render()
}

func formatSeconds(s float64) string {
	return fmt.Sprintf("%.3fs", s)
}

func exitCodeCell(code int) string {
	if code < 0 {
		return "-"
	}
	return fmt.Sprintf("%d", code)
}

func summaryStatus(summary *types.SuiteSummary) string {
	if summary.AllPassed {
		return "PASS"
	}
	return "FAIL"
}
