package metrics

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ethereum-optimism/infra/op-bench/types"
)

const (
	MetricsNamespace = "bench"
)

var (
	Debug                bool = true
	nonAlphanumericRegex      = regexp.MustCompile(`[^a-zA-Z ]+`)

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	caseOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "case_outcomes_total",
		Help:      "Count of case runs by outcome",
	}, []string{
		"case",
		"outcome",
	})

	caseDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "case_duration_seconds",
		Help:      "Wall-clock duration of the last run of a case",
	}, []string{
		"run_id",
		"case",
	})

	suiteResult = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_result",
		Help:      "Result of a suite run (1 for the reported result)",
	}, []string{
		"run_id",
		"result",
	})

	suiteCases = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_cases",
		Help:      "Number of cases run in a suite",
	}, []string{
		"run_id",
	})

	suiteDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_duration_seconds",
		Help:      "Sum of case durations in a suite run",
	}, []string{
		"run_id",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	if Debug {
		log.Debug("metric inc",
			"m", "errors_total",
			"error", error,
		)
	}
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	label = fmt.Sprintf("%s.%s", label, errToLabel(err))
	RecordError(label)
}

// RecordCase records the outcome and duration of one case run
func RecordCase(runID string, caseName string, outcome types.Outcome, elapsed time.Duration) {
	if Debug {
		log.Debug("metric inc",
			"m", "case_outcomes_total",
			"run_id", runID,
			"case", caseName,
			"outcome", outcome)
	}
	caseOutcomesTotal.WithLabelValues(caseName, string(outcome)).Inc()
	caseDuration.WithLabelValues(runID, caseName).Set(elapsed.Seconds())
}

// RecordSuite records the aggregate result of a suite run
func RecordSuite(runID string, allPassed bool, cases int, total time.Duration) {
	result := "pass"
	if !allPassed {
		result = "fail"
	}
	suiteResult.WithLabelValues(runID, result).Set(1)
	suiteCases.WithLabelValues(runID).Set(float64(cases))
	suiteDuration.WithLabelValues(runID).Set(total.Seconds())
}

// WriteTextfile writes every registered metric to path in the text exposition
// format, for collection by a node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
