// Package exitcodes defines the process exit codes used by op-bench.
package exitcodes

// * Success (0): every case passed or was informational
// * TestFailure (1): one or more cases failed, timed out or errored
// * RuntimeErr (2): the suite could not run, e.g. a failed build, a missing
// executable or an invalid catalog
const (
	Success     = 0
	TestFailure = 1
	RuntimeErr  = 2
)
