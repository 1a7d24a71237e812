// Package runner executes benchmark cases against the subject executable.
//
// The main components are:
//   - CaseExecutor: spawns the subject for one case under a time bound, captures
//     its output and classifies the outcome using the verify package
//   - SuiteRunner: runs every case of a catalog in order, reports each result
//     and accumulates the suite summary
//
// Cases always run one after another. Elapsed time is part of the reported
// data, so no two subject processes ever overlap.
package runner
