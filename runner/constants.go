package runner

import "time"

// Case execution constants
const (
	// DefaultCaseTimeout is the hard wall-clock bound for a single case
	DefaultCaseTimeout = 300 * time.Second

	// killWaitDelay bounds how long to wait for the subject's output pipes
	// to close after it has been killed or has exited
	killWaitDelay = 5 * time.Second

	// tracerName identifies spans created by the runner
	tracerName = "bench runner"
)
