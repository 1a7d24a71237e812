package bench

import (
	"os"

	"golang.org/x/term"

	"github.com/ethereum-optimism/infra/op-bench/flags"
)

// ResolveColor decides whether the report is coloured. In auto mode colour
// needs a terminal, and on Windows it also needs Windows Terminal.
func ResolveColor(mode flags.ColorMode, isTerminal bool, goos string, lookupEnv func(string) (string, bool)) bool {
	switch mode {
	case flags.ColorAlways:
		return true
	case flags.ColorNever:
		return false
	}
	if !isTerminal {
		return false
	}
	if goos == "windows" {
		_, ok := lookupEnv("WT_SESSION")
		return ok
	}
	return true
}

// DetectColor resolves mode against the current process and f
func DetectColor(mode flags.ColorMode, f *os.File, goos string) bool {
	return ResolveColor(mode, term.IsTerminal(int(f.Fd())), goos, os.LookupEnv)
}
