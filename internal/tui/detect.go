package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode of a command.
type Mode int

const (
	// ModeNonInteractive is used for CI pipelines, scripts, and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// EnvNonInteractive forces non-interactive mode when set to "1".
const EnvNonInteractive = "TIERDOCS_NON_INTERACTIVE"

// DetectMode determines whether prompts and wizards may be shown.
//
// Returns ModeNonInteractive if:
//   - TIERDOCS_NON_INTERACTIVE=1 is set
//   - CI is set
//   - NO_COLOR is set
//   - stdin or stdout is not a terminal
func DetectMode() Mode {
	if os.Getenv(EnvNonInteractive) == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" || os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}

	return ModeInteractive
}

// IsInteractive is a convenience function that returns true if running in interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}

// ColorEnabled reports whether output written to f may be styled.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
