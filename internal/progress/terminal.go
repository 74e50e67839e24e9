// Package progress provides terminal capability detection and spinner-based
// progress indicators for long-running graph executions.
package progress

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the attached terminal supports.
type TerminalCapabilities struct {
	// IsTTY is true when stdout is a terminal.
	IsTTY bool
	// SupportsColor is true when colored output should be emitted.
	SupportsColor bool
	// SupportsUnicode is true when Unicode symbols should be used.
	SupportsUnicode bool
	// Width is the terminal width in columns (0 when unknown).
	Width int
}

// ProgressSymbols is the symbol set used for status output.
type ProgressSymbols struct {
	// Checkmark marks a succeeded task.
	Checkmark string
	// Failure marks a failed task.
	Failure string
	// SpinnerSet indexes into spinner.CharSets.
	SpinnerSet int
}

// DetectTerminalCapabilities detects terminal features and returns capabilities.
// Checks: stdout isatty, NO_COLOR env, TREEFLOW_ASCII env, terminal width.
// Used to select appropriate symbols (Unicode vs ASCII) and enable/disable
// the spinner.
func DetectTerminalCapabilities() TerminalCapabilities {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("TREEFLOW_ASCII") == "1"

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// SelectSymbols returns the appropriate symbol set based on terminal capabilities.
// Unicode: ✓/✗ with braille spinner (set 14). ASCII: [OK]/[FAIL] with |/-\
// spinner (set 9). Graceful degradation ensures output is readable in any
// terminal.
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{
			Checkmark:  "✓",
			Failure:    "✗",
			SpinnerSet: 14, // Unicode dots: ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
		}
	}

	return ProgressSymbols{
		Checkmark:  "[OK]",
		Failure:    "[FAIL]",
		SpinnerSet: 9, // ASCII: | / - \
	}
}
