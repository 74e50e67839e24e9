package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Indicator wraps a terminal spinner shown while a graph executes. On
// non-TTY output it degrades to plain start/finish lines so logs stay
// readable.
type Indicator struct {
	spin    *spinner.Spinner
	out     io.Writer
	symbols ProgressSymbols
	enabled bool
}

// NewIndicator creates a progress indicator for the given writer. The
// spinner is only animated when the terminal supports it.
func NewIndicator(out io.Writer, caps TerminalCapabilities) *Indicator {
	symbols := SelectSymbols(caps)
	ind := &Indicator{
		out:     out,
		symbols: symbols,
		enabled: caps.IsTTY,
	}
	if ind.enabled {
		ind.spin = spinner.New(
			spinner.CharSets[symbols.SpinnerSet],
			100*time.Millisecond,
			spinner.WithWriter(out),
		)
	}
	return ind
}

// Start begins the spinner with the given message.
func (i *Indicator) Start(message string) {
	if !i.enabled {
		fmt.Fprintf(i.out, "%s...\n", message)
		return
	}
	i.spin.Suffix = " " + message
	i.spin.Start()
}

// Finish stops the spinner and prints a final status line.
func (i *Indicator) Finish(message string, ok bool) {
	if i.enabled {
		i.spin.Stop()
	}
	symbol := i.symbols.Checkmark
	if !ok {
		symbol = i.symbols.Failure
	}
	fmt.Fprintf(i.out, "%s %s\n", symbol, message)
}
