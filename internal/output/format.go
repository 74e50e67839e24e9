// Package output provides terminal output formatting utilities for the
// treeflow CLI. This package is designed to have minimal dependencies to
// avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/treeflow/internal/graph"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintRunHeader prints a colored header before a graph run.
// Uses cyan for the graph name and dim text for the execution mode.
func PrintRunHeader(out io.Writer, name, mode string, workers int) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", cyan(name), dim(fmt.Sprintf("(%s, %d workers)", mode, workers)))
}

// PrintTaskLine prints a single task's outcome with a status symbol.
// Green checkmark for success, red cross for failure, yellow dash for skips.
func PrintTaskLine(out io.Writer, t *graph.Task) {
	switch t.Status() {
	case graph.StatusSucceeded:
		green := color.New(color.FgGreen, color.Bold).SprintFunc()
		fmt.Fprintf(out, "  %s %s\n", green("✓"), t.Name)
	case graph.StatusFailed:
		red := color.New(color.FgRed, color.Bold).SprintFunc()
		fmt.Fprintf(out, "  %s %s: %v\n", red("✗"), t.Name, t.Err())
	case graph.StatusSkipped:
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Fprintf(out, "  %s %s (skipped)\n", yellow("-"), t.Name)
	}
}

// PrintSummary prints the run summary with per-count coloring.
func PrintSummary(out io.Writer, s *graph.Summary) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(out, "\n%s succeeded, %s failed, %s skipped\n",
		green(fmt.Sprintf("%d", s.Succeeded)),
		red(fmt.Sprintf("%d", s.Failed)),
		yellow(fmt.Sprintf("%d", s.Skipped)))

	for _, f := range s.Failures {
		fmt.Fprintf(out, "  %s task %d (%s): %v\n", red("✗"), f.ID, f.Name, f.Err)
	}
}

// PrintWavePlan prints the parallel execution plan: one line per wave with
// the task names that may run concurrently.
func PrintWavePlan(out io.Writer, g *graph.TaskGraph, waves [][]int) {
	cyan := color.New(color.FgCyan).SprintFunc()
	for i, wave := range waves {
		names := make([]string, len(wave))
		for j, id := range wave {
			t, _ := g.Task(id)
			names[j] = t.Name
		}
		fmt.Fprintf(out, "%s %s\n", cyan(fmt.Sprintf("wave %d:", i)), strings.Join(names, ", "))
	}
}

// PrintError prints an error with red styling to the given writer.
func PrintError(out io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %v\n", red("Error:"), err)
}
