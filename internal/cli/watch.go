package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/treeflow/internal/graph"
	"github.com/ariel-frischer/treeflow/internal/manifest"
	"github.com/ariel-frischer/treeflow/internal/output"
	"github.com/ariel-frischer/treeflow/internal/watcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-run a manifest whenever it changes",
	Long: `Watch a task-graph manifest and re-run it on every change.

The manifest is executed once on startup and again after each save, with a
short debounce so editors that write in several steps trigger a single run.
A broken intermediate save is reported and watching continues. Press Ctrl+C
to stop.`,
	Example: `  # Re-run the pipeline on every save
  treeflow watch pipeline.yml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return &exitError{code: ExitInvalidArguments, err: err}
		}

		out := cmd.OutOrStdout()
		errOut := cmd.ErrOrStderr()
		path := args[0]

		runOnce := func() {
			m, err := manifest.Load(path)
			if err != nil {
				output.PrintError(errOut, err)
				return
			}
			g, err := manifest.Build(m)
			if err != nil {
				output.PrintError(errOut, err)
				return
			}
			executor := graph.NewExecutor(
				graph.WithParallel(cfg.Parallel),
				graph.WithMaxWorkers(cfg.MaxWorkers),
			)
			summary, err := executor.Execute(cmd.Context(), g)
			if err != nil {
				output.PrintError(errOut, err)
				return
			}
			output.PrintSummary(out, summary)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		runOnce()
		fmt.Fprintf(out, "\nwatching %s (Ctrl+C to stop)\n", path)

		w := watcher.New(path, runOnce)
		if err := w.Watch(ctx); err != nil {
			return &exitError{code: ExitInvalidArguments, err: err}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
