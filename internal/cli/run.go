package cli

import (
	"fmt"
	"os"

	"github.com/ariel-frischer/treeflow/internal/graph"
	"github.com/ariel-frischer/treeflow/internal/manifest"
	"github.com/ariel-frischer/treeflow/internal/output"
	"github.com/ariel-frischer/treeflow/internal/progress"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Execute a task-graph manifest",
	Long: `Execute a task-graph manifest, running tasks in dependency order.

The run command:
- Parses and validates the manifest
- Linearizes the graph, rejecting cycles before anything runs
- Executes tasks wave-parallel by default, sequential with --sequential
- Prints per-task outcomes and a final summary

A task whose command fails is recorded with its error; its direct and
transitive dependents are skipped, never run with missing inputs.

Exit codes:
  0 - All tasks completed successfully
  1 - One or more tasks failed or were skipped
  3 - Invalid arguments, malformed manifest, or dependency cycle`,
	Example: `  # Execute a manifest with the default worker pool (one worker per CPU)
  treeflow run pipeline.yml

  # Execute strictly in topological order on a single worker
  treeflow run pipeline.yml --sequential

  # Bound the worker pool
  treeflow run pipeline.yml --max-workers 2

  # Show a spinner while tasks run
  treeflow run pipeline.yml --progress`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return &exitError{code: ExitInvalidArguments, err: err}
		}

		sequential, _ := cmd.Flags().GetBool("sequential")
		maxWorkers, _ := cmd.Flags().GetInt("max-workers")
		showProgress, _ := cmd.Flags().GetBool("progress")
		if maxWorkers == 0 {
			maxWorkers = cfg.MaxWorkers
		}
		parallel := cfg.Parallel && !sequential
		showProgress = showProgress || cfg.Progress

		m, err := manifest.Load(args[0])
		if err != nil {
			return &exitError{code: ExitInvalidArguments, err: err}
		}
		g, err := manifest.Build(m)
		if err != nil {
			return &exitError{code: ExitInvalidArguments, err: err}
		}

		executor := graph.NewExecutor(
			graph.WithParallel(parallel),
			graph.WithMaxWorkers(maxWorkers),
		)

		out := cmd.OutOrStdout()
		mode := "parallel"
		if !parallel {
			mode = "sequential"
		}
		output.PrintRunHeader(out, m.Graph.Name, mode, executor.MaxWorkers())

		var ind *progress.Indicator
		if showProgress {
			ind = progress.NewIndicator(os.Stdout, progress.DetectTerminalCapabilities())
			ind.Start(fmt.Sprintf("running %d tasks", g.Len()))
		}

		summary, err := executor.Execute(cmd.Context(), g)
		if ind != nil {
			ind.Finish(fmt.Sprintf("ran %s", m.Graph.Name), err == nil && summary != nil && summary.Failed == 0)
		}
		if err != nil {
			return &exitError{code: ExitInvalidArguments, err: err}
		}

		order, _ := g.Linearize()
		for _, id := range order {
			t, _ := g.Task(id)
			output.PrintTaskLine(out, t)
		}
		output.PrintSummary(out, summary)

		if summary.Failed > 0 || summary.Skipped > 0 {
			return &exitError{code: ExitTasksFailed}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().Bool("sequential", false, "Run tasks strictly in topological order")
	runCmd.Flags().Int("max-workers", 0, "Worker pool size (0 = number of CPUs)")
	runCmd.Flags().Bool("progress", false, "Show progress indicators (spinner) during execution")
	rootCmd.AddCommand(runCmd)
}
