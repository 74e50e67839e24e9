package cli

import (
	"fmt"

	"github.com/ariel-frischer/treeflow/internal/manifest"
	"github.com/ariel-frischer/treeflow/internal/output"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a task-graph manifest without running it",
	Long: `Validate a task-graph manifest for structural correctness.

Checks required fields, unique task names, known depends_on references, and
that the edge set forms a DAG. On success, prints the parallel execution
plan: tasks grouped into waves that may run concurrently.

Exit codes:
  0 - Manifest is valid
  3 - Manifest is invalid or contains a dependency cycle`,
	Example: `  # Validate a manifest and show its wave plan
  treeflow validate pipeline.yml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return &exitError{code: ExitInvalidArguments, err: err}
		}

		m, err := manifest.Load(args[0])
		if err != nil {
			return &exitError{code: ExitInvalidArguments, err: err}
		}
		g, err := manifest.Build(m)
		if err != nil {
			return &exitError{code: ExitInvalidArguments, err: err}
		}
		waves, err := g.Waves()
		if err != nil {
			return &exitError{code: ExitInvalidArguments, err: err}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d tasks, %d waves\n", m.Graph.Name, g.Len(), len(waves))
		output.PrintWavePlan(out, g, waves)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
