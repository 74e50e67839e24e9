package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ariel-frischer/treeflow/internal/output"
	"github.com/ariel-frischer/treeflow/internal/tree"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree <levels>",
	Short: "Decode a rooted-tree level sequence into a task graph",
	Long: `Decode a rooted-tree level sequence and print the resulting task graph.

A level sequence is a pre-order encoding of a rooted tree: entry i is the
depth of node i, the root has depth 1, and the parent of a node is the
nearest preceding node one level shallower. The command prints the dependency
edges and the parallel execution waves, then re-encodes the graph to confirm
the round trip.

Exit codes:
  0 - Sequence decoded successfully
  3 - Sequence is malformed`,
	Example: `  # A root with two children, one grandchild under the second child
  treeflow tree 1,2,2,3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return &exitError{code: ExitInvalidArguments, err: err}
		}

		levels, err := parseLevels(args[0])
		if err != nil {
			return &exitError{code: ExitInvalidArguments, err: err}
		}

		g, err := tree.Decode(levels, nil)
		if err != nil {
			return &exitError{code: ExitInvalidArguments, err: err}
		}
		waves, err := g.Waves()
		if err != nil {
			return &exitError{code: ExitInvalidArguments, err: err}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d nodes\n", g.Len())
		for _, t := range g.Tasks() {
			for _, dep := range t.Dependencies() {
				fmt.Fprintf(out, "  %d -> %d\n", dep, t.ID)
			}
		}
		output.PrintWavePlan(out, g, waves)

		encoded, err := tree.Encode(g)
		if err != nil {
			return &exitError{code: ExitInvalidArguments, err: err}
		}
		fmt.Fprintf(out, "round-trip: %s\n", formatLevels(encoded))
		return nil
	},
}

// parseLevels parses a comma- or space-separated level sequence.
func parseLevels(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty level sequence")
	}
	levels := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid level %q: %w", f, err)
		}
		levels[i] = n
	}
	return levels, nil
}

// formatLevels renders a level sequence as comma-separated values.
func formatLevels(levels []int) string {
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, ",")
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
