// Package cli implements the treeflow command-line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/treeflow/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "treeflow",
	Short: "Dependency-graph task executor with tree encodings",
	Long: `Treeflow runs task graphs: named tasks with declared dependency edges,
validated as a DAG, linearized into parallel execution waves, and executed
with a bounded worker pool. Graphs are described in YAML manifests or as
rooted-tree level sequences.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to project config file (default .treeflow.yml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
}

// exitError carries a process exit code through cobra's error return.
type exitError struct {
	code int
	err  error
}

// Error implements the error interface.
func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit code %d", e.code)
	}
	return e.err.Error()
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", ee.err)
		}
		return ee.code
	}
	fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	return ExitInvalidArguments
}

// loadConfig loads the layered configuration and applies the global
// --no-color flag.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor || cfg.NoColor {
		color.NoColor = true
	}
	return cfg, nil
}
