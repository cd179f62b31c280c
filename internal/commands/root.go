// Package commands wires the CLI surface. Each subcommand lives in its own
// file; the workspace helper loads config, books and stores for the
// commands that operate on an existing data directory.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yfndev/ybudget/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ybudget",
		Short:   "Nonprofit budgeting and bank reconciliation",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("dir", "d", ".", "data directory")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newReviewCommand())
	rootCmd.AddCommand(newBudgetCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newPlanCommand())
	rootCmd.AddCommand(newProjectCommand())
	rootCmd.AddCommand(newDonorCommand())
	rootCmd.AddCommand(newCategoriesCommand())

	return rootCmd
}
