package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yfndev/ybudget/internal/books"
	"github.com/yfndev/ybudget/internal/config"
	"github.com/yfndev/ybudget/internal/gitops"
)

func newInitCommand() *cobra.Command {
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init <organization-name>",
		Short: "Create a new data directory with config and starter categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := cmd.Flags().GetString("dir")
			if err != nil {
				return err
			}

			cfgPath := filepath.Join(dataDir, config.FileName)
			if _, err := os.Stat(cfgPath); err == nil {
				return fmt.Errorf("%s already exists", cfgPath)
			}

			if err := os.MkdirAll(dataDir, 0o755); err != nil {
				return fmt.Errorf("creating data dir: %w", err)
			}

			cfg := config.Default(args[0])
			if noGit {
				cfg.Git.AutoCommit = false
			}
			if err := config.Save(cfgPath, cfg); err != nil {
				return err
			}

			orgID, err := cfg.OrganizationID()
			if err != nil {
				return err
			}

			booksDir := filepath.Join(dataDir, cfg.Books.Dir)
			b := &books.Books{Categories: books.DefaultCategories(orgID)}
			if err := books.Save(booksDir, b); err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Join(dataDir, "import"), 0o755); err != nil {
				return fmt.Errorf("creating import dir: %w", err)
			}

			if cfg.Git.AutoCommit && !gitops.IsRepo(dataDir) {
				if err := gitops.Init(dataDir); err != nil {
					return err
				}
				if _, err := gitops.CommitSession(dataDir, "init: new organization books", cfg.Git); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized %q in %s\n", args[0], dataDir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noGit, "no-git", false, "skip git versioning of the books")
	return cmd
}
