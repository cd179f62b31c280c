package commands

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yfndev/ybudget/internal/books"
	"github.com/yfndev/ybudget/internal/config"
	"github.com/yfndev/ybudget/internal/gitops"
	"github.com/yfndev/ybudget/internal/logging"
	"github.com/yfndev/ybudget/internal/store"
)

// workspace is an opened data directory: config, logger and a store seeded
// from the CSV books.
type workspace struct {
	dataDir string
	cfg     *config.Config
	orgID   uuid.UUID
	mem     *store.Memory
	log     zerolog.Logger
}

// openWorkspace loads the data directory named by the --dir flag.
func openWorkspace(cmd *cobra.Command) (*workspace, error) {
	dataDir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(filepath.Join(dataDir, config.FileName))
	if err != nil {
		return nil, err
	}
	orgID, err := cfg.OrganizationID()
	if err != nil {
		return nil, err
	}

	b, err := books.Load(filepath.Join(dataDir, cfg.Books.Dir))
	if err != nil {
		return nil, err
	}

	mem := store.NewMemory()
	if err := b.Seed(cmd.Context(), mem); err != nil {
		return nil, err
	}

	return &workspace{
		dataDir: dataDir,
		cfg:     cfg,
		orgID:   orgID,
		mem:     mem,
		log:     logging.New(cfg.Logging.Level),
	}, nil
}

// saveBooks snapshots the store back to the CSV books.
func (w *workspace) saveBooks(ctx context.Context) error {
	snap, err := books.Snapshot(ctx, w.mem, w.orgID)
	if err != nil {
		return err
	}
	return books.Save(filepath.Join(w.dataDir, w.cfg.Books.Dir), snap)
}

// commit records the session in git when auto-commit is on. Failures are
// logged, not fatal: the books on disk are already saved.
func (w *workspace) commit(message string) {
	hash, err := gitops.CommitSession(w.dataDir, message, w.cfg.Git)
	if err != nil {
		w.log.Warn().Err(err).Msg("git commit failed")
		return
	}
	if hash != "" {
		w.log.Info().Str("commit", hash).Msg("books committed")
	}
}
