package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yfndev/ybudget/internal/auditlog"
	"github.com/yfndev/ybudget/internal/importer"
)

func newImportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import bank statement CSVs as processed transactions",
		Long: "Imports the given statement file, or every CSV waiting in the " +
			"data directory's import/ folder. Imported transactions are " +
			"processed and unassigned until reviewed.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown statement format %q", format)
			}

			type job struct {
				name string
				path string
				move bool
			}
			var jobs []job
			if len(args) == 1 {
				jobs = append(jobs, job{name: args[0], path: args[0]})
			} else {
				files, err := importer.Scan(w.dataDir)
				if err != nil {
					return err
				}
				if len(files) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import.")
					return nil
				}
				for _, f := range files {
					jobs = append(jobs, job{name: f.Name, path: f.Path, move: true})
				}
			}

			total := 0
			for _, j := range jobs {
				f, err := os.Open(j.path)
				if err != nil {
					return fmt.Errorf("opening %s: %w", j.path, err)
				}
				rows, err := parser.Parse(f)
				f.Close()
				if err != nil {
					return fmt.Errorf("parsing %s: %w", j.name, err)
				}

				txns, warnings := importer.Convert(rows, w.orgID)
				for _, warning := range warnings {
					w.log.Warn().Str("file", j.name).Msg(warning)
				}

				var entries []auditlog.Entry
				for _, t := range txns {
					if err := w.mem.Transactions().Insert(ctx, t); err != nil {
						return err
					}
					entries = append(entries, auditlog.Entry{
						Timestamp:     time.Now().UTC(),
						Operator:      w.cfg.Git.AuthorName,
						Action:        "imported",
						TransactionID: t.ID.String(),
						Details:       j.name,
					})
				}
				if err := auditlog.Append(w.dataDir, entries); err != nil {
					return err
				}

				if j.move {
					if err := importer.MarkProcessed(w.dataDir, j.name); err != nil {
						return err
					}
				}
				total += len(txns)
			}

			if err := w.saveBooks(ctx); err != nil {
				return err
			}
			w.commit(fmt.Sprintf("import: %d transactions from %d statement(s)", total, len(jobs)))

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions. Run `ybudget review` to reconcile them.\n", total)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "statement", "statement parser format")
	return cmd
}
