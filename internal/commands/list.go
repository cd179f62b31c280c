package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yfndev/ybudget/internal/id"
	"github.com/yfndev/ybudget/internal/model"
	"github.com/yfndev/ybudget/internal/normalize"
	"github.com/yfndev/ybudget/internal/txfilter"
)

func newListCommand() *cobra.Command {
	var statusFlag, fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions with resolved project and category names",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			txns, err := w.mem.Transactions().List(ctx, w.orgID)
			if err != nil {
				return err
			}
			loaded := txfilter.Of(txns)

			if fromFlag != "" && toFlag != "" {
				from, ok := normalize.ParseISO(fromFlag)
				if !ok {
					return fmt.Errorf("invalid --from date %q", fromFlag)
				}
				to, ok := normalize.ParseISO(toFlag)
				if !ok {
					return fmt.Errorf("invalid --to date %q", toFlag)
				}
				loaded = loaded.InRange(from, to)
			}

			filtered := loaded.Items()
			if statusFlag != "" {
				status := model.TransactionStatus(statusFlag)
				if !status.Valid() {
					return fmt.Errorf("unknown status %q", statusFlag)
				}
				var byStatus []model.Transaction
				for _, t := range filtered {
					if t.Status == status {
						byStatus = append(byStatus, t)
					}
				}
				filtered = byStatus
			}

			enriched, err := txfilter.EnrichNames(ctx, w.orgID, filtered, w.mem.ProjectNamer(), w.mem.CategoryNamer())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tAMOUNT\tSTATUS\tPROJECT\tCATEGORY\tCOUNTERPARTY\tMATCHED")
			for _, e := range enriched {
				matched := "-"
				if e.IsMatched() {
					matched = id.Short(e.MatchedTransactionID)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					id.Short(e.ID),
					normalize.FormatISO(e.Date),
					normalize.FormatAmount(e.Amount),
					e.Status,
					e.ProjectName,
					e.CategoryName,
					e.Counterparty,
					matched,
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "filter by status (expected|processed)")
	cmd.Flags().StringVar(&fromFlag, "from", "", "window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "window end (YYYY-MM-DD)")
	return cmd
}
