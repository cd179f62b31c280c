package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yfndev/ybudget/internal/id"
	"github.com/yfndev/ybudget/internal/ledger"
	"github.com/yfndev/ybudget/internal/model"
	"github.com/yfndev/ybudget/internal/normalize"
)

func newBudgetCommand() *cobra.Command {
	var projectFlag, fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show the organization's budget summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			txns, err := w.mem.Transactions().List(ctx, w.orgID)
			if err != nil {
				return err
			}

			projectID, err := id.Parse(projectFlag)
			if err != nil {
				return err
			}
			if projectID != uuid.Nil {
				var scoped []model.Transaction
				for _, t := range txns {
					if t.ProjectID == projectID {
						scoped = append(scoped, t)
					}
				}
				txns = scoped
			}

			s := ledger.Summarize(txns)
			fmt.Fprintf(out, "Current balance:   %14s\n", normalize.FormatAmount(s.CurrentBalance))
			fmt.Fprintf(out, "Expected income:   %14s\n", normalize.FormatAmount(s.ExpectedIncome))
			fmt.Fprintf(out, "Expected expenses: %14s\n", normalize.FormatAmount(s.ExpectedExpenses))
			fmt.Fprintf(out, "Available budget:  %14s\n", normalize.FormatAmount(s.AvailableBudget))

			if fromFlag != "" && toFlag != "" {
				from, ok := normalize.ParseISO(fromFlag)
				if !ok {
					return fmt.Errorf("invalid --from date %q", fromFlag)
				}
				to, ok := normalize.ParseISO(toFlag)
				if !ok {
					return fmt.Errorf("invalid --to date %q", toFlag)
				}
				available := ledger.AvailableInWindow(txns, ledger.Window{
					From:      from,
					To:        to,
					ProjectID: projectID,
				})
				fmt.Fprintf(out, "\nAvailable %s..%s: %s\n", fromFlag, toFlag, normalize.FormatAmount(available))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "scope to one project id")
	cmd.Flags().StringVar(&fromFlag, "from", "", "window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "window end (YYYY-MM-DD)")
	return cmd
}
