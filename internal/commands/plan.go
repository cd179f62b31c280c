package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yfndev/ybudget/internal/auditlog"
	"github.com/yfndev/ybudget/internal/compliance"
	"github.com/yfndev/ybudget/internal/id"
	"github.com/yfndev/ybudget/internal/model"
	"github.com/yfndev/ybudget/internal/normalize"
	"github.com/yfndev/ybudget/internal/reconcile"
)

func newPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage planned (expected) transactions",
	}
	cmd.AddCommand(newPlanAddCommand())
	cmd.AddCommand(newPlanDeleteCommand())
	return cmd
}

func newPlanAddCommand() *cobra.Command {
	var amountFlag, dateFlag, counterpartyFlag, descriptionFlag string
	var projectFlag, categoryFlag, donorFlag string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Plan a future income or expense",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			amount, ok := normalize.ParseAmount(amountFlag)
			if !ok {
				return fmt.Errorf("invalid amount %q", amountFlag)
			}
			iso := normalize.DisplayToISO(dateFlag)
			if iso == "" {
				iso = dateFlag // accept ISO input directly
			}
			date, ok := normalize.ParseISO(iso)
			if !ok {
				return fmt.Errorf("invalid date %q", dateFlag)
			}

			projectID, err := id.Parse(projectFlag)
			if err != nil {
				return err
			}
			categoryID, err := id.Parse(categoryFlag)
			if err != nil {
				return err
			}
			donorID, err := id.Parse(donorFlag)
			if err != nil {
				return err
			}
			if projectID == uuid.Nil || categoryID == uuid.Nil {
				return fmt.Errorf("planned transactions need --project and --category")
			}

			// Same gate as reconciliation: donor funds must cover the
			// category's tax sphere.
			validator := compliance.NewValidator(w.mem.Donors(), w.mem.Categories())
			if err := validator.Validate(ctx, w.orgID, donorID, categoryID); err != nil {
				return err
			}

			t := model.Transaction{
				ID:             id.New(),
				OrganizationID: w.orgID,
				Date:           date,
				Amount:         amount,
				Status:         model.StatusExpected,
				Counterparty:   counterpartyFlag,
				Description:    descriptionFlag,
				ProjectID:      projectID,
				CategoryID:     categoryID,
				DonorID:        donorID,
			}
			if err := w.mem.Transactions().Insert(ctx, t); err != nil {
				return err
			}

			if err := w.saveBooks(ctx); err != nil {
				return err
			}
			recordPlan(w, t.ID, "planned", descriptionFlag)
			w.commit(fmt.Sprintf("plan: %s %s", normalize.FormatAmount(amount), descriptionFlag))

			fmt.Fprintf(cmd.OutOrStdout(), "Planned transaction %s.\n", id.Short(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&amountFlag, "amount", "", "amount, e.g. 1.250,00 or -89,90")
	cmd.Flags().StringVar(&dateFlag, "date", "", "date (DD.MM.YYYY or YYYY-MM-DD)")
	cmd.Flags().StringVar(&counterpartyFlag, "counterparty", "", "other party")
	cmd.Flags().StringVar(&descriptionFlag, "description", "", "purpose")
	cmd.Flags().StringVar(&projectFlag, "project", "", "project id")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "category id")
	cmd.Flags().StringVar(&donorFlag, "donor", "", "donor id (income only)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newPlanDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a planned transaction, unlinking any match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			txID, err := id.Parse(args[0])
			if err != nil {
				return err
			}

			validator := compliance.NewValidator(w.mem.Donors(), w.mem.Categories())
			matcher := reconcile.NewMatcher(w.mem.Transactions(), validator, w.log)
			if err := matcher.DeleteExpected(ctx, w.orgID, txID); err != nil {
				return err
			}

			if err := w.saveBooks(ctx); err != nil {
				return err
			}
			recordPlan(w, txID, "deleted", "")
			w.commit(fmt.Sprintf("plan: delete %s", id.Short(txID)))

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted planned transaction %s.\n", id.Short(txID))
			return nil
		},
	}
}

func recordPlan(w *workspace, txID uuid.UUID, action, details string) {
	err := auditlog.Append(w.dataDir, []auditlog.Entry{{
		Timestamp:     time.Now().UTC(),
		Operator:      w.cfg.Git.AuthorName,
		Action:        action,
		TransactionID: txID.String(),
		Details:       details,
	}})
	if err != nil {
		w.log.Warn().Err(err).Msg("audit log append failed")
	}
}
