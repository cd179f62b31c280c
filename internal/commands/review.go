package commands

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yfndev/ybudget/internal/auditlog"
	"github.com/yfndev/ybudget/internal/compliance"
	"github.com/yfndev/ybudget/internal/model"
	"github.com/yfndev/ybudget/internal/normalize"
	"github.com/yfndev/ybudget/internal/reconcile"
	"github.com/yfndev/ybudget/internal/txfilter"
)

func newReviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Reconcile imported transactions against planned ones",
		Long: "Walks through every processed transaction that has no category " +
			"yet, one at a time. Assign a project and category (and donor for " +
			"income), optionally match a planned transaction, or press enter " +
			"to decide later.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			all, err := w.mem.Transactions().List(ctx, w.orgID)
			if err != nil {
				return err
			}
			queue := txfilter.Before(all, time.Now().UTC().AddDate(0, 0, 1), func(t model.Transaction) bool {
				return t.Status == model.StatusProcessed && t.CategoryID == uuid.Nil
			})
			if len(queue) == 0 {
				fmt.Fprintln(out, "Nothing to review.")
				return nil
			}

			validator := compliance.NewValidator(w.mem.Donors(), w.mem.Categories())
			matcher := reconcile.NewMatcher(w.mem.Transactions(), validator, w.log)
			session := reconcile.NewSession(matcher, w.orgID, queue)

			projects, err := w.mem.Projects().List(ctx, w.orgID)
			if err != nil {
				return err
			}
			categories, err := w.mem.Categories().List(ctx, w.orgID)
			if err != nil {
				return err
			}
			donors, err := w.mem.Donors().List(ctx, w.orgID)
			if err != nil {
				return err
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			saved, skipped := 0, 0

			for {
				current, ok := session.Current()
				if !ok {
					break
				}

				fmt.Fprintf(out, "\n[%d left] %s  %s  %s  %s\n",
					session.Remaining(),
					normalize.FormatISO(current.Date),
					normalize.FormatAmount(current.Amount),
					current.Counterparty,
					current.Description,
				)

				in := reconcile.SaveInput{}
				in.ProjectID = chooseProject(out, scanner, projects)
				in.CategoryID = chooseCategory(out, scanner, categories)
				if current.IsIncome() {
					in.DonorID = chooseDonor(out, scanner, donors)
				}

				candidates, err := matcher.Candidates(ctx, w.orgID)
				if err != nil {
					return err
				}
				in.MatchedTransactionID = chooseMatch(out, scanner, candidates)

				outcome, err := session.Save(ctx, in)
				switch outcome {
				case reconcile.OutcomeSaved:
					saved++
					recordReview(w, current.ID, "saved", "")
				case reconcile.OutcomeSkipped:
					skipped++
					recordReview(w, current.ID, "skipped", "missing assignment")
				default:
					// The transaction stays current for re-attempt.
					fmt.Fprintf(out, "Not saved: %v\n", err)
				}
			}

			if err := w.saveBooks(ctx); err != nil {
				return err
			}
			w.commit(fmt.Sprintf("review: %d saved, %d skipped", saved, skipped))

			fmt.Fprintf(out, "\nReview done: %d saved, %d skipped.\n", saved, skipped)
			return nil
		},
	}
}

func recordReview(w *workspace, txID uuid.UUID, action, details string) {
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

func chooseProject(out io.Writer, scanner *bufio.Scanner, projects []model.Project) uuid.UUID {
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	idx := choose(out, scanner, "Project", names)
	if idx < 0 {
		return uuid.Nil
	}
	return projects[idx].ID
}

func chooseCategory(out io.Writer, scanner *bufio.Scanner, categories []model.Category) uuid.UUID {
	var leaves []model.Category
	for _, c := range categories {
		if !c.IsGroup() {
			leaves = append(leaves, c)
		}
	}
	names := make([]string, len(leaves))
	for i, c := range leaves {
		names[i] = fmt.Sprintf("%s (%s)", c.Name, c.TaxSphere)
	}
	idx := choose(out, scanner, "Category", names)
	if idx < 0 {
		return uuid.Nil
	}
	return leaves[idx].ID
}

func chooseDonor(out io.Writer, scanner *bufio.Scanner, donors []model.Donor) uuid.UUID {
	names := make([]string, len(donors))
	for i, d := range donors {
		names[i] = d.Name
	}
	idx := choose(out, scanner, "Donor", names)
	if idx < 0 {
		return uuid.Nil
	}
	return donors[idx].ID
}

func chooseMatch(out io.Writer, scanner *bufio.Scanner, candidates []model.Transaction) uuid.UUID {
	names := make([]string, len(candidates))
	for i, t := range candidates {
		names[i] = fmt.Sprintf("%s  %s  %s", normalize.FormatISO(t.Date), normalize.FormatAmount(t.Amount), t.Description)
	}
	idx := choose(out, scanner, "Match planned transaction", names)
	if idx < 0 {
		return uuid.Nil
	}
	return candidates[idx].ID
}

// choose prints a numbered list and reads a selection. Empty input means
// none; out-of-range input is re-prompted.
func choose(out io.Writer, scanner *bufio.Scanner, label string, names []string) int {
	if len(names) == 0 {
		return -1
	}
	for i, name := range names {
		fmt.Fprintf(out, "  %2d) %s\n", i+1, name)
	}
	for {
		fmt.Fprintf(out, "%s (1-%d, enter for none): ", label, len(names))
		if !scanner.Scan() {
			return -1
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			return -1
		}
		n, err := strconv.Atoi(input)
		if err == nil && n >= 1 && n <= len(names) {
			return n - 1
		}
		fmt.Fprintln(out, "Invalid selection.")
	}
}
