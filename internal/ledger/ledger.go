// Package ledger reduces transaction snapshots into the budget figures shown
// on dashboards. All functions are pure over their input slice: no clock, no
// ordering assumptions, identical output for identical input.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yfndev/ybudget/internal/model"
)

// Summary holds the four budget figures.
type Summary struct {
	// CurrentBalance is the signed sum over all processed transactions.
	// Never floored: a large settled expense makes it negative.
	CurrentBalance decimal.Decimal
	// ExpectedIncome is the sum over positive expected transactions.
	ExpectedIncome decimal.Decimal
	// ExpectedExpenses is the absolute sum over negative expected
	// transactions.
	ExpectedExpenses decimal.Decimal
	// AvailableBudget is max(0, CurrentBalance+ExpectedIncome-ExpectedExpenses).
	// Floored at zero for display; callers must not read a zero as
	// break-even.
	AvailableBudget decimal.Decimal
}

// Summarize computes the budget summary for one organization's (optionally
// project-scoped) transaction snapshot. Empty input yields all zeros.
func Summarize(txns []model.Transaction) Summary {
	var s Summary
	for _, t := range txns {
		switch t.Status {
		case model.StatusProcessed:
			s.CurrentBalance = s.CurrentBalance.Add(t.Amount)
		case model.StatusExpected:
			if t.Amount.IsPositive() {
				s.ExpectedIncome = s.ExpectedIncome.Add(t.Amount)
			} else if t.Amount.IsNegative() {
				s.ExpectedExpenses = s.ExpectedExpenses.Add(t.Amount.Abs())
			}
		}
	}

	available := s.CurrentBalance.Add(s.ExpectedIncome).Sub(s.ExpectedExpenses)
	if available.IsNegative() {
		available = decimal.Zero
	}
	s.AvailableBudget = available
	return s
}

// Window scopes AvailableInWindow to an inclusive date range and an optional
// project (uuid.Nil = all projects).
type Window struct {
	From      time.Time
	To        time.Time
	ProjectID uuid.UUID
}

// AvailableInWindow computes the available budget inside a date window by
// decomposing transactions into three mutually exclusive buckets:
// planned-unmatched income, received income, and spent expense. The result
// is plannedIncome + received - spent, unfloored; display callers floor at
// zero separately.
func AvailableInWindow(txns []model.Transaction, w Window) decimal.Decimal {
	planned := decimal.Zero
	received := decimal.Zero
	spent := decimal.Zero

	for _, t := range txns {
		d := t.DateOnly()
		if d.Before(w.From) || d.After(w.To) {
			continue
		}
		if w.ProjectID != uuid.Nil && t.ProjectID != w.ProjectID {
			continue
		}

		switch {
		case t.Status == model.StatusExpected && t.Amount.IsPositive() && !t.IsMatched():
			planned = planned.Add(t.Amount)
		case t.Status == model.StatusProcessed && t.Amount.IsPositive():
			received = received.Add(t.Amount)
		case t.Status == model.StatusProcessed && t.Amount.IsNegative():
			spent = spent.Add(t.Amount.Abs())
		}
	}

	return planned.Add(received).Sub(spent)
}
