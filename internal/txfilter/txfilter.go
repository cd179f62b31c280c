// Package txfilter classifies and filters transaction snapshots for
// reporting views. Like the ledger, everything here is pure over the input
// slice.
package txfilter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yfndev/ybudget/internal/model"
)

// Direction is the income/expense classification of a transaction.
type Direction int

const (
	// DirectionNeutral marks a zero amount. Callers must handle it
	// explicitly; it is neither income nor expense.
	DirectionNeutral Direction = iota
	DirectionIncome
	DirectionExpense
)

// Classify returns the direction of a transaction by amount sign.
func Classify(t model.Transaction) Direction {
	switch {
	case t.Amount.IsPositive():
		return DirectionIncome
	case t.Amount.IsNegative():
		return DirectionExpense
	}
	return DirectionNeutral
}

// InRange returns transactions whose date falls in [from, to], inclusive on
// both bounds.
func InRange(txns []model.Transaction, from, to time.Time) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		d := t.DateOnly()
		if !d.Before(from) && !d.After(to) {
			out = append(out, t)
		}
	}
	return out
}

// Before returns transactions dated strictly before cutoff. A non-nil pred
// further restricts the result, e.g. to processed transactions not yet
// matched.
func Before(txns []model.Transaction, cutoff time.Time, pred func(model.Transaction) bool) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if !t.DateOnly().Before(cutoff) {
			continue
		}
		if pred != nil && !pred(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// BatchNamer resolves a set of entity ids to display names in a single
// lookup. Ids that do not resolve are simply absent from the map.
type BatchNamer interface {
	Names(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// Enriched is a transaction joined with its resolved display names. All
// original fields are preserved.
type Enriched struct {
	model.Transaction
	ProjectName  string
	CategoryName string
}

// EnrichNames resolves project and category names for a batch of
// transactions. The unique set of referenced ids is resolved once per
// aggregate and joined back in, never one lookup per transaction.
func EnrichNames(ctx context.Context, orgID uuid.UUID, txns []model.Transaction, projects, categories BatchNamer) ([]Enriched, error) {
	var projectIDs, categoryIDs []uuid.UUID
	seenProject := make(map[uuid.UUID]bool)
	seenCategory := make(map[uuid.UUID]bool)
	for _, t := range txns {
		if t.ProjectID != uuid.Nil && !seenProject[t.ProjectID] {
			seenProject[t.ProjectID] = true
			projectIDs = append(projectIDs, t.ProjectID)
		}
		if t.CategoryID != uuid.Nil && !seenCategory[t.CategoryID] {
			seenCategory[t.CategoryID] = true
			categoryIDs = append(categoryIDs, t.CategoryID)
		}
	}

	projectNames := map[uuid.UUID]string{}
	if len(projectIDs) > 0 {
		var err error
		projectNames, err = projects.Names(ctx, orgID, projectIDs)
		if err != nil {
			return nil, err
		}
	}
	categoryNames := map[uuid.UUID]string{}
	if len(categoryIDs) > 0 {
		var err error
		categoryNames, err = categories.Names(ctx, orgID, categoryIDs)
		if err != nil {
			return nil, err
		}
	}

	out := make([]Enriched, len(txns))
	for i, t := range txns {
		out[i] = Enriched{
			Transaction:  t,
			ProjectName:  projectNames[t.ProjectID],
			CategoryName: categoryNames[t.CategoryID],
		}
	}
	return out, nil
}
