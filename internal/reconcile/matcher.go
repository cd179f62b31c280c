// Package reconcile drives manual reconciliation of imported bank
// transactions against the pool of planned expected transactions. One
// transaction is reviewed at a time; the matcher enforces the invariants
// (compliance gate, symmetric match link, two-step commit), not candidate
// scoring.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yfndev/ybudget/internal/compliance"
	"github.com/yfndev/ybudget/internal/errs"
	"github.com/yfndev/ybudget/internal/model"
	"github.com/yfndev/ybudget/internal/store"
)

// Outcome is the review result for one transaction.
type Outcome int

const (
	// OutcomePending means the save did not go through; the transaction
	// stays in the review queue for re-attempt.
	OutcomePending Outcome = iota
	// OutcomeSkipped means the operator deferred the decision; the
	// transaction was left unmodified.
	OutcomeSkipped
	// OutcomeSaved means the transaction was assigned and, if a match was
	// selected, symmetrically linked.
	OutcomeSaved
)

// SaveInput carries the operator's assignment for the transaction under
// review. ProjectID and CategoryID are required for a save; DonorID is
// honored only for income; MatchedTransactionID selects an expected
// counterpart, uuid.Nil for none.
type SaveInput struct {
	ProjectID            uuid.UUID
	CategoryID           uuid.UUID
	DonorID              uuid.UUID
	MatchedTransactionID uuid.UUID
}

// Matcher performs the save/skip transitions against the transaction store.
type Matcher struct {
	txns      store.Transactions
	validator *compliance.Validator
	log       zerolog.Logger
}

// NewMatcher creates a Matcher.
func NewMatcher(txns store.Transactions, validator *compliance.Validator, log zerolog.Logger) *Matcher {
	return &Matcher{txns: txns, validator: validator, log: log}
}

// Review runs the state machine for one transaction: Pending -> Skipped when
// required assignments are missing, Pending -> Saved when the compliance
// gate passes and both patches commit. A failed save leaves the transaction
// Pending and untouched from the reader's point of view; re-issuing the same
// input converges to the same linked state.
func (m *Matcher) Review(ctx context.Context, orgID, txID uuid.UUID, in SaveInput) (Outcome, error) {
	if in.ProjectID == uuid.Nil || in.CategoryID == uuid.Nil {
		m.log.Warn().Str("transaction", txID.String()).Msg("missing project or category, skipping")
		return OutcomeSkipped, nil
	}

	tr, err := m.txns.Get(ctx, orgID, txID)
	if err != nil {
		return OutcomePending, err
	}

	donorID := in.DonorID
	if !tr.IsIncome() {
		// A donor is only meaningful on income; one supplied on an
		// expense is dropped, not rejected.
		donorID = uuid.Nil
	}

	// Compliance is a gate, not an advisory check.
	if err := m.validator.Validate(ctx, orgID, donorID, in.CategoryID); err != nil {
		return OutcomePending, err
	}

	if in.MatchedTransactionID != uuid.Nil {
		if in.MatchedTransactionID == txID {
			return OutcomePending, fmt.Errorf("transaction %s cannot be matched to itself", txID)
		}
		counterpart, err := m.txns.Get(ctx, orgID, in.MatchedTransactionID)
		if err != nil {
			return OutcomePending, err
		}
		// A match pairs one expected with one processed transaction.
		if counterpart.Status == tr.Status {
			return OutcomePending, fmt.Errorf("transaction %s is %s, cannot match two %s transactions",
				counterpart.ID, counterpart.Status, tr.Status)
		}
		if counterpart.IsMatched() && counterpart.MatchedTransactionID != txID {
			return OutcomePending, fmt.Errorf("transaction %s is already matched to %s",
				counterpart.ID, counterpart.MatchedTransactionID)
		}
	}

	// Patch the reviewed transaction first and confirm it durable before
	// touching the counterpart, so no reader ever observes a back-link to a
	// record that lacks its own fields.
	patch := store.TransactionPatch{
		ProjectID:  &in.ProjectID,
		CategoryID: &in.CategoryID,
	}
	if donorID != uuid.Nil {
		patch.DonorID = &donorID
	}
	if in.MatchedTransactionID != uuid.Nil {
		patch.MatchedTransactionID = &in.MatchedTransactionID
	}
	if err := m.txns.Patch(ctx, orgID, txID, patch); err != nil {
		return OutcomePending, persistence("saving reviewed transaction", err)
	}

	if in.MatchedTransactionID != uuid.Nil {
		back := txID
		err := m.txns.Patch(ctx, orgID, in.MatchedTransactionID, store.TransactionPatch{
			MatchedTransactionID: &back,
		})
		if err != nil {
			return OutcomePending, persistence("linking matched transaction", err)
		}
	}

	m.log.Info().
		Str("transaction", txID.String()).
		Str("match", in.MatchedTransactionID.String()).
		Msg("transaction reconciled")
	return OutcomeSaved, nil
}

// Candidates returns the expected, not-yet-matched transactions of the
// organization: the pool the operator picks a match from. Ranking is
// operator-driven; the list is merely date-ordered.
func (m *Matcher) Candidates(ctx context.Context, orgID uuid.UUID) ([]model.Transaction, error) {
	all, err := m.txns.List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	var out []model.Transaction
	for _, t := range all {
		if t.Status == model.StatusExpected && !t.IsMatched() {
			out = append(out, t)
		}
	}
	return out, nil
}

// DeleteExpected removes a planned transaction. If it is matched, the
// counterpart's back-link is cleared first so no dangling reference is ever
// observable.
func (m *Matcher) DeleteExpected(ctx context.Context, orgID, txID uuid.UUID) error {
	tr, err := m.txns.Get(ctx, orgID, txID)
	if err != nil {
		return err
	}
	if tr.Status != model.StatusExpected {
		return fmt.Errorf("transaction %s is %s, only expected transactions may be deleted", txID, tr.Status)
	}

	if tr.IsMatched() {
		cleared := uuid.Nil
		err := m.txns.Patch(ctx, orgID, tr.MatchedTransactionID, store.TransactionPatch{
			MatchedTransactionID: &cleared,
		})
		var nf *errs.NotFoundError
		if err != nil && !errors.As(err, &nf) {
			return persistence("unlinking matched transaction", err)
		}
	}

	if err := m.txns.Delete(ctx, orgID, txID); err != nil {
		return persistence("deleting expected transaction", err)
	}
	return nil
}

// persistence wraps raw storage failures while letting already-typed
// NotFound/AccessDenied errors pass through untouched.
func persistence(op string, err error) error {
	var nf *errs.NotFoundError
	var ad *errs.AccessDeniedError
	if errors.As(err, &nf) || errors.As(err, &ad) {
		return err
	}
	return &errs.PersistenceError{Op: op, Err: err}
}
