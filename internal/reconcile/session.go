package reconcile

import (
	"context"

	"github.com/google/uuid"

	"github.com/yfndev/ybudget/internal/model"
)

// Session walks an operator through a queue of imported transactions, one at
// a time. Abandoning the current transaction has no side effects; only the
// Saved transition writes anything.
type Session struct {
	matcher *Matcher
	orgID   uuid.UUID
	queue   []model.Transaction
	pos     int
}

// NewSession creates a review session over a queue of pending transactions.
func NewSession(matcher *Matcher, orgID uuid.UUID, queue []model.Transaction) *Session {
	return &Session{matcher: matcher, orgID: orgID, queue: queue}
}

// Current returns the transaction under review, or false when the queue is
// exhausted.
func (s *Session) Current() (model.Transaction, bool) {
	if s.pos >= len(s.queue) {
		return model.Transaction{}, false
	}
	return s.queue[s.pos], true
}

// Remaining returns how many transactions are still queued, including the
// current one.
func (s *Session) Remaining() int {
	if s.pos >= len(s.queue) {
		return 0
	}
	return len(s.queue) - s.pos
}

// Skip abandons the current transaction and advances the queue.
func (s *Session) Skip() {
	if s.pos < len(s.queue) {
		s.pos++
	}
}

// Save attempts the Saved transition for the current transaction. Saved and
// Skipped outcomes advance the queue; a failure leaves the queue position in
// place so the operator can correct input and re-attempt.
func (s *Session) Save(ctx context.Context, in SaveInput) (Outcome, error) {
	current, ok := s.Current()
	if !ok {
		return OutcomePending, nil
	}

	outcome, err := s.matcher.Review(ctx, s.orgID, current.ID, in)
	if outcome == OutcomeSaved || outcome == OutcomeSkipped {
		s.pos++
	}
	return outcome, err
}
