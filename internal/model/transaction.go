package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus represents the lifecycle state of a transaction.
type TransactionStatus string

const (
	// StatusExpected marks a planned transaction that has not settled yet.
	StatusExpected TransactionStatus = "expected"
	// StatusProcessed marks a settled transaction, typically imported from a
	// bank statement.
	StatusProcessed TransactionStatus = "processed"
)

// Valid reports whether s is a known lifecycle state.
func (s TransactionStatus) Valid() bool {
	return s == StatusExpected || s == StatusProcessed
}

// Transaction is the central entity: one planned or settled money movement.
// Amount sign carries direction: positive = inflow, negative = outflow.
// Optional references are uuid.Nil until assigned.
type Transaction struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Date           time.Time
	Amount         decimal.Decimal
	Status         TransactionStatus
	Counterparty   string
	Description    string

	ProjectID  uuid.UUID
	CategoryID uuid.UUID
	DonorID    uuid.UUID

	// MatchedTransactionID links one expected and one processed transaction
	// that represent the same real-world payment. The link is symmetric: if
	// A points at B then B points at A. Only the reconciliation matcher
	// writes this field.
	MatchedTransactionID uuid.UUID
}

// IsMatched reports whether the transaction has a reconciliation counterpart.
func (t Transaction) IsMatched() bool {
	return t.MatchedTransactionID != uuid.Nil
}

// IsIncome reports whether the transaction is an inflow.
func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// IsExpense reports whether the transaction is an outflow.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// DateOnly truncates the transaction instant to midnight UTC.
func (t Transaction) DateOnly() time.Time {
	y, m, d := t.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
