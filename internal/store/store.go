// Package store defines the document-store boundary the budgeting core
// writes through, plus an in-memory implementation. Every record is
// addressed by id, scoped to one organization, and patched atomically.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yfndev/ybudget/internal/model"
)

// TransactionPatch describes a partial update to a transaction. Nil fields
// are left untouched. Setting MatchedTransactionID to a pointer at uuid.Nil
// clears the match link.
type TransactionPatch struct {
	Amount               *decimal.Decimal
	Date                 *time.Time
	Status               *model.TransactionStatus
	Counterparty         *string
	Description          *string
	ProjectID            *uuid.UUID
	CategoryID           *uuid.UUID
	DonorID              *uuid.UUID
	MatchedTransactionID *uuid.UUID
}

// Transactions is the transaction store boundary.
type Transactions interface {
	Get(ctx context.Context, orgID, id uuid.UUID) (model.Transaction, error)
	List(ctx context.Context, orgID uuid.UUID) ([]model.Transaction, error)
	Insert(ctx context.Context, t model.Transaction) error
	Patch(ctx context.Context, orgID, id uuid.UUID, p TransactionPatch) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// Categories is the category store boundary.
type Categories interface {
	Get(ctx context.Context, orgID, id uuid.UUID) (model.Category, error)
	List(ctx context.Context, orgID uuid.UUID) ([]model.Category, error)
	Insert(ctx context.Context, c model.Category) error
}

// Donors is the donor store boundary.
type Donors interface {
	Get(ctx context.Context, orgID, id uuid.UUID) (model.Donor, error)
	List(ctx context.Context, orgID uuid.UUID) ([]model.Donor, error)
	Insert(ctx context.Context, d model.Donor) error
}

// Projects is the project store boundary.
type Projects interface {
	Get(ctx context.Context, orgID, id uuid.UUID) (model.Project, error)
	List(ctx context.Context, orgID uuid.UUID) ([]model.Project, error)
	Insert(ctx context.Context, p model.Project) error
}

// Namer resolves a batch of entity ids to display names in one lookup.
type Namer interface {
	Names(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error)
}
