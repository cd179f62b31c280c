package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yfndev/ybudget/internal/errs"
	"github.com/yfndev/ybudget/internal/model"
)

var (
	orgA = uuid.New()
	orgB = uuid.New()
)

func txn(org uuid.UUID, amount string, status model.TransactionStatus) model.Transaction {
	d, _ := decimal.NewFromString(amount)
	return model.Transaction{
		ID:             uuid.New(),
		OrganizationID: org,
		Date:           time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount:         d,
		Status:         status,
	}
}

func TestMemory_GetUnknownTransaction(t *testing.T) {
	m := NewMemory()
	_, err := m.Transactions().Get(context.Background(), orgA, uuid.New())

	var nf *errs.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "transaction", nf.Entity)
}

func TestMemory_TenantIsolation(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	mine := txn(orgA, "100", model.StatusProcessed)
	require.NoError(t, m.Transactions().Insert(ctx, mine))

	// Reading another tenant's record is denied, not filtered.
	_, err := m.Transactions().Get(ctx, orgB, mine.ID)
	var denied *errs.AccessDeniedError
	require.ErrorAs(t, err, &denied)

	// Patching across tenants is denied too.
	status := model.StatusExpected
	err = m.Transactions().Patch(ctx, orgB, mine.ID, TransactionPatch{Status: &status})
	require.ErrorAs(t, err, &denied)

	// Listing only ever sees the caller's organization.
	other := txn(orgB, "50", model.StatusProcessed)
	require.NoError(t, m.Transactions().Insert(ctx, other))

	listed, err := m.Transactions().List(ctx, orgA)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, mine.ID, listed[0].ID)
}

func TestMemory_PatchAppliesOnlySetFields(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	tr := txn(orgA, "-42.50", model.StatusProcessed)
	tr.Description = "office rent"
	require.NoError(t, m.Transactions().Insert(ctx, tr))

	project := uuid.New()
	require.NoError(t, m.Transactions().Patch(ctx, orgA, tr.ID, TransactionPatch{ProjectID: &project}))

	got, err := m.Transactions().Get(ctx, orgA, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, project, got.ProjectID)
	assert.Equal(t, "office rent", got.Description)
	assert.True(t, got.Amount.Equal(tr.Amount))
}

func TestMemory_PatchClearsMatchLink(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	tr := txn(orgA, "10", model.StatusExpected)
	tr.MatchedTransactionID = uuid.New()
	require.NoError(t, m.Transactions().Insert(ctx, tr))

	cleared := uuid.Nil
	require.NoError(t, m.Transactions().Patch(ctx, orgA, tr.ID, TransactionPatch{MatchedTransactionID: &cleared}))

	got, err := m.Transactions().Get(ctx, orgA, tr.ID)
	require.NoError(t, err)
	assert.False(t, got.IsMatched())
}

func TestMemory_ListIsSortedSnapshot(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	older := txn(orgA, "1", model.StatusProcessed)
	older.Date = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := txn(orgA, "2", model.StatusProcessed)
	newer.Date = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, m.Transactions().Insert(ctx, newer))
	require.NoError(t, m.Transactions().Insert(ctx, older))

	listed, err := m.Transactions().List(ctx, orgA)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, older.ID, listed[0].ID)

	// Mutating the snapshot must not leak back into the store.
	listed[0].Description = "scribbled"
	got, err := m.Transactions().Get(ctx, orgA, older.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Description)
}

func TestMemory_DonorCopyOnRead(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	donor := model.Donor{
		ID:                uuid.New(),
		OrganizationID:    orgA,
		Name:              "City Foundation",
		AllowedTaxSpheres: []model.TaxSphere{model.TaxSphereNonProfit},
	}
	require.NoError(t, m.Donors().Insert(ctx, donor))

	got, err := m.Donors().Get(ctx, orgA, donor.ID)
	require.NoError(t, err)
	got.AllowedTaxSpheres[0] = model.TaxSphereCommercialOperations

	again, err := m.Donors().Get(ctx, orgA, donor.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaxSphereNonProfit, again.AllowedTaxSpheres[0])
}

func TestMemory_ProjectNamesBatch(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	p1 := model.Project{ID: uuid.New(), OrganizationID: orgA, Name: "Youth Camp"}
	p2 := model.Project{ID: uuid.New(), OrganizationID: orgB, Name: "Other Org Project"}
	require.NoError(t, m.Projects().Insert(ctx, p1))
	require.NoError(t, m.Projects().Insert(ctx, p2))

	names, err := m.ProjectNamer().Names(ctx, orgA, []uuid.UUID{p1.ID, p2.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]string{p1.ID: "Youth Camp"}, names)
}
