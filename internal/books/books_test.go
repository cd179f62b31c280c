package books

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yfndev/ybudget/internal/model"
	"github.com/yfndev/ybudget/internal/store"
)

func sampleBooks(org uuid.UUID) *Books {
	amount, _ := decimal.NewFromString("-123.45")
	grant, _ := decimal.NewFromString("1250")

	project := model.Project{ID: uuid.New(), OrganizationID: org, Name: "Youth Camp"}
	group := model.Category{
		ID: uuid.New(), OrganizationID: org, Name: "Operations",
		TaxSphere: model.TaxSpherePurposeOperations,
	}
	leaf := model.Category{
		ID: uuid.New(), OrganizationID: org, Name: "Rent",
		ParentID: group.ID, TaxSphere: model.TaxSpherePurposeOperations,
	}
	donor := model.Donor{
		ID: uuid.New(), OrganizationID: org, Name: "City Foundation",
		AllowedTaxSpheres: []model.TaxSphere{model.TaxSphereNonProfit, model.TaxSpherePurposeOperations},
	}

	expected := model.Transaction{
		ID:             uuid.New(),
		OrganizationID: org,
		Date:           time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Amount:         grant,
		Status:         model.StatusExpected,
		Counterparty:   "City Foundation",
		Description:    "Q1 grant",
		ProjectID:      project.ID,
		CategoryID:     leaf.ID,
		DonorID:        donor.ID,
	}
	processed := model.Transaction{
		ID:             uuid.New(),
		OrganizationID: org,
		Date:           time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		Amount:         amount,
		Status:         model.StatusProcessed,
		Counterparty:   "Landlord",
	}
	expected.MatchedTransactionID = processed.ID
	processed.MatchedTransactionID = expected.ID

	return &Books{
		Transactions: []model.Transaction{expected, processed},
		Categories:   []model.Category{group, leaf},
		Donors:       []model.Donor{donor},
		Projects:     []model.Project{project},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	org := uuid.New()
	original := sampleBooks(org)

	require.NoError(t, Save(dir, original))

	loaded, err := Load(dir)
	require.NoError(t, err)

	require.Len(t, loaded.Transactions, 2)
	require.Len(t, loaded.Categories, 2)
	require.Len(t, loaded.Donors, 1)
	require.Len(t, loaded.Projects, 1)

	got := loaded.Transactions[0]
	want := original.Transactions[0]
	assert.Equal(t, want.ID, got.ID)
	assert.True(t, want.Amount.Equal(got.Amount))
	assert.True(t, want.Date.Equal(got.Date))
	assert.Equal(t, want.MatchedTransactionID, got.MatchedTransactionID)
	assert.Equal(t, want.DonorID, got.DonorID)

	assert.Equal(t, original.Donors[0].AllowedTaxSpheres, loaded.Donors[0].AllowedTaxSpheres)
	assert.Equal(t, original.Categories[1].ParentID, loaded.Categories[1].ParentID)
}

func TestLoad_EmptyDir(t *testing.T) {
	b, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, b.Transactions)
	assert.Empty(t, b.Categories)
	assert.Empty(t, b.Donors)
	assert.Empty(t, b.Projects)
}

func TestSeedAndSnapshot(t *testing.T) {
	ctx := context.Background()
	org := uuid.New()
	original := sampleBooks(org)

	m := store.NewMemory()
	require.NoError(t, original.Seed(ctx, m))

	snap, err := Snapshot(ctx, m, org)
	require.NoError(t, err)
	assert.Len(t, snap.Transactions, 2)
	assert.Len(t, snap.Categories, 2)
	assert.Len(t, snap.Donors, 1)
	assert.Len(t, snap.Projects, 1)
}

func TestUnmarshalTransaction_BadStatus(t *testing.T) {
	rec := MarshalTransaction(sampleBooks(uuid.New()).Transactions[0])
	rec[txColStatus] = "settled"
	_, err := UnmarshalTransaction(rec)
	assert.Error(t, err)
}

func TestUnmarshalDonor_BadSphere(t *testing.T) {
	donor := sampleBooks(uuid.New()).Donors[0]
	rec := MarshalDonor(donor)
	rec[donorColSpheres] = "tax-free"
	_, err := UnmarshalDonor(rec)
	assert.Error(t, err)
}
