package compliance

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yfndev/ybudget/internal/errs"
	"github.com/yfndev/ybudget/internal/model"
	"github.com/yfndev/ybudget/internal/store"
)

func setup(t *testing.T) (*Validator, uuid.UUID, model.Donor, model.Category, model.Category) {
	t.Helper()
	m := store.NewMemory()
	ctx := context.Background()
	org := uuid.New()

	donor := model.Donor{
		ID:                uuid.New(),
		OrganizationID:    org,
		Name:              "City Foundation",
		AllowedTaxSpheres: []model.TaxSphere{model.TaxSphereNonProfit},
	}
	nonprofit := model.Category{
		ID:             uuid.New(),
		OrganizationID: org,
		Name:           "Donations",
		TaxSphere:      model.TaxSphereNonProfit,
	}
	commercial := model.Category{
		ID:             uuid.New(),
		OrganizationID: org,
		Name:           "Merchandise Sales",
		TaxSphere:      model.TaxSphereCommercialOperations,
	}
	require.NoError(t, m.Donors().Insert(ctx, donor))
	require.NoError(t, m.Categories().Insert(ctx, nonprofit))
	require.NoError(t, m.Categories().Insert(ctx, commercial))

	return NewValidator(m.Donors(), m.Categories()), org, donor, nonprofit, commercial
}

func TestValidate_AllowedSphere(t *testing.T) {
	v, org, donor, nonprofit, _ := setup(t)
	assert.NoError(t, v.Validate(context.Background(), org, donor.ID, nonprofit.ID))
}

func TestValidate_ComplianceViolation(t *testing.T) {
	v, org, donor, _, commercial := setup(t)

	err := v.Validate(context.Background(), org, donor.ID, commercial.ID)
	var cv *errs.ComplianceViolationError
	require.ErrorAs(t, err, &cv)

	// The error names both entities for user display.
	assert.Equal(t, "City Foundation", cv.Donor)
	assert.Equal(t, "Merchandise Sales", cv.Category)
	assert.Contains(t, err.Error(), "City Foundation")
	assert.Contains(t, err.Error(), "Merchandise Sales")
}

func TestValidate_PartialAssignmentIsNoOp(t *testing.T) {
	v, org, donor, _, commercial := setup(t)
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, org, uuid.Nil, commercial.ID))
	assert.NoError(t, v.Validate(ctx, org, donor.ID, uuid.Nil))
	assert.NoError(t, v.Validate(ctx, org, uuid.Nil, uuid.Nil))
}

func TestValidate_DanglingReference(t *testing.T) {
	v, org, donor, _, _ := setup(t)

	err := v.Validate(context.Background(), org, donor.ID, uuid.New())
	var nf *errs.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "category", nf.Entity)
}

func TestValidate_TenantMismatch(t *testing.T) {
	v, _, donor, nonprofit, _ := setup(t)

	err := v.Validate(context.Background(), uuid.New(), donor.ID, nonprofit.ID)
	var denied *errs.AccessDeniedError
	require.ErrorAs(t, err, &denied)
}
