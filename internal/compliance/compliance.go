// Package compliance enforces which donor funds may be applied to which
// tax-sphere category. The validator is a gate: every write that sets or
// changes a donor/category pair runs through it, including bulk
// reconciliation.
package compliance

import (
	"context"

	"github.com/google/uuid"

	"github.com/yfndev/ybudget/internal/errs"
	"github.com/yfndev/ybudget/internal/model"
)

// DonorGetter resolves a donor by id within an organization.
type DonorGetter interface {
	Get(ctx context.Context, orgID, id uuid.UUID) (model.Donor, error)
}

// CategoryGetter resolves a category by id within an organization.
type CategoryGetter interface {
	Get(ctx context.Context, orgID, id uuid.UUID) (model.Category, error)
}

// Validator checks donor/category assignments against nonprofit
// tax-compliance rules.
type Validator struct {
	donors     DonorGetter
	categories CategoryGetter
}

// NewValidator creates a Validator over the given aggregates.
func NewValidator(donors DonorGetter, categories CategoryGetter) *Validator {
	return &Validator{donors: donors, categories: categories}
}

// Validate checks that the donor's funds may cover the category's tax
// sphere. Partial assignment is allowed: if either id is uuid.Nil the check
// is a no-op. Dangling references surface as NotFound, tenant mismatches as
// AccessDenied, and a sphere the donor may not cover as
// ComplianceViolation naming both entities.
func (v *Validator) Validate(ctx context.Context, orgID, donorID, categoryID uuid.UUID) error {
	if donorID == uuid.Nil || categoryID == uuid.Nil {
		return nil
	}

	donor, err := v.donors.Get(ctx, orgID, donorID)
	if err != nil {
		return err
	}
	category, err := v.categories.Get(ctx, orgID, categoryID)
	if err != nil {
		return err
	}

	if !donor.Allows(category.TaxSphere) {
		allowed := make([]string, len(donor.AllowedTaxSpheres))
		for i, s := range donor.AllowedTaxSpheres {
			allowed[i] = string(s)
		}
		return &errs.ComplianceViolationError{
			Donor:    donor.Name,
			Category: category.Name,
			Sphere:   string(category.TaxSphere),
			Allowed:  allowed,
		}
	}
	return nil
}
