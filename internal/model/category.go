package model

import "github.com/google/uuid"

// TaxSphere classifies how funds in a category may legally be used under
// nonprofit accounting rules.
type TaxSphere string

const (
	TaxSphereNonProfit            TaxSphere = "non-profit"
	TaxSphereAssetManagement      TaxSphere = "asset-management"
	TaxSpherePurposeOperations    TaxSphere = "purpose-operations"
	TaxSphereCommercialOperations TaxSphere = "commercial-operations"
)

// Valid reports whether s is a known tax sphere.
func (s TaxSphere) Valid() bool {
	switch s {
	case TaxSphereNonProfit, TaxSphereAssetManagement, TaxSpherePurposeOperations, TaxSphereCommercialOperations:
		return true
	}
	return false
}

// Category is a budget category. Categories form a two-level tree: top-level
// group categories (ParentID == uuid.Nil) and child leaf categories.
type Category struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	ParentID       uuid.UUID
	TaxSphere      TaxSphere
}

// IsGroup reports whether the category is a top-level group.
func (c Category) IsGroup() bool {
	return c.ParentID == uuid.Nil
}
