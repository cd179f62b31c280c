package books

import (
	"github.com/google/uuid"

	"github.com/yfndev/ybudget/internal/model"
)

// DefaultCategories returns the starter two-level category tree for a new
// organization: one group per tax sphere with common leaf categories.
func DefaultCategories(orgID uuid.UUID) []model.Category {
	type leaf struct {
		name   string
		sphere model.TaxSphere
	}
	groups := []struct {
		name   string
		sphere model.TaxSphere
		leaves []leaf
	}{
		{
			name: "Ideal Sphere", sphere: model.TaxSphereNonProfit,
			leaves: []leaf{
				{"Donations", model.TaxSphereNonProfit},
				{"Membership Fees", model.TaxSphereNonProfit},
				{"Grants", model.TaxSphereNonProfit},
			},
		},
		{
			name: "Asset Management", sphere: model.TaxSphereAssetManagement,
			leaves: []leaf{
				{"Interest & Dividends", model.TaxSphereAssetManagement},
				{"Rental Income", model.TaxSphereAssetManagement},
			},
		},
		{
			name: "Purpose Operations", sphere: model.TaxSpherePurposeOperations,
			leaves: []leaf{
				{"Event Fees", model.TaxSpherePurposeOperations},
				{"Course Fees", model.TaxSpherePurposeOperations},
			},
		},
		{
			name: "Commercial Operations", sphere: model.TaxSphereCommercialOperations,
			leaves: []leaf{
				{"Merchandise Sales", model.TaxSphereCommercialOperations},
				{"Catering", model.TaxSphereCommercialOperations},
			},
		},
	}

	var out []model.Category
	for _, g := range groups {
		group := model.Category{
			ID:             uuid.New(),
			OrganizationID: orgID,
			Name:           g.name,
			TaxSphere:      g.sphere,
		}
		out = append(out, group)
		for _, l := range g.leaves {
			out = append(out, model.Category{
				ID:             uuid.New(),
				OrganizationID: orgID,
				Name:           l.name,
				ParentID:       group.ID,
				TaxSphere:      l.sphere,
			})
		}
	}
	return out
}
