package model

import "github.com/google/uuid"

// Donor represents a funding source. AllowedTaxSpheres lists the category
// tax spheres the donor's funds are legally permitted to cover (restricted
// vs unrestricted funds).
type Donor struct {
	ID                uuid.UUID
	OrganizationID    uuid.UUID
	Name              string
	AllowedTaxSpheres []TaxSphere
}

// Allows reports whether the donor's funds may be applied to a category of
// the given tax sphere.
func (d Donor) Allows(sphere TaxSphere) bool {
	for _, s := range d.AllowedTaxSpheres {
		if s == sphere {
			return true
		}
	}
	return false
}
