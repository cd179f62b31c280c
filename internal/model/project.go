package model

import "github.com/google/uuid"

// Project is a cost center transactions may be tagged to. ParentID allows a
// department-style hierarchy; uuid.Nil means top-level.
type Project struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	ParentID       uuid.UUID
}
