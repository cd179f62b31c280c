// Package errs defines the typed failures surfaced by the budgeting core.
// Each carries enough entity detail to render an actionable message.
package errs

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NotFoundError reports a dangling id reference.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// AccessDeniedError reports a tenant-boundary violation: the referenced
// entity belongs to a different organization than the caller's.
type AccessDeniedError struct {
	Entity string
	ID     uuid.UUID
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access to %s %s denied: wrong organization", e.Entity, e.ID)
}

// ComplianceViolationError reports a donor whose funds may not cover the
// assigned category's tax sphere.
type ComplianceViolationError struct {
	Donor    string
	Category string
	Sphere   string
	Allowed  []string
}

func (e *ComplianceViolationError) Error() string {
	return fmt.Sprintf("funds of donor %q may not be used for category %q (%s): allowed spheres are %s",
		e.Donor, e.Category, e.Sphere, strings.Join(e.Allowed, ", "))
}

// PersistenceError reports a storage write that did not commit.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s did not commit: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
