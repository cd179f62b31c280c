// Package id wraps entity id handling: uuid-backed, with a short display
// form for terminal output.
package id

import (
	"fmt"

	"github.com/google/uuid"
)

// New returns a fresh entity id.
func New() uuid.UUID {
	return uuid.New()
}

// Parse parses an id string. The empty string maps to uuid.Nil so optional
// references round-trip through prompts and CSV cells.
func Parse(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}

// Short returns the first uuid group for display, e.g. "9f3c2a1b".
func Short(id uuid.UUID) string {
	if id == uuid.Nil {
		return "-"
	}
	return id.String()[:8]
}
