package core

import (
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	RunID      ID
	DilemmaID  ID
	ConflictID ID
)

// String conversions for domain IDs
func (id RunID) String() string      { return ID(id).String() }
func (id DilemmaID) String() string  { return ID(id).String() }
func (id ConflictID) String() string { return ID(id).String() }

// NewRunID generates a fresh run identifier.
func NewRunID() RunID { return RunID(NewID()) }

// ComposeConflictID builds a deterministic conflict identifier from its kind
// and participants, e.g. "framework:deontology:utilitarian".
func ComposeConflictID(kind string, participants ...string) ConflictID {
	parts := make([]string, 0, len(participants)+1)
	parts = append(parts, kind)
	parts = append(parts, participants...)
	return ConflictID(strings.Join(parts, ":"))
}
