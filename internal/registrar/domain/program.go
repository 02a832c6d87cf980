package domain

import "time"

// Program is an entry of the live catalog. ProgramID is the canonical slug
// registrations store; ID is the row key.
type Program struct {
	ID           string
	ProgramID    string // stable slug, e.g. "junior-qiraat"
	Name         string
	Category     string
	Type         string
	IsActive     bool
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProgramPatch is a partial update; nil fields are left unchanged.
type ProgramPatch struct {
	ProgramID    *string
	Name         *string
	Category     *string
	Type         *string
	IsActive     *bool
	DisplayOrder *int
}
