package domain

import "time"

// Registration is one student's entry. TeamName refers to a team by name
// only, so renaming or deleting a team leaves old rows untouched.
type Registration struct {
	ID        string
	FullName  string
	Place     string
	TeamName  string // soft reference to Team.Name
	Category  string
	Programs  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RegistrationPatch is a partial update; nil fields are left unchanged.
type RegistrationPatch struct {
	FullName *string
	Place    *string
	TeamName *string
	Category *string
	Programs []string
}

// IsEmpty reports whether the patch changes nothing.
func (p RegistrationPatch) IsEmpty() bool {
	return p.FullName == nil && p.Place == nil && p.TeamName == nil &&
		p.Category == nil && p.Programs == nil
}

// Statistics are derived registration counts.
type Statistics struct {
	Total  int
	Junior int
	Senior int
	Today  int
}

// ProgramCount is the number of registrations that include a program.
type ProgramCount struct {
	ProgramID string
	Label     string
	Type      string
	Count     int
}

// CategoryBreakdown summarises registrations of one category.
type CategoryBreakdown struct {
	Category      string
	Registrations int
	Stage         int // registrations with at least one stage program
	NonStage      int // registrations with at least one non-stage program
	Programs      []ProgramCount
}
