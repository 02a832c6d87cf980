package domain

import "time"

// Team is a group students register under.
type Team struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TeamPatch is a partial update; nil fields are left unchanged.
type TeamPatch struct {
	Name     *string
	IsActive *bool
}
