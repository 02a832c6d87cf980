package query

import (
	"time"
)

// Program is a row of the programs table. ProgramID is the public slug.
type Program struct {
	ID           string
	ProgramID    string
	Name         string
	Category     string
	Type         string
	IsActive     bool
	DisplayOrder int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Registration is a row of the registrations table.
type Registration struct {
	ID        string
	FullName  string
	Place     string
	TeamName  string
	Category  string
	Programs  string // JSON array
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session is a row of the sessions table used by the database session store.
type Session struct {
	ID        string
	UserID    string
	Username  string
	Role      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Team is a row of the teams table.
type Team struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// User is a row of the users table. PasswordHash is an argon2id PHC string
// or a bcrypt hash awaiting upgrade.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
