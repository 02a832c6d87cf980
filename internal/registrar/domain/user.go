package domain

import "time"

// User is a staff account: an admin or a team leader.
type User struct {
	ID           string
	Username     string
	PasswordHash string // argon2id PHC, or bcrypt for users carried over from the old system
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
