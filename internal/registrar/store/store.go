package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// Sub-repositories are methods so a Tx can hand out the same repos bound to
// the transaction, and nobody can start a transaction inside one.
type Store interface {
	Users() Users
	Teams() Teams
	Programs() Programs
	Registrations() Registrations
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. It commits when fn returns nil
	// and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users stores staff accounts.
type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login and bootstrap.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user. A taken username yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash replaces the stored hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, hash string) error

	// ListUsers returns all users ordered by username.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// HasRole reports whether at least one user holds the role.
	HasRole(ctx context.Context, role domain.Role) (bool, error)
}

// Teams stores teams. Names are unique.
type Teams interface {
	CreateTeam(ctx context.Context, t domain.Team) error
	GetTeamByID(ctx context.Context, id string) (domain.Team, error)
	GetTeamByName(ctx context.Context, name string) (domain.Team, error)

	// ListTeams returns all teams ordered by name.
	ListTeams(ctx context.Context) ([]domain.Team, error)
	ListActiveTeams(ctx context.Context) ([]domain.Team, error)

	// UpdateTeam merges the patch and returns the stored row.
	UpdateTeam(ctx context.Context, id string, patch domain.TeamPatch, now time.Time) (domain.Team, error)

	// DeleteTeam reports whether a row was removed.
	DeleteTeam(ctx context.Context, id string) (bool, error)
}

// Programs stores the live catalog. ProgramID is unique.
type Programs interface {
	CreateProgram(ctx context.Context, p domain.Program) error
	GetProgramByID(ctx context.Context, id string) (domain.Program, error)
	GetProgramByProgramID(ctx context.Context, programID string) (domain.Program, error)

	// ListPrograms returns all programs ordered by category, display order, name.
	ListPrograms(ctx context.Context) ([]domain.Program, error)

	// ListProgramsByCategory returns one category ordered by display order, name.
	ListProgramsByCategory(ctx context.Context, category string) ([]domain.Program, error)

	// ListActivePrograms uses the ListPrograms order.
	ListActivePrograms(ctx context.Context) ([]domain.Program, error)

	UpdateProgram(ctx context.Context, id string, patch domain.ProgramPatch, now time.Time) (domain.Program, error)
	DeleteProgram(ctx context.Context, id string) (bool, error)

	CountPrograms(ctx context.Context) (total, active int, err error)
}

// Registrations stores student registrations. Programs are kept as given;
// normalization happens above the store.
type Registrations interface {
	CreateRegistration(ctx context.Context, r domain.Registration) error
	GetRegistrationByID(ctx context.Context, id string) (domain.Registration, error)

	// ListRegistrations returns all registrations, newest first.
	ListRegistrations(ctx context.Context) ([]domain.Registration, error)
	ListRegistrationsByCategory(ctx context.Context, category string) ([]domain.Registration, error)

	// SearchRegistrations matches term case-insensitively as a substring of
	// full name, team name or place. Newest first.
	SearchRegistrations(ctx context.Context, term string) ([]domain.Registration, error)

	// SearchRegistrationsByName matches the full name only, newest first, at
	// most limit rows (limit <= 0 means no limit).
	SearchRegistrationsByName(ctx context.Context, term string, limit int) ([]domain.Registration, error)

	// ListRegistrationsCreatedSince returns rows created at or after since, newest first.
	ListRegistrationsCreatedSince(ctx context.Context, since time.Time) ([]domain.Registration, error)

	UpdateRegistration(ctx context.Context, id string, patch domain.RegistrationPatch, now time.Time) (domain.Registration, error)
	DeleteRegistration(ctx context.Context, id string) (bool, error)

	CountRegistrations(ctx context.Context) (int, error)
}

// Sessions persists login sessions. Ids are stored as given; callers hash
// them before they reach the store.
type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSession returns an unexpired session or ErrNotFound.
	GetSession(ctx context.Context, id string, now time.Time) (domain.Session, error)

	DeleteSession(ctx context.Context, id string) error

	// DeleteExpiredSessions removes sessions expired at now and reports how many.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
