package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/internal/registrar/store"
	"github.com/aussiebroadwan/registrar/internal/registrar/store/drivers/sqlite/query"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// unicodeLowerFunc folds case with Unicode rules. SQLite's LOWER and LIKE
// only fold ASCII, so search queries compare unicode_lower(column) against a
// pattern lowered with strings.ToLower.
const unicodeLowerFunc = "unicode_lower"

func init() {
	msqlite.MustRegisterDeterministicScalarFunction(unicodeLowerFunc, 1, unicodeLower)
}

// unicodeLower passes NULL and non-text values through unchanged.
func unicodeLower(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// Store is the sqlite implementation of store.Store.
type Store struct {
	repos
	db  *sql.DB
	dsn string
}

// repos hands out repositories bound to either the database or a transaction.
type repos struct{ q *query.Queries }

func (r repos) Users() store.Users                 { return &usersRepo{q: r.q} }
func (r repos) Teams() store.Teams                 { return &teamsRepo{q: r.q} }
func (r repos) Programs() store.Programs           { return &programsRepo{q: r.q} }
func (r repos) Registrations() store.Registrations { return &registrationsRepo{q: r.q} }
func (r repos) Sessions() store.Sessions           { return &sessionsRepo{q: r.q} }

// DSN builds a connection string for a database file. Foreign keys are
// enforced and times are written in the sqlite text format so they sort.
func DSN(file string) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_time_format=sqlite", file)
}

// MemoryDSN is a private in-memory database, used by tests.
const MemoryDSN = ":memory:?_pragma=foreign_keys(1)&_time_format=sqlite"

// NewStore opens dsn with a single connection and checks it. Migrations
// are applied separately with ApplyMigrations.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// sqlite has a single writer; one connection also keeps :memory: databases alive.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		repos: repos{q: query.New(db)},
		db:    db,
		dsn:   dsn,
	}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

// mapNotFound turns sql.ErrNoRows into store.ErrNotFound.
func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return mapConstraint(err)
}

// mapConstraint turns UNIQUE and PRIMARY KEY violations into store.ErrAlreadyExists.
func mapConstraint(err error) error {
	var se *msqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
		}
	}
	return err
}

func mapOptionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

func mapOptionalBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{Valid: false}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

func mapOptionalInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

// utc normalizes times before they are written so text comparisons order them.
func utc(t time.Time) time.Time { return t.UTC() }

// likePattern lower-cases term and escapes LIKE wildcards so it matches as a
// literal substring.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

// encodePrograms stores program ids as a JSON array; nil becomes [].
func encodePrograms(programs []string) (string, error) {
	if programs == nil {
		programs = []string{}
	}
	b, err := json.Marshal(programs)
	if err != nil {
		return "", fmt.Errorf("encode programs: %w", err)
	}
	return string(b), nil
}

// decodePrograms reads a corrupt or null column as no programs.
func decodePrograms(raw string) []string {
	var programs []string
	if err := json.Unmarshal([]byte(raw), &programs); err != nil || programs == nil {
		return []string{}
	}
	return programs
}

func mapUser(row query.User) domain.User {
	return domain.User{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		Role:         domain.Role(row.Role),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func mapTeam(row query.Team) domain.Team {
	return domain.Team{
		ID:        row.ID,
		Name:      row.Name,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func mapProgram(row query.Program) domain.Program {
	return domain.Program{
		ID:           row.ID,
		ProgramID:    row.ProgramID,
		Name:         row.Name,
		Category:     row.Category,
		Type:         row.Type,
		IsActive:     row.IsActive,
		DisplayOrder: int(row.DisplayOrder),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func mapRegistration(row query.Registration) domain.Registration {
	return domain.Registration{
		ID:        row.ID,
		FullName:  row.FullName,
		Place:     row.Place,
		TeamName:  row.TeamName,
		Category:  row.Category,
		Programs:  decodePrograms(row.Programs),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func mapSession(row query.Session) domain.Session {
	return domain.Session{
		ID:        row.ID,
		UserID:    row.UserID,
		Username:  row.Username,
		Role:      domain.Role(row.Role),
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}
}

func mapSlice[R any, D any](rows []R, fn func(R) D) []D {
	out := make([]D, len(rows))
	for i, row := range rows {
		out[i] = fn(row)
	}
	return out
}
