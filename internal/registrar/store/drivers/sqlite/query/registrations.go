package query

import (
	"context"
	"database/sql"
	"time"
)

const registrationColumns = `id, full_name, place, team_name, category, programs, created_at, updated_at`

func scanRegistration(row interface{ Scan(...any) error }) (Registration, error) {
	var i Registration
	err := row.Scan(
		&i.ID,
		&i.FullName,
		&i.Place,
		&i.TeamName,
		&i.Category,
		&i.Programs,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

// scanRegistrations drains and closes rows.
func scanRegistrations(rows *sql.Rows) ([]Registration, error) {
	defer rows.Close()
	var items []Registration
	for rows.Next() {
		i, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countRegistrations = `
SELECT COUNT(*) FROM registrations
`

func (q *Queries) CountRegistrations(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countRegistrations)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createRegistration = `
INSERT INTO registrations (id, full_name, place, team_name, category, programs, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateRegistrationParams struct {
	ID        string
	FullName  string
	Place     string
	TeamName  string
	Category  string
	Programs  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateRegistration(ctx context.Context, arg CreateRegistrationParams) error {
	_, err := q.db.ExecContext(ctx, createRegistration,
		arg.ID,
		arg.FullName,
		arg.Place,
		arg.TeamName,
		arg.Category,
		arg.Programs,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const deleteRegistration = `
DELETE FROM registrations WHERE id = ?
`

func (q *Queries) DeleteRegistration(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteRegistration, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getRegistrationByID = `
SELECT ` + registrationColumns + ` FROM registrations WHERE id = ?
`

func (q *Queries) GetRegistrationByID(ctx context.Context, id string) (Registration, error) {
	return scanRegistration(q.db.QueryRowContext(ctx, getRegistrationByID, id))
}

const listRegistrations = `
SELECT ` + registrationColumns + ` FROM registrations ORDER BY created_at DESC
`

// ListRegistrations returns every row, newest first.
func (q *Queries) ListRegistrations(ctx context.Context) ([]Registration, error) {
	rows, err := q.db.QueryContext(ctx, listRegistrations)
	if err != nil {
		return nil, err
	}
	return scanRegistrations(rows)
}

const listRegistrationsByCategory = `
SELECT ` + registrationColumns + ` FROM registrations WHERE category = ? ORDER BY created_at DESC
`

func (q *Queries) ListRegistrationsByCategory(ctx context.Context, category string) ([]Registration, error) {
	rows, err := q.db.QueryContext(ctx, listRegistrationsByCategory, category)
	if err != nil {
		return nil, err
	}
	return scanRegistrations(rows)
}

const listRegistrationsCreatedSince = `
SELECT ` + registrationColumns + ` FROM registrations WHERE created_at >= ? ORDER BY created_at DESC
`

// ListRegistrationsCreatedSince includes rows created exactly at since.
func (q *Queries) ListRegistrationsCreatedSince(ctx context.Context, since time.Time) ([]Registration, error) {
	rows, err := q.db.QueryContext(ctx, listRegistrationsCreatedSince, since)
	if err != nil {
		return nil, err
	}
	return scanRegistrations(rows)
}

const searchRegistrations = `
SELECT ` + registrationColumns + ` FROM registrations
WHERE unicode_lower(full_name) LIKE ? ESCAPE '\'
   OR unicode_lower(team_name) LIKE ? ESCAPE '\'
   OR unicode_lower(place) LIKE ? ESCAPE '\'
ORDER BY created_at DESC
`

// SearchRegistrations takes an already lower-cased, escaped LIKE pattern.
func (q *Queries) SearchRegistrations(ctx context.Context, pattern string) ([]Registration, error) {
	rows, err := q.db.QueryContext(ctx, searchRegistrations, pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}
	return scanRegistrations(rows)
}

const searchRegistrationsByName = `
SELECT ` + registrationColumns + ` FROM registrations
WHERE unicode_lower(full_name) LIKE ? ESCAPE '\'
ORDER BY created_at DESC
LIMIT ?
`

type SearchRegistrationsByNameParams struct {
	Pattern string
	Limit   int64 // -1 for no limit
}

// SearchRegistrationsByName matches full_name only.
func (q *Queries) SearchRegistrationsByName(ctx context.Context, arg SearchRegistrationsByNameParams) ([]Registration, error) {
	rows, err := q.db.QueryContext(ctx, searchRegistrationsByName, arg.Pattern, arg.Limit)
	if err != nil {
		return nil, err
	}
	return scanRegistrations(rows)
}

const updateRegistration = `
UPDATE registrations SET
    full_name = COALESCE(?, full_name),
    place = COALESCE(?, place),
    team_name = COALESCE(?, team_name),
    category = COALESCE(?, category),
    programs = COALESCE(?, programs),
    updated_at = ?
WHERE id = ?
`

// UpdateRegistrationParams leaves columns with an invalid Null value unchanged.
type UpdateRegistrationParams struct {
	FullName  sql.NullString
	Place     sql.NullString
	TeamName  sql.NullString
	Category  sql.NullString
	Programs  sql.NullString
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) UpdateRegistration(ctx context.Context, arg UpdateRegistrationParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateRegistration,
		arg.FullName,
		arg.Place,
		arg.TeamName,
		arg.Category,
		arg.Programs,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
