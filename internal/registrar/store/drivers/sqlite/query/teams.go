package query

import (
	"context"
	"database/sql"
	"time"
)

const teamColumns = `id, name, is_active, created_at, updated_at`

func scanTeams(rows *sql.Rows) ([]Team, error) {
	defer rows.Close()
	var items []Team
	for rows.Next() {
		var i Team
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.IsActive,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
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

const createTeam = `
INSERT INTO teams (id, name, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
`

type CreateTeamParams struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateTeam(ctx context.Context, arg CreateTeamParams) error {
	_, err := q.db.ExecContext(ctx, createTeam,
		arg.ID,
		arg.Name,
		arg.IsActive,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const deleteTeam = `
DELETE FROM teams WHERE id = ?
`

func (q *Queries) DeleteTeam(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteTeam, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getTeamByID = `
SELECT ` + teamColumns + ` FROM teams WHERE id = ?
`

func (q *Queries) GetTeamByID(ctx context.Context, id string) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeamByID, id)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getTeamByName = `
SELECT ` + teamColumns + ` FROM teams WHERE name = ?
`

// GetTeamByName matches the exact stored name.
func (q *Queries) GetTeamByName(ctx context.Context, name string) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeamByName, name)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listActiveTeams = `
SELECT ` + teamColumns + ` FROM teams WHERE is_active = 1 ORDER BY name
`

func (q *Queries) ListActiveTeams(ctx context.Context) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listActiveTeams)
	if err != nil {
		return nil, err
	}
	return scanTeams(rows)
}

const listTeams = `
SELECT ` + teamColumns + ` FROM teams ORDER BY name
`

func (q *Queries) ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listTeams)
	if err != nil {
		return nil, err
	}
	return scanTeams(rows)
}

const updateTeam = `
UPDATE teams SET
    name = COALESCE(?, name),
    is_active = COALESCE(?, is_active),
    updated_at = ?
WHERE id = ?
`

// UpdateTeamParams leaves columns with an invalid Null value unchanged.
type UpdateTeamParams struct {
	Name      sql.NullString
	IsActive  sql.NullBool
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) UpdateTeam(ctx context.Context, arg UpdateTeamParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateTeam,
		arg.Name,
		arg.IsActive,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
