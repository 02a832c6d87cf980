package query

import (
	"context"
	"database/sql"
	"time"
)

const programColumns = `id, program_id, name, category, type, is_active, display_order, created_at, updated_at`

func scanProgram(row interface{ Scan(...any) error }) (Program, error) {
	var i Program
	err := row.Scan(
		&i.ID,
		&i.ProgramID,
		&i.Name,
		&i.Category,
		&i.Type,
		&i.IsActive,
		&i.DisplayOrder,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

// scanPrograms drains and closes rows.
func scanPrograms(rows *sql.Rows) ([]Program, error) {
	defer rows.Close()
	var items []Program
	for rows.Next() {
		i, err := scanProgram(rows)
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

const countPrograms = `
SELECT COUNT(*) AS total, COALESCE(SUM(is_active), 0) AS active FROM programs
`

type CountProgramsRow struct {
	Total  int64
	Active int64
}

// CountPrograms counts all programs and the active ones.
func (q *Queries) CountPrograms(ctx context.Context) (CountProgramsRow, error) {
	row := q.db.QueryRowContext(ctx, countPrograms)
	var i CountProgramsRow
	err := row.Scan(&i.Total, &i.Active)
	return i, err
}

const createProgram = `
INSERT INTO programs (id, program_id, name, category, type, is_active, display_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateProgramParams struct {
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

func (q *Queries) CreateProgram(ctx context.Context, arg CreateProgramParams) error {
	_, err := q.db.ExecContext(ctx, createProgram,
		arg.ID,
		arg.ProgramID,
		arg.Name,
		arg.Category,
		arg.Type,
		arg.IsActive,
		arg.DisplayOrder,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const deleteProgram = `
DELETE FROM programs WHERE id = ?
`

// DeleteProgram returns the number of rows removed.
func (q *Queries) DeleteProgram(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteProgram, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getProgramByID = `
SELECT ` + programColumns + ` FROM programs WHERE id = ?
`

func (q *Queries) GetProgramByID(ctx context.Context, id string) (Program, error) {
	return scanProgram(q.db.QueryRowContext(ctx, getProgramByID, id))
}

const getProgramByProgramID = `
SELECT ` + programColumns + ` FROM programs WHERE program_id = ?
`

func (q *Queries) GetProgramByProgramID(ctx context.Context, programID string) (Program, error) {
	return scanProgram(q.db.QueryRowContext(ctx, getProgramByProgramID, programID))
}

const listActivePrograms = `
SELECT ` + programColumns + ` FROM programs WHERE is_active = 1
ORDER BY category, display_order, name
`

// ListActivePrograms orders by category, then display order.
func (q *Queries) ListActivePrograms(ctx context.Context) ([]Program, error) {
	rows, err := q.db.QueryContext(ctx, listActivePrograms)
	if err != nil {
		return nil, err
	}
	return scanPrograms(rows)
}

const listPrograms = `
SELECT ` + programColumns + ` FROM programs
ORDER BY category, display_order, name
`

func (q *Queries) ListPrograms(ctx context.Context) ([]Program, error) {
	rows, err := q.db.QueryContext(ctx, listPrograms)
	if err != nil {
		return nil, err
	}
	return scanPrograms(rows)
}

const listProgramsByCategory = `
SELECT ` + programColumns + ` FROM programs WHERE category = ?
ORDER BY display_order, name
`

func (q *Queries) ListProgramsByCategory(ctx context.Context, category string) ([]Program, error) {
	rows, err := q.db.QueryContext(ctx, listProgramsByCategory, category)
	if err != nil {
		return nil, err
	}
	return scanPrograms(rows)
}

const updateProgram = `
UPDATE programs SET
    program_id = COALESCE(?, program_id),
    name = COALESCE(?, name),
    category = COALESCE(?, category),
    type = COALESCE(?, type),
    is_active = COALESCE(?, is_active),
    display_order = COALESCE(?, display_order),
    updated_at = ?
WHERE id = ?
`

// UpdateProgramParams leaves columns with an invalid Null value unchanged.
type UpdateProgramParams struct {
	ProgramID    sql.NullString
	Name         sql.NullString
	Category     sql.NullString
	Type         sql.NullString
	IsActive     sql.NullBool
	DisplayOrder sql.NullInt64
	UpdatedAt    time.Time
	ID           string
}

// UpdateProgram returns the number of rows matched by ID.
func (q *Queries) UpdateProgram(ctx context.Context, arg UpdateProgramParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateProgram,
		arg.ProgramID,
		arg.Name,
		arg.Category,
		arg.Type,
		arg.IsActive,
		arg.DisplayOrder,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
