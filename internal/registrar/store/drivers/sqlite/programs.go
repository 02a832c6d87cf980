package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/internal/registrar/store"
	"github.com/aussiebroadwan/registrar/internal/registrar/store/drivers/sqlite/query"
)

type programsRepo struct {
	q *query.Queries
}

func (r *programsRepo) CreateProgram(ctx context.Context, p domain.Program) error {
	err := r.q.CreateProgram(ctx, query.CreateProgramParams{
		ID:           p.ID,
		ProgramID:    p.ProgramID,
		Name:         p.Name,
		Category:     p.Category,
		Type:         p.Type,
		IsActive:     p.IsActive,
		DisplayOrder: int64(p.DisplayOrder),
		CreatedAt:    utc(p.CreatedAt),
		UpdatedAt:    utc(p.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *programsRepo) GetProgramByID(ctx context.Context, id string) (domain.Program, error) {
	row, err := r.q.GetProgramByID(ctx, id)
	if err != nil {
		return domain.Program{}, mapNotFound(err)
	}
	return mapProgram(row), nil
}

func (r *programsRepo) GetProgramByProgramID(ctx context.Context, programID string) (domain.Program, error) {
	row, err := r.q.GetProgramByProgramID(ctx, programID)
	if err != nil {
		return domain.Program{}, mapNotFound(err)
	}
	return mapProgram(row), nil
}

func (r *programsRepo) ListPrograms(ctx context.Context) ([]domain.Program, error) {
	rows, err := r.q.ListPrograms(ctx)
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, mapProgram), nil
}

func (r *programsRepo) ListProgramsByCategory(ctx context.Context, category string) ([]domain.Program, error) {
	rows, err := r.q.ListProgramsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, mapProgram), nil
}

func (r *programsRepo) ListActivePrograms(ctx context.Context) ([]domain.Program, error) {
	rows, err := r.q.ListActivePrograms(ctx)
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, mapProgram), nil
}

func (r *programsRepo) UpdateProgram(ctx context.Context, id string, patch domain.ProgramPatch, now time.Time) (domain.Program, error) {
	n, err := r.q.UpdateProgram(ctx, query.UpdateProgramParams{
		ProgramID:    mapOptionalString(patch.ProgramID),
		Name:         mapOptionalString(patch.Name),
		Category:     mapOptionalString(patch.Category),
		Type:         mapOptionalString(patch.Type),
		IsActive:     mapOptionalBool(patch.IsActive),
		DisplayOrder: mapOptionalInt(patch.DisplayOrder),
		UpdatedAt:    utc(now),
		ID:           id,
	})
	if err != nil {
		return domain.Program{}, mapConstraint(err)
	}
	if n == 0 {
		return domain.Program{}, store.ErrNotFound
	}
	return r.GetProgramByID(ctx, id)
}

func (r *programsRepo) DeleteProgram(ctx context.Context, id string) (bool, error) {
	n, err := r.q.DeleteProgram(ctx, id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *programsRepo) CountPrograms(ctx context.Context) (total, active int, err error) {
	row, err := r.q.CountPrograms(ctx)
	if err != nil {
		return 0, 0, err
	}
	return int(row.Total), int(row.Active), nil
}
