package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/internal/registrar/store"
	"github.com/aussiebroadwan/registrar/internal/registrar/store/drivers/sqlite/query"
)

type teamsRepo struct {
	q *query.Queries
}

func (r *teamsRepo) CreateTeam(ctx context.Context, t domain.Team) error {
	err := r.q.CreateTeam(ctx, query.CreateTeamParams{
		ID:        t.ID,
		Name:      t.Name,
		IsActive:  t.IsActive,
		CreatedAt: utc(t.CreatedAt),
		UpdatedAt: utc(t.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *teamsRepo) GetTeamByID(ctx context.Context, id string) (domain.Team, error) {
	row, err := r.q.GetTeamByID(ctx, id)
	if err != nil {
		return domain.Team{}, mapNotFound(err)
	}
	return mapTeam(row), nil
}

func (r *teamsRepo) GetTeamByName(ctx context.Context, name string) (domain.Team, error) {
	row, err := r.q.GetTeamByName(ctx, name)
	if err != nil {
		return domain.Team{}, mapNotFound(err)
	}
	return mapTeam(row), nil
}

func (r *teamsRepo) ListTeams(ctx context.Context) ([]domain.Team, error) {
	rows, err := r.q.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, mapTeam), nil
}

func (r *teamsRepo) ListActiveTeams(ctx context.Context) ([]domain.Team, error) {
	rows, err := r.q.ListActiveTeams(ctx)
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, mapTeam), nil
}

func (r *teamsRepo) UpdateTeam(ctx context.Context, id string, patch domain.TeamPatch, now time.Time) (domain.Team, error) {
	n, err := r.q.UpdateTeam(ctx, query.UpdateTeamParams{
		Name:      mapOptionalString(patch.Name),
		IsActive:  mapOptionalBool(patch.IsActive),
		UpdatedAt: utc(now),
		ID:        id,
	})
	if err != nil {
		return domain.Team{}, mapConstraint(err)
	}
	if n == 0 {
		return domain.Team{}, store.ErrNotFound
	}
	return r.GetTeamByID(ctx, id)
}

func (r *teamsRepo) DeleteTeam(ctx context.Context, id string) (bool, error) {
	n, err := r.q.DeleteTeam(ctx, id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
