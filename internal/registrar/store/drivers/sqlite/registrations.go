package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/internal/registrar/store"
	"github.com/aussiebroadwan/registrar/internal/registrar/store/drivers/sqlite/query"
)

type registrationsRepo struct {
	q *query.Queries
}

func (r *registrationsRepo) CreateRegistration(ctx context.Context, reg domain.Registration) error {
	programs, err := encodePrograms(reg.Programs)
	if err != nil {
		return err
	}
	err = r.q.CreateRegistration(ctx, query.CreateRegistrationParams{
		ID:        reg.ID,
		FullName:  reg.FullName,
		Place:     reg.Place,
		TeamName:  reg.TeamName,
		Category:  reg.Category,
		Programs:  programs,
		CreatedAt: utc(reg.CreatedAt),
		UpdatedAt: utc(reg.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *registrationsRepo) GetRegistrationByID(ctx context.Context, id string) (domain.Registration, error) {
	row, err := r.q.GetRegistrationByID(ctx, id)
	if err != nil {
		return domain.Registration{}, mapNotFound(err)
	}
	return mapRegistration(row), nil
}

func (r *registrationsRepo) ListRegistrations(ctx context.Context) ([]domain.Registration, error) {
	rows, err := r.q.ListRegistrations(ctx)
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, mapRegistration), nil
}

func (r *registrationsRepo) ListRegistrationsByCategory(ctx context.Context, category string) ([]domain.Registration, error) {
	rows, err := r.q.ListRegistrationsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, mapRegistration), nil
}

func (r *registrationsRepo) SearchRegistrations(ctx context.Context, term string) ([]domain.Registration, error) {
	rows, err := r.q.SearchRegistrations(ctx, likePattern(term))
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, mapRegistration), nil
}

func (r *registrationsRepo) SearchRegistrationsByName(ctx context.Context, term string, limit int) ([]domain.Registration, error) {
	// LIMIT -1 is unlimited in sqlite
	lim := int64(limit)
	if limit <= 0 {
		lim = -1
	}
	rows, err := r.q.SearchRegistrationsByName(ctx, query.SearchRegistrationsByNameParams{
		Pattern: likePattern(term),
		Limit:   lim,
	})
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, mapRegistration), nil
}

func (r *registrationsRepo) ListRegistrationsCreatedSince(ctx context.Context, since time.Time) ([]domain.Registration, error) {
	rows, err := r.q.ListRegistrationsCreatedSince(ctx, utc(since))
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, mapRegistration), nil
}

func (r *registrationsRepo) UpdateRegistration(ctx context.Context, id string, patch domain.RegistrationPatch, now time.Time) (domain.Registration, error) {
	var programs sql.NullString
	if patch.Programs != nil {
		encoded, err := encodePrograms(patch.Programs)
		if err != nil {
			return domain.Registration{}, err
		}
		programs = sql.NullString{String: encoded, Valid: true}
	}

	n, err := r.q.UpdateRegistration(ctx, query.UpdateRegistrationParams{
		FullName:  mapOptionalString(patch.FullName),
		Place:     mapOptionalString(patch.Place),
		TeamName:  mapOptionalString(patch.TeamName),
		Category:  mapOptionalString(patch.Category),
		Programs:  programs,
		UpdatedAt: utc(now),
		ID:        id,
	})
	if err != nil {
		return domain.Registration{}, mapConstraint(err)
	}
	if n == 0 {
		return domain.Registration{}, store.ErrNotFound
	}
	// Re-read so the caller sees the merged row
	return r.GetRegistrationByID(ctx, id)
}

func (r *registrationsRepo) DeleteRegistration(ctx context.Context, id string) (bool, error) {
	n, err := r.q.DeleteRegistration(ctx, id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *registrationsRepo) CountRegistrations(ctx context.Context) (int, error) {
	n, err := r.q.CountRegistrations(ctx)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
