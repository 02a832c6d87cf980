package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/internal/registrar/store"
	"github.com/aussiebroadwan/registrar/pkg/registrarsdk"
	"github.com/aussiebroadwan/registrar/pkg/slogx"
	"github.com/google/uuid"
)

// TeamService manages teams. Names are unique.
type TeamService struct {
	Store store.Store
	Now   func() time.Time
}

// ListActive returns the team names offered on the public form.
func (s *TeamService) ListActive(ctx context.Context) ([]domain.Team, error) {
	return s.Store.Teams().ListActiveTeams(ctx)
}

// List returns every team, active or not, ordered by name.
func (s *TeamService) List(ctx context.Context) ([]domain.Team, error) {
	return s.Store.Teams().ListTeams(ctx)
}

// Get returns ErrNotFound for unknown ids.
func (s *TeamService) Get(ctx context.Context, id string) (domain.Team, error) {
	t, err := s.Store.Teams().GetTeamByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Team{}, ErrNotFound
	}
	return t, err
}

// Create stores a new team, active unless the request says otherwise.
func (s *TeamService) Create(ctx context.Context, req registrarsdk.CreateTeamRequest) (domain.Team, error) {
	if fe := req.Validate(); fe != nil {
		return domain.Team{}, newValidationError(fe)
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	now := nowOr(s.Now).UTC()
	t := domain.Team{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := teamNameAvailable(ctx, tx, t.Name, ""); err != nil {
			return err
		}
		return tx.Teams().CreateTeam(ctx, t)
	})
	if err != nil {
		return domain.Team{}, conflictOr(err, "create team")
	}

	slogx.FromContext(ctx).Info("team created", slog.String("team_id", t.ID), slog.String("name", t.Name))
	return t, nil
}

// Update renames or toggles a team. Renaming onto another team's name is
// ErrConflict.
func (s *TeamService) Update(ctx context.Context, id string, req registrarsdk.UpdateTeamRequest) (domain.Team, error) {
	if fe := req.Validate(); fe != nil {
		return domain.Team{}, newValidationError(fe)
	}
	patch := domain.TeamPatch{Name: trimmed(req.Name), IsActive: req.IsActive}

	var updated domain.Team
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if patch.Name != nil {
			if err := teamNameAvailable(ctx, tx, *patch.Name, id); err != nil {
				return err
			}
		}
		var err error
		updated, err = tx.Teams().UpdateTeam(ctx, id, patch, nowOr(s.Now).UTC())
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Team{}, ErrNotFound
	}
	if err != nil {
		return domain.Team{}, conflictOr(err, "update team")
	}
	return updated, nil
}

// Delete removes a team. Registrations keep the team name they were saved with.
func (s *TeamService) Delete(ctx context.Context, id string) error {
	ok, err := s.Store.Teams().DeleteTeam(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	slogx.FromContext(ctx).Info("team deleted", slog.String("team_id", id))
	return nil
}

// teamNameAvailable fails with ErrConflict when a team other than self
// already uses name.
func teamNameAvailable(ctx context.Context, st store.Store, name, self string) error {
	existing, err := st.Teams().GetTeamByName(ctx, name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID == self:
		return nil
	}
	return fmt.Errorf("%w: team %q already exists", ErrConflict, name)
}
