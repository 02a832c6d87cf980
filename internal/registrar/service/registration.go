package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/registrar/internal/registrar/catalog"
	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/internal/registrar/store"
	"github.com/aussiebroadwan/registrar/pkg/registrarsdk"
	"github.com/aussiebroadwan/registrar/pkg/slogx"
	"github.com/google/uuid"
)

const (
	SuggestionMinLen   = 2
	SuggestionLimit    = 10
	PublicSearchMinLen = 3
	PublicSearchLimit  = 50
)

// RegistrationService owns registration writes and every read path,
// public and authenticated. Stored programs are normalized on the way out.
type RegistrationService struct {
	Store store.Store
	Now   func() time.Time
}

// Create validates and stores a new registration. Programs are normalized
// and must all be active programs of the registration's category.
func (s *RegistrationService) Create(ctx context.Context, req registrarsdk.CreateRegistrationRequest) (domain.Registration, error) {
	if fe := req.Validate(); fe != nil {
		return domain.Registration{}, newValidationError(fe)
	}

	programs, err := canonicalPrograms(req.Programs)
	if err != nil {
		return domain.Registration{}, err
	}
	if err := s.checkPrograms(ctx, s.Store, req.Category, programs, true); err != nil {
		return domain.Registration{}, err
	}

	teamName := strings.TrimSpace(req.TeamName)
	s.warnUnknownTeam(ctx, teamName)

	now := nowOr(s.Now).UTC()
	reg := domain.Registration{
		ID:        uuid.NewString(),
		FullName:  strings.TrimSpace(req.FullName),
		Place:     strings.TrimSpace(req.Place),
		TeamName:  teamName,
		Category:  req.Category,
		Programs:  programs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Registrations().CreateRegistration(ctx, reg); err != nil {
		return domain.Registration{}, fmt.Errorf("create registration: %w", err)
	}

	slogx.FromContext(ctx).Info("registration created",
		slog.String("registration_id", reg.ID),
		slog.String("category", reg.Category),
		slog.Int("programs", len(reg.Programs)),
	)
	return reg, nil
}

// Get returns ErrNotFound for unknown ids.
func (s *RegistrationService) Get(ctx context.Context, id string) (domain.Registration, error) {
	reg, err := s.Store.Registrations().GetRegistrationByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Registration{}, ErrNotFound
	}
	if err != nil {
		return domain.Registration{}, err
	}
	return normalized(reg), nil
}

// List returns registrations newest first. A search term wins over the
// category filter; an unknown category lists everything.
func (s *RegistrationService) List(ctx context.Context, params registrarsdk.ListRegistrationsParams) ([]domain.Registration, error) {
	var (
		regs []domain.Registration
		err  error
	)
	search := strings.TrimSpace(params.Search)
	switch {
	case search != "":
		regs, err = s.Store.Registrations().SearchRegistrations(ctx, search)
	case registrarsdk.ValidCategory(params.Category):
		regs, err = s.Store.Registrations().ListRegistrationsByCategory(ctx, params.Category)
	default:
		regs, err = s.Store.Registrations().ListRegistrations(ctx)
	}
	if err != nil {
		return nil, err
	}
	return normalizedAll(regs), nil
}

// Update applies a partial update. When programs or category change, the
// resulting program set must exist in the live catalog of the resulting
// category; inactive programs are accepted so historical rows stay editable.
func (s *RegistrationService) Update(ctx context.Context, id string, req registrarsdk.UpdateRegistrationRequest) (domain.Registration, error) {
	if fe := req.Validate(); fe != nil {
		return domain.Registration{}, newValidationError(fe)
	}

	patch := domain.RegistrationPatch{
		FullName: trimmed(req.FullName),
		Place:    trimmed(req.Place),
		TeamName: trimmed(req.TeamName),
		Category: req.Category,
	}
	if req.Programs != nil {
		programs, err := canonicalPrograms(req.Programs)
		if err != nil {
			return domain.Registration{}, err
		}
		patch.Programs = programs
	}

	var updated domain.Registration
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Registrations().GetRegistrationByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.Programs != nil || patch.Category != nil {
			category := current.Category
			if patch.Category != nil {
				category = *patch.Category
			}
			programs := patch.Programs
			if programs == nil {
				programs = catalog.NormalizeAll(current.Programs)
			}
			if err := s.checkPrograms(ctx, tx, category, programs, false); err != nil {
				return err
			}
		}

		updated, err = tx.Registrations().UpdateRegistration(ctx, id, patch, nowOr(s.Now).UTC())
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Registration{}, ErrNotFound
	}
	if err != nil {
		return domain.Registration{}, err
	}
	return normalized(updated), nil
}

// Delete returns ErrNotFound when nothing was removed.
func (s *RegistrationService) Delete(ctx context.Context, id string) error {
	ok, err := s.Store.Registrations().DeleteRegistration(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	slogx.FromContext(ctx).Info("registration deleted", slog.String("registration_id", id))
	return nil
}

// Suggestions backs name autocomplete. Terms shorter than SuggestionMinLen
// yield no results.
func (s *RegistrationService) Suggestions(ctx context.Context, name string) ([]domain.Registration, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < SuggestionMinLen {
		return []domain.Registration{}, nil
	}
	regs, err := s.Store.Registrations().SearchRegistrationsByName(ctx, name, SuggestionLimit)
	if err != nil {
		return nil, err
	}
	return normalizedAll(regs), nil
}

// PublicSearch finds registrations by name for anonymous callers.
func (s *RegistrationService) PublicSearch(ctx context.Context, name string) ([]domain.Registration, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < PublicSearchMinLen {
		return nil, invalidField("name", fmt.Sprintf("must be at least %d characters", PublicSearchMinLen))
	}
	regs, err := s.Store.Registrations().SearchRegistrationsByName(ctx, name, PublicSearchLimit)
	if err != nil {
		return nil, err
	}
	return normalizedAll(regs), nil
}

// checkPrograms verifies every program exists in the live catalog of the
// category. activeOnly restricts the set to active programs.
func (s *RegistrationService) checkPrograms(ctx context.Context, st store.Store, category string, programs []string, activeOnly bool) error {
	live, err := st.Programs().ListProgramsByCategory(ctx, category)
	if err != nil {
		return fmt.Errorf("load programs: %w", err)
	}
	valid := make(map[string]struct{}, len(live))
	for _, p := range live {
		if activeOnly && !p.IsActive {
			continue
		}
		valid[p.ProgramID] = struct{}{}
	}

	var fe registrarsdk.FieldErrors
	for i, id := range programs {
		if _, ok := valid[id]; !ok {
			fe = append(fe, registrarsdk.FieldError{
				Field: fmt.Sprintf("programs[%d]", i),
				Issue: fmt.Sprintf("%q is not offered for category %s", id, category),
			})
		}
	}
	return newValidationError(fe)
}

// warnUnknownTeam logs team names missing from the team list. Free text
// team names are still accepted.
func (s *RegistrationService) warnUnknownTeam(ctx context.Context, name string) {
	l := slogx.FromContext(ctx)
	team, err := s.Store.Teams().GetTeamByName(ctx, name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		l.Warn("registration references unknown team", slog.String("team_name", name))
	case err != nil:
		l.Warn("team lookup failed", slog.Any("error", err))
	case !team.IsActive:
		l.Warn("registration references inactive team", slog.String("team_name", name))
	}
}

// canonicalPrograms normalizes program tokens and rejects duplicates.
func canonicalPrograms(tokens []string) ([]string, error) {
	out := make([]string, len(tokens))
	seen := make(map[string]int, len(tokens))
	var fe registrarsdk.FieldErrors
	for i, t := range tokens {
		id := catalog.Normalize(strings.TrimSpace(t))
		if first, dup := seen[id]; dup {
			fe = append(fe, registrarsdk.FieldError{
				Field: fmt.Sprintf("programs[%d]", i),
				Issue: fmt.Sprintf("duplicate of programs[%d]", first),
			})
			continue
		}
		seen[id] = i
		out[i] = id
	}
	if err := newValidationError(fe); err != nil {
		return nil, err
	}
	return out, nil
}

// normalized rewrites stored program tokens to canonical ids.
func normalized(r domain.Registration) domain.Registration {
	r.Programs = catalog.NormalizeAll(r.Programs)
	return r
}

func normalizedAll(regs []domain.Registration) []domain.Registration {
	out := make([]domain.Registration, len(regs))
	for i, r := range regs {
		out[i] = normalized(r)
	}
	return out
}

// trimmed trims a present optional field and leaves nil alone.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
