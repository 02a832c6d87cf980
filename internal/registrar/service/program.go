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

// ProgramService manages the live program catalog.
type ProgramService struct {
	Store store.Store
	Now   func() time.Time
}

// ListActive returns active programs, optionally restricted to one category.
// An unknown category yields every active program.
func (s *ProgramService) ListActive(ctx context.Context, category string) ([]domain.Program, error) {
	if !registrarsdk.ValidCategory(category) {
		return s.Store.Programs().ListActivePrograms(ctx)
	}
	all, err := s.Store.Programs().ListProgramsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Program, 0, len(all))
	for _, p := range all {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

// List returns the whole catalog, inactive programs included.
func (s *ProgramService) List(ctx context.Context) ([]domain.Program, error) {
	return s.Store.Programs().ListPrograms(ctx)
}

// Get returns ErrNotFound for unknown ids.
func (s *ProgramService) Get(ctx context.Context, id string) (domain.Program, error) {
	p, err := s.Store.Programs().GetProgramByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Program{}, ErrNotFound
	}
	return p, err
}

// Create stores a new program, reporting ErrConflict for a taken programId.
func (s *ProgramService) Create(ctx context.Context, req registrarsdk.CreateProgramRequest) (domain.Program, error) {
	if fe := req.Validate(); fe != nil {
		return domain.Program{}, newValidationError(fe)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	now := nowOr(s.Now).UTC()
	p := domain.Program{
		ID:           uuid.NewString(),
		ProgramID:    req.ProgramID,
		Name:         strings.TrimSpace(req.Name),
		Category:     req.Category,
		Type:         req.Type,
		IsActive:     active,
		DisplayOrder: req.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := programIDAvailable(ctx, tx, p.ProgramID, ""); err != nil {
			return err
		}
		return tx.Programs().CreateProgram(ctx, p)
	})
	if err != nil {
		return domain.Program{}, conflictOr(err, "create program")
	}

	slogx.FromContext(ctx).Info("program created",
		slog.String("program_id", p.ProgramID),
		slog.String("category", p.Category),
	)
	return p, nil
}

// Update merges req onto the program. Renaming the programId is checked
// for conflicts against every other program.
func (s *ProgramService) Update(ctx context.Context, id string, req registrarsdk.UpdateProgramRequest) (domain.Program, error) {
	if fe := req.Validate(); fe != nil {
		return domain.Program{}, newValidationError(fe)
	}
	patch := domain.ProgramPatch{
		ProgramID:    req.ProgramID,
		Name:         trimmed(req.Name),
		Category:     req.Category,
		Type:         req.Type,
		IsActive:     req.IsActive,
		DisplayOrder: req.DisplayOrder,
	}

	var updated domain.Program
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if patch.ProgramID != nil {
			if err := programIDAvailable(ctx, tx, *patch.ProgramID, id); err != nil {
				return err
			}
		}
		var err error
		updated, err = tx.Programs().UpdateProgram(ctx, id, patch, nowOr(s.Now).UTC())
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Program{}, ErrNotFound
	}
	if err != nil {
		return domain.Program{}, conflictOr(err, "update program")
	}
	return updated, nil
}

// Delete removes a program from the catalog. Registrations that selected it
// keep the id and show it as-is.
func (s *ProgramService) Delete(ctx context.Context, id string) error {
	ok, err := s.Store.Programs().DeleteProgram(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	slogx.FromContext(ctx).Info("program deleted", slog.String("id", id))
	return nil
}

// programIDAvailable fails with ErrConflict when another program already
// uses programID. self is the id of the program being updated.
func programIDAvailable(ctx context.Context, st store.Store, programID, self string) error {
	existing, err := st.Programs().GetProgramByProgramID(ctx, programID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID == self:
		return nil
	}
	return fmt.Errorf("%w: program id %q already exists", ErrConflict, programID)
}

// conflictOr maps a store uniqueness violation to ErrConflict and wraps
// anything else with op.
func conflictOr(err error, op string) error {
	switch {
	case errors.Is(err, ErrConflict), errors.Is(err, ErrNotFound):
		return err
	case errors.Is(err, store.ErrAlreadyExists):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		var ve *ValidationError
		if errors.As(err, &ve) {
			return err
		}
		return fmt.Errorf("%s: %w", op, err)
	}
}
