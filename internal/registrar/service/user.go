package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/internal/registrar/store"
	"github.com/aussiebroadwan/registrar/pkg/cryptox"
	"github.com/aussiebroadwan/registrar/pkg/registrarsdk"
	"github.com/aussiebroadwan/registrar/pkg/slogx"
	"github.com/google/uuid"
)

// UserService manages staff accounts. Users are never deleted.
type UserService struct {
	Store store.Store
	Now   func() time.Time
}

// List returns users ordered by username.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// Create adds a user with an argon2id password hash.
func (s *UserService) Create(ctx context.Context, req registrarsdk.CreateUserRequest) (domain.User, error) {
	if fe := req.Validate(); fe != nil {
		return domain.User{}, newValidationError(fe)
	}

	// The unique index still guards against a concurrent create
	_, err := s.Store.Users().GetUserByUsername(ctx, req.Username)
	switch {
	case err == nil:
		return domain.User{}, fmt.Errorf("%w: username %q already exists", ErrConflict, req.Username)
	case !errors.Is(err, store.ErrNotFound):
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	now := nowOr(s.Now).UTC()
	u := domain.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         domain.Role(req.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		return domain.User{}, conflictOr(err, "create user")
	}

	slogx.FromContext(ctx).Info("user created",
		slog.String("user_id", u.ID),
		slog.String("role", string(u.Role)),
	)
	return u, nil
}
