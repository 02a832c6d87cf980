package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/internal/registrar/store"
	"github.com/aussiebroadwan/registrar/pkg/cryptox"
	"github.com/aussiebroadwan/registrar/pkg/slogx"
)

// AuthService verifies credentials. Session state is owned by the session
// manager in the HTTP layer; this service only decides who the caller is.
type AuthService struct {
	Store store.Store

	dummyOnce sync.Once
	dummyHash string
}

// Login checks a username and password. Unknown users and wrong passwords
// both yield ErrInvalidCredentials, and both paths verify a hash.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)
	username = strings.TrimSpace(username)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		_ = cryptox.VerifyPassword(password, s.dummy())
		l.Info("login failed", slog.String("reason", "unknown_user"))
		return domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("stored password hash unusable", slog.String("user_id", user.ID), slog.Any("error", err))
		} else {
			l.Info("login failed", slog.String("reason", "bad_password"), slog.String("user_id", user.ID))
		}
		return domain.User{}, ErrInvalidCredentials
	}

	if cryptox.IsLegacyHash(user.PasswordHash) {
		s.upgradeHash(ctx, user, password)
	}

	l.Info("login succeeded", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))
	return user, nil
}

// upgradeHash replaces a bcrypt hash with argon2id. Failure leaves the old
// hash in place; the next login tries again.
func (s *AuthService) upgradeHash(ctx context.Context, user domain.User, password string) {
	l := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Warn("failed to rehash legacy password", slog.String("user_id", user.ID), slog.Any("error", err))
		return
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		l.Warn("failed to store rehashed password", slog.String("user_id", user.ID), slog.Any("error", err))
		return
	}
	l.Info("upgraded legacy password hash", slog.String("user_id", user.ID))
}

// dummy returns a hash of a random password, computed once, for unknown
// usernames to verify against.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := cryptox.HashPassword(cryptox.MustGenerateToken(cryptox.TokenSize128))
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

// CurrentUser returns the user behind a session.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrNotFound
	}
	return u, err
}
