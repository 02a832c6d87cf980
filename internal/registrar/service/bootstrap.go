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

// ErrBootstrapCredentials is returned in production when no admin
// credentials are configured.
var ErrBootstrapCredentials = errors.New("admin credentials are required")

// DefaultAdminUsername is used when development starts without configured admins.
const DefaultAdminUsername = "admin"

// Credential is a configured admin account.
type Credential struct {
	Username string
	Password string
}

// BootstrapService creates the configured admin accounts at start-up.
type BootstrapService struct {
	Store store.Store
	Now   func() time.Time
}

// BootstrapResult reports what EnsureAdmins changed.
type BootstrapResult struct {
	Created []string

	// GeneratedPassword is set when a development admin was created with a
	// random password.
	GeneratedPassword string
}

// EnsureAdmins creates every configured admin whose username is absent.
// Existing users are left alone. Without configured admins, production
// refuses to start and development creates an admin with a random password
// if no admin exists yet.
func (s *BootstrapService) EnsureAdmins(ctx context.Context, admins []Credential, production bool) (BootstrapResult, error) {
	l := slogx.FromContext(ctx)
	var res BootstrapResult

	if len(admins) == 0 {
		if production {
			return res, ErrBootstrapCredentials
		}
		has, err := s.Store.Users().HasRole(ctx, domain.RoleAdmin)
		if err != nil {
			return res, err
		}
		if has {
			return res, nil
		}
		password, err := cryptox.GeneratePassword()
		if err != nil {
			return res, err
		}
		admins = []Credential{{Username: DefaultAdminUsername, Password: password}}
		res.GeneratedPassword = password
	}

	for _, c := range admins {
		if issue := registrarsdk.ValidateUsername(c.Username); issue != "" {
			return res, fmt.Errorf("admin username %q %s", c.Username, issue)
		}
		if issue := registrarsdk.ValidatePassword(c.Password); issue != "" {
			return res, fmt.Errorf("admin password for %q is %s", c.Username, issue)
		}

		_, err := s.Store.Users().GetUserByUsername(ctx, c.Username)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return res, err
		}

		hash, err := cryptox.HashPassword(c.Password)
		if err != nil {
			return res, fmt.Errorf("hash admin password: %w", err)
		}
		now := nowOr(s.Now).UTC()
		err = s.Store.Users().CreateUser(ctx, domain.User{
			ID:           uuid.NewString(),
			Username:     c.Username,
			PasswordHash: hash,
			Role:         domain.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return res, fmt.Errorf("create admin %q: %w", c.Username, err)
		}
		l.Info("created admin user", slog.String("username", c.Username))
		res.Created = append(res.Created, c.Username)
	}

	return res, nil
}
