package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/internal/registrar/store"
	"github.com/aussiebroadwan/registrar/internal/registrar/store/drivers/sqlite"
	"github.com/aussiebroadwan/registrar/pkg/cryptox"
	"github.com/aussiebroadwan/registrar/pkg/registrarsdk"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "registrar-service")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return base }

func ptr[T any](v T) *T { return &v }

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func insertRegistration(t *testing.T, s store.Store, name, category string, programs []string, at time.Time) domain.Registration {
	t.Helper()
	reg := domain.Registration{
		ID:        uuid.NewString(),
		FullName:  name,
		Place:     "Kochi",
		TeamName:  "Falcons",
		Category:  category,
		Programs:  programs,
		CreatedAt: at,
		UpdatedAt: at,
	}
	require.NoError(t, s.Registrations().CreateRegistration(context.Background(), reg))
	return reg
}

func deactivate(t *testing.T, s store.Store, programID string) {
	t.Helper()
	ctx := context.Background()
	p, err := s.Programs().GetProgramByProgramID(ctx, programID)
	require.NoError(t, err)
	_, err = s.Programs().UpdateProgram(ctx, p.ID, domain.ProgramPatch{IsActive: ptr(false)}, base)
	require.NoError(t, err)
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.True(t, ve.Fields.Has(field), "expected %s in %v", field, ve.Fields)
}

func juniorRequest(programs ...string) registrarsdk.CreateRegistrationRequest {
	return registrarsdk.CreateRegistrationRequest{
		FullName: "  Amina K  ",
		Place:    "Kochi",
		TeamName: "Falcons",
		Category: registrarsdk.CategoryJunior,
		Programs: programs,
	}
}
