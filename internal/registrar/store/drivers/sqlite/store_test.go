package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/catalog"
	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/internal/registrar/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func ptr[T any](v T) *T { return &v }

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func addRegistration(t *testing.T, s *Store, name, team, place, category string, programs []string, at time.Time) domain.Registration {
	t.Helper()
	reg := domain.Registration{
		ID:        uuid.NewString(),
		FullName:  name,
		Place:     place,
		TeamName:  team,
		Category:  category,
		Programs:  programs,
		CreatedAt: at,
		UpdatedAt: at,
	}
	require.NoError(t, s.Registrations().CreateRegistration(context.Background(), reg))
	return reg
}

func TestApplyMigrations_SeedsDefaultCatalogOnce(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Running again is a no-op.
	require.NoError(t, s.ApplyMigrations())

	programs, err := s.Programs().ListPrograms(ctx)
	require.NoError(t, err)
	require.Len(t, programs, len(catalog.Defaults()))
	require.Len(t, programs, 22)

	total, active, err := s.Programs().CountPrograms(ctx)
	require.NoError(t, err)
	require.Equal(t, 22, total)
	require.Equal(t, 22, active)

	byID := make(map[string]domain.Program, len(programs))
	for _, p := range programs {
		byID[p.ProgramID] = p
	}
	for _, e := range catalog.Defaults() {
		p, ok := byID[e.ProgramID]
		require.True(t, ok, e.ProgramID)
		require.Equal(t, e.Name, p.Name)
		require.Equal(t, e.Category, p.Category)
		require.Equal(t, e.Type, p.Type)
		require.Equal(t, e.DisplayOrder, p.DisplayOrder)
		require.True(t, p.IsActive)
	}

	junior, err := s.Programs().ListProgramsByCategory(ctx, catalog.CategoryJunior)
	require.NoError(t, err)
	require.Len(t, junior, 11)
	require.Equal(t, "junior-qiraat", junior[0].ProgramID)
	require.Equal(t, "junior-dictation", junior[10].ProgramID)
}

func TestRegistrations_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	reg := addRegistration(t, s, "Aisha Rahman", "Team A", "Kochi", "junior",
		[]string{"junior-qiraat", "junior-drawing"}, base)

	got, err := s.Registrations().GetRegistrationByID(ctx, reg.ID)
	require.NoError(t, err)
	require.Equal(t, reg.FullName, got.FullName)
	require.Equal(t, reg.Place, got.Place)
	require.Equal(t, reg.TeamName, got.TeamName)
	require.Equal(t, reg.Category, got.Category)
	require.Equal(t, reg.Programs, got.Programs)
	require.True(t, reg.CreatedAt.Equal(got.CreatedAt))

	_, err = s.Registrations().GetRegistrationByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRegistrations_ListOrderAndFilters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first := addRegistration(t, s, "First", "Team A", "Kochi", "junior", []string{"junior-bank"}, base)
	second := addRegistration(t, s, "Second", "Team B", "Calicut", "senior", []string{"senior-bank"}, base.Add(time.Hour))
	third := addRegistration(t, s, "Third", "Team A", "Kochi", "junior", []string{"junior-sudoku"}, base.Add(2*time.Hour))

	all, err := s.Registrations().ListRegistrations(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, []string{third.ID, second.ID, first.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	junior, err := s.Registrations().ListRegistrationsByCategory(ctx, "junior")
	require.NoError(t, err)
	require.Len(t, junior, 2)
	require.Equal(t, third.ID, junior[0].ID)

	since, err := s.Registrations().ListRegistrationsCreatedSince(ctx, base.Add(30*time.Minute))
	require.NoError(t, err)
	require.Len(t, since, 2)

	n, err := s.Registrations().CountRegistrations(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestRegistrations_Search(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a := addRegistration(t, s, "Muhammed Ali", "Green House", "Malappuram", "junior", []string{"junior-bank"}, base)
	b := addRegistration(t, s, "Fathima", "Blue House", "Alappuzha", "senior", []string{"senior-bank"}, base.Add(time.Minute))
	c := addRegistration(t, s, "100% Sure_Name", "Red", "Thrissur", "senior", []string{"senior-bank"}, base.Add(2*time.Minute))

	t.Run("case insensitive across fields", func(t *testing.T) {
		got, err := s.Registrations().SearchRegistrations(ctx, "ALI")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, a.ID, got[0].ID)

		got, err = s.Registrations().SearchRegistrations(ctx, "house")
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, b.ID, got[0].ID)

		got, err = s.Registrations().SearchRegistrations(ctx, "thrissur")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, c.ID, got[0].ID)
	})

	t.Run("wildcards match literally", func(t *testing.T) {
		got, err := s.Registrations().SearchRegistrations(ctx, "%")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, c.ID, got[0].ID)

		got, err = s.Registrations().SearchRegistrations(ctx, "e_n")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, c.ID, got[0].ID)

		got, err = s.Registrations().SearchRegistrations(ctx, "xyz")
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("name only with limit", func(t *testing.T) {
		got, err := s.Registrations().SearchRegistrationsByName(ctx, "a", 2)
		require.NoError(t, err)
		require.Len(t, got, 2)

		got, err = s.Registrations().SearchRegistrationsByName(ctx, "a", 0)
		require.NoError(t, err)
		require.Len(t, got, 3)

		got, err = s.Registrations().SearchRegistrationsByName(ctx, "house", 0)
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("non-ascii case folding", func(t *testing.T) {
		e := addRegistration(t, s, "ÉMILE ÖZTÜRK", "Équipe Été", "İzmir", "senior", []string{"senior-bank"}, base.Add(3*time.Minute))

		for _, term := range []string{"ÉMILE", "émile", "öztürk", "ÖZTÜRK", "émile öz"} {
			got, err := s.Registrations().SearchRegistrations(ctx, term)
			require.NoError(t, err, term)
			require.Len(t, got, 1, term)
			require.Equal(t, e.ID, got[0].ID)

			got, err = s.Registrations().SearchRegistrationsByName(ctx, term, 10)
			require.NoError(t, err, term)
			require.Len(t, got, 1, term)
			require.Equal(t, e.ID, got[0].ID)
		}

		got, err := s.Registrations().SearchRegistrations(ctx, "ÉTÉ")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, e.ID, got[0].ID)
	})
}

func TestRegistrations_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	reg := addRegistration(t, s, "Aisha", "Team A", "Kochi", "junior", []string{"junior-bank"}, base)

	later := base.Add(time.Hour)
	got, err := s.Registrations().UpdateRegistration(ctx, reg.ID, domain.RegistrationPatch{
		Place:    ptr("Calicut"),
		Programs: []string{"junior-bank", "junior-drawing"},
	}, later)
	require.NoError(t, err)
	require.Equal(t, "Aisha", got.FullName)
	require.Equal(t, "Calicut", got.Place)
	require.Equal(t, []string{"junior-bank", "junior-drawing"}, got.Programs)
	require.True(t, later.Equal(got.UpdatedAt))
	require.True(t, base.Equal(got.CreatedAt))

	_, err = s.Registrations().UpdateRegistration(ctx, uuid.NewString(), domain.RegistrationPatch{Place: ptr("x")}, later)
	require.ErrorIs(t, err, store.ErrNotFound)

	ok, err := s.Registrations().DeleteRegistration(ctx, reg.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Registrations().DeleteRegistration(ctx, reg.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTeams_UniqueAndUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	team := domain.Team{ID: uuid.NewString(), Name: "Team A", IsActive: true, CreatedAt: base, UpdatedAt: base}
	require.NoError(t, s.Teams().CreateTeam(ctx, team))

	err := s.Teams().CreateTeam(ctx, domain.Team{ID: uuid.NewString(), Name: "Team A", CreatedAt: base, UpdatedAt: base})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	other := domain.Team{ID: uuid.NewString(), Name: "Team B", IsActive: true, CreatedAt: base, UpdatedAt: base}
	require.NoError(t, s.Teams().CreateTeam(ctx, other))

	_, err = s.Teams().UpdateTeam(ctx, other.ID, domain.TeamPatch{Name: ptr("Team A")}, base)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	updated, err := s.Teams().UpdateTeam(ctx, other.ID, domain.TeamPatch{IsActive: ptr(false)}, base.Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, "Team B", updated.Name)
	require.False(t, updated.IsActive)

	active, err := s.Teams().ListActiveTeams(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "Team A", active[0].Name)

	byName, err := s.Teams().GetTeamByName(ctx, "Team B")
	require.NoError(t, err)
	require.Equal(t, other.ID, byName.ID)

	_, err = s.Teams().UpdateTeam(ctx, uuid.NewString(), domain.TeamPatch{Name: ptr("x")}, base)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestPrograms_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p := domain.Program{
		ID:           uuid.NewString(),
		ProgramID:    "junior-quiz",
		Name:         "Quiz",
		Category:     "junior",
		Type:         "stage",
		IsActive:     true,
		DisplayOrder: 50,
		CreatedAt:    base,
		UpdatedAt:    base,
	}
	require.NoError(t, s.Programs().CreateProgram(ctx, p))

	dup := p
	dup.ID = uuid.NewString()
	require.ErrorIs(t, s.Programs().CreateProgram(ctx, dup), store.ErrAlreadyExists)

	got, err := s.Programs().GetProgramByProgramID(ctx, "junior-quiz")
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)

	updated, err := s.Programs().UpdateProgram(ctx, p.ID, domain.ProgramPatch{
		IsActive:     ptr(false),
		DisplayOrder: ptr(3),
	}, base.Add(time.Minute))
	require.NoError(t, err)
	require.False(t, updated.IsActive)
	require.Equal(t, 3, updated.DisplayOrder)
	require.Equal(t, "Quiz", updated.Name)

	total, active, err := s.Programs().CountPrograms(ctx)
	require.NoError(t, err)
	require.Equal(t, 23, total)
	require.Equal(t, 22, active)

	activeList, err := s.Programs().ListActivePrograms(ctx)
	require.NoError(t, err)
	require.Len(t, activeList, 22)

	ok, err := s.Programs().DeleteProgram(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = s.Programs().GetProgramByID(ctx, p.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsersAndSessions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	has, err := s.Users().HasRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	require.False(t, has)

	u := domain.User{
		ID:           uuid.NewString(),
		Username:     "admin",
		PasswordHash: "hash",
		Role:         domain.RoleAdmin,
		CreatedAt:    base,
		UpdatedAt:    base,
	}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	dup := u
	dup.ID = uuid.NewString()
	require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

	has, err = s.Users().HasRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	require.True(t, has)

	require.NoError(t, s.Users().UpdatePasswordHash(ctx, u.ID, "new-hash"))
	got, err := s.Users().GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, "new-hash", got.PasswordHash)
	require.Equal(t, domain.RoleAdmin, got.Role)

	require.ErrorIs(t, s.Users().UpdatePasswordHash(ctx, uuid.NewString(), "x"), store.ErrNotFound)

	sess := domain.Session{
		ID:        "fingerprint",
		UserID:    u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: base,
		ExpiresAt: base.Add(time.Hour),
	}
	require.NoError(t, s.Sessions().CreateSession(ctx, sess))

	gotSess, err := s.Sessions().GetSession(ctx, sess.ID, base.Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, u.ID, gotSess.UserID)
	require.Equal(t, domain.RoleAdmin, gotSess.Role)

	_, err = s.Sessions().GetSession(ctx, sess.ID, base.Add(2*time.Hour))
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := s.Sessions().DeleteExpiredSessions(ctx, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	require.NoError(t, s.Sessions().DeleteSession(ctx, sess.ID))
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	boom := context.Canceled
	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Teams().CreateTeam(ctx, domain.Team{
			ID: uuid.NewString(), Name: "Ghost", CreatedAt: base, UpdatedAt: base,
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Teams().GetTeamByName(ctx, "Ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestLikePattern(t *testing.T) {
	t.Parallel()

	require.Equal(t, `%abc%`, likePattern("ABC"))
	require.Equal(t, `%50\%%`, likePattern("50%"))
	require.Equal(t, `%a\_b%`, likePattern("a_b"))
	require.Equal(t, `%a\\b%`, likePattern(`a\b`))
}
