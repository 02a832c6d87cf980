package registrar_test

import (
	"bytes"
	"testing"

	"github.com/aussiebroadwan/registrar/pkg/registrarsdk"
	"github.com/stretchr/testify/require"
)

// TestRegistrationFlow walks a registration from the public form through the
// back office to the reports.
func TestRegistrationFlow(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()
	ctx := t.Context()

	public := registrarsdk.NewClient(baseURL)

	catalog, err := public.GetCatalog(ctx)
	require.NoError(t, err)
	require.NotNil(t, catalog)

	programs, err := public.ListPrograms(ctx, registrarsdk.CategorySenior)
	require.NoError(t, err)
	require.Len(t, programs, 11)

	reg, err := public.CreateRegistration(ctx, registrarsdk.CreateRegistrationRequest{
		FullName: "Fathima Noor",
		Place:    "Malappuram",
		TeamName: "Crescent",
		Category: registrarsdk.CategorySenior,
		Programs: []string{programs[0].ProgramID},
	})
	require.NoError(t, err)
	require.NotEmpty(t, reg.ID)

	found, err := public.PublicSearch(ctx, "fathima")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, reg.ID, found[0].ID)

	// Back office needs a session.
	_, err = public.ListRegistrations(ctx, registrarsdk.ListRegistrationsParams{})
	assertStatus(t, err, 401)

	admin := adminClient(t, baseURL)

	me, err := admin.Me(ctx)
	require.NoError(t, err)
	require.True(t, me.Authenticated)
	require.Equal(t, "admin", me.User.Role)

	regs, err := admin.ListRegistrations(ctx, registrarsdk.ListRegistrationsParams{Category: registrarsdk.CategorySenior})
	require.NoError(t, err)
	require.Len(t, regs, 1)

	stats, err := admin.GetStatistics(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Total)

	pdf, err := admin.RosterPDF(ctx, registrarsdk.RosterParams{Category: registrarsdk.CategorySenior})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	pdf, err = admin.RegistrationPDF(ctx, reg.ID)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	_, err = admin.ArchiveRoster(ctx, registrarsdk.RosterParams{})
	assertStatus(t, err, 404)

	require.NoError(t, admin.DeleteRegistration(ctx, reg.ID))
	_, err = admin.GetRegistration(ctx, reg.ID)
	require.True(t, registrarsdk.IsNotFound(err))

	require.NoError(t, admin.Logout(ctx))
	me, err = admin.Me(ctx)
	require.NoError(t, err)
	require.False(t, me.Authenticated)
}

// TestTeamLeaderCapabilities checks that a team leader can work registrations
// but not the catalog.
func TestTeamLeaderCapabilities(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()
	ctx := t.Context()

	admin := adminClient(t, baseURL)
	_, err := admin.CreateUser(ctx, registrarsdk.CreateUserRequest{
		Username: "leader",
		Password: "leader-password",
		Role:     registrarsdk.RoleTeamLeader,
	})
	require.NoError(t, err)

	_, err = admin.CreateUser(ctx, registrarsdk.CreateUserRequest{
		Username: "leader",
		Password: "leader-password",
		Role:     registrarsdk.RoleTeamLeader,
	})
	require.True(t, registrarsdk.IsConflict(err))

	leader := registrarsdk.NewClient(baseURL)
	_, err = leader.Login(ctx, "leader", "leader-password")
	require.NoError(t, err)

	_, err = leader.ListRegistrations(ctx, registrarsdk.ListRegistrationsParams{})
	require.NoError(t, err)

	_, err = leader.AdminListPrograms(ctx)
	assertStatus(t, err, 403)

	_, err = leader.CreateTeam(ctx, registrarsdk.CreateTeamRequest{Name: "Crescent"})
	assertStatus(t, err, 403)
}
