package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleCapabilities(t *testing.T) {
	t.Parallel()

	for _, c := range allCapabilities {
		require.True(t, RoleAdmin.Can(c), c)
	}

	require.True(t, RoleTeamLeader.Can(CapRegistrationsRead))
	require.True(t, RoleTeamLeader.Can(CapRegistrationsWrite))
	require.True(t, RoleTeamLeader.Can(CapStatisticsRead))
	require.True(t, RoleTeamLeader.Can(CapReportsRead))
	require.False(t, RoleTeamLeader.Can(CapProgramsManage))
	require.False(t, RoleTeamLeader.Can(CapUsersManage))

	require.False(t, Role("guest").Valid())
	require.Empty(t, Role("guest").Capabilities())

	caps := RoleTeamLeader.Capabilities()
	caps[0] = "tampered"
	require.True(t, RoleTeamLeader.Can(CapRegistrationsRead))
}
