package domain

import "slices"

// Role is a staff account's role. Capabilities derive from it.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTeamLeader Role = "team_leader"
)

// Capabilities guard routes. Roles map to a fixed capability set.
const (
	CapRegistrationsRead  = "registrations:read"
	CapRegistrationsWrite = "registrations:write"
	CapStatisticsRead     = "statistics:read"
	CapReportsRead        = "reports:read"
	CapReportsArchive     = "reports:archive"
	CapProgramsManage     = "programs:manage"
	CapTeamsManage        = "teams:manage"
	CapUsersManage        = "users:manage"
	CapExportsSheets      = "exports:sheets"
	CapSystemRead         = "system:read"
)

var allCapabilities = []string{
	CapRegistrationsRead,
	CapRegistrationsWrite,
	CapStatisticsRead,
	CapReportsRead,
	CapReportsArchive,
	CapProgramsManage,
	CapTeamsManage,
	CapUsersManage,
	CapExportsSheets,
	CapSystemRead,
}

var roleCapabilities = map[Role][]string{
	RoleAdmin: allCapabilities,
	RoleTeamLeader: {
		CapRegistrationsRead,
		CapRegistrationsWrite,
		CapStatisticsRead,
		CapReportsRead,
	},
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Capabilities returns a copy of the role's capabilities. Unknown roles have none.
func (r Role) Capabilities() []string {
	return slices.Clone(roleCapabilities[r])
}

// Can reports whether the role holds the capability.
func (r Role) Can(capability string) bool {
	return slices.Contains(roleCapabilities[r], capability)
}
