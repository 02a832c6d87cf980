package registrarsdk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCreateRegistrationRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := CreateRegistrationRequest{
		FullName: "A",
		Place:    "P",
		TeamName: "T1",
		Category: CategoryJunior,
		Programs: []string{"junior-qiraat", "junior-drawing"},
	}
	require.Nil(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*CreateRegistrationRequest)
		field  string
	}{
		{"missing full name", func(r *CreateRegistrationRequest) { r.FullName = "  " }, "fullName"},
		{"missing place", func(r *CreateRegistrationRequest) { r.Place = "" }, "place"},
		{"missing team", func(r *CreateRegistrationRequest) { r.TeamName = "" }, "teamName"},
		{"long name", func(r *CreateRegistrationRequest) { r.FullName = strings.Repeat("a", 101) }, "fullName"},
		{"bad category", func(r *CreateRegistrationRequest) { r.Category = "adult" }, "category"},
		{"no programs", func(r *CreateRegistrationRequest) { r.Programs = nil }, "programs"},
		{"empty program", func(r *CreateRegistrationRequest) { r.Programs = []string{"junior-bank", ""} }, "programs[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			req.Programs = append([]string(nil), valid.Programs...)
			tt.mutate(&req)

			errs := req.Validate()
			require.True(t, errs.Has(tt.field), "expected %s in %v", tt.field, errs)
		})
	}
}

func TestCreateRegistrationRequest_ValidateMalayalamName(t *testing.T) {
	t.Parallel()

	// 100 runes, more than 100 bytes
	req := CreateRegistrationRequest{
		FullName: strings.Repeat("മ", 100),
		Place:    "P",
		TeamName: "T",
		Category: CategorySenior,
		Programs: []string{"senior-bank"},
	}
	require.Nil(t, req.Validate())
}

func TestUpdateRegistrationRequest_Validate(t *testing.T) {
	t.Parallel()

	require.Nil(t, UpdateRegistrationRequest{}.Validate())
	require.Nil(t, UpdateRegistrationRequest{Place: ptr("Kochi")}.Validate())

	errs := UpdateRegistrationRequest{Category: ptr("x"), Programs: []string{}}.Validate()
	require.True(t, errs.Has("category"))
	require.True(t, errs.Has("programs"))
}

func TestLoginRequest_Validate(t *testing.T) {
	t.Parallel()

	errs := LoginRequest{}.Validate()
	require.Len(t, errs, 2)
	require.Nil(t, LoginRequest{Username: "admin", Password: "x"}.Validate())
}

func TestCreateProgramRequest_Validate(t *testing.T) {
	t.Parallel()

	ok := CreateProgramRequest{ProgramID: "junior-kavitha", Name: "കവിത", Category: "junior", Type: "stage"}
	require.Nil(t, ok.Validate())

	for _, id := range []string{"", "Junior-Qiraat", "junior--qiraat", "-junior", "junior qiraat"} {
		bad := ok
		bad.ProgramID = id
		require.True(t, bad.Validate().Has("programId"), id)
	}

	bad := ok
	bad.Type = "offstage"
	bad.DisplayOrder = -1
	errs := bad.Validate()
	require.True(t, errs.Has("type"))
	require.True(t, errs.Has("displayOrder"))
}

func TestCreateUserRequest_Validate(t *testing.T) {
	t.Parallel()

	require.Nil(t, CreateUserRequest{Username: "leader.one", Password: "longenough", Role: RoleTeamLeader}.Validate())

	errs := CreateUserRequest{Username: "ab", Password: "short", Role: "root"}.Validate()
	require.True(t, errs.Has("username"))
	require.True(t, errs.Has("password"))
	require.True(t, errs.Has("role"))
	require.Contains(t, errs.Error(), "username: must be 3-32 characters")
}

func TestRosterParams_Validate(t *testing.T) {
	t.Parallel()

	require.Nil(t, RosterParams{}.Validate())
	require.Nil(t, RosterParams{Category: "senior", ProgramType: "non-stage", Range: "week"}.Validate())

	errs := RosterParams{Category: "x", ProgramType: "y", Range: "year"}.Validate()
	require.Len(t, errs, 3)
}
