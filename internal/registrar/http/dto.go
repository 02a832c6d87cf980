package http

import (
	"github.com/aussiebroadwan/registrar/internal/registrar/catalog"
	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/pkg/registrarsdk"
)

// toRegistration is the full view for signed-in staff.
func toRegistration(r domain.Registration) registrarsdk.Registration {
	programs := r.Programs
	if programs == nil {
		programs = []string{}
	}
	return registrarsdk.Registration{
		ID:        r.ID,
		FullName:  r.FullName,
		Place:     r.Place,
		TeamName:  r.TeamName,
		Category:  r.Category,
		Programs:  programs,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// toPublicRegistration keeps only the fields anonymous callers may see.
func toPublicRegistration(r domain.Registration) registrarsdk.PublicRegistration {
	programs := catalog.NormalizeAll(r.Programs)
	return registrarsdk.PublicRegistration{
		ID:            r.ID,
		FullName:      r.FullName,
		Place:         r.Place,
		TeamName:      r.TeamName,
		Category:      r.Category,
		Programs:      programs,
		ProgramLabels: catalog.Labels(programs),
		CreatedAt:     r.CreatedAt,
	}
}

func toSuggestion(r domain.Registration) registrarsdk.Suggestion {
	return registrarsdk.Suggestion{ID: r.ID, FullName: r.FullName, Place: r.Place}
}

func toProgram(p domain.Program) registrarsdk.Program {
	return registrarsdk.Program{
		ID:           p.ID,
		ProgramID:    p.ProgramID,
		Name:         p.Name,
		Category:     p.Category,
		Type:         p.Type,
		IsActive:     p.IsActive,
		DisplayOrder: p.DisplayOrder,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toTeam(t domain.Team) registrarsdk.Team {
	return registrarsdk.Team{
		ID:        t.ID,
		Name:      t.Name,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// toUser drops the password hash.
func toUser(u domain.User) registrarsdk.User {
	return registrarsdk.User{ID: u.ID, Username: u.Username, Role: string(u.Role), CreatedAt: u.CreatedAt}
}

// toSessionUser reports the user id, not the session id.
func toSessionUser(s domain.Session) registrarsdk.SessionUser {
	return registrarsdk.SessionUser{ID: s.UserID, Username: s.Username, Role: string(s.Role)}
}

func toBreakdown(b domain.CategoryBreakdown) registrarsdk.CategoryBreakdown {
	programs := make([]registrarsdk.ProgramCount, len(b.Programs))
	for i, p := range b.Programs {
		programs[i] = registrarsdk.ProgramCount{ProgramID: p.ProgramID, Label: p.Label, Type: p.Type, Count: p.Count}
	}
	return registrarsdk.CategoryBreakdown{
		Category:      b.Category,
		Registrations: b.Registrations,
		Stage:         b.Stage,
		NonStage:      b.NonStage,
		Programs:      programs,
	}
}

// mapSlice converts every element with fn and never returns nil.
func mapSlice[D any, T any](in []D, fn func(D) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}
