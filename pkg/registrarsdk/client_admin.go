package registrarsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ============================================================================
// Programs
// ============================================================================

// AdminListPrograms returns every program, active or not. Requires
// programs:manage.
func (c *Client) AdminListPrograms(ctx context.Context) ([]Program, error) {
	var out []Program
	if err := c.call(ctx, http.MethodGet, "/api/admin/programs", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProgram fails with a 409 APIError when the programId is taken.
func (c *Client) CreateProgram(ctx context.Context, req CreateProgramRequest) (*Program, error) {
	var out Program
	if err := c.call(ctx, http.MethodPost, "/api/admin/programs", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProgram applies a partial update to the program with database id id.
func (c *Client) UpdateProgram(ctx context.Context, id string, req UpdateProgramRequest) (*Program, error) {
	var out Program
	if err := c.call(ctx, http.MethodPut, "/api/admin/programs/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProgram removes a program. Registrations keep the id they stored.
func (c *Client) DeleteProgram(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/admin/programs/"+url.PathEscape(id), nil, nil, http.StatusOK)
}

// ============================================================================
// Teams
// ============================================================================

// AdminListTeams returns all teams, including inactive ones.
func (c *Client) AdminListTeams(ctx context.Context) ([]Team, error) {
	var out []Team
	if err := c.call(ctx, http.MethodGet, "/api/admin/teams", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTeam fails with a 409 APIError when the name is taken.
func (c *Client) CreateTeam(ctx context.Context, req CreateTeamRequest) (*Team, error) {
	var out Team
	if err := c.call(ctx, http.MethodPost, "/api/admin/teams", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTeam renames or toggles a team.
func (c *Client) UpdateTeam(ctx context.Context, id string, req UpdateTeamRequest) (*Team, error) {
	var out Team
	if err := c.call(ctx, http.MethodPut, "/api/admin/teams/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTeam leaves registrations that name the team unchanged.
func (c *Client) DeleteTeam(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/admin/teams/"+url.PathEscape(id), nil, nil, http.StatusOK)
}

// ============================================================================
// Users
// ============================================================================

// ListUsers requires users:manage.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.call(ctx, http.MethodGet, "/api/admin/users", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser fails with a 409 APIError when the username is taken.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var out User
	if err := c.call(ctx, http.MethodPost, "/api/admin/users", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}
