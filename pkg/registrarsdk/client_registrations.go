package registrarsdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateRegistration submits a registration. No session is required.
// Validation failures come back as a 400 APIError whose Details name the
// failing fields; req.Validate reports the same problems without a round trip.
//
// Example:
//
//	reg, err := c.CreateRegistration(ctx, registrarsdk.CreateRegistrationRequest{
//		FullName: "Aisha K",
//		Place:    "Kondotty",
//		TeamName: "Green House",
//		Category: registrarsdk.CategoryJunior,
//		Programs: []string{"junior-qiraat", "junior-drawing"},
//	})
func (c *Client) CreateRegistration(ctx context.Context, req CreateRegistrationRequest) (*Registration, error) {
	var out Registration
	if err := c.call(ctx, http.MethodPost, "/api/registrations", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRegistrations requires registrations:read.
func (c *Client) ListRegistrations(ctx context.Context, params ListRegistrationsParams) ([]Registration, error) {
	q := url.Values{}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	path := "/api/registrations"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []Registration
	if err := c.call(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRegistration returns a 404 APIError for unknown ids; see IsNotFound.
func (c *Client) GetRegistration(ctx context.Context, id string) (*Registration, error) {
	var out Registration
	if err := c.call(ctx, http.MethodGet, "/api/registrations/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRegistration applies a partial update and returns the stored result.
// Requires registrations:write.
func (c *Client) UpdateRegistration(ctx context.Context, id string, req UpdateRegistrationRequest) (*Registration, error) {
	var out Registration
	if err := c.call(ctx, http.MethodPut, "/api/registrations/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRegistration requires registrations:write.
func (c *Client) DeleteRegistration(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/registrations/"+url.PathEscape(id), nil, nil, http.StatusOK)
}

// GetStatistics requires statistics:read.
func (c *Client) GetStatistics(ctx context.Context) (*Statistics, error) {
	var out Statistics
	if err := c.call(ctx, http.MethodGet, "/api/statistics", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProgramStatistics returns the per-category program breakdown.
func (c *Client) GetProgramStatistics(ctx context.Context) (*ProgramStatistics, error) {
	var out ProgramStatistics
	if err := c.call(ctx, http.MethodGet, "/api/statistics/programs", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
