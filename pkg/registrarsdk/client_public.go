package registrarsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListPrograms returns active programs, optionally limited to one category.
func (c *Client) ListPrograms(ctx context.Context, category string) ([]Program, error) {
	path := "/api/programs"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var out []Program
	if err := c.call(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTeams returns active teams.
func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	var out []Team
	if err := c.call(ctx, http.MethodGet, "/api/teams", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCatalog returns the static alias, label and classification tables.
func (c *Client) GetCatalog(ctx context.Context) (*CatalogResponse, error) {
	var out CatalogResponse
	if err := c.call(ctx, http.MethodGet, "/api/catalog", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Suggestions returns autocomplete matches for a name prefix.
func (c *Client) Suggestions(ctx context.Context, name string) ([]Suggestion, error) {
	var out []Suggestion
	path := "/api/public/suggestions?name=" + url.QueryEscape(name)
	if err := c.call(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// PublicSearch returns sanitized registrations matching name.
func (c *Client) PublicSearch(ctx context.Context, name string) ([]PublicRegistration, error) {
	var out []PublicRegistration
	path := "/api/public/search?name=" + url.QueryEscape(name)
	if err := c.call(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}
