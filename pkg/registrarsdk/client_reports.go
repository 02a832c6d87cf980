package registrarsdk

import (
	"context"
	"net/http"
	"net/url"
)

// RegistrationPDF downloads the detail sheet of one registration.
func (c *Client) RegistrationPDF(ctx context.Context, id string) ([]byte, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/reports/registrations/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return readDocument(resp)
}

// RosterPDF downloads a filtered roster. A filter set that matches nothing
// is a 404 APIError with the no_registrations code rather than an empty PDF.
//
// Example:
//
//	pdf, err := c.RosterPDF(ctx, registrarsdk.RosterParams{
//		Category:    registrarsdk.CategoryJunior,
//		ProgramType: registrarsdk.ProgramTypeStage,
//		Range:       registrarsdk.RangeWeek,
//	})
//	if registrarsdk.IsNotFound(err) {
//		// nothing registered this week
//	}
func (c *Client) RosterPDF(ctx context.Context, params RosterParams) ([]byte, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/reports/roster?"+rosterQuery(params).Encode(), nil)
	if err != nil {
		return nil, err
	}
	return readDocument(resp)
}

// ArchiveRoster renders a roster and stores it in the report archive. The
// server answers 404 with the not_enabled code when no archive is configured.
func (c *Client) ArchiveRoster(ctx context.Context, params RosterParams) (*ArchiveResponse, error) {
	var out ArchiveResponse
	if err := c.call(ctx, http.MethodPost, "/api/admin/reports/roster/archive", params, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportSheets writes the per-category rosters to the configured spreadsheet.
func (c *Client) ExportSheets(ctx context.Context) (*SheetsExportResponse, error) {
	var out SheetsExportResponse
	if err := c.call(ctx, http.MethodPost, "/api/admin/exports/sheets", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// rosterQuery omits empty filters so the server applies its defaults.
func rosterQuery(p RosterParams) url.Values {
	q := url.Values{}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.ProgramType != "" {
		q.Set("programType", p.ProgramType)
	}
	if p.Range != "" {
		q.Set("range", p.Range)
	}
	return q
}
