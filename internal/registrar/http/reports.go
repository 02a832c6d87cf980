package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/service"
	"github.com/aussiebroadwan/registrar/pkg/httpx"
	"github.com/aussiebroadwan/registrar/pkg/registrarsdk"
)

const contentTypePDF = "application/pdf"

// ReportsHandler streams PDF reports and triggers archive and Sheets
// exports. The optional exports answer 404 not_enabled when unconfigured.
type ReportsHandler struct {
	Reports *service.ReportService
	Now     func() time.Time
}

// HandleDetail handles GET /api/reports/registrations/{id}
//
//	@Summary	Registration PDF
//	@Tags		Reports
//	@Produce	application/pdf
//	@Param		id	path		string	true	"Registration id"
//	@Success	200	{file}		file
//	@Failure	404	{object}	registrarsdk.ErrorResponse
//	@Router		/api/reports/registrations/{id} [get].
func (h *ReportsHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	pdf, err := h.Reports.Detail(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteFile(w, contentTypePDF, "registration-"+id+".pdf", pdf)
}

// HandleRoster handles GET /api/reports/roster
//
//	@Summary		Roster PDF
//	@Description	Filters combine. programType keeps registrations holding at least one program of that type.
//	@Tags			Reports
//	@Produce		application/pdf
//	@Param			category	query		string	false	"junior or senior"
//	@Param			programType	query		string	false	"stage or non-stage"
//	@Param			range		query		string	false	"today, week or month"
//	@Success		200			{file}		file
//	@Failure		400			{object}	registrarsdk.ErrorResponse
//	@Failure		404			{object}	registrarsdk.ErrorResponse	"no_registrations"
//	@Router			/api/reports/roster [get].
func (h *ReportsHandler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := registrarsdk.RosterParams{
		Category:    q.Get("category"),
		ProgramType: q.Get("programType"),
		Range:       q.Get("range"),
	}
	pdf, err := h.Reports.Roster(r.Context(), params)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteFile(w, contentTypePDF, h.rosterFilename(params.Category), pdf)
}

// HandleArchive handles POST /api/admin/reports/roster/archive
//
//	@Summary	Archive a roster PDF
//	@Tags		Reports
//	@Accept		json
//	@Produce	json
//	@Param		request	body		registrarsdk.RosterParams	true	"Roster filters"
//	@Success	201		{object}	registrarsdk.ArchiveResponse
//	@Failure	404		{object}	registrarsdk.ErrorResponse	"not_enabled or no_registrations"
//	@Router		/api/admin/reports/roster/archive [post].
func (h *ReportsHandler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	var params registrarsdk.RosterParams
	if err := httpx.DecodeJSON(w, r, &params); err != nil {
		writeServiceError(w, r, err)
		return
	}
	out, err := h.Reports.ArchiveRoster(r.Context(), params)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, registrarsdk.ArchiveResponse{Key: out.Key, URL: out.URL})
}

// HandleSheetsExport handles POST /api/admin/exports/sheets
//
//	@Summary	Export rosters to Google Sheets
//	@Tags		Reports
//	@Produce	json
//	@Success	200	{object}	registrarsdk.SheetsExportResponse
//	@Failure	404	{object}	registrarsdk.ErrorResponse	"not_enabled"
//	@Router		/api/admin/exports/sheets [post].
func (h *ReportsHandler) HandleSheetsExport(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reports.ExportSheets(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	tabs := make([]registrarsdk.SheetTab, len(out.Tabs))
	for i, t := range out.Tabs {
		tabs[i] = registrarsdk.SheetTab{Title: t.Title, Rows: t.Rows}
	}
	httpx.WriteJSON(w, http.StatusOK, registrarsdk.SheetsExportResponse{SpreadsheetID: out.SpreadsheetID, Tabs: tabs})
}

func (h *ReportsHandler) rosterFilename(category string) string {
	if category == "" {
		category = service.CustomRosterCategory
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	return fmt.Sprintf("%s-registrations-%s.pdf", category, now().Format("2006-01-02"))
}
