package http

import (
	"net/http"

	"github.com/aussiebroadwan/registrar/internal/registrar/catalog"
	"github.com/aussiebroadwan/registrar/internal/registrar/service"
	"github.com/aussiebroadwan/registrar/pkg/httpx"
	"github.com/aussiebroadwan/registrar/pkg/registrarsdk"
)

// PublicHandler serves the anonymous registration form and lookups.
type PublicHandler struct {
	Registrations *service.RegistrationService
	Programs      *service.ProgramService
	Teams         *service.TeamService
}

// HandlePrograms handles GET /api/programs
//
//	@Summary	Active programs
//	@Tags		Public
//	@Produce	json
//	@Param		category	query	string	false	"junior or senior"
//	@Success	200			{array}	registrarsdk.Program
//	@Router		/api/programs [get].
func (h *PublicHandler) HandlePrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.Programs.ListActive(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(programs, toProgram))
}

// HandleTeams handles GET /api/teams
//
//	@Summary	Active teams
//	@Tags		Public
//	@Produce	json
//	@Success	200	{array}	registrarsdk.Team
//	@Router		/api/teams [get].
func (h *PublicHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Teams.ListActive(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(teams, toTeam))
}

// HandleCatalog handles GET /api/catalog
//
//	@Summary		Normalization tables
//	@Description	Legacy aliases, display labels and the per-category stage/non-stage lists.
//	@Tags			Public
//	@Produce		json
//	@Success		200	{object}	registrarsdk.CatalogResponse
//	@Router			/api/catalog [get].
func (h *PublicHandler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	categories := make(map[string]registrarsdk.CategoryPrograms, len(catalog.Categories()))
	for _, c := range catalog.Categories() {
		p, _ := catalog.ForCategory(c)
		categories[c] = registrarsdk.CategoryPrograms{Stage: p.Stage, NonStage: p.NonStage}
	}
	httpx.WriteJSON(w, http.StatusOK, registrarsdk.CatalogResponse{
		Aliases:    catalog.Aliases(),
		Labels:     catalog.LabelTable(),
		Categories: categories,
	})
}

// HandleSuggestions handles GET /api/public/suggestions
//
//	@Summary		Name suggestions
//	@Description	Fewer than two characters yield an empty list.
//	@Tags			Public
//	@Produce		json
//	@Param			name	query	string	true	"Name fragment"
//	@Success		200		{array}	registrarsdk.Suggestion
//	@Router			/api/public/suggestions [get].
func (h *PublicHandler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	regs, err := h.Registrations.Suggestions(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(regs, toSuggestion))
}

// HandleSearch handles GET /api/public/search
//
//	@Summary		Public search by name
//	@Description	Returns sanitized records. Names shorter than three characters are rejected.
//	@Tags			Public
//	@Produce		json
//	@Param			name	query		string	true	"Name fragment"
//	@Success		200		{array}		registrarsdk.PublicRegistration
//	@Failure		400		{object}	registrarsdk.ErrorResponse
//	@Router			/api/public/search [get].
func (h *PublicHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	regs, err := h.Registrations.PublicSearch(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(regs, toPublicRegistration))
}
