package http

import (
	"net/http"

	"github.com/aussiebroadwan/registrar/internal/registrar/service"
	"github.com/aussiebroadwan/registrar/pkg/httpx"
	"github.com/aussiebroadwan/registrar/pkg/registrarsdk"
)

// AdminHandler manages programs, teams and users.
type AdminHandler struct {
	Programs *service.ProgramService
	Teams    *service.TeamService
	Users    *service.UserService
}

// HandleListPrograms handles GET /api/admin/programs
//
//	@Summary	List all programs
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{array}		registrarsdk.Program
//	@Failure	401	{object}	registrarsdk.ErrorResponse
//	@Failure	403	{object}	registrarsdk.ErrorResponse
//	@Router		/api/admin/programs [get].
func (h *AdminHandler) HandleListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.Programs.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(programs, toProgram))
}

// HandleCreateProgram handles POST /api/admin/programs
//
//	@Summary	Create a program
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body		registrarsdk.CreateProgramRequest	true	"Program"
//	@Success	201		{object}	registrarsdk.Program
//	@Failure	400		{object}	registrarsdk.ErrorResponse
//	@Failure	409		{object}	registrarsdk.ErrorResponse	"programId taken"
//	@Router		/api/admin/programs [post].
func (h *AdminHandler) HandleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var req registrarsdk.CreateProgramRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	p, err := h.Programs.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toProgram(p))
}

// HandleGetProgram handles GET /api/admin/programs/{id}
//
//	@Summary	Get a program
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string	true	"Program row id"
//	@Success	200	{object}	registrarsdk.Program
//	@Failure	404	{object}	registrarsdk.ErrorResponse
//	@Router		/api/admin/programs/{id} [get].
func (h *AdminHandler) HandleGetProgram(w http.ResponseWriter, r *http.Request) {
	p, err := h.Programs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProgram(p))
}

// HandleUpdateProgram handles PUT /api/admin/programs/{id}
//
//	@Summary	Update a program
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Program row id"
//	@Param		request	body		registrarsdk.UpdateProgramRequest	true	"Fields to change"
//	@Success	200		{object}	registrarsdk.Program
//	@Failure	404		{object}	registrarsdk.ErrorResponse
//	@Failure	409		{object}	registrarsdk.ErrorResponse
//	@Router		/api/admin/programs/{id} [put].
func (h *AdminHandler) HandleUpdateProgram(w http.ResponseWriter, r *http.Request) {
	var req registrarsdk.UpdateProgramRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	p, err := h.Programs.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProgram(p))
}

// HandleDeleteProgram handles DELETE /api/admin/programs/{id}
//
//	@Summary	Delete a program
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string	true	"Program row id"
//	@Success	200	{object}	registrarsdk.MessageResponse
//	@Failure	404	{object}	registrarsdk.ErrorResponse
//	@Router		/api/admin/programs/{id} [delete].
func (h *AdminHandler) HandleDeleteProgram(w http.ResponseWriter, r *http.Request) {
	if err := h.Programs.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, registrarsdk.MessageResponse{Message: "Program deleted successfully"})
}

// HandleListTeams handles GET /api/admin/teams
//
//	@Summary	List all teams
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{array}	registrarsdk.Team
//	@Router		/api/admin/teams [get].
func (h *AdminHandler) HandleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Teams.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(teams, toTeam))
}

// HandleCreateTeam handles POST /api/admin/teams
//
//	@Summary	Create a team
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body		registrarsdk.CreateTeamRequest	true	"Team"
//	@Success	201		{object}	registrarsdk.Team
//	@Failure	409		{object}	registrarsdk.ErrorResponse	"name taken"
//	@Router		/api/admin/teams [post].
func (h *AdminHandler) HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req registrarsdk.CreateTeamRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	t, err := h.Teams.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toTeam(t))
}

// HandleGetTeam handles GET /api/admin/teams/{id}
//
//	@Summary	Get a team
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string	true	"Team id"
//	@Success	200	{object}	registrarsdk.Team
//	@Failure	404	{object}	registrarsdk.ErrorResponse
//	@Router		/api/admin/teams/{id} [get].
func (h *AdminHandler) HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	t, err := h.Teams.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTeam(t))
}

// HandleUpdateTeam handles PUT /api/admin/teams/{id}
//
//	@Summary	Update a team
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Team id"
//	@Param		request	body		registrarsdk.UpdateTeamRequest	true	"Fields to change"
//	@Success	200		{object}	registrarsdk.Team
//	@Failure	404		{object}	registrarsdk.ErrorResponse
//	@Failure	409		{object}	registrarsdk.ErrorResponse
//	@Router		/api/admin/teams/{id} [put].
func (h *AdminHandler) HandleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	var req registrarsdk.UpdateTeamRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	t, err := h.Teams.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTeam(t))
}

// HandleDeleteTeam handles DELETE /api/admin/teams/{id}
//
//	@Summary	Delete a team
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string	true	"Team id"
//	@Success	200	{object}	registrarsdk.MessageResponse
//	@Failure	404	{object}	registrarsdk.ErrorResponse
//	@Router		/api/admin/teams/{id} [delete].
func (h *AdminHandler) HandleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.Teams.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, registrarsdk.MessageResponse{Message: "Team deleted successfully"})
}

// HandleListUsers handles GET /api/admin/users
//
//	@Summary	List users
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{array}	registrarsdk.User
//	@Router		/api/admin/users [get].
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(users, toUser))
}

// HandleCreateUser handles POST /api/admin/users
//
//	@Summary	Create a user
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body		registrarsdk.CreateUserRequest	true	"User"
//	@Success	201		{object}	registrarsdk.User
//	@Failure	400		{object}	registrarsdk.ErrorResponse
//	@Failure	409		{object}	registrarsdk.ErrorResponse	"username taken"
//	@Router		/api/admin/users [post].
func (h *AdminHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req registrarsdk.CreateUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	u, err := h.Users.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toUser(u))
}
