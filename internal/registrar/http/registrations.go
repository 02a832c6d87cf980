package http

import (
	"net/http"

	"github.com/aussiebroadwan/registrar/internal/registrar/service"
	"github.com/aussiebroadwan/registrar/pkg/httpx"
	"github.com/aussiebroadwan/registrar/pkg/registrarsdk"
)

// RegistrationsHandler serves /api/registrations.
type RegistrationsHandler struct {
	Registrations *service.RegistrationService
}

// HandleCreate handles POST /api/registrations
//
//	@Summary		Register a student
//	@Description	Public form submission. Programs are normalized and must be active programs of the category.
//	@Tags			Registrations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		registrarsdk.CreateRegistrationRequest	true	"Registration"
//	@Success		201		{object}	registrarsdk.Registration
//	@Failure		400		{object}	registrarsdk.ErrorResponse	"validation_error"
//	@Failure		429		{object}	registrarsdk.ErrorResponse	"rate_limit_exceeded"
//	@Router			/api/registrations [post].
func (h *RegistrationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req registrarsdk.CreateRegistrationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	reg, err := h.Registrations.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toRegistration(reg))
}

// HandleList handles GET /api/registrations
//
//	@Summary		List registrations
//	@Description	Newest first. search matches name, team or place and wins over category.
//	@Tags			Registrations
//	@Produce		json
//	@Param			search		query		string	false	"Substring of name, team or place"
//	@Param			category	query		string	false	"junior or senior"
//	@Success		200			{array}		registrarsdk.Registration
//	@Failure		401			{object}	registrarsdk.ErrorResponse
//	@Failure		403			{object}	registrarsdk.ErrorResponse
//	@Router			/api/registrations [get].
func (h *RegistrationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	regs, err := h.Registrations.List(r.Context(), registrarsdk.ListRegistrationsParams{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(regs, toRegistration))
}

// HandleGet handles GET /api/registrations/{id}
//
//	@Summary	Get a registration
//	@Tags		Registrations
//	@Produce	json
//	@Param		id	path		string	true	"Registration id"
//	@Success	200	{object}	registrarsdk.Registration
//	@Failure	404	{object}	registrarsdk.ErrorResponse
//	@Router		/api/registrations/{id} [get].
func (h *RegistrationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	reg, err := h.Registrations.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRegistration(reg))
}

// HandleUpdate handles PUT /api/registrations/{id}
//
//	@Summary	Update a registration
//	@Tags		Registrations
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string									true	"Registration id"
//	@Param		request	body		registrarsdk.UpdateRegistrationRequest	true	"Fields to change"
//	@Success	200		{object}	registrarsdk.Registration
//	@Failure	400		{object}	registrarsdk.ErrorResponse
//	@Failure	404		{object}	registrarsdk.ErrorResponse
//	@Router		/api/registrations/{id} [put].
func (h *RegistrationsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req registrarsdk.UpdateRegistrationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	reg, err := h.Registrations.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRegistration(reg))
}

// HandleDelete handles DELETE /api/registrations/{id}
//
//	@Summary	Delete a registration
//	@Tags		Registrations
//	@Produce	json
//	@Param		id	path		string	true	"Registration id"
//	@Success	200	{object}	registrarsdk.MessageResponse
//	@Failure	404	{object}	registrarsdk.ErrorResponse
//	@Router		/api/registrations/{id} [delete].
func (h *RegistrationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Registrations.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, registrarsdk.MessageResponse{Message: "Registration deleted successfully"})
}
