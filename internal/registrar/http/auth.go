package http

import (
	"net/http"

	"github.com/aussiebroadwan/registrar/internal/registrar/service"
	"github.com/aussiebroadwan/registrar/internal/registrar/session"
	"github.com/aussiebroadwan/registrar/pkg/httpx"
	"github.com/aussiebroadwan/registrar/pkg/registrarsdk"
	"github.com/aussiebroadwan/registrar/pkg/slogx"
)

// AuthHandler handles login, logout and session introspection.
type AuthHandler struct {
	Auth     *service.AuthService
	Sessions *session.Manager
}

// HandleLogin handles POST /api/auth/login
//
//	@Summary		Log in
//	@Description	Verifies a username and password and starts a cookie session.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		registrarsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	registrarsdk.LoginResponse
//	@Failure		400		{object}	registrarsdk.ErrorResponse	"validation_error"
//	@Failure		401		{object}	registrarsdk.ErrorResponse	"invalid_credentials"
//	@Failure		429		{object}	registrarsdk.ErrorResponse	"rate_limit_exceeded"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registrarsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if fe := req.Validate(); fe != nil {
		writeServiceError(w, r, &service.ValidationError{Fields: fe})
		return
	}

	user, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s, err := h.Sessions.Issue(ctx, w, user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, registrarsdk.LoginResponse{
		Message: "Login successful",
		User:    toSessionUser(s),
	})
}

// HandleLogout handles POST /api/auth/logout
//
//	@Summary		Log out
//	@Description	Destroys the current session, if any, and clears the cookie.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	registrarsdk.MessageResponse
//	@Router			/api/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Destroy(r.Context(), w, r); err != nil {
		slogx.FromContext(r.Context()).Warn("failed to delete session", "error", err)
	}
	httpx.WriteJSON(w, http.StatusOK, registrarsdk.MessageResponse{Message: "Logout successful"})
}

// HandleMe handles GET /api/auth/me
//
//	@Summary		Current session
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	registrarsdk.MeResponse
//	@Router			/api/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.PrincipalFromContext(r.Context())
	if !ok {
		httpx.WriteJSON(w, http.StatusOK, registrarsdk.MeResponse{Authenticated: false})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, registrarsdk.MeResponse{
		Authenticated: true,
		User:          &registrarsdk.SessionUser{ID: p.UserID, Username: p.Username, Role: p.Role},
	})
}
