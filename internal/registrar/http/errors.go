package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/registrar/internal/registrar/service"
	"github.com/aussiebroadwan/registrar/pkg/httpx"
	"github.com/aussiebroadwan/registrar/pkg/registrarsdk"
	"github.com/aussiebroadwan/registrar/pkg/slogx"
	"github.com/getsentry/sentry-go"
)

// writeServiceError maps service errors to responses. Unexpected errors are
// logged, reported to Sentry when a hub is attached, and answered with a
// generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		details := make([]httpx.ErrorDetail, len(ve.Fields))
		for i, f := range ve.Fields {
			details[i] = httpx.ErrorDetail{Field: f.Field, Issue: f.Issue}
		}
		httpx.WriteError(w, http.StatusBadRequest, registrarsdk.ErrorCodeValidation, "Validation failed", details...)
	case errors.Is(err, httpx.ErrBadBody):
		httpx.WriteError(w, http.StatusBadRequest, registrarsdk.ErrorCodeValidation, "Invalid JSON in request body")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, registrarsdk.ErrorCodeInvalidCredentials, "Invalid username or password")
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, registrarsdk.ErrorCodeNotFound, "Not found")
	case errors.Is(err, service.ErrFeatureDisabled):
		httpx.WriteError(w, http.StatusNotFound, registrarsdk.ErrorCodeNotEnabled, "Feature is not enabled")
	case errors.Is(err, service.ErrNoRegistrations):
		httpx.WriteError(w, http.StatusNotFound, registrarsdk.ErrorCodeNoRegistrations, "No registrations match the filters")
	case errors.Is(err, service.ErrConflict):
		httpx.WriteError(w, http.StatusConflict, registrarsdk.ErrorCodeConflict, conflictMessage(err))
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
			hub.CaptureException(err)
		}
		httpx.WriteError(w, http.StatusInternalServerError, registrarsdk.ErrorCodeServerError, "Internal server error")
	}
}

// conflictMessage strips the sentinel prefix so clients see which value clashed.
func conflictMessage(err error) string {
	msg := err.Error()
	prefix := service.ErrConflict.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return "Already exists"
}
