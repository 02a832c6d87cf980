package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/service"
	"github.com/aussiebroadwan/registrar/internal/registrar/session"
	"github.com/aussiebroadwan/registrar/internal/registrar/store"
	"github.com/aussiebroadwan/registrar/pkg/httpx"
	"github.com/aussiebroadwan/registrar/pkg/registrarsdk"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness check returning status, uptime and version. Always 200 while the process runs.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	registrarsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, registrarsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness check of the database and the session store.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	registrarsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	registrarsdk.HealthResponse	"service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &registrarsdk.HealthChecks{Database: "ok", Sessions: "ok"}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		if err := sessions.Ping(r.Context()); err != nil {
			checks.Sessions = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, registrarsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

// SystemHandler serves the admin status page.
type SystemHandler struct {
	System *service.SystemService
}

// HandleStatus handles GET /api/system/status
//
//	@Summary	System status
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	registrarsdk.SystemStatusResponse
//	@Failure	401	{object}	registrarsdk.ErrorResponse
//	@Failure	403	{object}	registrarsdk.ErrorResponse
//	@Router		/api/system/status [get].
func (h *SystemHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.System.Status(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	database := "connected"
	if !st.DatabaseUp {
		database = "disconnected"
	}
	httpx.WriteJSON(w, http.StatusOK, registrarsdk.SystemStatusResponse{
		Status:   st.Status,
		Uptime:   st.Uptime.String(),
		Version:  st.Version,
		Env:      st.Env,
		Database: database,
		Runtime: registrarsdk.RuntimeStatus{
			Goroutines:     st.Goroutines,
			HeapAllocBytes: st.HeapAllocBytes,
			SysBytes:       st.SysBytes,
		},
		Metrics: registrarsdk.StatusMetrics{
			TotalRegistrations: st.TotalRegistrations,
			TotalPrograms:      st.TotalPrograms,
			ActivePrograms:     st.ActivePrograms,
		},
	})
}
