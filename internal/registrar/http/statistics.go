package http

import (
	"net/http"

	"github.com/aussiebroadwan/registrar/internal/registrar/service"
	"github.com/aussiebroadwan/registrar/pkg/httpx"
	"github.com/aussiebroadwan/registrar/pkg/registrarsdk"
)

// StatisticsHandler serves the dashboard figures.
type StatisticsHandler struct {
	Statistics *service.StatisticsService
}

// HandleSummary handles GET /api/statistics
//
//	@Summary	Registration counts
//	@Tags		Statistics
//	@Produce	json
//	@Success	200	{object}	registrarsdk.Statistics
//	@Failure	401	{object}	registrarsdk.ErrorResponse
//	@Router		/api/statistics [get].
func (h *StatisticsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	st, err := h.Statistics.Statistics(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, registrarsdk.Statistics{
		Total:  st.Total,
		Junior: st.Junior,
		Senior: st.Senior,
		Today:  st.Today,
	})
}

// HandlePrograms handles GET /api/statistics/programs
//
//	@Summary	Per-program breakdown
//	@Tags		Statistics
//	@Produce	json
//	@Success	200	{object}	registrarsdk.ProgramStatistics
//	@Failure	401	{object}	registrarsdk.ErrorResponse
//	@Router		/api/statistics/programs [get].
func (h *StatisticsHandler) HandlePrograms(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.Statistics.ProgramBreakdown(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, registrarsdk.ProgramStatistics{Categories: mapSlice(breakdown, toBreakdown)})
}
