package handler

import (
	"net/http"

	"github.com/ledgerline/backend/internal/service"
)

// AnalyticsHandler serves the admin dashboard figures.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Stats handles GET /api/admin/stats.
func (h *AnalyticsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analyticsService.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "stats_failed")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
