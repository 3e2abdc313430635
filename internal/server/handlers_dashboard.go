package server

import (
	"net/http"
	"time"
)

// handleDashboard handles GET /api/dashboard?month=YYYY-MM.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	var month time.Time
	if v := r.URL.Query().Get("month"); v != "" {
		t, err := time.Parse("2006-01", v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid 'month' value, expected YYYY-MM")
			return
		}
		month = t
	}

	summary, err := s.app.DashboardService.Summary(r.Context(), month)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}
