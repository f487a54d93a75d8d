package adapthttp

import (
	"errors"
	"log"
	"net/http"

	"bodycomp/internal/app"
	"bodycomp/internal/domain"
)

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = "kg"
	}
	limit := intQuery(r, "limit", 30)

	ms, err := s.stats.Recent(r.Context(), claims.UserID, limit, unit)
	if err != nil {
		if errors.Is(err, app.ErrValidation) {
			writeMessage(w, http.StatusBadRequest, `unit must be "kg" or "lb"`)
			return
		}
		log.Printf("statistics: %v", err)
		writeMessage(w, http.StatusInternalServerError, "server error")
		return
	}
	if ms == nil {
		ms = []domain.Measurement{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"measurements": ms})
}

func (s *Server) handleStatisticsSummary(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = "kg"
	}

	sum, err := s.stats.WeightSummary(r.Context(), claims.UserID, unit)
	if err != nil {
		if errors.Is(err, app.ErrValidation) {
			writeMessage(w, http.StatusBadRequest, `unit must be "kg" or "lb"`)
			return
		}
		log.Printf("statistics summary: %v", err)
		writeMessage(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
