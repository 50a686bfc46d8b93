package httpapi

import (
	"net/http"

	"aiahub/internal/domain/rbac"
	"aiahub/internal/usecase/register"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authorize(r, rbac.PermViewDashboard); err != nil {
		respondError(w, r, err)
		return
	}

	counts, err := s.register.DashboardCounts(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, counts)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authorize(r, rbac.PermViewRegister); err != nil {
		respondError(w, r, err)
		return
	}

	schema, err := register.AssessmentSchema()
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(schema)
}
