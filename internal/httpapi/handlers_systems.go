package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"aiahub/internal/domain/assessment"
	"aiahub/internal/domain/rbac"
	"aiahub/internal/ports"
	"aiahub/internal/usecase/register"
)

type createSystemRequest struct {
	SystemName string `json:"system_name"`
	AgencyName string `json:"agency_name"`
}

type createSystemResponse struct {
	SystemID uint64 `json:"system_id"`
}

type systemListEntry struct {
	SystemID     uint64 `json:"system_id"`
	SystemName   string `json:"system_name"`
	AgencyName   string `json:"agency_name"`
	Status       string `json:"status"`
	RiskCategory string `json:"risk_category"`
	TotalScore   int    `json:"total_score"`
	LastModified string `json:"last_modified"`
}

type systemListResponse struct {
	Systems []systemListEntry `json:"systems"`
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

type relatedAssessmentRequest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type scoreDimensionRequest struct {
	Dimension     string `json:"dimension"`
	Score         int    `json:"score"`
	Justification string `json:"justification"`
}

func systemIDParam(r *http.Request) (uint64, error) {
	raw := chi.URLParam(r, "systemID")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: system id %q", assessment.ErrInvalidArgument, raw)
	}
	return id, nil
}

func (s *Server) handleCreateSystem(w http.ResponseWriter, r *http.Request) {
	actor, err := s.authorize(r, rbac.PermAddSystem)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req createSystemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	id, err := s.register.CreateSystem(r.Context(), register.CreateSystemInput{
		SystemName: req.SystemName,
		AgencyName: req.AgencyName,
		Actor:      actor.Email,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, createSystemResponse{SystemID: id})
}

func (s *Server) handleListSystems(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authorize(r, rbac.PermViewRegister); err != nil {
		respondError(w, r, err)
		return
	}

	query := r.URL.Query()
	items, err := s.register.ListSystems(r.Context(), register.ListSystemsInput{
		Status:       query.Get("status"),
		RiskCategory: query.Get("risk"),
		Agency:       query.Get("agency"),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	entries := make([]systemListEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, systemListEntry{
			SystemID:     item.SystemID,
			SystemName:   item.SystemName,
			AgencyName:   item.AgencyName,
			Status:       item.Status,
			RiskCategory: item.RiskCategory,
			TotalScore:   item.TotalScore,
			LastModified: item.LastModified,
		})
	}
	respondJSON(w, http.StatusOK, systemListResponse{Systems: entries})
}

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authorize(r, rbac.PermViewAIA); err != nil {
		respondError(w, r, err)
		return
	}
	systemID, err := systemIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	record, err := s.register.GetAssessment(r.Context(), systemID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// handleSaveAssessment accepts a full snapshot document as the request
// body and overwrites the stored record with it.
func (s *Server) handleSaveAssessment(w http.ResponseWriter, r *http.Request) {
	actor, err := s.authorize(r, rbac.PermEditAIA)
	if err != nil {
		respondError(w, r, err)
		return
	}
	systemID, err := systemIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	snapshot, err := io.ReadAll(r.Body)
	if err != nil {
		respondBadRequest(w, "read request body: "+err.Error())
		return
	}

	record, err := s.register.SaveAssessment(r.Context(), register.SaveAssessmentInput{
		SystemID: systemID,
		Snapshot: snapshot,
		Actor:    actor.Email,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (s *Server) handleDeleteSystem(w http.ResponseWriter, r *http.Request) {
	actor, err := s.authorize(r, rbac.PermDeleteSystem)
	if err != nil {
		respondError(w, r, err)
		return
	}
	systemID, err := systemIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	removed, err := s.register.DeleteSystem(r.Context(), register.DeleteSystemInput{
		SystemID: systemID,
		Actor:    actor.Email,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !removed {
		respondError(w, r, fmt.Errorf("%w: id %d", ports.ErrSystemNotFound, systemID))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChangeStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := s.authorize(r, rbac.PermChangeStatus)
	if err != nil {
		respondError(w, r, err)
		return
	}
	systemID, err := systemIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req changeStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	record, err := s.register.ChangeStatus(r.Context(), register.ChangeStatusInput{
		SystemID: systemID,
		Status:   req.Status,
		Actor:    actor.Email,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (s *Server) handleSetRelatedAssessment(w http.ResponseWriter, r *http.Request) {
	actor, err := s.authorize(r, rbac.PermEditAIA)
	if err != nil {
		respondError(w, r, err)
		return
	}
	systemID, err := systemIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req relatedAssessmentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	record, err := s.register.SetRelatedAssessment(r.Context(), register.SetRelatedAssessmentInput{
		SystemID: systemID,
		Name:     req.Name,
		Status:   req.Status,
		Actor:    actor.Email,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (s *Server) handleScoreDimension(w http.ResponseWriter, r *http.Request) {
	actor, err := s.authorize(r, rbac.PermEditAIA)
	if err != nil {
		respondError(w, r, err)
		return
	}
	systemID, err := systemIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req scoreDimensionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	record, err := s.register.ScoreDimension(r.Context(), register.ScoreDimensionInput{
		SystemID:      systemID,
		Dimension:     req.Dimension,
		Score:         req.Score,
		Justification: req.Justification,
		Actor:         actor.Email,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}
