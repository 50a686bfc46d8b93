package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"aiahub/internal/domain/assessment"
	"aiahub/internal/domain/rbac"
	"aiahub/internal/usecase/register"
)

// Request bodies mirror the wire names of the assessment record itself, so
// a client can read a record, tweak a field, and send the fragment back.

type mitigationItemRequest struct {
	Dimension       string `json:"dimension"`
	RiskDescription string `json:"risk_description"`
	Action          string `json:"action"`
	Responsible     string `json:"responsible"`
	TargetDate      string `json:"target_date"`
	Status          string `json:"status"`
}

type mitigationItemResponse struct {
	ItemID string `json:"item_id"`
}

type mitigationPatchRequest struct {
	Dimension       *string `json:"dimension"`
	RiskDescription *string `json:"risk_description"`
	Action          *string `json:"action"`
	Responsible     *string `json:"responsible"`
	TargetDate      *string `json:"target_date"`
	Status          *string `json:"status"`
}

type metadataPatchRequest struct {
	AssessedBy           []string `json:"assessed_by"`
	ReferencedFrameworks *string  `json:"referenced_frameworks"`
	AssessmentDate       *string  `json:"assessment_date"`
}

type technicalSpecsPatchRequest struct {
	ModelType     *string `json:"model_type"`
	Algorithms    *string `json:"algorithms"`
	LanguageLibs  *string `json:"language_libs"`
	HardwareInfra *string `json:"hardware_infra"`
}

type dataDetailsPatchRequest struct {
	Sources         *string `json:"sources"`
	VolumeVelocity  *string `json:"volume_velocity"`
	Types           *string `json:"types"`
	RetentionPolicy *string `json:"retention_policy"`
}

type deploymentContextPatchRequest struct {
	OperationalEnv      *string `json:"operational_env"`
	TargetUsersAffected *string `json:"target_users_affected"`
	DecisionAuthority   *string `json:"decision_authority"`
}

type procurementPatchRequest struct {
	Method      *string `json:"method"`
	EthicalReqs *string `json:"ethical_reqs"`
}

type relatedRefsPatchRequest struct {
	PIARef           *string `json:"pia_ref"`
	OtherAssessments *string `json:"other_assessments"`
}

type detailsPatchRequest struct {
	SystemName        *string                       `json:"system_name"`
	AgencyName        *string                       `json:"agency_name"`
	SystemPurpose     *string                       `json:"system_purpose"`
	TechnicalSpecs    technicalSpecsPatchRequest    `json:"technical_specs"`
	DataDetails       dataDetailsPatchRequest       `json:"data_details"`
	DeploymentContext deploymentContextPatchRequest `json:"deployment_context"`
	Procurement       procurementPatchRequest       `json:"procurement"`
	RelatedRefs       relatedRefsPatchRequest       `json:"related_assessment_refs"`
}

type signoffPatchRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
	Date *string `json:"date"`
}

type reviewerSignoffPatchRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Comments *string `json:"comments"`
	Date     *string `json:"date"`
}

type approverSignoffPatchRequest struct {
	Name       *string `json:"name"`
	Role       *string `json:"role"`
	Decision   *string `json:"decision"`
	Conditions *string `json:"conditions"`
	Date       *string `json:"date"`
}

type approvalsPatchRequest struct {
	Assessor *signoffPatchRequest         `json:"assessor"`
	Reviewer *reviewerSignoffPatchRequest `json:"reviewer"`
	Approver *approverSignoffPatchRequest `json:"approver"`
}

type linksPatchRequest struct {
	AIInventoryRef   *string `json:"ai_inventory_ref"`
	TransparencyLink *string `json:"transparency_statement_link"`
}

type monitoringPatchRequest struct {
	PlanRef         *string `json:"monitoring_plan_ref"`
	ReviewFrequency *string `json:"review_frequency"`
	NextReviewDate  *string `json:"next_review_date"`
}

func (req detailsPatchRequest) toPatch() assessment.SystemDetailsPatch {
	return assessment.SystemDetailsPatch{
		SystemName:    req.SystemName,
		AgencyName:    req.AgencyName,
		SystemPurpose: req.SystemPurpose,
		TechnicalSpecs: assessment.TechnicalSpecsPatch{
			ModelType:     req.TechnicalSpecs.ModelType,
			Algorithms:    req.TechnicalSpecs.Algorithms,
			LanguageLibs:  req.TechnicalSpecs.LanguageLibs,
			HardwareInfra: req.TechnicalSpecs.HardwareInfra,
		},
		DataDetails: assessment.DataDetailsPatch{
			Sources:         req.DataDetails.Sources,
			VolumeVelocity:  req.DataDetails.VolumeVelocity,
			Types:           req.DataDetails.Types,
			RetentionPolicy: req.DataDetails.RetentionPolicy,
		},
		DeploymentContext: assessment.DeploymentContextPatch{
			OperationalEnv:      req.DeploymentContext.OperationalEnv,
			TargetUsersAffected: req.DeploymentContext.TargetUsersAffected,
			DecisionAuthority:   req.DeploymentContext.DecisionAuthority,
		},
		Procurement: assessment.ProcurementPatch{
			Method:      req.Procurement.Method,
			EthicalReqs: req.Procurement.EthicalReqs,
		},
		RelatedRefs: assessment.RelatedRefsPatch{
			PIARef:           req.RelatedRefs.PIARef,
			OtherAssessments: req.RelatedRefs.OtherAssessments,
		},
	}
}

func (req approvalsPatchRequest) toPatch() assessment.ApprovalPatch {
	patch := assessment.ApprovalPatch{}
	if req.Assessor != nil {
		patch.Assessor = &assessment.SignoffPatch{
			Name: req.Assessor.Name,
			Role: req.Assessor.Role,
			Date: req.Assessor.Date,
		}
	}
	if req.Reviewer != nil {
		patch.Reviewer = &assessment.ReviewerSignoffPatch{
			Name:     req.Reviewer.Name,
			Role:     req.Reviewer.Role,
			Comments: req.Reviewer.Comments,
			Date:     req.Reviewer.Date,
		}
	}
	if req.Approver != nil {
		patch.Approver = &assessment.ApproverSignoffPatch{
			Name:       req.Approver.Name,
			Role:       req.Approver.Role,
			Decision:   req.Approver.Decision,
			Conditions: req.Approver.Conditions,
			Date:       req.Approver.Date,
		}
	}
	return patch
}

func (s *Server) handleAddMitigation(w http.ResponseWriter, r *http.Request) {
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

	var req mitigationItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	itemID, err := s.register.AddMitigation(r.Context(), register.AddMitigationInput{
		SystemID: systemID,
		Item: assessment.MitigationItem{
			Dimension:       req.Dimension,
			RiskDescription: req.RiskDescription,
			Action:          req.Action,
			Responsible:     req.Responsible,
			TargetDate:      req.TargetDate,
			Status:          req.Status,
		},
		Actor: actor.Email,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, mitigationItemResponse{ItemID: itemID})
}

func (s *Server) handleUpdateMitigation(w http.ResponseWriter, r *http.Request) {
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

	var req mitigationPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	record, err := s.register.UpdateMitigation(r.Context(), register.UpdateMitigationInput{
		SystemID: systemID,
		ItemID:   chi.URLParam(r, "itemID"),
		Patch: assessment.MitigationPatch{
			Dimension:       req.Dimension,
			RiskDescription: req.RiskDescription,
			Action:          req.Action,
			Responsible:     req.Responsible,
			TargetDate:      req.TargetDate,
			Status:          req.Status,
		},
		Actor: actor.Email,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (s *Server) handleRemoveMitigation(w http.ResponseWriter, r *http.Request) {
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

	record, err := s.register.RemoveMitigation(r.Context(), register.RemoveMitigationInput{
		SystemID: systemID,
		ItemID:   chi.URLParam(r, "itemID"),
		Actor:    actor.Email,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (s *Server) handleUpdateMetadata(w http.ResponseWriter, r *http.Request) {
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

	var req metadataPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	record, err := s.register.UpdateMetadata(r.Context(), register.UpdateMetadataInput{
		SystemID: systemID,
		Patch: assessment.MetadataPatch{
			AssessedBy:           req.AssessedBy,
			ReferencedFrameworks: req.ReferencedFrameworks,
			AssessmentDate:       req.AssessmentDate,
		},
		Actor: actor.Email,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (s *Server) handleUpdateDetails(w http.ResponseWriter, r *http.Request) {
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

	var req detailsPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	record, err := s.register.UpdateSystemDetails(r.Context(), register.UpdateSystemDetailsInput{
		SystemID: systemID,
		Patch:    req.toPatch(),
		Actor:    actor.Email,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (s *Server) handleUpdateApprovals(w http.ResponseWriter, r *http.Request) {
	actor, err := s.authorize(r, rbac.PermApproveAIA)
	if err != nil {
		respondError(w, r, err)
		return
	}
	systemID, err := systemIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req approvalsPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	record, err := s.register.UpdateApprovals(r.Context(), register.UpdateApprovalsInput{
		SystemID: systemID,
		Patch:    req.toPatch(),
		Actor:    actor.Email,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (s *Server) handleUpdateMonitoring(w http.ResponseWriter, r *http.Request) {
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

	var req monitoringPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	record, err := s.register.UpdateMonitoring(r.Context(), register.UpdateMonitoringInput{
		SystemID: systemID,
		Patch: assessment.MonitoringPatch{
			PlanRef:         req.PlanRef,
			ReviewFrequency: req.ReviewFrequency,
			NextReviewDate:  req.NextReviewDate,
		},
		Actor: actor.Email,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (s *Server) handleUpdateLinks(w http.ResponseWriter, r *http.Request) {
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

	var req linksPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	record, err := s.register.UpdateLinks(r.Context(), register.UpdateLinksInput{
		SystemID: systemID,
		Patch: assessment.LinksPatch{
			AIInventoryRef:   req.AIInventoryRef,
			TransparencyLink: req.TransparencyLink,
		},
		Actor: actor.Email,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authorize(r, rbac.PermExportAIA); err != nil {
		respondError(w, r, err)
		return
	}
	systemID, err := systemIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	report, err := s.register.ExportReport(r.Context(), systemID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(report))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authorize(r, rbac.PermExportAIA); err != nil {
		respondError(w, r, err)
		return
	}
	systemID, err := systemIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	snapshot, err := s.register.ExportSnapshot(r.Context(), systemID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(snapshot)
}
