package register

import (
	"context"
	"errors"
	"testing"

	"aiahub/internal/domain/assessment"
	"aiahub/internal/ports"
)

func TestSaveAssessmentRoundTrip(t *testing.T) {
	svc, _, notifier := setupService(t)
	ctx := context.Background()
	systemID := mustCreateSystem(t, svc, "Snapshot System")

	if _, err := svc.ScoreDimension(ctx, ScoreDimensionInput{
		SystemID:      systemID,
		Dimension:     "Privacy Risk",
		Score:         4,
		Justification: "identity data",
		Actor:         "assessor@example.gov",
	}); err != nil {
		t.Fatalf("ScoreDimension() error = %v", err)
	}

	exported, err := svc.ExportSnapshot(ctx, systemID)
	if err != nil {
		t.Fatalf("ExportSnapshot() error = %v", err)
	}

	edited, err := assessment.DecodeSnapshot(exported)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if err := edited.SetDimensionScore("Bias and Fairness", 5, "skewed training data"); err != nil {
		t.Fatalf("SetDimensionScore() error = %v", err)
	}
	if err := edited.SetStatus(assessment.StatusReview); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	payload, err := edited.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	saved, err := svc.SaveAssessment(ctx, SaveAssessmentInput{
		SystemID: systemID,
		Snapshot: payload,
		Actor:    "assessor@example.gov",
	})
	if err != nil {
		t.Fatalf("SaveAssessment() error = %v", err)
	}
	if saved.TotalScore != 9 || saved.Status != assessment.StatusReview {
		t.Fatalf("saved record = %d/%q", saved.TotalScore, saved.Status)
	}
	if saved.CreationDate == "" {
		t.Fatalf("creation date lost on import")
	}

	record, err := svc.GetAssessment(ctx, systemID)
	if err != nil {
		t.Fatalf("GetAssessment() error = %v", err)
	}
	if record.Dimensions["Bias and Fairness"].Score != 5 || record.Status != assessment.StatusReview {
		t.Fatalf("stored record = %d/%q", record.Dimensions["Bias and Fairness"].Score, record.Status)
	}

	// The denormalized list columns follow the imported document.
	items, err := svc.ListSystems(ctx, ListSystemsInput{Status: assessment.StatusReview})
	if err != nil {
		t.Fatalf("ListSystems() error = %v", err)
	}
	if len(items) != 1 || items[0].SystemID != systemID || items[0].TotalScore != 9 {
		t.Fatalf("list after import = %+v", items)
	}

	if notifier.lastKind() != ports.EventAssessmentSaved {
		t.Fatalf("last event = %q", notifier.lastKind())
	}
}

func TestSaveAssessmentFillsDocumentDefaults(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()
	systemID := mustCreateSystem(t, svc, "Hand Import")

	payload := []byte(`{
		"system_name": "Hand Import",
		"agency_name": "Test Agency",
		"dimensions": {"Privacy Risk": {"score": 2, "justification": "identity data"}},
		"mitigation_plan": [{"risk_description": "Bias drift", "action": "Quarterly revalidation"}]
	}`)
	saved, err := svc.SaveAssessment(ctx, SaveAssessmentInput{
		SystemID: systemID,
		Snapshot: payload,
		Actor:    "assessor@example.gov",
	})
	if err != nil {
		t.Fatalf("SaveAssessment() error = %v", err)
	}

	if saved.Status != assessment.StatusDraft {
		t.Fatalf("Status default = %q", saved.Status)
	}
	if len(saved.Dimensions) != len(assessment.Dimensions) {
		t.Fatalf("Dimensions backfilled %d entries, want %d", len(saved.Dimensions), len(assessment.Dimensions))
	}
	if saved.TotalScore != 2 || saved.RiskCategory.Category != assessment.RiskLow {
		t.Fatalf("derived after import = %d/%q", saved.TotalScore, saved.RiskCategory.Category)
	}
	if len(saved.MitigationPlan) != 1 {
		t.Fatalf("MitigationPlan length = %d", len(saved.MitigationPlan))
	}
	if saved.MitigationPlan[0].ID == "" || saved.MitigationPlan[0].Status != assessment.MitigationPlanned {
		t.Fatalf("mitigation defaults = %+v", saved.MitigationPlan[0])
	}
	if saved.CreationDate == "" || saved.LastModified == "" {
		t.Fatalf("dates after import = %q/%q", saved.CreationDate, saved.LastModified)
	}
}

func TestSaveAssessmentRejectsBadDocuments(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()
	systemID := mustCreateSystem(t, svc, "Guarded Import")

	if _, err := svc.SaveAssessment(ctx, SaveAssessmentInput{
		SystemID: systemID,
	}); !errors.Is(err, assessment.ErrInvalidArgument) {
		t.Fatalf("empty payload error = %v", err)
	}

	if _, err := svc.SaveAssessment(ctx, SaveAssessmentInput{
		SystemID: systemID,
		Snapshot: []byte("{not json"),
	}); !errors.Is(err, assessment.ErrInvalidArgument) {
		t.Fatalf("malformed payload error = %v", err)
	}

	if _, err := svc.SaveAssessment(ctx, SaveAssessmentInput{
		SystemID: systemID,
		Snapshot: []byte(`{"system_id": 777}`),
	}); !errors.Is(err, assessment.ErrInvalidArgument) {
		t.Fatalf("mismatched id error = %v", err)
	}

	if _, err := svc.SaveAssessment(ctx, SaveAssessmentInput{
		SystemID: systemID,
		Snapshot: []byte(`{"aia_status": "Phantom"}`),
	}); !errors.Is(err, assessment.ErrInvalidStatus) {
		t.Fatalf("invalid status error = %v", err)
	}

	if _, err := svc.SaveAssessment(ctx, SaveAssessmentInput{
		SystemID: systemID,
		Snapshot: []byte(`{"dimensions": {"Privacy Risk": {"score": 9}}}`),
	}); !errors.Is(err, assessment.ErrScoreOutOfRange) {
		t.Fatalf("score out of range error = %v", err)
	}

	// Rejected documents leave the stored record untouched.
	record, err := svc.GetAssessment(ctx, systemID)
	if err != nil {
		t.Fatalf("GetAssessment() error = %v", err)
	}
	if record.TotalScore != 0 || record.Status != assessment.StatusDraft {
		t.Fatalf("record after failed imports = %d/%q", record.TotalScore, record.Status)
	}

	if _, err := svc.SaveAssessment(ctx, SaveAssessmentInput{
		SystemID: 99999,
		Snapshot: []byte(`{"aia_status": "Draft"}`),
	}); !errors.Is(err, ports.ErrSystemNotFound) {
		t.Fatalf("missing system error = %v", err)
	}
}
