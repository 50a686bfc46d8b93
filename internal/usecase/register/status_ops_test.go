package register

import (
	"context"
	"errors"
	"testing"

	"aiahub/internal/domain/assessment"
	"aiahub/internal/ports"
)

func TestChangeStatus(t *testing.T) {
	svc, _, notifier := setupService(t)
	ctx := context.Background()
	systemID := mustCreateSystem(t, svc, "Status System")

	record, err := svc.ChangeStatus(ctx, ChangeStatusInput{
		SystemID: systemID,
		Status:   assessment.StatusReview,
		Actor:    "reviewer@example.gov",
	})
	if err != nil {
		t.Fatalf("ChangeStatus() error = %v", err)
	}
	if record.Status != assessment.StatusReview {
		t.Fatalf("status = %q", record.Status)
	}
	if notifier.lastKind() != ports.EventStatusChanged {
		t.Fatalf("last event = %q", notifier.lastKind())
	}

	if _, err := svc.ChangeStatus(ctx, ChangeStatusInput{
		SystemID: systemID,
		Status:   "Half Done",
	}); !errors.Is(err, assessment.ErrInvalidStatus) {
		t.Fatalf("invalid status error = %v", err)
	}

	reloaded, err := svc.GetAssessment(ctx, systemID)
	if err != nil {
		t.Fatalf("GetAssessment() error = %v", err)
	}
	if reloaded.Status != assessment.StatusReview {
		t.Fatalf("status after rejected change = %q", reloaded.Status)
	}
}

func TestSetRelatedAssessment(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()
	systemID := mustCreateSystem(t, svc, "Related System")

	record, err := svc.SetRelatedAssessment(ctx, SetRelatedAssessmentInput{
		SystemID: systemID,
		Name:     assessment.AssessmentPIA,
		Status:   assessment.RelatedInProgress,
	})
	if err != nil {
		t.Fatalf("SetRelatedAssessment() error = %v", err)
	}
	if record.RelatedStatuses[assessment.AssessmentPIA] != assessment.RelatedInProgress {
		t.Fatalf("PIA = %q", record.RelatedStatuses[assessment.AssessmentPIA])
	}

	// Novel names are accepted and tracked from then on.
	record, err = svc.SetRelatedAssessment(ctx, SetRelatedAssessmentInput{
		SystemID: systemID,
		Name:     "Algorithmic Audit",
		Status:   assessment.RelatedCompleted,
	})
	if err != nil {
		t.Fatalf("SetRelatedAssessment(novel) error = %v", err)
	}
	if record.RelatedStatuses["Algorithmic Audit"] != assessment.RelatedCompleted {
		t.Fatalf("novel assessment = %q", record.RelatedStatuses["Algorithmic Audit"])
	}

	if _, err := svc.SetRelatedAssessment(ctx, SetRelatedAssessmentInput{
		SystemID: systemID,
		Name:     assessment.AssessmentSecurity,
		Status:   "Done-ish",
	}); !errors.Is(err, assessment.ErrInvalidRelatedStatus) {
		t.Fatalf("invalid related status error = %v", err)
	}
}
