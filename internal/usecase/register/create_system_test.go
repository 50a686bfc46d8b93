package register

import (
	"context"
	"testing"

	"aiahub/internal/domain/assessment"
	"aiahub/internal/ports"
)

func TestCreateSystemAssignsIDAndPublishes(t *testing.T) {
	svc, _, notifier := setupService(t)
	ctx := context.Background()

	systemID, err := svc.CreateSystem(ctx, CreateSystemInput{
		SystemName: "Benefits Eligibility Model",
		AgencyName: "Dept of Social Services",
		Actor:      "assessor@example.gov",
	})
	if err != nil {
		t.Fatalf("CreateSystem() error = %v", err)
	}
	if systemID == 0 {
		t.Fatalf("CreateSystem() returned zero id")
	}

	record, err := svc.GetAssessment(ctx, systemID)
	if err != nil {
		t.Fatalf("GetAssessment() error = %v", err)
	}
	if record.Status != assessment.StatusDraft {
		t.Fatalf("new record status = %q", record.Status)
	}
	if record.TotalScore != 0 || record.RiskCategory.Category != assessment.RiskLow {
		t.Fatalf("new record derived = %d/%q", record.TotalScore, record.RiskCategory.Category)
	}

	if len(notifier.events) != 1 || notifier.events[0].Kind != ports.EventSystemCreated {
		t.Fatalf("events = %#v", notifier.events)
	}
	if notifier.events[0].Actor != "assessor@example.gov" {
		t.Fatalf("event actor = %q", notifier.events[0].Actor)
	}
}

func TestCreateSystemRequiresNames(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.CreateSystem(ctx, CreateSystemInput{SystemName: "  ", AgencyName: "Agency"}); err == nil {
		t.Fatalf("CreateSystem() with blank name succeeded")
	}
	if _, err := svc.CreateSystem(ctx, CreateSystemInput{SystemName: "System", AgencyName: ""}); err == nil {
		t.Fatalf("CreateSystem() with blank agency succeeded")
	}
}

func TestCreateSystemSeedsProfileAssessments(t *testing.T) {
	svc, _, _ := setupServiceWithProfile(t, ports.GovernanceProfile{
		ExtraAssessments: []string{"Accessibility Review", "Security Assessment"},
	})
	ctx := context.Background()

	systemID, err := svc.CreateSystem(ctx, CreateSystemInput{
		SystemName: "Profiled System",
		AgencyName: "Agency",
	})
	if err != nil {
		t.Fatalf("CreateSystem() error = %v", err)
	}

	record, err := svc.GetAssessment(ctx, systemID)
	if err != nil {
		t.Fatalf("GetAssessment() error = %v", err)
	}
	if got := record.RelatedStatuses["Accessibility Review"]; got != assessment.RelatedNotStarted {
		t.Fatalf("Accessibility Review = %q, want Not Started", got)
	}
	// Built-in names never get duplicated or reset by the profile.
	if len(record.RelatedStatuses) != len(assessment.TrackedAssessments)+1 {
		t.Fatalf("related statuses = %#v", record.RelatedStatuses)
	}
}
