package register

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"aiahub/internal/domain/assessment"
)

const seedFixture = `
systems:
  - system_name: "Chatbot for Citizen Enquiries"
    agency_name: "Dept of Services"
    status: "In Progress"
    scores:
      "Privacy Risk": 3
      "Explainability and Interpretability": 2
    justifications:
      "Privacy Risk": "Handles personal contact details."
    related_assessments:
      "PIA": "In Progress"
    mitigations:
      - dimension: "Privacy Risk"
        risk_description: "Chat transcripts may retain personal data"
        action: "Set 30 day retention on transcripts"
        responsible: "Privacy Officer"
        target_date: "2026-10-01"
  - system_name: "Fraud Scoring Engine"
    agency_name: "Treasury"
`

func TestSeedFromFile(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(seedFixture), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	created, err := svc.SeedFromFile(ctx, path, "admin@example.gov")
	if err != nil {
		t.Fatalf("SeedFromFile() error = %v", err)
	}
	if created != 2 {
		t.Fatalf("SeedFromFile() = %d, want 2", created)
	}

	items, err := svc.ListSystems(ctx, ListSystemsInput{Agency: "Dept of Services"})
	if err != nil {
		t.Fatalf("ListSystems() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("list = %#v", items)
	}

	record, err := svc.GetAssessment(ctx, items[0].SystemID)
	if err != nil {
		t.Fatalf("GetAssessment() error = %v", err)
	}
	if record.Status != assessment.StatusInProgress {
		t.Fatalf("status = %q", record.Status)
	}
	if record.TotalScore != 5 {
		t.Fatalf("total score = %d", record.TotalScore)
	}
	if record.Dimensions["Privacy Risk"].Justification == "" {
		t.Fatalf("justification not applied")
	}
	if record.RelatedStatuses[assessment.AssessmentPIA] != assessment.RelatedInProgress {
		t.Fatalf("PIA = %q", record.RelatedStatuses[assessment.AssessmentPIA])
	}
	if len(record.MitigationPlan) != 1 || record.MitigationPlan[0].Status != assessment.MitigationPlanned {
		t.Fatalf("mitigation plan = %#v", record.MitigationPlan)
	}
}

func TestSeedFromFileRejectsBadEntries(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	bad := `
systems:
  - system_name: "Busted"
    agency_name: "Agency"
    scores:
      "Quantum Vibes": 3
`
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	if _, err := svc.SeedFromFile(ctx, path, ""); err == nil {
		t.Fatalf("SeedFromFile() with unknown dimension succeeded")
	}

	if _, err := svc.SeedFromFile(ctx, filepath.Join(t.TempDir(), "missing.yaml"), ""); err == nil {
		t.Fatalf("SeedFromFile() with missing file succeeded")
	}
}
