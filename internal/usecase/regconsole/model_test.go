package regconsole

import (
	"context"
	"strings"
	"testing"

	"aiahub/internal/domain/assessment"
	"aiahub/internal/usecase/register"
)

func TestDetailLoadedIgnoresStaleSelection(t *testing.T) {
	model := &registerModel{
		ctx: context.Background(),
		systems: []register.SystemListItem{
			{SystemID: 1, SystemName: "Permit Screening"},
			{SystemID: 2, SystemName: "Benefit Triage"},
		},
		selectedIndex: 1,
	}

	record := assessment.New("Permit Screening", "Planning")
	record.SystemID = 1
	nextModel, _ := model.Update(detailLoadedMsg{systemID: 1, record: record})

	updated, ok := nextModel.(*registerModel)
	if !ok {
		t.Fatalf("type assertion failed: %T", nextModel)
	}
	if updated.hasDetail {
		t.Fatal("stale detail should be ignored")
	}
}

func TestDetailLoadedAppliesCurrentSelection(t *testing.T) {
	model := &registerModel{
		ctx: context.Background(),
		systems: []register.SystemListItem{
			{SystemID: 1, SystemName: "Permit Screening"},
			{SystemID: 2, SystemName: "Benefit Triage"},
		},
		selectedIndex: 1,
	}

	record := assessment.New("Benefit Triage", "Social Services")
	record.SystemID = 2
	nextModel, _ := model.Update(detailLoadedMsg{systemID: 2, record: record})

	updated, ok := nextModel.(*registerModel)
	if !ok {
		t.Fatalf("type assertion failed: %T", nextModel)
	}
	if !updated.hasDetail || updated.detail.SystemID != 2 {
		t.Fatalf("detail = %+v", updated.detail)
	}
}

func TestSystemsLoadedClampsSelection(t *testing.T) {
	model := &registerModel{
		ctx:           context.Background(),
		selectedIndex: 5,
	}

	nextModel, _ := model.Update(systemsLoadedMsg{items: []register.SystemListItem{
		{SystemID: 1},
		{SystemID: 2},
	}})

	updated := nextModel.(*registerModel)
	if updated.selectedIndex != 1 {
		t.Fatalf("selectedIndex = %d, want 1", updated.selectedIndex)
	}

	nextModel, _ = updated.Update(systemsLoadedMsg{items: nil})
	updated = nextModel.(*registerModel)
	if updated.hasDetail || updated.selectedIndex != 0 {
		t.Fatalf("empty list should reset selection, model = %+v", updated)
	}
}

func TestViewRendersDashboardAndSystems(t *testing.T) {
	record := assessment.New("Benefit Triage", "Social Services")
	record.SystemID = 2
	for _, dimension := range assessment.Dimensions {
		if err := record.SetDimensionScore(dimension, 3, "baseline"); err != nil {
			t.Fatalf("SetDimensionScore(%q) error = %v", dimension, err)
		}
	}

	model := &registerModel{
		ctx:          context.Background(),
		hasDashboard: true,
		dashboard: register.Dashboard{
			TotalSystems: 2,
			ByStatus:     map[string]int64{assessment.StatusDraft: 2},
			ByRisk:       map[string]int64{assessment.RiskHigh: 1, assessment.RiskLow: 1},
		},
		systems: []register.SystemListItem{
			{SystemID: 1, SystemName: "Permit Screening", AgencyName: "Planning", Status: assessment.StatusDraft, RiskCategory: assessment.RiskLow},
			{SystemID: 2, SystemName: "Benefit Triage", AgencyName: "Social Services", Status: assessment.StatusDraft, RiskCategory: assessment.RiskHigh, TotalScore: 39},
		},
		selectedIndex: 1,
		hasDetail:     true,
		detail:        record,
	}

	view := model.View()
	for _, fragment := range []string{
		"AI Governance Register",
		"Systems: 2",
		"Draft=2",
		"High=1",
		"Benefit Triage",
		"Scored:   13 of 13 dimensions",
		"total 39/65",
	} {
		if !strings.Contains(view, fragment) {
			t.Fatalf("view missing %q:\n%s", fragment, view)
		}
	}
}

func TestFormatRelatedStatusesSortsNames(t *testing.T) {
	got := formatRelatedStatuses(map[string]string{
		"Security Assessment": assessment.RelatedNotStarted,
		"PIA":                 assessment.RelatedCompleted,
	})
	if got != "PIA=Completed Security Assessment=Not Started" {
		t.Fatalf("formatRelatedStatuses() = %q", got)
	}
	if formatRelatedStatuses(nil) != "-" {
		t.Fatal("nil map should render as -")
	}
}
