package register

import (
	"context"
	"testing"

	"aiahub/internal/domain/assessment"
	"aiahub/internal/ports"
)

func TestDashboardCountsCachesAndInvalidates(t *testing.T) {
	svc, cache, _ := setupService(t)
	ctx := context.Background()

	mustCreateSystem(t, svc, "Dash One")
	mustCreateSystem(t, svc, "Dash Two")

	dashboard, err := svc.DashboardCounts(ctx)
	if err != nil {
		t.Fatalf("DashboardCounts() error = %v", err)
	}
	if dashboard.TotalSystems != 2 {
		t.Fatalf("TotalSystems = %d", dashboard.TotalSystems)
	}
	if dashboard.ByStatus[assessment.StatusDraft] != 2 {
		t.Fatalf("ByStatus = %#v", dashboard.ByStatus)
	}
	if _, ok := cache.data[dashboardCountsKey]; !ok {
		t.Fatalf("dashboard counts not cached")
	}

	// Any mutation drops the cache so the next read recounts.
	mustCreateSystem(t, svc, "Dash Three")
	if _, ok := cache.data[dashboardCountsKey]; ok {
		t.Fatalf("cache survived a mutation")
	}

	dashboard, err = svc.DashboardCounts(ctx)
	if err != nil {
		t.Fatalf("DashboardCounts() after mutation error = %v", err)
	}
	if dashboard.TotalSystems != 3 {
		t.Fatalf("TotalSystems after mutation = %d", dashboard.TotalSystems)
	}
}

func TestDashboardCountsSurvivesCorruptCacheEntry(t *testing.T) {
	svc, cache, _ := setupService(t)
	ctx := context.Background()

	mustCreateSystem(t, svc, "Corrupt Cache System")
	cache.data[dashboardCountsKey] = "{not json"

	dashboard, err := svc.DashboardCounts(ctx)
	if err != nil {
		t.Fatalf("DashboardCounts() error = %v", err)
	}
	if dashboard.TotalSystems != 1 {
		t.Fatalf("TotalSystems = %d", dashboard.TotalSystems)
	}
}

func TestDeleteSystem(t *testing.T) {
	svc, _, notifier := setupService(t)
	ctx := context.Background()
	systemID := mustCreateSystem(t, svc, "Doomed System")

	removed, err := svc.DeleteSystem(ctx, DeleteSystemInput{SystemID: systemID, Actor: "admin@example.gov"})
	if err != nil {
		t.Fatalf("DeleteSystem() error = %v", err)
	}
	if !removed {
		t.Fatalf("DeleteSystem() = false, want true")
	}
	if notifier.lastKind() != ports.EventSystemDeleted {
		t.Fatalf("last event = %q", notifier.lastKind())
	}

	removed, err = svc.DeleteSystem(ctx, DeleteSystemInput{SystemID: systemID})
	if err != nil {
		t.Fatalf("DeleteSystem() second call error = %v", err)
	}
	if removed {
		t.Fatalf("DeleteSystem() = true for missing system")
	}

	if _, err := svc.GetAssessment(ctx, systemID); err == nil {
		t.Fatalf("GetAssessment() after delete succeeded")
	}
}

func TestListSystemsFilter(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	first := mustCreateSystem(t, svc, "List One")
	second := mustCreateSystem(t, svc, "List Two")

	if _, err := svc.ChangeStatus(ctx, ChangeStatusInput{
		SystemID: second,
		Status:   assessment.StatusInProgress,
	}); err != nil {
		t.Fatalf("ChangeStatus() error = %v", err)
	}

	items, err := svc.ListSystems(ctx, ListSystemsInput{Status: assessment.StatusInProgress})
	if err != nil {
		t.Fatalf("ListSystems() error = %v", err)
	}
	if len(items) != 1 || items[0].SystemID != second {
		t.Fatalf("filtered list = %#v", items)
	}

	all, err := svc.ListSystems(ctx, ListSystemsInput{})
	if err != nil {
		t.Fatalf("ListSystems() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("list = %#v", all)
	}
	if all[0].SystemID != second || all[1].SystemID != first {
		t.Fatalf("expected most recently modified first, got %d then %d", all[0].SystemID, all[1].SystemID)
	}
}
