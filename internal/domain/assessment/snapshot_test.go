package assessment

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	record := New("Fraud Scorer", "Services Agency")
	record.SystemID = 42
	if err := record.SetDimensionScore("Privacy Risk", 4, "identity data"); err != nil {
		t.Fatalf("SetDimensionScore() error = %v", err)
	}
	if _, err := record.AddMitigationItem(MitigationItem{
		Dimension:   "Privacy Risk",
		Action:      "Minimize retained attributes",
		Responsible: "Privacy Officer",
	}); err != nil {
		t.Fatalf("AddMitigationItem() error = %v", err)
	}
	if err := record.SetRelatedAssessmentStatus("Accessibility Review", RelatedInProgress); err != nil {
		t.Fatalf("SetRelatedAssessmentStatus() error = %v", err)
	}

	data, err := record.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	decoded, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if !reflect.DeepEqual(record, decoded) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", decoded, record)
	}
}

func TestDecodeSnapshotDefaults(t *testing.T) {
	data := []byte(`{"system_name":"Legacy Import","legacy_flag":true,"dimensions":{"Privacy Risk":{"score":2}}}`)
	record, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}

	if record.SystemName != "Legacy Import" {
		t.Fatalf("SystemName = %q", record.SystemName)
	}
	if record.AIAVersion != Version {
		t.Fatalf("AIAVersion default = %q", record.AIAVersion)
	}
	if record.Status != StatusDraft {
		t.Fatalf("Status default = %q", record.Status)
	}
	if len(record.Dimensions) != len(Dimensions) {
		t.Fatalf("Dimensions backfilled %d entries, want %d", len(record.Dimensions), len(Dimensions))
	}
	if record.Dimensions["Privacy Risk"].Score != 2 {
		t.Fatalf("kept score = %d", record.Dimensions["Privacy Risk"].Score)
	}
	for _, name := range TrackedAssessments {
		if record.RelatedStatuses[name] != RelatedNotStarted {
			t.Fatalf("RelatedStatuses[%q] = %q", name, record.RelatedStatuses[name])
		}
	}
	if record.TotalScore != 2 || record.RiskCategory.Category != RiskLow {
		t.Fatalf("derived after decode = %d/%q", record.TotalScore, record.RiskCategory.Category)
	}
	if record.MitigationPlan == nil || record.AssessedBy == nil {
		t.Fatalf("nil collections after decode")
	}
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	if _, err := DecodeSnapshot([]byte("{not json")); err == nil {
		t.Fatalf("DecodeSnapshot() expected error")
	}
}

func TestDecodeSnapshotBackfillsMitigationDefaults(t *testing.T) {
	data := []byte(`{"system_name":"Imported","mitigation_plan":[{"risk_description":"Bias drift","action":"Quarterly revalidation"}]}`)
	record, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if len(record.MitigationPlan) != 1 {
		t.Fatalf("MitigationPlan length = %d", len(record.MitigationPlan))
	}
	item := record.MitigationPlan[0]
	if item.ID == "" {
		t.Fatalf("mitigation item id not assigned")
	}
	if item.Status != MitigationPlanned {
		t.Fatalf("mitigation status default = %q", item.Status)
	}
}

func TestValidateAcceptsFreshRecord(t *testing.T) {
	if err := New("Sys", "Agency").Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidateFlagsBadFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(a *Assessment)
		want   error
	}{
		{"status", func(a *Assessment) { a.Status = "Phantom" }, ErrInvalidStatus},
		{"related status", func(a *Assessment) { a.RelatedStatuses[AssessmentPIA] = "Maybe" }, ErrInvalidRelatedStatus},
		{"unknown dimension", func(a *Assessment) { a.Dimensions["Quantum Vibes"] = DimensionScore{Score: 1} }, ErrUnknownDimension},
		{"score too high", func(a *Assessment) { a.Dimensions["Privacy Risk"] = DimensionScore{Score: 7} }, ErrScoreOutOfRange},
		{"score negative", func(a *Assessment) { a.Dimensions["Privacy Risk"] = DimensionScore{Score: -1} }, ErrScoreOutOfRange},
		{"mitigation status", func(a *Assessment) {
			a.MitigationPlan = append(a.MitigationPlan, MitigationItem{ID: "m1", Status: "Wished Away"})
		}, ErrInvalidMitigationStatus},
		{"mitigation date", func(a *Assessment) {
			a.MitigationPlan = append(a.MitigationPlan, MitigationItem{ID: "m2", Status: MitigationPlanned, TargetDate: "soon"})
		}, ErrMalformedDate},
		{"assessment date", func(a *Assessment) { a.AssessmentDate = "yesterday" }, ErrMalformedDate},
		{"next review date", func(a *Assessment) { a.NextReviewDate = "2026-13-40" }, ErrMalformedDate},
		{"approver date", func(a *Assessment) { a.Approvals.Approver.Date = "Q3" }, ErrMalformedDate},
	}
	for _, tc := range cases {
		record := New("Sys", "Agency")
		tc.mutate(record)
		if err := record.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("Validate() with bad %s = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestRelatedAssessmentNamesOrder(t *testing.T) {
	record := New("Sys", "Agency")
	if err := record.SetRelatedAssessmentStatus("Zebra Review", RelatedNA); err != nil {
		t.Fatalf("SetRelatedAssessmentStatus() error = %v", err)
	}
	if err := record.SetRelatedAssessmentStatus("Accessibility Review", RelatedNA); err != nil {
		t.Fatalf("SetRelatedAssessmentStatus() error = %v", err)
	}

	names := record.RelatedAssessmentNames()
	want := []string{AssessmentPIA, AssessmentSecurity, AssessmentHumanRights, "Accessibility Review", "Zebra Review"}
	if strings.Join(names, "|") != strings.Join(want, "|") {
		t.Fatalf("RelatedAssessmentNames() = %v", names)
	}
}
