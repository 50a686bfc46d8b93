package assessment

import (
	"strings"
	"testing"
)

func TestReportSections(t *testing.T) {
	record := New("Benefits Estimator", "Services Agency")
	record.SystemID = 7
	if err := record.SetDimensionScore("Bias and Fairness", 4, "skewed training data"); err != nil {
		t.Fatalf("SetDimensionScore() error = %v", err)
	}
	if _, err := record.AddMitigationItem(MitigationItem{
		Dimension:       "Bias and Fairness",
		RiskDescription: "Potential bias (Score=4)",
		Action:          "Rebalance training set",
		Responsible:     "ML Lead",
	}); err != nil {
		t.Fatalf("AddMitigationItem() error = %v", err)
	}

	report := record.Report()

	for _, want := range []string{
		"# Algorithmic Impact Assessment (AIA)",
		"**System Name:** Benefits Estimator (ID: 7)",
		"## 4. System Description",
		"## 5/6. Impact Assessment Dimensions & Justification",
		"### Bias and Fairness",
		"* **Justification:** skewed training data",
		"## 7. Scoring Summary",
		"## 8. Risk Categorization",
		"**Overall System Risk Category:** Low",
		"**Total Score:** 4 / 65",
		"## 9. Mitigation Plan",
		"Rebalance training set",
		"## 10. Documentation and Approval",
		"## 11. Ongoing Monitoring and Review",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q", want)
		}
	}

	if strings.Index(report, "### Human Impact") > strings.Index(report, "### Robustness and Reliability") {
		t.Fatalf("dimension sections out of canonical order")
	}
}

func TestReportDraftWithoutID(t *testing.T) {
	record := New("Unsaved", "Agency")
	report := record.Report()
	if !strings.Contains(report, "(ID: N/A)") {
		t.Fatalf("draft report should mark missing id")
	}
	if !strings.Contains(report, "[No mitigation items entered.]") {
		t.Fatalf("empty mitigation plan placeholder missing")
	}
}
