package assessment

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Snapshot is the persisted form of a record. Decoding is a typed
// unmarshal plus normalization, never a generic key merge; unknown keys
// in stored data are dropped and absent fields take their defaults.

func (a *Assessment) Snapshot() ([]byte, error) {
	a.Recalculate()
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode assessment snapshot: %w", err)
	}
	return data, nil
}

func DecodeSnapshot(data []byte) (*Assessment, error) {
	var record Assessment
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode assessment snapshot: %w", err)
	}
	record.normalize()
	return &record, nil
}

func (a *Assessment) normalize() {
	if a.AIAVersion == "" {
		a.AIAVersion = Version
	}
	if a.AssessedBy == nil {
		a.AssessedBy = []string{}
	}
	if a.Dimensions == nil {
		a.Dimensions = make(map[string]DimensionScore, len(Dimensions))
	}
	for _, dim := range Dimensions {
		if _, ok := a.Dimensions[dim]; !ok {
			a.Dimensions[dim] = DimensionScore{}
		}
	}
	if a.MitigationPlan == nil {
		a.MitigationPlan = []MitigationItem{}
	}
	for i := range a.MitigationPlan {
		if a.MitigationPlan[i].ID == "" {
			a.MitigationPlan[i].ID = uuid.NewString()
		}
		if a.MitigationPlan[i].Status == "" {
			a.MitigationPlan[i].Status = MitigationPlanned
		}
	}
	if a.Status == "" {
		a.Status = StatusDraft
	}
	if a.RelatedStatuses == nil {
		a.RelatedStatuses = make(map[string]string, len(TrackedAssessments))
	}
	for _, name := range TrackedAssessments {
		if _, ok := a.RelatedStatuses[name]; !ok {
			a.RelatedStatuses[name] = RelatedNotStarted
		}
	}
	a.Recalculate()
}

// Validate checks every enumerated and date-bearing field against the
// same rules the mutators enforce. Stored rows decode permissively;
// documents arriving from outside run through this before they may
// overwrite a record.
func (a *Assessment) Validate() error {
	if err := ValidateStatus(a.Status); err != nil {
		return err
	}
	for _, name := range a.RelatedAssessmentNames() {
		if err := ValidateRelatedStatus(a.RelatedStatuses[name]); err != nil {
			return fmt.Errorf("related assessment %q: %w", name, err)
		}
	}

	dims := make([]string, 0, len(a.Dimensions))
	for dim := range a.Dimensions {
		dims = append(dims, dim)
	}
	sort.Strings(dims)
	for _, dim := range dims {
		if !IsDimension(dim) {
			return fmt.Errorf("%w: %q", ErrUnknownDimension, dim)
		}
		if score := a.Dimensions[dim].Score; score < MinDimensionScore || score > MaxDimensionScore {
			return fmt.Errorf("%w: %s scored %d", ErrScoreOutOfRange, dim, score)
		}
	}

	for _, item := range a.MitigationPlan {
		if err := ValidateMitigationStatus(item.Status); err != nil {
			return fmt.Errorf("mitigation item %q: %w", item.ID, err)
		}
		if err := validateDate("target_date", item.TargetDate); err != nil {
			return fmt.Errorf("mitigation item %q: %w", item.ID, err)
		}
	}

	for _, date := range []struct {
		field string
		value string
	}{
		{"assessment_date", a.AssessmentDate},
		{"next_review_date", a.NextReviewDate},
		{"assessor date", a.Approvals.Assessor.Date},
		{"reviewer date", a.Approvals.Reviewer.Date},
		{"approver date", a.Approvals.Approver.Date},
	} {
		if err := validateDate(date.field, date.value); err != nil {
			return err
		}
	}
	return nil
}

// RelatedAssessmentNames lists the record's related assessments in a
// stable order: the tracked trio first, then any dynamic additions
// sorted by name.
func (a *Assessment) RelatedAssessmentNames() []string {
	names := make([]string, 0, len(a.RelatedStatuses))
	for _, tracked := range TrackedAssessments {
		if _, ok := a.RelatedStatuses[tracked]; ok {
			names = append(names, tracked)
		}
	}
	extras := make([]string, 0, len(a.RelatedStatuses))
	for name := range a.RelatedStatuses {
		if !IsTrackedAssessment(name) {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	return append(names, extras...)
}
