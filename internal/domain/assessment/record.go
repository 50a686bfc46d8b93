package assessment

import (
	"fmt"
	"time"
)

type DimensionScore struct {
	Score         int    `json:"score"`
	Justification string `json:"justification"`
}

type TechnicalSpecs struct {
	ModelType     string `json:"model_type"`
	Algorithms    string `json:"algorithms"`
	LanguageLibs  string `json:"language_libs"`
	HardwareInfra string `json:"hardware_infra"`
}

type DataDetails struct {
	Sources         string `json:"sources"`
	VolumeVelocity  string `json:"volume_velocity"`
	Types           string `json:"types"`
	RetentionPolicy string `json:"retention_policy"`
}

type DeploymentContext struct {
	OperationalEnv      string `json:"operational_env"`
	TargetUsersAffected string `json:"target_users_affected"`
	DecisionAuthority   string `json:"decision_authority"`
}

type Procurement struct {
	Method      string `json:"method"`
	EthicalReqs string `json:"ethical_reqs"`
}

type RelatedAssessmentRefs struct {
	PIARef           string `json:"pia_ref"`
	OtherAssessments string `json:"other_assessments"`
}

type Signoff struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Date string `json:"date"`
}

type ReviewerSignoff struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Comments string `json:"comments"`
	Date     string `json:"date"`
}

type ApproverSignoff struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Decision   string `json:"decision"`
	Conditions string `json:"conditions"`
	Date       string `json:"date"`
}

type Approvals struct {
	Assessor Signoff         `json:"assessor"`
	Reviewer ReviewerSignoff `json:"reviewer"`
	Approver ApproverSignoff `json:"approver"`
}

// Assessment is the aggregate root. TotalScore and RiskCategory are
// derived from Dimensions and recomputed inside every mutator; nothing
// outside this package may set them independently.
type Assessment struct {
	SystemID             uint64                    `json:"system_id"`
	AIAVersion           string                    `json:"aia_version"`
	AssessmentDate       string                    `json:"assessment_date"`
	AssessedBy           []string                  `json:"assessed_by"`
	ReferencedFrameworks string                    `json:"referenced_frameworks"`
	SystemName           string                    `json:"system_name"`
	AgencyName           string                    `json:"agency_name"`
	SystemPurpose        string                    `json:"system_purpose"`
	TechnicalSpecs       TechnicalSpecs            `json:"technical_specs"`
	DataDetails          DataDetails               `json:"data_details"`
	DeploymentContext    DeploymentContext         `json:"deployment_context"`
	Procurement          Procurement               `json:"procurement"`
	RelatedRefs          RelatedAssessmentRefs     `json:"related_assessment_refs"`
	Dimensions           map[string]DimensionScore `json:"dimensions"`
	TotalScore           int                       `json:"total_score"`
	RiskCategory         RiskCategory              `json:"risk_category"`
	MitigationPlan       []MitigationItem          `json:"mitigation_plan"`
	Approvals            Approvals                 `json:"approvals"`
	AIInventoryRef       string                    `json:"ai_inventory_ref"`
	TransparencyLink     string                    `json:"transparency_statement_link"`
	MonitoringPlanRef    string                    `json:"monitoring_plan_ref"`
	ReviewFrequency      string                    `json:"review_frequency"`
	NextReviewDate       string                    `json:"next_review_date"`
	Status               string                    `json:"aia_status"`
	RelatedStatuses      map[string]string         `json:"related_assessment_statuses"`
	CreationDate         string                    `json:"creation_date"`
	LastModified         string                    `json:"last_modified_date"`
}

func New(systemName, agencyName string) *Assessment {
	now := nowUTC()
	record := &Assessment{
		AIAVersion:     Version,
		AssessmentDate: time.Now().UTC().Format(dateLayout),
		AssessedBy:     []string{},
		SystemName:     systemName,
		AgencyName:     agencyName,
		Dimensions:     make(map[string]DimensionScore, len(Dimensions)),
		MitigationPlan: []MitigationItem{},
		Status:         StatusDraft,
		RelatedStatuses: map[string]string{
			AssessmentPIA:         RelatedNotStarted,
			AssessmentSecurity:    RelatedNotStarted,
			AssessmentHumanRights: RelatedNotStarted,
		},
		CreationDate: now,
		LastModified: now,
	}
	for _, dim := range Dimensions {
		record.Dimensions[dim] = DimensionScore{}
	}
	record.Recalculate()
	return record
}

// Recalculate refreshes the derived fields. Safe to call any number of
// times; persisting and reporting paths call it before reading them.
func (a *Assessment) Recalculate() {
	a.TotalScore = ComputeTotal(a.Dimensions)
	a.RiskCategory = ClassifyRisk(a.TotalScore)
}

func (a *Assessment) SetDimensionScore(dimension string, score int, justification string) error {
	if !IsDimension(dimension) {
		return fmt.Errorf("%w: %q", ErrUnknownDimension, dimension)
	}
	if score < MinDimensionScore || score > MaxDimensionScore {
		return fmt.Errorf("%w: %s scored %d", ErrScoreOutOfRange, dimension, score)
	}
	a.Dimensions[dimension] = DimensionScore{Score: score, Justification: justification}
	a.touch()
	return nil
}

func (a *Assessment) SetStatus(status string) error {
	if err := ValidateStatus(status); err != nil {
		return err
	}
	a.Status = status
	a.touch()
	return nil
}

// SetRelatedAssessmentStatus accepts names outside TrackedAssessments
// and adds them to the record; callers that want to flag first-time
// names check TracksAssessment before mutating.
func (a *Assessment) SetRelatedAssessmentStatus(name, status string) error {
	if err := ValidateRelatedStatus(status); err != nil {
		return fmt.Errorf("set %q: %w", name, err)
	}
	if a.RelatedStatuses == nil {
		a.RelatedStatuses = make(map[string]string, len(TrackedAssessments))
	}
	a.RelatedStatuses[name] = status
	a.touch()
	return nil
}

func (a *Assessment) TracksAssessment(name string) bool {
	_, ok := a.RelatedStatuses[name]
	return ok
}

func (a *Assessment) touch() {
	a.Recalculate()
	a.LastModified = nowUTC()
}

const dateLayout = "2006-01-02"

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func validateDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return fmt.Errorf("%w: %s %q", ErrMalformedDate, field, value)
	}
	return nil
}

func assign(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}
