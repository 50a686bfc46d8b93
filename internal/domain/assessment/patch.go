package assessment

// Patch structs carry optional fields: nil pointers leave the record
// untouched, everything supplied overwrites. Date-bearing fields
// validate before anything is applied so a failed patch changes nothing.

type MetadataPatch struct {
	AssessedBy           []string
	ReferencedFrameworks *string
	AssessmentDate       *string
}

type TechnicalSpecsPatch struct {
	ModelType     *string
	Algorithms    *string
	LanguageLibs  *string
	HardwareInfra *string
}

type DataDetailsPatch struct {
	Sources         *string
	VolumeVelocity  *string
	Types           *string
	RetentionPolicy *string
}

type DeploymentContextPatch struct {
	OperationalEnv      *string
	TargetUsersAffected *string
	DecisionAuthority   *string
}

type ProcurementPatch struct {
	Method      *string
	EthicalReqs *string
}

type RelatedRefsPatch struct {
	PIARef           *string
	OtherAssessments *string
}

type SystemDetailsPatch struct {
	SystemName        *string
	AgencyName        *string
	SystemPurpose     *string
	TechnicalSpecs    TechnicalSpecsPatch
	DataDetails       DataDetailsPatch
	DeploymentContext DeploymentContextPatch
	Procurement       ProcurementPatch
	RelatedRefs       RelatedRefsPatch
}

type SignoffPatch struct {
	Name *string
	Role *string
	Date *string
}

type ReviewerSignoffPatch struct {
	Name     *string
	Role     *string
	Comments *string
	Date     *string
}

type ApproverSignoffPatch struct {
	Name       *string
	Role       *string
	Decision   *string
	Conditions *string
	Date       *string
}

type ApprovalPatch struct {
	Assessor *SignoffPatch
	Reviewer *ReviewerSignoffPatch
	Approver *ApproverSignoffPatch
}

type LinksPatch struct {
	AIInventoryRef   *string
	TransparencyLink *string
}

type MonitoringPatch struct {
	PlanRef         *string
	ReviewFrequency *string
	NextReviewDate  *string
}

func (a *Assessment) SetMetadata(patch MetadataPatch) error {
	if patch.AssessmentDate != nil {
		if err := validateDate("assessment_date", *patch.AssessmentDate); err != nil {
			return err
		}
	}
	if patch.AssessedBy != nil {
		a.AssessedBy = patch.AssessedBy
	}
	assign(&a.ReferencedFrameworks, patch.ReferencedFrameworks)
	assign(&a.AssessmentDate, patch.AssessmentDate)
	a.touch()
	return nil
}

func (a *Assessment) SetSystemDetails(patch SystemDetailsPatch) {
	assign(&a.SystemName, patch.SystemName)
	assign(&a.AgencyName, patch.AgencyName)
	assign(&a.SystemPurpose, patch.SystemPurpose)

	assign(&a.TechnicalSpecs.ModelType, patch.TechnicalSpecs.ModelType)
	assign(&a.TechnicalSpecs.Algorithms, patch.TechnicalSpecs.Algorithms)
	assign(&a.TechnicalSpecs.LanguageLibs, patch.TechnicalSpecs.LanguageLibs)
	assign(&a.TechnicalSpecs.HardwareInfra, patch.TechnicalSpecs.HardwareInfra)

	assign(&a.DataDetails.Sources, patch.DataDetails.Sources)
	assign(&a.DataDetails.VolumeVelocity, patch.DataDetails.VolumeVelocity)
	assign(&a.DataDetails.Types, patch.DataDetails.Types)
	assign(&a.DataDetails.RetentionPolicy, patch.DataDetails.RetentionPolicy)

	assign(&a.DeploymentContext.OperationalEnv, patch.DeploymentContext.OperationalEnv)
	assign(&a.DeploymentContext.TargetUsersAffected, patch.DeploymentContext.TargetUsersAffected)
	assign(&a.DeploymentContext.DecisionAuthority, patch.DeploymentContext.DecisionAuthority)

	assign(&a.Procurement.Method, patch.Procurement.Method)
	assign(&a.Procurement.EthicalReqs, patch.Procurement.EthicalReqs)

	assign(&a.RelatedRefs.PIARef, patch.RelatedRefs.PIARef)
	assign(&a.RelatedRefs.OtherAssessments, patch.RelatedRefs.OtherAssessments)

	a.touch()
}

func (a *Assessment) SetApproval(patch ApprovalPatch) error {
	for _, date := range []*string{
		patchDate(patch.Assessor),
		reviewerDate(patch.Reviewer),
		approverDate(patch.Approver),
	} {
		if date != nil {
			if err := validateDate("date", *date); err != nil {
				return err
			}
		}
	}

	if patch.Assessor != nil {
		assign(&a.Approvals.Assessor.Name, patch.Assessor.Name)
		assign(&a.Approvals.Assessor.Role, patch.Assessor.Role)
		assign(&a.Approvals.Assessor.Date, patch.Assessor.Date)
	}
	if patch.Reviewer != nil {
		assign(&a.Approvals.Reviewer.Name, patch.Reviewer.Name)
		assign(&a.Approvals.Reviewer.Role, patch.Reviewer.Role)
		assign(&a.Approvals.Reviewer.Comments, patch.Reviewer.Comments)
		assign(&a.Approvals.Reviewer.Date, patch.Reviewer.Date)
	}
	if patch.Approver != nil {
		assign(&a.Approvals.Approver.Name, patch.Approver.Name)
		assign(&a.Approvals.Approver.Role, patch.Approver.Role)
		assign(&a.Approvals.Approver.Decision, patch.Approver.Decision)
		assign(&a.Approvals.Approver.Conditions, patch.Approver.Conditions)
		assign(&a.Approvals.Approver.Date, patch.Approver.Date)
	}
	a.touch()
	return nil
}

func (a *Assessment) SetLinks(patch LinksPatch) {
	assign(&a.AIInventoryRef, patch.AIInventoryRef)
	assign(&a.TransparencyLink, patch.TransparencyLink)
	a.touch()
}

func (a *Assessment) SetMonitoring(patch MonitoringPatch) error {
	if patch.NextReviewDate != nil {
		if err := validateDate("next_review_date", *patch.NextReviewDate); err != nil {
			return err
		}
	}
	assign(&a.MonitoringPlanRef, patch.PlanRef)
	assign(&a.ReviewFrequency, patch.ReviewFrequency)
	assign(&a.NextReviewDate, patch.NextReviewDate)
	a.touch()
	return nil
}

func patchDate(p *SignoffPatch) *string {
	if p == nil {
		return nil
	}
	return p.Date
}

func reviewerDate(p *ReviewerSignoffPatch) *string {
	if p == nil {
		return nil
	}
	return p.Date
}

func approverDate(p *ApproverSignoffPatch) *string {
	if p == nil {
		return nil
	}
	return p.Date
}
