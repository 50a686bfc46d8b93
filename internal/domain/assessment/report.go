package assessment

import (
	"fmt"
	"strings"
)

const notSet = "[Not Set]"

// Report renders the full assessment as markdown, mirroring the AIA
// v1.1 document structure section by section.
func (a *Assessment) Report() string {
	return a.BrandedReport("", "")
}

// BrandedReport is Report with an optional organization line under the title
// and a footer appended after the last section. Empty values leave the
// document untouched.
func (a *Assessment) BrandedReport(organization, footer string) string {
	a.Recalculate()

	var b strings.Builder

	fmt.Fprintf(&b, "# Algorithmic Impact Assessment (AIA)\n\n")
	if organization != "" {
		fmt.Fprintf(&b, "**Organization:** %s\n", organization)
	}
	fmt.Fprintf(&b, "**System Name:** %s (ID: %s)\n", a.SystemName, a.systemIDLabel())
	fmt.Fprintf(&b, "**Agency:** %s\n", a.AgencyName)
	fmt.Fprintf(&b, "**AIA Version:** %s\n", a.AIAVersion)
	fmt.Fprintf(&b, "**AIA Status:** %s\n", a.Status)
	fmt.Fprintf(&b, "**Last Modified:** %s\n", a.LastModified)
	fmt.Fprintf(&b, "**Assessment Date:** %s\n", a.AssessmentDate)
	fmt.Fprintf(&b, "**Assessed By:** %s\n", orNotSet(strings.Join(a.AssessedBy, ", ")))
	fmt.Fprintf(&b, "**Referenced Frameworks:** %s\n", orNotSet(a.ReferencedFrameworks))

	b.WriteString("\n## Related Assessment Statuses\n")
	for _, name := range a.RelatedAssessmentNames() {
		fmt.Fprintf(&b, "- **%s:** %s\n", name, a.RelatedStatuses[name])
	}

	b.WriteString("\n## 1. Introduction\n")
	b.WriteString("This assessment follows the Algorithmic Impact Assessment framework v1.1.\n")
	b.WriteString("\n## 2. AIA Scope\n")
	b.WriteString("Covers the system described below across the thirteen impact dimensions.\n")
	b.WriteString("\n## 3. Assessment Process Overview\n")
	b.WriteString("Each dimension is scored 0-5 with justification; the total drives the risk category.\n")

	b.WriteString("\n## 4. System Description\n")
	fmt.Fprintf(&b, "* **4.1 System Name:** %s\n", a.SystemName)
	fmt.Fprintf(&b, "* **4.2 System Purpose and Functionality:** %s\n", orNotSet(a.SystemPurpose))
	b.WriteString("* **4.3 Technical Specifications:**\n")
	fmt.Fprintf(&b, "    * AI Model Type: %s\n", orNotSet(a.TechnicalSpecs.ModelType))
	fmt.Fprintf(&b, "    * Algorithms Used: %s\n", orNotSet(a.TechnicalSpecs.Algorithms))
	fmt.Fprintf(&b, "    * Programming Language and Key Libraries/Frameworks: %s\n", orNotSet(a.TechnicalSpecs.LanguageLibs))
	fmt.Fprintf(&b, "    * Hardware and Infrastructure: %s\n", orNotSet(a.TechnicalSpecs.HardwareInfra))
	b.WriteString("* **4.4 Data Sources and Characteristics:**\n")
	fmt.Fprintf(&b, "    * Data Sources: %s\n", orNotSet(a.DataDetails.Sources))
	fmt.Fprintf(&b, "    * Data Volume and Velocity: %s\n", orNotSet(a.DataDetails.VolumeVelocity))
	fmt.Fprintf(&b, "    * Data Types: %s\n", orNotSet(a.DataDetails.Types))
	fmt.Fprintf(&b, "    * Data Retention Policy: %s\n", orNotSet(a.DataDetails.RetentionPolicy))
	b.WriteString("* **4.5 Deployment Context:**\n")
	fmt.Fprintf(&b, "    * Operational Environment: %s\n", orNotSet(a.DeploymentContext.OperationalEnv))
	fmt.Fprintf(&b, "    * Target Users or Affected Individuals/Groups: %s\n", orNotSet(a.DeploymentContext.TargetUsersAffected))
	fmt.Fprintf(&b, "    * Decision-Making Authority: %s\n", orNotSet(a.DeploymentContext.DecisionAuthority))
	b.WriteString("* **4.6 Procurement Method and Context:**\n")
	fmt.Fprintf(&b, "    * Procurement Method: %s\n", orNotSet(a.Procurement.Method))
	fmt.Fprintf(&b, "    * AI Ethical/Risk Requirements in Procurement: %s\n", orNotSet(a.Procurement.EthicalReqs))
	b.WriteString("* **4.7 Related Assessments:**\n")
	fmt.Fprintf(&b, "    * Privacy Impact Assessment (PIA) Status: %s (Ref/Link: %s)\n",
		a.relatedStatusLabel(AssessmentPIA), orNotSet(a.RelatedRefs.PIARef))
	fmt.Fprintf(&b, "    * Other Relevant Assessments: %s\n", orNotSet(a.RelatedRefs.OtherAssessments))
	fmt.Fprintf(&b, "    * (Security Assessment Status: %s, Human Rights Assessment Status: %s)\n",
		a.relatedStatusLabel(AssessmentSecurity), a.relatedStatusLabel(AssessmentHumanRights))

	b.WriteString("\n## 5/6. Impact Assessment Dimensions & Justification\n")
	for _, dim := range Dimensions {
		entry := a.Dimensions[dim]
		fmt.Fprintf(&b, "### %s\n", dim)
		fmt.Fprintf(&b, "* **Relevant AI Ethics Principle(s):** %s\n", EthicsPrinciples(dim))
		fmt.Fprintf(&b, "* **Score (0-5):** %d\n", entry.Score)
		fmt.Fprintf(&b, "* **Justification:** %s\n\n", orNotSet(entry.Justification))
	}

	b.WriteString("## 7. Scoring Summary\n")
	b.WriteString("| Dimension                           | Score (0-5) | Primary AI Ethics Principle(s) |\n")
	b.WriteString("| :---------------------------------- | :---------- | :----------------------------- |\n")
	for _, dim := range Dimensions {
		fmt.Fprintf(&b, "| %-35s | %-11d | %s |\n", dim, a.Dimensions[dim].Score, EthicsPrinciples(dim))
	}
	fmt.Fprintf(&b, "| **%-31s** | **%-7d** |                                |\n", "Total Score", a.TotalScore)

	b.WriteString("\n## 8. Risk Categorization\n")
	fmt.Fprintf(&b, "**Overall System Risk Category:** %s\n", a.RiskCategory.Category)
	fmt.Fprintf(&b, "**Total Score:** %d / %d\n", a.TotalScore, MaxTotalScore)
	fmt.Fprintf(&b, "**Required Action:** %s\n", a.RiskCategory.Action)

	b.WriteString("\n## 9. Mitigation Plan\n")
	if len(a.MitigationPlan) == 0 {
		b.WriteString("[No mitigation items entered.]\n")
	} else {
		b.WriteString("| Dimension | Risk Description | Action | Responsible | Target Date | Status |\n")
		b.WriteString("| :-------- | :--------------- | :----- | :---------- | :---------- | :----- |\n")
		for _, item := range a.MitigationPlan {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				item.Dimension, item.RiskDescription, item.Action, item.Responsible, item.TargetDate, item.Status)
		}
	}

	b.WriteString("\n## 10. Documentation and Approval\n")
	b.WriteString("* **Assessor(s):**\n")
	fmt.Fprintf(&b, "    * Name: %s, Role: %s, Date: %s\n",
		orNotSet(a.Approvals.Assessor.Name), orNotSet(a.Approvals.Assessor.Role), orNotSet(a.Approvals.Assessor.Date))
	b.WriteString("* **Reviewer(s):**\n")
	fmt.Fprintf(&b, "    * Name: %s, Role: %s, Date: %s\n",
		orNotSet(a.Approvals.Reviewer.Name), orNotSet(a.Approvals.Reviewer.Role), orNotSet(a.Approvals.Reviewer.Date))
	fmt.Fprintf(&b, "    * Comments: %s\n", orNotSet(a.Approvals.Reviewer.Comments))
	b.WriteString("* **Approver:**\n")
	fmt.Fprintf(&b, "    * Name: %s, Role: %s, Date: %s\n",
		orNotSet(a.Approvals.Approver.Name), orNotSet(a.Approvals.Approver.Role), orNotSet(a.Approvals.Approver.Date))
	fmt.Fprintf(&b, "    * Decision: %s, Conditions: %s\n",
		orNotSet(a.Approvals.Approver.Decision), orNotSet(a.Approvals.Approver.Conditions))
	fmt.Fprintf(&b, "* **Agency AI Inventory Reference:** %s\n", orNotSet(a.AIInventoryRef))
	fmt.Fprintf(&b, "* **Link to AI Transparency Statement:** %s\n", orNotSet(a.TransparencyLink))

	b.WriteString("\n## 11. Ongoing Monitoring and Review\n")
	fmt.Fprintf(&b, "* **Monitoring Plan Reference:** %s\n", orNotSet(a.MonitoringPlanRef))
	fmt.Fprintf(&b, "* **Review Frequency:** %s\n", orNotSet(a.ReviewFrequency))
	fmt.Fprintf(&b, "* **Next Scheduled Review Date:** %s\n", orNotSet(a.NextReviewDate))

	if footer != "" {
		fmt.Fprintf(&b, "\n---\n%s\n", footer)
	}

	return strings.TrimSpace(b.String())
}

func (a *Assessment) systemIDLabel() string {
	if a.SystemID == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d", a.SystemID)
}

func (a *Assessment) relatedStatusLabel(name string) string {
	if status, ok := a.RelatedStatuses[name]; ok {
		return status
	}
	return RelatedNA
}

func orNotSet(value string) string {
	if strings.TrimSpace(value) == "" {
		return notSet
	}
	return value
}
