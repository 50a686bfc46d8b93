package assessment

import (
	"fmt"
	"strings"
)

const (
	StatusDraft      = "Draft"
	StatusInProgress = "In Progress"
	StatusReview     = "Review"
	StatusApproved   = "Approved"
	StatusArchived   = "Archived"
)

const (
	RelatedNotStarted = "Not Started"
	RelatedInProgress = "In Progress"
	RelatedCompleted  = "Completed"
	RelatedNA         = "N/A"
)

const (
	MitigationPlanned    = "Planned"
	MitigationInProgress = "In Progress"
	MitigationCompleted  = "Completed"
	MitigationCancelled  = "Cancelled"
)

const (
	AssessmentPIA         = "PIA"
	AssessmentSecurity    = "Security Assessment"
	AssessmentHumanRights = "Human Rights Assessment"
)

// TrackedAssessments are the related reviews every record carries from
// creation; further names may join a record dynamically.
var TrackedAssessments = []string{
	AssessmentPIA,
	AssessmentSecurity,
	AssessmentHumanRights,
}

var Statuses = []string{
	StatusDraft,
	StatusInProgress,
	StatusReview,
	StatusApproved,
	StatusArchived,
}

var allowedStatuses = map[string]struct{}{
	StatusDraft:      {},
	StatusInProgress: {},
	StatusReview:     {},
	StatusApproved:   {},
	StatusArchived:   {},
}

var allowedRelatedStatuses = map[string]struct{}{
	RelatedNotStarted: {},
	RelatedInProgress: {},
	RelatedCompleted:  {},
	RelatedNA:         {},
}

var allowedMitigationStatuses = map[string]struct{}{
	MitigationPlanned:    {},
	MitigationInProgress: {},
	MitigationCompleted:  {},
	MitigationCancelled:  {},
}

func ValidateStatus(status string) error {
	if _, ok := allowedStatuses[status]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return nil
}

func ValidateRelatedStatus(status string) error {
	if _, ok := allowedRelatedStatuses[status]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidRelatedStatus, status)
	}
	return nil
}

func ValidateMitigationStatus(status string) error {
	if _, ok := allowedMitigationStatuses[status]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidMitigationStatus, status)
	}
	return nil
}

func IsTrackedAssessment(name string) bool {
	trimmed := strings.TrimSpace(name)
	for _, tracked := range TrackedAssessments {
		if trimmed == tracked {
			return true
		}
	}
	return false
}
