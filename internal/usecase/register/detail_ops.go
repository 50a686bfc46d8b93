package register

import (
	"context"

	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/domain/assessment"
	"aiahub/internal/ports"
)

// UpdateMetadata sets assessment header fields such as assessors and the
// assessment date.
func (s *Service) UpdateMetadata(ctx context.Context, input UpdateMetadataInput) (*assessment.Assessment, error) {
	record, err := s.withRecord(ctx, input.SystemID, func(record *assessment.Assessment) error {
		return record.SetMetadata(input.Patch)
	})
	if err != nil {
		return nil, err
	}

	logging.Info(logging.WithSystem(ctx, input.SystemID), "assessment metadata updated")
	s.publishBestEffort(ctx, ports.EventAssessmentSaved, record, input.Actor)
	return record, nil
}

// UpdateSystemDetails sets the system description sections: purpose,
// technical specifications, data, deployment context, and procurement.
func (s *Service) UpdateSystemDetails(ctx context.Context, input UpdateSystemDetailsInput) (*assessment.Assessment, error) {
	record, err := s.withRecord(ctx, input.SystemID, func(record *assessment.Assessment) error {
		record.SetSystemDetails(input.Patch)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Info(logging.WithSystem(ctx, input.SystemID), "system details updated")
	s.publishBestEffort(ctx, ports.EventAssessmentSaved, record, input.Actor)
	return record, nil
}

// UpdateApprovals records assessor, reviewer, and approver signoffs.
func (s *Service) UpdateApprovals(ctx context.Context, input UpdateApprovalsInput) (*assessment.Assessment, error) {
	record, err := s.withRecord(ctx, input.SystemID, func(record *assessment.Assessment) error {
		return record.SetApproval(input.Patch)
	})
	if err != nil {
		return nil, err
	}

	logging.Info(logging.WithSystem(ctx, input.SystemID), "approvals updated")
	s.publishBestEffort(ctx, ports.EventAssessmentSaved, record, input.Actor)
	return record, nil
}

// UpdateMonitoring sets the ongoing monitoring plan fields.
func (s *Service) UpdateMonitoring(ctx context.Context, input UpdateMonitoringInput) (*assessment.Assessment, error) {
	record, err := s.withRecord(ctx, input.SystemID, func(record *assessment.Assessment) error {
		return record.SetMonitoring(input.Patch)
	})
	if err != nil {
		return nil, err
	}

	logging.Info(logging.WithSystem(ctx, input.SystemID), "monitoring plan updated")
	s.publishBestEffort(ctx, ports.EventAssessmentSaved, record, input.Actor)
	return record, nil
}

// UpdateLinks sets the inventory reference and transparency statement link.
func (s *Service) UpdateLinks(ctx context.Context, input UpdateLinksInput) (*assessment.Assessment, error) {
	record, err := s.withRecord(ctx, input.SystemID, func(record *assessment.Assessment) error {
		record.SetLinks(input.Patch)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Info(logging.WithSystem(ctx, input.SystemID), "reference links updated")
	s.publishBestEffort(ctx, ports.EventAssessmentSaved, record, input.Actor)
	return record, nil
}
