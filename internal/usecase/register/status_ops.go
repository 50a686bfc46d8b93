package register

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/domain/assessment"
	"aiahub/internal/ports"
)

// ChangeStatus moves the assessment through its workflow states.
func (s *Service) ChangeStatus(ctx context.Context, input ChangeStatusInput) (*assessment.Assessment, error) {
	status := strings.TrimSpace(input.Status)
	if status == "" {
		return nil, fmt.Errorf("%w: status is required", assessment.ErrInvalidArgument)
	}

	record, err := s.withRecord(ctx, input.SystemID, func(record *assessment.Assessment) error {
		return record.SetStatus(status)
	})
	if err != nil {
		return nil, err
	}

	logging.Info(logging.WithSystem(ctx, input.SystemID), "assessment status changed",
		slog.String("status", status))

	s.publishBestEffort(ctx, ports.EventStatusChanged, record, input.Actor)
	return record, nil
}

// SetRelatedAssessment updates the progress of a linked assessment such as
// the PIA. Names outside the tracked set are accepted and start being
// tracked from this call on.
func (s *Service) SetRelatedAssessment(ctx context.Context, input SetRelatedAssessmentInput) (*assessment.Assessment, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: related assessment name is required", assessment.ErrInvalidArgument)
	}
	status := strings.TrimSpace(input.Status)
	if status == "" {
		return nil, fmt.Errorf("%w: related assessment status is required", assessment.ErrInvalidArgument)
	}

	var novel bool
	record, err := s.withRecord(ctx, input.SystemID, func(record *assessment.Assessment) error {
		novel = !record.TracksAssessment(name)
		return record.SetRelatedAssessmentStatus(name, status)
	})
	if err != nil {
		return nil, err
	}

	logCtx := logging.WithSystem(ctx, input.SystemID)
	if novel {
		logging.Warn(logCtx, "tracking related assessment outside the standard set",
			slog.String("name", name))
	}
	logging.Info(logCtx, "related assessment updated",
		slog.String("name", name),
		slog.String("status", status))

	s.publishBestEffort(ctx, ports.EventAssessmentSaved, record, input.Actor)
	return record, nil
}
