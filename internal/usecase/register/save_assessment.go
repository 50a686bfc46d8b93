package register

import (
	"context"
	"fmt"
	"log/slog"

	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/domain/assessment"
	"aiahub/internal/ports"
)

// SaveAssessment replaces a system's assessment with a full snapshot
// document, the inverse of ExportSnapshot. The document is decoded and
// validated as a whole before it overwrites the stored record; there is
// no field-level merging, the last writer wins.
func (s *Service) SaveAssessment(ctx context.Context, input SaveAssessmentInput) (*assessment.Assessment, error) {
	if len(input.Snapshot) == 0 {
		return nil, fmt.Errorf("%w: snapshot payload is required", assessment.ErrInvalidArgument)
	}

	decoded, err := assessment.DecodeSnapshot(input.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", assessment.ErrInvalidArgument, err)
	}
	if decoded.SystemID != 0 && decoded.SystemID != input.SystemID {
		return nil, fmt.Errorf("%w: snapshot belongs to system #%d", assessment.ErrInvalidArgument, decoded.SystemID)
	}
	decoded.SystemID = input.SystemID
	if err := decoded.Validate(); err != nil {
		return nil, err
	}

	record, err := s.withRecord(ctx, input.SystemID, func(record *assessment.Assessment) error {
		if decoded.CreationDate == "" {
			decoded.CreationDate = record.CreationDate
		}
		decoded.LastModified = nowUTCString()
		*record = *decoded
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Info(logging.WithSystem(ctx, input.SystemID), "assessment snapshot saved",
		slog.Int("total_score", record.TotalScore),
		slog.String("risk_category", record.RiskCategory.Category))

	s.publishBestEffort(ctx, ports.EventAssessmentSaved, record, input.Actor)
	return record, nil
}
