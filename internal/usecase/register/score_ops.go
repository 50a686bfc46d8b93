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

// ScoreDimension records one dimension score with its justification and
// persists the recalculated totals.
func (s *Service) ScoreDimension(ctx context.Context, input ScoreDimensionInput) (*assessment.Assessment, error) {
	dimension := strings.TrimSpace(input.Dimension)
	if dimension == "" {
		return nil, fmt.Errorf("%w: dimension is required", assessment.ErrInvalidArgument)
	}

	record, err := s.withRecord(ctx, input.SystemID, func(record *assessment.Assessment) error {
		return record.SetDimensionScore(dimension, input.Score, input.Justification)
	})
	if err != nil {
		return nil, err
	}

	logging.Info(logging.WithSystem(ctx, input.SystemID), "dimension scored",
		slog.String("dimension", dimension),
		slog.Int("score", input.Score),
		slog.Int("total_score", record.TotalScore),
		slog.String("risk_category", record.RiskCategory.Category))

	s.publishBestEffort(ctx, ports.EventAssessmentSaved, record, input.Actor)
	return record, nil
}
