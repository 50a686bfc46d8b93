package register

import (
	"context"

	"aiahub/internal/domain/assessment"
	"aiahub/internal/ports"
)

// ListSystems returns register summaries for list views, newest change
// first. Empty filter fields match everything.
func (s *Service) ListSystems(ctx context.Context, input ListSystemsInput) ([]SystemListItem, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	summaries, err := s.repo.ListSummaries(ctx, ports.SummaryFilter{
		Status:       input.Status,
		RiskCategory: input.RiskCategory,
		Agency:       input.Agency,
	})
	if err != nil {
		return nil, err
	}

	items := make([]SystemListItem, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, SystemListItem{
			SystemID:     summary.SystemID,
			SystemName:   summary.SystemName,
			AgencyName:   summary.AgencyName,
			Status:       summary.Status,
			RiskCategory: summary.RiskCategory,
			TotalScore:   summary.TotalScore,
			LastModified: summary.LastModified,
		})
	}

	return items, nil
}

// GetAssessment returns the full assessment record for one system.
func (s *Service) GetAssessment(ctx context.Context, systemID uint64) (*assessment.Assessment, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	return s.repo.GetRecord(ctx, systemID)
}

// ExportSnapshot returns the canonical JSON document for one system.
func (s *Service) ExportSnapshot(ctx context.Context, systemID uint64) ([]byte, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	record, err := s.repo.GetRecord(ctx, systemID)
	if err != nil {
		return nil, err
	}
	return record.Snapshot()
}
