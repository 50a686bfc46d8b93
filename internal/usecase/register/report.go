package register

import (
	"context"
)

// ExportReport renders the full markdown assessment document for one
// system, branded with the active governance profile.
func (s *Service) ExportReport(ctx context.Context, systemID uint64) (string, error) {
	if err := s.guard(ctx); err != nil {
		return "", err
	}

	record, err := s.repo.GetRecord(ctx, systemID)
	if err != nil {
		return "", err
	}

	profile := s.currentProfile()
	return record.BrandedReport(profile.Organization, profile.ReportFooter), nil
}
