package register

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/domain/assessment"
	"aiahub/internal/ports"
)

// CreateSystem registers a new AI system with a fresh draft assessment and
// returns its assigned id. Related assessments from the governance profile
// start at Not Started alongside the built-in ones.
func (s *Service) CreateSystem(ctx context.Context, input CreateSystemInput) (uint64, error) {
	if err := s.guard(ctx); err != nil {
		return 0, err
	}

	systemName := strings.TrimSpace(input.SystemName)
	if systemName == "" {
		return 0, fmt.Errorf("%w: system name is required", assessment.ErrInvalidArgument)
	}
	agencyName := strings.TrimSpace(input.AgencyName)
	if agencyName == "" {
		return 0, fmt.Errorf("%w: agency name is required", assessment.ErrInvalidArgument)
	}

	if s.uow == nil {
		return 0, errors.New("register unit of work is required")
	}

	extras := s.currentProfile().ExtraAssessments

	var systemID uint64
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		id, err := s.repo.CreateSystem(txCtx, systemName, agencyName)
		if err != nil {
			return err
		}

		if len(extras) > 0 {
			record, err := s.repo.GetRecord(txCtx, id)
			if err != nil {
				return err
			}
			for _, name := range extras {
				if record.TracksAssessment(name) {
					continue
				}
				if err := record.SetRelatedAssessmentStatus(name, assessment.RelatedNotStarted); err != nil {
					return err
				}
			}
			if err := s.repo.SaveRecord(txCtx, record); err != nil {
				return err
			}
		}

		systemID = id
		return nil
	}); err != nil {
		return 0, err
	}

	logging.Info(logging.WithSystem(ctx, systemID), "ai system registered",
		slog.String("system_name", systemName),
		slog.String("agency", agencyName))

	s.dropCacheBestEffort(ctx, dashboardCountsKey)
	if record, err := s.repo.GetRecord(ctx, systemID); err == nil {
		s.publishBestEffort(ctx, ports.EventSystemCreated, record, input.Actor)
	}

	return systemID, nil
}
