package register

import (
	"context"
	"errors"

	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/domain/assessment"
	"aiahub/internal/ports"
)

// DeleteSystem removes a register entry and its assessment. The bool result
// reports whether anything was actually deleted.
func (s *Service) DeleteSystem(ctx context.Context, input DeleteSystemInput) (bool, error) {
	if err := s.guard(ctx); err != nil {
		return false, err
	}
	if s.uow == nil {
		return false, errors.New("register unit of work is required")
	}

	// Best effort: capture identity for the event before the row goes away.
	var snapshot *assessment.Assessment
	if record, err := s.repo.GetRecord(ctx, input.SystemID); err == nil {
		snapshot = record
	}

	var removed bool
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		ok, err := s.repo.DeleteRecord(txCtx, input.SystemID)
		if err != nil {
			return err
		}
		removed = ok
		return nil
	}); err != nil {
		return false, err
	}

	if removed {
		logging.Info(logging.WithSystem(ctx, input.SystemID), "ai system deleted")
		s.dropCacheBestEffort(ctx, dashboardCountsKey)
		if snapshot != nil {
			s.publishBestEffort(ctx, ports.EventSystemDeleted, snapshot, input.Actor)
		}
	}

	return removed, nil
}
