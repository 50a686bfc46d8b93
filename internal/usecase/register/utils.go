package register

import (
	"context"
	"errors"
	"time"

	"aiahub/internal/domain/assessment"
	"aiahub/internal/errs"
)

const dashboardCountsKey = "dashboard:counts"

func nowUTCString() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func (s *Service) guard(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return errors.New("register repository is required")
	}
	return nil
}

// withRecord runs mutate against the stored record inside one transaction,
// persisting the result when it succeeds. Derived fields are already fresh
// on return since every mutator recalculates them.
func (s *Service) withRecord(ctx context.Context, systemID uint64, mutate func(record *assessment.Assessment) error) (*assessment.Assessment, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if s.uow == nil {
		return nil, errors.New("register unit of work is required")
	}

	var record *assessment.Assessment
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		loaded, err := s.repo.GetRecord(txCtx, systemID)
		if err != nil {
			return err
		}
		if err := mutate(loaded); err != nil {
			return err
		}
		if err := s.repo.SaveRecord(txCtx, loaded); err != nil {
			return err
		}
		record = loaded
		return nil
	}); err != nil {
		return nil, err
	}

	s.dropCacheBestEffort(ctx, dashboardCountsKey)
	return record, nil
}
