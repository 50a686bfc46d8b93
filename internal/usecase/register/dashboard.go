package register

import (
	"context"
	"encoding/json"
	"log/slog"

	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/errs"
)

// DashboardCounts returns register-wide aggregates, served from cache while
// fresh. A cache that is down or cold never fails the call; counts come
// straight from the database instead.
func (s *Service) DashboardCounts(ctx context.Context) (Dashboard, error) {
	if err := s.guard(ctx); err != nil {
		return Dashboard{}, err
	}

	if s.cache != nil {
		if raw, ok, err := s.cache.Get(ctx, dashboardCountsKey); err == nil && ok {
			var cached Dashboard
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
			logging.Warn(ctx, "dropping undecodable dashboard cache entry")
			s.dropCacheBestEffort(ctx, dashboardCountsKey)
		}
	}

	counts, err := s.repo.AggregateCounts(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	dashboard := Dashboard{
		TotalSystems:  counts.TotalSystems,
		ByStatus:      counts.ByStatus,
		ByRisk:        counts.ByRisk,
		ByPIA:         counts.ByPIA,
		BySecurity:    counts.BySecurity,
		ByHumanRights: counts.ByHumanRights,
		GeneratedAt:   nowUTCString(),
	}

	if payload, err := json.Marshal(dashboard); err == nil {
		s.setCacheBestEffort(ctx, dashboardCountsKey, string(payload), s.cacheTTL)
	} else {
		logging.Warn(ctx, "dashboard cache encode failed", slog.Any("err", errs.Loggable(err)))
	}

	return dashboard, nil
}
