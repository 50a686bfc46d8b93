// Package register implements the AI system register workflows: creating
// entries, scoring assessments, tracking mitigation and approvals, and
// serving dashboard and export views.
package register

import (
	"context"
	"log/slog"
	"time"

	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/domain/assessment"
	"aiahub/internal/errs"
	"aiahub/internal/ports"
)

// DashboardCacheTTL bounds how stale cached dashboard counts may get.
type DashboardCacheTTL time.Duration

type Service struct {
	repo     ports.RegisterRepository
	uow      ports.UnitOfWork
	cache    ports.Cache
	notifier ports.Notifier
	profiles ports.ProfileSource
	cacheTTL time.Duration
}

// NewService wires register usecases with the persistence gateway and the
// optional cache, event feed, and governance profile.
func NewService(
	repo ports.RegisterRepository,
	uow ports.UnitOfWork,
	cache ports.Cache,
	notifier ports.Notifier,
	profiles ports.ProfileSource,
	cacheTTL DashboardCacheTTL,
) *Service {
	return &Service{
		repo:     repo,
		uow:      uow,
		cache:    cache,
		notifier: notifier,
		profiles: profiles,
		cacheTTL: time.Duration(cacheTTL),
	}
}

type CreateSystemInput struct {
	SystemName string
	AgencyName string
	Actor      string
}

type ListSystemsInput struct {
	Status       string
	RiskCategory string
	Agency       string
}

type SystemListItem struct {
	SystemID     uint64
	SystemName   string
	AgencyName   string
	Status       string
	RiskCategory string
	TotalScore   int
	LastModified string
}

type SaveAssessmentInput struct {
	SystemID uint64
	Snapshot []byte
	Actor    string
}

type ScoreDimensionInput struct {
	SystemID      uint64
	Dimension     string
	Score         int
	Justification string
	Actor         string
}

type ChangeStatusInput struct {
	SystemID uint64
	Status   string
	Actor    string
}

type SetRelatedAssessmentInput struct {
	SystemID uint64
	Name     string
	Status   string
	Actor    string
}

type AddMitigationInput struct {
	SystemID uint64
	Item     assessment.MitigationItem
	Actor    string
}

type UpdateMitigationInput struct {
	SystemID uint64
	ItemID   string
	Patch    assessment.MitigationPatch
	Actor    string
}

type RemoveMitigationInput struct {
	SystemID uint64
	ItemID   string
	Actor    string
}

type UpdateMetadataInput struct {
	SystemID uint64
	Patch    assessment.MetadataPatch
	Actor    string
}

type UpdateSystemDetailsInput struct {
	SystemID uint64
	Patch    assessment.SystemDetailsPatch
	Actor    string
}

type UpdateApprovalsInput struct {
	SystemID uint64
	Patch    assessment.ApprovalPatch
	Actor    string
}

type UpdateMonitoringInput struct {
	SystemID uint64
	Patch    assessment.MonitoringPatch
	Actor    string
}

type UpdateLinksInput struct {
	SystemID uint64
	Patch    assessment.LinksPatch
	Actor    string
}

type DeleteSystemInput struct {
	SystemID uint64
	Actor    string
}

// Dashboard aggregates register-wide counts for the overview screens.
type Dashboard struct {
	TotalSystems  int64            `json:"total_systems"`
	ByStatus      map[string]int64 `json:"by_status"`
	ByRisk        map[string]int64 `json:"by_risk"`
	ByPIA         map[string]int64 `json:"by_pia"`
	BySecurity    map[string]int64 `json:"by_security"`
	ByHumanRights map[string]int64 `json:"by_human_rights"`
	GeneratedAt   string           `json:"generated_at"`
}

func (s *Service) setCacheBestEffort(ctx context.Context, key string, value string, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Set(ctx, key, value, ttl)
}

func (s *Service) dropCacheBestEffort(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, key)
}

func (s *Service) publishBestEffort(ctx context.Context, kind string, record *assessment.Assessment, actor string) {
	if s.notifier == nil || record == nil {
		return
	}

	event := ports.RegisterEvent{
		Kind:         kind,
		SystemID:     record.SystemID,
		SystemName:   record.SystemName,
		AgencyName:   record.AgencyName,
		Status:       record.Status,
		RiskCategory: record.RiskCategory.Category,
		TotalScore:   record.TotalScore,
		Actor:        actor,
		OccurredAt:   nowUTCString(),
	}
	if err := s.notifier.Publish(ctx, event); err != nil {
		logging.Warn(ctx, "register event publish failed",
			slog.String("kind", kind),
			slog.Uint64("system_id", record.SystemID),
			slog.Any("err", errs.Loggable(err)))
	}
}

func (s *Service) currentProfile() ports.GovernanceProfile {
	if s.profiles == nil {
		return ports.GovernanceProfile{}
	}
	return s.profiles.Current()
}
