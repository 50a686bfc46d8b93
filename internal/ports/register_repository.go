package ports

import (
	"context"
	"errors"

	"aiahub/internal/domain/assessment"
)

var ErrSystemNotFound = errors.New("ai system not found")

// SummaryFilter fields are exact-match; empty means no constraint.
type SummaryFilter struct {
	Status       string
	RiskCategory string
	Agency       string
}

type SystemSummary struct {
	SystemID     uint64
	SystemName   string
	AgencyName   string
	Status       string
	RiskCategory string
	TotalScore   int
	LastModified string
}

type AggregateCounts struct {
	TotalSystems  int64
	ByStatus      map[string]int64
	ByRisk        map[string]int64
	ByPIA         map[string]int64
	BySecurity    map[string]int64
	ByHumanRights map[string]int64
}

type RegisterReadRepository interface {
	ListSummaries(ctx context.Context, filter SummaryFilter) ([]SystemSummary, error)
	GetRecord(ctx context.Context, systemID uint64) (*assessment.Assessment, error)
	AggregateCounts(ctx context.Context) (AggregateCounts, error)
}

// RegisterRepository is the persistence gateway for assessment records:
// full-snapshot reads and writes keyed by system id, plus denormalized
// summaries for index views.
type RegisterRepository interface {
	RegisterReadRepository
	CreateSystem(ctx context.Context, systemName, agencyName string) (uint64, error)
	SaveRecord(ctx context.Context, record *assessment.Assessment) error
	DeleteRecord(ctx context.Context, systemID uint64) (bool, error)
}
