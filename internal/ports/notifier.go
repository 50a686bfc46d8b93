package ports

import "context"

const (
	EventSystemCreated   = "system_created"
	EventAssessmentSaved = "assessment_saved"
	EventStatusChanged   = "status_changed"
	EventSystemDeleted   = "system_deleted"
)

type RegisterEvent struct {
	Kind         string `json:"kind"`
	SystemID     uint64 `json:"system_id"`
	SystemName   string `json:"system_name"`
	AgencyName   string `json:"agency_name"`
	Status       string `json:"status"`
	RiskCategory string `json:"risk_category"`
	TotalScore   int    `json:"total_score"`
	Actor        string `json:"actor,omitempty"`
	OccurredAt   string `json:"occurred_at"`
}

// Notifier publishes register lifecycle events. Publishing is
// best-effort from the caller's point of view: a failed publish must
// never fail the mutation that produced the event.
type Notifier interface {
	Publish(ctx context.Context, event RegisterEvent) error
}
