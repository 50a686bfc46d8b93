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

// AddMitigation appends a mitigation item and returns its generated id.
func (s *Service) AddMitigation(ctx context.Context, input AddMitigationInput) (string, error) {
	var itemID string
	record, err := s.withRecord(ctx, input.SystemID, func(record *assessment.Assessment) error {
		id, err := record.AddMitigationItem(input.Item)
		if err != nil {
			return err
		}
		itemID = id
		return nil
	})
	if err != nil {
		return "", err
	}

	logging.Info(logging.WithSystem(ctx, input.SystemID), "mitigation item added",
		slog.String("item_id", itemID),
		slog.String("dimension", input.Item.Dimension))

	s.publishBestEffort(ctx, ports.EventAssessmentSaved, record, input.Actor)
	return itemID, nil
}

// UpdateMitigation applies a partial update to one mitigation item.
func (s *Service) UpdateMitigation(ctx context.Context, input UpdateMitigationInput) (*assessment.Assessment, error) {
	itemID := strings.TrimSpace(input.ItemID)
	if itemID == "" {
		return nil, fmt.Errorf("%w: mitigation item id is required", assessment.ErrInvalidArgument)
	}

	record, err := s.withRecord(ctx, input.SystemID, func(record *assessment.Assessment) error {
		return record.UpdateMitigationItem(itemID, input.Patch)
	})
	if err != nil {
		return nil, err
	}

	logging.Info(logging.WithSystem(ctx, input.SystemID), "mitigation item updated",
		slog.String("item_id", itemID))

	s.publishBestEffort(ctx, ports.EventAssessmentSaved, record, input.Actor)
	return record, nil
}

// RemoveMitigation deletes one mitigation item.
func (s *Service) RemoveMitigation(ctx context.Context, input RemoveMitigationInput) (*assessment.Assessment, error) {
	itemID := strings.TrimSpace(input.ItemID)
	if itemID == "" {
		return nil, fmt.Errorf("%w: mitigation item id is required", assessment.ErrInvalidArgument)
	}

	record, err := s.withRecord(ctx, input.SystemID, func(record *assessment.Assessment) error {
		return record.RemoveMitigationItem(itemID)
	})
	if err != nil {
		return nil, err
	}

	logging.Info(logging.WithSystem(ctx, input.SystemID), "mitigation item removed",
		slog.String("item_id", itemID))

	s.publishBestEffort(ctx, ports.EventAssessmentSaved, record, input.Actor)
	return record, nil
}
