package assessment

import (
	"fmt"

	"github.com/google/uuid"
)

// MitigationItem rows keep insertion order. Dimension is free text, so
// an item can describe a compound or cross-cutting risk.
type MitigationItem struct {
	ID              string `json:"id"`
	Dimension       string `json:"dimension"`
	RiskDescription string `json:"risk_description"`
	Action          string `json:"action"`
	Responsible     string `json:"responsible"`
	TargetDate      string `json:"target_date"`
	Status          string `json:"status"`
}

type MitigationPatch struct {
	Dimension       *string
	RiskDescription *string
	Action          *string
	Responsible     *string
	TargetDate      *string
	Status          *string
}

// AddMitigationItem assigns a fresh identifier, ignoring any ID on the
// input, and returns it.
func (a *Assessment) AddMitigationItem(item MitigationItem) (string, error) {
	if item.Status == "" {
		item.Status = MitigationPlanned
	}
	if err := ValidateMitigationStatus(item.Status); err != nil {
		return "", err
	}
	if err := validateDate("target_date", item.TargetDate); err != nil {
		return "", err
	}

	item.ID = uuid.NewString()
	a.MitigationPlan = append(a.MitigationPlan, item)
	a.touch()
	return item.ID, nil
}

func (a *Assessment) UpdateMitigationItem(id string, patch MitigationPatch) error {
	idx := a.mitigationIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrMitigationItemNotFound, id)
	}
	if patch.Status != nil {
		if err := ValidateMitigationStatus(*patch.Status); err != nil {
			return err
		}
	}
	if patch.TargetDate != nil {
		if err := validateDate("target_date", *patch.TargetDate); err != nil {
			return err
		}
	}

	item := &a.MitigationPlan[idx]
	assign(&item.Dimension, patch.Dimension)
	assign(&item.RiskDescription, patch.RiskDescription)
	assign(&item.Action, patch.Action)
	assign(&item.Responsible, patch.Responsible)
	assign(&item.TargetDate, patch.TargetDate)
	assign(&item.Status, patch.Status)
	a.touch()
	return nil
}

func (a *Assessment) RemoveMitigationItem(id string) error {
	idx := a.mitigationIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrMitigationItemNotFound, id)
	}
	a.MitigationPlan = append(a.MitigationPlan[:idx], a.MitigationPlan[idx+1:]...)
	a.touch()
	return nil
}

func (a *Assessment) mitigationIndex(id string) int {
	for i := range a.MitigationPlan {
		if a.MitigationPlan[i].ID == id {
			return i
		}
	}
	return -1
}
