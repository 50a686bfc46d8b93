package register

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/domain/assessment"
	"aiahub/internal/errs"
)

type seedFile struct {
	Systems []seedSystem `yaml:"systems"`
}

type seedSystem struct {
	SystemName         string            `yaml:"system_name"`
	AgencyName         string            `yaml:"agency_name"`
	Status             string            `yaml:"status"`
	Scores             map[string]int    `yaml:"scores"`
	Justifications     map[string]string `yaml:"justifications"`
	RelatedAssessments map[string]string `yaml:"related_assessments"`
	Mitigations        []seedMitigation  `yaml:"mitigations"`
}

type seedMitigation struct {
	Dimension       string `yaml:"dimension"`
	RiskDescription string `yaml:"risk_description"`
	Action          string `yaml:"action"`
	Responsible     string `yaml:"responsible"`
	TargetDate      string `yaml:"target_date"`
	Status          string `yaml:"status"`
}

// SeedFromFile loads register entries from a YAML fixture file and returns
// how many systems it created. Each entry runs through the normal create and
// edit paths, so seeded data obeys the same validation as interactive input.
func (s *Service) SeedFromFile(ctx context.Context, path string, actor string) (int, error) {
	if err := s.guard(ctx); err != nil {
		return 0, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errs.Wrapf(err, "read seed file %q", path)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, errs.Wrapf(err, "decode seed file %q", path)
	}
	if len(file.Systems) == 0 {
		return 0, errors.New("seed file lists no systems")
	}

	created := 0
	for _, entry := range file.Systems {
		systemID, err := s.CreateSystem(ctx, CreateSystemInput{
			SystemName: entry.SystemName,
			AgencyName: entry.AgencyName,
			Actor:      actor,
		})
		if err != nil {
			return created, errs.Wrapf(err, "seed system %q", entry.SystemName)
		}

		if _, err := s.withRecord(ctx, systemID, func(record *assessment.Assessment) error {
			return applySeedEntry(record, entry)
		}); err != nil {
			return created, errs.Wrapf(err, "seed system %q", entry.SystemName)
		}

		created++
	}

	logging.Info(ctx, "seed fixtures applied",
		slog.String("path", path),
		slog.Int("systems", created))
	return created, nil
}

func applySeedEntry(record *assessment.Assessment, entry seedSystem) error {
	dims := make([]string, 0, len(entry.Scores))
	for dim := range entry.Scores {
		dims = append(dims, dim)
	}
	sort.Strings(dims)
	for _, dim := range dims {
		if err := record.SetDimensionScore(dim, entry.Scores[dim], entry.Justifications[dim]); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(entry.RelatedAssessments))
	for name := range entry.RelatedAssessments {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := record.SetRelatedAssessmentStatus(name, entry.RelatedAssessments[name]); err != nil {
			return err
		}
	}

	for _, m := range entry.Mitigations {
		if _, err := record.AddMitigationItem(assessment.MitigationItem{
			Dimension:       m.Dimension,
			RiskDescription: m.RiskDescription,
			Action:          m.Action,
			Responsible:     m.Responsible,
			TargetDate:      m.TargetDate,
			Status:          m.Status,
		}); err != nil {
			return err
		}
	}

	if entry.Status != "" {
		if err := record.SetStatus(entry.Status); err != nil {
			return err
		}
	}

	return nil
}
