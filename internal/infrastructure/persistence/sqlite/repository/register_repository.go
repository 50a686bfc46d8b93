package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"aiahub/internal/domain/assessment"
	"aiahub/internal/errs"
	"aiahub/internal/infrastructure/persistence/sqlite/model"
	"aiahub/internal/ports"
)

// RegisterRepository persists assessment records as full JSON snapshots
// with denormalized columns kept in step on every write.
type RegisterRepository struct {
	db *gorm.DB
}

var _ ports.RegisterRepository = (*RegisterRepository)(nil)

func NewRegisterRepository(db *gorm.DB) *RegisterRepository {
	return &RegisterRepository{db: db}
}

func (r *RegisterRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *RegisterRepository) CreateSystem(ctx context.Context, systemName, agencyName string) (uint64, error) {
	if ports.TxFromContext(ctx) != nil {
		db, err := r.dbFromContext(ctx)
		if err != nil {
			return 0, err
		}

		record := assessment.New(systemName, agencyName)
		data, err := record.Snapshot()
		if err != nil {
			return 0, errs.Wrap(err, "encode new assessment")
		}

		row := systemRow(record, string(data))
		if err := db.Create(&row).Error; err != nil {
			return 0, errs.Wrap(err, "insert ai system")
		}

		record.SystemID = row.SystemID
		data, err = record.Snapshot()
		if err != nil {
			return 0, errs.Wrap(err, "encode assessment with id")
		}
		if err := db.Model(&model.AISystem{}).
			Where("system_id = ?", row.SystemID).
			Update("aia_data", string(data)).Error; err != nil {
			return 0, errs.Wrap(err, "store assessment snapshot")
		}
		return row.SystemID, nil
	}

	var created uint64
	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := ports.WithTxContext(ctx, tx)
		systemID, err := r.CreateSystem(txCtx, systemName, agencyName)
		if err != nil {
			return err
		}
		created = systemID
		return nil
	}); err != nil {
		return 0, err
	}
	return created, nil
}

func (r *RegisterRepository) ListSummaries(ctx context.Context, filter ports.SummaryFilter) ([]ports.SystemSummary, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.AISystem{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("aia_status = ?", status)
	}
	if risk := strings.TrimSpace(filter.RiskCategory); risk != "" {
		query = query.Where("risk_category = ?", risk)
	}
	if agency := strings.TrimSpace(filter.Agency); agency != "" {
		query = query.Where("agency_name = ?", agency)
	}

	var rows []model.AISystem
	if err := query.Order("last_modified_date desc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query ai systems")
	}

	items := make([]ports.SystemSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.SystemSummary{
			SystemID:     row.SystemID,
			SystemName:   row.SystemName,
			AgencyName:   row.AgencyName,
			Status:       row.AIAStatus,
			RiskCategory: row.RiskCategory,
			TotalScore:   row.TotalScore,
			LastModified: row.LastModifiedDate,
		})
	}
	return items, nil
}

func (r *RegisterRepository) GetRecord(ctx context.Context, systemID uint64) (*assessment.Assessment, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var row model.AISystem
	if err := db.Where("system_id = ?", systemID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrSystemNotFound
		}
		return nil, errs.Wrap(err, "query ai system")
	}

	record, err := assessment.DecodeSnapshot([]byte(row.AIAData))
	if err != nil {
		return nil, errs.Wrap(err, "decode stored assessment")
	}
	record.SystemID = row.SystemID
	return record, nil
}

func (r *RegisterRepository) SaveRecord(ctx context.Context, record *assessment.Assessment) error {
	if record == nil {
		return errors.New("record is required")
	}
	if record.SystemID == 0 {
		return fmt.Errorf("%w: system id is required to save", assessment.ErrInvalidArgument)
	}

	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	data, err := record.Snapshot()
	if err != nil {
		return errs.Wrap(err, "encode assessment")
	}

	row := systemRow(record, string(data))
	result := db.Model(&model.AISystem{}).
		Where("system_id = ?", record.SystemID).
		Updates(map[string]any{
			"system_name":                    row.SystemName,
			"agency_name":                    row.AgencyName,
			"aia_status":                     row.AIAStatus,
			"risk_category":                  row.RiskCategory,
			"total_score":                    row.TotalScore,
			"pia_status":                     row.PIAStatus,
			"security_assessment_status":     row.SecurityAssessmentStatus,
			"human_rights_assessment_status": row.HumanRightsAssessmentStatus,
			"last_modified_date":             row.LastModifiedDate,
			"aia_data":                       row.AIAData,
		})
	if result.Error != nil {
		return errs.Wrap(result.Error, "update ai system")
	}
	if result.RowsAffected == 0 {
		return ports.ErrSystemNotFound
	}
	return nil
}

func (r *RegisterRepository) DeleteRecord(ctx context.Context, systemID uint64) (bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return false, err
	}

	result := db.Where("system_id = ?", systemID).Delete(&model.AISystem{})
	if result.Error != nil {
		return false, errs.Wrap(result.Error, "delete ai system")
	}
	return result.RowsAffected > 0, nil
}

func (r *RegisterRepository) AggregateCounts(ctx context.Context) (ports.AggregateCounts, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.AggregateCounts{}, err
	}

	var total int64
	if err := db.Model(&model.AISystem{}).Count(&total).Error; err != nil {
		return ports.AggregateCounts{}, errs.Wrap(err, "count ai systems")
	}

	counts := ports.AggregateCounts{TotalSystems: total}
	for _, group := range []struct {
		column string
		dest   *map[string]int64
	}{
		{"aia_status", &counts.ByStatus},
		{"risk_category", &counts.ByRisk},
		{"pia_status", &counts.ByPIA},
		{"security_assessment_status", &counts.BySecurity},
		{"human_rights_assessment_status", &counts.ByHumanRights},
	} {
		grouped, err := groupByColumn(db, group.column)
		if err != nil {
			return ports.AggregateCounts{}, err
		}
		*group.dest = grouped
	}
	return counts, nil
}

type groupCount struct {
	Key   string `gorm:"column:k"`
	Count int64  `gorm:"column:n"`
}

func groupByColumn(db *gorm.DB, column string) (map[string]int64, error) {
	var rows []groupCount
	if err := db.Model(&model.AISystem{}).
		Select(column + " as k, count(*) as n").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "group by "+column)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out, nil
}

func systemRow(record *assessment.Assessment, data string) model.AISystem {
	return model.AISystem{
		SystemID:                    record.SystemID,
		SystemName:                  record.SystemName,
		AgencyName:                  record.AgencyName,
		AIAStatus:                   record.Status,
		RiskCategory:                record.RiskCategory.Category,
		TotalScore:                  record.TotalScore,
		PIAStatus:                   relatedStatus(record, assessment.AssessmentPIA),
		SecurityAssessmentStatus:    relatedStatus(record, assessment.AssessmentSecurity),
		HumanRightsAssessmentStatus: relatedStatus(record, assessment.AssessmentHumanRights),
		CreationDate:                record.CreationDate,
		LastModifiedDate:            record.LastModified,
		AIAData:                     data,
	}
}

func relatedStatus(record *assessment.Assessment, name string) string {
	if status, ok := record.RelatedStatuses[name]; ok {
		return status
	}
	return assessment.RelatedNotStarted
}
