package model

// AISystem holds the register row: a full record snapshot in aia_data
// plus denormalized columns for index views and dashboard grouping.
type AISystem struct {
	SystemID                    uint64 `gorm:"column:system_id;primaryKey;autoIncrement"`
	SystemName                  string `gorm:"column:system_name;type:text;not null"`
	AgencyName                  string `gorm:"column:agency_name;type:text;not null;index"`
	AIAStatus                   string `gorm:"column:aia_status;type:text;not null;index"`
	RiskCategory                string `gorm:"column:risk_category;type:text;not null;index"`
	TotalScore                  int    `gorm:"column:total_score;not null;default:0"`
	PIAStatus                   string `gorm:"column:pia_status;type:text;not null"`
	SecurityAssessmentStatus    string `gorm:"column:security_assessment_status;type:text;not null"`
	HumanRightsAssessmentStatus string `gorm:"column:human_rights_assessment_status;type:text;not null"`
	CreationDate                string `gorm:"column:creation_date;type:text;not null"`
	LastModifiedDate            string `gorm:"column:last_modified_date;type:text;not null"`
	AIAData                     string `gorm:"column:aia_data;type:text;not null"`
}

func (AISystem) TableName() string {
	return "ai_systems"
}
