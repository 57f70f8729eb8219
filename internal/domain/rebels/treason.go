package rebels

import "time"

// TreasonReport counts how many times accuser has reported accused.
type TreasonReport struct {
	AccuserName string `gorm:"primaryKey;column:accuser_name" json:"accuser"`
	AccusedName string `gorm:"primaryKey;column:accused_name;index" json:"accused"`
	ReportCount int    `gorm:"column:report_count;not null;default:1" json:"report_count"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (TreasonReport) TableName() string { return "treason_reports" }
