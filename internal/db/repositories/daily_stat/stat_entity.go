package daily_stat

import (
	"time"
)

// DailyStat holds one user's running word total and access flag for one
// calendar date in the boundary timezone. (user_id, date) is unique.
type DailyStat struct {
	ID uint `gorm:"column:id;primaryKey;autoIncrement" json:"id"`

	UserID         uint   `gorm:"column:user_id;not null;uniqueIndex:uq_daily_stats_user_date,priority:1" json:"user_id"`
	PlatformUserID string `gorm:"column:platform_user_id;type:varchar(32);not null" json:"platform_user_id"`
	Date           string `gorm:"column:date;type:date;not null;uniqueIndex:uq_daily_stats_user_date,priority:2" json:"date"`

	TotalWords int  `gorm:"column:total_words;not null;default:0" json:"total_words"`
	HasAccess  bool `gorm:"column:has_access;not null;default:false" json:"has_access"`

	LastUpdated time.Time `gorm:"column:last_updated;autoUpdateTime" json:"last_updated"`
}

func (DailyStat) TableName() string {
	return "daily_stats"
}

// DateFormat is the canonical layout of DailyStat.Date.
const DateFormat = "2006-01-02"
