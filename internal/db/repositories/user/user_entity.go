package user

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	PlatformUserID string `gorm:"column:platform_user_id;type:varchar(32);not null;uniqueIndex" json:"platform_user_id"`
	DisplayName    string `gorm:"column:display_name;type:varchar(100);not null" json:"display_name"`

	// Private journal channel, set once the channel is provisioned.
	AssignedChannelID *string `gorm:"column:assigned_channel_id;type:varchar(32)" json:"assigned_channel_id"`
}

func (User) TableName() string {
	return "users"
}
