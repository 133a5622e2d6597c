package journal_entry

import (
	"time"
)

// JournalEntry is an immutable record of one authored message. The platform
// message id is unique so redelivered messages are never ingested twice.
type JournalEntry struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	UserID            uint   `gorm:"column:user_id;not null;index" json:"user_id"`
	PlatformUserID    string `gorm:"column:platform_user_id;type:varchar(32);not null" json:"platform_user_id"`
	DisplayName       string `gorm:"column:display_name;type:varchar(100);not null" json:"display_name"`
	Content           string `gorm:"column:content;type:text;not null" json:"content"`
	WordCount         int    `gorm:"column:word_count;not null" json:"word_count"`
	PlatformMessageID string `gorm:"column:platform_message_id;type:varchar(32);not null;uniqueIndex" json:"platform_message_id"`
	ChannelID         string `gorm:"column:channel_id;type:varchar(32);not null" json:"channel_id"`
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}
