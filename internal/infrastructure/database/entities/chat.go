package entities

import "time"

// Contact is the read-model row behind the conversation list. Rows are
// written by the messaging pipeline; the admin API only reads them and bumps
// last-activity when it sends a message.
type Contact struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	UID          string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(128)"`
	Phone        string    `gorm:"type:varchar(32)"`
	LastMessage  string    `gorm:"type:text"`
	LastActivity time.Time `gorm:"index"`
	Unread       int       `gorm:"not null;default:0"`
	Online       bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Contact) TableName() string {
	return "contacts"
}

// ChatMessage is one message of a conversation thread, immutable once stored.
type ChatMessage struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	PublicID   string    `gorm:"type:varchar(40);uniqueIndex;not null"`
	ContactUID string    `gorm:"type:varchar(64);index;not null"`
	Role       string    `gorm:"type:varchar(16);not null"`
	Body       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
