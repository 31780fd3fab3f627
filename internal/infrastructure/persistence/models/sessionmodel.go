package models

import "time"

// SessionModel represents the database persistence model for sessions.
// The token column carries the unique constraint that backs the session
// service's collision retry loop. The user_id foreign key is declared with
// ON DELETE CASCADE in the migration so deleting a user removes their
// sessions at the storage layer.
type SessionModel struct {
	ID        uint      `gorm:"primarykey"`
	Token     string    `gorm:"uniqueIndex;not null;size:255"`
	UserID    uint      `gorm:"not null;index"`
	UserAgent string    `gorm:"size:512"`
	IPAddress string    `gorm:"size:45"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string {
	return "sessions"
}
