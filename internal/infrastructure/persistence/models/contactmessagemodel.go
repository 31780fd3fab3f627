package models

import "time"

// ContactMessageModel represents the database persistence model for contact
// form submissions.
type ContactMessageModel struct {
	ID      uint      `gorm:"primarykey"`
	Name    string    `gorm:"not null;size:200"`
	Email   string    `gorm:"not null;size:200"`
	Subject string    `gorm:"not null;size:200"`
	Body    string    `gorm:"not null;size:500"`
	SentAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ContactMessageModel) TableName() string {
	return "contact_messages"
}
