package models

import "time"

// PostModel represents the database persistence model for blog posts.
type PostModel struct {
	ID        uint   `gorm:"primarykey"`
	Title     string `gorm:"not null;size:200"`
	Slug      string `gorm:"uniqueIndex;not null;size:200"`
	Content   string `gorm:"not null;type:text"`
	HeroImage string `gorm:"size:500"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (PostModel) TableName() string {
	return "posts"
}
