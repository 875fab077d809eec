// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a single authored text entry, optionally grouped and illustrated.
// The author is set at creation and never reassigned.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	GroupID   *uint          `gorm:"index" json:"group_id,omitempty"`
	Group     *Group         `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	ImageURL  string         `json:"image_url,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
