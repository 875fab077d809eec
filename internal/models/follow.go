// Package models contains data structures for the application's domain models.
package models

import "time"

// Follow is a directed subscription edge from a reader to an author.
// The composite unique index guarantees at most one edge per pair;
// self-follows are rejected at the service level.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_follow_user_author" json:"user_id"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_follow_user_author" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User   User `gorm:"foreignKey:UserID" json:"-"`
	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
