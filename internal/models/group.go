// Package models contains data structures for the application's domain models.
package models

import "time"

// Group is a named category posts can optionally belong to.
// Groups are created administratively (or by the seeder) and are never
// mutated by request handlers.
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Slug        string    `gorm:"size:20;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
