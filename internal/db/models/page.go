package models

import (
	"time"
)

// Page represents a static page (about, contact, ...).
// Pages have their own slug namespace, independent of posts, and default to
// published.
type Page struct {
	ID      uint64 `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Slug    string `gorm:"unique;size:150;not null" json:"slug"`
	Content string `gorm:"not null" json:"content"`
	// Status is either draft or published.
	Status    Status    `gorm:"type:varchar(20);not null;default:'published'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
