package models

import (
	"time"
)

// Theme represents a presentation theme for the public blog.
// At most one theme is active at any time; activation swaps the flag inside a
// single transaction.
type Theme struct {
	ID   uint64 `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"unique;size:150;not null" json:"slug"`
	// Styles holds the theme's CSS payload.
	Styles string `json:"styles"`
	// Template holds the theme's HTML template payload.
	Template string `json:"template"`
	// IsActive marks the single active theme.
	IsActive  bool      `gorm:"column:is_active" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
