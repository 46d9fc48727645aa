// Package models contains database model definitions.
package models

import (
	"time"
)

// Status represents the publication state of a post or page.
type Status string

const (
	// StatusDraft marks content that is not publicly visible yet.
	StatusDraft Status = "draft"
	// StatusPublished marks content served on the public blog.
	StatusPublished Status = "published"
)

// IsValid reports whether s is a known publication status.
func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Post represents a blog post.
// Slug is unique within posts and derived from the title when not supplied.
// PublishedAt is stamped exactly once, on the first transition to published.
type Post struct {
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Title of the post, required.
	Title string `gorm:"size:255;not null" json:"title"`
	// Slug is the unique URL-safe identifier of the post.
	Slug string `gorm:"unique;size:150;not null" json:"slug"`
	// Content is the post body, required.
	Content string `gorm:"not null" json:"content"`
	// Excerpt is an optional summary shown in listings.
	Excerpt string `json:"excerpt"`
	// Status is either draft or published.
	Status Status `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	// AuthorID references the user that owns the post.
	AuthorID uint64 `gorm:"column:author_id" json:"author_id"`
	// PublishedAt is set when the post first transitions to published.
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
