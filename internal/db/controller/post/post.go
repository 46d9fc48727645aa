// Package post provides CRUD operations for blog posts.
package post

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/quillpress/quillpress/internal/db/models"
	"github.com/quillpress/quillpress/internal/slug"
)

const (
	slugQueryPattern   = "slug = ?"
	statusQueryPattern = "status = ?"
)

var (
	// ErrPostNotFound is returned when a post is not found.
	ErrPostNotFound = errors.New("post not found")
	// ErrTitleEmpty is returned when attempting to create a post without a title.
	ErrTitleEmpty = errors.New("post title cannot be empty")
	// ErrContentEmpty is returned when attempting to create a post without content.
	ErrContentEmpty = errors.New("post content cannot be empty")
	// ErrSlugEmpty is returned when no valid slug could be derived from the title.
	ErrSlugEmpty = errors.New("post slug cannot be empty")
	// ErrSlugExists is returned when the derived slug is already taken.
	ErrSlugExists = errors.New("post slug already exists")
	// ErrInvalidStatus is returned when the status is not draft or published.
	ErrInvalidStatus = errors.New("post status must be draft or published")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// CreateInput holds the fields accepted when creating a post.
// Slug is derived from Title when empty, Status defaults to draft.
type CreateInput struct {
	Title    string
	Slug     string
	Content  string
	Excerpt  string
	Status   models.Status
	AuthorID uint64
}

// UpdateInput holds the fields accepted when updating a post.
// Nil fields are left unchanged.
type UpdateInput struct {
	Title   *string
	Slug    *string
	Content *string
	Excerpt *string
	Status  *models.Status
}

// Get retrieves a post by its ID.
func Get(db *gorm.DB, id uint64) (*models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var post models.Post
	result := db.First(&post, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, result.Error
	}

	return &post, nil
}

// GetBySlug retrieves a post by its slug.
func GetBySlug(db *gorm.DB, postSlug string) (*models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var post models.Post
	result := db.Where(slugQueryPattern, postSlug).First(&post)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, result.Error
	}

	return &post, nil
}

// List retrieves all posts regardless of status, newest first.
// This is the admin listing.
func List(db *gorm.DB) ([]models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var posts []models.Post
	result := db.Order("created_at DESC").Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}

	return posts, nil
}

// ListPublished retrieves published posts only, newest first.
// This is the public listing.
func ListPublished(db *gorm.DB) ([]models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var posts []models.Post
	result := db.Where(statusQueryPattern, models.StatusPublished).
		Order("created_at DESC").Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}

	return posts, nil
}

// Create creates a new post. The slug is derived from the title when not
// supplied, the status defaults to draft and PublishedAt is stamped when the
// post is created as published.
func Create(db *gorm.DB, in CreateInput) (*models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if in.Title == "" {
		return nil, ErrTitleEmpty
	}
	if in.Content == "" {
		return nil, ErrContentEmpty
	}

	if in.Status == "" {
		in.Status = models.StatusDraft
	}
	if !in.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	if in.Slug == "" {
		in.Slug = slug.Make(in.Title)
	}
	if !slug.IsValid(in.Slug) {
		return nil, ErrSlugEmpty
	}

	// Check if the slug is already taken
	var existing models.Post
	result := db.Where(slugQueryPattern, in.Slug).First(&existing)
	if result.Error == nil {
		return nil, ErrSlugExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	post := &models.Post{
		Title:    in.Title,
		Slug:     in.Slug,
		Content:  in.Content,
		Excerpt:  in.Excerpt,
		Status:   in.Status,
		AuthorID: in.AuthorID,
	}

	if in.Status == models.StatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	result = db.Create(post)
	if result.Error != nil {
		return nil, result.Error
	}

	return post, nil
}

// Update applies a partial update to an existing post. Unspecified fields are
// left unchanged; UpdatedAt is refreshed on every call. PublishedAt is stamped
// on the first transition to published and retained afterwards.
func Update(db *gorm.DB, id uint64, in UpdateInput) (*models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var post models.Post
	result := db.First(&post, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, result.Error
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, ErrTitleEmpty
		}

		post.Title = *in.Title
	}

	if in.Content != nil {
		if *in.Content == "" {
			return nil, ErrContentEmpty
		}

		post.Content = *in.Content
	}

	if in.Excerpt != nil {
		post.Excerpt = *in.Excerpt
	}

	if in.Slug != nil && *in.Slug != post.Slug {
		if !slug.IsValid(*in.Slug) {
			return nil, ErrSlugEmpty
		}

		// Check if the new slug is already taken
		var existing models.Post
		result = db.Where(slugQueryPattern, *in.Slug).First(&existing)
		if result.Error == nil {
			return nil, ErrSlugExists
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}

		post.Slug = *in.Slug
	}

	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, ErrInvalidStatus
		}

		// first publish stamps the timestamp, later transitions keep it
		if *in.Status == models.StatusPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}

		post.Status = *in.Status
	}

	post.UpdatedAt = time.Now()

	result = db.Save(&post)
	if result.Error != nil {
		return nil, result.Error
	}

	return &post, nil
}

// Delete deletes a post by ID.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

// Count returns the total number of posts.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	if err := db.Model(&models.Post{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// CountPublished returns the number of published posts.
func CountPublished(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	err := db.Model(&models.Post{}).
		Where(statusQueryPattern, models.StatusPublished).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
