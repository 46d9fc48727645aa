// Package page provides CRUD operations for static pages.
package page

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
	// ErrPageNotFound is returned when a page is not found.
	ErrPageNotFound = errors.New("page not found")
	// ErrTitleEmpty is returned when attempting to create a page without a title.
	ErrTitleEmpty = errors.New("page title cannot be empty")
	// ErrContentEmpty is returned when attempting to create a page without content.
	ErrContentEmpty = errors.New("page content cannot be empty")
	// ErrSlugEmpty is returned when no valid slug could be derived from the title.
	ErrSlugEmpty = errors.New("page slug cannot be empty")
	// ErrSlugExists is returned when the derived slug is already taken.
	ErrSlugExists = errors.New("page slug already exists")
	// ErrInvalidStatus is returned when the status is not a known value.
	ErrInvalidStatus = errors.New("page status must be draft or published")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// CreateInput holds the fields accepted when creating a page.
type CreateInput struct {
	Title   string
	Slug    string
	Content string
	Status  models.Status
}

// UpdateInput holds the fields accepted when updating a page.
// Nil fields are left unchanged.
type UpdateInput struct {
	Title   *string
	Slug    *string
	Content *string
	Status  *models.Status
}

// Get retrieves a page by its ID.
func Get(db *gorm.DB, id uint64) (*models.Page, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var page models.Page
	result := db.First(&page, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, result.Error
	}

	return &page, nil
}

// GetBySlug retrieves a page by its slug.
func GetBySlug(db *gorm.DB, pageSlug string) (*models.Page, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var page models.Page
	result := db.Where(slugQueryPattern, pageSlug).First(&page)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, result.Error
	}

	return &page, nil
}

// List retrieves all pages, newest first.
func List(db *gorm.DB) ([]models.Page, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var pages []models.Page
	result := db.Order("created_at DESC").Find(&pages)
	if result.Error != nil {
		return nil, result.Error
	}

	return pages, nil
}

// ListPublished retrieves the published pages, newest first.
func ListPublished(db *gorm.DB) ([]models.Page, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var pages []models.Page
	result := db.Where(statusQueryPattern, models.StatusPublished).Order("created_at DESC").Find(&pages)
	if result.Error != nil {
		return nil, result.Error
	}

	return pages, nil
}

// Create creates a new page. The slug is derived from the title when not
// supplied and the status defaults to published.
func Create(db *gorm.DB, in CreateInput) (*models.Page, error) {
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
		in.Status = models.StatusPublished
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
	var existing models.Page
	result := db.Where(slugQueryPattern, in.Slug).First(&existing)
	if result.Error == nil {
		return nil, ErrSlugExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	page := &models.Page{
		Title:   in.Title,
		Slug:    in.Slug,
		Content: in.Content,
		Status:  in.Status,
	}

	result = db.Create(page)
	if result.Error != nil {
		return nil, result.Error
	}

	return page, nil
}

// Update applies a partial update to an existing page.
func Update(db *gorm.DB, id uint64, in UpdateInput) (*models.Page, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var page models.Page
	result := db.First(&page, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, result.Error
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, ErrTitleEmpty
		}

		page.Title = *in.Title
	}

	if in.Content != nil {
		if *in.Content == "" {
			return nil, ErrContentEmpty
		}

		page.Content = *in.Content
	}

	if in.Slug != nil && *in.Slug != page.Slug {
		if !slug.IsValid(*in.Slug) {
			return nil, ErrSlugEmpty
		}

		// Check if the new slug is already taken
		var existing models.Page
		result = db.Where(slugQueryPattern, *in.Slug).First(&existing)
		if result.Error == nil {
			return nil, ErrSlugExists
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}

		page.Slug = *in.Slug
	}

	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, ErrInvalidStatus
		}

		page.Status = *in.Status
	}

	page.UpdatedAt = time.Now()

	result = db.Save(&page)
	if result.Error != nil {
		return nil, result.Error
	}

	return &page, nil
}

// Delete deletes a page by ID.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Page{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPageNotFound
	}

	return nil
}

// Count returns the total number of pages.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	if err := db.Model(&models.Page{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// CountPublished returns the number of published pages.
func CountPublished(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	err := db.Model(&models.Page{}).Where(statusQueryPattern, models.StatusPublished).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
