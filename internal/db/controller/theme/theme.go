// Package theme provides CRUD operations for themes and theme activation.
package theme

import (
	"errors"

	"gorm.io/gorm"

	"github.com/quillpress/quillpress/internal/db/models"
	"github.com/quillpress/quillpress/internal/slug"
)

const (
	slugQueryPattern   = "slug = ?"
	activeQueryPattern = "is_active = ?"
)

var (
	// ErrThemeNotFound is returned when a theme is not found.
	ErrThemeNotFound = errors.New("theme not found")
	// ErrNameEmpty is returned when attempting to create a theme without a name.
	ErrNameEmpty = errors.New("theme name cannot be empty")
	// ErrSlugEmpty is returned when no valid slug could be derived from the name.
	ErrSlugEmpty = errors.New("theme slug cannot be empty")
	// ErrSlugExists is returned when the derived slug is already taken.
	ErrSlugExists = errors.New("theme slug already exists")
	// ErrThemeActive is returned when attempting to delete the active theme.
	ErrThemeActive = errors.New("cannot delete the active theme")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// CreateInput holds the fields accepted when creating a theme.
type CreateInput struct {
	Name     string
	Slug     string
	Styles   string
	Template string
}

// UpdateInput holds the fields accepted when updating a theme.
// Nil fields are left unchanged.
type UpdateInput struct {
	Name     *string
	Styles   *string
	Template *string
}

// Get retrieves a theme by its ID.
func Get(db *gorm.DB, id uint64) (*models.Theme, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var theme models.Theme
	result := db.First(&theme, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrThemeNotFound
		}
		return nil, result.Error
	}

	return &theme, nil
}

// List retrieves all themes ordered by name.
func List(db *gorm.DB) ([]models.Theme, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var themes []models.Theme
	result := db.Order("name ASC").Find(&themes)
	if result.Error != nil {
		return nil, result.Error
	}

	return themes, nil
}

// Active retrieves the currently active theme.
func Active(db *gorm.DB) (*models.Theme, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var theme models.Theme
	result := db.Where(activeQueryPattern, true).First(&theme)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrThemeNotFound
		}
		return nil, result.Error
	}

	return &theme, nil
}

// Create creates a new theme. The slug is derived from the name when not
// supplied. New themes are created inactive.
func Create(db *gorm.DB, in CreateInput) (*models.Theme, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if in.Name == "" {
		return nil, ErrNameEmpty
	}

	if in.Slug == "" {
		in.Slug = slug.Make(in.Name)
	}
	if !slug.IsValid(in.Slug) {
		return nil, ErrSlugEmpty
	}

	// Check if the slug is already taken
	var existing models.Theme
	result := db.Where(slugQueryPattern, in.Slug).First(&existing)
	if result.Error == nil {
		return nil, ErrSlugExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	theme := &models.Theme{
		Name:     in.Name,
		Slug:     in.Slug,
		Styles:   in.Styles,
		Template: in.Template,
	}

	result = db.Create(theme)
	if result.Error != nil {
		return nil, result.Error
	}

	return theme, nil
}

// Update applies a partial update to an existing theme. The slug and the
// active flag are not touched here, activation goes through Activate.
func Update(db *gorm.DB, id uint64, in UpdateInput) (*models.Theme, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var theme models.Theme
	result := db.First(&theme, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrThemeNotFound
		}
		return nil, result.Error
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, ErrNameEmpty
		}

		theme.Name = *in.Name
	}

	if in.Styles != nil {
		theme.Styles = *in.Styles
	}

	if in.Template != nil {
		theme.Template = *in.Template
	}

	result = db.Save(&theme)
	if result.Error != nil {
		return nil, result.Error
	}

	return &theme, nil
}

// Activate marks the given theme active and deactivates all others. Both
// writes happen in one transaction so there is never a moment with zero or
// two active themes.
func Activate(db *gorm.DB, id uint64) (*models.Theme, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var theme models.Theme
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.First(&theme, id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrThemeNotFound
			}
			return result.Error
		}

		err := tx.Model(&models.Theme{}).
			Where(activeQueryPattern, true).
			Update("is_active", false).Error
		if err != nil {
			return err
		}

		theme.IsActive = true

		return tx.Model(&theme).Update("is_active", true).Error
	})
	if err != nil {
		return nil, err
	}

	return &theme, nil
}

// Delete deletes a theme by ID. The active theme cannot be deleted.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	theme, err := Get(db, id)
	if err != nil {
		return err
	}
	if theme.IsActive {
		return ErrThemeActive
	}

	return db.Delete(&models.Theme{}, id).Error
}
