// Package setting provides access to the site settings key value store.
package setting

import (
	"errors"

	"gorm.io/gorm"

	"github.com/quillpress/quillpress/internal/db/models"
)

const keyQueryPattern = "key = ?"

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrKeyEmpty is returned when the setting key is empty.
	ErrKeyEmpty = errors.New("setting key cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a setting by its key.
func Get(db *gorm.DB, key string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var setting models.Setting
	result := db.Where(keyQueryPattern, key).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, result.Error
	}

	return &setting, nil
}

// GetAll retrieves all settings as a key value map.
func GetAll(db *gorm.DB) (map[string]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.Setting
	result := db.Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	all := make(map[string]string, len(settings))
	for _, s := range settings {
		all[s.Key] = s.Value
	}

	return all, nil
}

// Set stores a setting, creating it when missing and updating it otherwise.
func Set(db *gorm.DB, key, value string) error {
	if db == nil {
		return ErrDBNil
	}
	if key == "" {
		return ErrKeyEmpty
	}

	var setting models.Setting
	result := db.Where(keyQueryPattern, key).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return db.Create(&models.Setting{Key: key, Value: value}).Error
		}
		return result.Error
	}

	setting.Value = value

	return db.Save(&setting).Error
}

// SetAll upserts every entry of the given map in one transaction.
func SetAll(db *gorm.DB, settings map[string]string) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for key, value := range settings {
			if err := Set(tx, key, value); err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes a setting by its key.
func Delete(db *gorm.DB, key string) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Where(keyQueryPattern, key).Delete(&models.Setting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}
