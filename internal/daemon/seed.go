package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/quillpress/quillpress/internal/config"
	"github.com/quillpress/quillpress/internal/db/models"
)

// defaultSettings are created once on an empty settings table.
var defaultSettings = map[string]string{
	"site_title":       "My Blog",
	"site_description": "Just another blog",
	"theme":            "default",
	"posts_per_page":   "10",
}

// seed creates the initial admin user, the default settings and a default
// theme on first start. Existing rows are never touched.
func seed(cfg *config.Config, db *gorm.DB) {
	var count int64

	db.Model(&models.User{}).Count(&count)
	if count == 0 {
		password := cfg.Webserver.AdminPassword
		if password == "" {
			password = "changeme"
			log.Warn().Msg("no admin password configured, seeding admin user with default password")
		}

		db.Create(
			&models.User{
				Username: "admin",
				Email:    "admin@" + cfg.Webserver.Domain,
				Password: models.HashPassword(password),
				Active:   true,
				Role:     models.RoleAdmin,
			},
		)

		log.Info().Msg("seeded admin user")
	}

	db.Model(&models.Setting{}).Count(&count)
	if count == 0 {
		for key, value := range defaultSettings {
			db.Create(&models.Setting{Key: key, Value: value})
		}

		log.Info().Msg("seeded default settings")
	}

	db.Model(&models.Theme{}).Count(&count)
	if count == 0 {
		db.Create(&models.Theme{
			Name:     "Default",
			Slug:     "default",
			IsActive: true,
		})

		log.Info().Msg("seeded default theme")
	}
}
