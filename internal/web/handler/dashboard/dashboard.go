// Package dashboard provides the dashboard handler showing site statistics.
package dashboard

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/quillpress/quillpress/internal/config"
	"github.com/quillpress/quillpress/internal/db/controller/post"
	"github.com/quillpress/quillpress/internal/db/models"
	"github.com/quillpress/quillpress/internal/web/handler"
	"github.com/quillpress/quillpress/internal/web/handler/api/stats"
	"github.com/quillpress/quillpress/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.RootPath + "dashboard"

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard/dashboard"

	// RecentPostCount is the number of recent posts listed on the dashboard.
	RecentPostCount = 5
)

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.Get)

	return nil
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Dashboard", "dashboard", "dashboard").
		AddBreadcrumb("Dashboard", Path, true)

	siteStats, err := stats.Collect(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to collect dashboard stats")
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	posts, err := post.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list posts for dashboard")
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	if len(posts) > RecentPostCount {
		posts = posts[:RecentPostCount]
	}

	return c.Render(TemplateName, fiber.Map{
		"Nav":         nav,
		"Stats":       siteStats,
		"RecentPosts": posts,
		"CurrentUser": c.Locals("CurrentUser"),
		"StatusDraft": models.StatusDraft,
	}, handler.BaseLayout)
}
