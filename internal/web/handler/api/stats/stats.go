// Package stats provides the JSON API handler for site statistics.
package stats

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/quillpress/quillpress/internal/config"
	"github.com/quillpress/quillpress/internal/db/controller/page"
	"github.com/quillpress/quillpress/internal/db/controller/post"
	"github.com/quillpress/quillpress/internal/db/controller/theme"
	"github.com/quillpress/quillpress/internal/web/handler"
)

// Path is the path of the stats API.
const Path = "/api/stats"

// Response is the stats payload.
type Response struct {
	TotalPosts     int64  `json:"totalPosts"`
	PublishedPosts int64  `json:"publishedPosts"`
	TotalPages     int64  `json:"totalPages"`
	ActiveTheme    string `json:"activeTheme"`
}

// Service is the stats API handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the stats API handler.
var Handler = Service{}

// Init initializes the stats API handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.Get)

	return nil
}

// Get returns the content counters and the active theme name.
func (s *Service) Get(c *fiber.Ctx) error {
	resp, err := Collect(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to collect stats")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(resp)
}

// Collect gathers the statistics. Shared with the HTML dashboard.
func Collect(db *gorm.DB) (*Response, error) {
	totalPosts, err := post.Count(db)
	if err != nil {
		return nil, err
	}

	publishedPosts, err := post.CountPublished(db)
	if err != nil {
		return nil, err
	}

	totalPages, err := page.Count(db)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		TotalPosts:     totalPosts,
		PublishedPosts: publishedPosts,
		TotalPages:     totalPages,
	}

	active, err := theme.Active(db)
	switch {
	case errors.Is(err, theme.ErrThemeNotFound):
		// no active theme yet, leave the name empty
	case err != nil:
		return nil, err
	default:
		resp.ActiveTheme = active.Name
	}

	return resp, nil
}
