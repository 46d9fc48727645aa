// Package admin provides the HTML post editor.
package admin

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/quillpress/quillpress/internal/config"
	"github.com/quillpress/quillpress/internal/db/controller/post"
	"github.com/quillpress/quillpress/internal/web/handler"
	"github.com/quillpress/quillpress/internal/web/navigation"
)

const (
	// Path is the path to the admin editor.
	Path = handler.RootPath + "admin"

	// TemplateName is the name of the editor template.
	TemplateName = "admin/editor"
)

// Service is the admin editor handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the admin editor handler.
var Handler = Service{}

// Init initializes the admin editor handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.Get)
	app.Get(Path+"/:id", s.Get)

	return nil
}

// Get renders the editor, blank for a new post or prefilled when an ID is
// given. Saving happens client side against the JSON API.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Editor", "admin", "editor").
		AddBreadcrumb("Dashboard", "/dashboard", false).
		AddBreadcrumb("Editor", Path, true)

	// The page sits behind the session middleware, so handing the key to
	// the editor script only exposes it to authenticated users.
	data := fiber.Map{
		"Nav":         nav,
		"CurrentUser": c.Locals("CurrentUser"),
		"APIKey":      s.cfg.Webserver.APIKey,
	}

	if rawID := c.Params("id"); rawID != "" {
		id, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusNotFound).SendString("Not Found")
		}

		p, err := post.Get(s.db, id)
		if err != nil {
			if errors.Is(err, post.ErrPostNotFound) {
				return c.Status(fiber.StatusNotFound).SendString("Not Found")
			}

			log.Error().Err(err).Uint64("id", id).Msg("failed to load post for editor")

			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		}

		data["Post"] = p
	}

	return c.Render(TemplateName, data, handler.BaseLayout)
}
