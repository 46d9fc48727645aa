// Package themes provides the JSON API handlers for themes.
package themes

import (
	"errors"
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/config"
	"github.com/quillpress/quillpress/internal/db/controller/theme"
	"github.com/quillpress/quillpress/internal/web/handler"
)

// Path is the base path of the themes API.
const Path = "/api/themes"

// Request is the JSON body accepted by the create and update endpoints.
type Request struct {
	Name     *string `json:"name"`
	Slug     *string `json:"slug"`
	Styles   *string `json:"styles"`
	Template *string `json:"template"`
}

// Service is the themes API handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the themes API handler.
var Handler = Service{}

// Init initializes the themes API handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	requireKey := auth.RequireAPIKey(cfg.Webserver.APIKey)

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.List)
		router.Post(handler.RouterRootPath, requireKey, s.Create)
		router.Put("/:id", requireKey, s.Update)
		router.Post("/:id/activate", requireKey, s.Activate)
		router.Delete("/:id", requireKey, s.Delete)
	})

	return nil
}

// List returns all themes with the active theme first.
func (s *Service) List(c *fiber.Ctx) error {
	themes, err := theme.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list themes")
		return internalError(c)
	}

	sort.SliceStable(themes, func(i, j int) bool {
		return themes[i].IsActive && !themes[j].IsActive
	})

	return c.JSON(themes)
}

// Create creates a new theme.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return badRequest(c, "invalid request body")
	}

	in := theme.CreateInput{}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Slug != nil {
		in.Slug = *req.Slug
	}
	if req.Styles != nil {
		in.Styles = *req.Styles
	}
	if req.Template != nil {
		in.Template = *req.Template
	}

	created, err := theme.Create(s.db, in)
	if err != nil {
		if isValidationError(err) {
			return badRequest(c, err.Error())
		}

		log.Error().Err(err).Msg("failed to create theme")

		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Update applies a partial update to a theme. The slug is fixed at creation;
// a body carrying one is rejected.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c)
	}

	req := new(Request)
	if err = c.BodyParser(req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.Slug != nil {
		return badRequest(c, "theme slug cannot be changed")
	}

	updated, err := theme.Update(s.db, id, theme.UpdateInput{
		Name:     req.Name,
		Styles:   req.Styles,
		Template: req.Template,
	})
	if err != nil {
		if errors.Is(err, theme.ErrThemeNotFound) {
			return notFound(c)
		}

		if isValidationError(err) {
			return badRequest(c, err.Error())
		}

		log.Error().Err(err).Uint64("id", id).Msg("failed to update theme")

		return internalError(c)
	}

	return c.JSON(updated)
}

// Activate makes the given theme the site theme.
func (s *Service) Activate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c)
	}

	if _, err = theme.Activate(s.db, id); err != nil {
		if errors.Is(err, theme.ErrThemeNotFound) {
			return notFound(c)
		}

		log.Error().Err(err).Uint64("id", id).Msg("failed to activate theme")

		return internalError(c)
	}

	return c.JSON(fiber.Map{"success": true})
}

// Delete deletes a theme.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c)
	}

	if err = theme.Delete(s.db, id); err != nil {
		if errors.Is(err, theme.ErrThemeNotFound) {
			return notFound(c)
		}

		if errors.Is(err, theme.ErrThemeActive) {
			return badRequest(c, err.Error())
		}

		log.Error().Err(err).Uint64("id", id).Msg("failed to delete theme")

		return internalError(c)
	}

	return c.JSON(fiber.Map{"deleted": id})
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}

func isValidationError(err error) bool {
	return errors.Is(err, theme.ErrNameEmpty) ||
		errors.Is(err, theme.ErrSlugEmpty) ||
		errors.Is(err, theme.ErrSlugExists)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
}
