// Package pages provides the JSON API handlers for static pages.
package pages

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/config"
	"github.com/quillpress/quillpress/internal/db/controller/page"
	"github.com/quillpress/quillpress/internal/db/models"
	"github.com/quillpress/quillpress/internal/web/handler"
)

// Path is the base path of the pages API.
const Path = "/api/pages"

// Request is the JSON body accepted by the create and update endpoints.
type Request struct {
	Title   *string        `json:"title"`
	Slug    *string        `json:"slug"`
	Content *string        `json:"content"`
	Status  *models.Status `json:"status"`
}

// Service is the pages API handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the pages API handler.
var Handler = Service{}

// Init initializes the pages API handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	requireKey := auth.RequireAPIKey(cfg.Webserver.APIKey)

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.List)
		router.Get("/:id", s.Get)
		router.Post(handler.RouterRootPath, requireKey, s.Create)
		router.Put("/:id", requireKey, s.Update)
		router.Delete("/:id", requireKey, s.Delete)
	})

	return nil
}

// List returns all pages.
func (s *Service) List(c *fiber.Ctx) error {
	pages, err := page.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list pages")
		return internalError(c)
	}

	return c.JSON(pages)
}

// Get returns a single page by ID.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c)
	}

	p, err := page.Get(s.db, id)
	if err != nil {
		if errors.Is(err, page.ErrPageNotFound) {
			return notFound(c)
		}

		log.Error().Err(err).Uint64("id", id).Msg("failed to get page")

		return internalError(c)
	}

	return c.JSON(p)
}

// Create creates a new page.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return badRequest(c, "invalid request body")
	}

	in := page.CreateInput{}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Slug != nil {
		in.Slug = *req.Slug
	}
	if req.Content != nil {
		in.Content = *req.Content
	}
	if req.Status != nil {
		in.Status = *req.Status
	}

	created, err := page.Create(s.db, in)
	if err != nil {
		if isValidationError(err) {
			return badRequest(c, err.Error())
		}

		log.Error().Err(err).Msg("failed to create page")

		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Update applies a partial update to a page.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c)
	}

	req := new(Request)
	if err = c.BodyParser(req); err != nil {
		return badRequest(c, "invalid request body")
	}

	updated, err := page.Update(s.db, id, page.UpdateInput{
		Title:   req.Title,
		Slug:    req.Slug,
		Content: req.Content,
		Status:  req.Status,
	})
	if err != nil {
		if errors.Is(err, page.ErrPageNotFound) {
			return notFound(c)
		}

		if isValidationError(err) {
			return badRequest(c, err.Error())
		}

		log.Error().Err(err).Uint64("id", id).Msg("failed to update page")

		return internalError(c)
	}

	return c.JSON(updated)
}

// Delete deletes a page.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c)
	}

	if err = page.Delete(s.db, id); err != nil {
		if errors.Is(err, page.ErrPageNotFound) {
			return notFound(c)
		}

		log.Error().Err(err).Uint64("id", id).Msg("failed to delete page")

		return internalError(c)
	}

	return c.JSON(fiber.Map{"deleted": id})
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}

func isValidationError(err error) bool {
	return errors.Is(err, page.ErrTitleEmpty) ||
		errors.Is(err, page.ErrContentEmpty) ||
		errors.Is(err, page.ErrSlugEmpty) ||
		errors.Is(err, page.ErrSlugExists) ||
		errors.Is(err, page.ErrInvalidStatus)
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
