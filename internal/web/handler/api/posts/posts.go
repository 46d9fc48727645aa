// Package posts provides the JSON API handlers for blog posts.
package posts

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/config"
	"github.com/quillpress/quillpress/internal/db/controller/post"
	"github.com/quillpress/quillpress/internal/db/models"
	"github.com/quillpress/quillpress/internal/web/handler"
)

const (
	// Path is the base path of the posts API.
	Path = "/api/posts"

	// AdminPath is the path of the admin listing.
	AdminPath = "/api/admin/posts"
)

// Request is the JSON body accepted by the create and update endpoints.
type Request struct {
	Title   *string        `json:"title"`
	Slug    *string        `json:"slug"`
	Content *string        `json:"content"`
	Excerpt *string        `json:"excerpt"`
	Status  *models.Status `json:"status"`
}

// Service is the posts API handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the posts API handler.
var Handler = Service{}

// Init initializes the posts API handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	requireKey := auth.RequireAPIKey(cfg.Webserver.APIKey)

	app.Get(AdminPath, requireKey, s.ListAll)

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.List)
		router.Get("/:id", s.Get)
		router.Post(handler.RouterRootPath, requireKey, s.Create)
		router.Put("/:id", requireKey, s.Update)
		router.Delete("/:id", requireKey, s.Delete)
	})

	return nil
}

// List returns the published posts.
func (s *Service) List(c *fiber.Ctx) error {
	posts, err := post.ListPublished(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list published posts")
		return internalError(c)
	}

	return c.JSON(posts)
}

// ListAll returns every post regardless of status.
func (s *Service) ListAll(c *fiber.Ctx) error {
	posts, err := post.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list posts")
		return internalError(c)
	}

	return c.JSON(posts)
}

// Get returns a single post by ID.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c)
	}

	p, err := post.Get(s.db, id)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return notFound(c)
		}

		log.Error().Err(err).Uint64("id", id).Msg("failed to get post")

		return internalError(c)
	}

	return c.JSON(p)
}

// Create creates a new post.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return badRequest(c, "invalid request body")
	}

	in := post.CreateInput{}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Slug != nil {
		in.Slug = *req.Slug
	}
	if req.Content != nil {
		in.Content = *req.Content
	}
	if req.Excerpt != nil {
		in.Excerpt = *req.Excerpt
	}
	if req.Status != nil {
		in.Status = *req.Status
	}

	created, err := post.Create(s.db, in)
	if err != nil {
		if isValidationError(err) {
			return badRequest(c, err.Error())
		}

		log.Error().Err(err).Msg("failed to create post")

		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Update applies a partial update to a post.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c)
	}

	req := new(Request)
	if err = c.BodyParser(req); err != nil {
		return badRequest(c, "invalid request body")
	}

	updated, err := post.Update(s.db, id, post.UpdateInput{
		Title:   req.Title,
		Slug:    req.Slug,
		Content: req.Content,
		Excerpt: req.Excerpt,
		Status:  req.Status,
	})
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return notFound(c)
		}

		if isValidationError(err) {
			return badRequest(c, err.Error())
		}

		log.Error().Err(err).Uint64("id", id).Msg("failed to update post")

		return internalError(c)
	}

	return c.JSON(updated)
}

// Delete deletes a post.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c)
	}

	if err = post.Delete(s.db, id); err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return notFound(c)
		}

		log.Error().Err(err).Uint64("id", id).Msg("failed to delete post")

		return internalError(c)
	}

	return c.JSON(fiber.Map{"deleted": id})
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}

func isValidationError(err error) bool {
	return errors.Is(err, post.ErrTitleEmpty) ||
		errors.Is(err, post.ErrContentEmpty) ||
		errors.Is(err, post.ErrSlugEmpty) ||
		errors.Is(err, post.ErrSlugExists) ||
		errors.Is(err, post.ErrInvalidStatus)
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
