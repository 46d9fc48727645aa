// Package blog provides the public HTML blog pages.
package blog

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/quillpress/quillpress/internal/config"
	"github.com/quillpress/quillpress/internal/db/controller/page"
	"github.com/quillpress/quillpress/internal/db/controller/post"
	"github.com/quillpress/quillpress/internal/db/controller/setting"
	"github.com/quillpress/quillpress/internal/db/controller/theme"
	"github.com/quillpress/quillpress/internal/db/models"
	"github.com/quillpress/quillpress/internal/web/handler"
)

const (
	// IndexTemplateName is the template of the blog index.
	IndexTemplateName = "blog/index"

	// PostTemplateName is the template of a single post.
	PostTemplateName = "blog/post"

	// PageTemplateName is the template of a static page.
	PageTemplateName = "blog/page"

	// DefaultPostsPerPage caps the index when the setting is absent or bad.
	DefaultPostsPerPage = 10
)

// Service is the public blog handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the public blog handler.
var Handler = Service{}

// Init initializes the public blog handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Get(handler.RootPath, s.Index)
	app.Get("/post/:slug", s.Post)
	app.Get("/blog/:slug", s.Post)
	app.Get("/page/:slug", s.Page)

	return nil
}

// site loads the settings and active theme shared by every public page.
func (s *Service) site() fiber.Map {
	settings, err := setting.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings for public page")
		settings = map[string]string{}
	}

	data := fiber.Map{
		"SiteTitle":       settings["site_title"],
		"SiteDescription": settings["site_description"],
	}

	active, err := theme.Active(s.db)
	if err == nil {
		data["ThemeStyles"] = active.Styles
	} else if !errors.Is(err, theme.ErrThemeNotFound) {
		log.Error().Err(err).Msg("failed to load active theme")
	}

	return data
}

func (s *Service) postsPerPage() int {
	value, err := setting.Get(s.db, "posts_per_page")
	if err != nil {
		return DefaultPostsPerPage
	}

	n, err := strconv.Atoi(value.Value)
	if err != nil || n <= 0 {
		return DefaultPostsPerPage
	}

	return n
}

// Index renders the public blog index with the published posts.
func (s *Service) Index(c *fiber.Ctx) error {
	posts, err := post.ListPublished(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list published posts")
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	if limit := s.postsPerPage(); len(posts) > limit {
		posts = posts[:limit]
	}

	data := s.site()
	data["Posts"] = posts

	return c.Render(IndexTemplateName, data, handler.BaseLayout)
}

// Post renders a single published post by slug.
func (s *Service) Post(c *fiber.Ctx) error {
	p, err := post.GetBySlug(s.db, c.Params("slug"))
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Not Found")
		}

		log.Error().Err(err).Str("slug", c.Params("slug")).Msg("failed to load post")

		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	// drafts are not public
	if p.Status != models.StatusPublished {
		return c.Status(fiber.StatusNotFound).SendString("Not Found")
	}

	data := s.site()
	data["Post"] = p

	return c.Render(PostTemplateName, data, handler.BaseLayout)
}

// Page renders a static page by slug.
func (s *Service) Page(c *fiber.Ctx) error {
	p, err := page.GetBySlug(s.db, c.Params("slug"))
	if err != nil {
		if errors.Is(err, page.ErrPageNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Not Found")
		}

		log.Error().Err(err).Str("slug", c.Params("slug")).Msg("failed to load page")

		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	if p.Status != models.StatusPublished {
		return c.Status(fiber.StatusNotFound).SendString("Not Found")
	}

	data := s.site()
	data["Page"] = p

	return c.Render(PageTemplateName, data, handler.BaseLayout)
}
