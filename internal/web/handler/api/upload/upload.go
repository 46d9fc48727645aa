// Package upload provides the endpoint that hands out media upload targets.
package upload

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/config"
	"github.com/quillpress/quillpress/internal/storage"
	"github.com/quillpress/quillpress/internal/web/handler"
	"github.com/quillpress/quillpress/internal/web/handler/media"
)

// Path is the path of the upload URL API.
const Path = "/api/upload-url"

// Request is the JSON body naming the file to be uploaded.
type Request struct {
	Filename string `json:"filename" validate:"required"`
}

// Service is the upload URL handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the upload URL handler.
var Handler = Service{}

// Init initializes the upload URL handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()

	app.Post(Path, auth.RequireAPIKey(cfg.Webserver.APIKey), s.Post)

	return nil
}

// Post derives a unique object key for the named file and returns the
// matching media URL the client should PUT the bytes to.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "filename is required"})
	}

	key := storage.ObjectKey(req.Filename)

	return c.JSON(fiber.Map{
		"url":       media.Path + "/" + key,
		"objectKey": key,
	})
}
