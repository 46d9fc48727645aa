// Package media proxies uploaded objects between HTTP clients and the
// object store.
package media

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/config"
	"github.com/quillpress/quillpress/internal/storage"
	"github.com/quillpress/quillpress/internal/web/handler"
)

// Path is the base path of the media proxy.
const Path = "/media"

// DefaultContentType is used when the client does not declare one.
const DefaultContentType = "application/octet-stream"

// Service is the media proxy handler service.
type Service struct {
	cfg   *config.Config
	store storage.ObjectStore
}

// Handler is the media proxy handler.
var Handler = Service{}

// Init initializes the media proxy handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, store storage.ObjectStore) error {
	if app == nil || cfg == nil || store == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.store = store

	app.Put(Path+"/+", auth.RequireAPIKey(cfg.Webserver.APIKey), s.Put)
	app.Get(Path+"/+", s.Get)

	return nil
}

// Put stores the request body under the given object key.
func (s *Service) Put(c *fiber.Ctx) error {
	key, err := objectKey(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid object key"})
	}

	contentType := c.Get(fiber.HeaderContentType)
	if contentType == "" {
		contentType = DefaultContentType
	}

	url, err := s.store.Put(c.Context(), key, c.Body(), contentType)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to store object")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{
		"objectKey": key,
		"url":       url,
	})
}

// Get streams an object back to the client with its stored content type.
func (s *Service) Get(c *fiber.Ctx) error {
	key, err := objectKey(c)
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}

	data, contentType, err := s.store.Get(c.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}

		log.Error().Err(err).Str("key", key).Msg("failed to read object")

		return c.SendStatus(fiber.StatusInternalServerError)
	}

	if contentType == "" {
		contentType = DefaultContentType
	}

	c.Set(fiber.HeaderContentType, contentType)

	return c.Send(data)
}

// objectKey extracts and decodes the wildcard key from the request path.
func objectKey(c *fiber.Ctx) (string, error) {
	key, err := url.PathUnescape(c.Params("+"))
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", storage.ErrKeyEmpty
	}

	return key, nil
}
