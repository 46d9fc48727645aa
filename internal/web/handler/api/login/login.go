// Package login provides the JSON credential check endpoint.
package login

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/config"
	"github.com/quillpress/quillpress/internal/web/handler"
)

// Path is the path of the login API.
const Path = "/api/login"

// Request is the credential payload.
type Request struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Service is the login API handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	provider  *auth.LocalProvider
	validator *validator.Validate
}

// Handler is the login API handler.
var Handler = Service{}

// Init initializes the login API handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.provider = auth.NewLocalProvider(db)
	s.validator = validator.New()

	// credential check only, no session is issued here
	app.Get(Path, s.Check)
	app.Post(Path, s.Check)

	return nil
}

// Check verifies the submitted credentials. The response echoes the user
// without the password hash, the model's json tags keep it out.
func (s *Service) Check(c *fiber.Ctx) error {
	req := new(Request)

	if c.Method() == fiber.MethodGet {
		req.Username = c.Query("username")
		req.Password = c.Query("password")
	} else if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid username or password",
		})
	}

	user, err := s.provider.Authenticate(req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrUserNotFound) &&
			!errors.Is(err, auth.ErrInvalidPassword) &&
			!errors.Is(err, auth.ErrUserAccountDisabled) {
			log.Error().Err(err).Msg("credential check failed")
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid username or password",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}
