package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// HeaderAPIKey is the request header carrying the shared API secret.
const HeaderAPIKey = "X-API-Key"

// RequireAPIKey creates Fiber middleware that requires the shared API secret
// in the X-API-Key header. The comparison is constant time.
func RequireAPIKey(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// An empty configured key locks the API down entirely
		if apiKey == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		provided := c.Get(HeaderAPIKey)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			log.Warn().Str("path", c.Path()).Str("ip", c.IP()).
				Msg("Rejected request with missing or invalid API key")

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		return c.Next()
	}
}
