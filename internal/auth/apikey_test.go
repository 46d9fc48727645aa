package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		provided   string
		wantStatus int
	}{
		{name: "valid key", configured: "secret-key", provided: "secret-key", wantStatus: fiber.StatusOK},
		{name: "missing key", configured: "secret-key", provided: "", wantStatus: fiber.StatusUnauthorized},
		{name: "wrong key", configured: "secret-key", provided: "other", wantStatus: fiber.StatusUnauthorized},
		{name: "empty configured key rejects everything", configured: "", provided: "", wantStatus: fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Post("/protected", RequireAPIKey(tt.configured), func(c *fiber.Ctx) error {
				return c.SendString("ok")
			})

			req := httptest.NewRequest(fiber.MethodPost, "http://example.com/protected", nil)
			if tt.provided != "" {
				req.Header.Set(HeaderAPIKey, tt.provided)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
