// Package auth provides session middleware for the HTML admin surface.
//
// The public blog pages stay open, the middleware only guards the dashboard
// and admin routes. It validates the session cookie, adds the current user to
// fiber.Locals for template access and redirects unauthenticated requests to
// the login page. Logged in users visiting the login page are sent to the
// dashboard to avoid a pointless second login.
//
// Usage:
//
//	app.Use(authmiddleware.Middleware)
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/quillpress/quillpress/internal/web/handler/login"
	"github.com/quillpress/quillpress/internal/web/session"
)

// protectedPrefixes are the route prefixes that require a valid session.
var protectedPrefixes = []string{"/dashboard", "/admin"}

// Middleware is a Fiber middleware that checks for user authentication.
func Middleware(c *fiber.Ctx) error {
	var (
		isLoginPage = IsLoginPage(c)
		isProtected = IsProtectedPage(c)
	)

	if !isLoginPage && !isProtected {
		return c.Next()
	}

	// get session cookie
	loginCookie := c.Cookies("session")

	// if no session cookie, redirect to login page
	if loginCookie == "" {
		if isLoginPage {
			return c.Next()
		}

		return c.Redirect(login.Path)
	}

	// check session validity
	sessData := new(session.Data)
	if err := sessData.Read(loginCookie); err != nil {
		// If we're already on the login page, don't redirect (would cause loop)
		if isLoginPage {
			return c.Next()
		}

		return c.Redirect(login.Path)
	}

	if sessData.User.ID == 0 {
		if isLoginPage {
			return c.Next()
		}

		return c.Redirect(login.Path)
	}

	// Add the current user to locals for template access
	c.Locals("CurrentUser", sessData.User)

	if isLoginPage {
		return c.Redirect("/dashboard")
	}

	return c.Next()
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	originalURL := strings.ToLower(c.OriginalURL())
	return strings.HasPrefix(originalURL, login.Path)
}

// IsProtectedPage checks if the current request targets a protected prefix.
func IsProtectedPage(c *fiber.Ctx) bool {
	originalURL := strings.ToLower(c.OriginalURL())
	for _, prefix := range protectedPrefixes {
		if strings.HasPrefix(originalURL, prefix) {
			return true
		}
	}

	return false
}
