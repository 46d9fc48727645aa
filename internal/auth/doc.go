// Package auth provides authentication for the application.
//
// Two authentication surfaces exist:
//   - Local database authentication with Argon2id password hashing, used by
//     the login form and the /api/login credential check.
//   - An X-API-Key shared secret, used by the JSON API for mutating requests.
//
// An optional OpenID Connect (OIDC) provider can be enabled through
// configuration to sign in against an external identity provider. OIDC users
// are matched to local accounts by email and created on first login.
//
// Example usage:
//
//	provider := auth.NewLocalProvider(db)
//	user, err := provider.Authenticate(username, password)
//
//	api := app.Group("/api")
//	api.Post("/posts", auth.RequireAPIKey(cfg.Webserver.APIKey), createPost)
package auth
