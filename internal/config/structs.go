package config

import (
	"time"

	"github.com/quillpress/quillpress/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode     bool // enable dev mode for development
	DB          DB
	Log         logger.Log
	Title       string
	Webserver   Webserver
	ObjectStore ObjectStore
	Auth        Auth
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic  bool    // enable static file browsing (for development purposes only)
	Domain        string  // domain name for the webserver
	Port          int     // listening port for the webserver
	ShutDownTime  int     // wait time for shutdown
	URL           string  // base url for the webserver
	APIKey        string  // shared secret required on mutating API requests (X-API-Key)
	AdminPassword string  // initial password for the seeded admin user
	Session       Session // session settings
}

// ObjectStore holds the S3-compatible object storage settings for media uploads.
type ObjectStore struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// OIDCAuth holds the optional OpenID Connect login settings.
type OIDCAuth struct {
	Enabled      bool
	ProviderURL  string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Auth groups the authentication settings.
type Auth struct {
	OIDC OIDCAuth
}
