// Package daemon boots the application: logging, database, object store,
// session storage and the web service.
package daemon

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	sessionsqlite "github.com/gofiber/storage/sqlite3/v2"
	"github.com/gofiber/storage"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/quillpress/quillpress/internal/config"
	"github.com/quillpress/quillpress/internal/db/dsn"
	"github.com/quillpress/quillpress/internal/db/models"
	"github.com/quillpress/quillpress/internal/logger"
	objectstore "github.com/quillpress/quillpress/internal/storage"
	"github.com/quillpress/quillpress/internal/web"
	"github.com/quillpress/quillpress/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	logger.Init(cfg.Log)

	db, err := gorm.Open(openDialector(cfg), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Page{},
		&models.Theme{},
		&models.Setting{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	seed(cfg, db)

	session.Init(sessionStorage(cfg))

	store, err := objectstore.NewMinIOStore(context.Background(), cfg.ObjectStore)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect object store")
	}

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db, store),
	}
}

// openDialector picks the gorm driver for the configured engine.
func openDialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DB.Engine {
	case config.EnginePostgres:
		return gormpostgres.Open(dsn.CreatePostgres(cfg))
	case config.EngineMySQL:
		return gormmysql.Open(dsn.CreateMySQL(cfg))
	case config.EngineSQLite, "":
		return sqlite.Open(dsn.CreateSQLite(cfg))
	default:
		log.Fatal().Str("engine", cfg.DB.Engine).Msg("unknown database engine")
		return nil
	}
}

// sessionStorage picks the session backend matching the database engine so a
// deployment needs no extra infrastructure for sessions.
func sessionStorage(cfg *config.Config) storage.Storage {
	const table = "sessions"

	switch cfg.DB.Engine {
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.CreatePostgres(cfg),
			Table:         table,
		})
	case config.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.CreateMySQL(cfg),
			Table:         table,
		})
	default:
		return sessionsqlite.New(sessionsqlite.Config{
			Database: dsn.CreateSQLite(cfg),
			Table:    table,
		})
	}
}
