// Package web assembles the fiber application serving the JSON API, the
// media proxy and the HTML pages.
package web

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/quillpress/quillpress/internal/config"
	fiberlogger "github.com/quillpress/quillpress/internal/logger/adapter/fiber"
	"github.com/quillpress/quillpress/internal/storage"
	"github.com/quillpress/quillpress/internal/web/handler/admin"
	apilogin "github.com/quillpress/quillpress/internal/web/handler/api/login"
	"github.com/quillpress/quillpress/internal/web/handler/api/pages"
	"github.com/quillpress/quillpress/internal/web/handler/api/posts"
	"github.com/quillpress/quillpress/internal/web/handler/api/settings"
	"github.com/quillpress/quillpress/internal/web/handler/api/stats"
	"github.com/quillpress/quillpress/internal/web/handler/api/themes"
	"github.com/quillpress/quillpress/internal/web/handler/api/upload"
	"github.com/quillpress/quillpress/internal/web/handler/blog"
	"github.com/quillpress/quillpress/internal/web/handler/dashboard"
	"github.com/quillpress/quillpress/internal/web/handler/login"
	"github.com/quillpress/quillpress/internal/web/handler/logout"
	"github.com/quillpress/quillpress/internal/web/handler/media"
	"github.com/quillpress/quillpress/internal/web/handler/oidc"
	authmiddleware "github.com/quillpress/quillpress/internal/web/middleware/auth"
)

// CheckAlivePath answers load balancer health checks.
const CheckAlivePath = "/checkalive"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	store        storage.ObjectStore
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	s.alive.Store(true)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB, store storage.ObjectStore) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	// Add template helper functions
	templateEngine.AddFunc("iterate", func(count int) []int {
		result := make([]int, count)
		for i := range result {
			result[i] = i
		}

		return result
	})
	templateEngine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	templateEngine.AddFunc("sub", func(a, b int) int {
		return a - b
	})

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
		},
	)

	service := &Service{
		cfg:   cfg,
		App:   app,
		db:    db,
		store: store,
	}

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// access log
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	// session middleware for the HTML admin surface
	app.Use(authmiddleware.Middleware)

	// init handlers (they register their own routes)
	initHandlers(app, cfg, db, store)

	return service
}

func initHandlers(app *fiber.App, cfg *config.Config, db *gorm.DB, store storage.ObjectStore) {
	// API surface first, HTML pages after; route registration order is
	// fiber's match order.
	inits := []struct {
		name string
		fn   func() error
	}{
		{"posts", func() error { return posts.Handler.Init(app, cfg, db) }},
		{"pages", func() error { return pages.Handler.Init(app, cfg, db) }},
		{"themes", func() error { return themes.Handler.Init(app, cfg, db) }},
		{"settings", func() error { return settings.Handler.Init(app, cfg, db) }},
		{"stats", func() error { return stats.Handler.Init(app, cfg, db) }},
		{"apilogin", func() error { return apilogin.Handler.Init(app, cfg, db) }},
		{"upload", func() error { return upload.Handler.Init(app, cfg, db) }},
		{"media", func() error { return media.Handler.Init(app, cfg, store) }},
		{"login", func() error { return login.Handler.Init(app, cfg, db) }},
		{"dashboard", func() error { return dashboard.Handler.Init(app, cfg, db) }},
		{"admin", func() error { return admin.Handler.Init(app, cfg, db) }},
		{"blog", func() error { return blog.Handler.Init(app, cfg, db) }},
	}

	for _, h := range inits {
		if err := h.fn(); err != nil {
			log.Fatal().Err(err).Msg(fmt.Sprintf("failed to init %s handler", h.name))
		}
	}

	logout.Handler.Init(app, cfg)
	oidc.Handler.Init(app, cfg, db)
}
