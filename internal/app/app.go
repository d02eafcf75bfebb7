// Package app assembles the catalog HTTP server from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventory/internal/access"
	"inventory/internal/cache"
	"inventory/internal/config"
	"inventory/internal/database"
	"inventory/internal/events"
	"inventory/internal/handlers"
	"inventory/internal/logger"
	"inventory/internal/metrics"
	"inventory/internal/middleware"
	"inventory/internal/report"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/internal/storage"
	"inventory/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Deps are the collaborators the HTTP server is built from. Nil optional
// integrations fall back to no-ops.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Logger   *logger.Logger
	Registry *prometheus.Registry
	Events   events.Publisher
	Stats    cache.StatsCache
	Images   storage.ImageStore
	// Now overrides the report clock; used by tests.
	Now func() time.Time
}

// App is a running catalog server and the connections it owns.
type App struct {
	cfg     *config.Config
	log     *logger.Logger
	server  *fiber.App
	closers []func() error
}

// New connects to the database and every configured integration, then
// builds the HTTP server. A configured integration that cannot be reached
// fails startup.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	if err := cfg.RequireSecret(); err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: log}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	})
	if err := database.Migrate(db); err != nil {
		return nil, multierr.Append(err, a.Close())
	}

	deps := Deps{Config: cfg, DB: db, Logger: log, Registry: prometheus.NewRegistry()}
	if err := a.connect(ctx, &deps); err != nil {
		return nil, multierr.Append(err, a.Close())
	}

	a.server = NewServer(deps)
	return a, nil
}

func (a *App) connect(ctx context.Context, deps *Deps) error {
	cfg := a.cfg

	if cfg.RabbitMQ.Enabled() {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL})
		if err != nil {
			return err
		}
		a.closers = append(a.closers, client.Close)
		deps.Events = events.NewBrokerPublisher(client)
		a.log.Info(ctx, "catalog events enabled")
	}

	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, client.Close)
		deps.Stats = cache.NewRedisStats(client, cfg.Redis.StatsTTL, a.log)
		a.log.Info(ctx, "stats cache enabled")
	}

	if cfg.MinIO.Enabled() {
		store, err := storage.NewMinIOStore(ctx, cfg.MinIO)
		if err != nil {
			return err
		}
		deps.Images = store
		a.log.Info(ctx, "image storage enabled")
	}
	return nil
}

// NewServer wires repositories, services and handlers into a Fiber app.
func NewServer(d Deps) *fiber.App {
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}
	if d.Events == nil {
		d.Events = events.Noop{}
	}
	if d.Stats == nil {
		d.Stats = cache.Noop{}
	}
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}
	d.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	catalogMetrics := metrics.NewCatalogMetrics(d.Registry)

	// Initialize Repositories
	productRepo := repositories.NewGORMProductRepository(d.DB)
	categoryRepo := repositories.NewGORMCategoryRepository(d.DB)
	userRepo := repositories.NewGORMUserRepository(d.DB)

	// Initialize Services
	policy := access.NewPolicy(d.Config.Catalog.AccessMode)
	productService := services.NewProductService(services.ProductDeps{
		Products:   productRepo,
		Categories: categoryRepo,
		Policy:     policy,
		Reports: report.NewGenerator(report.Options{
			CurrencyPrefix: d.Config.Catalog.CurrencyPrefix,
			PublicBaseURL:  d.Config.Catalog.PublicBaseURL,
			Now:            d.Now,
		}),
		Images:  d.Images,
		Events:  d.Events,
		Stats:   d.Stats,
		Metrics: catalogMetrics,
		Logger:  log,
	})
	categoryService := services.NewCategoryService(services.CategoryDeps{
		Categories: categoryRepo,
		Policy:     policy,
		Events:     d.Events,
		Stats:      d.Stats,
		Metrics:    catalogMetrics,
		Logger:     log,
	})
	dashboardService := services.NewDashboardService(productService, categoryService)
	authService := services.NewAuthService(userRepo, d.Config.JWT.Secret, d.Config.JWT.TTL)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService, log)
	productHandler := handlers.NewProductHandler(productService, log)
	categoryHandler := handlers.NewCategoryHandler(categoryService, log)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, log)

	app := fiber.New(fiber.Config{
		AppName:      "toko",
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log))

	app.Get("/health", healthHandler(d.DB))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService, log))
	authHandler.RegisterProtectedRoutes(protectedRoutes)
	dashboardHandler.RegisterRoutes(protectedRoutes)
	productHandler.RegisterRoutes(protectedRoutes)
	categoryHandler.RegisterRoutes(protectedRoutes)

	return app
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, code := "healthy", fiber.StatusOK
		if err := ping(c.UserContext(), db); err != nil {
			status, code = "unhealthy", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// errorHandler renders errors that escape handlers, such as unknown routes.
func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}
		log.Error(c.UserContext(), "unhandled error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
}

// Server returns the Fiber app.
func (a *App) Server() *fiber.App {
	return a.server
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info(a.log.WithField(ctx, "addr", a.cfg.App.Port), "starting server")
		errCh <- a.server.Listen(a.cfg.App.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.log.Info(ctx, "shutting down server")
	if err := a.server.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	a.log.Info(ctx, "server gracefully stopped")
	return nil
}

// Close releases every connection the app opened, newest first.
func (a *App) Close() error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, a.closers[i]())
	}
	a.closers = nil
	return err
}
