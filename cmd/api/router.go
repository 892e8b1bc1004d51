package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/cache"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/config"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/handler"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/health"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/metrics"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/middleware"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/service"
)

// store is everything the HTTP layer needs from the database.
type store interface {
	service.UserStore
	service.LogStore
	handler.DBStatusReader
	health.Pinger
}

// newApp wires services and handlers over st and c, and returns the router.
// c is nil when no cache is configured.
func newApp(cfg *config.Config, logger *slog.Logger, st store, c *cache.Cache, prom *metrics.Prometheus) (http.Handler, error) {
	// Keep nil interfaces nil: a nil *cache.Cache inside an interface would
	// look configured.
	var (
		userCache      service.UserCache
		cacheInspector handler.CacheInspector
		cachePinger    health.Pinger
	)
	if c != nil {
		userCache = c
		cacheInspector = c
		cachePinger = c
	}

	userService := service.NewUserService(st, userCache, prom, logger)
	logService := service.NewLogService(st)

	aggregator := health.NewAggregator(
		health.Options{
			Environment: cfg.AppEnv,
			Version:     cfg.AppVersion,
			Memory:      health.NewProcessMemory(),
		},
		health.Probe{Name: "database", Pinger: st},
		health.Probe{Name: "redis", Pinger: cachePinger},
	)

	routes := routeHandlers{
		base:    handler.New(),
		health:  handler.NewHealthHandler(aggregator, logger),
		users:   handler.NewUserHandler(userService, logger),
		logs:    handler.NewLogHandler(logService, logger),
		status:  handler.NewStatusHandler(st, cacheInspector, logger),
		metrics: prom.Handler(),
	}

	return setupRouter(cfg, logger, prom, routes)
}

type routeHandlers struct {
	base    *handler.Handler
	health  *handler.HealthHandler
	users   *handler.UserHandler
	logs    *handler.LogHandler
	status  *handler.StatusHandler
	metrics http.Handler
}

// setupRouter configures the chi router with all routes and middleware.
// Middleware order, outermost first: client IP, request ID, security headers,
// CORS, body limit, compression, access log, metrics, in-flight gauge, panic
// boundary.
func setupRouter(cfg *config.Config, logger *slog.Logger, recorder metrics.Recorder, h routeHandlers) (*chi.Mux, error) {
	compress, err := middleware.Compress(0)
	if err != nil {
		return nil, err
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.GetCORSAllowedOrigins()

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))
	r.Use(middleware.CORS(cors))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
	r.Use(compress)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(recorder))
	r.Use(middleware.Connections(recorder))
	r.Use(middleware.Recoverer(logger, middleware.RecovererConfig{ExposeErrors: cfg.IsDevelopment()}))

	r.Get("/health", h.health.Health)
	r.Get("/healthz", h.health.Healthz)
	r.Method(http.MethodGet, "/metrics", h.metrics)

	r.Get("/api/users", h.users.List)
	r.Post("/api/users", h.users.Create)
	r.Get("/api/users/cached", h.users.ListCached)

	r.Get("/api/logs", h.logs.List)
	r.Post("/api/logs", h.logs.Create)

	r.Get("/api/db/status", h.status.Database)
	r.Get("/api/redis/status", h.status.Cache)
	r.Get("/api/cache/status", h.status.Cache)

	r.NotFound(h.base.NotFound)
	// A known path with an unsupported method is not a route either.
	r.MethodNotAllowed(h.base.NotFound)

	return r, nil
}
