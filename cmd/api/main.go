// Package main is the entrypoint for the demo API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/cache"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/config"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/metrics"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/repository"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/server"
)

// startupTimeout bounds the initial database and cache connections.
const startupTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	repoOpts := repository.DefaultOptions()
	repoOpts.MaxConns = cfg.DBMaxConns

	dbURL := cfg.DatabaseURL()
	repo, err := repository.New(ctx, dbURL, repoOpts)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, dbURL, cfg.DBPassword)),
			slog.String("database_url", redactURL(dbURL)),
		)
		return errors.New("database unavailable")
	}
	logger.Info("connected to database", "host", cfg.DBHost, "database", cfg.DBName)

	var cacheClient *cache.Cache
	if cfg.CacheConfigured() {
		cacheClient, err = cache.New(ctx, cache.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			repo.Close()
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisPassword)),
				slog.String("addr", cfg.RedisAddr()),
			)
			return errors.New("cache unavailable")
		}
		logger.Info("connected to Redis", "addr", cfg.RedisAddr())
	} else {
		logger.Warn("Redis not configured, running without cache")
	}

	prom := metrics.NewPrometheus(nil)

	router, err := newApp(cfg, logger, repo, cacheClient, prom)
	if err != nil {
		if cacheClient != nil {
			_ = cacheClient.Close()
		}
		repo.Close()
		return fmt.Errorf("build router: %w", err)
	}

	srv := server.New(router, server.Options{
		Port:            cfg.Port,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	// LIFO: the cache closes before the database.
	srv.OnShutdown("database", func(ctx context.Context) error {
		repo.Close()
		return nil
	})
	if cacheClient != nil {
		srv.OnShutdown("cache", func(ctx context.Context) error {
			return cacheClient.Close()
		})
	}

	base := fmt.Sprintf("http://localhost:%d", cfg.Port)
	logger.Info("starting server",
		"port", cfg.Port,
		"env", cfg.AppEnv,
		"version", cfg.AppVersion,
		"cache", cacheClient != nil,
		"health_url", base+"/health",
		"metrics_url", base+"/metrics",
	)

	return srv.Run()
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h).With("service", cfg.AppName)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s&]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" || redacted == secret {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
