// Package main is the entrypoint for the Inbox API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/slashtecho/inbox/internal/auth"
	"github.com/slashtecho/inbox/internal/config"
	"github.com/slashtecho/inbox/internal/handler"
	"github.com/slashtecho/inbox/internal/middleware"
	"github.com/slashtecho/inbox/internal/repository"
	"github.com/slashtecho/inbox/internal/server"
	"github.com/slashtecho/inbox/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Apply schema migrations
	if err := repository.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		logger.Error("failed to run migrations", slog.String("error", sanitizeError(err, cfg.DatabaseURL)))
		os.Exit(1)
	}
	logger.Info("database schema up to date")

	// Initialize token issuer
	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL)
	if err != nil {
		logger.Error("failed to configure token issuer", "error", err)
		os.Exit(1)
	}

	// Initialize services
	inboxService := service.NewInboxService(repo, tokens)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo)
	authHandler := handler.NewAuthHandler(inboxService, logger)
	inboxHandler := handler.NewInboxHandler(inboxService, logger)
	messageHandler := handler.NewMessageHandler(inboxService, logger)

	// Setup router
	r := setupRouter(h, healthHandler, authHandler, inboxHandler, messageHandler, repo, tokens, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"token_ttl", cfg.TokenTTL.String(),
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
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

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	inboxHandler *handler.InboxHandler,
	messageHandler *handler.MessageHandler,
	repo *repository.Repository,
	tokens *auth.TokenIssuer,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		r.Use(middleware.CORS(middleware.DefaultCORSConfig(origins)))
	}

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Root help endpoint
	r.Get("/", h.Help)

	// Auth middleware configuration
	authCfg := middleware.AuthConfig{
		Logger:  logger,
		Tokens:  tokens,
		Inboxes: repo,
	}

	// Login (no auth required)
	r.Post("/login", authHandler.Login)

	// Inbox registration and retrieval
	r.Route("/inboxes", func(r chi.Router) {
		r.Post("/", inboxHandler.Create)
		r.With(middleware.Auth(authCfg)).Get("/", inboxHandler.Get)
	})

	// Message send and retrieval
	r.Route("/messages", func(r chi.Router) {
		r.Post("/send", messageHandler.Send)
		r.With(middleware.Auth(authCfg)).Get("/", messageHandler.List)
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

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
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return msg
}
