package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/profiles/internal/profiles/http"
	"github.com/aussiebroadwan/profiles/internal/profiles/service"
	"github.com/aussiebroadwan/profiles/internal/profiles/store"
	"github.com/aussiebroadwan/profiles/internal/profiles/store/drivers/postgres"
	"github.com/aussiebroadwan/profiles/internal/profiles/store/drivers/sqlite"
	"github.com/aussiebroadwan/profiles/internal/profiles/views"
	"github.com/aussiebroadwan/profiles/pkg/httpx"
	"github.com/aussiebroadwan/profiles/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the profiles service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	signers Signers

	userService *service.UserService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "profiles-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.UsingDefaultSecret() {
		app.logger.Warn("SECRET_KEY is not set, using the built-in placeholder; set it before deploying")
	}

	signers, err := InitSigners(cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize signing keys: %w", err)
	}
	app.signers = signers

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Handler exposes the fully wired router, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("profiles service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"driver", app.cfg.DatabaseDriver,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down profiles service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("profiles service stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase() error {
	db, err := openStore(app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

func openStore(cfg Config) (store.Store, error) {
	switch cfg.DatabaseDriver {
	case DriverPostgres:
		return postgres.NewStore(cfg.DatabaseURL)
	default:
		return sqlite.NewStore(sqlite.DSN(cfg.DatabaseFile))
	}
}

func (app *Application) initServices() {
	app.userService = &service.UserService{Store: app.db}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() error {
	renderer, err := views.New()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	router.UserService = app.userService
	router.Views = renderer
	router.Flash = &httpx.FlashStore{
		Signer: app.signers.Flash,
		Secure: app.cfg.SecureCookies(),
	}
	router.CSRF = httpx.CSRFConfig{
		Signer: app.signers.CSRF,
		Secure: app.cfg.SecureCookies(),
	}
	router.Limits = app.cfg.RateLimits
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
