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

	httpapi "github.com/aussiebroadwan/conduit/internal/conduit/http"
	"github.com/aussiebroadwan/conduit/internal/conduit/metrics"
	"github.com/aussiebroadwan/conduit/internal/conduit/service"
	"github.com/aussiebroadwan/conduit/internal/conduit/store"
	"github.com/aussiebroadwan/conduit/internal/conduit/store/drivers/postgres"
	"github.com/aussiebroadwan/conduit/internal/conduit/store/drivers/sqlite"
	"github.com/aussiebroadwan/conduit/pkg/cryptox"
	"github.com/aussiebroadwan/conduit/pkg/httpx"
	"github.com/aussiebroadwan/conduit/pkg/jwtx"
	"github.com/aussiebroadwan/conduit/pkg/slogx"
)

// BuildVersion is overridden at build time via ldflags.
var BuildVersion = "v0.1.0"

// Application holds the conduit service and its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	tokens  *jwtx.HMACIssuer
	hasher  *cryptox.PasswordHasher
	metrics *metrics.Metrics

	userService *service.UserService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "conduit",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: metrics.New(),
	}

	if err := app.initCredentials(); err != nil {
		return nil, err
	}

	if err := app.initDatabase(context.Background()); err != nil {
		return nil, err
	}

	app.initServices()
	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Handler exposes the configured router.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("conduit starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"driver", app.cfg.Database.Driver,
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

// Shutdown drains in-flight requests within the grace period and closes the
// database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down conduit...")

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

	app.logger.Info("conduit stopped")
	return nil
}

// initCredentials loads the token secret and the password pepper. Both are
// read once and never change for the life of the process.
func (app *Application) initCredentials() error {
	var (
		secret []byte
		err    error
	)
	if app.cfg.Secret != "" {
		secret, err = cryptox.CheckSecret([]byte(app.cfg.Secret), jwtx.MinSecretBytes)
	} else {
		secret, err = cryptox.LoadOrGenerateSecret(app.cfg.SecretFile, jwtx.MinSecretBytes)
	}
	if err != nil {
		return fmt.Errorf("failed to load token secret: %w", err)
	}

	app.tokens, err = jwtx.NewHMACIssuer(secret, jwtx.HMACOptions{Issuer: app.cfg.Issuer})
	if err != nil {
		return fmt.Errorf("failed to initialize token issuer: %w", err)
	}

	pepper, err := cryptox.LoadOrGenerateSecret(app.cfg.PepperFile, cryptox.MinPepperBytes)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.NewPasswordHasher(pepper)

	return nil
}

// initDatabase opens the configured driver and applies migrations.
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db interface {
			store.Store
			ApplyMigrations() error
		}
		err error
	)

	switch app.cfg.Database.Driver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, app.cfg.Database.URL)
	default:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.Database.File)
		db, err = sqlite.NewStore(dsn)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	app.db = db

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.Database.Driver)
	return nil
}

func (app *Application) initServices() {
	app.userService = &service.UserService{
		Store:    app.db,
		Hasher:   app.hasher,
		Tokens:   app.tokens,
		TokenTTL: app.cfg.TokenTTL,
		KDF:      service.NewKDFPool(app.cfg.KDFConcurrency, app.metrics),
		Metrics:  app.metrics,
	}
}

func (app *Application) initHTTP() error {
	proxies, err := httpx.ParseTrustedProxies(app.cfg.RateLimits.TrustedProxies)
	if err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}

	router := httpapi.NewRouter(
		app.tokens,
		BuildVersion,
		app.db,
		app.metrics,
		app.logger,
	)
	router.UserService = app.userService
	router.Limits = app.cfg.RateLimits.Profiles()
	router.Proxies = proxies
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
