package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/worldsell/internal"
	"github.com/frahmantamala/worldsell/internal/auth"
	"github.com/frahmantamala/worldsell/internal/core/events"
	"github.com/frahmantamala/worldsell/internal/paymentprovider"
	"github.com/frahmantamala/worldsell/internal/paymentprovider/postgres"
	"github.com/frahmantamala/worldsell/internal/transport"
	"github.com/frahmantamala/worldsell/internal/transport/middleware"
	"github.com/frahmantamala/worldsell/internal/transport/rest"
	"github.com/frahmantamala/worldsell/internal/transport/swagger"
	"github.com/frahmantamala/worldsell/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout    = 30 * time.Second
	initialLoadTimeout = 30 * time.Second
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Store  *paymentprovider.Store
	Events *events.EventBus
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close()

	if err := setupRoutes(deps); err != nil {
		deps.Logger.Error("Failed to set up routes", "error", err)
		deps.Close()
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			deps.Close()
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := swagger.Load(ctx); err != nil {
		return err
	}

	base := transport.NewBaseHandler(deps.Logger)

	sqlDB := deps.sqlDB()
	handlers := rest.Handlers{
		Health:          rest.NewHealthHandler(base, deps.Store, sqlDB),
		PaymentProvider: paymentprovider.NewHandler(base, paymentprovider.NewService(deps.Store, deps.Logger)),
	}

	if deps.Config.Security.AdminEnabled() {
		publicKey, err := deps.Config.Security.GetPublicKey()
		if err != nil {
			return fmt.Errorf("failed to load token verification key: %w", err)
		}
		verifier := auth.NewTokenVerifier(publicKey, deps.Config.Security.JWTIssuer, deps.Logger)
		handlers.Auth = auth.NewMiddleware(base, verifier)
	}

	opts := rest.Options{AllowedOrigins: deps.Config.Server.Origins()}
	if deps.Config.RateLimit.Enabled {
		limiter, err := middleware.NewIPRateLimiter(deps.Config.RateLimit.Rate, deps.Config.RateLimit.TrustForwardHeader)
		if err != nil {
			return err
		}
		opts.RateLimiter = limiter
	}

	rest.RegisterAllRoutes(deps.Router, handlers, opts, deps.Logger)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	deps := &Dependencies{
		Config: config,
		Logger: logger.L(),
		Router: chi.NewRouter(),
	}

	if config.Database.Enabled() {
		db, err := initDB(config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		deps.DB = db
	}

	loader, err := newCatalogLoader(config.Catalog, deps.DB)
	if err != nil {
		deps.Close()
		return nil, err
	}

	deps.Events = newCatalogEventBus(deps.Logger)
	deps.Store = paymentprovider.NewStore(loader, deps.Logger).WithEvents(deps.Events)

	ctx, cancel := context.WithTimeout(context.Background(), initialLoadTimeout)
	defer cancel()
	if err := deps.Store.Load(ctx); err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to load payment catalog: %w", err)
	}

	if config.Catalog.RefreshSchedule != "" {
		if err := deps.Store.StartRefresh(config.Catalog.RefreshSchedule); err != nil {
			deps.Close()
			return nil, err
		}
	}

	return deps, nil
}

// newCatalogLoader picks the loader for the configured catalog source.
func newCatalogLoader(cfg internal.CatalogConfig, db *sqlx.DB) (paymentprovider.Loader, error) {
	switch cfg.Source {
	case internal.CatalogSourceBuiltin:
		return paymentprovider.BuiltinLoader{}, nil
	case internal.CatalogSourceFile:
		return paymentprovider.FileLoader{Path: cfg.Path}, nil
	case internal.CatalogSourceDatabase:
		if db == nil {
			return nil, errors.New("catalog source database requires a database connection")
		}
		gormDB, err := openGorm(db)
		if err != nil {
			return nil, err
		}
		return postgres.NewCatalogRepository(gormDB), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

// newCatalogEventBus records every catalog change in the audit log.
func newCatalogEventBus(log *slog.Logger) *events.EventBus {
	bus := events.NewEventBus(log)
	audit := log.With("component", "catalog_audit")

	bus.Subscribe(events.EventCatalogReloaded, func(_ context.Context, e events.Event) error {
		reloaded, ok := e.(events.CatalogReloaded)
		if !ok {
			return fmt.Errorf("unexpected event %T", e)
		}
		audit.Info("catalog snapshot published",
			"event_id", reloaded.EventID(),
			"countries", reloaded.Countries,
			"providers", reloaded.Providers,
			"providers_added", reloaded.Added,
			"providers_removed", reloaded.Removed)
		return nil
	})
	bus.Subscribe(events.EventCatalogReloadFailed, func(_ context.Context, e events.Event) error {
		audit.Warn("catalog reload rejected", "event_id", e.EventID(), "details", e.Payload())
		return nil
	})

	return bus
}

func (d *Dependencies) sqlDB() *sql.DB {
	if d.DB == nil {
		return nil
	}
	return d.DB.DB
}

func (d *Dependencies) Close() {
	if d.Store != nil {
		d.Store.StopRefresh()
	}
	if d.Events != nil {
		d.Events.Wait()
	}
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			d.Logger.Error("Database close error", "error", err)
		}
		d.DB = nil
	}
}
