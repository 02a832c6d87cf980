package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/archive"
	httpapi "github.com/aussiebroadwan/registrar/internal/registrar/http"
	"github.com/aussiebroadwan/registrar/internal/registrar/report"
	"github.com/aussiebroadwan/registrar/internal/registrar/service"
	"github.com/aussiebroadwan/registrar/internal/registrar/session"
	"github.com/aussiebroadwan/registrar/internal/registrar/sheets"
	"github.com/aussiebroadwan/registrar/internal/registrar/store"
	"github.com/aussiebroadwan/registrar/internal/registrar/store/drivers/sqlite"
	"github.com/aussiebroadwan/registrar/pkg/cryptox"
	"github.com/aussiebroadwan/registrar/pkg/httpx"
	"github.com/aussiebroadwan/registrar/pkg/slogx"
	"github.com/getsentry/sentry-go"
)

const (
	// BuildVersion is overridden at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application owns the registrar's dependencies and its process lifecycle.
type Application struct {
	cfg      Config
	logger   *slog.Logger
	location *time.Location

	// Core dependencies
	db           store.Store
	sessionStore session.Store
	sessions     *session.Manager

	// Services
	authService         *service.AuthService
	bootstrapService    *service.BootstrapService
	registrationService *service.RegistrationService
	statisticsService   *service.StatisticsService
	programService      *service.ProgramService
	teamService         *service.TeamService
	userService         *service.UserService
	reportService       *service.ReportService
	systemService       *service.SystemService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	app := &Application{
		cfg:      cfg,
		location: location,
		logger: slogx.New(slogx.Config{
			Service:  "registrar",
			Version:  BuildVersion,
			Env:      cfg.Env,
			Level:    cfg.LogLevel,
			Format:   cfg.LogFormat,
			Location: location,
		}),
	}

	// Sentry goes first so start-up failures below are still reported
	if err := app.initSentry(); err != nil {
		return nil, err
	}

	// Process-wide knobs read by pkg helpers
	cryptox.SetPepperPath(cfg.PepperFile)
	httpx.SetTrustProxyHeaders(cfg.TrustProxy)

	// Database before sessions: the database session store lives in it
	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	ctx := slogx.WithContext(context.Background(), app.logger)

	if err := app.initSessions(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	// Admin accounts must exist before the first login can be served
	if err := app.bootstrap(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Expired session purge runs for the lifetime of the process
	app.housekeepingService.Start()

	app.logger.Info("registrar starting", "port", app.cfg.Port, "version", BuildVersion, "env", app.cfg.Env)

	// Serve in the background so signals can be watched here
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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
	app.logger.Info("shutting down registrar...")

	// In-flight requests get SHUTDOWN_GRACE_PERIOD to finish
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	// Only the redis store holds a connection of its own

	if c, ok := app.sessionStore.(io.Closer); ok {
		if err := c.Close(); err != nil {
			app.logger.Error("error closing session store", "error", err)
		}
	}

	// Deliver any queued error reports before exiting
	sentry.Flush(2 * time.Second)

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("registrar stopped")
	return nil
}

// initSentry enables error reporting when SENTRY_DSN is set.
func (app *Application) initSentry() error {
	if app.cfg.SentryDSN == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              app.cfg.SentryDSN,
		Environment:      app.cfg.Env,
		Release:          "registrar@" + BuildVersion,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize sentry: %w", err)
	}
	app.logger.Info("sentry error reporting enabled")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initSessions opens the configured session store and the cookie manager.
// Without SESSION_SECRET (development only) a random secret is used.
func (app *Application) initSessions(ctx context.Context) error {
	secret := []byte(app.cfg.SessionSecret)
	if len(secret) == 0 {
		generated, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return err
		}
		secret = []byte(generated)
		app.logger.Warn("SESSION_SECRET not set, sessions will not survive a restart")
	}

	st, err := session.Open(ctx, app.cfg.SessionStore, app.db, app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	app.sessionStore = st

	mgr, err := session.NewManager(st, secret, app.cfg.SessionTTL, app.cfg.Production())
	if err != nil {
		return err
	}
	app.sessions = mgr

	app.logger.Info("session store ready", "store", app.cfg.SessionStore, "ttl", app.cfg.SessionTTL)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices(ctx context.Context) error {
	app.authService = &service.AuthService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{Store: app.db}
	app.registrationService = &service.RegistrationService{Store: app.db}
	app.statisticsService = &service.StatisticsService{Store: app.db, Location: app.location}
	app.programService = &service.ProgramService{Store: app.db}
	app.teamService = &service.TeamService{Store: app.db}
	app.userService = &service.UserService{Store: app.db}
	app.systemService = &service.SystemService{
		Store:     app.db,
		Version:   BuildVersion,
		Env:       app.cfg.Env,
		StartedAt: time.Now(),
	}

	// Reports: core font unless REPORT_FONT_FILE names a TTF
	renderer, err := report.New(app.cfg.ReportFontFile, app.location)
	if err != nil {
		return err
	}
	app.reportService = &service.ReportService{
		Store:    app.db,
		Renderer: renderer,
		Location: app.location,
	}

	// Optional integrations stay nil when unconfigured and their routes
	// answer not_enabled.
	if app.cfg.Archive.Enabled() {
		uploader, err := archive.New(ctx, app.cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to initialize report archive: %w", err)
		}
		app.reportService.Archiver = uploader
		app.logger.Info("report archive enabled", "bucket", app.cfg.Archive.Bucket)
	}
	if app.cfg.SheetsEnabled() {
		client, err := sheets.New(ctx, app.cfg.SheetsCredentialsFile, app.cfg.SheetsSpreadsheetID, app.location)
		if err != nil {
			return fmt.Errorf("failed to initialize sheets export: %w", err)
		}
		app.reportService.Sheets = client
		app.logger.Info("sheets export enabled", "spreadsheet", app.cfg.SheetsSpreadsheetID)
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.sessions,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	return nil
}

// bootstrap creates the configured admins, or a development admin with a
// generated password that is logged once.
func (app *Application) bootstrap(ctx context.Context) error {
	res, err := app.bootstrapService.EnsureAdmins(ctx, app.cfg.Admins(), app.cfg.Production())
	if err != nil {
		return fmt.Errorf("failed to bootstrap admins: %w", err)
	}
	if res.GeneratedPassword != "" {
		app.logger.Warn("created development admin with a generated password, change it before going live",
			"username", service.DefaultAdminUsername,
			"password", res.GeneratedPassword,
		)
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.sessions,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Outer middleware, added after request logging
	if app.cfg.SentryDSN != "" {
		router.Use(httpapi.SentryMiddleware())
	}
	if len(app.cfg.CORSAllowedOrigins) > 0 {
		router.Use(httpapi.CORSMiddleware(app.cfg.CORSAllowedOrigins))
	}

	// Wire services to router
	router.AuthService = app.authService
	router.RegistrationService = app.registrationService
	router.StatisticsService = app.statisticsService
	router.ProgramService = app.programService
	router.TeamService = app.teamService
	router.UserService = app.userService
	router.ReportService = app.reportService
	router.SystemService = app.systemService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
