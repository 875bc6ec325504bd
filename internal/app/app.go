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

	"github.com/go-chi/chi/v5"

	"github.com/matanparker/optimize-poc-v2/internal/config"
	"github.com/matanparker/optimize-poc-v2/internal/dataprocessing"
	apierrors "github.com/matanparker/optimize-poc-v2/internal/errors"
	"github.com/matanparker/optimize-poc-v2/internal/infrastructure"
	customMiddleware "github.com/matanparker/optimize-poc-v2/internal/middleware"
	"github.com/matanparker/optimize-poc-v2/internal/services"
	handlers "github.com/matanparker/optimize-poc-v2/internal/transport/http"
	"github.com/matanparker/optimize-poc-v2/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics
	Paths         config.DataPaths
	Dataset       *config.Dataset
	Loader        *dataprocessing.Loader
	Services      *ServiceContainer
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Analytics *services.AnalyticsService
	Auth      *services.AuthService
	Assistant *services.AssistantService
	Health    *services.HealthService
}

// NewApplication loads configuration from the environment and wires the
// application.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger)
}

// New wires the application from an already loaded configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version))

	paths, err := config.ResolveDataPaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data paths: %w", err)
	}
	paths.LogPathResolution(logger)

	dataset, err := config.LoadDataset(cfg.Paths.DatasetFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load demo dataset: %w", err)
	}

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateBusinessMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		Paths:         paths,
		Dataset:       dataset,
	}

	app.initializeServices()

	if err := app.setupRouter(); err != nil {
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}

	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() {
	a.Loader = dataprocessing.NewLoader(a.Paths.Medium, a.Paths.Small, a.Logger, a.Metrics)

	a.Services = &ServiceContainer{
		Analytics: services.NewAnalyticsService(a.Loader, a.Dataset.Rules, a.Metrics, a.Logger,
			services.WithDefaults(a.Config.Analytics.DefaultWindowDays, a.Config.Analytics.DefaultLimit)),
		Auth:      services.NewAuthService(a.Dataset, a.Metrics, a.Logger),
		Assistant: services.NewAssistantService(a.Dataset.FAQs, a.Config.HasOpenAIKey(), a.Metrics, a.Logger),
		Health:    services.NewHealthService(contracts.Version, a.Loader, a.Logger),
	}
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() error {
	r := chi.NewRouter()
	errorHandler := apierrors.NewErrorHandler(a.Logger, false)

	// Ordering: RequestID → RealIP → OTel → Logger → Recoverer → Timeout
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders, a.Metrics)
	if err != nil {
		return err
	}
	r.Use(otelMiddleware.Handler)

	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	cors := customMiddleware.CORS(a.Config.Security.AllowedOrigins)
	validator := customMiddleware.NewValidator(a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))
		r.Use(customMiddleware.MaxBodySize(customMiddleware.DefaultMaxBodySize))

		handlers.NewHealthHandler(a.Services.Health, a.Logger).Register(r)
		handlers.NewAnalyticsHandler(a.Services.Analytics, validator, errorHandler, a.Logger).Register(r, cors)
		handlers.NewAuthHandler(a.Services.Auth, validator, a.Logger).Register(r)
		handlers.NewAssistantHandler(a.Services.Assistant, validator, a.Logger).Register(r)
	})

	if a.OTelProviders.PrometheusHTTP != nil {
		r.With(cors).Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
	return nil
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts the HTTP server in the background. A listener failure
// cancels ctx through cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("address", a.Server.Addr),
		slog.String("level", a.Config.Logging.Level))

	if err := a.performStartupHealthCheck(ctx); err != nil {
		a.Logger.WarnContext(ctx, "Startup health check warnings", slog.String("warnings", err.Error()))
	}

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
		a.Logger.WarnContext(ctx, "Server stopped unexpectedly")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout+time.Second)
	defer stopCancel()
	return a.Stop(stopCtx)
}

// performStartupHealthCheck reports unreadable demo data. The server still
// starts: every data endpoint answers from empty tables until the files
// appear.
func (a *Application) performStartupHealthCheck(ctx context.Context) error {
	if err := a.Loader.Check(); err != nil {
		return fmt.Errorf("demo data not readable: %w", err)
	}
	a.Logger.InfoContext(ctx, "Startup health check passed")
	return nil
}
