// Package app assembles the HTTP application: configuration, logging, the
// analysis service, the router, and the server lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"golfsight/internal/config"
	"golfsight/internal/infrastructure"
	"golfsight/internal/middleware"
	"golfsight/internal/narrative"
	"golfsight/internal/services"
	transport "golfsight/internal/transport/http"
)

// Application owns the wired components and the HTTP server lifecycle.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Server *http.Server
}

// NewApplication loads configuration and wires every component.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := infrastructure.NewLogger(cfg.Logging, os.Stdout)
	slog.SetDefault(logger)

	var generator narrative.Generator
	if cfg.Narrative.APIKey != "" {
		gen, err := narrative.NewOpenAIGenerator(narrative.GeneratorOptions{
			APIKey:      cfg.Narrative.APIKey,
			Model:       cfg.Narrative.Model,
			Temperature: cfg.Narrative.Temperature,
			MaxTokens:   cfg.Narrative.MaxTokens,
			Timeout:     cfg.Narrative.Timeout,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("narrative generator: %w", err)
		}
		generator = gen
	} else {
		logger.Info("narrative generation disabled: no API key configured")
	}

	service := services.NewAnalysisService(cfg.Analysis, generator, logger)

	registry := prometheus.NewRegistry()
	metrics := middleware.NewRequestMetrics(registry)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(metrics.Handler)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, logger)
		router.Use(limiter.Handler)
	}

	router.Route("/api", func(r chi.Router) {
		transport.NewHealthHandler().RegisterRoutes(r)
		transport.NewAnalysisHandler(service, cfg.Upload.MaxBytes, logger).RegisterRoutes(r)
	})
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Application{
		Config: cfg,
		Logger: logger,
		Server: server,
	}, nil
}

// Run serves until interrupted, then shuts down gracefully.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	a.Logger.Info("shutdown complete")
	return nil
}
