package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/UnknownOlympus/jobheat/internal/api"
	"github.com/UnknownOlympus/jobheat/internal/config"
	"github.com/UnknownOlympus/jobheat/internal/metrics"
	"github.com/UnknownOlympus/jobheat/internal/monitoring"
	"github.com/UnknownOlympus/jobheat/internal/repository"
	"github.com/UnknownOlympus/jobheat/internal/service"
	"github.com/UnknownOlympus/jobheat/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the jobs API, the dashboard page and the monitoring server.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger := loadConfig(cmd, os.Stdout)
			return runServe(cmd.Context(), cfg, logger)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Create a separate registry for metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	repo := openStore(ctx, cfg, logger)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := repo.Close(closeCtx); err != nil {
			logger.ErrorContext(closeCtx, "Failed to close store", "error", err)
		}
	}()

	jobs := service.NewJobService(logger, repo, appMetrics)
	page, err := web.NewPage(logger, jobs, "/api/jobs")
	if err != nil {
		return err
	}

	if cfg.Env != envLocal {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(logger, appMetrics, api.NewJobHandler(logger, jobs), page)
	apiServer := api.NewServer(cfg.Port, router)
	monitoringServer := monitoring.NewServer(cfg.HealthPort, monitoring.NewRouter(logger, reg, repo))

	var geoService *service.GeocodingService
	if cfg.Geocoding.Enabled {
		provider, err := newProvider(ctx, cfg, logger)
		if err != nil {
			return err
		}
		geoService = service.NewGeocodingService(
			logger,
			repo,
			provider,
			cfg.Geocoding.ProviderType,
			appMetrics,
			cfg.Geocoding.Workers,
			cfg.Geocoding.Interval,
			cfg.Geocoding.AddressSuffix,
		)
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error { return listen(gctx, logger, "api", apiServer) })
	group.Go(func() error { return listen(gctx, logger, "monitoring", monitoringServer) })

	if geoService != nil {
		group.Go(func() error {
			geoService.Run(gctx)
			return nil
		})
	}

	group.Go(func() error {
		<-gctx.Done()
		logger.InfoContext(gctx, "Shutdown signal received. Stopping application...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()

		return errors.Join(apiServer.Shutdown(shutdownCtx), monitoringServer.Shutdown(shutdownCtx))
	})

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.", "port", cfg.Port, "health_port", cfg.HealthPort)

	if err = group.Wait(); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Application stopped gracefully.")
	return nil
}

// openStore connects to the record store. A failed connection is logged and
// replaced by a store that reports the failure on every call, so the process
// stays up and each request fails on its own.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) repository.Interface {
	repo, err := repository.Open(ctx, storeConfig(cfg, logger))
	if err != nil {
		logger.ErrorContext(ctx, "Failed to connect to the record store", "store", cfg.Store.Type, "error", err)
		return repository.NewDisconnected(err)
	}

	logger.InfoContext(ctx, "Connected to the record store", "store", cfg.Store.Type)
	return repo
}

func listen(ctx context.Context, logger *slog.Logger, name string, server *http.Server) error {
	logger.InfoContext(ctx, "Starting server", "server", name, "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server failed: %w", name, err)
	}

	return nil
}
