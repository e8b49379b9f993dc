// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/auth"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/config"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/database"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/docx"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/handler"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/metrics"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/projection"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/repository"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/service"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("flush traces", "error", err)
		}
	}()
	if cfg.Tracing.Endpoint != "" {
		logger.Info("tracing enabled", "endpoint", cfg.Tracing.Endpoint)
	}

	// ── 1. Pick the store ────────────────────────────────────────────────
	var (
		attendeeStore repository.AttendeeStore
		adminStore    repository.AdminStore
	)
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("database: %w", err)
		}
		logger.Info("connected to postgres", "host", cfg.Database.Host, "db", cfg.Database.Name)
		attendeeStore = repository.NewAttendeeRepository(pool)
		adminStore = repository.NewAdminRepository(pool)
	case config.DriverMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		attendeeStore = repository.NewMemoryAttendeeStore()
		adminStore = repository.NewMemoryAdminStore()
	}
	attendeeStore = repository.NewTracedAttendeeStore(attendeeStore, nil)

	// ── 2. Wire up layers ────────────────────────────────────────────────
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	tokens := auth.NewTokens(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration, nil)
	projector := projection.New(nil)

	attendeeSvc := service.NewAttendeeService(attendeeStore, projector, m, logger)
	reportSvc := service.NewReportService(attendeeStore, projector, docx.NewRenderer(), m, logger)
	adminSvc := service.NewAdminService(adminStore, tokens, cfg.Admins.Credentials(), m, logger)

	if err := adminSvc.Bootstrap(ctx); err != nil {
		return fmt.Errorf("bootstrap admins: %w", err)
	}

	router := handler.NewRouter(handler.RouterConfig{
		Attendees:   handler.NewAttendeeHandler(attendeeSvc, logger),
		Reports:     handler.NewReportHandler(reportSvc, logger),
		Admins:      handler.NewAdminHandler(adminSvc, logger),
		Tokens:      tokens,
		CORSOrigins: cfg.CORSOrigins,
		Gatherer:    reg,
		Logger:      logger,
	})

	// ── 3. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}
