package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/enayetsyl/industry-grade-project-format/internal/domain/campus"
	"github.com/enayetsyl/industry-grade-project-format/internal/metrics"
	chiTransport "github.com/enayetsyl/industry-grade-project-format/internal/transport/chi"
	healthuc "github.com/enayetsyl/industry-grade-project-format/internal/usecase/health"
	"github.com/enayetsyl/industry-grade-project-format/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	cfg, logger := a.cfg, a.logger

	logger.Info("Starting campus API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", envName),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Bool("count_cache", a.cache != nil),
	)

	// Register query metrics explicitly (no init())
	metrics.RegisterQueryMetrics()

	if cfg.Database.SeedFile != "" {
		report, err := a.seedFile(ctx, cfg.Database.SeedFile)
		if err != nil {
			return err
		}
		logger.Info("Seed data loaded", zap.Int("documents", report.Total()))
	}

	resources := []chiTransport.Resource{
		chiTransport.NewResource(newService[campus.Student](a, campus.Students)),
		chiTransport.NewResource(newService[campus.Faculty](a, campus.Faculties)),
		chiTransport.NewResource(newService[campus.Admin](a, campus.Admins)),
		chiTransport.NewResource(newService[campus.Course](a, campus.Courses)),
	}

	// Pass nil interface (not typed nil pointer) when the cache is disabled.
	var cachePinger healthuc.Pinger
	if a.cache != nil {
		cachePinger = a.cache
	}
	healthSvc := healthuc.New(a.store, cachePinger)

	server := chiTransport.NewServer(resources, healthSvc, logger)

	addr := cfg.HTTP.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, logger),
		ReadTimeout:  cfg.HTTP.ReadTimeout(),
		WriteTimeout: cfg.HTTP.WriteTimeout(),
	}

	// Graceful shutdown
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-sigCtx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
