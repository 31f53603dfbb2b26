// Package main implements the catalog HTTP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "net/http/pprof"

	"github.com/techshop/catalog_service/internal/app"
	"github.com/techshop/catalog_service/internal/config"
	"github.com/techshop/catalog_service/internal/seed"
	"github.com/techshop/catalog_service/migrations"
	"github.com/techshop/catalog_service/pkg/bootstrap"
	"github.com/techshop/catalog_service/pkg/config/configloader"
	"github.com/techshop/catalog_service/pkg/messaging"
	catalognats "github.com/techshop/catalog_service/pkg/nats"
	"golang.org/x/sync/errgroup"
)

const serviceName = "catalog"

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run initializes the application, prepares the database, and starts the HTTP
// and pprof servers.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](serviceName)
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	dbPool, err := bootstrap.NewDbPool(ctx, cfg.Database.URL, cfg.Database.Timeout)
	if err != nil {
		return fmt.Errorf("failed to create database connection pool: %w", err)
	}
	defer dbPool.Close()
	logger.Info("Successfully connected to the database!")

	if err := bootstrap.RunMigrations(migrations.FS, cfg.Database.URL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Database schema is up to date")

	var publisher messaging.Publisher
	if cfg.NATS.Enabled {
		nc, err := catalognats.NewClient(cfg.NATS.Url, cfg.NATS.Timeout)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer nc.Close()
		js, err := catalognats.NewJetStreamContext(nc)
		if err != nil {
			return fmt.Errorf("failed to create JetStream context: %w", err)
		}
		publisher = catalognats.NewNatsPublisher(js)
		logger.Info("Connected to NATS", slog.String("url", cfg.NATS.Url))
	}

	deps := app.SetupDependencies(dbPool, publisher, logger)

	if cfg.Seed.Enabled {
		if err := seed.Run(ctx, deps.Store, logger); err != nil {
			return fmt.Errorf("failed to seed demo catalog: %w", err)
		}
	}

	httpServer := app.SetupHttpServer(deps, cfg)
	pprofServer := &http.Server{
		Addr: cfg.PProf.Addr,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Start the HTTP server
	g.Go(func() error {
		logger.Info("HTTP server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	// gracefully shutdown HTTP server on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	// Start the pprof server if enabled
	if cfg.PProf.Enabled {
		g.Go(func() error {
			logger.Info("Pprof server listening", slog.String("addr", pprofServer.Addr))
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("pprof server failed: %w", err)
			}
			return nil
		})
		// gracefully shutdown pprof server on context cancellation
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Shutting down pprof server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer cancel()
			return pprofServer.Shutdown(shutdownCtx)
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}
