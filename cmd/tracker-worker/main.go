package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"tracker/internal/amqp"
	"tracker/internal/backend"
	"tracker/internal/config"
	"tracker/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting tracker-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The worker reads the same persistence slot the server writes
	// through, so it needs a shared backend (file or sqlite).
	if cfg.DataBackend == "memory" {
		logger.Error("Worker requires a shared backend, memory is process-local", "backend", cfg.DataBackend)
		os.Exit(1)
	}

	slot, cleanup, err := backend.NewSlot(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error("Backend cleanup failed", "error", err)
		}
	}()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	w := worker.NewAnalyticsWorker(slot)

	// Report the current state once at startup before waiting on events.
	if err := w.RefreshAggregates(ctx); err != nil {
		logger.Error("Startup refresh failed", "error", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeLedgerEvents(ctx, w.HandleLedgerEvent)
	})

	g.Go(func() error {
		return w.RunPeriodicRefresh(ctx, cfg.RefreshInterval)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
