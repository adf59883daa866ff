package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"finanzas/internal/amqp"
	"finanzas/internal/config"
	"finanzas/internal/sheets"
	gsheet "finanzas/internal/sheets/google"
	sheetsmem "finanzas/internal/sheets/memory"
	"finanzas/internal/storage"
	"finanzas/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting finanzas-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// Without a spreadsheet the worker still drains the queue so
	// deliveries do not pile up; rows land in a process-local mirror.
	var mirror sheets.Mirror
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.New(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		mirror = client
		logger.Info("Google Sheets mirror initialized",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
	} else {
		mirror = sheetsmem.New()
		logger.Info("No GOOGLE_SPREADSHEET_ID provided, mirroring in memory")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirrorWorker := worker.NewMirrorWorker(repo, mirror, cfg.MirrorBatchSize)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catch anything that slipped past the queue before consuming.
	if err := mirrorWorker.Backfill(ctx); err != nil {
		logger.Error("Startup backfill failed", "error", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeTransactionEvents(ctx, func(msg *amqp.TransactionEventMessage) error {
			return mirrorWorker.HandleEvent(ctx, msg)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.MirrorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := mirrorWorker.Backfill(ctx); err != nil {
					logger.Error("Periodic backfill failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
