// Package backend assembles the service stack for the configured
// storage backend.
package backend

import (
	"fmt"
	"log/slog"

	"finanzas/internal/amqp"
	"finanzas/internal/config"
	"finanzas/internal/ledger/memory"
	"finanzas/internal/services"
	"finanzas/internal/storage"
)

// Build wires the store, the optional AMQP publisher, and the
// transaction service. Closing the service releases everything.
func Build(cfg *config.Config, logger *slog.Logger) (*services.TransactionService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	publisher := newPublisher(cfg, logger)

	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite repository: %w", err)
		}
		logger.Info("Initialized SQLite backend",
			"db_path", cfg.SQLiteDBPath,
			"amqp_enabled", publisher != nil)
		return services.NewTransactionService(repo, publisher, repo.Close), nil

	case "memory":
		logger.Info("Initialized memory backend", "amqp_enabled", publisher != nil)
		return services.NewTransactionService(memory.New(), publisher), nil

	default:
		return nil, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
	}
}

// newPublisher is best effort: a broker outage must not keep the API
// from serving, the worker's backfill covers the gap.
func newPublisher(cfg *config.Config, logger *slog.Logger) services.EventPublisher {
	if cfg.AMQPURL == "" {
		return nil
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("Failed to initialize AMQP client, continuing without mirror events", "error", err)
		return nil
	}

	logger.Info("Initialized AMQP client",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)
	return client
}
