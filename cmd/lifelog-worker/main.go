package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"lifelog/internal/amqp"
	"lifelog/internal/backup"
	"lifelog/internal/backup/google"
	"lifelog/internal/backup/memory"
	"lifelog/internal/config"
	applog "lifelog/internal/log"
	"lifelog/internal/storage"
	"lifelog/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)
	applog.SetDefault(logger)

	logger.Info("Starting lifelog-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	appender, err := newAppender(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize backup backend", "error", err, "backend", cfg.BackupBackend)
		os.Exit(1)
	}
	if appender == nil {
		logger.Info("Backup disabled, nothing to sync", "backend", cfg.BackupBackend)
		return
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(repo, appender, cfg.SyncBatchSize)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Drain records left pending while the worker was down.
	if err := syncWorker.StartupSyncCheck(ctx); err != nil {
		logger.Error("Startup sync check failed", "error", err)
		// Continue; the periodic scan retries.
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := amqpClient.ConsumeRecordSync(ctx, func(msg *amqp.RecordSyncMessage) error {
			return syncWorker.HandleSyncMessage(ctx, msg)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := syncWorker.ProcessPending(ctx); err != nil {
					logger.Error("Periodic sync failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}

// newAppender picks the backup destination. A nil appender means backup is
// switched off.
func newAppender(ctx context.Context, cfg *config.Config, logger *applog.Logger) (backup.Appender, error) {
	switch cfg.BackupBackend {
	case "sheets":
		cli, err := google.New(ctx, cfg.GoogleSpreadsheetID)
		if err != nil {
			return nil, err
		}
		logger.Info("Google Sheets backup initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
		return cli, nil
	case "memory":
		logger.Warn("Using in-memory backup store, appended rows are lost on restart")
		return memory.New(), nil
	default:
		return nil, nil
	}
}
