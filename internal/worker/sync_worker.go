package worker

import (
	"context"
	"fmt"
	"log/slog"

	"lifelog/internal/amqp"
	"lifelog/internal/backup"
	"lifelog/internal/core"
	"lifelog/internal/storage"
)

// RecordStore is the storage surface the worker needs: load one record,
// list rows still awaiting backup, and flip their sync status.
type RecordStore interface {
	ExpenseByID(ctx context.Context, id int64) (core.ExpenseRecord, error)
	SleepByID(ctx context.Context, id int64) (core.SleepRecord, error)
	StudyByID(ctx context.Context, id int64) (core.StudyRecord, error)
	HabitByID(ctx context.Context, id int64) (core.HabitRecord, error)
	PendingSync(ctx context.Context, limit int) ([]storage.PendingSyncRecord, error)
	MarkSynced(ctx context.Context, domain core.Domain, id int64) error
	MarkSyncError(ctx context.Context, domain core.Domain, id int64) error
}

// SyncWorker copies stored records to the backup spreadsheet.
type SyncWorker struct {
	storage   RecordStore
	backup    backup.Appender
	batchSize int
}

func NewSyncWorker(storage RecordStore, appender backup.Appender, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		backup:    appender,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single record sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RecordSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"domain", msg.Domain,
		"id", msg.ID)

	if err := w.syncRecord(ctx, msg.Domain, msg.ID); err != nil {
		return fmt.Errorf("sync %s record %d: %w", msg.Domain, msg.ID, err)
	}
	return nil
}

// ProcessPending backs up records that never made it through the queue.
// This is a safety net in case AMQP messages are lost.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.PendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending records: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending records", "count", len(pending))

	for _, p := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.syncRecord(ctx, p.Domain, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to sync pending record",
				"domain", p.Domain, "id", p.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck drains records left pending by missed messages or worker
// downtime. It uses a larger batch than the periodic scan.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.PendingSync(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending records for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending records found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending records on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, p := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.syncRecord(ctx, p.Domain, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to sync record during startup",
				"domain", p.Domain, "id", p.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

func (w *SyncWorker) syncRecord(ctx context.Context, domain core.Domain, id int64) error {
	row, err := w.loadRow(ctx, domain, id)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, domain, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error",
				"domain", domain, "id", id, "error", markErr)
		}
		return err
	}

	ref, err := w.backup.Append(ctx, domain, row)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, domain, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error",
				"domain", domain, "id", id, "error", markErr)
		}
		return fmt.Errorf("append to backup: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, domain, id); err != nil {
		// The backup itself succeeded; the pending scan will retry the flag.
		slog.ErrorContext(ctx, "Failed to mark as synced",
			"domain", domain, "id", id, "error", err)
	}

	slog.InfoContext(ctx, "Record backed up",
		"domain", domain,
		"id", id,
		"sheets_ref", ref)

	return nil
}

func (w *SyncWorker) loadRow(ctx context.Context, domain core.Domain, id int64) (backup.Row, error) {
	switch domain {
	case core.DomainExpenses:
		rec, err := w.storage.ExpenseByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return backup.ExpenseRow(rec), nil
	case core.DomainSleep:
		rec, err := w.storage.SleepByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return backup.SleepRow(rec), nil
	case core.DomainStudy:
		rec, err := w.storage.StudyByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return backup.StudyRow(rec), nil
	case core.DomainHabits:
		rec, err := w.storage.HabitByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return backup.HabitRow(rec), nil
	}
	return nil, fmt.Errorf("%w: %q", core.ErrUnknownDomain, domain)
}
