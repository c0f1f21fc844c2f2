package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lifelog/internal/amqp"
	"lifelog/internal/core"
)

// RecordStore is the storage surface the service needs for writes.
type RecordStore interface {
	InsertExpense(ctx context.Context, rec core.ExpenseRecord) (int64, error)
	InsertSleep(ctx context.Context, rec core.SleepRecord) (int64, error)
	InsertStudy(ctx context.Context, rec core.StudyRecord) (int64, error)
	InsertHabit(ctx context.Context, rec core.HabitRecord) (int64, error)
	Close() error
}

// SyncPublisher pushes record identities onto the backup queue.
type SyncPublisher interface {
	PublishRecordSync(ctx context.Context, msg *amqp.RecordSyncMessage) error
	Close() error
}

// RecordService orchestrates record creation across SQLite and AMQP.
// Records are always stored locally first; a failed sync publish never
// fails the request because the worker re-checks pending rows anyway.
type RecordService struct {
	storage   RecordStore
	publisher SyncPublisher
}

func NewRecordService(storage RecordStore, publisher SyncPublisher) *RecordService {
	return &RecordService{
		storage:   storage,
		publisher: publisher,
	}
}

// CreateExpense validates and stores an expense, then queues it for backup.
func (s *RecordService) CreateExpense(ctx context.Context, rec core.ExpenseRecord) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	id, err := s.storage.InsertExpense(ctx, rec)
	if err != nil {
		return 0, fmt.Errorf("save expense: %w", err)
	}

	s.publishSync(ctx, core.DomainExpenses, id)
	return id, nil
}

// CreateSleep validates and stores a sleep log, then queues it for backup.
func (s *RecordService) CreateSleep(ctx context.Context, rec core.SleepRecord) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	id, err := s.storage.InsertSleep(ctx, rec)
	if err != nil {
		return 0, fmt.Errorf("save sleep log: %w", err)
	}

	s.publishSync(ctx, core.DomainSleep, id)
	return id, nil
}

// CreateStudy validates and stores a study session, then queues it for backup.
func (s *RecordService) CreateStudy(ctx context.Context, rec core.StudyRecord) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	id, err := s.storage.InsertStudy(ctx, rec)
	if err != nil {
		return 0, fmt.Errorf("save study session: %w", err)
	}

	s.publishSync(ctx, core.DomainStudy, id)
	return id, nil
}

// CreateHabit validates and stores a daily habit check-in, then queues it for backup.
func (s *RecordService) CreateHabit(ctx context.Context, rec core.HabitRecord) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	id, err := s.storage.InsertHabit(ctx, rec)
	if err != nil {
		return 0, fmt.Errorf("save habit log: %w", err)
	}

	s.publishSync(ctx, core.DomainHabits, id)
	return id, nil
}

func (s *RecordService) publishSync(ctx context.Context, domain core.Domain, id int64) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message",
			"domain", domain, "id", id)
		return
	}

	if err := s.publisher.PublishRecordSync(ctx, amqp.NewRecordSyncMessage(domain, id)); err != nil {
		// Record is saved locally; the worker's pending scan will pick it up.
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"domain", domain, "id", id, "error", err)
	}
}

// Close closes both storage and AMQP connections.
func (s *RecordService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close record service: %v", errs)
	}

	return nil
}
