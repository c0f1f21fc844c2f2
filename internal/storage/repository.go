package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lifelog/internal/core"

	_ "modernc.org/sqlite"
)

// Sync status values for the sync_status column.
const (
	SyncPending = "pending"
	SyncDone    = "synced"
	SyncError   = "error"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// PendingSyncRecord is the minimal identity of a record awaiting backup.
type PendingSyncRecord struct {
	Domain    core.Domain
	ID        int64
	CreatedAt time.Time
}

func tableFor(domain core.Domain) (string, error) {
	switch domain {
	case core.DomainExpenses:
		return "expenses", nil
	case core.DomainSleep:
		return "sleep_logs", nil
	case core.DomainStudy:
		return "study_sessions", nil
	case core.DomainHabits:
		return "habit_logs", nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownDomain, domain)
}

// InsertExpense stores a validated expense and returns its row id.
func (r *SQLiteRepository) InsertExpense(ctx context.Context, rec core.ExpenseRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (date, created_at, amount_cents, category, description)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.Date.Key(), rec.CreatedAt.UTC(), rec.Amount.Cents, string(rec.Category), rec.Description)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) InsertSleep(ctx context.Context, rec core.SleepRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO sleep_logs (date, created_at, sleep_time, wake_time, quality, duration, nap)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Date.Key(), rec.CreatedAt.UTC(), int(rec.SleepTime), int(rec.WakeTime),
		rec.Quality, rec.Duration, boolToInt(rec.Nap))
	if err != nil {
		return 0, fmt.Errorf("insert sleep log: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) InsertStudy(ctx context.Context, rec core.StudyRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO study_sessions (date, created_at, category, minutes, title)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.Date.Key(), rec.CreatedAt.UTC(), rec.Category, rec.Minutes, rec.Title)
	if err != nil {
		return 0, fmt.Errorf("insert study session: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) InsertHabit(ctx context.Context, rec core.HabitRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO habit_logs
		 (date, created_at, breakfast, lunch, dinner, laundry, cleaning, shower, skincare,
		  check_in, check_out, leave_time, steps)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Date.Key(), rec.CreatedAt.UTC(),
		int(rec.Breakfast), int(rec.Lunch), int(rec.Dinner),
		boolToInt(rec.Laundry), boolToInt(rec.Cleaning), boolToInt(rec.Shower), boolToInt(rec.Skincare),
		int(rec.CheckIn), int(rec.CheckOut), int(rec.Leave), rec.Steps)
	if err != nil {
		return 0, fmt.Errorf("insert habit log: %w", err)
	}
	return res.LastInsertId()
}

// ExpensesBetween returns expenses with from <= date <= to.
func (r *SQLiteRepository) ExpensesBetween(ctx context.Context, from, to core.Date) ([]core.ExpenseRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, created_at, amount_cents, category, description
		 FROM expenses WHERE date >= ? AND date <= ? ORDER BY date, created_at`,
		from.Key(), to.Key())
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.ExpenseRecord
	for rows.Next() {
		var (
			rec      core.ExpenseRecord
			day      string
			category string
		)
		if err := rows.Scan(&day, &rec.CreatedAt, &rec.Amount.Cents, &category, &rec.Description); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if rec.Date, err = core.ParseDate(day); err != nil {
			return nil, fmt.Errorf("parse expense date %q: %w", day, err)
		}
		rec.Category = core.ExpenseCategory(category)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SleepByMonth returns all sleep logs recorded for the given calendar month.
func (r *SQLiteRepository) SleepByMonth(ctx context.Context, year, month int) ([]core.SleepRecord, error) {
	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, created_at, sleep_time, wake_time, quality, duration, nap
		 FROM sleep_logs WHERE date LIKE ? ORDER BY date, created_at`,
		prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("list sleep logs: %w", err)
	}
	defer rows.Close()

	var out []core.SleepRecord
	for rows.Next() {
		var (
			rec                          core.SleepRecord
			day                          string
			sleepTime, wakeTime, napFlag int
		)
		if err := rows.Scan(&day, &rec.CreatedAt, &sleepTime, &wakeTime, &rec.Quality, &rec.Duration, &napFlag); err != nil {
			return nil, fmt.Errorf("scan sleep log: %w", err)
		}
		if rec.Date, err = core.ParseDate(day); err != nil {
			return nil, fmt.Errorf("parse sleep date %q: %w", day, err)
		}
		rec.SleepTime = core.TimeOfDay(sleepTime)
		rec.WakeTime = core.TimeOfDay(wakeTime)
		rec.Nap = napFlag != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

// StudyBetween returns study sessions with from <= date <= to.
func (r *SQLiteRepository) StudyBetween(ctx context.Context, from, to core.Date) ([]core.StudyRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, created_at, category, minutes, title
		 FROM study_sessions WHERE date >= ? AND date <= ? ORDER BY date, created_at`,
		from.Key(), to.Key())
	if err != nil {
		return nil, fmt.Errorf("list study sessions: %w", err)
	}
	defer rows.Close()

	var out []core.StudyRecord
	for rows.Next() {
		var (
			rec core.StudyRecord
			day string
		)
		if err := rows.Scan(&day, &rec.CreatedAt, &rec.Category, &rec.Minutes, &rec.Title); err != nil {
			return nil, fmt.Errorf("scan study session: %w", err)
		}
		if rec.Date, err = core.ParseDate(day); err != nil {
			return nil, fmt.Errorf("parse study date %q: %w", day, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// HabitsBetween returns habit logs with from <= date <= to.
func (r *SQLiteRepository) HabitsBetween(ctx context.Context, from, to core.Date) ([]core.HabitRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, created_at, breakfast, lunch, dinner, laundry, cleaning, shower, skincare,
		        check_in, check_out, leave_time, steps
		 FROM habit_logs WHERE date >= ? AND date <= ? ORDER BY date, created_at`,
		from.Key(), to.Key())
	if err != nil {
		return nil, fmt.Errorf("list habit logs: %w", err)
	}
	defer rows.Close()

	var out []core.HabitRecord
	for rows.Next() {
		rec, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (core.HabitRecord, error) {
	var (
		rec                                  core.HabitRecord
		day                                  string
		breakfast, lunch, dinner             int
		laundry, cleaning, shower, skincare  int
		checkIn, checkOut, leave             int
	)
	err := row.Scan(&day, &rec.CreatedAt, &breakfast, &lunch, &dinner,
		&laundry, &cleaning, &shower, &skincare,
		&checkIn, &checkOut, &leave, &rec.Steps)
	if err != nil {
		return rec, fmt.Errorf("scan habit log: %w", err)
	}
	if rec.Date, err = core.ParseDate(day); err != nil {
		return rec, fmt.Errorf("parse habit date %q: %w", day, err)
	}
	rec.Breakfast = core.MealStatus(breakfast)
	rec.Lunch = core.MealStatus(lunch)
	rec.Dinner = core.MealStatus(dinner)
	rec.Laundry = laundry != 0
	rec.Cleaning = cleaning != 0
	rec.Shower = shower != 0
	rec.Skincare = skincare != 0
	rec.CheckIn = core.TimeOfDay(checkIn)
	rec.CheckOut = core.TimeOfDay(checkOut)
	rec.Leave = core.TimeOfDay(leave)
	return rec, nil
}

// ExpenseByID loads a single expense for backup.
func (r *SQLiteRepository) ExpenseByID(ctx context.Context, id int64) (core.ExpenseRecord, error) {
	var (
		rec      core.ExpenseRecord
		day      string
		category string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT date, created_at, amount_cents, category, description FROM expenses WHERE id = ?`, id).
		Scan(&day, &rec.CreatedAt, &rec.Amount.Cents, &category, &rec.Description)
	if err != nil {
		return rec, fmt.Errorf("get expense %d: %w", id, err)
	}
	if rec.Date, err = core.ParseDate(day); err != nil {
		return rec, fmt.Errorf("parse expense date %q: %w", day, err)
	}
	rec.Category = core.ExpenseCategory(category)
	return rec, nil
}

func (r *SQLiteRepository) SleepByID(ctx context.Context, id int64) (core.SleepRecord, error) {
	var (
		rec                          core.SleepRecord
		day                          string
		sleepTime, wakeTime, napFlag int
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT date, created_at, sleep_time, wake_time, quality, duration, nap
		 FROM sleep_logs WHERE id = ?`, id).
		Scan(&day, &rec.CreatedAt, &sleepTime, &wakeTime, &rec.Quality, &rec.Duration, &napFlag)
	if err != nil {
		return rec, fmt.Errorf("get sleep log %d: %w", id, err)
	}
	if rec.Date, err = core.ParseDate(day); err != nil {
		return rec, fmt.Errorf("parse sleep date %q: %w", day, err)
	}
	rec.SleepTime = core.TimeOfDay(sleepTime)
	rec.WakeTime = core.TimeOfDay(wakeTime)
	rec.Nap = napFlag != 0
	return rec, nil
}

func (r *SQLiteRepository) StudyByID(ctx context.Context, id int64) (core.StudyRecord, error) {
	var (
		rec core.StudyRecord
		day string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT date, created_at, category, minutes, title FROM study_sessions WHERE id = ?`, id).
		Scan(&day, &rec.CreatedAt, &rec.Category, &rec.Minutes, &rec.Title)
	if err != nil {
		return rec, fmt.Errorf("get study session %d: %w", id, err)
	}
	if rec.Date, err = core.ParseDate(day); err != nil {
		return rec, fmt.Errorf("parse study date %q: %w", day, err)
	}
	return rec, nil
}

func (r *SQLiteRepository) HabitByID(ctx context.Context, id int64) (core.HabitRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT date, created_at, breakfast, lunch, dinner, laundry, cleaning, shower, skincare,
		        check_in, check_out, leave_time, steps
		 FROM habit_logs WHERE id = ?`, id)
	rec, err := scanHabit(row)
	if err != nil {
		return rec, fmt.Errorf("get habit log %d: %w", id, err)
	}
	return rec, nil
}

// PendingSync returns up to limit records across all domains that still
// await backup, oldest first.
func (r *SQLiteRepository) PendingSync(ctx context.Context, limit int) ([]PendingSyncRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT domain, id, created_at FROM (
		    SELECT 'expenses' AS domain, id, created_at, sync_status FROM expenses
		    UNION ALL
		    SELECT 'sleep', id, created_at, sync_status FROM sleep_logs
		    UNION ALL
		    SELECT 'study', id, created_at, sync_status FROM study_sessions
		    UNION ALL
		    SELECT 'habits', id, created_at, sync_status FROM habit_logs
		 ) WHERE sync_status = ? ORDER BY created_at LIMIT ?`,
		SyncPending, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending sync records: %w", err)
	}
	defer rows.Close()

	var out []PendingSyncRecord
	for rows.Next() {
		var (
			p      PendingSyncRecord
			domain string
		)
		if err := rows.Scan(&domain, &p.ID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending sync record: %w", err)
		}
		if p.Domain, err = core.ParseDomain(domain); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkSynced marks a record as successfully backed up.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, domain core.Domain, id int64) error {
	return r.setSyncStatus(ctx, domain, id, SyncDone)
}

// MarkSyncError marks a record whose backup attempt failed.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, domain core.Domain, id int64) error {
	return r.setSyncStatus(ctx, domain, id, SyncError)
}

func (r *SQLiteRepository) setSyncStatus(ctx context.Context, domain core.Domain, id int64, status string) error {
	table, err := tableFor(domain)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET sync_status = ? WHERE id = ?", table), status, id)
	if err != nil {
		return fmt.Errorf("update sync status on %s: %w", table, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
