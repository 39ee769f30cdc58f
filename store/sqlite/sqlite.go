/*
Package sqlite provides a SQLite-backed implementation of the worklog storage
interfaces.

PURPOSE:
  Implements every persistence capability the service needs using SQLite.
  In production the same patterns apply to PostgreSQL with minor SQL dialect
  differences.

INTERFACES IMPLEMENTED:
  worklog.TxEntryStore:       Entry CRUD plus atomic capacity check + write
  worklog.LeaveCalendar:      Leave day lookup for the validators
  worklog.AuditSink:          Append-only audit log
  worklog.CapacityAuditStore: Over-capacity sweep and its history

KEY TABLES:
  entries:         One row per timesheet entry (date as YYYY-MM-DD)
  leave_days:      Organisation-wide leave days, at most one per date
  audit_log:       Who did what, append-only
  capacity_audits: Results of the periodic over-capacity sweep

INDEXES:
  - idx_entries_owner_date: Capacity guard (hot path)
  - idx_entries_date:       Date range listing
  - idx_audit_at:           Newest-first audit reads

CONCURRENCY:
  Uses sync.RWMutex for thread-safety and a single connection, so WithTx is
  serializable within one process. Cross-process writers are serialized by
  the day locker (store/redis) before they reach the database.

USAGE:
  store, err := sqlite.New("./data/timewise.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  svc := worklog.NewService(store, store, settings)
  svc.Audit = store

MIGRATION:
  Schema is auto-migrated on New().
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/worklog"
)

// Store implements the worklog storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	_ worklog.TxEntryStore       = (*Store)(nil)
	_ worklog.LeaveCalendar      = (*Store)(nil)
	_ worklog.AuditSink          = (*Store)(nil)
	_ worklog.CapacityAuditStore = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: ":memory:" databases are per connection, and it makes
	// WithTx the only writer.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Timesheet entries
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		date TEXT NOT NULL,
		verticle TEXT NOT NULL,
		country TEXT NOT NULL,
		task TEXT NOT NULL,
		task_description TEXT NOT NULL DEFAULT '',
		hours INTEGER NOT NULL,
		minutes INTEGER NOT NULL CHECK (minutes >= 0 AND minutes < 60),
		total_minutes INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Capacity guard: all entries of one owner on one date
	CREATE INDEX IF NOT EXISTS idx_entries_owner_date
		ON entries(owner_id, date);
	CREATE INDEX IF NOT EXISTS idx_entries_date
		ON entries(date DESC);

	-- Leave days (one per date)
	CREATE TABLE IF NOT EXISTS leave_days (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	-- Audit log (append-only)
	CREATE TABLE IF NOT EXISTS audit_log (
		id TEXT PRIMARY KEY,
		at TEXT NOT NULL,
		actor_id TEXT NOT NULL,
		actor_role TEXT NOT NULL,
		action TEXT NOT NULL,
		entry_id TEXT,
		owner_id TEXT,
		date TEXT,
		details_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_audit_at
		ON audit_log(at DESC);
	CREATE INDEX IF NOT EXISTS idx_audit_entry
		ON audit_log(entry_id) WHERE entry_id IS NOT NULL;

	-- Capacity audit sweeps
	CREATE TABLE IF NOT EXISTS capacity_audits (
		id TEXT PRIMARY KEY,
		run_at TEXT NOT NULL,
		range_from TEXT NOT NULL,
		range_to TEXT NOT NULL,
		violation_count INTEGER NOT NULL,
		violations_json TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// ENTRY STORE (worklog.EntryStore interface)
// =============================================================================

const entryColumns = `id, owner_id, date, verticle, country, task, task_description,
	hours, minutes, created_at, updated_at`

// FindByOwnerAndDate returns all entries the owner logged on date.
func (s *Store) FindByOwnerAndDate(ctx context.Context, ownerID worklog.UserID, date worklog.Date) ([]worklog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByOwnerAndDate(ctx, s.db, ownerID, date)
}

func findByOwnerAndDate(ctx context.Context, q querier, ownerID worklog.UserID, date worklog.Date) ([]worklog.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries
		WHERE owner_id = ? AND date = ?
		ORDER BY created_at ASC`
	return queryEntries(ctx, q, query, ownerID, date.String())
}

// Get returns an entry by ID.
func (s *Store) Get(ctx context.Context, id worklog.EntryID) (*worklog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getEntry(ctx, s.db, id)
}

func getEntry(ctx context.Context, q querier, id worklog.EntryID) (*worklog.Entry, error) {
	entries, err := queryEntries(ctx, q, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, worklog.ErrEntryNotFound
	}
	return &entries[0], nil
}

// Insert stores a new entry.
func (s *Store) Insert(ctx context.Context, e worklog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return insertEntry(ctx, s.db, e)
}

func insertEntry(ctx context.Context, q querier, e worklog.Entry) error {
	query := `
		INSERT INTO entries
		(id, owner_id, date, verticle, country, task, task_description,
		 hours, minutes, total_minutes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := q.ExecContext(ctx, query,
		e.ID,
		e.OwnerID,
		e.Date.String(),
		e.Verticle,
		e.Country,
		e.Task,
		e.TaskDescription,
		e.Duration.Hours,
		e.Duration.Minutes,
		e.Duration.TotalMinutes(),
		formatTime(e.CreatedAt),
		formatTime(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

// Update replaces the stored entry with the same ID.
func (s *Store) Update(ctx context.Context, e worklog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return updateEntry(ctx, s.db, e)
}

func updateEntry(ctx context.Context, q querier, e worklog.Entry) error {
	query := `
		UPDATE entries SET
			owner_id = ?, date = ?, verticle = ?, country = ?, task = ?,
			task_description = ?, hours = ?, minutes = ?, total_minutes = ?,
			updated_at = ?
		WHERE id = ?
	`
	res, err := q.ExecContext(ctx, query,
		e.OwnerID,
		e.Date.String(),
		e.Verticle,
		e.Country,
		e.Task,
		e.TaskDescription,
		e.Duration.Hours,
		e.Duration.Minutes,
		e.Duration.TotalMinutes(),
		formatTime(e.UpdatedAt),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return requireAffected(res, worklog.ErrEntryNotFound)
}

// Delete removes an entry.
func (s *Store) Delete(ctx context.Context, id worklog.EntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteEntry(ctx, s.db, id)
}

func deleteEntry(ctx context.Context, q querier, id worklog.EntryID) error {
	res, err := q.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return requireAffected(res, worklog.ErrEntryNotFound)
}

// List returns matching entries ordered by date descending.
func (s *Store) List(ctx context.Context, filter worklog.EntryFilter) ([]worklog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listEntries(ctx, s.db, filter)
}

func listEntries(ctx context.Context, q querier, filter worklog.EntryFilter) ([]worklog.Entry, error) {
	var (
		where []string
		args  []any
	)
	if filter.OwnerID != "" {
		where = append(where, "owner_id = ?")
		args = append(args, filter.OwnerID)
	}
	if !filter.From.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, filter.From.String())
	}
	if !filter.To.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, filter.To.String())
	}

	query := `SELECT ` + entryColumns + ` FROM entries`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	return queryEntries(ctx, q, query, args...)
}

func queryEntries(ctx context.Context, q querier, query string, args ...any) ([]worklog.Entry, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []worklog.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func scanEntry(rows *sql.Rows) (worklog.Entry, error) {
	var (
		e         worklog.Entry
		date      string
		createdAt string
		updatedAt string
	)

	err := rows.Scan(
		&e.ID, &e.OwnerID, &date, &e.Verticle, &e.Country, &e.Task, &e.TaskDescription,
		&e.Duration.Hours, &e.Duration.Minutes, &createdAt, &updatedAt,
	)
	if err != nil {
		return e, fmt.Errorf("failed to scan entry: %w", err)
	}

	e.Date, err = worklog.ParseDate(date)
	if err != nil {
		return e, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return e, nil
}

// =============================================================================
// TRANSACTIONAL STORE (worklog.TxEntryStore interface)
// =============================================================================

// WithTx executes fn within a database transaction. Reads made through the
// store passed to fn see the transaction's own writes.
func (s *Store) WithTx(ctx context.Context, fn func(store worklog.EntryStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txStore{tx: sqlTx}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type txStore struct {
	tx *sql.Tx
}

func (ts *txStore) FindByOwnerAndDate(ctx context.Context, ownerID worklog.UserID, date worklog.Date) ([]worklog.Entry, error) {
	return findByOwnerAndDate(ctx, ts.tx, ownerID, date)
}

func (ts *txStore) Get(ctx context.Context, id worklog.EntryID) (*worklog.Entry, error) {
	return getEntry(ctx, ts.tx, id)
}

func (ts *txStore) Insert(ctx context.Context, e worklog.Entry) error {
	return insertEntry(ctx, ts.tx, e)
}

func (ts *txStore) Update(ctx context.Context, e worklog.Entry) error {
	return updateEntry(ctx, ts.tx, e)
}

func (ts *txStore) Delete(ctx context.Context, id worklog.EntryID) error {
	return deleteEntry(ctx, ts.tx, id)
}

func (ts *txStore) List(ctx context.Context, filter worklog.EntryFilter) ([]worklog.Entry, error) {
	return listEntries(ctx, ts.tx, filter)
}

// =============================================================================
// LEAVE DAYS (worklog.LeaveCalendar interface)
// =============================================================================

// LeaveDayOn returns the leave day recorded for date, if any.
func (s *Store) LeaveDayOn(ctx context.Context, date worklog.Date) (*worklog.LeaveDay, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	days, err := s.queryLeaveDays(ctx, `SELECT id, date, description, created_by, created_at
		FROM leave_days WHERE date = ?`, date.String())
	if err != nil {
		return nil, false, err
	}
	if len(days) == 0 {
		return nil, false, nil
	}
	return &days[0], true, nil
}

// SaveLeaveDay records a new leave day. A second leave day on the same date
// returns worklog.ErrLeaveDayExists.
func (s *Store) SaveLeaveDay(ctx context.Context, ld worklog.LeaveDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_days (id, date, description, created_by, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		ld.ID, ld.Date.String(), ld.Description, ld.CreatedBy, formatTime(ld.CreatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return worklog.ErrLeaveDayExists
		}
		return fmt.Errorf("failed to save leave day: %w", err)
	}
	return nil
}

// GetLeaveDay returns a leave day by ID.
func (s *Store) GetLeaveDay(ctx context.Context, id string) (*worklog.LeaveDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	days, err := s.queryLeaveDays(ctx, `SELECT id, date, description, created_by, created_at
		FROM leave_days WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, worklog.ErrLeaveDayNotFound
	}
	return &days[0], nil
}

// DeleteLeaveDay removes a leave day by ID.
func (s *Store) DeleteLeaveDay(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM leave_days WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete leave day: %w", err)
	}
	return requireAffected(res, worklog.ErrLeaveDayNotFound)
}

// ListLeaveDays returns leave days in date order. year == 0 lists all.
func (s *Store) ListLeaveDays(ctx context.Context, year int) ([]worklog.LeaveDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, date, description, created_by, created_at FROM leave_days`
	var args []any
	if year != 0 {
		query += ` WHERE date >= ? AND date <= ?`
		args = append(args, fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year))
	}
	query += ` ORDER BY date ASC`

	return s.queryLeaveDays(ctx, query, args...)
}

func (s *Store) queryLeaveDays(ctx context.Context, query string, args ...any) ([]worklog.LeaveDay, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave days: %w", err)
	}
	defer rows.Close()

	var days []worklog.LeaveDay
	for rows.Next() {
		var (
			ld        worklog.LeaveDay
			date      string
			createdAt string
		)
		if err := rows.Scan(&ld.ID, &date, &ld.Description, &ld.CreatedBy, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave day: %w", err)
		}
		if ld.Date, err = worklog.ParseDate(date); err != nil {
			return nil, fmt.Errorf("leave day %s: %w", ld.ID, err)
		}
		ld.CreatedAt = parseTime(createdAt)
		days = append(days, ld)
	}
	return days, rows.Err()
}

// =============================================================================
// AUDIT LOG (worklog.AuditSink interface)
// =============================================================================

// Record appends an audit record.
func (s *Store) Record(ctx context.Context, rec worklog.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	detailsJSON, err := json.Marshal(rec.Details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}

	date := ""
	if !rec.Date.IsZero() {
		date = rec.Date.String()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_log
		(id, at, actor_id, actor_role, action, entry_id, owner_id, date, details_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		formatTime(rec.At),
		rec.ActorID,
		rec.ActorRole,
		rec.Action,
		nullString(string(rec.EntryID)),
		nullString(string(rec.OwnerID)),
		nullString(date),
		string(detailsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// QueryAudit returns audit records newest first.
func (s *Store) QueryAudit(ctx context.Context, q worklog.AuditQuery) ([]worklog.AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		where []string
		args  []any
	)
	if q.ActorID != "" {
		where = append(where, "actor_id = ?")
		args = append(args, q.ActorID)
	}
	if q.EntryID != "" {
		where = append(where, "entry_id = ?")
		args = append(args, q.EntryID)
	}
	if q.Action != "" {
		where = append(where, "action = ?")
		args = append(args, q.Action)
	}

	query := `SELECT id, at, actor_id, actor_role, action, entry_id, owner_id, date, details_json
		FROM audit_log`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY at DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var records []worklog.AuditRecord
	for rows.Next() {
		var (
			rec         worklog.AuditRecord
			at          string
			entryID     sql.NullString
			ownerID     sql.NullString
			date        sql.NullString
			detailsJSON sql.NullString
		)
		if err := rows.Scan(&rec.ID, &at, &rec.ActorID, &rec.ActorRole, &rec.Action,
			&entryID, &ownerID, &date, &detailsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		rec.At = parseTime(at)
		rec.EntryID = worklog.EntryID(entryID.String)
		rec.OwnerID = worklog.UserID(ownerID.String)
		if date.Valid && date.String != "" {
			rec.Date, _ = worklog.ParseDate(date.String)
		}
		if detailsJSON.Valid && detailsJSON.String != "" && detailsJSON.String != "null" {
			if err := json.Unmarshal([]byte(detailsJSON.String), &rec.Details); err != nil {
				return nil, fmt.Errorf("audit record %s: %w", rec.ID, err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// =============================================================================
// CAPACITY AUDITS (worklog.CapacityAuditStore interface)
// =============================================================================

// OverCapacityDays returns (owner, date) groups in [from, to] whose total
// exceeds 24 hours.
func (s *Store) OverCapacityDays(ctx context.Context, from, to worklog.Date) ([]worklog.DayTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT owner_id, date, SUM(total_minutes) AS total
		FROM entries
		WHERE date >= ? AND date <= ?
		GROUP BY owner_id, date
		HAVING total > ?
		ORDER BY date ASC, owner_id ASC`,
		from.String(), to.String(), worklog.MaxHoursPerDay*60,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan daily totals: %w", err)
	}
	defer rows.Close()

	var totals []worklog.DayTotal
	for rows.Next() {
		var (
			dt      worklog.DayTotal
			date    string
			minutes int
		)
		if err := rows.Scan(&dt.OwnerID, &date, &minutes); err != nil {
			return nil, fmt.Errorf("failed to scan daily total: %w", err)
		}
		if dt.Date, err = worklog.ParseDate(date); err != nil {
			return nil, err
		}
		dt.Total = worklog.DurationFromMinutes(minutes)
		totals = append(totals, dt)
	}
	return totals, rows.Err()
}

// SaveCapacityAudit stores the result of one sweep.
func (s *Store) SaveCapacityAudit(ctx context.Context, a worklog.CapacityAudit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	violations := a.Violations
	if violations == nil {
		violations = []worklog.DayTotal{}
	}
	violationsJSON, err := json.Marshal(violations)
	if err != nil {
		return fmt.Errorf("failed to encode violations: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO capacity_audits (id, run_at, range_from, range_to, violation_count, violations_json)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, formatTime(a.RunAt), a.From.String(), a.To.String(), len(violations), string(violationsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save capacity audit: %w", err)
	}
	return nil
}

// ListCapacityAudits returns the most recent sweeps first.
func (s *Store) ListCapacityAudits(ctx context.Context, limit int) ([]worklog.CapacityAudit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_at, range_from, range_to, violations_json
		FROM capacity_audits
		ORDER BY run_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query capacity audits: %w", err)
	}
	defer rows.Close()

	var audits []worklog.CapacityAudit
	for rows.Next() {
		var (
			a              worklog.CapacityAudit
			runAt          string
			from, to       string
			violationsJSON string
		)
		if err := rows.Scan(&a.ID, &runAt, &from, &to, &violationsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan capacity audit: %w", err)
		}
		a.RunAt = parseTime(runAt)
		a.From, _ = worklog.ParseDate(from)
		a.To, _ = worklog.ParseDate(to)
		if err := json.Unmarshal([]byte(violationsJSON), &a.Violations); err != nil {
			return nil, fmt.Errorf("capacity audit %s: %w", a.ID, err)
		}
		audits = append(audits, a)
	}
	return audits, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// timeLayout is fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
