/*
store.go - Persistence and collaborator interfaces

PURPOSE:
  Defines what the lifecycle needs from the outside world. The core never
  talks to a database directly; it consumes these capabilities so that it
  can be tested with the in-memory store in worklog/store.

KEY INTERFACES:
  EntryLookup:    sibling entries for one owner and date (capacity guard)
  EntryStore:     CRUD over entries
  TxEntryStore:   EntryStore that can run read-then-write atomically
  SettingsSource: current settings, re-read on every call
  AuditSink:      fire-and-forget record of mutations
  CapacityAuditStore: after-the-fact sweep for days over 24h

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: database/sql + go-sqlite3
  - worklog/store/memory.go: in-memory for tests and dev
*/
package worklog

import (
	"context"
	"time"
)

// =============================================================================
// ENTRY STORE
// =============================================================================

// EntryLookup returns every entry the owner logged on date.
type EntryLookup interface {
	FindByOwnerAndDate(ctx context.Context, ownerID UserID, date Date) ([]Entry, error)
}

// EntryFilter narrows List. Zero values mean "no constraint".
type EntryFilter struct {
	OwnerID UserID
	From    Date
	To      Date
	Limit   int
}

// Matches reports whether e passes the filter (Limit is ignored).
func (f EntryFilter) Matches(e Entry) bool {
	if f.OwnerID != "" && e.OwnerID != f.OwnerID {
		return false
	}
	if !f.From.IsZero() && e.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.Date.After(f.To) {
		return false
	}
	return true
}

// EntryStore persists entries.
type EntryStore interface {
	EntryLookup

	// Get returns ErrEntryNotFound when id is unknown.
	Get(ctx context.Context, id EntryID) (*Entry, error)
	Insert(ctx context.Context, e Entry) error
	// Update replaces the stored entry with the same ID.
	Update(ctx context.Context, e Entry) error
	Delete(ctx context.Context, id EntryID) error
	// List returns matching entries ordered by date descending.
	List(ctx context.Context, filter EntryFilter) ([]Entry, error)
}

// TxEntryStore runs fn inside one storage transaction. If fn returns an
// error nothing it wrote is kept.
type TxEntryStore interface {
	EntryStore
	WithTx(ctx context.Context, fn func(EntryStore) error) error
}

// =============================================================================
// SETTINGS
// =============================================================================

// SettingsSource yields the current settings. Implementations must not
// cache: an admin update applies to the next call.
type SettingsSource interface {
	Current(ctx context.Context) (Settings, error)
}

// StaticSettings is a fixed SettingsSource, handy in tests.
type StaticSettings Settings

func (s StaticSettings) Current(context.Context) (Settings, error) { return Settings(s), nil }

// =============================================================================
// AUDIT
// =============================================================================

type AuditAction string

const (
	AuditEntryCreated     AuditAction = "entry_created"
	AuditEntryUpdated     AuditAction = "entry_updated"
	AuditEntryDeleted     AuditAction = "entry_deleted"
	AuditEntryRejected    AuditAction = "entry_rejected"
	AuditLeaveDayCreated  AuditAction = "leave_day_created"
	AuditLeaveDayDeleted  AuditAction = "leave_day_deleted"
	AuditSettingsUpdated  AuditAction = "settings_updated"
	AuditCapacityExceeded AuditAction = "capacity_violation_found"
)

// AuditRecord records who did what when.
type AuditRecord struct {
	ID        string
	At        time.Time
	ActorID   UserID
	ActorRole Role
	Action    AuditAction
	EntryID   EntryID
	OwnerID   UserID
	Date      Date
	Details   map[string]any
}

// AuditQuery narrows an audit log read. Zero values mean "no constraint".
type AuditQuery struct {
	ActorID UserID
	EntryID EntryID
	Action  AuditAction
	Limit   int
}

// AuditSink stores audit records. Failures never fail the mutation.
type AuditSink interface {
	Record(ctx context.Context, rec AuditRecord) error
}

type nopAudit struct{}

func (nopAudit) Record(context.Context, AuditRecord) error { return nil }

// =============================================================================
// CAPACITY AUDIT
// =============================================================================

// DayTotal is what one owner logged on one date.
type DayTotal struct {
	OwnerID UserID   `json:"ownerId"`
	Date    Date     `json:"date"`
	Total   Duration `json:"total"`
}

// CapacityAudit is the outcome of one sweep for days over capacity.
type CapacityAudit struct {
	ID         string     `json:"id"`
	RunAt      time.Time  `json:"runAt"`
	From       Date       `json:"from"`
	To         Date       `json:"to"`
	Violations []DayTotal `json:"violations"`
}

// CapacityAuditStore finds days that slipped past the capacity guard and
// keeps the sweep history.
type CapacityAuditStore interface {
	// OverCapacityDays returns every (owner, date) in [from, to] whose total
	// exceeds 24h, oldest first.
	OverCapacityDays(ctx context.Context, from, to Date) ([]DayTotal, error)
	SaveCapacityAudit(ctx context.Context, a CapacityAudit) error
	ListCapacityAudits(ctx context.Context, limit int) ([]CapacityAudit, error)
}
