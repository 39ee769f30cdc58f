package sqlite_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/store/sqlite"
	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/worklog"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

var created = time.Date(2024, time.June, 10, 9, 30, 0, 0, time.UTC)

func entry(id, owner, date string, hours, minutes int) worklog.Entry {
	return worklog.Entry{
		ID:              worklog.EntryID(id),
		OwnerID:         worklog.UserID(owner),
		Date:            worklog.MustParseDate(date),
		Verticle:        "TRI",
		Country:         "DE",
		Task:            "Migration",
		TaskDescription: "moved tables",
		Duration:        worklog.Duration{Hours: hours, Minutes: minutes},
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}

// =============================================================================
// ENTRIES
// =============================================================================

func TestStore_EntryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	e := entry("e1", "u1", "2024-06-10", 8, 50)
	require.NoError(t, s.Insert(ctx, e))

	got, err := s.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, e, *got)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, worklog.ErrEntryNotFound)
}

func TestStore_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	require.NoError(t, s.Insert(ctx, entry("e1", "u1", "2024-06-10", 2, 0)))

	moved := entry("e1", "u1", "2024-06-09", 3, 20)
	moved.UpdatedAt = created.Add(time.Hour)
	require.NoError(t, s.Update(ctx, moved))

	onTenth, err := s.FindByOwnerAndDate(ctx, "u1", worklog.MustParseDate("2024-06-10"))
	require.NoError(t, err)
	assert.Empty(t, onTenth)

	onNinth, err := s.FindByOwnerAndDate(ctx, "u1", worklog.MustParseDate("2024-06-09"))
	require.NoError(t, err)
	require.Len(t, onNinth, 1)
	assert.Equal(t, worklog.Duration{Hours: 3, Minutes: 20}, onNinth[0].Duration)
	assert.Equal(t, moved.UpdatedAt, onNinth[0].UpdatedAt)

	require.NoError(t, s.Delete(ctx, "e1"))
	assert.ErrorIs(t, s.Delete(ctx, "e1"), worklog.ErrEntryNotFound)
	assert.ErrorIs(t, s.Update(ctx, moved), worklog.ErrEntryNotFound)
}

func TestStore_ListFilters(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	require.NoError(t, s.Insert(ctx, entry("a", "u1", "2024-06-08", 1, 0)))
	require.NoError(t, s.Insert(ctx, entry("b", "u1", "2024-06-10", 1, 0)))
	require.NoError(t, s.Insert(ctx, entry("c", "u2", "2024-06-09", 1, 0)))

	all, err := s.List(ctx, worklog.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, worklog.EntryID("b"), all[0].ID)
	assert.Equal(t, worklog.EntryID("a"), all[2].ID)

	mine, err := s.List(ctx, worklog.EntryFilter{OwnerID: "u1", From: worklog.MustParseDate("2024-06-09")})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, worklog.EntryID("b"), mine[0].ID)

	upTo, err := s.List(ctx, worklog.EntryFilter{To: worklog.MustParseDate("2024-06-09"), Limit: 1})
	require.NoError(t, err)
	require.Len(t, upTo, 1)
	assert.Equal(t, worklog.EntryID("c"), upTo[0].ID)
}

func TestStore_WithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	require.NoError(t, s.Insert(ctx, entry("a", "u1", "2024-06-10", 1, 0)))

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx worklog.EntryStore) error {
		require.NoError(t, tx.Insert(ctx, entry("b", "u1", "2024-06-10", 2, 0)))

		// The transaction sees its own write.
		siblings, err := tx.FindByOwnerAndDate(ctx, "u1", worklog.MustParseDate("2024-06-10"))
		require.NoError(t, err)
		assert.Len(t, siblings, 2)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Get(ctx, "b")
	assert.ErrorIs(t, err, worklog.ErrEntryNotFound)
}

// =============================================================================
// LEAVE DAYS
// =============================================================================

func TestStore_LeaveDays(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	xmas := worklog.LeaveDay{ID: "ld1", Date: worklog.MustParseDate("2024-12-25"), Description: "Christmas", CreatedBy: "admin", CreatedAt: created}
	newYear := worklog.LeaveDay{ID: "ld2", Date: worklog.MustParseDate("2025-01-01"), Description: "New Year", CreatedBy: "admin", CreatedAt: created}

	require.NoError(t, s.SaveLeaveDay(ctx, xmas))
	require.NoError(t, s.SaveLeaveDay(ctx, newYear))

	dup := xmas
	dup.ID = "ld3"
	assert.ErrorIs(t, s.SaveLeaveDay(ctx, dup), worklog.ErrLeaveDayExists)

	ld, ok, err := s.LeaveDayOn(ctx, xmas.Date)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, xmas, *ld)

	_, ok, err = s.LeaveDayOn(ctx, worklog.MustParseDate("2024-12-24"))
	require.NoError(t, err)
	assert.False(t, ok)

	in2024, err := s.ListLeaveDays(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, in2024, 1)
	assert.Equal(t, "Christmas", in2024[0].Description)

	all, err := s.ListLeaveDays(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, s.DeleteLeaveDay(ctx, "ld1"))
	assert.ErrorIs(t, s.DeleteLeaveDay(ctx, "ld1"), worklog.ErrLeaveDayNotFound)
	_, err = s.GetLeaveDay(ctx, "ld1")
	assert.ErrorIs(t, err, worklog.ErrLeaveDayNotFound)
}

// =============================================================================
// AUDIT
// =============================================================================

func TestStore_AuditNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for i, action := range []worklog.AuditAction{worklog.AuditEntryCreated, worklog.AuditEntryUpdated, worklog.AuditEntryRejected} {
		require.NoError(t, s.Record(ctx, worklog.AuditRecord{
			ID:        string(action),
			At:        created.Add(time.Duration(i) * time.Minute),
			ActorID:   "u1",
			ActorRole: worklog.RoleUser,
			Action:    action,
			EntryID:   "e1",
			OwnerID:   "u1",
			Date:      worklog.MustParseDate("2024-06-10"),
			Details:   map[string]any{"code": "x"},
		}))
	}
	require.NoError(t, s.Record(ctx, worklog.AuditRecord{
		ID: "settings", At: created.Add(time.Hour), ActorID: "admin", ActorRole: worklog.RoleAdmin,
		Action: worklog.AuditSettingsUpdated,
	}))

	recent, err := s.QueryAudit(ctx, worklog.AuditQuery{Limit: 2})
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, worklog.AuditSettingsUpdated, recent[0].Action)
	assert.True(t, recent[0].Date.IsZero())
	assert.Equal(t, worklog.AuditEntryRejected, recent[1].Action)
	assert.Equal(t, "x", recent[1].Details["code"])

	forEntry, err := s.QueryAudit(ctx, worklog.AuditQuery{EntryID: "e1", Action: worklog.AuditEntryCreated})
	require.NoError(t, err)
	require.Len(t, forEntry, 1)
	assert.Equal(t, "2024-06-10", forEntry[0].Date.String())
	assert.Equal(t, created, forEntry[0].At)
}

// =============================================================================
// CAPACITY AUDITS
// =============================================================================

func TestStore_OverCapacityDays(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	// Legacy data written around the guard.
	require.NoError(t, s.Insert(ctx, entry("a", "u1", "2024-06-10", 20, 0)))
	require.NoError(t, s.Insert(ctx, entry("b", "u1", "2024-06-10", 4, 10)))
	require.NoError(t, s.Insert(ctx, entry("c", "u2", "2024-06-10", 24, 0)))
	require.NoError(t, s.Insert(ctx, entry("d", "u1", "2024-05-01", 30, 0)))

	over, err := s.OverCapacityDays(ctx, worklog.MustParseDate("2024-06-01"), worklog.MustParseDate("2024-06-30"))
	require.NoError(t, err)
	require.Len(t, over, 1)
	assert.Equal(t, worklog.UserID("u1"), over[0].OwnerID)
	assert.Equal(t, worklog.Duration{Hours: 24, Minutes: 10}, over[0].Total)
}

func TestStore_CapacityAuditHistory(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	first := worklog.CapacityAudit{ID: "r1", RunAt: created, From: worklog.MustParseDate("2024-05-11"), To: worklog.MustParseDate("2024-06-10")}
	second := worklog.CapacityAudit{
		ID: "r2", RunAt: created.Add(time.Hour), From: first.From, To: first.To,
		Violations: []worklog.DayTotal{{OwnerID: "u1", Date: worklog.MustParseDate("2024-06-10"), Total: worklog.Duration{Hours: 25}}},
	}
	require.NoError(t, s.SaveCapacityAudit(ctx, first))
	require.NoError(t, s.SaveCapacityAudit(ctx, second))

	audits, err := s.ListCapacityAudits(ctx, 10)
	require.NoError(t, err)
	require.Len(t, audits, 2)
	assert.Equal(t, "r2", audits[0].ID)
	assert.Equal(t, second.Violations, audits[0].Violations)
	assert.Empty(t, audits[1].Violations)
	assert.Equal(t, first.From, audits[1].From)
}

// =============================================================================
// SERVICE INTEGRATION
// =============================================================================

func TestService_OnSQLite(t *testing.T) {
	// GIVEN: the coordinator wired to sqlite for entries, leave days and audit
	ctx := context.Background()
	s := newStore(t)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := worklog.NewService(s, s, worklog.StaticSettings(worklog.DefaultSettings()))
	svc.Audit = s
	svc.Log = logger

	now := time.Date(2024, time.June, 10, 15, 0, 0, 0, time.UTC)
	user := worklog.Actor{ID: "u1", Role: worklog.RoleUser}
	require.NoError(t, s.SaveLeaveDay(ctx, worklog.LeaveDay{ID: "ld", Date: worklog.MustParseDate("2024-06-09"), Description: "Eid", CreatedAt: now}))

	in := worklog.CreateInput{Date: worklog.MustParseDate("2024-06-10"), Verticle: "LOF", Country: "IN", Task: "Calls", Hours: decimal.NewFromInt(20)}

	// WHEN: the user fills the day and then overflows it
	first, err := svc.Create(ctx, user, in, now)
	require.NoError(t, err)

	in.Hours = decimal.RequireFromString("4.1")
	_, err = svc.Create(ctx, user, in, now)

	// THEN: the overflow is rejected, nothing extra is stored
	assert.ErrorIs(t, err, worklog.ErrCapacityExceeded)
	total, err := worklog.DailyTotal(ctx, s, "u1", in.Date)
	require.NoError(t, err)
	assert.Equal(t, worklog.Duration{Hours: 20}, total)

	// AND: moving the entry onto the leave day is refused
	_, err = svc.Update(ctx, user, first.ID, worklog.UpdateInput{Date: ptr(worklog.MustParseDate("2024-06-09"))}, now)
	assert.ErrorIs(t, err, worklog.ErrLeaveDayViolation)

	// AND: both outcomes are in the audit log
	records, err := s.QueryAudit(ctx, worklog.AuditQuery{})
	require.NoError(t, err)
	actions := map[worklog.AuditAction]int{}
	for _, r := range records {
		actions[r.Action]++
	}
	assert.Equal(t, 1, actions[worklog.AuditEntryCreated])
	assert.Equal(t, 2, actions[worklog.AuditEntryRejected])
}

func ptr[T any](v T) *T { return &v }
