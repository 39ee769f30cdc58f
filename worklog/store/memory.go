// Package store provides in-memory implementations of the worklog storage
// interfaces.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/worklog"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements worklog.TxEntryStore, worklog.LeaveCalendar and
// worklog.AuditSink.
type Memory struct {
	mu      sync.RWMutex
	entries map[worklog.EntryID]worklog.Entry
	byDay   map[dayKey][]worklog.EntryID
	leave   map[string]worklog.LeaveDay // keyed by date string
	audit   []worklog.AuditRecord
}

type dayKey struct {
	OwnerID worklog.UserID
	Date    string
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[worklog.EntryID]worklog.Entry),
		byDay:   make(map[dayKey][]worklog.EntryID),
		leave:   make(map[string]worklog.LeaveDay),
	}
}

var (
	_ worklog.TxEntryStore  = (*Memory)(nil)
	_ worklog.LeaveCalendar = (*Memory)(nil)
	_ worklog.AuditSink     = (*Memory)(nil)
)

func keyOf(e worklog.Entry) dayKey {
	return dayKey{OwnerID: e.OwnerID, Date: e.Date.String()}
}

// =============================================================================
// ENTRIES
// =============================================================================

func (m *Memory) FindByOwnerAndDate(_ context.Context, ownerID worklog.UserID, date worklog.Date) ([]worklog.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findLocked(ownerID, date), nil
}

func (m *Memory) findLocked(ownerID worklog.UserID, date worklog.Date) []worklog.Entry {
	ids := m.byDay[dayKey{OwnerID: ownerID, Date: date.String()}]
	result := make([]worklog.Entry, 0, len(ids))
	for _, id := range ids {
		result = append(result, m.entries[id])
	}
	return result
}

func (m *Memory) Get(_ context.Context, id worklog.EntryID) (*worklog.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, worklog.ErrEntryNotFound
	}
	return &e, nil
}

func (m *Memory) Insert(_ context.Context, e worklog.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertLocked(e)
	return nil
}

func (m *Memory) insertLocked(e worklog.Entry) {
	m.entries[e.ID] = e
	k := keyOf(e)
	m.byDay[k] = append(m.byDay[k], e.ID)
}

func (m *Memory) Update(_ context.Context, e worklog.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateLocked(e)
}

func (m *Memory) updateLocked(e worklog.Entry) error {
	if _, ok := m.entries[e.ID]; !ok {
		return worklog.ErrEntryNotFound
	}
	m.deleteLocked(e.ID)
	m.insertLocked(e)
	return nil
}

func (m *Memory) Delete(_ context.Context, id worklog.EntryID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return worklog.ErrEntryNotFound
	}
	m.deleteLocked(id)
	return nil
}

func (m *Memory) deleteLocked(id worklog.EntryID) {
	old := m.entries[id]
	k := keyOf(old)
	ids := m.byDay[k]
	for i, other := range ids {
		if other == id {
			ids = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(m.byDay, k)
	} else {
		m.byDay[k] = ids
	}
	delete(m.entries, id)
}

func (m *Memory) List(_ context.Context, filter worklog.EntryFilter) ([]worklog.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listLocked(filter), nil
}

func (m *Memory) listLocked(filter worklog.EntryFilter) []worklog.Entry {
	var result []worklog.Entry
	for _, e := range m.entries {
		if filter.Matches(e) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx runs fn with exclusive access. Writes made by fn are rolled back if
// it returns an error.
func (m *Memory) WithTx(_ context.Context, fn func(worklog.EntryStore) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshot()
	if err := fn(&txView{parent: m}); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

type memorySnapshot struct {
	entries map[worklog.EntryID]worklog.Entry
	byDay   map[dayKey][]worklog.EntryID
}

func (m *Memory) snapshot() memorySnapshot {
	entries := make(map[worklog.EntryID]worklog.Entry, len(m.entries))
	for k, v := range m.entries {
		entries[k] = v
	}
	byDay := make(map[dayKey][]worklog.EntryID, len(m.byDay))
	for k, v := range m.byDay {
		byDay[k] = append([]worklog.EntryID(nil), v...)
	}
	return memorySnapshot{entries: entries, byDay: byDay}
}

func (m *Memory) restore(s memorySnapshot) {
	m.entries = s.entries
	m.byDay = s.byDay
}

// txView operates on the parent while WithTx holds its lock.
type txView struct {
	parent *Memory
}

func (tv *txView) FindByOwnerAndDate(_ context.Context, ownerID worklog.UserID, date worklog.Date) ([]worklog.Entry, error) {
	return tv.parent.findLocked(ownerID, date), nil
}

func (tv *txView) Get(_ context.Context, id worklog.EntryID) (*worklog.Entry, error) {
	e, ok := tv.parent.entries[id]
	if !ok {
		return nil, worklog.ErrEntryNotFound
	}
	return &e, nil
}

func (tv *txView) Insert(_ context.Context, e worklog.Entry) error {
	tv.parent.insertLocked(e)
	return nil
}

func (tv *txView) Update(_ context.Context, e worklog.Entry) error {
	return tv.parent.updateLocked(e)
}

func (tv *txView) Delete(_ context.Context, id worklog.EntryID) error {
	if _, ok := tv.parent.entries[id]; !ok {
		return worklog.ErrEntryNotFound
	}
	tv.parent.deleteLocked(id)
	return nil
}

func (tv *txView) List(_ context.Context, filter worklog.EntryFilter) ([]worklog.Entry, error) {
	return tv.parent.listLocked(filter), nil
}

// =============================================================================
// LEAVE CALENDAR
// =============================================================================

// AddLeaveDay records (or replaces) the leave day for its date.
func (m *Memory) AddLeaveDay(ld worklog.LeaveDay) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leave[ld.Date.String()] = ld
}

func (m *Memory) LeaveDayOn(_ context.Context, date worklog.Date) (*worklog.LeaveDay, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ld, ok := m.leave[date.String()]
	if !ok {
		return nil, false, nil
	}
	return &ld, true, nil
}

// =============================================================================
// AUDIT
// =============================================================================

func (m *Memory) Record(_ context.Context, rec worklog.AuditRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audit = append(m.audit, rec)
	return nil
}

// AuditRecords returns a copy of everything recorded so far.
func (m *Memory) AuditRecords() []worklog.AuditRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]worklog.AuditRecord(nil), m.audit...)
}
