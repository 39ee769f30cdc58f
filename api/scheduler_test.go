package api

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/worklog"
)

type fakeCapacityStore struct {
	mu      sync.Mutex
	over    []worklog.DayTotal
	saved   []worklog.CapacityAudit
	saveErr error
	from    worklog.Date
	to      worklog.Date
}

func (f *fakeCapacityStore) OverCapacityDays(_ context.Context, from, to worklog.Date) ([]worklog.DayTotal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.from, f.to = from, to
	return f.over, nil
}

func (f *fakeCapacityStore) SaveCapacityAudit(_ context.Context, a worklog.CapacityAudit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, a)
	return nil
}

func (f *fakeCapacityStore) ListCapacityAudits(context.Context, int) ([]worklog.CapacityAudit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saved, nil
}

func (f *fakeCapacityStore) sweeps() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

type recordingSink struct {
	mu      sync.Mutex
	records []worklog.AuditRecord
}

func (s *recordingSink) Record(_ context.Context, rec worklog.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func quietLog() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestCapacityAuditScheduler_SweepRange(t *testing.T) {
	// GIVEN: one owner over capacity yesterday
	store := &fakeCapacityStore{over: []worklog.DayTotal{{
		OwnerID: "alice",
		Date:    worklog.MustParseDate("2025-06-09"),
		Total:   worklog.Duration{Hours: 25},
	}}}
	sink := &recordingSink{}
	cs := NewCapacityAuditScheduler(store, sink, quietLog())
	cs.Now = func() time.Time { return testNow }
	cs.LookbackDays = 7

	// WHEN
	audit, err := cs.Sweep(context.Background())

	// THEN: the range ends today and the violation is stored and audited
	require.NoError(t, err)
	assert.Equal(t, "2025-06-03", store.from.String())
	assert.Equal(t, "2025-06-10", store.to.String())
	assert.Len(t, audit.Violations, 1)
	assert.Equal(t, 1, store.sweeps())

	require.Len(t, sink.records, 1)
	assert.Equal(t, worklog.AuditCapacityExceeded, sink.records[0].Action)
	assert.Equal(t, worklog.UserID("alice"), sink.records[0].OwnerID)
	assert.Equal(t, 25*60, sink.records[0].Details["totalMinutes"])
}

func TestCapacityAuditScheduler_CleanSweepStillRecorded(t *testing.T) {
	store := &fakeCapacityStore{}
	cs := NewCapacityAuditScheduler(store, nil, quietLog())

	audit, err := cs.Sweep(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, audit.Violations)
	assert.Empty(t, audit.Violations)
	assert.Equal(t, 1, store.sweeps())
}

func TestCapacityAuditScheduler_SaveFailure(t *testing.T) {
	store := &fakeCapacityStore{saveErr: errors.New("disk full")}
	cs := NewCapacityAuditScheduler(store, nil, quietLog())

	_, err := cs.Sweep(context.Background())
	assert.ErrorContains(t, err, "disk full")
}

func TestCapacityAuditScheduler_StartRunsImmediately(t *testing.T) {
	store := &fakeCapacityStore{}
	cs := NewCapacityAuditScheduler(store, nil, quietLog())
	cs.CheckInterval = time.Hour

	cs.Start()
	assert.Eventually(t, func() bool { return store.sweeps() == 1 }, time.Second, 5*time.Millisecond)
	cs.Stop()

	// Stop is idempotent.
	cs.Stop()
	assert.Equal(t, 1, store.sweeps())
}

func TestCapacityAuditScheduler_Disabled(t *testing.T) {
	store := &fakeCapacityStore{}
	cs := NewCapacityAuditScheduler(store, nil, quietLog())
	cs.Enabled = false

	cs.Start()
	cs.Stop()
	assert.Equal(t, 0, store.sweeps())
}
