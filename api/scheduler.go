/*
scheduler.go - Automated capacity audit scheduler

PURPOSE:
  Periodically scans recent days for owners whose logged total exceeds 24
  hours. The lifecycle guard prevents this within one process; the sweep
  catches what slipped past it (several replicas without a shared lock,
  manual database edits).

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Looks back LookbackDays calendar days from today
  - Logs every violation at Warn and records a capacity_violation_found
    audit entry for it
  - Stores one capacity_audits row per sweep for the admin UI

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - LookbackDays:  How far back each sweep looks (default: 31)
  - Enabled:       Whether scheduler is active (default: true)

USAGE:
  scheduler := NewCapacityAuditScheduler(store, store, log)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: RunCapacityAudit endpoint (manual sweep)
  - cmd/server/main.go: `audit` command (single sweep)
*/
package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/worklog"
)

// DefaultLookbackDays covers a full month of corrections.
const DefaultLookbackDays = 31

// CapacityAuditScheduler handles automated capacity sweeps.
type CapacityAuditScheduler struct {
	Store         worklog.CapacityAuditStore
	Audit         worklog.AuditSink
	Log           logrus.FieldLogger
	CheckInterval time.Duration
	LookbackDays  int
	Enabled       bool
	Now           func() time.Time

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewCapacityAuditScheduler creates a new scheduler. audit may be nil.
func NewCapacityAuditScheduler(store worklog.CapacityAuditStore, audit worklog.AuditSink, log logrus.FieldLogger) *CapacityAuditScheduler {
	return &CapacityAuditScheduler{
		Store:         store,
		Audit:         audit,
		Log:           log,
		CheckInterval: 1 * time.Hour,
		LookbackDays:  DefaultLookbackDays,
		Enabled:       true,
		Now:           time.Now,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (cs *CapacityAuditScheduler) Start() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !cs.Enabled {
		cs.Log.WithField("module", "scheduler").Info("capacity audit disabled, not starting")
		return
	}
	if cs.ticker != nil {
		return
	}

	cs.ticker = time.NewTicker(cs.CheckInterval)
	cs.stop = make(chan bool)
	cs.wg.Add(1)

	go cs.run()

	cs.Log.WithFields(logrus.Fields{
		"module":   "scheduler",
		"interval": cs.CheckInterval.String(),
	}).Info("capacity audit started")
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (cs *CapacityAuditScheduler) Stop() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.ticker != nil {
		cs.ticker.Stop()
		close(cs.stop)
		cs.wg.Wait()
		cs.ticker = nil
		cs.Log.WithField("module", "scheduler").Info("capacity audit stopped")
	}
}

func (cs *CapacityAuditScheduler) run() {
	defer cs.wg.Done()

	// Run immediately on start
	cs.RunNow()

	for {
		select {
		case <-cs.ticker.C:
			cs.RunNow()
		case <-cs.stop:
			return
		}
	}
}

// RunNow triggers an immediate sweep and logs its outcome.
func (cs *CapacityAuditScheduler) RunNow() {
	if _, err := cs.Sweep(context.Background()); err != nil {
		cs.Log.WithError(err).WithField("module", "scheduler").Error("capacity audit failed")
	}
}

// Sweep scans the lookback range once and stores the result.
func (cs *CapacityAuditScheduler) Sweep(ctx context.Context) (*worklog.CapacityAudit, error) {
	now := cs.now().UTC()
	lookback := cs.LookbackDays
	if lookback <= 0 {
		lookback = DefaultLookbackDays
	}
	to := worklog.DateOf(now)
	from := to.AddDays(-lookback)

	violations, err := cs.Store.OverCapacityDays(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to scan daily totals: %w", err)
	}
	if violations == nil {
		violations = []worklog.DayTotal{}
	}

	audit := worklog.CapacityAudit{
		ID:         uuid.NewString(),
		RunAt:      now,
		From:       from,
		To:         to,
		Violations: violations,
	}
	if err := cs.Store.SaveCapacityAudit(ctx, audit); err != nil {
		return nil, fmt.Errorf("failed to save capacity audit: %w", err)
	}

	for _, v := range violations {
		cs.Log.WithFields(logrus.Fields{
			"module":  "scheduler",
			"ownerId": v.OwnerID,
			"date":    v.Date.String(),
			"total":   v.Total.String(),
		}).Warn("owner exceeds daily capacity")
		cs.recordViolation(ctx, audit, v)
	}

	cs.Log.WithFields(logrus.Fields{
		"module":     "scheduler",
		"from":       from.String(),
		"to":         to.String(),
		"violations": len(violations),
	}).Info("capacity audit completed")
	return &audit, nil
}

func (cs *CapacityAuditScheduler) recordViolation(ctx context.Context, audit worklog.CapacityAudit, v worklog.DayTotal) {
	if cs.Audit == nil {
		return
	}
	err := cs.Audit.Record(ctx, worklog.AuditRecord{
		ID:        uuid.NewString(),
		At:        audit.RunAt,
		ActorID:   "system",
		ActorRole: worklog.RoleDeveloper,
		Action:    worklog.AuditCapacityExceeded,
		OwnerID:   v.OwnerID,
		Date:      v.Date,
		Details: map[string]any{
			"auditId":      audit.ID,
			"totalMinutes": v.Total.TotalMinutes(),
		},
	})
	if err != nil {
		cs.Log.WithError(err).WithField("module", "scheduler").Warn("failed to record audit entry")
	}
}

// GetNextRunTime returns when the next scheduled check will occur.
func (cs *CapacityAuditScheduler) GetNextRunTime() time.Time {
	return cs.now().Add(cs.CheckInterval)
}

func (cs *CapacityAuditScheduler) now() time.Time {
	if cs.Now == nil {
		return time.Now()
	}
	return cs.Now()
}
