/*
lifecycle.go - Entry lifecycle coordinator

PURPOSE:
  Orchestrates the validators into the create / update / delete decision
  sequence. Each call is one attempt that ends Committed (entry returned,
  nil error) or Rejected (first failing stage's error, nothing written).

REQUEST FLOW:
  Create:  role gate -> fields -> window -> leave day -> normalize hours
           -> [day lock] capacity -> insert
  Update:  load -> permission (canEdit) -> apply changes
           -> (date changed) window + leave day on new date
           -> (hours changed) normalize -> fields
           -> [day lock] capacity excluding self -> update
  Delete:  admin only -> load -> delete

SETTINGS:
  editTimeLimitDays and the verticle set are read from the SettingsSource at
  the start of every call and passed down. Nothing is cached.

SIDE EFFECTS:
  Audit records are written after commit (and for rule rejections). An
  audit failure is logged and otherwise ignored.
*/
package worklog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const maxTaskDescription = 1000

// =============================================================================
// INPUTS
// =============================================================================

// CreateInput describes a new entry. OwnerID defaults to the actor; only
// admins may log on behalf of someone else.
type CreateInput struct {
	OwnerID         UserID
	Date            Date
	Verticle        string
	Country         string
	Task            string
	TaskDescription string
	Hours           decimal.Decimal
}

// UpdateInput carries the fields to change. Nil means unchanged.
type UpdateInput struct {
	Date            *Date
	Verticle        *string
	Country         *string
	Task            *string
	TaskDescription *string
	Hours           *decimal.Decimal
}

// EntryView pairs an entry with what the viewer may do with it.
type EntryView struct {
	Entry      Entry
	Permission Permission
}

// =============================================================================
// SERVICE
// =============================================================================

// Service is the lifecycle coordinator.
type Service struct {
	Entries  EntryStore
	Leave    LeaveCalendar
	Settings SettingsSource
	Locker   DayLocker
	Audit    AuditSink
	Log      logrus.FieldLogger

	// NewID generates entry IDs. Defaults to random UUIDs.
	NewID func() EntryID
}

// NewService wires a coordinator with an in-process day locker, no audit
// sink and the standard logger. Override the exported fields as needed.
func NewService(entries EntryStore, leave LeaveCalendar, settings SettingsSource) *Service {
	return &Service{
		Entries:  entries,
		Leave:    leave,
		Settings: settings,
		Locker:   NewKeyedLocker(),
		Audit:    nopAudit{},
		Log:      logrus.StandardLogger(),
		NewID:    func() EntryID { return EntryID(uuid.NewString()) },
	}
}

func (s *Service) settings(ctx context.Context) (Settings, error) {
	if s.Settings == nil {
		return DefaultSettings(), nil
	}
	st, err := s.Settings.Current(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return st, nil
}

// =============================================================================
// CREATE
// =============================================================================

// Create validates and commits a new entry.
func (s *Service) Create(ctx context.Context, actor Actor, in CreateInput, now time.Time) (*Entry, error) {
	st, err := s.settings(ctx)
	if err != nil {
		return nil, err
	}

	ownerID := in.OwnerID
	if ownerID == "" {
		ownerID = actor.ID
	}
	if err := canCreateFor(actor, ownerID); err != nil {
		return nil, s.reject(ctx, actor, "create", "", in.Date, now, err)
	}

	entry := Entry{
		ID:              s.NewID(),
		OwnerID:         ownerID,
		Date:            in.Date,
		Verticle:        strings.TrimSpace(in.Verticle),
		Country:         strings.TrimSpace(in.Country),
		Task:            strings.TrimSpace(in.Task),
		TaskDescription: strings.TrimSpace(in.TaskDescription),
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}
	if err := validateFields(entry, st); err != nil {
		return nil, s.reject(ctx, actor, "create", "", in.Date, now, err)
	}
	if err := ValidateEntryWindow(entry.Date, actor.Role, now, st.EditTimeLimitDays); err != nil {
		return nil, s.reject(ctx, actor, "create", "", in.Date, now, err)
	}
	if err := ValidateNotLeaveDay(ctx, entry.Date, actor.Role, s.Leave); err != nil {
		return nil, s.reject(ctx, actor, "create", "", in.Date, now, err)
	}
	entry.Duration, err = parsePositiveHours(in.Hours, entry.OwnerID, entry.Date)
	if err != nil {
		return nil, s.reject(ctx, actor, "create", "", in.Date, now, err)
	}

	err = s.commitDay(ctx, entry, func(store EntryStore) error {
		return store.Insert(ctx, entry)
	})
	if err != nil {
		return nil, s.reject(ctx, actor, "create", "", in.Date, now, err)
	}

	s.record(ctx, actor, AuditEntryCreated, entry, now, map[string]any{"minutes": entry.Duration.TotalMinutes()})
	return &entry, nil
}

func canCreateFor(actor Actor, ownerID UserID) error {
	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleUser:
		if ownerID == actor.ID {
			return nil
		}
	case RoleInspection, RoleDeveloper:
	}
	return &AccessDeniedError{ActorID: actor.ID, Role: actor.Role, Action: "create"}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update applies in to the entry with the given id.
func (s *Service) Update(ctx context.Context, actor Actor, id EntryID, in UpdateInput, now time.Time) (*Entry, error) {
	st, err := s.settings(ctx)
	if err != nil {
		return nil, err
	}

	current, err := s.Entries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireEdit(*current, actor, now, st.EditTimeLimitDays); err != nil {
		return nil, s.reject(ctx, actor, "update", id, current.Date, now, err)
	}

	next := *current
	if in.Date != nil && !in.Date.Equal(current.Date) {
		next.Date = *in.Date
		if err := ValidateEntryWindow(next.Date, actor.Role, now, st.EditTimeLimitDays); err != nil {
			return nil, s.reject(ctx, actor, "update", id, next.Date, now, err)
		}
		if err := ValidateNotLeaveDay(ctx, next.Date, actor.Role, s.Leave); err != nil {
			return nil, s.reject(ctx, actor, "update", id, next.Date, now, err)
		}
	}
	if in.Hours != nil {
		next.Duration, err = parsePositiveHours(*in.Hours, next.OwnerID, next.Date)
		if err != nil {
			return nil, s.reject(ctx, actor, "update", id, next.Date, now, err)
		}
	}
	applyText(&next.Verticle, in.Verticle)
	applyText(&next.Country, in.Country)
	applyText(&next.Task, in.Task)
	applyText(&next.TaskDescription, in.TaskDescription)

	// A stored verticle that was later removed from settings stays valid
	// until someone changes it.
	check := st
	if in.Verticle == nil {
		check.Verticles = append(append([]string(nil), st.Verticles...), current.Verticle)
	}
	if err := validateFields(next, check); err != nil {
		return nil, s.reject(ctx, actor, "update", id, next.Date, now, err)
	}

	next.UpdatedAt = now.UTC()
	err = s.commitDay(ctx, next, func(store EntryStore) error {
		return store.Update(ctx, next)
	})
	if err != nil {
		return nil, s.reject(ctx, actor, "update", id, next.Date, now, err)
	}

	details := map[string]any{"minutes": next.Duration.TotalMinutes()}
	if !next.Date.Equal(current.Date) {
		details["previousDate"] = current.Date.String()
	}
	s.record(ctx, actor, AuditEntryUpdated, next, now, details)
	return &next, nil
}

func applyText(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// =============================================================================
// DELETE
// =============================================================================

// Delete removes an entry. Only admins delete; it is a moderation action,
// not self-service.
func (s *Service) Delete(ctx context.Context, actor Actor, id EntryID, now time.Time) error {
	if actor.Role != RoleAdmin {
		return s.reject(ctx, actor, "delete", id, Date{}, now, &AccessDeniedError{
			ActorID: actor.ID, Role: actor.Role, EntryID: id, Action: "delete",
		})
	}

	current, err := s.Entries.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Entries.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", id, err)
	}

	s.record(ctx, actor, AuditEntryDeleted, *current, now, map[string]any{"minutes": current.Duration.TotalMinutes()})
	return nil
}

// =============================================================================
// READS
// =============================================================================

// Get returns the entry and the actor's permission on it.
func (s *Service) Get(ctx context.Context, actor Actor, id EntryID, now time.Time) (*EntryView, error) {
	st, err := s.settings(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.Entries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p := ComputePermission(*e, actor, now, st.EditTimeLimitDays)
	if !p.CanView {
		return nil, &AccessDeniedError{ActorID: actor.ID, Role: actor.Role, EntryID: id, Action: "view"}
	}
	return &EntryView{Entry: *e, Permission: p}, nil
}

// List returns the entries the actor may see. Users only ever see their own
// entries whatever the filter says.
func (s *Service) List(ctx context.Context, actor Actor, filter EntryFilter, now time.Time) ([]EntryView, error) {
	switch actor.Role {
	case RoleAdmin, RoleInspection:
	case RoleUser:
		filter.OwnerID = actor.ID
	case RoleDeveloper:
		return nil, &AccessDeniedError{ActorID: actor.ID, Role: actor.Role, Action: "view"}
	default:
		return nil, &AccessDeniedError{ActorID: actor.ID, Role: actor.Role, Action: "view"}
	}

	st, err := s.settings(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.Entries.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	views := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		p := ComputePermission(e, actor, now, st.EditTimeLimitDays)
		if !p.CanView {
			continue
		}
		views = append(views, EntryView{Entry: e, Permission: p})
	}
	return views, nil
}

// PermissionFor is ComputePermission with the entry loaded by id and the
// current edit window.
func (s *Service) PermissionFor(ctx context.Context, actor Actor, id EntryID, now time.Time) (Permission, error) {
	st, err := s.settings(ctx)
	if err != nil {
		return Permission{}, err
	}
	e, err := s.Entries.Get(ctx, id)
	if err != nil {
		return Permission{}, err
	}
	return ComputePermission(*e, actor, now, st.EditTimeLimitDays), nil
}

// ValidateDate runs the date-only checks for a candidate date, so a client
// can grey out days before the user types anything.
func (s *Service) ValidateDate(ctx context.Context, actor Actor, date Date, now time.Time) error {
	st, err := s.settings(ctx)
	if err != nil {
		return err
	}
	if err := ValidateEntryWindow(date, actor.Role, now, st.EditTimeLimitDays); err != nil {
		return err
	}
	return ValidateNotLeaveDay(ctx, date, actor.Role, s.Leave)
}

// =============================================================================
// COMMIT
// =============================================================================

// commitDay holds the day lock for e's owner and date, re-checks capacity
// against what is stored now and runs write. On transactional stores the
// read and the write share one transaction.
func (s *Service) commitDay(ctx context.Context, e Entry, write func(EntryStore) error) error {
	unlock, err := s.Locker.Lock(ctx, e.OwnerID, e.Date)
	if err != nil {
		return err
	}
	defer unlock()

	run := func(store EntryStore) error {
		if err := validateDuration(ctx, store, e.OwnerID, e.Date, e.Duration, e.ID); err != nil {
			return err
		}
		return write(store)
	}

	if tx, ok := s.Entries.(TxEntryStore); ok {
		return tx.WithTx(ctx, run)
	}
	return run(s.Entries)
}

// =============================================================================
// HELPERS
// =============================================================================

func parsePositiveHours(raw decimal.Decimal, ownerID UserID, date Date) (Duration, error) {
	d, err := ParseHours(raw)
	if err != nil {
		var capErr *CapacityError
		if errors.As(err, &capErr) {
			capErr.OwnerID = ownerID
			capErr.Date = date
		}
		return Duration{}, err
	}
	if d.IsZero() {
		return Duration{}, &InvalidEntryError{Field: "hours", Reason: "must be greater than zero"}
	}
	return d, nil
}

func validateFields(e Entry, st Settings) error {
	if e.OwnerID == "" {
		return &InvalidEntryError{Field: "ownerId", Reason: "is required"}
	}
	if e.Date.IsZero() {
		return &InvalidEntryError{Field: "date", Reason: "is required"}
	}
	if !st.HasVerticle(e.Verticle) {
		return &InvalidEntryError{Field: "verticle", Reason: fmt.Sprintf("must be one of %s", strings.Join(st.Verticles, ", "))}
	}
	if e.Country == "" {
		return &InvalidEntryError{Field: "country", Reason: "is required"}
	}
	if e.Task == "" {
		return &InvalidEntryError{Field: "task", Reason: "is required"}
	}
	if len(e.TaskDescription) > maxTaskDescription {
		return &InvalidEntryError{Field: "taskDescription", Reason: fmt.Sprintf("must be at most %d characters", maxTaskDescription)}
	}
	return nil
}

// reject logs a failed mutation and, for rule violations, leaves an audit
// trail. The error is returned unchanged.
func (s *Service) reject(ctx context.Context, actor Actor, op string, id EntryID, date Date, now time.Time, err error) error {
	fields := logrus.Fields{
		"op":      op,
		"actorId": actor.ID,
		"role":    actor.Role,
		"entryId": id,
	}
	if !date.IsZero() {
		fields["date"] = date.String()
	}

	if !IsRuleViolation(err) {
		if !errors.Is(err, ErrInvalidEntry) && !errors.Is(err, ErrDayBusy) {
			s.Log.WithFields(fields).WithError(err).Error("worklog mutation failed")
		}
		return err
	}

	fields["code"] = Code(err)
	s.Log.WithFields(fields).Info(err.Error())

	s.recordRaw(ctx, AuditRecord{
		At:        now.UTC(),
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Action:    AuditEntryRejected,
		EntryID:   id,
		Date:      date,
		Details:   map[string]any{"op": op, "code": Code(err), "reason": err.Error()},
	})
	return err
}

func (s *Service) record(ctx context.Context, actor Actor, action AuditAction, e Entry, now time.Time, details map[string]any) {
	s.Log.WithFields(logrus.Fields{
		"action":  action,
		"actorId": actor.ID,
		"entryId": e.ID,
		"ownerId": e.OwnerID,
		"date":    e.Date.String(),
	}).Debug("worklog mutation committed")

	s.recordRaw(ctx, AuditRecord{
		At:        now.UTC(),
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Action:    action,
		EntryID:   e.ID,
		OwnerID:   e.OwnerID,
		Date:      e.Date,
		Details:   details,
	})
}

func (s *Service) recordRaw(ctx context.Context, rec AuditRecord) {
	if s.Audit == nil {
		return
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if err := s.Audit.Record(ctx, rec); err != nil {
		s.Log.WithError(err).WithField("action", rec.Action).Warn("failed to record audit entry")
	}
}
