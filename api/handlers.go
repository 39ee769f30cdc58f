/*
handlers.go - HTTP API handlers for the TimeWise worklog

PURPOSE:
  Exposes the entry lifecycle via REST API. Handles HTTP request/response,
  JSON serialization and shape validation, and delegates every business
  decision to worklog.Service.

ENDPOINTS:
  Entries:
    GET    /api/entries                    List visible entries with permissions
    POST   /api/entries                    Create entry
    GET    /api/entries/{id}               Get entry with permissions
    PUT    /api/entries/{id}               Update entry
    DELETE /api/entries/{id}               Delete entry (admin)
    GET    /api/entries/{id}/permissions   What the caller may do with an entry
    POST   /api/entries/validate-date      Window + leave pre-check for a date

  Hours:
    POST   /api/hours/normalize            Canonicalize hour shorthand

  Leave days:
    GET    /api/leave-days                 List leave days (?year=)
    POST   /api/leave-days                 Declare leave day (admin)
    DELETE /api/leave-days/{id}            Remove leave day (admin)

  Settings:
    GET    /api/settings                   Current edit window and verticles
    PUT    /api/admin/settings             Replace settings (admin)

  Admin:
    GET    /api/admin/audit                Audit log (admin, inspection)
    GET    /api/admin/capacity-audits      Capacity sweep history (admin)
    POST   /api/admin/capacity-audits/run  Run a sweep now (admin)

REQUEST FLOW:
  1. Actor comes from RequireActor (middleware.go)
  2. Decode and validate the body (validator tags in dto.go)
  3. Call worklog.Service with h.now()
  4. Serialize response, or map the error with writeDomainError

ERROR HANDLING:
  Errors are returned as JSON {error, code, details}:
  - 400: malformed input, invalid hours, invalid entry fields
  - 403: access denied
  - 404: entry or leave day not found
  - 409: day busy (retry), duplicate leave day
  - 422: edit window, date window, leave day, capacity rule violations
  - 500: internal errors (logged, details withheld)

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/config"
	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/store/sqlite"
	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/worklog"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// SettingsStore is a settings source an admin can write to.
type SettingsStore interface {
	worklog.SettingsSource
	Save(ctx context.Context, st worklog.Settings) (worklog.Settings, error)
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service  *worklog.Service
	Store    *sqlite.Store
	Settings SettingsStore
	Log      logrus.FieldLogger

	// Scheduler backs the manual capacity sweep endpoint. Optional.
	Scheduler *CapacityAuditScheduler

	// Now is the clock used for every permission and window decision.
	Now func() time.Time

	validate *validator.Validate
}

// NewHandler creates a handler around a wired service.
func NewHandler(svc *worklog.Service, store *sqlite.Store, settings SettingsStore, log logrus.FieldLogger) *Handler {
	return &Handler{
		Service:  svc,
		Store:    store,
		Settings: settings,
		Log:      log,
		Now:      time.Now,
		validate: validator.New(),
	}
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// =============================================================================
// ENTRY ENDPOINTS
// =============================================================================

// ListEntries returns the entries the caller may see.
// GET /api/entries?owner=&from=&to=&limit=
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	q := r.URL.Query()

	filter := worklog.EntryFilter{OwnerID: worklog.UserID(q.Get("owner"))}
	var err error
	if filter.From, err = optionalDate(q.Get("from")); err != nil {
		writeValidationError(w, "from", err)
		return
	}
	if filter.To, err = optionalDate(q.Get("to")); err != nil {
		writeValidationError(w, "to", err)
		return
	}
	if filter.Limit, err = optionalLimit(q.Get("limit")); err != nil {
		writeValidationError(w, "limit", err)
		return
	}

	views, err := h.Service.List(r.Context(), actor, filter, h.now())
	if err != nil {
		h.writeDomainError(w, "ListEntries", "Failed to list entries", err)
		return
	}

	dtos := make([]EntryDTO, 0, len(views))
	for _, v := range views {
		dtos = append(dtos, toEntryViewDTO(v))
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": dtos})
}

// CreateEntry logs time.
// POST /api/entries
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	var req CreateEntryRequest
	if !h.decode(w, r, &req) {
		return
	}
	date, err := worklog.ParseDate(req.Date)
	if err != nil {
		writeValidationError(w, "date", err)
		return
	}

	entry, err := h.Service.Create(r.Context(), actor, worklog.CreateInput{
		OwnerID:         worklog.UserID(strings.TrimSpace(req.OwnerID)),
		Date:            date,
		Verticle:        req.Verticle,
		Country:         req.Country,
		Task:            req.Task,
		TaskDescription: req.TaskDescription,
		Hours:           *req.Hours,
	}, h.now())
	if err != nil {
		h.writeDomainError(w, "CreateEntry", "Failed to create entry", err)
		return
	}

	dto := toEntryDTO(*entry)
	dto.Permissions = toPermissionDTO(h.permission(r.Context(), *entry, actor))
	writeJSON(w, http.StatusCreated, dto)
}

// GetEntry returns one entry with the caller's permissions on it.
// GET /api/entries/{id}
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	view, err := h.Service.Get(r.Context(), actor, worklog.EntryID(chi.URLParam(r, "id")), h.now())
	if err != nil {
		h.writeDomainError(w, "GetEntry", "Failed to get entry", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryViewDTO(*view))
}

// UpdateEntry changes an entry.
// PUT /api/entries/{id}
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	var req UpdateEntryRequest
	if !h.decode(w, r, &req) {
		return
	}

	in := worklog.UpdateInput{
		Verticle:        req.Verticle,
		Country:         req.Country,
		Task:            req.Task,
		TaskDescription: req.TaskDescription,
		Hours:           req.Hours,
	}
	if req.Date != nil {
		date, err := worklog.ParseDate(*req.Date)
		if err != nil {
			writeValidationError(w, "date", err)
			return
		}
		in.Date = &date
	}

	entry, err := h.Service.Update(r.Context(), actor, worklog.EntryID(chi.URLParam(r, "id")), in, h.now())
	if err != nil {
		h.writeDomainError(w, "UpdateEntry", "Failed to update entry", err)
		return
	}

	dto := toEntryDTO(*entry)
	dto.Permissions = toPermissionDTO(h.permission(r.Context(), *entry, actor))
	writeJSON(w, http.StatusOK, dto)
}

// DeleteEntry removes an entry. Admin only.
// DELETE /api/entries/{id}
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.Service.Delete(r.Context(), actor, worklog.EntryID(id), h.now()); err != nil {
		h.writeDomainError(w, "DeleteEntry", "Failed to delete entry", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "id": id})
}

// GetEntryPermissions reports what the caller may do with an entry.
// GET /api/entries/{id}/permissions
func (h *Handler) GetEntryPermissions(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	p, err := h.Service.PermissionFor(r.Context(), actor, worklog.EntryID(chi.URLParam(r, "id")), h.now())
	if err != nil {
		h.writeDomainError(w, "GetEntryPermissions", "Failed to compute permissions", err)
		return
	}
	writeJSON(w, http.StatusOK, toPermissionDTO(p))
}

// ValidateDate answers whether the caller may log against a date right now.
// A rule violation is a 200 with valid=false.
// POST /api/entries/validate-date
func (h *Handler) ValidateDate(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	ctx := r.Context()

	var req ValidateDateRequest
	if !h.decode(w, r, &req) {
		return
	}
	date, err := worklog.ParseDate(req.Date)
	if err != nil {
		writeValidationError(w, "date", err)
		return
	}

	st, err := h.Settings.Current(ctx)
	if err != nil {
		h.writeDomainError(w, "ValidateDate", "Failed to load settings", err)
		return
	}

	now := h.now()
	resp := ValidateDateResponse{
		Date:        date.String(),
		Valid:       true,
		WindowStart: worklog.WindowStart(now, st.EditTimeLimitDays).String(),
	}
	if err := h.Service.ValidateDate(ctx, actor, date, now); err != nil {
		if !worklog.IsRuleViolation(err) {
			h.writeDomainError(w, "ValidateDate", "Failed to validate date", err)
			return
		}
		resp.Valid = false
		resp.Code = worklog.Code(err)
		resp.Reason = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// NormalizeHours canonicalizes hour shorthand, e.g. 8.6 -> 9.
// POST /api/hours/normalize
func (h *Handler) NormalizeHours(w http.ResponseWriter, r *http.Request) {
	var req NormalizeHoursRequest
	if !h.decode(w, r, &req) {
		return
	}

	normalized, err := worklog.NormalizeHoursInput(*req.Hours)
	if err != nil {
		h.writeDomainError(w, "NormalizeHours", "Invalid hours", err)
		return
	}
	d, err := worklog.ParseHours(normalized)
	if err != nil {
		h.writeDomainError(w, "NormalizeHours", "Invalid hours", err)
		return
	}

	writeJSON(w, http.StatusOK, NormalizeHoursResponse{
		Input:      formatHours(*req.Hours),
		Normalized: formatHours(normalized),
		Hours:      d.Hours,
		Minutes:    d.Minutes,
		Duration:   d.String(),
	})
}

// permission is best effort: the entry was just committed, so a settings
// read failure only costs the annotation.
func (h *Handler) permission(ctx context.Context, e worklog.Entry, actor worklog.Actor) worklog.Permission {
	st, err := h.Settings.Current(ctx)
	if err != nil {
		h.Log.WithError(err).Warn("failed to load settings for permission annotation")
		return worklog.Permission{CanView: worklog.CanView(e, actor)}
	}
	return worklog.ComputePermission(e, actor, h.now(), st.EditTimeLimitDays)
}

// =============================================================================
// LEAVE DAY ENDPOINTS
// =============================================================================

// ListLeaveDays returns declared leave days.
// GET /api/leave-days?year=
func (h *Handler) ListLeaveDays(w http.ResponseWriter, r *http.Request) {
	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		var err error
		if year, err = strconv.Atoi(raw); err != nil || year < 1 {
			writeValidationError(w, "year", errors.New("must be a positive integer"))
			return
		}
	}

	days, err := h.Store.ListLeaveDays(r.Context(), year)
	if err != nil {
		h.writeDomainError(w, "ListLeaveDays", "Failed to list leave days", err)
		return
	}

	dtos := make([]LeaveDayDTO, 0, len(days))
	for _, ld := range days {
		dtos = append(dtos, toLeaveDayDTO(ld))
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaveDays": dtos})
}

// CreateLeaveDay declares an organisation-wide leave day.
// POST /api/leave-days
func (h *Handler) CreateLeaveDay(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	var req CreateLeaveDayRequest
	if !h.decode(w, r, &req) {
		return
	}
	date, err := worklog.ParseDate(req.Date)
	if err != nil {
		writeValidationError(w, "date", err)
		return
	}

	ld := worklog.LeaveDay{
		ID:          uuid.NewString(),
		Date:        date,
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   actor.ID,
		CreatedAt:   h.now().UTC(),
	}
	if err := h.Store.SaveLeaveDay(r.Context(), ld); err != nil {
		h.writeDomainError(w, "CreateLeaveDay", "Failed to create leave day", err)
		return
	}

	h.audit(r.Context(), worklog.AuditRecord{
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Action:    worklog.AuditLeaveDayCreated,
		Date:      ld.Date,
		Details:   map[string]any{"leaveDayId": ld.ID, "description": ld.Description},
	})
	writeJSON(w, http.StatusCreated, toLeaveDayDTO(ld))
}

// DeleteLeaveDay removes a leave day.
// DELETE /api/leave-days/{id}
func (h *Handler) DeleteLeaveDay(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	ld, err := h.Store.GetLeaveDay(ctx, id)
	if err != nil {
		h.writeDomainError(w, "DeleteLeaveDay", "Failed to get leave day", err)
		return
	}
	if err := h.Store.DeleteLeaveDay(ctx, id); err != nil {
		h.writeDomainError(w, "DeleteLeaveDay", "Failed to delete leave day", err)
		return
	}

	h.audit(ctx, worklog.AuditRecord{
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Action:    worklog.AuditLeaveDayDeleted,
		Date:      ld.Date,
		Details:   map[string]any{"leaveDayId": ld.ID, "description": ld.Description},
	})
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "id": id})
}

// =============================================================================
// SETTINGS ENDPOINTS
// =============================================================================

// GetSettings returns the current edit window and verticle set.
// GET /api/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := h.Settings.Current(r.Context())
	if err != nil {
		h.writeDomainError(w, "GetSettings", "Failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsDTO(st))
}

// UpdateSettings replaces the settings. The next request sees the change.
// PUT /api/admin/settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	ctx := r.Context()

	var req UpdateSettingsRequest
	if !h.decode(w, r, &req) {
		return
	}

	previous, err := h.Settings.Current(ctx)
	if err != nil {
		h.writeDomainError(w, "UpdateSettings", "Failed to load settings", err)
		return
	}
	saved, err := h.Settings.Save(ctx, worklog.Settings{
		EditTimeLimitDays: *req.EditTimeLimitDays,
		Verticles:         req.Verticles,
	})
	if errors.Is(err, config.ErrInvalidSettings) {
		writeErrorCode(w, http.StatusBadRequest, "Invalid settings", "validation_failed", err.Error())
		return
	}
	if err != nil {
		h.writeDomainError(w, "UpdateSettings", "Failed to save settings", err)
		return
	}

	h.audit(ctx, worklog.AuditRecord{
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Action:    worklog.AuditSettingsUpdated,
		Details: map[string]any{
			"previousEditTimeLimitDays": previous.EditTimeLimitDays,
			"editTimeLimitDays":         saved.EditTimeLimitDays,
			"verticles":                 saved.Verticles,
		},
	})
	writeJSON(w, http.StatusOK, toSettingsDTO(saved))
}

// =============================================================================
// ADMIN ENDPOINTS
// =============================================================================

// ListAudit returns the audit log, newest first.
// GET /api/admin/audit?limit=&actor=&entry=&action=
func (h *Handler) ListAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := optionalLimit(q.Get("limit"))
	if err != nil {
		writeValidationError(w, "limit", err)
		return
	}

	records, err := h.Store.QueryAudit(r.Context(), worklog.AuditQuery{
		ActorID: worklog.UserID(q.Get("actor")),
		EntryID: worklog.EntryID(q.Get("entry")),
		Action:  worklog.AuditAction(q.Get("action")),
		Limit:   limit,
	})
	if err != nil {
		h.writeDomainError(w, "ListAudit", "Failed to read audit log", err)
		return
	}

	dtos := make([]AuditRecordDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, toAuditRecordDTO(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": dtos})
}

// ListCapacityAudits returns recent capacity sweeps.
// GET /api/admin/capacity-audits?limit=
func (h *Handler) ListCapacityAudits(w http.ResponseWriter, r *http.Request) {
	limit, err := optionalLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeValidationError(w, "limit", err)
		return
	}

	audits, err := h.Store.ListCapacityAudits(r.Context(), limit)
	if err != nil {
		h.writeDomainError(w, "ListCapacityAudits", "Failed to list capacity audits", err)
		return
	}
	if audits == nil {
		audits = []worklog.CapacityAudit{}
	}
	resp := map[string]any{"audits": audits}
	if h.Scheduler != nil && h.Scheduler.Enabled {
		resp["nextRunAt"] = h.Scheduler.GetNextRunTime()
	}
	writeJSON(w, http.StatusOK, resp)
}

// RunCapacityAudit runs one sweep immediately.
// POST /api/admin/capacity-audits/run
func (h *Handler) RunCapacityAudit(w http.ResponseWriter, r *http.Request) {
	if h.Scheduler == nil {
		writeErrorCode(w, http.StatusServiceUnavailable, "Capacity audit scheduler not configured", "unavailable", nil)
		return
	}

	audit, err := h.Scheduler.Sweep(r.Context())
	if err != nil {
		h.writeDomainError(w, "RunCapacityAudit", "Capacity audit failed", err)
		return
	}
	writeJSON(w, http.StatusOK, audit)
}

// Health reports whether the database is reachable.
// GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(r.Context()); err != nil {
		h.writeDomainError(w, "Health", "Database unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

// audit records admin actions that do not go through the service. Failures
// are logged and never fail the request.
func (h *Handler) audit(ctx context.Context, rec worklog.AuditRecord) {
	rec.ID = uuid.NewString()
	rec.At = h.now().UTC()
	if err := h.Store.Record(ctx, rec); err != nil {
		h.Log.WithError(err).WithField("action", rec.Action).Warn("failed to record audit entry")
	}
}

// decode reads a JSON body into dst and runs its validator tags. On failure
// it writes a 400 and returns false.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "Invalid request body", "invalid_body", err.Error())
		return false
	}
	if err := h.validator().Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[jsonFieldName(fe.Field())] = fe.Tag()
			}
			writeErrorCode(w, http.StatusBadRequest, "Validation failed", "validation_failed", fields)
			return false
		}
		writeErrorCode(w, http.StatusBadRequest, "Validation failed", "validation_failed", err.Error())
		return false
	}
	return true
}

func (h *Handler) validator() *validator.Validate {
	if h.validate == nil {
		h.validate = validator.New()
	}
	return h.validate
}

func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func optionalDate(raw string) (worklog.Date, error) {
	if raw == "" {
		return worklog.Date{}, nil
	}
	return worklog.ParseDate(raw)
}

func optionalLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New("must be a non-negative integer")
	}
	return n, nil
}

// writeDomainError maps worklog errors to HTTP statuses. Anything outside
// the taxonomy is logged and reported as a 500 without internals.
func (h *Handler) writeDomainError(w http.ResponseWriter, funcName, message string, err error) {
	code := worklog.Code(err)
	status := statusFor(code)
	if status == http.StatusInternalServerError {
		config.LogError(h.Log, "api", funcName, message, nil, err)
		writeErrorCode(w, status, message, "internal", nil)
		return
	}
	writeErrorCode(w, status, err.Error(), code, errorDetails(err))
}

func statusFor(code string) int {
	switch code {
	case worklog.CodeInvalidDurationFormat, worklog.CodeInvalidEntry:
		return http.StatusBadRequest
	case worklog.CodeAccessDenied:
		return http.StatusForbidden
	case worklog.CodeEntryNotFound, worklog.CodeLeaveDayNotFound:
		return http.StatusNotFound
	case worklog.CodeDayBusy, worklog.CodeLeaveDayExists:
		return http.StatusConflict
	case worklog.CodeEditWindowExpired, worklog.CodeFutureDateNotAllowed, worklog.CodeWindowExpired,
		worklog.CodeLeaveDayViolation, worklog.CodeCapacityExceeded:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// errorDetails exposes the context carried by structured errors.
func errorDetails(err error) any {
	var (
		capErr    *worklog.CapacityError
		editErr   *worklog.EditWindowError
		dateErr   *worklog.DateWindowError
		leaveErr  *worklog.LeaveDayError
		fieldErr  *worklog.InvalidEntryError
		formatErr *worklog.DurationFormatError
	)
	switch {
	case errors.As(err, &capErr):
		return map[string]any{
			"date":         capErr.Date.String(),
			"currentTotal": capErr.CurrentTotal.String(),
			"attempted":    capErr.Attempted.String(),
			"limit":        worklog.MaxHoursPerDay,
		}
	case errors.As(err, &editErr):
		return map[string]any{
			"date":          editErr.Date.String(),
			"daysSince":     editErr.DaysSince,
			"limitDays":     editErr.LimitDays,
			"daysRemaining": editErr.DaysRemaining,
		}
	case errors.As(err, &dateErr):
		return map[string]any{
			"date":      dateErr.Date.String(),
			"daysSince": dateErr.DaysSince,
			"limitDays": dateErr.LimitDays,
			"future":    dateErr.Future,
		}
	case errors.As(err, &leaveErr):
		return map[string]any{
			"date":        leaveErr.Date.String(),
			"description": leaveErr.Description,
		}
	case errors.As(err, &fieldErr):
		return map[string]any{"field": fieldErr.Field, "reason": fieldErr.Reason}
	case errors.As(err, &formatErr):
		return map[string]any{"input": formatErr.Raw.String()}
	case errors.Is(err, worklog.ErrDayBusy):
		return map[string]any{"retryable": true}
	}
	return nil
}

func writeValidationError(w http.ResponseWriter, field string, err error) {
	writeErrorCode(w, http.StatusBadRequest, "Validation failed", "validation_failed",
		map[string]string{field: err.Error()})
}

func writeErrorCode(w http.ResponseWriter, status int, message, code string, details any) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
