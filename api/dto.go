/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the worklog domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Request types carry go-playground/validator tags for shape checks (required
  fields, date format, lengths). Business rules (windows, leave days,
  capacity, verticle set) are enforced by the worklog service, never here.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/worklog"
)

// =============================================================================
// ENTRIES
// =============================================================================

// PermissionDTO is what the caller may do with an entry.
type PermissionDTO struct {
	CanView           bool `json:"canView"`
	CanEdit           bool `json:"canEdit"`
	CanDelete         bool `json:"canDelete"`
	EditDaysRemaining *int `json:"editDaysRemaining,omitempty"`
}

// EntryDTO represents an entry in API responses.
type EntryDTO struct {
	ID              string         `json:"id"`
	OwnerID         string         `json:"ownerId"`
	Date            string         `json:"date"`
	Verticle        string         `json:"verticle"`
	Country         string         `json:"country"`
	Task            string         `json:"task"`
	TaskDescription string         `json:"taskDescription,omitempty"`
	Hours           int            `json:"hours"`
	Minutes         int            `json:"minutes"`
	Shorthand       string         `json:"shorthand"`
	Duration        string         `json:"duration"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt"`
	Permissions     *PermissionDTO `json:"permissions,omitempty"`
}

// CreateEntryRequest is the request to log time. OwnerID is only honoured
// for admins.
type CreateEntryRequest struct {
	OwnerID         string           `json:"ownerId" validate:"omitempty,max=128"`
	Date            string           `json:"date" validate:"required,datetime=2006-01-02"`
	Verticle        string           `json:"verticle" validate:"required"`
	Country         string           `json:"country" validate:"required,max=64"`
	Task            string           `json:"task" validate:"required,max=200"`
	TaskDescription string           `json:"taskDescription" validate:"max=1000"`
	Hours           *decimal.Decimal `json:"hours" validate:"required"`
}

// UpdateEntryRequest changes an entry. Omitted fields are left alone.
type UpdateEntryRequest struct {
	Date            *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Verticle        *string          `json:"verticle" validate:"omitempty,min=1"`
	Country         *string          `json:"country" validate:"omitempty,min=1,max=64"`
	Task            *string          `json:"task" validate:"omitempty,min=1,max=200"`
	TaskDescription *string          `json:"taskDescription" validate:"omitempty,max=1000"`
	Hours           *decimal.Decimal `json:"hours"`
}

// ValidateDateRequest asks whether a date can currently receive entries.
type ValidateDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// ValidateDateResponse answers a ValidateDateRequest. A rule violation is a
// normal answer here, not an error.
type ValidateDateResponse struct {
	Date        string `json:"date"`
	Valid       bool   `json:"valid"`
	Code        string `json:"code,omitempty"`
	Reason      string `json:"reason,omitempty"`
	WindowStart string `json:"windowStart"`
}

// NormalizeHoursRequest is the hour shorthand to canonicalize.
type NormalizeHoursRequest struct {
	Hours *decimal.Decimal `json:"hours" validate:"required"`
}

// NormalizeHoursResponse is the canonical form of the input.
type NormalizeHoursResponse struct {
	Input      string `json:"input"`
	Normalized string `json:"normalized"`
	Hours      int    `json:"hours"`
	Minutes    int    `json:"minutes"`
	Duration   string `json:"duration"`
}

// =============================================================================
// LEAVE DAYS
// =============================================================================

// LeaveDayDTO represents a leave day in API responses.
type LeaveDayDTO struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	CreatedBy   string `json:"createdBy,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// CreateLeaveDayRequest is the request to declare a leave day.
type CreateLeaveDayRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Description string `json:"description" validate:"required,max=200"`
}

// =============================================================================
// SETTINGS
// =============================================================================

// SettingsDTO is the edit window policy and verticle set.
type SettingsDTO struct {
	EditTimeLimitDays int      `json:"editTimeLimitDays"`
	Verticles         []string `json:"verticles"`
}

// UpdateSettingsRequest replaces the settings.
type UpdateSettingsRequest struct {
	EditTimeLimitDays *int     `json:"editTimeLimitDays" validate:"required,min=0,max=365"`
	Verticles         []string `json:"verticles" validate:"required,min=1,dive,required,max=32"`
}

// =============================================================================
// AUDIT
// =============================================================================

// AuditRecordDTO represents an audit record in API responses.
type AuditRecordDTO struct {
	ID        string         `json:"id"`
	At        string         `json:"at"`
	ActorID   string         `json:"actorId"`
	ActorRole string         `json:"actorRole"`
	Action    string         `json:"action"`
	EntryID   string         `json:"entryId,omitempty"`
	OwnerID   string         `json:"ownerId,omitempty"`
	Date      string         `json:"date,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toPermissionDTO(p worklog.Permission) *PermissionDTO {
	return &PermissionDTO{
		CanView:           p.CanView,
		CanEdit:           p.CanEdit,
		CanDelete:         p.CanDelete,
		EditDaysRemaining: p.EditDaysRemaining,
	}
}

func toEntryDTO(e worklog.Entry) EntryDTO {
	return EntryDTO{
		ID:              string(e.ID),
		OwnerID:         string(e.OwnerID),
		Date:            e.Date.String(),
		Verticle:        e.Verticle,
		Country:         e.Country,
		Task:            e.Task,
		TaskDescription: e.TaskDescription,
		Hours:           e.Duration.Hours,
		Minutes:         e.Duration.Minutes,
		Shorthand:       formatHours(e.Duration.Shorthand()),
		Duration:        e.Duration.String(),
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       e.UpdatedAt.Format(time.RFC3339),
	}
}

// formatHours keeps the scale of d, so 8.50 stays "8.50" rather than "8.5".
func formatHours(d decimal.Decimal) string {
	if d.Exponent() < 0 {
		return d.StringFixed(-d.Exponent())
	}
	return d.String()
}

func toEntryViewDTO(v worklog.EntryView) EntryDTO {
	dto := toEntryDTO(v.Entry)
	dto.Permissions = toPermissionDTO(v.Permission)
	return dto
}

func toLeaveDayDTO(ld worklog.LeaveDay) LeaveDayDTO {
	dto := LeaveDayDTO{
		ID:          ld.ID,
		Date:        ld.Date.String(),
		Description: ld.Description,
		CreatedBy:   string(ld.CreatedBy),
	}
	if !ld.CreatedAt.IsZero() {
		dto.CreatedAt = ld.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toAuditRecordDTO(r worklog.AuditRecord) AuditRecordDTO {
	dto := AuditRecordDTO{
		ID:        r.ID,
		At:        r.At.Format(time.RFC3339),
		ActorID:   string(r.ActorID),
		ActorRole: string(r.ActorRole),
		Action:    string(r.Action),
		EntryID:   string(r.EntryID),
		OwnerID:   string(r.OwnerID),
		Details:   r.Details,
	}
	if !r.Date.IsZero() {
		dto.Date = r.Date.String()
	}
	return dto
}

func toSettingsDTO(s worklog.Settings) SettingsDTO {
	verticles := s.Verticles
	if verticles == nil {
		verticles = []string{}
	}
	return SettingsDTO{EditTimeLimitDays: s.EditTimeLimitDays, Verticles: verticles}
}
