/*
errors.go - Closed error taxonomy for the entry lifecycle

PURPOSE:
  Every validator returns one of the rule errors below. The coordinator
  propagates the first one it meets and never downgrades it. Infrastructure
  failures (database, lock backend) are wrapped separately, so callers can
  tell "your request breaks a rule" from "something is broken".

ERROR CATEGORIES:
  1. Rule violations  - InvalidDurationFormat, AccessDenied, EditWindowExpired,
                        FutureDateNotAllowed, WindowExpired, LeaveDayViolation,
                        CapacityExceeded
  2. Request errors   - ErrEntryNotFound, ErrInvalidEntry, ErrLeaveDayNotFound,
                        ErrLeaveDayExists
  3. Contention       - ErrDayBusy (another writer holds the day lock)

USAGE:
  if errors.Is(err, worklog.ErrCapacityExceeded) {
      var capErr *worklog.CapacityError
      errors.As(err, &capErr)
      ...
  }

  code := worklog.Code(err) // stable machine code for API consumers
*/
package worklog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	ErrInvalidDurationFormat = errors.New("invalid duration format")
	ErrAccessDenied          = errors.New("access denied")
	ErrEditWindowExpired     = errors.New("edit window expired")
	ErrFutureDateNotAllowed  = errors.New("future date not allowed")
	ErrWindowExpired         = errors.New("date outside edit window")
	ErrLeaveDayViolation     = errors.New("date is a leave day")
	ErrCapacityExceeded      = errors.New("daily capacity exceeded")

	// ErrEntryNotFound is returned when the target entry does not exist.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrInvalidEntry is returned for malformed entry fields (unknown
	// verticle, empty task, ...).
	ErrInvalidEntry = errors.New("invalid entry")

	// ErrLeaveDayNotFound and ErrLeaveDayExists are returned by leave day
	// administration.
	ErrLeaveDayNotFound = errors.New("leave day not found")
	ErrLeaveDayExists   = errors.New("a leave day already exists for that date")

	// ErrDayBusy is returned when the per-day lock could not be obtained.
	// Safe to retry.
	ErrDayBusy = errors.New("day is being modified by another request")
)

// Stable codes, one per kind.
const (
	CodeInvalidDurationFormat = "invalid_duration_format"
	CodeAccessDenied          = "access_denied"
	CodeEditWindowExpired     = "edit_window_expired"
	CodeFutureDateNotAllowed  = "future_date_not_allowed"
	CodeWindowExpired         = "window_expired"
	CodeLeaveDayViolation     = "leave_day_violation"
	CodeCapacityExceeded      = "capacity_exceeded"
	CodeEntryNotFound         = "entry_not_found"
	CodeInvalidEntry          = "invalid_entry"
	CodeDayBusy               = "day_busy"
	CodeLeaveDayNotFound      = "leave_day_not_found"
	CodeLeaveDayExists        = "leave_day_exists"
)

var ruleCodes = []struct {
	err  error
	code string
}{
	{ErrInvalidDurationFormat, CodeInvalidDurationFormat},
	{ErrAccessDenied, CodeAccessDenied},
	{ErrEditWindowExpired, CodeEditWindowExpired},
	{ErrFutureDateNotAllowed, CodeFutureDateNotAllowed},
	{ErrWindowExpired, CodeWindowExpired},
	{ErrLeaveDayViolation, CodeLeaveDayViolation},
	{ErrCapacityExceeded, CodeCapacityExceeded},
}

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// DurationFormatError reports hour shorthand that cannot be normalized.
type DurationFormatError struct {
	Raw decimal.Decimal
}

func (e *DurationFormatError) Error() string {
	return fmt.Sprintf("invalid duration %s: use whole hours or .1-.6 (tens of minutes)", e.Raw.String())
}

func (e *DurationFormatError) Unwrap() error { return ErrInvalidDurationFormat }

// AccessDeniedError reports an actor touching an entry it has no rights on.
type AccessDeniedError struct {
	ActorID UserID
	Role    Role
	EntryID EntryID
	Action  string
}

func (e *AccessDeniedError) Error() string {
	if e.EntryID == "" {
		return fmt.Sprintf("access denied: %s (%s) may not %s entries", e.ActorID, e.Role, e.Action)
	}
	return fmt.Sprintf("access denied: %s (%s) may not %s entry %s", e.ActorID, e.Role, e.Action, e.EntryID)
}

func (e *AccessDeniedError) Unwrap() error { return ErrAccessDenied }

// EditWindowError reports an owner trying to modify an entry that has aged
// out of the rolling window.
type EditWindowError struct {
	EntryID       EntryID
	Date          Date
	DaysSince     int
	LimitDays     int
	DaysRemaining int
}

func (e *EditWindowError) Error() string {
	return fmt.Sprintf("edit window expired for entry %s dated %s: %d days old, limit %d days",
		e.EntryID, e.Date, e.DaysSince, e.LimitDays)
}

func (e *EditWindowError) Unwrap() error { return ErrEditWindowExpired }

// DateWindowError reports a candidate date outside the insertable window.
// Future is true for dates after today; otherwise the date is too old.
type DateWindowError struct {
	Date      Date
	DaysSince int
	LimitDays int
	Future    bool
}

func (e *DateWindowError) Error() string {
	if e.Future {
		return fmt.Sprintf("future date not allowed: %s is %d days ahead", e.Date, -e.DaysSince)
	}
	return fmt.Sprintf("date %s is outside the %d-day edit window (%d days ago)", e.Date, e.LimitDays, e.DaysSince)
}

func (e *DateWindowError) Unwrap() error {
	if e.Future {
		return ErrFutureDateNotAllowed
	}
	return ErrWindowExpired
}

// LeaveDayError reports a date that falls on an organisational leave day.
type LeaveDayError struct {
	Date        Date
	Description string
}

func (e *LeaveDayError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("%s is a leave day", e.Date)
	}
	return fmt.Sprintf("%s is a leave day (%s)", e.Date, e.Description)
}

func (e *LeaveDayError) Unwrap() error { return ErrLeaveDayViolation }

// CapacityError reports a day whose total would exceed 24 hours.
// CurrentTotal and Attempted are decimal hours. CurrentTotal is zero when
// Attempted alone is more than a day.
type CapacityError struct {
	OwnerID      UserID
	Date         Date
	CurrentTotal decimal.Decimal
	Attempted    decimal.Decimal
}

func (e *CapacityError) Error() string {
	if e.Attempted.GreaterThan(maxHours) {
		return fmt.Sprintf("daily capacity exceeded: %s hours requested for one entry, limit %d",
			e.Attempted.String(), MaxHoursPerDay)
	}
	return fmt.Sprintf("daily capacity exceeded on %s: %s hours already logged, %s more requested, limit %d",
		e.Date, e.CurrentTotal.String(), e.Attempted.String(), MaxHoursPerDay)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }

// InvalidEntryError names the offending field.
type InvalidEntryError struct {
	Field  string
	Reason string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid entry: %s %s", e.Field, e.Reason)
}

func (e *InvalidEntryError) Unwrap() error { return ErrInvalidEntry }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// Code returns the stable machine code for err, or "" for errors outside the
// taxonomy (infrastructure failures).
func Code(err error) string {
	for _, rc := range ruleCodes {
		if errors.Is(err, rc.err) {
			return rc.code
		}
	}
	switch {
	case errors.Is(err, ErrEntryNotFound):
		return CodeEntryNotFound
	case errors.Is(err, ErrInvalidEntry):
		return CodeInvalidEntry
	case errors.Is(err, ErrDayBusy):
		return CodeDayBusy
	case errors.Is(err, ErrLeaveDayNotFound):
		return CodeLeaveDayNotFound
	case errors.Is(err, ErrLeaveDayExists):
		return CodeLeaveDayExists
	}
	return ""
}

// IsRuleViolation returns true if err belongs to the closed rule taxonomy.
func IsRuleViolation(err error) bool {
	for _, rc := range ruleCodes {
		if errors.Is(err, rc.err) {
			return true
		}
	}
	return false
}

// IsRetryable returns true if the error might succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrDayBusy)
}
