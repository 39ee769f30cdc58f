package worklog

import (
	"context"
	"fmt"
)

// LeaveCalendar answers whether a date is an organisational leave day.
// Implemented by the sqlite and memory stores.
type LeaveCalendar interface {
	// LeaveDayOn returns the leave day recorded for date, if any.
	LeaveDayOn(ctx context.Context, date Date) (*LeaveDay, bool, error)
}

// ValidateNotLeaveDay rejects non-admin entries on leave days. Admins may
// log or correct entries on company holidays.
func ValidateNotLeaveDay(ctx context.Context, candidate Date, role Role, calendar LeaveCalendar) error {
	if role == RoleAdmin || calendar == nil {
		return nil
	}

	leave, ok, err := calendar.LeaveDayOn(ctx, candidate)
	if err != nil {
		return fmt.Errorf("failed to look up leave day %s: %w", candidate, err)
	}
	if !ok {
		return nil
	}

	desc := ""
	if leave != nil {
		desc = leave.Description
	}
	return &LeaveDayError{Date: candidate, Description: desc}
}
