package worklog

import "time"

// ValidateEntryWindow checks whether a candidate date may currently receive
// a new or re-dated entry. It judges dates, not entries; ComputePermission
// judges entries that already exist.
//
// Admins may backfill or pre-fill any date. Everyone else is limited to
// today and the editTimeLimitDays calendar days before it.
func ValidateEntryWindow(candidate Date, role Role, now time.Time, editTimeLimitDays int) error {
	if role == RoleAdmin {
		return nil
	}

	days := CalendarDaysBetween(candidate, now)
	if days < 0 {
		return &DateWindowError{Date: candidate, DaysSince: days, LimitDays: editTimeLimitDays, Future: true}
	}
	if days > editTimeLimitDays {
		return &DateWindowError{Date: candidate, DaysSince: days, LimitDays: editTimeLimitDays}
	}
	return nil
}

// WindowStart returns the oldest date a non-admin may still log against.
func WindowStart(now time.Time, editTimeLimitDays int) Date {
	return DateOf(now).AddDays(-editTimeLimitDays)
}
