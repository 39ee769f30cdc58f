/*
permission.go - Permission engine for existing entries

PURPOSE:
  Computes what an actor may do with one existing entry at one moment.
  Pure: no I/O, no clock reads. The same four inputs always produce the
  same answer, which is what makes the rules exhaustively testable.

RULES (evaluated in order):
  Admin       view, edit, delete. Nothing else is checked.
  Inspection  view only, for every owner's entries.
  Developer   nothing. System operations only.
  User:
    non-owner  nothing. Entries are private to their owner.
    owner      view always; edit/delete while
               0 <= daysSinceRecordDate <= editTimeLimitDays

  daysSinceRecordDate is the UTC calendar-day difference between the entry
  date and now. Time of day never matters.

SEE ALSO:
  - window.go: the matching check for dates that have no entry yet
*/
package worklog

import "time"

// Permission is the outcome of ComputePermission.
// EditDaysRemaining is set only when the owner is inside the window.
type Permission struct {
	CanView           bool
	CanEdit           bool
	CanDelete         bool
	EditDaysRemaining *int
}

var (
	permitAll  = Permission{CanView: true, CanEdit: true, CanDelete: true}
	permitView = Permission{CanView: true}
	permitNone = Permission{}
)

// ComputePermission decides what actor may do with entry at now.
func ComputePermission(entry Entry, actor Actor, now time.Time, editTimeLimitDays int) Permission {
	switch actor.Role {
	case RoleAdmin:
		return permitAll
	case RoleInspection:
		return permitView
	case RoleDeveloper:
		return permitNone
	case RoleUser:
		return ownerPermission(entry, actor, now, editTimeLimitDays)
	}
	return permitNone
}

func ownerPermission(entry Entry, actor Actor, now time.Time, editTimeLimitDays int) Permission {
	if actor.ID != entry.OwnerID {
		return permitNone
	}

	days := CalendarDaysBetween(entry.Date, now)
	if days < 0 || days > editTimeLimitDays {
		return permitView
	}

	remaining := editTimeLimitDays - days
	return Permission{
		CanView:           true,
		CanEdit:           true,
		CanDelete:         true,
		EditDaysRemaining: &remaining,
	}
}

// CanView is a shorthand used by list filtering.
func CanView(entry Entry, actor Actor) bool {
	// Viewing never depends on time or window size.
	return ComputePermission(entry, actor, time.Time{}, 0).CanView
}

// requireEdit turns a permission into the error the coordinator returns when
// an update is not allowed.
func requireEdit(entry Entry, actor Actor, now time.Time, editTimeLimitDays int) error {
	p := ComputePermission(entry, actor, now, editTimeLimitDays)
	if p.CanEdit {
		return nil
	}
	if actor.Role == RoleUser && actor.ID == entry.OwnerID {
		return &EditWindowError{
			EntryID:       entry.ID,
			Date:          entry.Date,
			DaysSince:     CalendarDaysBetween(entry.Date, now),
			LimitDays:     editTimeLimitDays,
			DaysRemaining: 0,
		}
	}
	return &AccessDeniedError{ActorID: actor.ID, Role: actor.Role, EntryID: entry.ID, Action: "edit"}
}
