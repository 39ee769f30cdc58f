/*
Package worklog implements the timesheet entry lifecycle for TimeWise.

PURPOSE:
  Users log daily work entries against business dimensions (verticle,
  country, task). This package decides who may create, view, edit or delete
  an entry at any given moment and guards the invariants that hold across
  all of one owner's entries for a calendar day.

KEY CONCEPTS IN THIS FILE (types.go):
  - Entry:  One unit of reported work (WorkLogEntry)
  - Actor:  The already-authenticated principal attempting a mutation
  - Role:   Closed enumeration of roles; every switch over it is exhaustive
  - LeaveDay: Organisation-wide non-working date

DESIGN PRINCIPLES:
  1. Explicit time: every temporal decision takes `now` as a parameter
  2. Explicit policy: editTimeLimitDays is passed per call, never cached
  3. Injected storage: sibling lookups go through EntryStore / LeaveCalendar
  4. Closed error taxonomy: see errors.go

SEE ALSO:
  - permission.go: Permission engine for existing entries
  - window.go:     Rolling edit window for candidate dates
  - capacity.go:   24h/day aggregate guard
  - lifecycle.go:  Create/update/delete coordinator
*/
package worklog

import (
	"fmt"
	"time"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EntryID string
type UserID string

// =============================================================================
// ROLE - Closed enumeration
// =============================================================================

type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleUser       Role = "User"
	RoleInspection Role = "Inspection"
	// RoleDeveloper is limited to system operations and never touches entries.
	RoleDeveloper Role = "Developer"
)

// Roles lists every known role in display order.
var Roles = []Role{RoleAdmin, RoleUser, RoleInspection, RoleDeveloper}

// ParseRole converts a role string into a Role. Matching is exact; the
// upstream gateway is expected to send canonical names.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// =============================================================================
// ACTOR
// =============================================================================

// Actor is the principal attempting an operation. Authentication happens
// upstream; this package trusts ID and Role as given.
type Actor struct {
	ID   UserID
	Role Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// =============================================================================
// ENTRY
// =============================================================================

// Entry is one unit of reported work.
//
// INVARIANTS:
//   - ID and OwnerID never change after creation
//   - Date carries no time-of-day (UTC midnight)
//   - Duration.Minutes is in [0, 60)
//   - The sum of Duration over all of an owner's entries on Date is <= 24h
type Entry struct {
	ID              EntryID
	OwnerID         UserID
	Date            Date
	Verticle        string
	Country         string
	Task            string
	TaskDescription string
	Duration        Duration
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// =============================================================================
// LEAVE DAY
// =============================================================================

// LeaveDay is an organisation-wide non-working date. Owned by the leave
// management screens; read-only from the lifecycle's point of view.
type LeaveDay struct {
	ID          string
	Date        Date
	Description string
	CreatedBy   UserID
	CreatedAt   time.Time
}

// =============================================================================
// SETTINGS
// =============================================================================

// DefaultEditTimeLimitDays is used when no settings file exists yet.
const DefaultEditTimeLimitDays = 3

// DefaultVerticles is the verticle set shipped with a fresh install.
var DefaultVerticles = []string{"CMIS", "TRI", "LOF", "TRG"}

// Settings is the process-wide policy. It is loaded from its source on every
// request so that admin changes apply to the very next call.
type Settings struct {
	EditTimeLimitDays int      `json:"editTimeLimitDays"`
	Verticles         []string `json:"verticles"`
}

// DefaultSettings returns the settings used before an admin configures any.
func DefaultSettings() Settings {
	return Settings{
		EditTimeLimitDays: DefaultEditTimeLimitDays,
		Verticles:         append([]string(nil), DefaultVerticles...),
	}
}

// HasVerticle reports whether v is one of the configured verticles.
func (s Settings) HasVerticle(v string) bool {
	for _, known := range s.Verticles {
		if known == v {
			return true
		}
	}
	return false
}
