package worklog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/worklog"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var (
	owner      = worklog.Actor{ID: "user-1", Role: worklog.RoleUser}
	otherUser  = worklog.Actor{ID: "user-2", Role: worklog.RoleUser}
	admin      = worklog.Actor{ID: "admin-1", Role: worklog.RoleAdmin}
	inspector  = worklog.Actor{ID: "insp-1", Role: worklog.RoleInspection}
	developer  = worklog.Actor{ID: "dev-1", Role: worklog.RoleDeveloper}
	allActors  = []worklog.Actor{owner, otherUser, admin, inspector, developer}
	noonJune10 = time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
)

func entryDaysAgo(now time.Time, days int) worklog.Entry {
	return worklog.Entry{
		ID:       "entry-1",
		OwnerID:  owner.ID,
		Date:     worklog.DateOf(now).AddDays(-days),
		Verticle: "CMIS",
		Country:  "IN",
		Task:     "Review",
		Duration: worklog.Duration{Hours: 4},
	}
}

// =============================================================================
// CONCRETE SCENARIOS
// =============================================================================

func TestComputePermission_OwnerOnLastDayOfWindow(t *testing.T) {
	// GIVEN: editTimeLimitDays = 3 and an entry dated 3 days ago
	// WHEN:  the owner asks
	// THEN:  edit is allowed with zero days remaining
	p := worklog.ComputePermission(entryDaysAgo(noonJune10, 3), owner, noonJune10, 3)

	assert.True(t, p.CanView)
	assert.True(t, p.CanEdit)
	assert.True(t, p.CanDelete)
	require.NotNil(t, p.EditDaysRemaining)
	assert.Equal(t, 0, *p.EditDaysRemaining)
}

func TestComputePermission_OwnerOneDayPastWindow(t *testing.T) {
	p := worklog.ComputePermission(entryDaysAgo(noonJune10, 4), owner, noonJune10, 3)

	assert.True(t, p.CanView)
	assert.False(t, p.CanEdit)
	assert.False(t, p.CanDelete)
	assert.Nil(t, p.EditDaysRemaining)
}

func TestComputePermission_FutureEntryNotEditableByOwner(t *testing.T) {
	// An admin may have logged tomorrow on the user's behalf.
	p := worklog.ComputePermission(entryDaysAgo(noonJune10, -1), owner, noonJune10, 3)

	assert.True(t, p.CanView)
	assert.False(t, p.CanEdit)
}

func TestComputePermission_IgnoresTimeOfDay(t *testing.T) {
	// GIVEN: entry dated June 7, limit 3
	e := entryDaysAgo(noonJune10, 3)

	// WHEN: now is one minute before and one minute after midnight
	lateJune10 := time.Date(2024, time.June, 10, 23, 59, 0, 0, time.UTC)
	earlyJune11 := time.Date(2024, time.June, 11, 0, 1, 0, 0, time.UTC)

	// THEN: the answer flips exactly on the calendar boundary
	assert.True(t, worklog.ComputePermission(e, owner, lateJune10, 3).CanEdit)
	assert.False(t, worklog.ComputePermission(e, owner, earlyJune11, 3).CanEdit)
}

func TestComputePermission_UsesUTCCalendarDate(t *testing.T) {
	// 01:00 on June 11 in UTC+5 is still June 10 in UTC.
	zone := time.FixedZone("UTC+5", 5*60*60)
	now := time.Date(2024, time.June, 11, 1, 0, 0, 0, zone)

	e := entryDaysAgo(noonJune10, 3) // June 7
	assert.True(t, worklog.ComputePermission(e, owner, now, 3).CanEdit)
}

// =============================================================================
// PROPERTIES
// =============================================================================

func TestComputePermission_WindowMonotonicity(t *testing.T) {
	for limit := 0; limit <= 10; limit++ {
		for age := -3; age <= limit+5; age++ {
			p := worklog.ComputePermission(entryDaysAgo(noonJune10, age), owner, noonJune10, limit)

			inside := age >= 0 && age <= limit
			assert.Equal(t, inside, p.CanEdit, "limit=%d age=%d", limit, age)
			assert.Equal(t, inside, p.CanDelete, "limit=%d age=%d", limit, age)
			assert.True(t, p.CanView)
			if inside {
				require.NotNil(t, p.EditDaysRemaining)
				assert.Equal(t, limit-age, *p.EditDaysRemaining)
			}
		}
	}
}

func TestComputePermission_AdminSupremacy(t *testing.T) {
	for limit := 0; limit <= 6; limit++ {
		for _, age := range []int{-400, -1, 0, 1, 7, 30, 3650} {
			p := worklog.ComputePermission(entryDaysAgo(noonJune10, age), admin, noonJune10, limit)
			assert.True(t, p.CanView && p.CanEdit && p.CanDelete, "limit=%d age=%d", limit, age)
		}
	}
}

func TestComputePermission_NonOwnerExclusion(t *testing.T) {
	for limit := 0; limit <= 6; limit++ {
		for age := -2; age <= 8; age++ {
			p := worklog.ComputePermission(entryDaysAgo(noonJune10, age), otherUser, noonJune10, limit)
			assert.Equal(t, worklog.Permission{}, p, "limit=%d age=%d", limit, age)
		}
	}
}

func TestComputePermission_InspectionIsViewOnly(t *testing.T) {
	// Inspection sees everyone's entries but never edits, even its own.
	own := entryDaysAgo(noonJune10, 0)
	own.OwnerID = inspector.ID

	for _, e := range []worklog.Entry{entryDaysAgo(noonJune10, 0), own} {
		p := worklog.ComputePermission(e, inspector, noonJune10, 3)
		assert.True(t, p.CanView)
		assert.False(t, p.CanEdit)
		assert.False(t, p.CanDelete)
	}
}

func TestComputePermission_DeveloperHasNoEntryAccess(t *testing.T) {
	own := entryDaysAgo(noonJune10, 0)
	own.OwnerID = developer.ID
	assert.Equal(t, worklog.Permission{}, worklog.ComputePermission(own, developer, noonJune10, 3))
}

func TestComputePermission_UnknownRoleGetsNothing(t *testing.T) {
	stranger := worklog.Actor{ID: owner.ID, Role: worklog.Role("Manager")}
	assert.Equal(t, worklog.Permission{}, worklog.ComputePermission(entryDaysAgo(noonJune10, 0), stranger, noonJune10, 3))
}

func TestCanView_MatchesRoles(t *testing.T) {
	e := entryDaysAgo(noonJune10, 40)
	want := map[worklog.UserID]bool{
		owner.ID:     true,
		otherUser.ID: false,
		admin.ID:     true,
		inspector.ID: true,
		developer.ID: false,
	}
	for _, a := range allActors {
		assert.Equal(t, want[a.ID], worklog.CanView(e, a), a.ID)
	}
}
