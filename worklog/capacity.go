/*
capacity.go - Daily capacity guard

PURPOSE:
  No owner may report more than 24 hours on one calendar date. The guard
  sums the owner's other entries for that date and adds the proposed amount.
  Exactly 24h is accepted; anything above is rejected.

ARITHMETIC:
  Stored durations are summed in whole minutes. A proposed amount given as
  decimal hours is scaled by 60 without rounding, so 24 + any positive
  epsilon is still rejected.

CONCURRENCY:
  The guard itself only reads. Two writers for the same (owner, date) can
  each read a snapshot missing the other's write. The coordinator closes
  that gap by holding a DayLocker lock, and on transactional stores by
  running read and write inside one transaction. See lock.go.
*/
package worklog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

var dayCapacityMinutes = decimal.NewFromInt(minutesPerDay)

// ValidateDailyCapacity checks that adding proposedHours to ownerID's entries
// on date stays within 24h. proposedHours are true fractional hours (8h30m is
// 8.5), not normalizer shorthand; convert shorthand with NormalizedToHours.
// excluding is skipped so an updated entry does not count itself twice.
func ValidateDailyCapacity(ctx context.Context, lookup EntryLookup, ownerID UserID, date Date, proposedHours decimal.Decimal, excluding EntryID) error {
	current, err := loggedMinutes(ctx, lookup, ownerID, date, excluding)
	if err != nil {
		return err
	}
	return checkCapacity(ownerID, date, current, proposedHours)
}

// validateDuration is the coordinator's form of ValidateDailyCapacity. It
// stays in whole minutes so that e.g. six 10-minute entries add up to
// exactly one hour.
func validateDuration(ctx context.Context, lookup EntryLookup, ownerID UserID, date Date, proposed Duration, excluding EntryID) error {
	current, err := loggedMinutes(ctx, lookup, ownerID, date, excluding)
	if err != nil {
		return err
	}
	if current+proposed.TotalMinutes() <= minutesPerDay {
		return nil
	}
	return &CapacityError{
		OwnerID:      ownerID,
		Date:         date,
		CurrentTotal: minutesToHours(current),
		Attempted:    proposed.DecimalHours(),
	}
}

func checkCapacity(ownerID UserID, date Date, currentMinutes int, proposedHours decimal.Decimal) error {
	total := decimal.NewFromInt(int64(currentMinutes)).Add(proposedHours.Mul(sixty))
	if !total.GreaterThan(dayCapacityMinutes) {
		return nil
	}
	return &CapacityError{
		OwnerID:      ownerID,
		Date:         date,
		CurrentTotal: minutesToHours(currentMinutes),
		Attempted:    proposedHours,
	}
}

func loggedMinutes(ctx context.Context, lookup EntryLookup, ownerID UserID, date Date, excluding EntryID) (int, error) {
	siblings, err := lookup.FindByOwnerAndDate(ctx, ownerID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to load entries for %s on %s: %w", ownerID, date, err)
	}
	total := 0
	for _, e := range siblings {
		if excluding != "" && e.ID == excluding {
			continue
		}
		total += e.Duration.TotalMinutes()
	}
	return total, nil
}

// DailyTotal returns the minutes logged by ownerID on date.
func DailyTotal(ctx context.Context, lookup EntryLookup, ownerID UserID, date Date) (Duration, error) {
	m, err := loggedMinutes(ctx, lookup, ownerID, date, "")
	if err != nil {
		return Duration{}, err
	}
	return DurationFromMinutes(m), nil
}
