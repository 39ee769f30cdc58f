/*
duration.go - Time value normalizer

PURPOSE:
  Operators type hours in a legacy decimal shorthand where the first decimal
  digit counts tens of minutes: 8.3 means 8h30m, not 8h18m. This file is the
  single place that turns that shorthand into a value safe to store and sum.

SHORTHAND TABLE (first decimal digit):
  .0        zero minutes              8.0 -> 8
  .1 - .4   10-40 minutes, unchanged  8.2 -> 8.2  (8h20m)
  .5        fifty minutes             8.5 -> 8.50 (8h50m)
  .6        a full hour, rounded up   8.6 -> 9
  .7 - .9   rejected
  anything with a second significant decimal digit (8.25) is rejected.

OPEN QUESTION:
  .0 is not distinguished from a whole number by the legacy screens. It is
  treated as zero minutes here.
*/
package worklog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxHoursPerDay is the daily capacity per owner.
const MaxHoursPerDay = 24

const minutesPerDay = MaxHoursPerDay * 60

var (
	maxHours = decimal.NewFromInt(MaxHoursPerDay)
	ten      = decimal.NewFromInt(10)
	sixty   = decimal.NewFromInt(60)
	hundred = decimal.NewFromInt(100)
)

// NormalizeHoursInput canonicalizes a shorthand hour value.
// Returns a DurationFormatError for negative values and for fractional parts
// outside .0-.6.
func NormalizeHoursInput(raw decimal.Decimal) (decimal.Decimal, error) {
	if raw.IsNegative() {
		return decimal.Zero, &DurationFormatError{Raw: raw}
	}

	whole := raw.Truncate(0)
	tenths := raw.Sub(whole).Mul(ten)
	if !tenths.Equal(tenths.Truncate(0)) {
		return decimal.Zero, &DurationFormatError{Raw: raw}
	}

	switch digit := tenths.IntPart(); digit {
	case 0:
		return whole, nil
	case 1, 2, 3, 4:
		return raw, nil
	case 5:
		// Fixed two-digit form: "8.50" reads as fifty minutes on the timesheet.
		return whole.Add(decimal.New(50, -2)), nil
	case 6:
		return whole.Add(decimal.NewFromInt(1)), nil
	default:
		return decimal.Zero, &DurationFormatError{Raw: raw}
	}
}

// =============================================================================
// DURATION - Canonical (hours, minutes)
// =============================================================================

// Duration is the canonical form of a work amount. Minutes is in [0, 60).
type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// NewDuration validates the components.
func NewDuration(hours, minutes int) (Duration, error) {
	if hours < 0 {
		return Duration{}, &InvalidEntryError{Field: "hours", Reason: "must not be negative"}
	}
	if minutes < 0 || minutes >= 60 {
		return Duration{}, &InvalidEntryError{Field: "minutes", Reason: "must be between 0 and 59"}
	}
	return Duration{Hours: hours, Minutes: minutes}, nil
}

// DurationFromMinutes splits a minute count.
func DurationFromMinutes(total int) Duration {
	return Duration{Hours: total / 60, Minutes: total % 60}
}

// ParseHours normalizes shorthand input and converts it to a Duration.
// A value that does not fit in one day on its own is rejected with a
// CapacityError carrying only Attempted; callers fill in owner and date.
func ParseHours(raw decimal.Decimal) (Duration, error) {
	normalized, err := NormalizeHoursInput(raw)
	if err != nil {
		return Duration{}, err
	}
	if normalized.GreaterThan(maxHours) {
		return Duration{}, &CapacityError{Attempted: NormalizedToHours(normalized)}
	}
	return durationFromNormalized(normalized), nil
}

// NormalizedToHours converts normalizer output to true fractional hours,
// e.g. 8.50 (8h50m) -> 8.83. Works on any magnitude.
func NormalizedToHours(n decimal.Decimal) decimal.Decimal {
	whole := n.Truncate(0)
	tens := n.Sub(whole).Mul(ten).Truncate(0)
	return whole.Add(tens.Mul(ten).DivRound(sixty, 2))
}

// durationFromNormalized reads the first decimal digit as tens of minutes.
// The input must already be normalized and at most MaxHoursPerDay.
func durationFromNormalized(n decimal.Decimal) Duration {
	whole := n.Truncate(0)
	digit := n.Sub(whole).Mul(ten).Truncate(0).IntPart()
	return Duration{Hours: int(whole.IntPart()), Minutes: int(digit) * 10}
}

func (d Duration) TotalMinutes() int { return d.Hours*60 + d.Minutes }
func (d Duration) IsZero() bool { return d.TotalMinutes() == 0 }

func (d Duration) Add(other Duration) Duration {
	return DurationFromMinutes(d.TotalMinutes() + other.TotalMinutes())
}

// DecimalHours returns the duration as fractional hours rounded to two places.
// Use for display only; sums are done in minutes.
func (d Duration) DecimalHours() decimal.Decimal {
	return minutesToHours(d.TotalMinutes())
}

// Shorthand renders the duration back into the legacy entry format, e.g.
// 8h50m -> 8.50 and 8h20m -> 8.2. Minutes that are not a multiple of ten are
// shown as hundredths.
func (d Duration) Shorthand() decimal.Decimal {
	h := decimal.NewFromInt(int64(d.Hours))
	switch {
	case d.Minutes == 50:
		return decimal.New(int64(d.Hours)*100+50, -2)
	case d.Minutes%10 == 0:
		return h.Add(decimal.New(int64(d.Minutes/10), -1))
	default:
		return h.Add(decimal.NewFromInt(int64(d.Minutes)).Div(hundred))
	}
}

func (d Duration) String() string {
	return fmt.Sprintf("%dh %02dm", d.Hours, d.Minutes)
}

func minutesToHours(m int) decimal.Decimal {
	return decimal.NewFromInt(int64(m)).DivRound(sixty, 2)
}
