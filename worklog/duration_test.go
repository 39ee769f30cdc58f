package worklog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/worklog"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// =============================================================================
// NORMALIZER
// =============================================================================

func TestNormalizeHoursInput_Table(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"8", "8"},
		{"0", "0"},
		{"8.1", "8.1"},
		{"8.2", "8.2"},
		{"8.3", "8.3"},
		{"8.4", "8.4"},
		{"8.5", "8.50"},
		{"8.50", "8.50"},
		{"8.6", "9"},
		{"0.6", "1"},
		{"23.6", "24"},
		{"12.40", "12.40"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := worklog.NormalizeHoursInput(dec(tt.raw))
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestNormalizeHoursInput_FiftyMinutesKeepsTwoDigitForm(t *testing.T) {
	got, err := worklog.NormalizeHoursInput(dec("8.5"))
	require.NoError(t, err)
	assert.Equal(t, "8.50", got.StringFixed(2))
	assert.Equal(t, int32(-2), got.Exponent())
}

// .0 is not handled by the legacy screens; it is read as zero minutes.
// Flagged for product confirmation.
func TestNormalizeHoursInput_ZeroDecimalIsWholeHours(t *testing.T) {
	got, err := worklog.NormalizeHoursInput(dec("8.0"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("8")))

	d, err := worklog.ParseHours(dec("8.0"))
	require.NoError(t, err)
	assert.Equal(t, worklog.Duration{Hours: 8, Minutes: 0}, d)
}

func TestNormalizeHoursInput_Rejects(t *testing.T) {
	for _, raw := range []string{"8.7", "8.8", "8.9", "8.25", "8.05", "0.99", "-1", "-0.5"} {
		t.Run(raw, func(t *testing.T) {
			_, err := worklog.NormalizeHoursInput(dec(raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, worklog.ErrInvalidDurationFormat)

			var fmtErr *worklog.DurationFormatError
			require.ErrorAs(t, err, &fmtErr)
			assert.True(t, fmtErr.Raw.Equal(dec(raw)))
			assert.Equal(t, worklog.CodeInvalidDurationFormat, worklog.Code(err))
		})
	}
}

func TestNormalizeHoursInput_Idempotent(t *testing.T) {
	for _, raw := range []string{"0", "3", "7.0", "7.1", "7.2", "7.3", "7.4", "7.6", "7.5"} {
		once, err := worklog.NormalizeHoursInput(dec(raw))
		require.NoError(t, err, raw)
		twice, err := worklog.NormalizeHoursInput(once)
		require.NoError(t, err, raw)
		assert.True(t, once.Equal(twice), "%s: %s != %s", raw, once, twice)
	}
}

// =============================================================================
// DURATION
// =============================================================================

func TestParseHours_CanonicalDuration(t *testing.T) {
	tests := []struct {
		raw  string
		want worklog.Duration
	}{
		{"8", worklog.Duration{Hours: 8}},
		{"8.1", worklog.Duration{Hours: 8, Minutes: 10}},
		{"8.4", worklog.Duration{Hours: 8, Minutes: 40}},
		{"8.5", worklog.Duration{Hours: 8, Minutes: 50}},
		{"8.6", worklog.Duration{Hours: 9}},
		{"0.3", worklog.Duration{Minutes: 30}},
	}
	for _, tt := range tests {
		got, err := worklog.ParseHours(dec(tt.raw))
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestParseHours_MoreThanADayRejected(t *testing.T) {
	tests := []struct {
		raw       string
		attempted string
	}{
		{"24.1", "24.17"},
		{"24.5", "24.83"},
		{"25", "25"},
		{"153722867280912931", "153722867280912931"},
		{"99999999999999999999.5", "99999999999999999999.83"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := worklog.ParseHours(dec(tt.raw))

			require.Error(t, err)
			assert.ErrorIs(t, err, worklog.ErrCapacityExceeded)
			var capErr *worklog.CapacityError
			require.ErrorAs(t, err, &capErr)
			assert.True(t, capErr.Attempted.Equal(dec(tt.attempted)), capErr.Attempted.String())
			assert.True(t, capErr.CurrentTotal.IsZero())
		})
	}
}

func TestParseHours_UpToADayAccepted(t *testing.T) {
	for raw, want := range map[string]worklog.Duration{
		"24":   {Hours: 24},
		"23.6": {Hours: 24},
		"23.5": {Hours: 23, Minutes: 50},
	} {
		got, err := worklog.ParseHours(dec(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestNormalizeHoursInput_HugeFiftyMinutes(t *testing.T) {
	got, err := worklog.NormalizeHoursInput(dec("99999999999999999999.5"))
	require.NoError(t, err)
	assert.Equal(t, "99999999999999999999.50", got.StringFixed(2))
}

func TestNormalizedToHours(t *testing.T) {
	tests := map[string]string{
		"8":    "8",
		"8.3":  "8.5",
		"8.50": "8.83",
		"0.1":  "0.17",
	}
	for in, want := range tests {
		got := worklog.NormalizedToHours(dec(in))
		assert.True(t, got.Equal(dec(want)), "%s -> %s", in, got)
	}
}

func TestDuration_ShorthandRoundTrip(t *testing.T) {
	for _, raw := range []string{"8", "8.1", "8.2", "8.3", "8.4", "8.5"} {
		d, err := worklog.ParseHours(dec(raw))
		require.NoError(t, err)
		back, err := worklog.ParseHours(d.Shorthand())
		require.NoError(t, err)
		assert.Equal(t, d, back, raw)
	}
}

func TestDuration_DecimalHoursAndString(t *testing.T) {
	d := worklog.Duration{Hours: 7, Minutes: 30}
	assert.True(t, d.DecimalHours().Equal(dec("7.5")))
	assert.Equal(t, 450, d.TotalMinutes())
	assert.Equal(t, "7h 30m", d.String())
	assert.Equal(t, worklog.Duration{Hours: 8, Minutes: 10}, d.Add(worklog.Duration{Minutes: 40}))
}

func TestNewDuration_Validates(t *testing.T) {
	_, err := worklog.NewDuration(1, 60)
	assert.ErrorIs(t, err, worklog.ErrInvalidEntry)
	_, err = worklog.NewDuration(-1, 0)
	assert.ErrorIs(t, err, worklog.ErrInvalidEntry)

	d, err := worklog.NewDuration(2, 59)
	require.NoError(t, err)
	assert.Equal(t, 179, d.TotalMinutes())
}
