package proration

import (
	"testing"
	"time"
	_ "time/tzdata"

	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestDayDiff(t *testing.T) {
	newYork := mustLoad(t, "America/New_York")
	kolkata := mustLoad(t, "Asia/Kolkata")

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		loc  *time.Location
		want int
	}{
		{
			name: "full month",
			from: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			loc:  time.UTC,
			want: 31,
		},
		{
			name: "leap february",
			from: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			loc:  time.UTC,
			want: 29,
		},
		{
			name: "same day",
			from: time.Date(2024, time.January, 16, 1, 0, 0, 0, time.UTC),
			to:   time.Date(2024, time.January, 16, 23, 0, 0, 0, time.UTC),
			loc:  time.UTC,
			want: 0,
		},
		{
			name: "one minute across midnight",
			from: time.Date(2024, time.January, 16, 23, 59, 0, 0, time.UTC),
			to:   time.Date(2024, time.January, 17, 0, 0, 0, 0, time.UTC),
			loc:  time.UTC,
			want: 1,
		},
		{
			name: "24 hours across spring forward",
			from: time.Date(2024, time.March, 9, 12, 0, 0, 0, newYork),
			to:   time.Date(2024, time.March, 9, 12, 0, 0, 0, newYork).Add(24 * time.Hour),
			loc:  newYork,
			want: 1,
		},
		{
			name: "24 hours across fall back",
			from: time.Date(2024, time.November, 2, 12, 0, 0, 0, newYork),
			to:   time.Date(2024, time.November, 2, 12, 0, 0, 0, newYork).Add(24 * time.Hour),
			loc:  newYork,
			want: 1,
		},
		{
			name: "month containing spring forward",
			from: time.Date(2024, time.March, 1, 0, 0, 0, 0, newYork),
			to:   time.Date(2024, time.April, 1, 0, 0, 0, 0, newYork),
			loc:  newYork,
			want: 31,
		},
		{
			name: "utc instants fall on different local dates",
			from: time.Date(2024, time.January, 15, 17, 0, 0, 0, time.UTC),
			to:   time.Date(2024, time.January, 15, 19, 0, 0, 0, time.UTC),
			loc:  kolkata,
			want: 1,
		},
		{
			name: "reversed range is negative",
			from: time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			loc:  time.UTC,
			want: -5,
		},
		{
			name: "nil location is utc",
			from: time.Date(1969, time.December, 30, 0, 0, 0, 0, time.UTC),
			to:   time.Date(1970, time.January, 2, 0, 0, 0, 0, time.UTC),
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayDiff(tt.from, tt.to, tt.loc))
		})
	}
}

func TestDayDiffInTimezone(t *testing.T) {
	from := time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)

	days, err := DayDiffInTimezone(from, from.Add(48*time.Hour), "Europe/London")
	require.NoError(t, err)
	assert.Equal(t, 2, days)

	days, err = DayDiffInTimezone(from, from.Add(48*time.Hour), "")
	require.NoError(t, err)
	assert.Equal(t, 2, days)

	_, err = DayDiffInTimezone(from, from, "Not/AZone")
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}
