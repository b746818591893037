package proration

import (
	"time"

	ierr "github.com/flexprice/billingcore/internal/errors"
)

const secondsPerDay = 24 * 60 * 60

// DayDiff returns the number of calendar days from the local date of from to the local date of to in loc.
// Times of day are ignored so a day is a day whether it lasts 23, 24 or 25 hours.
// The result is negative when to falls on an earlier date than from.
func DayDiff(from, to time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	return civilDay(to.In(loc)) - civilDay(from.In(loc))
}

// DayDiffInTimezone is DayDiff for an IANA zone name
func DayDiffInTimezone(from, to time.Time, timezone string) (int, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return 0, err
	}
	return DayDiff(from, to, loc), nil
}

// LoadLocation resolves an IANA zone name, empty meaning UTC
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Unknown timezone %q", timezone).
			WithReportableDetails(map[string]any{
				"timezone": timezone,
			}).
			Mark(ierr.ErrValidation)
	}
	return loc, nil
}

// civilDay numbers the local calendar date of t, counting days since 1970-01-01
func civilDay(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay)
}
