package types

import (
	"time"

	ierr "github.com/flexprice/billingcore/internal/errors"
)

// NextBillingDate calculates the next billing date based on the given start time,
// billing period, and billing period unit (the frequency multiplier).
// For example:
// - If billing period is MONTHLY and unit is 2, we add two months.
// - If billing period is ANNUAL and unit is 1, we add one year.
// - If billing period is WEEKLY and unit is 3, we add 21 days (3 weeks).
// Month based periods keep the day of month and clamp it to the last day of shorter months.
func NextBillingDate(start time.Time, unit int, period BillingPeriod) (time.Time, error) {
	if unit <= 0 {
		return start, ierr.NewErrorf("billing period unit must be a positive integer, got %d", unit).
			Mark(ierr.ErrValidation)
	}
	if err := period.Validate(); err != nil {
		return start, err
	}
	return AddBillingPeriods(start, period, unit), nil
}

// AddBillingPeriods moves t by count periods, backwards when count is negative.
func AddBillingPeriods(t time.Time, period BillingPeriod, count int) time.Time {
	if months := period.months(); months > 0 {
		return AddMonthsClamped(t, months*count)
	}

	y, m, d := t.Date()
	h, min, sec := t.Clock()
	return time.Date(y, m, d+7*count, h, min, sec, t.Nanosecond(), t.Location())
}

// AddMonthsClamped adds months to t keeping the day of month when the target month has it,
// and the last day of the target month otherwise (Jan 31 + 1 month = Feb 28/29).
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	h, min, sec := t.Clock()

	first := time.Date(y, m+time.Month(months), 1, h, min, sec, t.Nanosecond(), t.Location())
	lastDay := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if d > lastDay {
		d = lastDay
	}

	return time.Date(first.Year(), first.Month(), d, h, min, sec, t.Nanosecond(), t.Location())
}

// StartOfDay returns local midnight of the calendar day t falls on in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// CalendarPeriodStart truncates t to the start of its calendar week (Monday),
// month, quarter or year in loc.
func CalendarPeriodStart(t time.Time, period BillingPeriod, loc *time.Location) time.Time {
	day := StartOfDay(t, loc)
	y, m, d := day.Date()

	switch period {
	case BILLING_PERIOD_WEEKLY:
		offset := (int(day.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	case BILLING_PERIOD_MONTHLY:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case BILLING_PERIOD_QUARTERLY:
		quarterMonth := time.Month(((int(m)-1)/3)*3 + 1)
		return time.Date(y, quarterMonth, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	}
}

// PeriodCadence describes how a plan's billing periods repeat
type PeriodCadence struct {
	Period      BillingPeriod
	Count       int
	BillingTime BillingTime
	// Anchor is the subscription start; anniversary periods repeat from its calendar day
	Anchor time.Time
}

func (c PeriodCadence) Validate() error {
	if err := c.Period.Validate(); err != nil {
		return err
	}
	if err := c.BillingTime.Validate(); err != nil {
		return err
	}
	if c.Count <= 0 {
		return ierr.NewErrorf("billing period count must be a positive integer, got %d", c.Count).
			WithHint("Plan interval count must be at least 1").
			Mark(ierr.ErrValidation)
	}
	if c.Anchor.IsZero() {
		return ierr.NewError("billing anchor is required").
			WithHint("Subscription start date is required to align billing periods").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// FullPeriodContaining returns the undisturbed billing period [start, end) that contains at.
// Boundaries are local midnights in loc; end is the instant the next period begins.
func FullPeriodContaining(at time.Time, cadence PeriodCadence, loc *time.Location) (time.Time, time.Time, error) {
	if err := cadence.Validate(); err != nil {
		return time.Time{}, time.Time{}, err
	}

	var base time.Time
	if cadence.BillingTime == BillingTimeCalendar {
		base = CalendarPeriodStart(cadence.Anchor, cadence.Period, loc)
	} else {
		base = StartOfDay(cadence.Anchor, loc)
	}

	at = at.In(loc)
	step := cadence.Count
	n := periodsBetween(base, at, cadence.Period) / step

	for AddBillingPeriods(base, cadence.Period, n*step).After(at) {
		n--
	}
	for !AddBillingPeriods(base, cadence.Period, (n+1)*step).After(at) {
		n++
	}

	return AddBillingPeriods(base, cadence.Period, n*step), AddBillingPeriods(base, cadence.Period, (n+1)*step), nil
}

// periodsBetween is a rough count of single periods from base to at, used as a starting guess
func periodsBetween(base, at time.Time, period BillingPeriod) int {
	if months := period.months(); months > 0 {
		elapsed := (at.Year()-base.Year())*12 + int(at.Month()) - int(base.Month())
		return elapsed / months
	}
	return int(at.Sub(base).Hours()/24) / 7
}
