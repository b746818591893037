package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ist = time.FixedZone("IST", 5*60*60+30*60)
	pst = time.FixedZone("PST", -8*60*60)
)

func TestNextBillingDate(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		unit    int
		period  BillingPeriod
		want    time.Time
		wantErr bool
	}{
		{
			name:   "one month",
			start:  time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
			unit:   1,
			period: BILLING_PERIOD_MONTHLY,
			want:   time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "month end clamps in leap year",
			start:  time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
			unit:   1,
			period: BILLING_PERIOD_MONTHLY,
			want:   time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "month end clamps in non leap year",
			start:  time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC),
			unit:   1,
			period: BILLING_PERIOD_MONTHLY,
			want:   time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "three weeks crosses month",
			start:  time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
			unit:   3,
			period: BILLING_PERIOD_WEEKLY,
			want:   time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "quarter",
			start:  time.Date(2024, time.November, 30, 0, 0, 0, 0, time.UTC),
			unit:   1,
			period: BILLING_PERIOD_QUARTERLY,
			want:   time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "leap day annual",
			start:  time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			unit:   1,
			period: BILLING_PERIOD_ANNUAL,
			want:   time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "keeps timezone and clock",
			start:  time.Date(2024, time.May, 15, 10, 30, 0, 0, ist),
			unit:   2,
			period: BILLING_PERIOD_MONTHLY,
			want:   time.Date(2024, time.July, 15, 10, 30, 0, 0, ist),
		},
		{
			name:    "invalid unit",
			start:   time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
			unit:    0,
			period:  BILLING_PERIOD_MONTHLY,
			wantErr: true,
		},
		{
			name:    "invalid period",
			start:   time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
			unit:    1,
			period:  BillingPeriod("DAILY"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextBillingDate(tt.start, tt.unit, tt.period)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestCalendarPeriodStart(t *testing.T) {
	// Wednesday
	at := time.Date(2024, time.August, 14, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.August, 12, 0, 0, 0, 0, time.UTC), CalendarPeriodStart(at, BILLING_PERIOD_WEEKLY, time.UTC))
	assert.Equal(t, time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC), CalendarPeriodStart(at, BILLING_PERIOD_MONTHLY, time.UTC))
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), CalendarPeriodStart(at, BILLING_PERIOD_QUARTERLY, time.UTC))
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), CalendarPeriodStart(at, BILLING_PERIOD_ANNUAL, time.UTC))

	// Sunday is the last day of the week
	sunday := time.Date(2024, time.August, 18, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.August, 12, 0, 0, 0, 0, time.UTC), CalendarPeriodStart(sunday, BILLING_PERIOD_WEEKLY, time.UTC))

	// 2024-09-01 02:00 UTC is still August 31 in PST
	lateUTC := time.Date(2024, time.September, 1, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.August, 1, 0, 0, 0, 0, pst), CalendarPeriodStart(lateUTC, BILLING_PERIOD_MONTHLY, pst))
}

func TestFullPeriodContaining(t *testing.T) {
	tests := []struct {
		name      string
		at        time.Time
		cadence   PeriodCadence
		loc       *time.Location
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			name: "calendar monthly",
			at:   time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC),
			cadence: PeriodCadence{
				Period:      BILLING_PERIOD_MONTHLY,
				Count:       1,
				BillingTime: BillingTimeCalendar,
				Anchor:      time.Date(2023, time.June, 12, 8, 0, 0, 0, time.UTC),
			},
			loc:       time.UTC,
			wantStart: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "period end belongs to the next period",
			at:   time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			cadence: PeriodCadence{
				Period:      BILLING_PERIOD_MONTHLY,
				Count:       1,
				BillingTime: BillingTimeCalendar,
				Anchor:      time.Date(2023, time.June, 12, 0, 0, 0, 0, time.UTC),
			},
			loc:       time.UTC,
			wantStart: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "anniversary monthly from month end",
			at:   time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
			cadence: PeriodCadence{
				Period:      BILLING_PERIOD_MONTHLY,
				Count:       1,
				BillingTime: BillingTimeAnniversary,
				Anchor:      time.Date(2024, time.January, 31, 14, 0, 0, 0, time.UTC),
			},
			loc:       time.UTC,
			wantStart: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "anniversary before anchor walks backwards",
			at:   time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
			cadence: PeriodCadence{
				Period:      BILLING_PERIOD_MONTHLY,
				Count:       1,
				BillingTime: BillingTimeAnniversary,
				Anchor:      time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
			},
			loc:       time.UTC,
			wantStart: time.Date(2023, time.December, 10, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "calendar weekly",
			at:   time.Date(2024, time.August, 14, 15, 0, 0, 0, time.UTC),
			cadence: PeriodCadence{
				Period:      BILLING_PERIOD_WEEKLY,
				Count:       1,
				BillingTime: BillingTimeCalendar,
				Anchor:      time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
			},
			loc:       time.UTC,
			wantStart: time.Date(2024, time.August, 12, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.August, 19, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "anniversary every two weeks",
			at:   time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC),
			cadence: PeriodCadence{
				Period:      BILLING_PERIOD_WEEKLY,
				Count:       2,
				BillingTime: BillingTimeAnniversary,
				Anchor:      time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
			},
			loc:       time.UTC,
			wantStart: time.Date(2024, time.January, 17, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "calendar quarterly",
			at:   time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
			cadence: PeriodCadence{
				Period:      BILLING_PERIOD_QUARTERLY,
				Count:       1,
				BillingTime: BillingTimeCalendar,
				Anchor:      time.Date(2023, time.February, 11, 0, 0, 0, 0, time.UTC),
			},
			loc:       time.UTC,
			wantStart: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "calendar annual",
			at:   time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
			cadence: PeriodCadence{
				Period:      BILLING_PERIOD_ANNUAL,
				Count:       1,
				BillingTime: BillingTimeCalendar,
				Anchor:      time.Date(2022, time.February, 11, 0, 0, 0, 0, time.UTC),
			},
			loc:       time.UTC,
			wantStart: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "calendar monthly in customer timezone",
			at:   time.Date(2024, time.March, 31, 20, 0, 0, 0, time.UTC),
			cadence: PeriodCadence{
				Period:      BILLING_PERIOD_MONTHLY,
				Count:       1,
				BillingTime: BillingTimeCalendar,
				Anchor:      time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			},
			loc:       ist,
			wantStart: time.Date(2024, time.April, 1, 0, 0, 0, 0, ist),
			wantEnd:   time.Date(2024, time.May, 1, 0, 0, 0, 0, ist),
		},
		{
			name: "missing anchor",
			at:   time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
			cadence: PeriodCadence{
				Period:      BILLING_PERIOD_MONTHLY,
				Count:       1,
				BillingTime: BillingTimeCalendar,
			},
			loc:     time.UTC,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := FullPeriodContaining(tt.at, tt.cadence, tt.loc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.wantStart.Equal(start), "start: want %s got %s", tt.wantStart, start)
			assert.True(t, tt.wantEnd.Equal(end), "end: want %s got %s", tt.wantEnd, end)
		})
	}
}
