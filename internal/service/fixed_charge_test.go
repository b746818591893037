package service

import (
	"time"

	"github.com/flexprice/billingcore/internal/api/dto"
	"github.com/flexprice/billingcore/internal/domain/fixedcharge"
	"github.com/flexprice/billingcore/internal/domain/proration"
	"github.com/flexprice/billingcore/internal/domain/subscription"
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

func (s *EngineSuite) createFixedCharge(id, code string, prorated bool) *fixedcharge.FixedCharge {
	fc := &fixedcharge.FixedCharge{
		ID:        id,
		PlanID:    "plan_1",
		Code:      code,
		Prorated:  prorated,
		BaseModel: s.GetBaseModel(),
	}
	s.Require().NoError(s.GetStores().FixedChargeRepo.Create(s.GetContext(), fc))
	return fc
}

func (s *EngineSuite) insertEvent(code string, at time.Time, units string) {
	s.Require().NoError(s.GetStores().FixedChargeEventRepo.InsertEvent(s.GetContext(), &fixedcharge.Event{
		SubscriptionID: "subs_1",
		Code:           code,
		Timestamp:      at,
		Units:          decimal.RequireFromString(units),
	}))
}

func januaryWindow(days int) fixedcharge.Boundaries {
	return fixedcharge.Boundaries{
		FromDatetime:        utcDate(2024, time.January, 1),
		ToDatetime:          utcDate(2024, time.January, 1+days),
		ChargesDurationDays: days,
	}
}

func (s *EngineSuite) aggregate(fc *fixedcharge.FixedCharge, sub *subscription.Subscription, boundaries fixedcharge.Boundaries) (*fixedcharge.AggregationResult, error) {
	return s.engine.AggregateFixedCharge(s.GetContext(), fc, sub, boundaries)
}

func (s *EngineSuite) TestNonProratedLastWriteWins() {
	sub := s.createSubscription(fixture{startedAt: utcDate(2024, time.January, 1)})
	fc := s.createFixedCharge("fc_seats", "seats", false)
	s.insertEvent("seats", utcDate(2024, time.January, 1), "5")
	s.insertEvent("seats", utcDate(2024, time.January, 4), "8")

	result, err := s.aggregate(fc, sub, januaryWindow(10))
	s.Require().NoError(err)
	s.True(result.Aggregation.Equal(decimal.NewFromInt(8)))
	s.True(result.CurrentUsageUnits.Equal(decimal.NewFromInt(8)))
	s.True(result.FullUnitsNumber.Equal(decimal.NewFromInt(8)))
	s.True(result.TotalAggregatedUnits.Equal(decimal.NewFromInt(8)))
	s.Equal(2, result.Count)
	s.Nil(result.FullPeriodDays)
}

func (s *EngineSuite) TestProratedSkipsZeroUnitEvents() {
	sub := s.createSubscription(fixture{startedAt: utcDate(2024, time.January, 1)})
	fc := s.createFixedCharge("fc_seats", "seats", true)
	s.insertEvent("seats", utcDate(2024, time.January, 1), "0")
	s.insertEvent("seats", utcDate(2024, time.January, 6), "10")

	result, err := s.aggregate(fc, sub, januaryWindow(10))
	s.Require().NoError(err)
	s.True(result.Aggregation.Equal(decimal.RequireFromString("5")), result.Aggregation.String())
	s.True(result.FullUnitsNumber.Equal(decimal.NewFromInt(10)))
	s.Equal(2, result.Count)
	s.Require().NotNil(result.FullPeriodDays)
	s.Equal(10, *result.FullPeriodDays)
}

func (s *EngineSuite) TestProratedWeightsEachEventByDuration() {
	sub := s.createSubscription(fixture{startedAt: utcDate(2024, time.January, 1)})
	fc := s.createFixedCharge("fc_seats", "seats", true)

	cases := []struct {
		name   string
		events [][2]string
		window fixedcharge.Boundaries
		want   string
	}{
		{
			name:   "two_levels",
			events: [][2]string{{"2024-01-01T00:00:00Z", "10"}, {"2024-01-04T00:00:00Z", "20"}},
			window: januaryWindow(10),
			want:   "17",
		},
		{
			name:   "single_day_of_three",
			events: [][2]string{{"2024-01-03T00:00:00Z", "1"}},
			window: januaryWindow(3),
			want:   "0.33333",
		},
		{
			name:   "two_of_three_rounds_half_up",
			events: [][2]string{{"2024-01-02T00:00:00Z", "1"}},
			window: januaryWindow(3),
			want:   "0.66667",
		},
		{
			name:   "same_day_change_counts_latest",
			events: [][2]string{{"2024-01-01T00:00:00Z", "4"}, {"2024-01-01T12:00:00Z", "6"}},
			window: januaryWindow(2),
			want:   "6",
		},
		{
			name:   "full_window_keeps_units",
			events: [][2]string{{"2024-01-01T00:00:00Z", "3.5"}},
			window: januaryWindow(31),
			want:   "3.5",
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.GetStores().FixedChargeEventRepo.Clear()
			for _, e := range tc.events {
				at, err := time.Parse(time.RFC3339, e[0])
				s.Require().NoError(err)
				s.insertEvent("seats", at, e[1])
			}

			result, err := s.aggregate(fc, sub, tc.window)
			s.Require().NoError(err)
			s.True(result.Aggregation.Equal(decimal.RequireFromString(tc.want)), "got %s", result.Aggregation.String())
		})
	}
}

func (s *EngineSuite) TestAggregateScopesEventsToCodeAndWindow() {
	sub := s.createSubscription(fixture{startedAt: utcDate(2024, time.January, 1)})
	fc := s.createFixedCharge("fc_seats", "seats", false)
	s.insertEvent("seats", utcDate(2023, time.December, 20), "99")
	s.insertEvent("seats", utcDate(2024, time.January, 2), "3")
	s.insertEvent("desks", utcDate(2024, time.January, 3), "7")
	// the window end belongs to the next period
	s.insertEvent("seats", utcDate(2024, time.January, 11), "42")

	result, err := s.aggregate(fc, sub, januaryWindow(10))
	s.Require().NoError(err)
	s.True(result.Aggregation.Equal(decimal.NewFromInt(3)))
	s.Equal(1, result.Count)
}

func (s *EngineSuite) TestAggregateWithoutEvents() {
	sub := s.createSubscription(fixture{startedAt: utcDate(2024, time.January, 1)})

	for _, prorated := range []bool{false, true} {
		fc := &fixedcharge.FixedCharge{ID: "fc_seats", PlanID: "plan_1", Code: "seats", Prorated: prorated}

		_, err := s.aggregate(fc, sub, januaryWindow(10))
		s.Require().Error(err)
		s.True(ierr.Is(err, fixedcharge.ErrNoUsageEvents))
		s.True(ierr.IsDataIntegrity(err))
	}
}

func (s *EngineSuite) TestProratedRejectsDegeneratePeriod() {
	sub := s.createSubscription(fixture{startedAt: utcDate(2024, time.January, 1)})
	fc := s.createFixedCharge("fc_seats", "seats", true)
	s.insertEvent("seats", utcDate(2024, time.January, 1), "5")

	window := januaryWindow(10)
	window.ChargesDurationDays = 0

	_, err := s.aggregate(fc, sub, window)
	s.Require().Error(err)
	s.True(ierr.Is(err, proration.ErrDegeneratePeriod))
	s.True(ierr.IsValidation(err))

	// non prorated charges never divide by the period
	fc.Prorated = false
	result, err := s.aggregate(fc, sub, window)
	s.Require().NoError(err)
	s.True(result.Aggregation.Equal(decimal.NewFromInt(5)))
}

func (s *EngineSuite) TestComputeFixedChargeUsage() {
	terminatedAt := utcDate(2024, time.January, 16)
	s.createSubscription(fixture{
		startedAt:    utcDate(2023, time.December, 1),
		terminatedAt: &terminatedAt,
	})
	s.createInvoiceSubscription("insub_term", utcDate(2024, time.January, 1), lo.ToPtr(terminatedAt), terminatedAt)
	s.createFixedCharge("fc_seats", "seats", true)
	s.insertEvent("seats", utcDate(2024, time.January, 1), "31")
	s.insertEvent("seats", utcDate(2024, time.January, 11), "62")

	resp, err := s.engine.ComputeFixedChargeUsage(s.GetContext(), &dto.FixedChargeUsageRequest{
		FixedChargeID:         "fc_seats",
		InvoiceSubscriptionID: "insub_term",
	})
	s.Require().NoError(err)

	s.Equal(31, resp.Boundaries.ChargesDurationDays)
	s.True(resp.Boundaries.ToDatetime.Equal(terminatedAt))
	// 31 seats for 10 days then 62 seats for 5 days of a 31 day month
	s.True(resp.Aggregation.Equal(decimal.NewFromInt(20)), resp.Aggregation.String())
	s.True(resp.FullUnitsNumber.Equal(decimal.NewFromInt(62)))
	s.Equal(2, resp.Count)
	s.True(resp.Prorated)
	s.Equal("seats", resp.Code)
}

func (s *EngineSuite) TestComputeFixedChargeUsageRejectsForeignCharge() {
	s.createSubscription(fixture{startedAt: utcDate(2023, time.December, 1)})
	s.createInvoiceSubscription("insub_jan", utcDate(2024, time.January, 1), lo.ToPtr(utcDate(2024, time.February, 1)), utcDate(2024, time.February, 1))
	s.Require().NoError(s.GetStores().FixedChargeRepo.Create(s.GetContext(), &fixedcharge.FixedCharge{
		ID:        "fc_other",
		PlanID:    "plan_other",
		Code:      "seats",
		BaseModel: s.GetBaseModel(),
	}))

	_, err := s.engine.ComputeFixedChargeUsage(s.GetContext(), &dto.FixedChargeUsageRequest{
		FixedChargeID:         "fc_other",
		InvoiceSubscriptionID: "insub_jan",
	})
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))

	_, err = s.engine.ComputeFixedChargeUsage(s.GetContext(), &dto.FixedChargeUsageRequest{FixedChargeID: "fc_other"})
	s.True(ierr.IsValidation(err))
}
