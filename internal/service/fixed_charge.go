package service

import (
	"context"
	"time"

	"github.com/flexprice/billingcore/internal/domain/fixedcharge"
	"github.com/flexprice/billingcore/internal/domain/proration"
	"github.com/flexprice/billingcore/internal/domain/subscription"
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type FixedChargeService interface {
	// Aggregate returns the billable units of fc over the boundaries
	Aggregate(ctx context.Context, fc *fixedcharge.FixedCharge, sub *subscription.Subscription, boundaries fixedcharge.Boundaries) (*fixedcharge.AggregationResult, error)
}

type fixedChargeService struct {
	ServiceParams
}

func NewFixedChargeService(params ServiceParams) FixedChargeService {
	return &fixedChargeService{
		ServiceParams: params,
	}
}

func (s *fixedChargeService) Aggregate(
	ctx context.Context,
	fc *fixedcharge.FixedCharge,
	sub *subscription.Subscription,
	boundaries fixedcharge.Boundaries,
) (*fixedcharge.AggregationResult, error) {
	if fc.Prorated && boundaries.ChargesDurationDays <= 0 {
		return nil, ierr.WithError(proration.ErrDegeneratePeriod).
			WithHintf("Fixed charge %s is prorated over %d days", fc.ID, boundaries.ChargesDurationDays).
			WithReportableDetails(map[string]any{
				"fixed_charge_id":       fc.ID,
				"charges_duration_days": boundaries.ChargesDurationDays,
			}).
			Mark(ierr.ErrValidation)
	}

	events, err := s.FixedChargeEventRepo.ListEvents(ctx, &types.FixedChargeEventFilter{
		SubscriptionID: sub.ID,
		Code:           fc.Code,
		StartTime:      boundaries.FromDatetime,
		EndTime:        boundaries.ToDatetime,
	})
	if err != nil {
		return nil, err
	}

	if len(events) == 0 {
		return nil, ierr.WithError(fixedcharge.ErrNoUsageEvents).
			WithHintf("Fixed charge %s has no event between %s and %s", fc.Code,
				boundaries.FromDatetime.Format(time.RFC3339), boundaries.ToDatetime.Format(time.RFC3339)).
			WithReportableDetails(map[string]any{
				"fixed_charge_id": fc.ID,
				"subscription_id": sub.ID,
				"code":            fc.Code,
			}).
			Mark(ierr.ErrDataIntegrity)
	}

	last := events[len(events)-1]
	result := &fixedcharge.AggregationResult{
		Aggregation:          last.Units,
		CurrentUsageUnits:    last.Units,
		FullUnitsNumber:      last.Units,
		TotalAggregatedUnits: last.Units,
		Count:                len(events),
	}

	if fc.Prorated {
		loc, err := s.subscriptionLocation(ctx, sub)
		if err != nil {
			return nil, err
		}

		result.Aggregation = proratedUnits(events, boundaries, loc)
		result.FullPeriodDays = lo.ToPtr(boundaries.ChargesDurationDays)
	}

	s.Logger.Debugw("aggregated fixed charge",
		"fixed_charge_id", fc.ID,
		"subscription_id", sub.ID,
		"prorated", fc.Prorated,
		"event_count", result.Count,
		"aggregation", result.Aggregation.String(),
	)

	return result, nil
}

// proratedUnits weights each event's units by the days it stayed in effect.
// An event lasts until the next one, the last until the window ends.
// Events declaring zero units add nothing.
func proratedUnits(events []*fixedcharge.Event, boundaries fixedcharge.Boundaries, loc *time.Location) decimal.Decimal {
	periodDays := decimal.NewFromInt(int64(boundaries.ChargesDurationDays))
	total := decimal.Zero

	for i, event := range events {
		if !event.Units.IsPositive() {
			continue
		}

		next := boundaries.ToDatetime
		if i+1 < len(events) {
			next = events[i+1].Timestamp
		}
		if next.Before(boundaries.FromDatetime) {
			next = boundaries.FromDatetime
		}

		start := lo.Latest(event.Timestamp, boundaries.FromDatetime)
		days := proration.DayDiff(start, next, loc)

		total = total.Add(event.Units.Mul(decimal.NewFromInt(int64(days))).Div(periodDays))
	}

	return types.RoundUnits(total)
}
