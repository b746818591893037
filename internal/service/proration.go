package service

import (
	"context"

	"github.com/flexprice/billingcore/internal/domain/proration"
	"github.com/flexprice/billingcore/internal/domain/subscription"
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/types"
	"github.com/samber/lo"
)

// ProrationResult is a coefficient together with the period it was computed over
type ProrationResult struct {
	proration.Coefficient
	Period *ResolvedPeriod `json:"period"`
}

type ProrationService interface {
	// Coefficient returns the share of the full billing period covered by is
	Coefficient(ctx context.Context, strategy BillingStrategy, sub *subscription.Subscription, is *subscription.InvoiceSubscription) (*ProrationResult, error)
}

type prorationService struct {
	ServiceParams
}

func NewProrationService(params ServiceParams) ProrationService {
	return &prorationService{
		ServiceParams: params,
	}
}

func (s *prorationService) Coefficient(
	ctx context.Context,
	strategy BillingStrategy,
	sub *subscription.Subscription,
	is *subscription.InvoiceSubscription,
) (*ProrationResult, error) {
	var result *ProrationResult

	// period and chain are read from one snapshot
	err := s.DB.WithReadOnlyTx(ctx, func(ctx context.Context) error {
		period, err := strategy.ResolvePeriod(ctx, sub, is)
		if err != nil {
			return err
		}

		records, err := s.InvoiceSubscriptionRepo.List(ctx, &types.InvoiceSubscriptionFilter{
			SubscriptionID:  sub.ID,
			EffectiveEndGT:  &period.PreviousBeginningOfPeriod,
			EffectiveEndLTE: &period.EndOfPeriod,
			Order:           types.OrderAsc,
		})
		if err != nil {
			return err
		}

		if len(records) == 0 {
			return ierr.WithError(proration.ErrPeriodNotResolvable).
				WithHintf("Subscription %s has no invoice in its billing period", sub.ID).
				WithReportableDetails(map[string]any{
					"subscription_id":              sub.ID,
					"invoice_subscription_id":      is.ID,
					"previous_beginning_of_period": period.PreviousBeginningOfPeriod,
					"end_of_period":                period.EndOfPeriod,
				}).
				Mark(ierr.ErrDataIntegrity)
		}

		terminatedAt, err := terminationTime(sub)
		if err != nil {
			return err
		}

		endpoint := period.Anchor.EffectiveEnd()
		if terminatedAt != nil {
			endpoint = *terminatedAt
		}

		// a record billed in advance can start before the termination record
		// that ends earlier, so the period starts at the earliest start
		first := lo.MinBy(records, func(a, b *subscription.InvoiceSubscription) bool {
			return a.FromDatetime.Before(b.FromDatetime)
		})

		elapsed := proration.DayDiff(first.FromDatetime, endpoint, period.Location)
		coefficient, err := proration.NewCoefficient(elapsed, period.TotalDays())
		if err != nil {
			return err
		}

		result = &ProrationResult{
			Coefficient: coefficient,
			Period:      period,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Debugw("computed proration coefficient",
		"subscription_id", sub.ID,
		"invoice_subscription_id", is.ID,
		"billing_mode", strategy.Mode(),
		"elapsed_days", result.ElapsedDays,
		"total_days", result.TotalDays,
		"coefficient", result.Decimal().String(),
	)

	return result, nil
}
