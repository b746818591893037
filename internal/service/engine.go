package service

import (
	"context"
	"time"

	"github.com/flexprice/billingcore/internal/api/dto"
	"github.com/flexprice/billingcore/internal/cache"
	"github.com/flexprice/billingcore/internal/domain/commitment"
	"github.com/flexprice/billingcore/internal/domain/fixedcharge"
	"github.com/flexprice/billingcore/internal/domain/plan"
	"github.com/flexprice/billingcore/internal/domain/subscription"
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/sentry"
	"github.com/flexprice/billingcore/internal/types"
)

const planCacheTTL = 5 * time.Minute

// Engine computes prorated commitment amounts and fixed charge usage.
// It keeps no state between calls.
type Engine struct {
	ServiceParams
	proration    ProrationService
	commitments  CommitmentService
	fixedCharges FixedChargeService
}

func NewEngine(params ServiceParams) *Engine {
	prorationService := NewProrationService(params)
	return &Engine{
		ServiceParams: params,
		proration:     prorationService,
		commitments:   NewCommitmentService(params, prorationService),
		fixedCharges:  NewFixedChargeService(params),
	}
}

// StrategyFor returns the billing strategy of the subscription's plan
func (e *Engine) StrategyFor(sub *subscription.Subscription) (BillingStrategy, error) {
	return NewBillingStrategy(e.ServiceParams, sub)
}

// CommitmentAmountCents prorates c over the period is belongs to.
// A missing or zero commitment is 0 without reading anything.
func (e *Engine) CommitmentAmountCents(ctx context.Context, c *commitment.Commitment, sub *subscription.Subscription, is *subscription.InvoiceSubscription) (int64, error) {
	amount, err := e.commitmentAmount(ctx, c, sub, is)
	if err != nil {
		return 0, err
	}
	return amount.AmountCents, nil
}

func (e *Engine) commitmentAmount(ctx context.Context, c *commitment.Commitment, sub *subscription.Subscription, is *subscription.InvoiceSubscription) (*CommitmentAmount, error) {
	if c.IsZero() || is == nil {
		return e.commitments.ProratedAmount(ctx, nil, c, sub, is)
	}

	strategy, err := e.StrategyFor(sub)
	if err != nil {
		return nil, err
	}
	return e.commitments.ProratedAmount(ctx, strategy, c, sub, is)
}

// AggregateFixedCharge returns the billable units of fc within boundaries
func (e *Engine) AggregateFixedCharge(ctx context.Context, fc *fixedcharge.FixedCharge, sub *subscription.Subscription, boundaries fixedcharge.Boundaries) (*fixedcharge.AggregationResult, error) {
	return e.fixedCharges.Aggregate(ctx, fc, sub, boundaries)
}

// FixedChargeBoundaries is the window covered by is, measured against its full period
func (e *Engine) FixedChargeBoundaries(ctx context.Context, sub *subscription.Subscription, is *subscription.InvoiceSubscription) (fixedcharge.Boundaries, error) {
	period, err := e.fullPeriod(ctx, sub, is)
	if err != nil {
		return fixedcharge.Boundaries{}, err
	}

	terminatedAt, err := terminationTime(sub)
	if err != nil {
		return fixedcharge.Boundaries{}, err
	}

	to := is.EffectiveEnd()
	if terminatedAt != nil && terminatedAt.Before(to) {
		to = *terminatedAt
	}

	if to.Before(is.FromDatetime) {
		return fixedcharge.Boundaries{}, ierr.WithError(fixedcharge.ErrInvalidBoundaries).
			WithHintf("Invoice subscription %s ends at %s, before it starts at %s", is.ID,
				to.Format(time.RFC3339), is.FromDatetime.Format(time.RFC3339)).
			WithReportableDetails(map[string]any{
				"subscription_id":         sub.ID,
				"invoice_subscription_id": is.ID,
			}).
			Mark(ierr.ErrDataIntegrity)
	}

	return fixedcharge.Boundaries{
		FromDatetime:        is.FromDatetime,
		ToDatetime:          to,
		ChargesDurationDays: period.TotalDays(),
	}, nil
}

// ComputeCommitmentAmount loads the invoice-subscription's graph and prorates the plan commitment
func (e *Engine) ComputeCommitmentAmount(ctx context.Context, req *dto.CommitmentAmountRequest) (*dto.CommitmentAmountResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	span, ctx := e.Sentry.StartEngineSpan(ctx, "engine.commitment_amount", map[string]interface{}{
		"invoice_subscription_id": req.InvoiceSubscriptionID,
	})
	finisher := &sentry.SpanFinisher{Span: span}
	defer finisher.Finish()

	is, sub, err := e.loadInvoiceSubscription(ctx, req.InvoiceSubscriptionID)
	if err != nil {
		return nil, err
	}

	c, err := e.CommitmentRepo.GetByPlanID(ctx, sub.PlanID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}

	amount, err := e.commitmentAmount(ctx, c, sub, is)
	if err != nil {
		e.Sentry.CaptureException(err)
		return nil, err
	}

	e.Logger.Infow("computed commitment amount",
		"subscription_id", sub.ID,
		"invoice_subscription_id", is.ID,
		"amount_cents", amount.AmountCents,
	)

	return &dto.CommitmentAmountResponse{
		SubscriptionID:        sub.ID,
		InvoiceSubscriptionID: is.ID,
		BillingMode:           sub.Plan.BillingMode(),
		CommitmentID:          amount.CommitmentID,
		AmountCents:           amount.AmountCents,
		Currency:              amount.Currency,
		Coefficient:           amount.Coefficient,
	}, nil
}

// ComputeFixedChargeUsage aggregates a fixed charge over the window of an invoice-subscription
func (e *Engine) ComputeFixedChargeUsage(ctx context.Context, req *dto.FixedChargeUsageRequest) (*dto.FixedChargeUsageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	span, ctx := e.Sentry.StartEngineSpan(ctx, "engine.fixed_charge_usage", map[string]interface{}{
		"fixed_charge_id":         req.FixedChargeID,
		"invoice_subscription_id": req.InvoiceSubscriptionID,
	})
	finisher := &sentry.SpanFinisher{Span: span}
	defer finisher.Finish()

	is, sub, err := e.loadInvoiceSubscription(ctx, req.InvoiceSubscriptionID)
	if err != nil {
		return nil, err
	}

	fc, err := e.FixedChargeRepo.Get(ctx, req.FixedChargeID)
	if err != nil {
		return nil, err
	}

	if fc.PlanID != sub.PlanID {
		return nil, ierr.NewError("fixed charge does not belong to the subscription plan").
			WithHintf("Fixed charge %s is not part of plan %s", fc.ID, sub.PlanID).
			WithReportableDetails(map[string]any{
				"fixed_charge_id": fc.ID,
				"plan_id":         sub.PlanID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	boundaries, err := e.FixedChargeBoundaries(ctx, sub, is)
	if err != nil {
		return nil, err
	}

	result, err := e.AggregateFixedCharge(ctx, fc, sub, boundaries)
	if err != nil {
		e.Sentry.CaptureException(err)
		return nil, err
	}

	return dto.NewFixedChargeUsageResponse(fc, sub.ID, boundaries, result), nil
}

// loadInvoiceSubscription reads the invoice-subscription and its subscription with plan and customer attached
func (e *Engine) loadInvoiceSubscription(ctx context.Context, id string) (*subscription.InvoiceSubscription, *subscription.Subscription, error) {
	is, err := e.InvoiceSubscriptionRepo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	sub, err := e.SubRepo.Get(ctx, is.SubscriptionID)
	if err != nil {
		return nil, nil, err
	}

	sub.Plan, err = e.getPlan(ctx, sub.PlanID)
	if err != nil {
		return nil, nil, err
	}

	sub.Customer, err = e.CustomerRepo.Get(ctx, sub.CustomerID)
	if err != nil {
		return nil, nil, err
	}

	return is, sub, nil
}

func (e *Engine) getPlan(ctx context.Context, id string) (*plan.Plan, error) {
	key := cache.GenerateKey(cache.PrefixPlan, types.GetTenantID(ctx), id)
	if e.Cache != nil {
		if cached, found := e.Cache.Get(ctx, key); found {
			if p, ok := cached.(*plan.Plan); ok {
				return p, nil
			}
		}
	}

	p, err := e.PlanRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if e.Cache != nil {
		e.Cache.Set(ctx, key, p, planCacheTTL)
	}
	return p, nil
}
