package service

import (
	"context"
	"time"

	"github.com/flexprice/billingcore/internal/domain/proration"
	"github.com/flexprice/billingcore/internal/domain/subscription"
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/types"
)

// ResolvedPeriod is the full billing period an invoice-subscription is prorated against
type ResolvedPeriod struct {
	// Anchor is the invoice-subscription whose start locates the period
	Anchor *subscription.InvoiceSubscription `json:"anchor"`

	// PreviousBeginningOfPeriod is the inclusive start of the full period
	PreviousBeginningOfPeriod time.Time `json:"previous_beginning_of_period"`

	// EndOfPeriod is the exclusive end of the full period, early termination ignored
	EndOfPeriod time.Time `json:"end_of_period"`

	Location *time.Location `json:"-"`
}

// TotalDays returns the calendar days of the full period
func (p *ResolvedPeriod) TotalDays() int {
	return proration.DayDiff(p.PreviousBeginningOfPeriod, p.EndOfPeriod, p.Location)
}

// BillingStrategy locates the billing period of an invoice-subscription.
// Pay in advance and pay in arrears plans anchor differently.
type BillingStrategy interface {
	Mode() types.BillingMode
	ResolvePeriod(ctx context.Context, sub *subscription.Subscription, is *subscription.InvoiceSubscription) (*ResolvedPeriod, error)
}

// NewBillingStrategy picks the strategy for the subscription's plan, which must be loaded
func NewBillingStrategy(params ServiceParams, sub *subscription.Subscription) (BillingStrategy, error) {
	if sub == nil || sub.Plan == nil {
		return nil, ierr.NewError("subscription plan not loaded").
			WithHint("The plan decides whether the subscription is billed in advance or in arrears").
			Mark(ierr.ErrInvalidOperation)
	}

	if sub.Plan.PayInAdvance {
		return &AdvanceBillingStrategy{ServiceParams: params}, nil
	}
	return &ArrearsBillingStrategy{ServiceParams: params}, nil
}

// AdvanceBillingStrategy resolves periods of plans billed at the start of each period.
// Once terminated the period that matters is the one already invoiced, so the anchor
// moves back to the previous invoice-subscription in the chain.
type AdvanceBillingStrategy struct {
	ServiceParams
}

func (s *AdvanceBillingStrategy) Mode() types.BillingMode {
	return types.BillingModeInAdvance
}

func (s *AdvanceBillingStrategy) ResolvePeriod(ctx context.Context, sub *subscription.Subscription, is *subscription.InvoiceSubscription) (*ResolvedPeriod, error) {
	anchor := is
	if sub.IsTerminated() {
		previous, err := s.previousInvoiceSubscription(ctx, is)
		if err != nil {
			return nil, err
		}
		anchor = previous
	}

	return s.fullPeriod(ctx, sub, anchor)
}

// previousInvoiceSubscription returns the record invoiced before is: among the records
// starting no later than is, the one ending last. Billed in advance, that record
// still spans the whole period the termination falls in.
func (s *AdvanceBillingStrategy) previousInvoiceSubscription(ctx context.Context, is *subscription.InvoiceSubscription) (*subscription.InvoiceSubscription, error) {
	records, err := s.InvoiceSubscriptionRepo.List(ctx, &types.InvoiceSubscriptionFilter{
		SubscriptionID:  is.SubscriptionID,
		ExcludeIDs:      []string{is.ID},
		FromDatetimeLTE: &is.FromDatetime,
		Order:           types.OrderDesc,
		Limit:           1,
	})
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ierr.WithError(proration.ErrPeriodNotResolvable).
			WithHintf("Subscription %s has no invoice before %s", is.SubscriptionID, is.FromDatetime.Format(time.RFC3339)).
			WithReportableDetails(map[string]any{
				"subscription_id":         is.SubscriptionID,
				"invoice_subscription_id": is.ID,
			}).
			Mark(ierr.ErrDataIntegrity)
	}
	return records[0], nil
}

// ArrearsBillingStrategy resolves periods of plans billed once each period has ended.
// The current invoice-subscription always anchors.
type ArrearsBillingStrategy struct {
	ServiceParams
}

func (s *ArrearsBillingStrategy) Mode() types.BillingMode {
	return types.BillingModeInArrears
}

func (s *ArrearsBillingStrategy) ResolvePeriod(ctx context.Context, sub *subscription.Subscription, is *subscription.InvoiceSubscription) (*ResolvedPeriod, error) {
	return s.fullPeriod(ctx, sub, is)
}

// fullPeriod returns the plan period containing the anchor's start
func (p ServiceParams) fullPeriod(ctx context.Context, sub *subscription.Subscription, anchor *subscription.InvoiceSubscription) (*ResolvedPeriod, error) {
	if anchor == nil {
		return nil, ierr.WithError(proration.ErrPeriodNotResolvable).
			WithHintf("Subscription %s has no invoice subscription to anchor on", sub.ID).
			Mark(ierr.ErrDataIntegrity)
	}

	cadence, err := sub.Cadence()
	if err != nil {
		return nil, err
	}

	loc, err := p.subscriptionLocation(ctx, sub)
	if err != nil {
		return nil, err
	}

	start, end, err := types.FullPeriodContaining(anchor.FromDatetime, cadence, loc)
	if err != nil {
		return nil, err
	}

	p.Logger.Debugw("resolved billing period",
		"subscription_id", sub.ID,
		"anchor_id", anchor.ID,
		"previous_beginning_of_period", start,
		"end_of_period", end,
		"timezone", loc.String(),
	)

	return &ResolvedPeriod{
		Anchor:                    anchor,
		PreviousBeginningOfPeriod: start,
		EndOfPeriod:               end,
		Location:                  loc,
	}, nil
}

// terminationTime returns when sub was terminated, nil while it is not.
// A terminated subscription without a termination date cannot be prorated.
func terminationTime(sub *subscription.Subscription) (*time.Time, error) {
	if !sub.IsTerminated() {
		return nil, nil
	}
	if sub.TerminatedAt == nil {
		return nil, ierr.WithError(proration.ErrPeriodNotResolvable).
			WithHintf("Subscription %s is terminated but has no termination date", sub.ID).
			WithReportableDetails(map[string]any{
				"subscription_id": sub.ID,
			}).
			Mark(ierr.ErrDataIntegrity)
	}
	return sub.TerminatedAt, nil
}
