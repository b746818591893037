package service

import (
	"context"

	"github.com/flexprice/billingcore/internal/domain/commitment"
	"github.com/flexprice/billingcore/internal/domain/proration"
	"github.com/flexprice/billingcore/internal/domain/subscription"
)

// CommitmentAmount is the prorated commitment owed for one invoice-subscription
type CommitmentAmount struct {
	CommitmentID string                 `json:"commitment_id,omitempty"`
	AmountCents  int64                  `json:"amount_cents"`
	Currency     string                 `json:"currency,omitempty"`
	Coefficient  *proration.Coefficient `json:"coefficient,omitempty"`
}

type CommitmentService interface {
	// ProratedAmount scales the commitment to the share of the period covered by is
	ProratedAmount(ctx context.Context, strategy BillingStrategy, c *commitment.Commitment, sub *subscription.Subscription, is *subscription.InvoiceSubscription) (*CommitmentAmount, error)
}

type commitmentService struct {
	ServiceParams
	proration ProrationService
}

func NewCommitmentService(params ServiceParams, prorationService ProrationService) CommitmentService {
	return &commitmentService{
		ServiceParams: params,
		proration:     prorationService,
	}
}

func (s *commitmentService) ProratedAmount(
	ctx context.Context,
	strategy BillingStrategy,
	c *commitment.Commitment,
	sub *subscription.Subscription,
	is *subscription.InvoiceSubscription,
) (*CommitmentAmount, error) {
	// nothing to prorate, no query issued
	if c.IsZero() || is == nil {
		result := &CommitmentAmount{}
		if c != nil {
			result.CommitmentID = c.ID
			result.Currency = c.Currency
		}
		return result, nil
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	coefficient, err := s.proration.Coefficient(ctx, strategy, sub, is)
	if err != nil {
		return nil, err
	}

	amount := coefficient.ApplyMinorUnits(c.AmountCents)

	s.Logger.Debugw("prorated commitment amount",
		"commitment_id", c.ID,
		"subscription_id", sub.ID,
		"amount_cents", c.AmountCents,
		"prorated_amount_cents", amount,
	)

	return &CommitmentAmount{
		CommitmentID: c.ID,
		AmountCents:  amount,
		Currency:     c.Currency,
		Coefficient:  &coefficient.Coefficient,
	}, nil
}
