package types

import (
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/samber/lo"
)

// SubscriptionStatus is the lifecycle state of a subscription
type SubscriptionStatus string

const (
	SubscriptionStatusPending    SubscriptionStatus = "pending"
	SubscriptionStatusActive     SubscriptionStatus = "active"
	SubscriptionStatusTerminated SubscriptionStatus = "terminated"
	SubscriptionStatusCanceled   SubscriptionStatus = "canceled"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) Validate() error {
	allowed := []SubscriptionStatus{
		SubscriptionStatusPending,
		SubscriptionStatusActive,
		SubscriptionStatusTerminated,
		SubscriptionStatusCanceled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid subscription status").
			WithHint("Invalid subscription status").
			WithReportableDetails(map[string]any{
				"allowed_values": allowed,
				"provided_value": s,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
