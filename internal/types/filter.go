package types

import (
	"time"

	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/samber/lo"
)

const (
	OrderDesc = "desc"
	OrderAsc  = "asc"
)

// InvoiceSubscriptionFilter narrows invoice-subscription reads to one subscription's chain.
// Results are always ordered by the effective end, COALESCE(to_datetime, timestamp).
type InvoiceSubscriptionFilter struct {
	SubscriptionID string
	// InvoiceIDs restricts results to the given invoices when non-empty
	InvoiceIDs []string
	// ExcludeIDs drops the given invoice-subscriptions
	ExcludeIDs []string
	// FromDatetimeGTE keeps records with from_datetime >= the value
	FromDatetimeGTE *time.Time
	// FromDatetimeLTE keeps records with from_datetime <= the value
	FromDatetimeLTE *time.Time
	// EffectiveEndGTE and EffectiveEndLTE bound the effective end, both inclusive
	EffectiveEndGTE *time.Time
	EffectiveEndLTE *time.Time
	// EffectiveEndGT drops records ending exactly at the value.
	// Period ends are exclusive so such a record covers only earlier days.
	EffectiveEndGT *time.Time
	Order          string
	// Limit of zero means unlimited
	Limit int
}

func (f *InvoiceSubscriptionFilter) GetOrder() string {
	if f.Order == "" {
		return OrderAsc
	}
	return f.Order
}

func (f *InvoiceSubscriptionFilter) Validate() error {
	if f == nil {
		return ierr.NewError("invoice subscription filter is required").
			Mark(ierr.ErrValidation)
	}

	if f.SubscriptionID == "" {
		return ierr.NewError("subscription_id is required").
			WithHint("Invoice subscriptions can only be listed for a single subscription").
			Mark(ierr.ErrValidation)
	}

	if !lo.Contains([]string{OrderAsc, OrderDesc}, f.GetOrder()) {
		return ierr.NewError("invalid order").
			WithHintf("Order must be %s or %s", OrderAsc, OrderDesc).
			Mark(ierr.ErrValidation)
	}

	if f.FromDatetimeGTE != nil && f.FromDatetimeLTE != nil && f.FromDatetimeLTE.Before(*f.FromDatetimeGTE) {
		return ierr.NewError("invalid from_datetime range").
			WithHint("from_datetime upper bound must not be before the lower bound").
			WithReportableDetails(map[string]any{
				"from_datetime_gte": f.FromDatetimeGTE,
				"from_datetime_lte": f.FromDatetimeLTE,
			}).
			Mark(ierr.ErrValidation)
	}

	if f.EffectiveEndGTE != nil && f.EffectiveEndLTE != nil && f.EffectiveEndLTE.Before(*f.EffectiveEndGTE) {
		return ierr.NewError("invalid effective end range").
			WithHint("Effective end upper bound must not be before the lower bound").
			WithReportableDetails(map[string]any{
				"effective_end_gte": f.EffectiveEndGTE,
				"effective_end_lte": f.EffectiveEndLTE,
			}).
			Mark(ierr.ErrValidation)
	}

	if f.EffectiveEndGT != nil && f.EffectiveEndLTE != nil && f.EffectiveEndLTE.Before(*f.EffectiveEndGT) {
		return ierr.NewError("invalid effective end range").
			WithHint("Effective end upper bound must not be before the lower bound").
			WithReportableDetails(map[string]any{
				"effective_end_gt":  f.EffectiveEndGT,
				"effective_end_lte": f.EffectiveEndLTE,
			}).
			Mark(ierr.ErrValidation)
	}

	if f.Limit < 0 {
		return ierr.NewError("limit must not be negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// FixedChargeEventFilter selects the event window of one fixed charge on one subscription.
// StartTime is inclusive and EndTime exclusive, matching billing period ends.
// Results are ordered by timestamp ascending.
type FixedChargeEventFilter struct {
	SubscriptionID string
	Code           string
	StartTime      time.Time
	EndTime        time.Time
}

func (f *FixedChargeEventFilter) Validate() error {
	if f == nil {
		return ierr.NewError("fixed charge event filter is required").
			Mark(ierr.ErrValidation)
	}

	if f.SubscriptionID == "" || f.Code == "" {
		return ierr.NewError("subscription_id and code are required").
			WithHint("Fixed charge events are scoped to a subscription and a charge code").
			Mark(ierr.ErrValidation)
	}

	if f.StartTime.IsZero() || f.EndTime.IsZero() {
		return ierr.NewError("start_time and end_time are required").
			Mark(ierr.ErrValidation)
	}

	if f.EndTime.Before(f.StartTime) {
		return ierr.NewError("end_time cannot be before start_time").
			WithReportableDetails(map[string]any{
				"start_time": f.StartTime,
				"end_time":   f.EndTime,
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}
