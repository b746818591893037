package subscription

import (
	"time"

	"github.com/flexprice/billingcore/internal/domain/customer"
	"github.com/flexprice/billingcore/internal/domain/plan"
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/types"
)

type Subscription struct {
	// ID is the unique identifier for the subscription
	ID string `db:"id" json:"id"`

	// CustomerID is the identifier for the customer in our system
	CustomerID string `db:"customer_id" json:"customer_id"`

	// PlanID is the identifier for the plan in our system
	PlanID string `db:"plan_id" json:"plan_id"`

	// Status is the lifecycle state of the subscription
	Status types.SubscriptionStatus `db:"subscription_status" json:"subscription_status"`

	// BillingTime aligns periods on calendar boundaries or on the start date anniversary
	BillingTime types.BillingTime `db:"billing_time" json:"billing_time"`

	// StartedAt is when the subscription became active, the anchor of anniversary periods
	StartedAt time.Time `db:"started_at" json:"started_at"`

	// TerminatedAt is set once the subscription is terminated
	TerminatedAt *time.Time `db:"terminated_at" json:"terminated_at"`

	// Plan and Customer are hydrated by the service layer
	Plan     *plan.Plan         `db:"-" json:"plan,omitempty"`
	Customer *customer.Customer `db:"-" json:"customer,omitempty"`

	types.BaseModel
}

func (s *Subscription) IsTerminated() bool {
	return s.Status == types.SubscriptionStatusTerminated
}

// Cadence returns how the subscription's billing periods repeat.
// The plan must be loaded.
func (s *Subscription) Cadence() (types.PeriodCadence, error) {
	if s.Plan == nil {
		return types.PeriodCadence{}, ierr.NewError("subscription plan not loaded").
			WithHintf("Plan %s must be loaded before resolving billing periods", s.PlanID).
			Mark(ierr.ErrInvalidOperation)
	}

	return types.PeriodCadence{
		Period:      s.Plan.Interval,
		Count:       s.Plan.IntervalCount,
		BillingTime: s.BillingTime,
		Anchor:      s.StartedAt,
	}, nil
}

// Timezone returns the customer's applicable zone, or fallback when the customer is not loaded
func (s *Subscription) Timezone(fallback string) string {
	if s.Customer == nil {
		return fallback
	}
	return s.Customer.ApplicableTimezone()
}

// InvoiceSubscription links a subscription to one invoice and the span that invoice covers.
// The records of one subscription form a chronological chain without overlaps.
type InvoiceSubscription struct {
	ID             string `db:"id" json:"id"`
	InvoiceID      string `db:"invoice_id" json:"invoice_id"`
	SubscriptionID string `db:"subscription_id" json:"subscription_id"`

	// FromDatetime is the start of the invoiced span
	FromDatetime time.Time `db:"from_datetime" json:"from_datetime"`

	// ToDatetime is the end of the invoiced span, nil for records that only carry a timestamp
	ToDatetime *time.Time `db:"to_datetime" json:"to_datetime"`

	// Timestamp is when the invoice was issued
	Timestamp time.Time `db:"timestamp" json:"timestamp"`

	types.BaseModel
}

// EffectiveEnd returns ToDatetime, or Timestamp when ToDatetime is unset
func (is *InvoiceSubscription) EffectiveEnd() time.Time {
	if is.ToDatetime != nil {
		return *is.ToDatetime
	}
	return is.Timestamp
}
