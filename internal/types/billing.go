package types

import (
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/samber/lo"
)

// BillingMode represents when a subscription is billed relative to the period it covers.
type BillingMode string

const (
	BillingModeInAdvance BillingMode = "in_advance"
	BillingModeInArrears BillingMode = "in_arrears"
)

// BillingModeFor maps a plan's pay-in-advance flag to its billing mode
func BillingModeFor(payInAdvance bool) BillingMode {
	if payInAdvance {
		return BillingModeInAdvance
	}
	return BillingModeInArrears
}

func (m BillingMode) String() string {
	return string(m)
}

// BillingTime decides how period boundaries are aligned.
// Calendar periods start on the first day of the week, month, quarter or year
// in the customer's timezone; anniversary periods repeat from the subscription start date.
type BillingTime string

const (
	BillingTimeCalendar    BillingTime = "calendar"
	BillingTimeAnniversary BillingTime = "anniversary"
)

func (b BillingTime) String() string {
	return string(b)
}

func (b BillingTime) Validate() error {
	allowed := []BillingTime{BillingTimeCalendar, BillingTimeAnniversary}
	if !lo.Contains(allowed, b) {
		return ierr.NewError("invalid billing time").
			WithHint("Billing time must be calendar or anniversary").
			WithReportableDetails(map[string]any{
				"allowed_values": allowed,
				"provided_value": b,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BillingPeriod is the plan interval ex WEEKLY, MONTHLY, QUARTERLY, ANNUAL
type BillingPeriod string

const (
	BILLING_PERIOD_WEEKLY    BillingPeriod = "WEEKLY"
	BILLING_PERIOD_MONTHLY   BillingPeriod = "MONTHLY"
	BILLING_PERIOD_QUARTERLY BillingPeriod = "QUARTERLY"
	BILLING_PERIOD_ANNUAL    BillingPeriod = "ANNUAL"
)

func (p BillingPeriod) String() string {
	return string(p)
}

func (p BillingPeriod) Validate() error {
	allowed := []BillingPeriod{
		BILLING_PERIOD_WEEKLY,
		BILLING_PERIOD_MONTHLY,
		BILLING_PERIOD_QUARTERLY,
		BILLING_PERIOD_ANNUAL,
	}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid billing period").
			WithHint("Billing period must be one of WEEKLY, MONTHLY, QUARTERLY or ANNUAL").
			WithReportableDetails(map[string]any{
				"allowed_values": allowed,
				"provided_value": p,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// months returns the length of the period in months, zero for week based periods
func (p BillingPeriod) months() int {
	switch p {
	case BILLING_PERIOD_MONTHLY:
		return 1
	case BILLING_PERIOD_QUARTERLY:
		return 3
	case BILLING_PERIOD_ANNUAL:
		return 12
	default:
		return 0
	}
}
