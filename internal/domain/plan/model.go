package plan

import (
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/types"
)

type Plan struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`

	// Interval is the length of one billing period
	Interval types.BillingPeriod `db:"interval" json:"interval"`

	// IntervalCount multiplies Interval, ex 3 x MONTHLY bills every three months
	IntervalCount int `db:"interval_count" json:"interval_count"`

	// PayInAdvance bills the period at its start instead of its end
	PayInAdvance bool `db:"pay_in_advance" json:"pay_in_advance"`

	// Currency in lowercase 3 digit ISO code
	Currency string `db:"currency" json:"currency"`

	types.BaseModel
}

// BillingMode returns when the plan's periods are billed
func (p *Plan) BillingMode() types.BillingMode {
	return types.BillingModeFor(p.PayInAdvance)
}

func (p *Plan) Validate() error {
	if err := p.Interval.Validate(); err != nil {
		return err
	}
	if p.IntervalCount <= 0 {
		return ierr.NewError("interval count must be positive").
			WithHintf("Plan %s has an interval count of %d", p.ID, p.IntervalCount).
			Mark(ierr.ErrValidation)
	}
	return nil
}
