package commitment

import (
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/types"
)

// Type of a plan commitment
type Type string

const (
	// TypeMinimum is a floor on what a subscription pays per billing period
	TypeMinimum Type = "minimum_commitment"
)

// Commitment is a flat contractual amount attached to a plan
type Commitment struct {
	ID     string `db:"id" json:"id"`
	PlanID string `db:"plan_id" json:"plan_id"`
	Type   Type   `db:"commitment_type" json:"commitment_type"`

	// AmountCents is the full period amount in minor units
	AmountCents int64  `db:"amount_cents" json:"amount_cents"`
	Currency    string `db:"currency" json:"currency"`

	InvoiceDisplayName string `db:"invoice_display_name" json:"invoice_display_name"`

	types.BaseModel
}

// IsZero reports whether the commitment contributes nothing to a period
func (c *Commitment) IsZero() bool {
	return c == nil || c.AmountCents == 0
}

func (c *Commitment) Validate() error {
	if c.AmountCents < 0 {
		return ierr.NewError("commitment amount must not be negative").
			WithHintf("Commitment %s has amount %d", c.ID, c.AmountCents).
			WithReportableDetails(map[string]any{
				"commitment_id": c.ID,
				"amount_cents":  c.AmountCents,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
