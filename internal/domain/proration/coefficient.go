package proration

import (
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/types"
	"github.com/shopspring/decimal"
)

// Coefficient is the share of a billing period a subscription was billable for.
// Only NewCoefficient builds a usable value, the zero value has no period.
type Coefficient struct {
	ElapsedDays int `json:"elapsed_days"`
	TotalDays   int `json:"total_days"`
}

// NewCoefficient checks that elapsed lies within a period of total days
func NewCoefficient(elapsed, total int) (Coefficient, error) {
	if total <= 0 {
		return Coefficient{}, ierr.WithError(ErrDegeneratePeriod).
			WithHintf("Billing period spans %d days", total).
			WithReportableDetails(map[string]any{
				"total_days":   total,
				"elapsed_days": elapsed,
			}).
			Mark(ierr.ErrValidation)
	}

	if elapsed < 0 || elapsed > total {
		return Coefficient{}, ierr.WithError(ErrElapsedOutOfRange).
			WithHintf("Elapsed %d days in a %d day billing period", elapsed, total).
			WithReportableDetails(map[string]any{
				"total_days":   total,
				"elapsed_days": elapsed,
			}).
			Mark(ierr.ErrDataIntegrity)
	}

	return Coefficient{ElapsedDays: elapsed, TotalDays: total}, nil
}

// Decimal returns elapsed / total
func (c Coefficient) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(c.ElapsedDays)).Div(decimal.NewFromInt(int64(c.TotalDays)))
}

// IsFull reports whether the whole period elapsed
func (c Coefficient) IsFull() bool {
	return c.TotalDays > 0 && c.ElapsedDays == c.TotalDays
}

// ApplyMinorUnits prorates an amount in minor units.
// The product is taken before dividing so the ratio is never rounded on its own.
func (c Coefficient) ApplyMinorUnits(amountCents int64) int64 {
	prorated := decimal.NewFromInt(amountCents).
		Mul(decimal.NewFromInt(int64(c.ElapsedDays))).
		Div(decimal.NewFromInt(int64(c.TotalDays)))
	return types.RoundMinorUnits(prorated).IntPart()
}
