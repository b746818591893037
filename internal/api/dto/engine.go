package dto

import (
	"github.com/flexprice/billingcore/internal/domain/fixedcharge"
	"github.com/flexprice/billingcore/internal/domain/proration"
	"github.com/flexprice/billingcore/internal/types"
	"github.com/flexprice/billingcore/internal/validator"
	"github.com/shopspring/decimal"
)

type CommitmentAmountRequest struct {
	InvoiceSubscriptionID string `json:"invoice_subscription_id" validate:"required"`
}

func (r *CommitmentAmountRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type CommitmentAmountResponse struct {
	SubscriptionID        string                 `json:"subscription_id"`
	InvoiceSubscriptionID string                 `json:"invoice_subscription_id"`
	BillingMode           types.BillingMode      `json:"billing_mode"`
	CommitmentID          string                 `json:"commitment_id,omitempty"`
	AmountCents           int64                  `json:"amount_cents"`
	Currency              string                 `json:"currency,omitempty"`
	Coefficient           *proration.Coefficient `json:"coefficient,omitempty"`
}

type FixedChargeUsageRequest struct {
	FixedChargeID         string `json:"fixed_charge_id" validate:"required"`
	InvoiceSubscriptionID string `json:"invoice_subscription_id" validate:"required"`
}

func (r *FixedChargeUsageRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type FixedChargeUsageResponse struct {
	FixedChargeID        string                 `json:"fixed_charge_id"`
	Code                 string                 `json:"code"`
	SubscriptionID       string                 `json:"subscription_id"`
	Prorated             bool                   `json:"prorated"`
	Boundaries           fixedcharge.Boundaries `json:"boundaries"`
	Aggregation          decimal.Decimal        `json:"aggregation"`
	CurrentUsageUnits    decimal.Decimal        `json:"current_usage_units"`
	FullUnitsNumber      decimal.Decimal        `json:"full_units_number"`
	TotalAggregatedUnits decimal.Decimal        `json:"total_aggregated_units"`
	Count                int                    `json:"count"`
	FullPeriodDays       *int                   `json:"full_period_days,omitempty"`
}

func NewFixedChargeUsageResponse(fc *fixedcharge.FixedCharge, subscriptionID string, boundaries fixedcharge.Boundaries, result *fixedcharge.AggregationResult) *FixedChargeUsageResponse {
	return &FixedChargeUsageResponse{
		FixedChargeID:        fc.ID,
		Code:                 fc.Code,
		SubscriptionID:       subscriptionID,
		Prorated:             fc.Prorated,
		Boundaries:           boundaries,
		Aggregation:          result.Aggregation,
		CurrentUsageUnits:    result.CurrentUsageUnits,
		FullUnitsNumber:      result.FullUnitsNumber,
		TotalAggregatedUnits: result.TotalAggregatedUnits,
		Count:                result.Count,
		FullPeriodDays:       result.FullPeriodDays,
	}
}
