package fixedcharge

import (
	"time"

	"github.com/flexprice/billingcore/internal/types"
	"github.com/shopspring/decimal"
)

// FixedCharge is a plan charge billed on a declared number of units, ex seats
type FixedCharge struct {
	ID     string `db:"id" json:"id"`
	PlanID string `db:"plan_id" json:"plan_id"`

	// Code identifies the charge on usage events
	Code string `db:"code" json:"code"`

	// Prorated weights each declared unit count by the days it was in effect
	Prorated bool `db:"prorated" json:"prorated"`

	types.BaseModel
}

// Event records the units of a fixed charge in effect from Timestamp onwards.
// Events are append only.
type Event struct {
	ID             string                 `json:"id" ch:"id"`
	TenantID       string                 `json:"tenant_id" ch:"tenant_id"`
	SubscriptionID string                 `json:"subscription_id" ch:"subscription_id"`
	Code           string                 `json:"code" ch:"code"`
	Timestamp      time.Time              `json:"timestamp" ch:"timestamp"`
	Units          decimal.Decimal        `json:"units" ch:"units"`
	Properties     map[string]interface{} `json:"properties" ch:"properties"`
}

// Boundaries is the window a fixed charge is aggregated over
type Boundaries struct {
	FromDatetime time.Time `json:"from_datetime"`
	ToDatetime   time.Time `json:"to_datetime"`

	// ChargesDurationDays is the length of the full billing period in days
	ChargesDurationDays int `json:"charges_duration_days"`
}

// AggregationResult is the outcome of aggregating one fixed charge over one window
type AggregationResult struct {
	// Aggregation is the billable number of units
	Aggregation decimal.Decimal `json:"aggregation"`

	// CurrentUsageUnits, FullUnitsNumber and TotalAggregatedUnits hold the latest declared units
	CurrentUsageUnits    decimal.Decimal `json:"current_usage_units"`
	FullUnitsNumber      decimal.Decimal `json:"full_units_number"`
	TotalAggregatedUnits decimal.Decimal `json:"total_aggregated_units"`

	Count int `json:"count"`

	// FullPeriodDays is set for prorated charges only
	FullPeriodDays *int `json:"full_period_days,omitempty"`
}
