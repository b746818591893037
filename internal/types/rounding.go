package types

import "github.com/shopspring/decimal"

const (
	// MinorUnitPrecision is the number of decimals kept for amounts held in minor units (cents)
	MinorUnitPrecision int32 = 0
	// UnitPrecision is the number of decimals kept for aggregated usage units
	UnitPrecision int32 = 5
)

// RoundMinorUnits rounds an amount in minor units to a whole number, half away from zero.
func RoundMinorUnits(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MinorUnitPrecision)
}

// RoundUnits rounds aggregated usage units to UnitPrecision decimals, half away from zero.
func RoundUnits(units decimal.Decimal) decimal.Decimal {
	return units.Round(UnitPrecision)
}
