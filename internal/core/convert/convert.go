// Package convert turns raw meter distances into display-unit decimals.
// Distances are kept as fixed-precision decimals end to end because the
// Eddington comparison is a >= threshold; binary floats can misclassify a
// ride sitting exactly on the boundary.
package convert

import (
	"github.com/penwyp/go-eddington/internal/core/model"
	"github.com/shopspring/decimal"
)

var (
	metersToMiles      = decimal.RequireFromString("0.000621371192237334")
	metersToKilometers = decimal.RequireFromString("0.001")
)

// Factor returns the meters-to-unit conversion factor.
func Factor(unit model.Unit) decimal.Decimal {
	if unit == model.UnitKilometers {
		return metersToKilometers
	}
	return metersToMiles
}

// Distance converts a raw meter distance to the display unit.
func Distance(meters float64, unit model.Unit) decimal.Decimal {
	return decimal.NewFromFloat(meters).Mul(Factor(unit))
}

// Series converts all trip distances, preserving trip order.
func Series(trips []model.Trip, unit model.Unit) []decimal.Decimal {
	factor := Factor(unit)
	out := make([]decimal.Decimal, 0, len(trips))
	for _, t := range trips {
		out = append(out, decimal.NewFromFloat(t.Distance).Mul(factor))
	}
	return out
}
