package eddington

import (
	"time"

	"github.com/penwyp/go-eddington/internal/core/convert"
	"github.com/penwyp/go-eddington/internal/core/model"
	"github.com/shopspring/decimal"
)

// Yearly computes an independent Eddington number per year. Year
// attribution follows the trip's authoritative timestamp; trips with no
// parseable timestamp across all candidate fields are silently excluded.
// Years in the future relative to now are ignored.
func Yearly(trips []model.Trip, unit model.Unit) map[int]int {
	return yearlyAt(trips, unit, time.Now())
}

func yearlyAt(trips []model.Trip, unit model.Unit, now time.Time) map[int]int {
	factor := convert.Factor(unit)
	buckets := make(map[int][]decimal.Decimal)
	currentYear := now.Year()

	for _, t := range trips {
		year, ok := t.Year()
		if !ok || year > currentYear {
			continue
		}
		buckets[year] = append(buckets[year], decimal.NewFromFloat(t.Distance).Mul(factor))
	}

	result := make(map[int]int, len(buckets))
	for year, distances := range buckets {
		result[year] = Number(distances)
	}
	return result
}

// HighestYear returns the year with the highest Eddington number and its
// value. Ties go to the most recent year. Returns (0, 0) for an empty map.
func HighestYear(yearly map[int]int) (int, int) {
	bestYear, bestE := 0, 0
	for year, e := range yearly {
		if e > bestE || (e == bestE && year > bestYear) {
			bestYear, bestE = year, e
		}
	}
	return bestYear, bestE
}

// NextYearly computes the next Eddington goal for a single year: the target
// E, how many rides that year already qualify, and how many more are needed.
func NextYearly(trips []model.Trip, year int, unit model.Unit) (nextE, ridesAt, needed int) {
	factor := convert.Factor(unit)
	var distances []decimal.Decimal
	for _, t := range trips {
		y, ok := t.Year()
		if !ok || y != year {
			continue
		}
		distances = append(distances, decimal.NewFromFloat(t.Distance).Mul(factor))
	}

	nextE = Number(distances) + 1
	ridesAt = CountAtLeast(distances, nextE)
	return nextE, ridesAt, nextE - ridesAt
}
