package eddington

import (
	"fmt"
	"sort"

	"github.com/penwyp/go-eddington/internal/core/convert"
	"github.com/penwyp/go-eddington/internal/core/model"
	"github.com/shopspring/decimal"
)

// Statistics holds the trivial reductions over a distance series. All
// fields are zero-valued for an empty series.
type Statistics struct {
	Count    int             `json:"count"`
	Longest  decimal.Decimal `json:"longest"`
	Shortest decimal.Decimal `json:"shortest"`
	Average  decimal.Decimal `json:"average"`
	Total    decimal.Decimal `json:"total"`
	Median   decimal.Decimal `json:"median"`
}

// ComputeStatistics reduces a distance series to summary values.
func ComputeStatistics(distances []decimal.Decimal) Statistics {
	if len(distances) == 0 {
		return Statistics{}
	}

	sorted := make([]decimal.Decimal, len(distances))
	copy(sorted, distances)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})

	total := decimal.Zero
	for _, d := range distances {
		total = total.Add(d)
	}

	return Statistics{
		Count:    len(distances),
		Longest:  sorted[len(sorted)-1],
		Shortest: sorted[0],
		Average:  total.Div(decimal.NewFromInt(int64(len(distances)))),
		Total:    total,
		Median:   sorted[len(sorted)/2],
	}
}

// Milestones counts rides at fixed distance thresholds plus the five
// longest distances (stable original order on ties).
type Milestones struct {
	TotalRides      int               `json:"totalRides"`
	Centuries       int               `json:"centuries"`
	DoubleCenturies int               `json:"doubleCenturies"`
	TripleCenturies int               `json:"tripleCenturies"`
	QuadCenturies   int               `json:"quadCenturies"`
	Longest         []decimal.Decimal `json:"longest"`
}

// milestone thresholds per unit; the km values follow randonneuring
// convention (~100/200/300/400 miles), not exact conversions.
func milestoneThresholds(unit model.Unit) [4]int {
	if unit == model.UnitKilometers {
		return [4]int{160, 320, 480, 640}
	}
	return [4]int{100, 200, 300, 400}
}

// ComputeMilestones counts rides at the unit-scaled century thresholds.
func ComputeMilestones(distances []decimal.Decimal, unit model.Unit) Milestones {
	if len(distances) == 0 {
		return Milestones{}
	}

	thresholds := milestoneThresholds(unit)

	longest := make([]decimal.Decimal, len(distances))
	copy(longest, distances)
	sort.SliceStable(longest, func(i, j int) bool {
		return longest[i].GreaterThan(longest[j])
	})
	if len(longest) > 5 {
		longest = longest[:5]
	}

	return Milestones{
		TotalRides:      len(distances),
		Centuries:       CountAtLeast(distances, thresholds[0]),
		DoubleCenturies: CountAtLeast(distances, thresholds[1]),
		TripleCenturies: CountAtLeast(distances, thresholds[2]),
		QuadCenturies:   CountAtLeast(distances, thresholds[3]),
		Longest:         longest,
	}
}

// Bucket is a half-open [Lower, Upper) distance range with a ride count.
type Bucket struct {
	Lower int `json:"lower"`
	Upper int `json:"upper"`
	Count int `json:"count"`
}

// ComputeDistribution groups rides into fixed-width distance buckets from 0
// up past the maximum distance. Empty buckets are omitted from the result
// but do not stop the range scan.
func ComputeDistribution(distances []decimal.Decimal, bucketWidth int) []Bucket {
	if len(distances) == 0 || bucketWidth <= 0 {
		return nil
	}

	max := distances[0]
	for _, d := range distances[1:] {
		if d.GreaterThan(max) {
			max = d
		}
	}
	limit := int(max.Ceil().IntPart()) + bucketWidth

	var buckets []Bucket
	for lower := 0; lower < limit; lower += bucketWidth {
		upper := lower + bucketWidth
		lo := decimal.NewFromInt(int64(lower))
		hi := decimal.NewFromInt(int64(upper))
		count := 0
		for _, d := range distances {
			if d.GreaterThanOrEqual(lo) && d.LessThan(hi) {
				count++
			}
		}
		if count > 0 {
			buckets = append(buckets, Bucket{Lower: lower, Upper: upper, Count: count})
		}
	}
	return buckets
}

// MonthlyStat aggregates ride count and total distance for one month.
type MonthlyStat struct {
	Rides int             `json:"rides"`
	Total decimal.Decimal `json:"total"`
}

// ComputeMonthly totals rides per YYYY-MM month key. Trips without a
// parseable timestamp are skipped; duplicate ids are counted once.
func ComputeMonthly(trips []model.Trip, unit model.Unit) map[string]MonthlyStat {
	factor := convert.Factor(unit)
	result := make(map[string]MonthlyStat)
	seen := make(map[int64]bool)

	for _, t := range trips {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true

		when := t.When()
		if !when.Parsed {
			continue
		}
		key := fmt.Sprintf("%04d-%02d", when.Time.Year(), int(when.Time.Month()))

		stat := result[key]
		stat.Rides++
		stat.Total = stat.Total.Add(decimal.NewFromFloat(t.Distance).Mul(factor))
		result[key] = stat
	}
	return result
}

// RideTitle pairs a converted distance with the ride's display title.
type RideTitle struct {
	Distance decimal.Decimal `json:"distance"`
	Name     string          `json:"name"`
}

// TopRides returns the n longest named rides, distance descending. Trips
// without a title are skipped.
func TopRides(trips []model.Trip, unit model.Unit, n int) []RideTitle {
	factor := convert.Factor(unit)
	var titled []RideTitle
	for _, t := range trips {
		if t.Name == "" {
			continue
		}
		titled = append(titled, RideTitle{
			Distance: decimal.NewFromFloat(t.Distance).Mul(factor),
			Name:     t.Name,
		})
	}

	sort.SliceStable(titled, func(i, j int) bool {
		return titled[i].Distance.GreaterThan(titled[j].Distance)
	})
	if len(titled) > n {
		titled = titled[:n]
	}
	return titled
}

// Verify reports how many rides meet a claimed Eddington number, for
// displaying a calculation breakdown.
func Verify(distances []decimal.Decimal, e int) int {
	return CountAtLeast(distances, e)
}
