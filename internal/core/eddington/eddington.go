// Package eddington computes the Eddington number and derived ride
// statistics. Every function is pure and safe to call repeatedly with
// partial data; empty input always yields a zero-valued result.
package eddington

import (
	"github.com/shopspring/decimal"
)

// Number returns the Eddington number E: the largest integer such that at
// least E rides of distance >= E exist.
//
// Implementation: histogram of integer-floored distances followed by a
// suffix sum, O(N + max(distance)). For integer k, distance >= k holds
// exactly when floor(distance) >= k, so the suffix sum over the histogram
// gives the count of qualifying rides at every threshold.
func Number(distances []decimal.Decimal) int {
	if len(distances) == 0 {
		return 0
	}

	maxFloor := 0
	floors := make([]int, 0, len(distances))
	for _, d := range distances {
		f := int(d.IntPart())
		if f < 0 {
			f = 0
		}
		floors = append(floors, f)
		if f > maxFloor {
			maxFloor = f
		}
	}
	if maxFloor == 0 {
		return 0
	}

	hist := make([]int, maxFloor+2)
	for _, f := range floors {
		if f >= 1 {
			hist[f]++
		}
	}

	// countAtLeast[k] = rides with distance >= k
	countAtLeast := make([]int, maxFloor+2)
	for k := maxFloor; k >= 1; k-- {
		countAtLeast[k] = countAtLeast[k+1] + hist[k]
	}

	e := 0
	for k := 1; k <= maxFloor; k++ {
		if countAtLeast[k] >= k {
			e = k
		}
	}
	return e
}

// Progress describes the next two Eddington targets. The needed counts
// are always at least one: if enough qualifying rides existed, E itself
// would already be higher.
type Progress struct {
	Current      int `json:"current"`
	RidesAtNext  int `json:"ridesAtNext"`
	NeededNext   int `json:"neededNext"`
	RidesAtNext2 int `json:"ridesAtNext2"`
	NeededNext2  int `json:"neededNext2"`
}

// ComputeProgress returns the current E and progress toward the next two.
func ComputeProgress(distances []decimal.Decimal) Progress {
	current := Number(distances)
	next := current + 1
	next2 := next + 1

	ridesAtNext := CountAtLeast(distances, next)
	ridesAtNext2 := CountAtLeast(distances, next2)

	return Progress{
		Current:      current,
		RidesAtNext:  ridesAtNext,
		NeededNext:   next - ridesAtNext,
		RidesAtNext2: ridesAtNext2,
		NeededNext2:  next2 - ridesAtNext2,
	}
}

// CountAtLeast returns the number of rides with distance >= threshold.
func CountAtLeast(distances []decimal.Decimal, threshold int) int {
	limit := decimal.NewFromInt(int64(threshold))
	count := 0
	for _, d := range distances {
		if d.GreaterThanOrEqual(limit) {
			count++
		}
	}
	return count
}
