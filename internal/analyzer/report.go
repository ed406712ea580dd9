package analyzer

import (
	"time"

	"github.com/penwyp/go-eddington/internal/core/constants"
	"github.com/penwyp/go-eddington/internal/core/convert"
	"github.com/penwyp/go-eddington/internal/core/eddington"
	"github.com/penwyp/go-eddington/internal/core/model"
	"github.com/penwyp/go-eddington/internal/presentation/formatter"
)

// BuildReport runs every engine computation over the synchronized trip set.
// Results are recomputed from scratch on every invocation, never cached.
func BuildReport(trips []model.Trip, unit model.Unit) *formatter.Report {
	distances := convert.Series(trips, unit)
	yearly := eddington.Yearly(trips, unit)
	highestYear, highestE := eddington.HighestYear(yearly)

	report := &formatter.Report{
		Unit:         unit,
		GeneratedAt:  time.Now(),
		TotalRides:   len(distances),
		Progress:     eddington.ComputeProgress(distances),
		Yearly:       yearly,
		HighestYear:  highestYear,
		HighestE:     highestE,
		Stats:        eddington.ComputeStatistics(distances),
		Distribution: eddington.ComputeDistribution(distances, constants.DistributionBucketWidth),
		Milestones:   eddington.ComputeMilestones(distances, unit),
		TopRides:     eddington.TopRides(trips, unit, constants.TopRideCount),
		Monthly:      eddington.ComputeMonthly(trips, unit),
	}

	report.YTD = buildYTD(trips, yearly, unit, time.Now().Year())
	return report
}

// buildYTD summarizes the current calendar year, or nil when it has no
// attributable rides.
func buildYTD(trips []model.Trip, yearly map[int]int, unit model.Unit, year int) *formatter.YearToDate {
	e, ok := yearly[year]
	if !ok {
		return nil
	}

	var ytdTrips []model.Trip
	for _, t := range trips {
		if y, parsed := t.Year(); parsed && y == year {
			ytdTrips = append(ytdTrips, t)
		}
	}

	stats := eddington.ComputeStatistics(convert.Series(ytdTrips, unit))
	nextE, ridesAt, needed := eddington.NextYearly(trips, year, unit)

	return &formatter.YearToDate{
		Year:        year,
		Rides:       len(ytdTrips),
		Total:       stats.Total,
		Eddington:   e,
		NextE:       nextE,
		RidesAtNext: ridesAt,
		Needed:      needed,
	}
}
