// Package fixtures generates trip data for tests.
package fixtures

import (
	"fmt"

	"github.com/penwyp/go-eddington/internal/core/model"
)

// Trip builds a single trip with a created_at timestamp.
func Trip(id int64, meters float64, createdAt string) model.Trip {
	return model.Trip{
		ID:        id,
		Distance:  meters,
		Name:      fmt.Sprintf("Ride %d", id),
		CreatedAt: createdAt,
	}
}

// Sequential builds count trips with ids startID, startID+1, ... sharing
// the same distance and timestamp.
func Sequential(startID int64, count int, meters float64, createdAt string) []model.Trip {
	trips := make([]model.Trip, 0, count)
	for i := 0; i < count; i++ {
		trips = append(trips, Trip(startID+int64(i), meters, createdAt))
	}
	return trips
}

// Miles converts a display-unit mile figure to the raw meter distance the
// remote source would report, within a margin safely above the threshold.
func Miles(miles float64) float64 {
	return miles / 0.000621371192237334
}

// Kilometers converts kilometers to meters.
func Kilometers(km float64) float64 {
	return km * 1000
}
