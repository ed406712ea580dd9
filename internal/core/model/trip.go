package model

import (
	"strings"
	"time"
)

// Trip represents a single ride as reported by the RWGPS API.
// Distance is always meters at rest; conversion happens only at read time.
type Trip struct {
	ID            int64   `json:"id"`
	Distance      float64 `json:"distance"`
	Name          string  `json:"name,omitempty"`
	DepartedAt    string  `json:"departed_at,omitempty"`
	StartDate     string  `json:"start_date,omitempty"`
	ScheduledDate string  `json:"scheduled_date,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

// dateLayouts are tried in order when parsing a trip timestamp. The API
// reports ISO 8601 with or without a zone suffix depending on endpoint
// version; the suffix is stripped before parsing.
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// TimeResult is the outcome of timestamp extraction. Parsed is false when
// none of the candidate fields held a parseable value, which callers treat
// as "skip this trip for date-keyed aggregation", never as an error.
type TimeResult struct {
	Time   time.Time
	Field  string
	Parsed bool
}

// When extracts the authoritative timestamp of the trip. Candidate fields
// are tried in priority order: departed_at, start_date, scheduled_date,
// created_at. The first non-empty, parseable field wins.
func (t *Trip) When() TimeResult {
	candidates := []struct {
		field string
		value string
	}{
		{"departed_at", t.DepartedAt},
		{"start_date", t.StartDate},
		{"scheduled_date", t.ScheduledDate},
		{"created_at", t.CreatedAt},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if ts, ok := parseTimestamp(c.value); ok {
			return TimeResult{Time: ts, Field: c.field, Parsed: true}
		}
	}
	return TimeResult{}
}

// Year returns the year the trip is attributed to, following the same
// field-priority rule as When.
func (t *Trip) Year() (int, bool) {
	res := t.When()
	if !res.Parsed {
		return 0, false
	}
	return res.Time.Year(), true
}

func parseTimestamp(value string) (time.Time, bool) {
	// Strip zone offset or Z suffix; year/month attribution uses the
	// local wall clock the source reported, not a normalized instant.
	if idx := strings.IndexAny(value, "+Z"); idx >= 0 {
		value = value[:idx]
	}
	value = strings.TrimSpace(value)

	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// MaxID returns the highest trip id in the collection, or 0 when empty.
func MaxID(trips []Trip) int64 {
	var max int64
	for _, t := range trips {
		if t.ID > max {
			max = t.ID
		}
	}
	return max
}
