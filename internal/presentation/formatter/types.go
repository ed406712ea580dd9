package formatter

import (
	"fmt"
	"time"

	"github.com/penwyp/go-eddington/internal/core/eddington"
	"github.com/penwyp/go-eddington/internal/core/model"
	"github.com/shopspring/decimal"
)

// Section selects which part of the report a formatter renders.
type Section string

const (
	SectionSummary      Section = "summary"
	SectionEddington    Section = "eddington"
	SectionYTD          Section = "ytd"
	SectionYearly       Section = "yearly"
	SectionMetrics      Section = "metrics"
	SectionDistribution Section = "distribution"
	SectionMilestones   Section = "milestones"
	SectionLongest      Section = "longest"
	SectionMonthly      Section = "monthly"
)

// YearToDate summarizes the current calendar year.
type YearToDate struct {
	Year        int             `json:"year"`
	Rides       int             `json:"rides"`
	Total       decimal.Decimal `json:"total"`
	Eddington   int             `json:"eddington"`
	NextE       int             `json:"nextE"`
	RidesAtNext int             `json:"ridesAtNext"`
	Needed      int             `json:"needed"`
}

// Report is the full aggregation result handed to formatters.
type Report struct {
	Unit         model.Unit                       `json:"unit"`
	GeneratedAt  time.Time                        `json:"generatedAt"`
	TotalRides   int                              `json:"totalRides"`
	Progress     eddington.Progress               `json:"progress"`
	Yearly       map[int]int                      `json:"yearly"`
	HighestYear  int                              `json:"highestYear"`
	HighestE     int                              `json:"highestE"`
	YTD          *YearToDate                      `json:"ytd,omitempty"`
	Stats        eddington.Statistics             `json:"stats"`
	Distribution []eddington.Bucket               `json:"distribution"`
	Milestones   eddington.Milestones             `json:"milestones"`
	TopRides     []eddington.RideTitle            `json:"topRides"`
	Monthly      map[string]eddington.MonthlyStat `json:"monthly"`
}

// Formatter renders a report in one output format.
type Formatter interface {
	Format(report *Report) error
}

// Create returns the formatter for an output format name.
func Create(format string, section Section) (Formatter, error) {
	switch format {
	case "text", "":
		return NewTextFormatter(section), nil
	case "json":
		return NewJSONFormatter(), nil
	case "csv":
		return NewCSVFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
