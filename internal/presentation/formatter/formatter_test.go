package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-eddington/internal/core/eddington"
	"github.com/penwyp/go-eddington/internal/core/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	return &Report{
		Unit:        model.UnitMiles,
		GeneratedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		TotalRides:  120,
		Progress: eddington.Progress{
			Current:      42,
			RidesAtNext:  40,
			NeededNext:   3,
			RidesAtNext2: 38,
			NeededNext2:  6,
		},
		Yearly:      map[int]int{2023: 40, 2024: 25},
		HighestYear: 2023,
		HighestE:    40,
		YTD: &YearToDate{
			Year:        2024,
			Rides:       25,
			Total:       decimal.NewFromInt(800),
			Eddington:   25,
			NextE:       26,
			RidesAtNext: 20,
			Needed:      6,
		},
		Stats: eddington.Statistics{
			Count:    120,
			Longest:  decimal.NewFromFloat(112.3),
			Shortest: decimal.NewFromInt(5),
			Average:  decimal.NewFromFloat(24.6),
			Total:    decimal.NewFromInt(2952),
			Median:   decimal.NewFromInt(22),
		},
		Distribution: []eddington.Bucket{
			{Lower: 0, Upper: 10, Count: 30},
			{Lower: 10, Upper: 20, Count: 90},
		},
		Milestones: eddington.Milestones{
			TotalRides:      120,
			Centuries:       4,
			DoubleCenturies: 1,
			Longest:         []decimal.Decimal{decimal.NewFromFloat(112.3)},
		},
		TopRides: []eddington.RideTitle{
			{Name: "Coast Century", Distance: decimal.NewFromFloat(112.3)},
		},
		Monthly: map[string]eddington.MonthlyStat{
			"2024-04": {Rides: 10, Total: decimal.NewFromInt(250)},
			"2024-05": {Rides: 15, Total: decimal.NewFromInt(550)},
		},
	}
}

func formatText(t *testing.T, section Section, report *Report) string {
	t.Helper()
	var buf bytes.Buffer
	f := NewTextFormatter(section)
	f.SetWriter(&buf)
	require.NoError(t, f.Format(report))
	return buf.String()
}

func TestTextFormatterSummary(t *testing.T) {
	out := formatText(t, SectionSummary, sampleReport())

	assert.Contains(t, out, "=== CYCLING STATISTICS (distances in miles) ===")
	assert.Contains(t, out, "Total rides analyzed: 120")
	assert.Contains(t, out, "=== OVERALL EDDINGTON PROGRESS ===")
	assert.Contains(t, out, "Current overall Eddington: 42")
	assert.Contains(t, out, "Need 3 more rides of 43+ miles for E=43")
	assert.Contains(t, out, "=== EDDINGTON YEAR TO DATE (2024) ===")
	assert.Contains(t, out, "=== YEARLY EDDINGTON NUMBERS ===")
	assert.Contains(t, out, "=== RIDE METRICS ===")
	assert.Contains(t, out, "=== RIDE DISTRIBUTION ===")
	assert.Contains(t, out, "=== MILESTONE ACHIEVEMENTS ===")
	assert.Contains(t, out, "=== TOP 5 LONGEST RIDES ===")
	assert.Contains(t, out, "=== MONTHLY STATISTICS ===")
}

func TestTextFormatterSectionFilter(t *testing.T) {
	out := formatText(t, SectionEddington, sampleReport())

	assert.Contains(t, out, "=== OVERALL EDDINGTON PROGRESS ===")
	assert.NotContains(t, out, "=== YEARLY EDDINGTON NUMBERS ===")
	assert.NotContains(t, out, "Total rides analyzed")
}

func TestTextFormatterYearlyMarksHighest(t *testing.T) {
	out := formatText(t, SectionYearly, sampleReport())

	assert.Contains(t, out, "2023: 40 *Highest*")
	assert.Contains(t, out, "2024: 25\n")

	// Years render newest first.
	assert.Less(t, strings.Index(out, "2024:"), strings.Index(out, "2023:"))
}

func TestTextFormatterYTDOmittedWhenAbsent(t *testing.T) {
	report := sampleReport()
	report.YTD = nil

	out := formatText(t, SectionYTD, report)
	assert.NotContains(t, out, "EDDINGTON YEAR TO DATE")
}

func TestTextFormatterMonthlyNewestFirst(t *testing.T) {
	out := formatText(t, SectionMonthly, sampleReport())

	assert.Contains(t, out, "2024-05: 15 rides")
	assert.Less(t, strings.Index(out, "2024-05"), strings.Index(out, "2024-04"))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter()
	f.SetWriter(&buf)
	require.NoError(t, f.Format(sampleReport()))

	var decoded map[string]interface{}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "miles", decoded["unit"])
	assert.Equal(t, float64(120), decoded["totalRides"])

	progress, ok := decoded["progress"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(42), progress["current"])
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewCSVFormatter()
	f.SetWriter(&buf)
	require.NoError(t, f.Format(sampleReport()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "Year,Eddington", lines[0])
	assert.Equal(t, "2024,25", lines[1])
	assert.Equal(t, "2023,40", lines[2])
	assert.Contains(t, lines, "Month,Rides,Distance (miles)")
	assert.Contains(t, lines, "2024-05,15,550.0")
}

func TestCreate(t *testing.T) {
	f, err := Create("text", SectionSummary)
	require.NoError(t, err)
	assert.IsType(t, &TextFormatter{}, f)

	f, err = Create("", SectionSummary)
	require.NoError(t, err)
	assert.IsType(t, &TextFormatter{}, f)

	f, err = Create("json", "")
	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, f)

	f, err = Create("csv", "")
	require.NoError(t, err)
	assert.IsType(t, &CSVFormatter{}, f)

	_, err = Create("yaml", "")
	assert.Error(t, err)
}
