package formatter

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/penwyp/go-eddington/internal/core/constants"
	"github.com/penwyp/go-eddington/internal/util"
)

// TextFormatter renders report sections as plain text, mirroring the
// layout of the interactive summary.
type TextFormatter struct {
	section Section
	w       io.Writer
}

func NewTextFormatter(section Section) *TextFormatter {
	if section == "" {
		section = SectionSummary
	}
	return &TextFormatter{section: section, w: os.Stdout}
}

// SetWriter redirects output, used by tests.
func (f *TextFormatter) SetWriter(w io.Writer) {
	f.w = w
}

func (f *TextFormatter) Format(report *Report) error {
	fmt.Fprintf(f.w, "=== CYCLING STATISTICS (distances in %s) ===\n", report.Unit)

	all := f.section == SectionSummary
	if all {
		fmt.Fprintf(f.w, "Total rides analyzed: %s\n", util.FormatCount(report.TotalRides))
	}

	if all || f.section == SectionEddington {
		f.writeEddington(report)
	}
	if all || f.section == SectionYTD {
		f.writeYTD(report)
	}
	if all || f.section == SectionYearly {
		f.writeYearly(report)
	}
	if all || f.section == SectionMetrics {
		f.writeMetrics(report)
	}
	if all || f.section == SectionDistribution {
		f.writeDistribution(report)
	}
	if all || f.section == SectionMilestones {
		f.writeMilestones(report)
	}
	if all || f.section == SectionLongest {
		f.writeLongest(report)
	}
	if all || f.section == SectionMonthly {
		f.writeMonthly(report)
	}
	return nil
}

func (f *TextFormatter) writeEddington(r *Report) {
	p := r.Progress
	next, next2 := p.Current+1, p.Current+2
	fmt.Fprintf(f.w, "\n=== OVERALL EDDINGTON PROGRESS ===\n")
	fmt.Fprintf(f.w, "Current overall Eddington: %d\n", p.Current)
	fmt.Fprintf(f.w, "In progress: E=%d (%d rides of %d+ %s)\n", next, p.RidesAtNext, next, r.Unit)
	fmt.Fprintf(f.w, "Need %d more rides of %d+ %s for E=%d\n", p.NeededNext, next, r.Unit, next)
	fmt.Fprintf(f.w, "Next goal after that: E=%d (%d rides of %d+ %s)\n", next2, p.RidesAtNext2, next2, r.Unit)
	fmt.Fprintf(f.w, "Will need %d more rides of %d+ %s for E=%d\n", p.NeededNext2, next2, r.Unit, next2)
}

func (f *TextFormatter) writeYTD(r *Report) {
	if r.YTD == nil {
		return
	}
	y := r.YTD
	fmt.Fprintf(f.w, "\n=== EDDINGTON YEAR TO DATE (%d) ===\n", y.Year)
	fmt.Fprintf(f.w, "Rides this year: %d\n", y.Rides)
	fmt.Fprintf(f.w, "Distance this year: %s %s\n", util.FormatDistanceGrouped(y.Total), r.Unit)
	fmt.Fprintf(f.w, "Current year Eddington: %d\n", y.Eddington)
	fmt.Fprintf(f.w, "In progress: E=%d (%d rides of %d+ %s)\n", y.NextE, y.RidesAtNext, y.NextE, r.Unit)
	fmt.Fprintf(f.w, "Need %d more rides of %d+ %s for E=%d\n", y.Needed, y.NextE, r.Unit, y.NextE)
}

func (f *TextFormatter) writeYearly(r *Report) {
	fmt.Fprintf(f.w, "\n=== YEARLY EDDINGTON NUMBERS ===\n")

	years := make([]int, 0, len(r.Yearly))
	for year := range r.Yearly {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	for _, year := range years {
		if year == r.HighestYear {
			fmt.Fprintf(f.w, "%d: %d *Highest*\n", year, r.Yearly[year])
		} else {
			fmt.Fprintf(f.w, "%d: %d\n", year, r.Yearly[year])
		}
	}
}

func (f *TextFormatter) writeMetrics(r *Report) {
	fmt.Fprintf(f.w, "\n=== RIDE METRICS ===\n")
	fmt.Fprintf(f.w, "Longest ride: %s %s\n", util.FormatDistance(r.Stats.Longest), r.Unit)
	fmt.Fprintf(f.w, "Average ride: %s %s\n", util.FormatDistance(r.Stats.Average), r.Unit)
	fmt.Fprintf(f.w, "Total distance: %s %s\n", util.FormatDistanceGrouped(r.Stats.Total), r.Unit)
}

func (f *TextFormatter) writeDistribution(r *Report) {
	fmt.Fprintf(f.w, "\n=== RIDE DISTRIBUTION ===\n")
	if len(r.Distribution) == 0 {
		return
	}

	table := newTable(f.w, "Range", "Count", "Percentage")
	for _, b := range r.Distribution {
		pct := float64(b.Count) / float64(r.TotalRides) * 100
		table.addRow(
			fmt.Sprintf("%d-%d %s", b.Lower, b.Upper, r.Unit),
			util.FormatCount(b.Count),
			fmt.Sprintf("%.2f%%", pct),
		)
	}
	table.render()
}

func (f *TextFormatter) writeMilestones(r *Report) {
	m := r.Milestones
	fmt.Fprintf(f.w, "\n=== MILESTONE ACHIEVEMENTS ===\n")
	fmt.Fprintf(f.w, "Century rides (100+ %s): %d\n", r.Unit, m.Centuries)
	fmt.Fprintf(f.w, "Double centuries (200+ %s): %d\n", r.Unit, m.DoubleCenturies)
	fmt.Fprintf(f.w, "Triple centuries (300+ %s): %d\n", r.Unit, m.TripleCenturies)
	fmt.Fprintf(f.w, "Quad centuries (400+ %s): %d\n", r.Unit, m.QuadCenturies)
}

func (f *TextFormatter) writeLongest(r *Report) {
	fmt.Fprintf(f.w, "\n=== TOP %d LONGEST RIDES ===\n", constants.TopRideCount)
	for i, ride := range r.TopRides {
		fmt.Fprintf(f.w, "%d. %s %s - %s\n", i+1, util.FormatDistance(ride.Distance), r.Unit, ride.Name)
	}
}

func (f *TextFormatter) writeMonthly(r *Report) {
	fmt.Fprintf(f.w, "\n=== MONTHLY STATISTICS ===\n")

	months := make([]string, 0, len(r.Monthly))
	for month := range r.Monthly {
		months = append(months, month)
	}
	// Keys are zero-padded YYYY-MM, so lexical order is chronological.
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	if len(months) > constants.MonthlyReportMonths {
		months = months[:constants.MonthlyReportMonths]
	}

	for _, month := range months {
		stat := r.Monthly[month]
		fmt.Fprintf(f.w, "%s: %d rides, %s %s\n", month, stat.Rides,
			util.FormatDistanceGrouped(stat.Total), r.Unit)
	}
}
