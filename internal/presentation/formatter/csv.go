package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
)

// CSVFormatter exports the yearly and monthly tables for spreadsheets.
type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{w: os.Stdout}
}

// SetWriter redirects output, used by tests.
func (f *CSVFormatter) SetWriter(w io.Writer) {
	f.w = w
}

func (f *CSVFormatter) Format(report *Report) error {
	w := csv.NewWriter(f.w)
	defer w.Flush()

	if err := w.Write([]string{"Year", "Eddington"}); err != nil {
		return err
	}
	years := make([]int, 0, len(report.Yearly))
	for year := range report.Yearly {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	for _, year := range years {
		record := []string{
			fmt.Sprintf("%d", year),
			fmt.Sprintf("%d", report.Yearly[year]),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	if err := w.Write([]string{}); err != nil {
		return err
	}

	if err := w.Write([]string{"Month", "Rides", fmt.Sprintf("Distance (%s)", report.Unit)}); err != nil {
		return err
	}
	months := make([]string, 0, len(report.Monthly))
	for month := range report.Monthly {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	for _, month := range months {
		stat := report.Monthly[month]
		record := []string{
			month,
			fmt.Sprintf("%d", stat.Rides),
			stat.Total.StringFixed(1),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return w.Error()
}
