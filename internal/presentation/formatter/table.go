package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// table renders a simple bordered text table. Column widths follow display
// width, not byte length, so ride titles with wide runes stay aligned.
type table struct {
	w       io.Writer
	headers []string
	rows    [][]string
}

func newTable(w io.Writer, headers ...string) *table {
	return &table{w: w, headers: headers}
}

func (t *table) addRow(values ...string) {
	t.rows = append(t.rows, values)
}

func (t *table) render() {
	widths := t.columnWidths()

	t.printRow(t.headers, widths)
	t.printSeparator(widths)
	for _, row := range t.rows {
		t.printRow(row, widths)
	}
}

func (t *table) columnWidths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := runewidth.StringWidth(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	return widths
}

func (t *table) printRow(values []string, widths []int) {
	cells := make([]string, len(values))
	for i, v := range values {
		pad := widths[i] - runewidth.StringWidth(v)
		if pad < 0 {
			pad = 0
		}
		cells[i] = v + strings.Repeat(" ", pad)
	}
	fmt.Fprintf(t.w, "%s\n", strings.Join(cells, " | "))
}

func (t *table) printSeparator(widths []int) {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	fmt.Fprintf(t.w, "%s\n", strings.Join(parts, "-|-"))
}
