package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// column is one table column. Numeric columns are right-aligned.
type column struct {
	title   string
	numeric bool
}

func textColumn(title string) column    { return column{title: title} }
func numericColumn(title string) column { return column{title: title, numeric: true} }

// textTable collects cells and lays them out with one space between columns.
// Cell widths are measured on screen, so styled cells align too.
type textTable struct {
	columns []column
	rows    [][]string
}

func newTextTable(columns ...column) *textTable {
	return &textTable{columns: columns}
}

// addRow appends a row. Missing trailing cells render empty; extra cells are
// dropped.
func (t *textTable) addRow(cells ...string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

func (t *textTable) lines() []string {
	if len(t.columns) == 0 {
		return nil
	}
	widths := make([]int, len(t.columns))
	header := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = col.title
		widths[i] = lipgloss.Width(col.title)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	out := make([]string, 0, len(t.rows)+1)
	out = append(out, t.renderRow(header, widths))
	for _, row := range t.rows {
		out = append(out, t.renderRow(row, widths))
	}
	return out
}

func (t *textTable) renderRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		gap := strings.Repeat(" ", max(0, widths[i]-lipgloss.Width(cell)))
		if t.columns[i].numeric {
			padded[i] = gap + cell
		} else {
			padded[i] = cell + gap
		}
	}
	return strings.Join(padded, " ")
}

// write prints the table followed by a blank line.
func (t *textTable) write(w io.Writer) error {
	for _, line := range t.lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func percentCell(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}

func scoreCell(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

func countCell(n int) string {
	return fmt.Sprintf("%d", n)
}
