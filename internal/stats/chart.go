package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	defaultChartHeight  = 8
	minChartWidth       = 10
	axisLabelWidth      = 4
	axisSeparator       = " │ "
	terminalWidthBackup = 80
)

var barLevels = []rune(" ▁▂▃▄▅▆▇█")

// ChartWidthFor returns the number of chart columns that fit in totalWidth.
func ChartWidthFor(totalWidth int) int {
	width := totalWidth - axisLabelWidth - len([]rune(axisSeparator))
	if width < minChartWidth {
		return minChartWidth
	}
	return width
}

// ChartScores draws a column chart of 0..100 scores. Each column is one
// session; when there are more sessions than columns the latest ones are kept.
func ChartScores(w io.Writer, title string, scores []float64, totalWidth, height int) error {
	if len(scores) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultChartHeight
	}
	if totalWidth <= 0 {
		totalWidth = terminalWidth()
	}
	width := ChartWidthFor(totalWidth)
	if len(scores) > width {
		scores = scores[len(scores)-width:]
	}

	steps := len(barLevels) - 1
	filled := make([]int, len(scores))
	for i, v := range scores {
		if math.IsNaN(v) {
			v = 0
		}
		v = math.Max(0, math.Min(100, v))
		filled[i] = int(math.Round(v / 100 * float64(height*steps)))
	}

	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for row := height - 1; row >= 0; row-- {
		var b strings.Builder
		b.WriteString(axisLabel(row, height))
		b.WriteString(axisSeparator)
		for _, f := range filled {
			level := f - row*steps
			if level < 0 {
				level = 0
			}
			if level > steps {
				level = steps
			}
			b.WriteRune(barLevels[level])
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(b.String(), " ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func axisLabel(row, height int) string {
	switch row {
	case height - 1:
		return " 100"
	case 0:
		return "   0"
	}
	if height > 2 && row == (height-1)/2 {
		return "  50"
	}
	return strings.Repeat(" ", axisLabelWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
