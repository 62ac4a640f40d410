// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/telaffuz/internal/model"
)

const sparkChars = " .:-=+*#%@"

// SessionAccuracy returns the share of target words pronounced correctly.
func SessionAccuracy(correctWords, targetWords int) float64 {
	if targetWords <= 0 {
		return 0
	}
	return float64(correctWords) / float64(targetWords)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a summary block for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalScore, totalAcc float64
	bestScore := 0.0
	silent := 0
	for _, s := range sessions {
		totalScore += s.OverallScore
		totalAcc += SessionAccuracy(s.CorrectWords, s.TargetWords)
		if s.OverallScore > bestScore {
			bestScore = s.OverallScore
		}
		if s.NoSpeech {
			silent++
		}
	}
	count := float64(len(sessions))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Avg Score: %.1f", totalScore/count*100),
		fmt.Sprintf("Best Score: %.1f", bestScore*100),
		fmt.Sprintf("Avg Word Accuracy: %.2f%%", (totalAcc/count)*100),
		fmt.Sprintf("No Speech: %d", silent),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints the overall score trend, as a percentage, and a chart
// sized to the terminal.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window int) error {
	return RenderCurvesWithSize(w, sessions, window, 0, defaultChartHeight)
}

// RenderCurvesWithSize prints the score trend sized to a given total width.
func RenderCurvesWithSize(w io.Writer, sessions []model.SessionAggregate, window, totalWidth, height int) error {
	if len(sessions) == 0 {
		return nil
	}
	scores := make([]float64, len(sessions))
	for i, s := range sessions {
		scores[i] = s.OverallScore * 100
	}
	smoothed := MovingAverage(scores, window)
	if _, err := fmt.Fprintf(w, "Score Trend (window %d): %s\n", max(window, 1), Sparkline(smoothed)); err != nil {
		return err
	}
	return ChartScores(w, "Score", smoothed, totalWidth, height)
}

type phonemeRow struct {
	vowel     string
	acc       float64
	band      float64
	correct   int
	incorrect int
}

// RenderPhonemeTable prints per-vowel aggregates, weakest first.
func RenderPhonemeTable(w io.Writer, aggs []model.PhonemeAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No vowel stats found.")
		return err
	}
	rows := make([]phonemeRow, 0, len(aggs))
	for _, agg := range aggs {
		rows = append(rows, phonemeRow{
			vowel:     agg.Vowel,
			acc:       accuracy(agg),
			band:      bandScore(agg),
			correct:   agg.Correct,
			incorrect: agg.Incorrect,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].acc == rows[j].acc {
			return rows[i].vowel < rows[j].vowel
		}
		return rows[i].acc < rows[j].acc
	})

	if _, err := fmt.Fprintln(w, "Per-Vowel (Windowed)"); err != nil {
		return err
	}
	table := newTextTable(
		textColumn("Vowel"),
		numericColumn("Word Accuracy"),
		numericColumn("Band Score"),
		numericColumn("Correct"),
		numericColumn("Incorrect"),
	)
	for _, r := range rows {
		table.addRow(r.vowel, percentCell(r.acc), scoreCell(r.band), countCell(r.correct), countCell(r.incorrect))
	}
	return table.write(w)
}

// RenderConfusions prints the most frequent vowel substitutions.
func RenderConfusions(w io.Writer, confusions []model.ConfusionStats, top int) error {
	if len(confusions) == 0 {
		_, err := fmt.Fprintln(w, "No vowel confusions recorded.")
		return err
	}
	if top > 0 && len(confusions) > top {
		confusions = confusions[:top]
	}
	if _, err := fmt.Fprintln(w, "Top Confusions"); err != nil {
		return err
	}
	table := newTextTable(textColumn("Expected"), textColumn("Heard"), numericColumn("Count"))
	for _, c := range confusions {
		table.addRow(c.Target, c.Recognized, countCell(c.Count))
	}
	return table.write(w)
}

func bandScore(agg model.PhonemeAggregate) float64 {
	if agg.BandScoreCount == 0 {
		return 0
	}
	return agg.BandScoreSum / float64(agg.BandScoreCount)
}
