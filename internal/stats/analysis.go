package stats

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/telaffuz/internal/pronounce"
)

var (
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// RenderAnalysis prints one analysis report: the score, a per-word table and
// the feedback lines.
func RenderAnalysis(w io.Writer, report pronounce.Report) error {
	header := fmt.Sprintf("Overall score: %.1f%%", report.OverallScore*100)
	if report.NoSpeech {
		header += " (no speech recognized)"
	}
	if _, err := fmt.Fprintln(w, titleStyle.Render(header)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Heard: %q\n\n", report.Recognized); err != nil {
		return err
	}

	if len(report.Words) > 0 {
		table := newTextTable(
			textColumn("Word"),
			textColumn("Heard"),
			numericColumn("Text"),
			numericColumn("Sound"),
			numericColumn("Score"),
			textColumn("Verdict"),
		)
		for _, rec := range report.Words {
			verdict := goodStyle.Render("ok")
			if !rec.Correct {
				verdict = badStyle.Render(rec.Error.String())
			}
			heard := rec.Recognized
			if heard == "" {
				heard = "-"
			}
			table.addRow(
				rec.Target,
				heard,
				scoreCell(rec.StringSimilarity),
				scoreCell(rec.PhoneticScore),
				scoreCell(rec.CombinedScore),
				verdict,
			)
		}
		if err := table.write(w); err != nil {
			return err
		}
	}

	for _, line := range report.Feedback {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
