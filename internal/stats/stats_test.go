package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/verte-zerg/telaffuz/internal/model"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	in := []float64{1, 2}
	same := MovingAverage(in, 1)
	same[0] = 9
	if in[0] != 1 {
		t.Fatalf("MovingAverage must not alias its input")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 100}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{5, 5, 5}); got != "+++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestSessionAccuracy(t *testing.T) {
	if got := SessionAccuracy(1, 4); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
	if got := SessionAccuracy(0, 0); got != 0 {
		t.Fatalf("expected 0 for empty session, got %v", got)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	sessions := []model.SessionAggregate{
		{SessionID: 1, OverallScore: 0.4, TargetWords: 2, CorrectWords: 1},
		{SessionID: 2, OverallScore: 0.8, TargetWords: 2, CorrectWords: 2, NoSpeech: false},
		{SessionID: 3, OverallScore: 0, TargetWords: 1, CorrectWords: 0, NoSpeech: true},
	}
	if err := RenderSummary(&buf, sessions); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 3", "Avg Score: 40.0", "Best Score: 80.0", "Avg Word Accuracy: 50.00%", "No Speech: 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in summary:\n%s", want, out)
		}
	}
}

func TestChartScores(t *testing.T) {
	var buf bytes.Buffer
	if err := ChartScores(&buf, "Score", []float64{0, 50, 100}, 30, 4); err != nil {
		t.Fatalf("chart: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected title plus 4 rows, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Score" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "█") || !strings.HasPrefix(lines[1], " 100") {
		t.Fatalf("top row should show the full column: %q", lines[1])
	}
	if !strings.HasSuffix(lines[4], "██") || !strings.HasPrefix(lines[4], "   0") {
		t.Fatalf("bottom row should show two columns: %q", lines[4])
	}
}

func TestChartWidthFor(t *testing.T) {
	axisWidth := axisLabelWidth + utf8.RuneCountInString(axisSeparator)
	if got := ChartWidthFor(80); got != 80-axisWidth {
		t.Fatalf("expected width %d, got %d", 80-axisWidth, got)
	}
	if got := ChartWidthFor(0); got != minChartWidth {
		t.Fatalf("expected min width %d, got %d", minChartWidth, got)
	}
}
