package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/telaffuz/internal/audio"
	"github.com/verte-zerg/telaffuz/internal/pronounce"
)

func TestRenderAnalysis(t *testing.T) {
	wave := audio.Waveform{Samples: make([]float64, 8000), SampleRate: 16000}
	report := pronounce.NewAnalyzer(nil).AnalyzeWaveform(wave, "kitap defter", "kitab")

	var buf bytes.Buffer
	if err := RenderAnalysis(&buf, report); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Overall score:", `Heard: "kitab"`, "Verdict", "MISSING", "0 of 2 words pronounced correctly."} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderAnalysisNoSpeech(t *testing.T) {
	wave := audio.Waveform{Samples: make([]float64, 1600), SampleRate: 16000}
	report := pronounce.NewAnalyzer(nil).AnalyzeWaveform(wave, "elma", "")

	var buf bytes.Buffer
	if err := RenderAnalysis(&buf, report); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "no speech recognized") {
		t.Fatalf("expected no-speech marker:\n%s", buf.String())
	}
}
