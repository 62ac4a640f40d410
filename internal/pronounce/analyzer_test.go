package pronounce

import (
	"errors"
	"os"
	"testing"

	"github.com/verte-zerg/telaffuz/internal/audio"
)

type stubLoader struct {
	wave audio.Waveform
	err  error
}

func (l stubLoader) Load(string) (audio.Waveform, error) {
	return l.wave, l.err
}

func newTestAnalyzer(seconds float64) *Analyzer {
	sr := 16000
	wave := audio.Waveform{Samples: sineWave(600, sr, int(seconds*float64(sr))), SampleRate: sr}
	return NewAnalyzer(stubLoader{wave: wave})
}

func TestAnalyzeIdentity(t *testing.T) {
	report, err := newTestAnalyzer(1.5).Analyze("take.wav", "Merhaba dünya", "merhaba dünya")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(report.Words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(report.Words))
	}
	for _, w := range report.Words {
		if !w.Correct || w.StringSimilarity != 1.0 {
			t.Fatalf("expected %q to be correct, got %+v", w.Target, w)
		}
	}
	if report.OverallScore < 0.5 || report.OverallScore > 1 {
		t.Fatalf("unexpected overall score %v", report.OverallScore)
	}
	if len(report.Feedback) != 1 || report.Feedback[0] != "2 of 2 words pronounced correctly." {
		t.Fatalf("unexpected feedback: %q", report.Feedback)
	}
	if report.NoSpeech {
		t.Fatalf("expected speech to be detected")
	}
	if report.Duration.Seconds() != 1.5 {
		t.Fatalf("expected duration 1.5s, got %v", report.Duration)
	}
}

func TestAnalyzeNoRecognizedWords(t *testing.T) {
	report, err := newTestAnalyzer(1).Analyze("take.wav", "elma", "")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !report.NoSpeech {
		t.Fatalf("expected NoSpeech to be set")
	}
	if len(report.Words) != 1 || report.Words[0].Error != ErrorMissing {
		t.Fatalf("expected a single missing word, got %+v", report.Words)
	}
	if report.Words[0].PhoneticScore != NeutralScore {
		t.Fatalf("expected neutral phonetic score, got %v", report.Words[0].PhoneticScore)
	}
	want := []string{
		"0 of 1 words pronounced correctly.",
		"Word 'elma' is missing or unintelligible.",
		"Suggestion: try pronouncing 'elma' more clearly and with emphasis.",
	}
	if len(report.Feedback) != len(want) {
		t.Fatalf("unexpected feedback: %q", report.Feedback)
	}
	for i := range want {
		if report.Feedback[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], report.Feedback[i])
		}
	}
}

func TestAnalyzeNearMisses(t *testing.T) {
	report, err := newTestAnalyzer(2).Analyze("take.wav", "kitap defter", "kitab defte")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(report.Words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(report.Words))
	}
	first, second := report.Words[0], report.Words[1]
	if first.Correct || first.Error != ErrorUndetermined {
		t.Fatalf("expected kitap/kitab to be undetermined, got %+v", first)
	}
	// Correctness is similarity > CorrectThreshold only; 10/11 passes despite the length change.
	if !second.Correct {
		t.Fatalf("expected defter/defte above the threshold, got %+v", second)
	}
	if kind, _ := ClassifyError(second.Target, second.Recognized); kind != ErrorLengthMismatch {
		t.Fatalf("expected defter/defte to classify as length mismatch, got %v", kind)
	}
}

func TestAnalyzeFewerRecognizedWords(t *testing.T) {
	report, err := newTestAnalyzer(2).Analyze("take.wav", "kitap defter kalem", "kitap defter")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(report.Words) != 3 {
		t.Fatalf("expected one record per target word, got %d", len(report.Words))
	}
	last := report.Words[2]
	if last.Recognized != "" || last.Error != ErrorMissing || last.PhoneticScore != NeutralScore {
		t.Fatalf("expected trailing word to be missing, got %+v", last)
	}
}

func TestAnalyzeExtraRecognizedWordsIgnored(t *testing.T) {
	report, err := newTestAnalyzer(2).Analyze("take.wav", "kitap", "kitap defter kalem")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(report.Words) != 1 || !report.Words[0].Correct {
		t.Fatalf("expected a single correct word, got %+v", report.Words)
	}
}

func TestAnalyzeEmptyTarget(t *testing.T) {
	report, err := newTestAnalyzer(1).Analyze("take.wav", "", "merhaba")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(report.Words) != 0 || report.OverallScore != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}

func TestAnalyzeLoadFailure(t *testing.T) {
	a := NewAnalyzer(stubLoader{err: os.ErrNotExist})
	report, err := a.Analyze("missing.wav", "elma", "elma")
	if !errors.Is(err, ErrAudioLoad) {
		t.Fatalf("expected ErrAudioLoad, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected the load cause to be wrapped, got %v", err)
	}
	var aerr *AnalysisError
	if !errors.As(err, &aerr) || aerr.Kind != AudioLoadFailure || aerr.Path != "missing.wav" {
		t.Fatalf("expected *AnalysisError, got %T", err)
	}
	if len(report.Words) != 0 || report.Feedback != nil {
		t.Fatalf("expected no partial report, got %+v", report)
	}
}

func TestReportTallies(t *testing.T) {
	report := newTestAnalyzer(2).AnalyzeWaveform(
		audio.Waveform{Samples: sineWave(600, 16000, 16000), SampleRate: 16000},
		"kedi okul",
		"kidi okul",
	)
	tallies := report.VowelTallies()
	byVowel := map[rune]PhonemeTally{}
	for _, tally := range tallies {
		byVowel[tally.Symbol] = tally
	}
	if byVowel['e'].Incorrect != 1 || byVowel['i'].Incorrect != 1 {
		t.Fatalf("expected kedi vowels to be incorrect: %+v", tallies)
	}
	if byVowel['o'].Correct != 1 || byVowel['u'].Correct != 1 {
		t.Fatalf("expected okul vowels to be correct: %+v", tallies)
	}
	if byVowel['e'].BandScoreSeen != 1 {
		t.Fatalf("expected one band score for e, got %d", byVowel['e'].BandScoreSeen)
	}
	confusions := report.ConfusionCounts()
	if len(confusions) != 1 || confusions[0].Pair != (Confusion{Target: 'e', Recognized: 'i'}) || confusions[0].Count != 1 {
		t.Fatalf("unexpected confusions: %+v", confusions)
	}
}
