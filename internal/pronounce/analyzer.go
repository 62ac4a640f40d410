package pronounce

import (
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/telaffuz/internal/audio"
)

// Loader decodes the recording at path.
type Loader interface {
	Load(path string) (audio.Waveform, error)
}

// Report is the result of one analysis.
type Report struct {
	Target       string        `json:"target"`
	Recognized   string        `json:"recognized"`
	OverallScore float64       `json:"overall_score"`
	Words        []WordRecord  `json:"words"`
	Feedback     []string      `json:"feedback"`
	NoSpeech     bool          `json:"no_speech"`
	SampleRate   int           `json:"sample_rate"`
	Duration     time.Duration `json:"duration_ns"`
}

// CorrectCount returns the number of words judged correct.
func (r Report) CorrectCount() int {
	n := 0
	for _, w := range r.Words {
		if w.Correct {
			n++
		}
	}
	return n
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the analyzer's logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Analyzer) {
		a.log = logger
	}
}

// Analyzer runs the full pronunciation analysis. It holds no per-call state
// and is safe for concurrent use.
type Analyzer struct {
	loader Loader
	log    zerolog.Logger
}

// NewAnalyzer returns an Analyzer reading recordings through loader.
func NewAnalyzer(loader Loader, opts ...Option) *Analyzer {
	a := &Analyzer{
		loader: loader,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze loads the recording at path and scores it against target.
// A recording that cannot be loaded fails the whole call with an
// *AnalysisError matching ErrAudioLoad.
func (a *Analyzer) Analyze(path, target, recognized string) (Report, error) {
	wave, err := a.loader.Load(path)
	if err != nil {
		a.log.Debug().Err(err).Str("path", path).Msg("audio load failed")
		return Report{}, &AnalysisError{Kind: AudioLoadFailure, Path: path, Err: err}
	}
	return a.AnalyzeWaveform(wave, target, recognized), nil
}

// AnalyzeWaveform scores an already decoded recording. When recognized has no
// words every target word is reported missing and NoSpeech is set.
func (a *Analyzer) AnalyzeWaveform(wave audio.Waveform, target, recognized string) Report {
	targetWords := Normalize(target)
	recognizedWords := Normalize(recognized)

	report := Report{
		Target:     target,
		Recognized: recognized,
		SampleRate: wave.SampleRate,
		Duration:   wave.Duration(),
	}

	chunks, err := Segment(wave.Samples, len(recognizedWords))
	if errors.Is(err, ErrDegenerateInput) {
		report.NoSpeech = true
		a.log.Debug().Int("target_words", len(targetWords)).Msg("no recognized words, scoring as missing")
	}

	report.Words = make([]WordRecord, 0, len(targetWords))
	var sum float64
	for i, word := range targetWords {
		var chunk []float64
		if i < len(chunks) {
			chunk = chunks[i]
		}
		heard := ""
		if i < len(recognizedWords) {
			heard = recognizedWords[i]
		}
		rec := CompareWord(word, heard, chunk, wave.SampleRate)
		sum += rec.CombinedScore
		report.Words = append(report.Words, rec)
	}
	if len(report.Words) > 0 {
		report.OverallScore = clampUnit(sum / float64(len(report.Words)))
	}
	report.Feedback = Feedback(report.Words)

	a.log.Debug().
		Int("target_words", len(targetWords)).
		Int("recognized_words", len(recognizedWords)).
		Int("correct", report.CorrectCount()).
		Float64("score", report.OverallScore).
		Msg("analysis complete")
	return report
}

// PhonemeTally aggregates one vowel over a report.
type PhonemeTally struct {
	Symbol        rune
	Correct       int
	Incorrect     int
	BandScoreSum  float64
	BandScoreSeen int
}

// VowelTallies counts each vowel occurrence of the target words, split by
// whether its word was judged correct, together with its band scores.
func (r Report) VowelTallies() []PhonemeTally {
	byVowel := map[rune]*PhonemeTally{}
	for _, w := range r.Words {
		for _, p := range w.Phonemes {
			t, ok := byVowel[p.Symbol]
			if !ok {
				t = &PhonemeTally{Symbol: p.Symbol}
				byVowel[p.Symbol] = t
			}
			if w.Correct {
				t.Correct++
			} else {
				t.Incorrect++
			}
			t.BandScoreSum += p.Score
			t.BandScoreSeen++
		}
	}
	out := make([]PhonemeTally, 0, len(byVowel))
	for _, profile := range Phonemes() {
		if t, ok := byVowel[profile.Symbol]; ok {
			out = append(out, *t)
		}
	}
	return out
}

// ConfusionCount is how often a confusion occurred in a report.
type ConfusionCount struct {
	Pair  Confusion
	Count int
}

// ConfusionCounts aggregates the confusion pairs of all words.
func (r Report) ConfusionCounts() []ConfusionCount {
	counts := map[Confusion]int{}
	for _, w := range r.Words {
		for _, c := range w.Confusions {
			counts[c]++
		}
	}
	out := make([]ConfusionCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, ConfusionCount{Pair: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Pair, out[j].Pair
		if a.Target == b.Target {
			return a.Recognized < b.Recognized
		}
		return a.Target < b.Target
	})
	return out
}
