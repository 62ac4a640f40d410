package pronounce

import (
	"math"
	"math/rand"
	"testing"
)

func TestBandRatioCappedForToneInsideBand(t *testing.T) {
	chunk := sineWave(850, 16000, 8000)
	scores := ScorePhonemes("a", chunk, 16000)
	if len(scores) != 1 {
		t.Fatalf("expected 1 score, got %d", len(scores))
	}
	if scores[0].Symbol != 'a' || scores[0].Score != 1.0 {
		t.Fatalf("expected capped score 1.0 for a, got %+v", scores[0])
	}
}

func TestBandRatioLowForToneOutsideBand(t *testing.T) {
	chunk := sineWave(850, 16000, 8000)
	score := PhoneticScore("ü", chunk, 16000)
	if score >= 0.5 {
		t.Fatalf("expected low score for ü with energy at 850 Hz, got %v", score)
	}
}

func TestPhoneticScoreAveragesVowels(t *testing.T) {
	chunk := sineWave(850, 16000, 8000)
	a := PhoneticScore("a", chunk, 16000)
	u := PhoneticScore("ü", chunk, 16000)
	got := PhoneticScore("bağüz", chunk, 16000)
	if math.Abs(got-(a+u)/2) > 1e-12 {
		t.Fatalf("expected mean of vowel scores %v, got %v", (a+u)/2, got)
	}
}

func TestScorePhonemesKeepsRepeatsInOrder(t *testing.T) {
	chunk := sineWave(440, 16000, 4000)
	scores := ScorePhonemes("merhaba", chunk, 16000)
	want := []rune{'e', 'a', 'a'}
	if len(scores) != len(want) {
		t.Fatalf("expected %d scores, got %d", len(want), len(scores))
	}
	for i, r := range want {
		if scores[i].Symbol != r {
			t.Fatalf("expected %q at %d, got %q", r, i, scores[i].Symbol)
		}
	}
}

func TestPhoneticScoreNeutralFallbacks(t *testing.T) {
	cases := []struct {
		name       string
		word       string
		chunk      []float64
		sampleRate int
	}{
		{"no vowels", "krş", sineWave(850, 16000, 4000), 16000},
		{"empty chunk", "elma", nil, 16000},
		{"silence", "elma", make([]float64, 4000), 16000},
		{"no sample rate", "elma", sineWave(850, 16000, 4000), 0},
		{"band above nyquist", "a", sineWave(100, 1000, 4000), 1000},
	}
	for _, tc := range cases {
		if got := PhoneticScore(tc.word, tc.chunk, tc.sampleRate); got != NeutralScore {
			t.Fatalf("%s: expected neutral score, got %v", tc.name, got)
		}
	}
}

func TestPhoneticScoreWithinUnitInterval(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	words := []string{"merhaba", "dünya", "öğrenci", "ışık", "uçak", "göz"}
	for i := 0; i < 30; i++ {
		chunk := noise(rnd, 256+rnd.Intn(6000))
		word := words[rnd.Intn(len(words))]
		got := PhoneticScore(word, chunk, 8000+rnd.Intn(40000))
		if got < 0 || got > 1 || math.IsNaN(got) {
			t.Fatalf("score out of range for %q: %v", word, got)
		}
	}
}

func TestSpectrogramFrameCount(t *testing.T) {
	spec := newSpectrogram(make([]float64, 1500), 16000)
	if spec.frames != 1+1500/hopSize {
		t.Fatalf("expected %d frames, got %d", 1+1500/hopSize, spec.frames)
	}
	if got := spec.searchBin(700); spec.binFrequency(got) < 700 || spec.binFrequency(got-1) >= 700 {
		t.Fatalf("searchBin(700) returned %d", got)
	}
}
