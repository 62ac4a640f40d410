package session

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/telaffuz/internal/audio"
	"github.com/verte-zerg/telaffuz/internal/model"
	"github.com/verte-zerg/telaffuz/internal/pronounce"
	"github.com/verte-zerg/telaffuz/internal/store"
)

type fakeTranscriber struct {
	text  string
	err   error
	paths []string
}

func (f *fakeTranscriber) TranscribeFile(path string) (string, error) {
	f.paths = append(f.paths, path)
	return f.text, f.err
}

func tone(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(0.3 * math.Sin(2*math.Pi*440*float64(i)/16000))
	}
	return out
}

func newRunner(t *testing.T, tr Transcriber) (*Runner, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "telaffuz.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return &Runner{
		Analyzer:    pronounce.NewAnalyzer(audio.WAVLoader{}),
		Transcriber: tr,
		Store:       st,
		Now:         func() time.Time { return fixed },
	}, st
}

func TestRunSamplesTranscribesAndSaves(t *testing.T) {
	tr := &fakeTranscriber{text: "merhaba dünya"}
	runner, st := newRunner(t, tr)
	path := filepath.Join(t.TempDir(), "takes", "take.wav")

	res, err := runner.RunSamples(context.Background(), tone(16000), 16000, path, Request{
		Target: "Merhaba dünya!",
		Source: model.SourcePractice,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(tr.paths) != 1 || tr.paths[0] != path {
		t.Fatalf("expected transcription of %s, got %v", path, tr.paths)
	}
	if !res.Saved || res.SessionID == 0 {
		t.Fatalf("expected saved session, got %+v", res)
	}
	if res.Report.CorrectCount() != 2 {
		t.Fatalf("expected 2 correct words, got %d", res.Report.CorrectCount())
	}

	sessions, err := st.ListSessions(context.Background(), model.StatsConfig{Source: model.SourcePractice})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 1 || sessions[0].CorrectWords != 2 {
		t.Fatalf("unexpected sessions: %+v", sessions)
	}
}

func TestRunUsesGivenRecognizedText(t *testing.T) {
	tr := &fakeTranscriber{text: "unused"}
	runner, _ := newRunner(t, tr)
	runner.Store = nil
	path := filepath.Join(t.TempDir(), "take.wav")
	if err := audio.SaveWAV(path, tone(8000), 16000); err != nil {
		t.Fatalf("save: %v", err)
	}

	heard := "elma"
	res, err := runner.Run(context.Background(), Request{AudioPath: path, Target: "elma", Recognized: &heard})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(tr.paths) != 0 {
		t.Fatalf("transcriber should not be called")
	}
	if res.Saved {
		t.Fatalf("nothing should be saved without a store")
	}
	if !res.Report.Words[0].Correct {
		t.Fatalf("expected correct word")
	}
}

func TestRunPropagatesFailures(t *testing.T) {
	runner, _ := newRunner(t, &fakeTranscriber{err: errors.New("model crashed")})
	if _, err := runner.Run(context.Background(), Request{AudioPath: "missing.wav", Target: "elma"}); err == nil {
		t.Fatalf("expected transcription error")
	}

	heard := "elma"
	_, err := runner.Run(context.Background(), Request{
		AudioPath:  filepath.Join(t.TempDir(), "missing.wav"),
		Target:     "elma",
		Recognized: &heard,
	})
	if !errors.Is(err, pronounce.ErrAudioLoad) {
		t.Fatalf("expected audio load failure, got %v", err)
	}

	runner.Transcriber = nil
	if _, err := runner.Run(context.Background(), Request{AudioPath: "x.wav", Target: "elma"}); err == nil {
		t.Fatalf("expected error without transcriber")
	}
}
