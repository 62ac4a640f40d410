package audio

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveAndLoadWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recordings", "take.wav")
	samples := make([]float32, 1600)
	for i := range samples {
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/16000))
	}
	if err := SaveWAV(path, samples, 16000); err != nil {
		t.Fatalf("SaveWAV failed: %v", err)
	}
	wave, err := LoadWAV(path)
	if err != nil {
		t.Fatalf("LoadWAV failed: %v", err)
	}
	if wave.SampleRate != 16000 {
		t.Fatalf("expected sample rate 16000, got %d", wave.SampleRate)
	}
	if len(wave.Samples) != len(samples) {
		t.Fatalf("expected %d samples, got %d", len(samples), len(wave.Samples))
	}
	for i := range samples {
		if math.Abs(wave.Samples[i]-float64(samples[i])) > 1e-3 {
			t.Fatalf("sample %d: expected %v, got %v", i, samples[i], wave.Samples[i])
		}
	}
	if wave.Duration() != 100*time.Millisecond {
		t.Fatalf("expected 100ms, got %v", wave.Duration())
	}
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	if _, err := DecodeWAV(bytes.NewReader([]byte("not a wav file at all"))); err == nil {
		t.Fatalf("expected error for invalid WAV data")
	}
}

func TestLoadWAVMissingFile(t *testing.T) {
	_, err := WAVLoader{}.Load(filepath.Join(t.TempDir(), "missing.wav"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestDownmixStereo(t *testing.T) {
	data := []int{16384, -16384, 8192, 8192}
	got := downmix(data, 2, 16)
	if len(got) != 2 || got[0] != 0 || got[1] != 0.25 {
		t.Fatalf("unexpected downmix: %v", got)
	}
	eight := downmix([]int{128, 255, 0}, 1, 8)
	if eight[0] != 0 || eight[2] != -1 {
		t.Fatalf("unexpected 8-bit downmix: %v", eight)
	}
}
