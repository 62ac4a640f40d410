// Package speech transcribes recordings for pronunciation analysis.
package speech

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	vosk "github.com/alphacep/vosk-api/go"

	"github.com/verte-zerg/telaffuz/internal/audio"
)

// ModelSampleRate is the rate the recognizer is fed with.
const ModelSampleRate = 16000

// blockFrames is how many frames are passed to the recognizer per call.
const blockFrames = 4000

// Recognizer turns a WAV file into a transcript. An empty transcript means
// nothing was recognized and is not an error.
type Recognizer interface {
	TranscribeFile(path string) (string, error)
	Close()
}

// Vosk is a Recognizer backed by a Vosk model directory.
type Vosk struct {
	mu    sync.Mutex
	model *vosk.VoskModel
}

type voskResult struct {
	Text string `json:"text"`
}

// NewVosk loads the model at modelDir.
func NewVosk(modelDir string) (*Vosk, error) {
	if modelDir == "" {
		return nil, fmt.Errorf("speech model path is empty")
	}
	if _, err := os.Stat(modelDir); err != nil {
		return nil, fmt.Errorf("speech model not found at %s: %w", modelDir, err)
	}
	vosk.SetLogLevel(-1)
	model, err := vosk.NewModel(modelDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load speech model: %w", err)
	}
	return &Vosk{model: model}, nil
}

// TranscribeFile decodes path, resamples it to ModelSampleRate, normalizes
// the peak, gates background noise and returns the recognized text.
func (v *Vosk) TranscribeFile(path string) (string, error) {
	wave, err := audio.LoadWAV(path)
	if err != nil {
		return "", fmt.Errorf("failed to load audio: %w", err)
	}
	samples := audio.Resample(wave.Samples, wave.SampleRate, ModelSampleRate)
	pcm := audio.PCM16(audio.ReduceNoise(audio.Normalize(samples)))

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.model == nil {
		return "", fmt.Errorf("speech model is closed")
	}
	rec, err := vosk.NewRecognizer(v.model, ModelSampleRate)
	if err != nil {
		return "", fmt.Errorf("failed to create recognizer: %w", err)
	}
	defer rec.Free()

	var parts []string
	blockBytes := blockFrames * 2
	for start := 0; start < len(pcm); start += blockBytes {
		end := start + blockBytes
		if end > len(pcm) {
			end = len(pcm)
		}
		if rec.AcceptWaveform(pcm[start:end]) != 0 {
			text, err := resultText(rec.Result())
			if err != nil {
				return "", err
			}
			parts = appendText(parts, text)
		}
	}
	text, err := resultText(rec.FinalResult())
	if err != nil {
		return "", err
	}
	parts = appendText(parts, text)
	return strings.Join(parts, " "), nil
}

// Close frees the model.
func (v *Vosk) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.model != nil {
		v.model.Free()
		v.model = nil
	}
}

func resultText(raw string) (string, error) {
	var res voskResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return "", fmt.Errorf("failed to decode recognizer result: %w", err)
	}
	return strings.TrimSpace(res.Text), nil
}

func appendText(parts []string, text string) []string {
	if text == "" {
		return parts
	}
	return append(parts, text)
}
