// Package session runs one pronunciation attempt end to end: keep the
// recording, transcribe it, analyze it and store the result.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/telaffuz/internal/audio"
	"github.com/verte-zerg/telaffuz/internal/model"
	"github.com/verte-zerg/telaffuz/internal/pronounce"
	"github.com/verte-zerg/telaffuz/internal/store"
)

// Transcriber turns a WAV file into recognized text.
type Transcriber interface {
	TranscribeFile(path string) (string, error)
}

// Runner wires the analysis pipeline. Transcriber may be nil when every
// request carries its own recognized text; Store may be nil to skip saving.
type Runner struct {
	Analyzer    *pronounce.Analyzer
	Transcriber Transcriber
	Store       *store.Store
	Log         zerolog.Logger
	Now         func() time.Time
}

// Request describes one attempt.
type Request struct {
	AudioPath  string
	Target     string
	Recognized *string
	Source     string
	StartedAt  time.Time
}

// Result is the outcome of a Run.
type Result struct {
	Report    pronounce.Report
	AudioPath string
	SessionID int64
	Saved     bool
}

// Run transcribes (unless the request has recognized text), analyzes and
// stores the attempt. Analysis failures are returned unwrapped so callers can
// match them with errors.Is.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	recognized, err := r.recognize(req)
	if err != nil {
		return Result{}, err
	}
	report, err := r.Analyzer.Analyze(req.AudioPath, req.Target, recognized)
	if err != nil {
		return Result{}, err
	}
	res := Result{Report: report, AudioPath: req.AudioPath}
	if r.Store == nil {
		return res, nil
	}

	started := req.StartedAt
	if started.IsZero() {
		started = r.now()
	}
	meta := model.SessionStats{
		StartedAt: started,
		EndedAt:   r.now(),
		Source:    req.Source,
		AudioPath: req.AudioPath,
	}
	id, err := r.Store.SaveReport(ctx, meta, report)
	if err != nil {
		return res, fmt.Errorf("failed to save session: %w", err)
	}
	res.SessionID = id
	res.Saved = true
	r.Log.Debug().Int64("session", id).Str("audio", req.AudioPath).Msg("session saved")
	return res, nil
}

// RunSamples writes samples to path as a WAV file and runs the request
// against it.
func (r *Runner) RunSamples(ctx context.Context, samples []float32, sampleRate int, path string, req Request) (Result, error) {
	if err := audio.SaveWAV(path, samples, sampleRate); err != nil {
		return Result{}, fmt.Errorf("failed to save recording: %w", err)
	}
	req.AudioPath = path
	return r.Run(ctx, req)
}

func (r *Runner) recognize(req Request) (string, error) {
	if req.Recognized != nil {
		return *req.Recognized, nil
	}
	if r.Transcriber == nil {
		return "", fmt.Errorf("no recognized text given and no speech model loaded")
	}
	text, err := r.Transcriber.TranscribeFile(req.AudioPath)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe %s: %w", req.AudioPath, err)
	}
	r.Log.Debug().Str("audio", req.AudioPath).Str("text", text).Msg("transcribed")
	return text, nil
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
