package pronounce

import (
	"errors"
	"fmt"
)

var (
	// ErrAudioLoad is matched by errors that come from decoding the recording.
	ErrAudioLoad = errors.New("audio could not be loaded")
	// ErrDegenerateInput is returned when there is nothing to segment by.
	ErrDegenerateInput = errors.New("no recognized words to segment by")
)

// FailureKind classifies analysis failures.
type FailureKind string

const (
	AudioLoadFailure FailureKind = "AUDIO_LOAD_FAILURE"
	DegenerateInput  FailureKind = "DEGENERATE_INPUT"
)

// AnalysisError is a failed analysis. It matches ErrAudioLoad or
// ErrDegenerateInput with errors.Is depending on Kind.
type AnalysisError struct {
	Kind FailureKind
	Path string
	Err  error
}

func (e *AnalysisError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *AnalysisError) Is(target error) bool {
	switch e.Kind {
	case AudioLoadFailure:
		return target == ErrAudioLoad
	case DegenerateInput:
		return target == ErrDegenerateInput
	}
	return false
}
