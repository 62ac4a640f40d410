// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	ModelPath     string
	SentencesPath string
	Save          bool
	SampleRate    int
	MaxSeconds    float64
	FocusWeak     bool
	WeakTop       int
	WeakFactor    float64
	WeakWindow    int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
	Source      string
}

// Session sources.
const (
	SourcePractice = "practice"
	SourceAnalyze  = "analyze"
)

// SessionStats captures one analyzed utterance.
type SessionStats struct {
	StartedAt    time.Time
	EndedAt      time.Time
	Source       string
	AudioPath    string
	Target       string
	Recognized   string
	TargetWords  int
	CorrectWords int
	OverallScore float64
	NoSpeech     bool
	DurationMs   int64
}

// WordStats stores the result for one target word of a session.
type WordStats struct {
	Position   int
	Target     string
	Recognized string
	Score      float64
	Correct    bool
	ErrorKind  string
}

// PhonemeStats stores per-vowel stats for a session.
type PhonemeStats struct {
	Vowel          string
	Correct        int
	Incorrect      int
	BandScoreSum   float64
	BandScoreCount int
}

// PhonemeAggregate aggregates vowel stats across sessions.
type PhonemeAggregate struct {
	Vowel          string
	Correct        int
	Incorrect      int
	BandScoreSum   float64
	BandScoreCount int
}

// ConfusionStats counts one vowel confusion.
type ConfusionStats struct {
	Target     string
	Recognized string
	Count      int
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID    int64
	EndedAt      time.Time
	OverallScore float64
	TargetWords  int
	CorrectWords int
	NoSpeech     bool
}
