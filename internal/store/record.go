package store

import (
	"context"

	"github.com/verte-zerg/telaffuz/internal/model"
	"github.com/verte-zerg/telaffuz/internal/pronounce"
)

// SessionRows flattens an analysis report into the rows InsertSession takes.
// Timing, source and audio path come from meta.
func SessionRows(meta model.SessionStats, report pronounce.Report) (model.SessionStats, []model.WordStats, []model.PhonemeStats, []model.ConfusionStats) {
	stats := meta
	stats.Target = report.Target
	stats.Recognized = report.Recognized
	stats.TargetWords = len(report.Words)
	stats.CorrectWords = report.CorrectCount()
	stats.OverallScore = report.OverallScore
	stats.NoSpeech = report.NoSpeech
	if stats.DurationMs == 0 {
		stats.DurationMs = report.Duration.Milliseconds()
	}

	words := make([]model.WordStats, 0, len(report.Words))
	for i, w := range report.Words {
		kind := ""
		if !w.Correct {
			kind = w.Error.String()
		}
		words = append(words, model.WordStats{
			Position:   i,
			Target:     w.Target,
			Recognized: w.Recognized,
			Score:      w.CombinedScore,
			Correct:    w.Correct,
			ErrorKind:  kind,
		})
	}

	tallies := report.VowelTallies()
	phonemes := make([]model.PhonemeStats, 0, len(tallies))
	for _, t := range tallies {
		phonemes = append(phonemes, model.PhonemeStats{
			Vowel:          string(t.Symbol),
			Correct:        t.Correct,
			Incorrect:      t.Incorrect,
			BandScoreSum:   t.BandScoreSum,
			BandScoreCount: t.BandScoreSeen,
		})
	}

	counts := report.ConfusionCounts()
	confusions := make([]model.ConfusionStats, 0, len(counts))
	for _, c := range counts {
		confusions = append(confusions, model.ConfusionStats{
			Target:     string(c.Pair.Target),
			Recognized: string(c.Pair.Recognized),
			Count:      c.Count,
		})
	}
	return stats, words, phonemes, confusions
}

// SaveReport stores report as a new session.
func (s *Store) SaveReport(ctx context.Context, meta model.SessionStats, report pronounce.Report) (int64, error) {
	stats, words, phonemes, confusions := SessionRows(meta, report)
	return s.InsertSession(ctx, stats, words, phonemes, confusions)
}
