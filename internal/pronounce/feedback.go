package pronounce

import "fmt"

// Feedback turns word records into messages: a summary line first, then the
// diagnostics of each incorrect word in target order, each followed by a
// practice suggestion.
func Feedback(records []WordRecord) []string {
	correct := 0
	for _, rec := range records {
		if rec.Correct {
			correct++
		}
	}
	lines := []string{fmt.Sprintf("%d of %d words pronounced correctly.", correct, len(records))}
	for _, rec := range records {
		if rec.Correct {
			continue
		}
		lines = append(lines, diagnostics(rec)...)
		lines = append(lines, fmt.Sprintf("Suggestion: try pronouncing '%s' more clearly and with emphasis.", rec.Target))
	}
	return lines
}

func diagnostics(rec WordRecord) []string {
	switch rec.Error {
	case ErrorMissing:
		return []string{fmt.Sprintf("Word '%s' is missing or unintelligible.", rec.Target)}
	case ErrorLengthMismatch:
		return []string{fmt.Sprintf("Word '%s' was pronounced with the wrong length.", rec.Target)}
	case ErrorPhonemeConfusion:
		lines := make([]string, 0, len(rec.Confusions))
		for _, c := range rec.Confusions {
			lines = append(lines, fmt.Sprintf("In word '%s', the sound '%c' was pronounced as '%c'.", rec.Target, c.Target, c.Recognized))
		}
		return lines
	default:
		return []string{fmt.Sprintf("Word '%s' was pronounced unclearly.", rec.Target)}
	}
}
